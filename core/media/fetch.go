package media

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// FolderPath resolves a folder argument: a bare name ("Countries") is placed
// under rootPrefix, a path ("albums/Summer") is used as is.
func FolderPath(folder, rootPrefix string) string {
	folder = strings.Trim(folder, "/")
	if strings.Contains(folder, "/") || rootPrefix == "" {
		return folder
	}
	return strings.Trim(rootPrefix, "/") + "/" + folder
}

// FetchAll walks every page of q sequentially.
func FetchAll(ctx context.Context, src Source, q Query, logger *zap.Logger) ([]Resource, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		all    []Resource
		cursor string
		pages  int
	)
	seen := make(map[string]struct{})

	for {
		page, err := src.Search(ctx, q, cursor)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s (page %d): %w", q.Folder, pages+1, err)
		}
		pages++
		all = append(all, page.Resources...)
		logger.Debug("Fetched media page",
			zap.String("folder", q.Folder),
			zap.Int("page", pages),
			zap.Int("resources", len(page.Resources)),
		)

		if page.NextCursor == "" {
			break
		}
		if _, dup := seen[page.NextCursor]; dup {
			return nil, fmt.Errorf("media host repeated cursor %q for %s", page.NextCursor, q.Folder)
		}
		seen[page.NextCursor] = struct{}{}
		cursor = page.NextCursor
	}

	return all, nil
}
