package media

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"postcard-gallery/core/utils"
)

const defaultPageSize = 500

// CloudinaryClient queries the Cloudinary Search API.
type CloudinaryClient struct {
	cfg  CloudinaryConfig
	http *http.Client
}

// NewCloudinaryClient creates a Cloudinary search client.
func NewCloudinaryClient(cfg CloudinaryConfig) (*CloudinaryClient, error) {
	if !cfg.HasCredentials() {
		return nil, fmt.Errorf("cloudinary: cloud_name, api_key and api_secret are required: %w", ErrMissingCredentials)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.cloudinary.com"
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &CloudinaryClient{cfg: cfg, http: &http.Client{Timeout: timeout}}, nil
}

type searchRequest struct {
	Expression string   `json:"expression"`
	MaxResults int      `json:"max_results"`
	NextCursor string   `json:"next_cursor,omitempty"`
	WithField  []string `json:"with_field"`
}

type searchResponse struct {
	Resources  []searchResource `json:"resources"`
	NextCursor string           `json:"next_cursor"`
}

type searchResource struct {
	PublicID  string         `json:"public_id"`
	Folder    string         `json:"folder"`
	Tags      []string       `json:"tags"`
	Context   map[string]any `json:"context"`
	CreatedAt string         `json:"created_at"`
	SecureURL string         `json:"secure_url"`
}

// Expression builds the search expression selecting the images under folder.
func Expression(folder string) string {
	return fmt.Sprintf("resource_type:image AND folder=%q", strings.Trim(folder, "/")+"/*")
}

// Search implements Source.
func (c *CloudinaryClient) Search(ctx context.Context, q Query, cursor string) (*Page, error) {
	size := q.MaxResults
	if size <= 0 {
		size = defaultPageSize
	}
	body, err := json.Marshal(searchRequest{
		Expression: Expression(q.Folder),
		MaxResults: size,
		NextCursor: cursor,
		WithField:  []string{"tags", "context"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v1_1/%s/resources/search", strings.TrimRight(c.cfg.BaseURL, "/"), c.cfg.CloudName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.SetBasicAuth(c.cfg.APIKey, c.cfg.APISecret)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("cloudinary search failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("%w: %d %s", ErrUnexpectedStatus, resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	page := &Page{NextCursor: decoded.NextCursor, Resources: make([]Resource, 0, len(decoded.Resources))}
	for _, r := range decoded.Resources {
		page.Resources = append(page.Resources, r.toResource())
	}
	return page, nil
}

func (r searchResource) toResource() Resource {
	res := Resource{
		PublicID: r.PublicID,
		Folder:   r.Folder,
		Tags:     r.Tags,
		Metadata: flattenContext(r.Context),
		URL:      r.SecureURL,
	}
	if res.Folder == "" {
		if i := strings.LastIndex(r.PublicID, "/"); i >= 0 {
			res.Folder = r.PublicID[:i]
		}
	}
	if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		res.CreatedAt = t
	}
	return res
}

// flattenContext accepts both the search shape ({"k":"v"}) and the admin
// shape ({"custom":{"k":"v"}}).
func flattenContext(ctx map[string]any) map[string]string {
	out := make(map[string]string, len(ctx))
	for key, value := range ctx {
		if nested, ok := value.(map[string]any); ok && key == "custom" {
			for k, v := range nested {
				out[k] = utils.ToString(v)
			}
			continue
		}
		out[key] = utils.ToString(value)
	}
	return out
}
