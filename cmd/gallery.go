package cmd

import (
	"fmt"

	"postcard-gallery/core/logger"
	"postcard-gallery/core/media"
	"postcard-gallery/core/storage"
	"postcard-gallery/feature/gallery"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for gallery build command
	galleryOut     string
	galleryPublish string
)

// galleryCmd is the parent command for gallery operations.
var galleryCmd = &cobra.Command{
	Use:   "gallery",
	Short: "Build the public postcard gallery",
}

// galleryBuildCmd writes the gallery manifest of a folder.
var galleryBuildCmd = &cobra.Command{
	Use:   "build [folder]",
	Short: "Build the gallery manifest (hidden postcards excluded)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runGalleryBuild,
}

func init() {
	galleryCmd.AddCommand(galleryBuildCmd)

	galleryBuildCmd.Flags().StringVar(&galleryOut, "out", "", "Manifest file (default gallery.output_path)")
	galleryBuildCmd.Flags().StringVar(&galleryPublish, "publish", "", "Also upload the manifest to the storage bucket under this key")

	RootCmd.AddCommand(galleryCmd)
}

func runGalleryBuild(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer func() { _ = l.Sync() }()
	l = logger.WithRunID(l, uuid.NewString())

	folder := folderArg(args, cfg.Gallery.DefaultFolder)

	source, err := media.NewSource(cfg.Media, cfg.Storage)
	if err != nil {
		return err
	}

	publishKey := galleryPublish
	if publishKey == "" {
		publishKey = cfg.Gallery.PublishKey
	}

	var client storage.Client
	if publishKey != "" {
		client, err = storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
	}

	svc := gallery.NewService(source, client, cfg.Storage.Bucket, l)
	manifest, err := svc.Build(ctx, media.FolderPath(folder, cfg.Media.RootPrefix), cfg.Media.PageSize)
	if err != nil {
		return err
	}

	out := galleryOut
	if out == "" {
		out = cfg.Gallery.OutputPath
	}
	if err := gallery.WriteManifest(out, manifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	l.Info("Manifest written", zap.String("path", out), zap.Int("postcards", len(manifest.Postcards)))

	if publishKey != "" {
		return svc.Publish(ctx, publishKey, manifest)
	}
	return nil
}
