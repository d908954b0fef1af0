package main

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	client "github.com/hsn0918/buildvu-client"
	"github.com/hsn0918/buildvu-client/internal/sink"
)

// artifactOptions controls what happens to a finished conversion's archive.
type artifactOptions struct {
	outputDir string
	filename  string
	extract   bool
	bucketURL string
	prefix    string
}

func (o *artifactOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.outputDir, "output-dir", "o", ".", "Directory to store downloaded archives")
	cmd.Flags().StringVar(&o.filename, "filename", "", "Archive name without extension (defaults to the download URL's name)")
	cmd.Flags().BoolVar(&o.extract, "extract", false, "Unpack the archive next to the downloaded zip")
	cmd.Flags().StringVar(&o.bucketURL, "bucket", "", "Store archives in a blob bucket instead of --output-dir (file://, s3://, gs://, mem://)")
	cmd.Flags().StringVar(&o.prefix, "bucket-prefix", "", "Key prefix for archives stored with --bucket")
}

func (o *artifactOptions) validate() error {
	if o.extract && o.bucketURL != "" {
		return fmt.Errorf("--extract cannot be combined with --bucket")
	}
	return nil
}

func (o *artifactOptions) openBucket(ctx context.Context) (*sink.Bucket, error) {
	if o.bucketURL == "" {
		return nil, nil
	}
	return sink.Open(ctx, o.bucketURL, o.prefix)
}

// saveArtifact downloads the archive of result to disk or to bkt when set.
func saveArtifact(ctx context.Context, cmd *cobra.Command, cli client.Client, bkt *sink.Bucket, result *client.Result, art artifactOptions, uuid string) error {
	if bkt != nil {
		key, err := bkt.Store(ctx, cli, result, art.filename)
		if err != nil {
			return err
		}
		logEvent(cmd, slog.LevelInfo, uuid, "Stored archive", slog.String("key", key))
		return nil
	}

	path, err := cli.DownloadResult(ctx, result, art.outputDir, art.filename)
	if err != nil {
		return err
	}
	logEvent(cmd, slog.LevelInfo, uuid, "Downloaded archive", slog.String("path", path))

	if !art.extract {
		return nil
	}

	dest := strings.TrimSuffix(path, client.ArtifactExtension)
	files, err := client.ExtractArchive(path, dest)
	if err != nil {
		return err
	}
	logEvent(cmd, slog.LevelInfo, uuid, "Extracted archive",
		slog.String("dir", dest),
		slog.Int("files", len(files)),
	)
	return nil
}
