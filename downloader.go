package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// DownloadResult saves the artifact of result into outputDir and returns the
// written path. The file is named fileName.zip, or after the download URL
// when fileName is empty.
func (c *client) DownloadResult(ctx context.Context, result *Result, outputDir, fileName string) (string, error) {
	if result == nil {
		return "", ErrNilResult
	}
	if result.DownloadURL == "" {
		return "", ErrNoDownloadURL
	}

	target := ArtifactPath(result.DownloadURL, outputDir, fileName)

	if dir := filepath.Dir(target); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("%s failed: create output dir: %w", OperationDownload, err)
		}
	}

	file, err := os.Create(target)
	if err != nil {
		return "", fmt.Errorf("%s failed: create file: %w", OperationDownload, err)
	}

	if err := c.DownloadResultTo(ctx, result, file); err != nil {
		file.Close()
		os.Remove(target)
		return "", err
	}

	if err := file.Close(); err != nil {
		return "", fmt.Errorf("%s failed: close file: %w", OperationDownload, err)
	}

	c.logger.DebugContext(ctx, "artifact saved",
		slog.String("url", result.DownloadURL),
		slog.String("path", target),
	)

	return target, nil
}

// DownloadResultTo streams the artifact of result into dst.
func (c *client) DownloadResultTo(ctx context.Context, result *Result, dst io.Writer) error {
	if result == nil {
		return ErrNilResult
	}
	if result.DownloadURL == "" {
		return ErrNoDownloadURL
	}
	if dst == nil {
		return ErrNilWriter
	}

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(result.DownloadURL)

	if err != nil {
		return errTransport(OperationDownload, err)
	}

	body := resp.RawBody()
	defer body.Close()

	if resp.StatusCode() != http.StatusOK {
		return errStatus(OperationDownload, resp.StatusCode(), resp.Status())
	}

	if _, err := io.Copy(dst, body); err != nil {
		return errTransport(OperationDownload, err)
	}

	return nil
}

// ArtifactPath returns where DownloadResult writes the artifact for downloadURL.
func ArtifactPath(downloadURL, outputDir, fileName string) string {
	if fileName == "" {
		fileName = artifactBaseName(downloadURL)
	}
	return filepath.Join(outputDir, fileName+ArtifactExtension)
}

func artifactBaseName(downloadURL string) string {
	name := downloadURL
	if parsed, err := url.Parse(downloadURL); err == nil && parsed.Path != "" {
		name = parsed.Path
	}

	base := path.Base(name)
	return strings.TrimSuffix(base, path.Ext(base))
}
