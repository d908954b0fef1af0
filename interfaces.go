package client

import (
	"context"
	"io"
)

// Info provides metadata about the client
type Info interface {
	Name() string
	Version() string
	Endpoint() string
}

// Converter handles the upload and polling half of a conversion
type Converter interface {
	Submit(ctx context.Context, params Parameters) (string, error)
	GetStatus(ctx context.Context, uuid string) (*Result, error)
	WaitForConversion(ctx context.Context, uuid string, params Parameters) (*Result, error)
	Convert(ctx context.Context, params Parameters) (*Result, error)
}

// Downloader retrieves conversion artifacts
type Downloader interface {
	DownloadResult(ctx context.Context, result *Result, outputDir, fileName string) (string, error)
	DownloadResultTo(ctx context.Context, result *Result, dst io.Writer) error
}

// Client combines all conversion operations
type Client interface {
	Info
	Converter
	Downloader
}
