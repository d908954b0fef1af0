package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	client "github.com/hsn0918/buildvu-client"
)

type outputFormat string

const (
	formatJSON outputFormat = "json"
	formatYAML outputFormat = "yaml"
)

var outputMu sync.Mutex

func buildClient(cmd *cobra.Command, opts *cliOptions) (client.Client, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	options := []client.Option{
		client.WithEndpoint(opts.endpoint),
		client.WithRequestTimeout(opts.timeout),
		client.WithConversionTimeout(opts.conversionTimeout),
	}
	if opts.username != "" {
		options = append(options, client.WithBasicAuth(opts.username, opts.password))
	}
	if opts.verbose {
		options = append(options, client.WithLogger(newLogger(cmd.ErrOrStderr(), slog.LevelDebug)))
	}

	return client.NewClient(opts.url, options...)
}

func parseOutputFormat(format string) (outputFormat, error) {
	switch strings.ToLower(format) {
	case string(formatJSON):
		return formatJSON, nil
	case string(formatYAML), "yml":
		return formatYAML, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// writeResult prints the server response as a flat mapping.
func writeResult(w io.Writer, format outputFormat, result *client.Result) error {
	outputMu.Lock()
	defer outputMu.Unlock()

	fields := result.Map()

	switch format {
	case formatYAML:
		// One document per result so batch output stays a valid stream.
		if _, err := io.WriteString(w, "---\n"); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(fields); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return enc.Close()
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(fields); err != nil {
			return fmt.Errorf("encode result: %w", err)
		}
		return nil
	}
}

// logEvent writes a structured progress line to stderr so stdout stays
// reserved for results.
func logEvent(cmd *cobra.Command, level slog.Level, uuid string, msg string, attrs ...slog.Attr) {
	logger := newLogger(cmd.ErrOrStderr(), level)
	if uuid != "" {
		attrs = append([]slog.Attr{slog.String("uuid", uuid)}, attrs...)
	}
	logger.LogAttrs(cmd.Context(), level, msg, attrs...)
}

func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: level,
		ReplaceAttr: func(groups []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		},
	})
	return slog.New(handler)
}
