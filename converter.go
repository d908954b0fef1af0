package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
)

// Submit uploads the conversion request and returns the job uuid. A local
// file turns the body into multipart form data with the file under "file".
func (c *client) Submit(ctx context.Context, params Parameters) (string, error) {
	req := c.restyClient.R().
		SetContext(ctx).
		SetFormData(params.formFields())

	if path := params[ParamFile]; path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("%s failed: read file %s: %w", OperationUpload, path, err)
		}
		if len(data) > 0 {
			req.SetFileReader(ParamFile, filepath.Base(path), bytes.NewReader(data))
		}
	}

	resp, err := req.Post(c.resourcePath())
	if err != nil {
		return "", errTransport(OperationUpload, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return "", errStatus(OperationUpload, resp.StatusCode(), resp.Status())
	}

	result, err := decodeResult(OperationUpload, resp.Body())
	if err != nil {
		return "", err
	}

	if result.UUID == "" {
		return "", errMalformed(OperationUpload, "server returned null UUID")
	}

	c.logger.DebugContext(ctx, "conversion submitted",
		slog.String("uuid", result.UUID),
		slog.String("input", params[ParamInput]),
	)

	return result.UUID, nil
}

// GetStatus polls the conversion state for uuid once.
func (c *client) GetStatus(ctx context.Context, uuid string) (*Result, error) {
	if uuid == "" {
		return nil, ErrEmptyUUID
	}

	resp, err := c.restyClient.R().
		SetContext(ctx).
		SetQueryParam(FieldUUID, uuid).
		Get(c.resourcePath())

	if err != nil {
		return nil, errTransport(OperationPollStatus, err)
	}

	if resp.StatusCode() != http.StatusOK {
		return nil, errStatus(OperationPollStatus, resp.StatusCode(), resp.Status())
	}

	return decodeResult(OperationPollStatus, resp.Body())
}

// WaitForConversion polls uuid until the server reports a terminal state,
// the conversion timeout is spent, or ctx is done. When params carry a
// callback URL the first poll is returned whatever its state.
func (c *client) WaitForConversion(ctx context.Context, uuid string, params Parameters) (*Result, error) {
	if uuid == "" {
		return nil, ErrEmptyUUID
	}

	return waitWithPolling(ctx, uuid, c.pollInterval, c.GetStatus, func(result *Result, polls int) (bool, error) {
		c.logger.DebugContext(ctx, "conversion status",
			slog.String("uuid", uuid),
			slog.String("state", string(result.State)),
			slog.Int("poll", polls),
		)

		switch result.State {
		case StateProcessed:
			return true, nil
		case StateError:
			return false, fmt.Errorf("%s %s: %w", OperationConversion, uuid, ErrConversionFailed)
		}

		if params.HasCallback() {
			return true, nil
		}

		if polls >= c.conversionTimeout {
			return false, errTimeout(c.conversionTimeout)
		}

		return false, nil
	})
}

// Convert submits params and waits for the conversion to finish.
func (c *client) Convert(ctx context.Context, params Parameters) (*Result, error) {
	uuid, err := c.Submit(ctx, params)
	if err != nil {
		return nil, err
	}

	return c.WaitForConversion(ctx, uuid, params)
}

func decodeResult(operation Operation, body []byte) (*Result, error) {
	var result Result
	if len(bytes.TrimSpace(body)) == 0 {
		return &result, nil
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, errMalformed(operation, fmt.Sprintf("decode response: %v", err))
	}
	return &result, nil
}
