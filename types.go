package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
)

// State enumerates conversion states reported by the server.
type State string

const (
	StateProcessing State = "processing"
	StateProcessed  State = "processed"
	StateError      State = "error"
)

// Operation enumerates the named calls made against the service.
type Operation string

const (
	OperationUpload     Operation = "upload"
	OperationPollStatus Operation = "check conversion status"
	OperationDownload   Operation = "download"
	OperationConversion Operation = "conversion"
)

// Parameters are the per-request form values sent to the service.
// ParamFile is read from disk and sent as a file part, never as a plain field.
type Parameters map[string]string

// UploadParameters returns parameters that upload the local file at path.
func UploadParameters(path string) Parameters {
	return Parameters{
		ParamInput: InputUpload,
		ParamFile:  path,
	}
}

// DownloadParameters returns parameters that make the server fetch the source from url.
func DownloadParameters(url string) Parameters {
	return Parameters{
		ParamInput: InputDownload,
		ParamURL:   url,
	}
}

// Set stores a parameter and returns p for chaining.
func (p Parameters) Set(key, value string) Parameters {
	p[key] = value
	return p
}

// WithCallbackURL asks the server to notify url on completion.
// Waiting on such a conversion returns after the first poll.
func (p Parameters) WithCallbackURL(url string) Parameters {
	return p.Set(ParamCallbackURL, url)
}

// HasCallback reports whether a callback URL was supplied.
func (p Parameters) HasCallback() bool {
	_, ok := p[ParamCallbackURL]
	return ok
}

// formFields returns every parameter except the file path.
func (p Parameters) formFields() map[string]string {
	fields := make(map[string]string, len(p))
	for k, v := range p {
		if k == ParamFile {
			continue
		}
		fields[k] = v
	}
	return fields
}

// Result is a decoded response from the conversion endpoint.
// Known fields are promoted; everything else is kept in Extra.
type Result struct {
	UUID        string            `json:"uuid,omitempty"`
	State       State             `json:"state,omitempty"`
	DownloadURL string            `json:"downloadUrl,omitempty"`
	PreviewURL  string            `json:"previewUrl,omitempty"`
	Extra       map[string]string `json:"-"`
}

// UnmarshalJSON decodes a flat JSON object. Non-string values keep their raw JSON text.
func (r *Result) UnmarshalJSON(data []byte) error {
	*r = Result{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}

	for key, value := range raw {
		text, err := rawToString(value)
		if err != nil {
			return fmt.Errorf("decode field %q: %w", key, err)
		}
		r.set(key, text)
	}

	return nil
}

// MarshalJSON flattens known fields and Extra into a single object.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Map())
}

func (r *Result) set(key, value string) {
	switch key {
	case FieldUUID:
		r.UUID = value
	case FieldState:
		r.State = State(value)
	case FieldDownloadURL:
		r.DownloadURL = value
	case FieldPreviewURL:
		r.PreviewURL = value
	default:
		if r.Extra == nil {
			r.Extra = make(map[string]string)
		}
		r.Extra[key] = value
	}
}

// Get returns the value of any response field and whether it was present.
func (r *Result) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r.Map()[key]
	return value, ok
}

// Map returns the result as the flat key/value mapping the server sent.
func (r *Result) Map() map[string]string {
	if r == nil {
		return map[string]string{}
	}
	out := make(map[string]string, len(r.Extra)+4)
	maps.Copy(out, r.Extra)
	if r.UUID != "" {
		out[FieldUUID] = r.UUID
	}
	if r.State != "" {
		out[FieldState] = string(r.State)
	}
	if r.DownloadURL != "" {
		out[FieldDownloadURL] = r.DownloadURL
	}
	if r.PreviewURL != "" {
		out[FieldPreviewURL] = r.PreviewURL
	}
	return out
}

func rawToString(value json.RawMessage) (string, error) {
	trimmed := bytes.TrimSpace(value)
	if bytes.Equal(trimmed, []byte("null")) {
		return "", nil
	}
	if len(trimmed) > 0 && trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", err
		}
		return s, nil
	}
	return string(trimmed), nil
}
