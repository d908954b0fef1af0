package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_UnmarshalKeepsUnknownFields(t *testing.T) {
	body := `{
		"state": "processed",
		"downloadUrl": "http://x/out/report.zip",
		"previewUrl": "http://x/out/report/index.html",
		"settings": "{\"org.jpedal.pdf2html.textMode\":\"svg_realtext\"}",
		"pageCount": 12,
		"encrypted": false,
		"errorCode": null
	}`

	var result Result
	require.NoError(t, json.Unmarshal([]byte(body), &result))

	assert.Equal(t, StateProcessed, result.State)
	assert.Equal(t, "http://x/out/report.zip", result.DownloadURL)
	assert.Equal(t, "http://x/out/report/index.html", result.PreviewURL)
	assert.Equal(t, `{"org.jpedal.pdf2html.textMode":"svg_realtext"}`, result.Extra["settings"])
	assert.Equal(t, "12", result.Extra["pageCount"])
	assert.Equal(t, "false", result.Extra["encrypted"])

	value, ok := result.Get("errorCode")
	assert.True(t, ok)
	assert.Empty(t, value)

	_, ok = result.Get("missing")
	assert.False(t, ok)
}

func TestResult_UnmarshalNull(t *testing.T) {
	result := Result{UUID: "stale"}
	require.NoError(t, json.Unmarshal([]byte("null"), &result))
	assert.Equal(t, Result{}, result)
}

func TestResult_UnmarshalRejectsNonObject(t *testing.T) {
	var result Result
	assert.Error(t, json.Unmarshal([]byte(`["processed"]`), &result))
}

func TestResult_MarshalFlattens(t *testing.T) {
	result := Result{
		UUID:  "job-1",
		State: StateProcessing,
		Extra: map[string]string{"conversionStage": "layout"},
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)
	assert.JSONEq(t, `{"uuid":"job-1","state":"processing","conversionStage":"layout"}`, string(data))
}

func TestResult_NilMap(t *testing.T) {
	var result *Result
	assert.Empty(t, result.Map())
	_, ok := result.Get(FieldState)
	assert.False(t, ok)
}

func TestParameters(t *testing.T) {
	params := UploadParameters("/tmp/in.pdf").WithCallbackURL("http://me/cb")

	assert.True(t, params.HasCallback())
	assert.Equal(t, map[string]string{
		ParamInput:       InputUpload,
		ParamCallbackURL: "http://me/cb",
	}, params.formFields())

	assert.False(t, DownloadParameters("http://x/a.pdf").HasCallback())
}
