package client

import "time"

const (
	ServiceName              = "buildvu"
	APIVersion               = "v1"
	DefaultEndpoint          = "buildvu"
	DefaultRequestTimeout    = 60000 * time.Millisecond
	DefaultConversionTimeout = 30 // seconds
	DefaultPollInterval      = time.Second
	ArtifactExtension        = ".zip"
)

// Conversion parameter keys understood by the service.
const (
	ParamInput       = "input"
	ParamFile        = "file"
	ParamURL         = "url"
	ParamCallbackURL = "callbackUrl"
)

// Input modes for ParamInput.
const (
	InputUpload   = "upload"
	InputDownload = "download"
)

// Response fields with dedicated Result accessors.
const (
	FieldUUID        = "uuid"
	FieldState       = "state"
	FieldDownloadURL = "downloadUrl"
	FieldPreviewURL  = "previewUrl"
)
