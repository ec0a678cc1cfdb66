package service

import (
	"context"
	"io"
)

const (
	ResourceTypeImage = "image"
	ResourceTypeVideo = "video"
)

// UploadResult carries what the media host reports back about an uploaded
// asset.
type UploadResult struct {
	SecureURL string
	PublicID  string
}

type Uploader interface {
	Upload(ctx context.Context, file io.Reader, folder, publicID, resourceType string) (*UploadResult, error)
	Delete(ctx context.Context, publicID, resourceType string) error
}
