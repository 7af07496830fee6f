package services

import (
	"context"
	"fmt"
	"mime/multipart"

	"jansahay-be/config"

	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageSizeBytes is the per-file upload cap (5MB).
const MaxImageSizeBytes = 5 << 20

// UploadIssueImage pushes a reporter's image to Cloudinary and returns
// its stable public URL.
func UploadIssueImage(ctx context.Context, file multipart.File, filename string) (string, error) {
	resp, err := config.Cloudinary.Upload.Upload(ctx, file, uploader.UploadParams{
		Folder:         "jansahay/issues",
		UseFilename:    api.Bool(true),
		UniqueFilename: api.Bool(true),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image %s: %w", filename, err)
	}
	return resp.SecureURL, nil
}
