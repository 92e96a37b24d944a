package imagehost

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
)

// ErrUploadFailed wraps every failure returned by Uploader.Upload.
var ErrUploadFailed = errors.New("image upload failed")

// Upload describes a stored image.
type Upload struct {
	URL      string
	PublicID string
}

// Uploader stores raw image bytes under a folder and returns their public URL. Upload makes a single
// attempt; Delete removes a previously uploaded image.
type Uploader interface {
	Upload(ctx context.Context, data []byte, folder string) (*Upload, error)
	Delete(ctx context.Context, publicID string) error
}

type CloudinaryConfig struct {
	URL       string
	CloudName string
	APIKey    string
	APISecret string
}

type S3Config struct {
	Bucket          string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicBaseURL   string
}

type Config struct {
	Provider   string
	Cloudinary CloudinaryConfig
	S3         S3Config
}

// New creates an uploader for the configured provider. Unknown providers fall back to noop.
func New(ctx context.Context, cfg Config) (Uploader, error) {
	switch cfg.Provider {
	case "cloudinary":
		return NewCloudinaryUploader(cfg.Cloudinary)
	case "s3":
		return NewS3Uploader(ctx, cfg.S3)
	case "noop":
		return &noopUploader{}, nil
	default:
		log.Printf("[IMAGEHOST] Unknown image provider %q, using noop", cfg.Provider)
		return &noopUploader{}, nil
	}
}

func uploadError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUploadFailed, fmt.Sprintf(format, args...))
}

var imageExtensions = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/bmp":  ".bmp",
}

// detectImage sniffs the content type and rejects anything that is not a known image format.
func detectImage(data []byte) (contentType, ext string, err error) {
	contentType = http.DetectContentType(data)
	ext, ok := imageExtensions[contentType]
	if !ok {
		return "", "", uploadError("unsupported content type %s", contentType)
	}
	return contentType, ext, nil
}
