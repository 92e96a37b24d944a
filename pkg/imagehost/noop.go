package imagehost

import (
	"context"
	"log"
	"path"

	"github.com/google/uuid"
)

const PlaceholderURL = "https://placehold.co/1200x630.png?text=DevEvent"

// noopUploader stores nothing and hands back the same placeholder URL for every image. Development only.
type noopUploader struct{}

func (n *noopUploader) Upload(ctx context.Context, data []byte, folder string) (*Upload, error) {
	_, ext, err := detectImage(data)
	if err != nil {
		return nil, err
	}
	id := path.Join(folder, uuid.NewString()+ext)
	log.Printf("[IMAGEHOST] Image would be uploaded (noop): %s, %d bytes", id, len(data))
	return &Upload{URL: PlaceholderURL, PublicID: id}, nil
}

func (n *noopUploader) Delete(ctx context.Context, publicID string) error {
	log.Printf("[IMAGEHOST] Image would be deleted (noop): %s", publicID)
	return nil
}
