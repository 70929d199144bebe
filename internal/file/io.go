package file

import (
	"context"
	"fmt"

	"cloud.google.com/go/storage"
)

// IO writes files to the recipe image bucket and returns their public
// URLs.
type IO struct {
	storage *storage.Client
	bucket  string
}

func NewIO(storage *storage.Client, bucket string) *IO {
	return &IO{
		storage: storage,
		bucket:  bucket,
	}
}

func (io *IO) WriteFile(ctx context.Context, path string, contentType string, data []byte) (string, error) {
	wc := io.storage.Bucket(io.bucket).Object(path).NewWriter(ctx)
	defer func() {
		_ = wc.Close()
	}()
	wc.ContentType = contentType
	if _, err := wc.Write(data); err != nil {
		return "", fmt.Errorf("file: writing file: %w", err)
	}
	if err := wc.Close(); err != nil {
		return "", fmt.Errorf("file: closing writer: %w", err)
	}
	url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", io.bucket, path)
	return url, nil
}

// MakePublic grants public read on an uploaded object. The bucket is
// not uniformly public, so access is set per object.
func (io *IO) MakePublic(ctx context.Context, path string) error {
	acl := io.storage.Bucket(io.bucket).Object(path).ACL()
	if err := acl.Set(ctx, storage.AllUsers, storage.RoleReader); err != nil {
		return fmt.Errorf("file: setting public read on %s: %w", path, err)
	}
	return nil
}
