package ports

import (
	"context"
	"io"
)

// ImageStore keeps product pictures and hands back the URL they are served from.
type ImageStore interface {
	// Put stores content under a fresh random name ending in ext.
	Put(ctx context.Context, ext string, content io.Reader) (string, error)
	// Remove deletes a picture previously returned by Put. Unknown URLs are ignored.
	Remove(ctx context.Context, url string) error
}
