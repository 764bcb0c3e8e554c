// Package storage keeps product pictures on an afero filesystem.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/afero"

	"github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
)

const imageDir = "products"

var _ ports.ImageStore = (*ImageStore)(nil)

// ImageStore writes pictures under products/ with random names and serves them below baseURL.
type ImageStore struct {
	fs      afero.Fs
	baseURL string
}

// NewImageStore wires fs. baseURL is the public prefix, e.g. "/media".
func NewImageStore(fs afero.Fs, baseURL string) *ImageStore {
	return &ImageStore{fs: fs, baseURL: strings.TrimRight(baseURL, "/")}
}

// NewDiskImageStore stores pictures below root on the local disk.
func NewDiskImageStore(root, baseURL string) (*ImageStore, error) {
	disk := afero.NewOsFs()
	if err := disk.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create media root: %w", err)
	}
	return NewImageStore(afero.NewBasePathFs(disk, root), baseURL), nil
}

func (s *ImageStore) Put(_ context.Context, ext string, content io.Reader) (string, error) {
	if content == nil {
		return "", errors.New("image content is empty")
	}
	name := strings.ReplaceAll(uuid.NewString(), "-", "") + ext
	rel := path.Join(imageDir, name)
	if err := afero.WriteReader(s.fs, "/"+rel, content); err != nil {
		return "", fmt.Errorf("store product image: %w", err)
	}
	return s.baseURL + "/" + rel, nil
}

func (s *ImageStore) Remove(_ context.Context, url string) error {
	rel, ok := strings.CutPrefix(url, s.baseURL+"/")
	if !ok || path.Dir(rel) != imageDir {
		return nil
	}
	if err := s.fs.Remove("/" + rel); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove product image: %w", err)
	}
	return nil
}

// FileSystem exposes the stored pictures to an HTTP file server.
func (s *ImageStore) FileSystem() http.FileSystem {
	return afero.NewHttpFs(s.fs).Dir("/")
}

// BaseURL is the prefix the pictures are served under.
func (s *ImageStore) BaseURL() string {
	return s.baseURL
}
