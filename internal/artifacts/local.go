package artifacts

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/dmitrijs2005/facekeeper/internal/filex"
	"github.com/dmitrijs2005/facekeeper/internal/imagex"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// LocalStore writes artifacts under baseDir:
//
//	<baseDir>/user_faces/<email>.jpg
//	<baseDir>/user_faces_encoding/<email>_encoding.bin
type LocalStore struct {
	baseDir string
}

func NewLocalStore(baseDir string) *LocalStore {
	return &LocalStore{baseDir: baseDir}
}

func (s *LocalStore) SaveImage(ctx context.Context, email string, img image.Image) (string, error) {
	dir, err := filex.EnsureDir(s.baseDir, imagesDir)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := imagex.EncodeJPEG(&buf, img); err != nil {
		return "", err
	}

	path := filepath.Join(dir, imageName(email))
	if err := os.WriteFile(path, buf.Bytes(), 0o660); err != nil {
		return "", fmt.Errorf("write face image: %w", err)
	}
	return path, nil
}

func (s *LocalStore) SaveDescriptor(ctx context.Context, email string, d *vision.Descriptor) (string, error) {
	dir, err := filex.EnsureDir(s.baseDir, descriptorsDir)
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, descriptorName(email))
	if err := os.WriteFile(path, vision.MarshalDescriptor(d), 0o660); err != nil {
		return "", fmt.Errorf("write face descriptor: %w", err)
	}
	return path, nil
}

func (s *LocalStore) LoadDescriptor(ctx context.Context, ref string) (*vision.Descriptor, error) {
	data, err := os.ReadFile(ref)
	if err != nil {
		return nil, fmt.Errorf("read face descriptor: %w", err)
	}
	return vision.UnmarshalDescriptor(data)
}
