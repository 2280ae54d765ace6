package services

import (
	"context"
	"image"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/facekeeper/internal/artifacts"
	"github.com/dmitrijs2005/facekeeper/internal/logging"
	"github.com/dmitrijs2005/facekeeper/internal/models"
	"github.com/dmitrijs2005/facekeeper/internal/registry"
	"github.com/dmitrijs2005/facekeeper/internal/session"
	"github.com/dmitrijs2005/facekeeper/internal/vision"
)

// ---- fakes ----

type fakeFrames struct {
	img    image.Image
	err    error
	closed bool
}

func (f *fakeFrames) Read(ctx context.Context) (image.Image, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.img, nil
}

func (f *fakeFrames) Close() error {
	f.closed = true
	return nil
}

type fakeLocator struct {
	found bool
	err   error
}

func (f *fakeLocator) Locate(ctx context.Context, img image.Image) (vision.Region, bool, error) {
	if f.err != nil {
		return vision.Region{}, false, f.err
	}
	if !f.found {
		return vision.Region{}, false, nil
	}
	return vision.Region{Rect: image.Rect(80, 80, 220, 220), Confidence: 1}, true, nil
}

type fakeExtractor struct {
	d   *vision.Descriptor
	err error
}

func (f *fakeExtractor) Extract(ctx context.Context, img image.Image) (*vision.Descriptor, error) {
	return f.d, f.err
}

// countingArtifacts counts descriptor loads so tests can assert the scan
// never ran.
type countingArtifacts struct {
	artifacts.Store
	loads int
}

func (c *countingArtifacts) LoadDescriptor(ctx context.Context, ref string) (*vision.Descriptor, error) {
	c.loads++
	return c.Store.LoadDescriptor(ctx, ref)
}

// memStore is an in-memory clientstore.Store.
type memStore struct {
	data map[string][]byte
}

func newMemStore() *memStore { return &memStore{data: make(map[string][]byte)} }

func (m *memStore) Get(ctx context.Context, key string) ([]byte, error) { return m.data[key], nil }

func (m *memStore) Set(ctx context.Context, key string, value []byte) error {
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(ctx context.Context, key string) error {
	delete(m.data, key)
	return nil
}

func (m *memStore) Clear(ctx context.Context) error {
	m.data = make(map[string][]byte)
	return nil
}

// ---- helpers ----

func discardLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// uniformDescriptor returns a descriptor with every element set to v.
// Two of these with equal v have similarity 1.0; a difference of 0.1 per
// element pushes the distance past 1 and the similarity to 0.
func uniformDescriptor(v float32) *vision.Descriptor {
	d := &vision.Descriptor{}
	for i := range d {
		d[i] = v
	}
	return d
}

func testFrame() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 640, 480))
}

// env bundles the real stores the workflow tests run against.
type env struct {
	users     *registry.JSONFileRepository
	artifacts *artifacts.LocalStore
	storage   *memStore
	sessions  *session.Store
}

func newEnv(t *testing.T) *env {
	t.Helper()
	dir := t.TempDir()
	storage := newMemStore()
	return &env{
		users:     registry.NewJSONFileRepository(filepath.Join(dir, "registered_faces.json")),
		artifacts: artifacts.NewLocalStore(dir),
		storage:   storage,
		sessions:  session.NewStore(storage, []byte("test-secret")),
	}
}

func (e *env) stashSignup(t *testing.T, d models.SignupDetails) {
	t.Helper()
	ctx := context.Background()
	if err := NewSignupService(e.storage).Save(ctx, d); err != nil {
		t.Fatalf("stash signup: %v", err)
	}
}

// registerUser seeds the registry directly with a record whose descriptor
// artifact is on disk, bypassing the capture pipeline.
func (e *env) registerUser(t *testing.T, email string, d *vision.Descriptor) models.UserRecord {
	t.Helper()
	ctx := context.Background()

	ref, err := e.artifacts.SaveDescriptor(ctx, email, d)
	if err != nil {
		t.Fatalf("save descriptor: %v", err)
	}

	rec := models.UserRecord{
		ID:                 "id-" + email,
		FullName:           "User " + email,
		Email:              email,
		Telephone:          "123456",
		FaceImagePath:      "unused.jpg",
		FaceDescriptorPath: ref,
	}
	if err := e.users.Append(ctx, &rec); err != nil {
		t.Fatalf("append record: %v", err)
	}
	return rec
}

func (e *env) registration(loc vision.Locator, ext vision.Extractor) *RegistrationService {
	return NewRegistrationService(RegistrationDeps{
		Locator:   loc,
		Extractor: ext,
		Users:     e.users,
		Artifacts: e.artifacts,
		Storage:   e.storage,
		Sessions:  e.sessions,
		Logger:    discardLogger(),
	})
}

func (e *env) signin(loc vision.Locator, ext vision.Extractor, store artifacts.Store) *SignInService {
	if store == nil {
		store = e.artifacts
	}
	return NewSignInService(SignInDeps{
		Locator:   loc,
		Extractor: ext,
		Users:     e.users,
		Artifacts: store,
		Storage:   e.storage,
		Sessions:  e.sessions,
		Logger:    discardLogger(),
	})
}
