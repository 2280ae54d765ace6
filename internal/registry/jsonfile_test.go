package registry

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/facekeeper/internal/models"
)

func testRecord(email string) *models.UserRecord {
	return &models.UserRecord{
		ID:                 "id-" + email,
		FullName:           "User " + email,
		Email:              email,
		Telephone:          "123456",
		FaceImagePath:      "user_faces/" + email + ".jpg",
		FaceDescriptorPath: "user_faces_encoding/" + email + "_encoding.bin",
		RegisteredAt:       time.Date(2025, 3, 14, 15, 9, 26, 0, time.UTC),
	}
}

func TestJSONFileRepository_EmptyWhenFileAbsent(t *testing.T) {
	repo := NewJSONFileRepository(filepath.Join(t.TempDir(), "registered_faces.json"))

	records, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONFileRepository_AppendRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registered_faces.json")
	repo := NewJSONFileRepository(path)
	ctx := context.Background()

	first := testRecord("a@x.com")
	second := testRecord("b@x.com")

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// Insertion order preserved; the last element equals the appended
	// record field-for-field.
	assert.Equal(t, *first, records[0])
	assert.Equal(t, *second, records[1])
}

func TestJSONFileRepository_AppendPreservesExistingDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registered_faces.json")

	// Seed a document the way an earlier run would have left it.
	seed, err := json.Marshal([]models.UserRecord{*testRecord("old@x.com")})
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, seed, 0o660))

	repo := NewJSONFileRepository(path)
	require.NoError(t, repo.Append(context.Background(), testRecord("new@x.com")))

	records, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "old@x.com", records[0].Email)
	assert.Equal(t, "new@x.com", records[1].Email)
}

func TestJSONFileRepository_EmptyListDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registered_faces.json")
	require.NoError(t, os.WriteFile(path, []byte("[]"), 0o660))

	repo := NewJSONFileRepository(path)
	records, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestJSONFileRepository_MalformedDocumentIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registered_faces.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o660))

	repo := NewJSONFileRepository(path)
	_, err := repo.GetAll(context.Background())
	require.Error(t, err)
}

func TestJSONFileRepository_DuplicateEmailsAreAllowed(t *testing.T) {
	repo := NewJSONFileRepository(filepath.Join(t.TempDir(), "registered_faces.json"))
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testRecord("a@x.com")))
	require.NoError(t, repo.Append(ctx, testRecord("a@x.com")))

	records, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}
