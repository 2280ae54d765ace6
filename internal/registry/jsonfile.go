package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/gofrs/flock"

	"github.com/dmitrijs2005/facekeeper/internal/filex"
	"github.com/dmitrijs2005/facekeeper/internal/models"
)

// JSONFileRepository stores the registry as one JSON document: absent file
// means no users, otherwise a list of records. Append is load-push-rewrite
// under an exclusive advisory file lock, with the rewrite done atomically,
// so a second process cannot lose updates and readers never see a partial
// document.
type JSONFileRepository struct {
	path string
	lock *flock.Flock
}

func NewJSONFileRepository(path string) *JSONFileRepository {
	return &JSONFileRepository{
		path: path,
		lock: flock.New(path + ".lock"),
	}
}

func (r *JSONFileRepository) Append(ctx context.Context, rec *models.UserRecord) error {
	if err := r.lock.Lock(); err != nil {
		return fmt.Errorf("lock registry: %w", err)
	}
	defer r.lock.Unlock()

	records, err := r.load()
	if err != nil {
		return err
	}

	records = append(records, *rec)

	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshal registry: %w", err)
	}

	if err := filex.WriteFileAtomic(r.path, data, 0o660); err != nil {
		return fmt.Errorf("write registry: %w", err)
	}
	return nil
}

func (r *JSONFileRepository) GetAll(ctx context.Context) ([]models.UserRecord, error) {
	if err := r.lock.RLock(); err != nil {
		return nil, fmt.Errorf("lock registry: %w", err)
	}
	defer r.lock.Unlock()

	return r.load()
}

func (r *JSONFileRepository) load() ([]models.UserRecord, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.UserRecord{}, nil
		}
		return nil, fmt.Errorf("read registry: %w", err)
	}

	var records []models.UserRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse registry: %w", err)
	}
	if records == nil {
		records = []models.UserRecord{}
	}
	return records, nil
}
