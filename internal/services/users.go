package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/facekeeper/internal/clientstore"
	"github.com/dmitrijs2005/facekeeper/internal/common"
	"github.com/dmitrijs2005/facekeeper/internal/models"
	"github.com/dmitrijs2005/facekeeper/internal/registry"
)

// UserService reads registered and recognized users for display.
type UserService struct {
	users   registry.Repository
	storage clientstore.Store
}

func NewUserService(users registry.Repository, storage clientstore.Store) *UserService {
	return &UserService{users: users, storage: storage}
}

// List returns every registered record in insertion order.
func (s *UserService) List(ctx context.Context) ([]models.UserRecord, error) {
	return s.users.GetAll(ctx)
}

// Latest returns the most recently registered record, or common.ErrNotFound
// when the registry is empty.
func (s *UserService) Latest(ctx context.Context) (*models.UserRecord, error) {
	records, err := s.users.GetAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, common.ErrNotFound
	}
	return &records[len(records)-1], nil
}

// Recognized returns the stored copy of the last record matched by sign-in,
// or common.ErrNotFound when no recognition has happened.
func (s *UserService) Recognized(ctx context.Context) (*models.UserRecord, error) {
	data, err := s.storage.Get(ctx, clientstore.KeyRecognizedUser)
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, common.ErrNotFound
	}

	var rec models.UserRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse recognized user: %w", err)
	}
	return &rec, nil
}
