// Package services contains the application workflows: sign-up data
// collection, face registration, and face sign-in.
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/facekeeper/internal/clientstore"
	"github.com/dmitrijs2005/facekeeper/internal/models"
)

// SignupService stashes the identity fields collected by the sign-up form in
// client storage, where the registration workflow later picks them up.
type SignupService struct {
	storage clientstore.Store
}

func NewSignupService(storage clientstore.Store) *SignupService {
	return &SignupService{storage: storage}
}

// Save validates the details and persists them as pending sign-up data.
func (s *SignupService) Save(ctx context.Context, d models.SignupDetails) error {
	if err := d.Validate(); err != nil {
		return err
	}

	fields := map[string]string{
		clientstore.KeyFullName:  d.FullName,
		clientstore.KeyEmail:     d.Email,
		clientstore.KeyTelephone: d.Telephone,
	}
	for key, value := range fields {
		if err := s.storage.Set(ctx, key, []byte(value)); err != nil {
			return fmt.Errorf("save sign-up field %s: %w", key, err)
		}
	}
	return nil
}

// Pending returns whatever sign-up fields are currently stashed. Missing
// fields read as empty strings; completeness is the caller's call.
func (s *SignupService) Pending(ctx context.Context) (models.SignupDetails, error) {
	var d models.SignupDetails

	for key, dst := range map[string]*string{
		clientstore.KeyFullName:  &d.FullName,
		clientstore.KeyEmail:     &d.Email,
		clientstore.KeyTelephone: &d.Telephone,
	} {
		v, err := s.storage.Get(ctx, key)
		if err != nil {
			return models.SignupDetails{}, fmt.Errorf("load sign-up field %s: %w", key, err)
		}
		*dst = string(v)
	}

	return d, nil
}
