// Package registry is the durable, append-only collection of registered
// identities. The default backend is a single JSON document; a Postgres
// backend exists for shared deployments.
package registry

import (
	"context"

	"github.com/dmitrijs2005/facekeeper/internal/models"
)

// Repository describes the registry operations. There is no update or
// delete: records are append-only and insertion order is preserved.
// Every sign-in is an O(n) scan over GetAll, which is accepted at the
// intended scale.
type Repository interface {
	// Append adds one record after all existing ones.
	Append(ctx context.Context, rec *models.UserRecord) error

	// GetAll returns every record in insertion order. An empty registry
	// returns an empty slice, not an error.
	GetAll(ctx context.Context) ([]models.UserRecord, error)
}
