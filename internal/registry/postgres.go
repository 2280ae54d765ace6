package registry

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/facekeeper/internal/dbx"
	"github.com/dmitrijs2005/facekeeper/internal/models"
	"github.com/dmitrijs2005/facekeeper/internal/registry/migrations"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// PostgresRepository keeps the registry in a Postgres table for deployments
// where several instances share one registered set. The same append-only
// contract applies; a sequence column preserves insertion order.
type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// OpenPostgres connects to dsn and brings the schema up to date.
func OpenPostgres(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open registry database: %w", err)
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		db.Close()
		return nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate registry database: %w", err)
	}

	return db, nil
}

func (r *PostgresRepository) Append(ctx context.Context, rec *models.UserRecord) error {
	query := `
		INSERT INTO registered_faces
		    (id, fullname, email, telephone, face_image, face_encoding, registered_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID, rec.FullName, rec.Email, rec.Telephone,
		rec.FaceImagePath, rec.FaceDescriptorPath, rec.RegisteredAt)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}

func (r *PostgresRepository) GetAll(ctx context.Context) ([]models.UserRecord, error) {
	query := `
		SELECT id, fullname, email, telephone, face_image, face_encoding, registered_at
		FROM registered_faces
		ORDER BY seq
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	records := []models.UserRecord{}
	for rows.Next() {
		var rec models.UserRecord
		if err := rows.Scan(&rec.ID, &rec.FullName, &rec.Email, &rec.Telephone,
			&rec.FaceImagePath, &rec.FaceDescriptorPath, &rec.RegisteredAt); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}

	return records, nil
}
