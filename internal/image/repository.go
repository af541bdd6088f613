// Package image manages image uploads and their metadata persistence.
package image

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Image is one successful upload. Rows are append-only: an owner id groups
// any number of uploads, each with its own globally unique storage key.
type Image struct {
	ID               int64           `json:"-"`
	OwnerID          string          `json:"image_id"`
	StorageKey       string          `json:"-"`
	StorageURL       string          `json:"s3_url"`
	OriginalFilename string          `json:"original_filename"`
	FileSizeBytes    int64           `json:"file_size"`
	ContentType      string          `json:"content_type"`
	UploadedAt       time.Time       `json:"uploaded_at"`
	Metadata         json.RawMessage `json:"metadata,omitempty"`
}

// Repository handles all image metadata database operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Insert appends a new metadata row and fills in the generated id and
// server-side timestamp. A storage key collision returns ErrDuplicateKey
// rather than overwriting the existing row.
func (r *Repository) Insert(ctx context.Context, img *Image) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO images (owner_id, storage_key, storage_url, original_filename, file_size_bytes, content_type, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, uploaded_at`,
		img.OwnerID, img.StorageKey, img.StorageURL, img.OriginalFilename,
		img.FileSizeBytes, img.ContentType, img.Metadata,
	).Scan(&img.ID, &img.UploadedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicateKey
		}
		return fmt.Errorf("insert image: %w", err)
	}
	return nil
}

// GetLatest fetches the most recently uploaded image for an owner id.
func (r *Repository) GetLatest(ctx context.Context, ownerID string) (*Image, error) {
	img := &Image{}
	err := r.db.QueryRow(ctx,
		`SELECT id, owner_id, storage_key, storage_url, original_filename, file_size_bytes, content_type, uploaded_at, metadata
		 FROM images WHERE owner_id = $1
		 ORDER BY uploaded_at DESC, id DESC
		 LIMIT 1`,
		ownerID,
	).Scan(&img.ID, &img.OwnerID, &img.StorageKey, &img.StorageURL, &img.OriginalFilename,
		&img.FileSizeBytes, &img.ContentType, &img.UploadedAt, &img.Metadata)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get latest image: %w", err)
	}
	return img, nil
}

// GetAll fetches every upload for an owner id, oldest first. An owner with
// no uploads yields an empty slice, not an error.
func (r *Repository) GetAll(ctx context.Context, ownerID string) ([]Image, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, owner_id, storage_key, storage_url, original_filename, file_size_bytes, content_type, uploaded_at, metadata
		 FROM images WHERE owner_id = $1
		 ORDER BY uploaded_at ASC, id ASC`,
		ownerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	defer rows.Close()

	images := []Image{}
	for rows.Next() {
		var img Image
		if err := rows.Scan(&img.ID, &img.OwnerID, &img.StorageKey, &img.StorageURL, &img.OriginalFilename,
			&img.FileSizeBytes, &img.ContentType, &img.UploadedAt, &img.Metadata); err != nil {
			return nil, fmt.Errorf("scan image row: %w", err)
		}
		images = append(images, img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

// Ping probes database connectivity for the health endpoint.
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.Ping(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	return nil
}

// isUniqueViolation checks whether an error is a PostgreSQL unique_violation (code 23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
