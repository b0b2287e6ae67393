package repositories

import (
	"context"

	"labo-backend/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentRepository persists attachment metadata. The bytes themselves live
// in object storage.
type DocumentRepository struct {
	DB *pgxpool.Pool
}

func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{DB: db}
}

// Create inserts a document row, assigning its uuid.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	if doc.ID == "" {
		doc.ID = uuid.NewString()
	}
	return r.DB.QueryRow(ctx,
		`INSERT INTO documents(id, event_id, preset_id, file_name, file_url, file_size, file_type, uploaded_by)
         VALUES($1, $2, $3, $4, $5, $6, $7, $8)
         RETURNING uploaded_at`,
		doc.ID, doc.EventID, doc.PresetID, doc.FileName, doc.FileURL,
		doc.FileSize, doc.FileType, doc.UploadedBy,
	).Scan(&doc.UploadedAt)
}

// Get returns one document by id.
func (r *DocumentRepository) Get(ctx context.Context, id string) (*models.Document, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, event_id, preset_id, file_name, file_url, file_size, file_type, uploaded_by, uploaded_at
         FROM documents WHERE id=$1`, id)

	var doc models.Document
	err := row.Scan(&doc.ID, &doc.EventID, &doc.PresetID, &doc.FileName, &doc.FileURL,
		&doc.FileSize, &doc.FileType, &doc.UploadedBy, &doc.UploadedAt)
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// ListByEvent returns an event's attachments.
func (r *DocumentRepository) ListByEvent(ctx context.Context, eventID int) ([]models.Document, error) {
	return r.list(ctx,
		`SELECT id, event_id, preset_id, file_name, file_url, file_size, file_type, uploaded_by, uploaded_at
         FROM documents WHERE event_id=$1 ORDER BY uploaded_at ASC`, eventID)
}

// ListByPreset returns a preset's attachments.
func (r *DocumentRepository) ListByPreset(ctx context.Context, presetID int) ([]models.Document, error) {
	return r.list(ctx,
		`SELECT id, event_id, preset_id, file_name, file_url, file_size, file_type, uploaded_by, uploaded_at
         FROM documents WHERE preset_id=$1 ORDER BY uploaded_at ASC`, presetID)
}

// Delete removes a document row.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM documents WHERE id=$1`, id)
	return err
}

func (r *DocumentRepository) list(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []models.Document
	for rows.Next() {
		var doc models.Document
		err := rows.Scan(&doc.ID, &doc.EventID, &doc.PresetID, &doc.FileName, &doc.FileURL,
			&doc.FileSize, &doc.FileType, &doc.UploadedBy, &doc.UploadedAt)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, rows.Err()
}
