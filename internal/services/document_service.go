package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"labo-backend/internal/metrics"
	"labo-backend/internal/models"
	"labo-backend/internal/repositories"
	"labo-backend/internal/storage"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// MaxUploadSize caps one attachment at 20 MB.
const MaxUploadSize = 20 << 20

var ErrDocumentNotFound = errors.New("document not found")

// allowedExtensions restricts uploads to document and image formats.
var allowedExtensions = map[string]bool{
	".pdf": true, ".doc": true, ".docx": true, ".odt": true,
	".xls": true, ".xlsx": true, ".ods": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".webp": true,
	".txt": true, ".csv": true,
}

// DocumentService streams attachments to object storage and keeps their
// metadata rows. Uploads are best-effort per file: one bad file in a batch
// does not fail the others.
type DocumentService struct {
	DocumentRepo *repositories.DocumentRepository
	Store        *storage.Store
}

func NewDocumentService(documentRepo *repositories.DocumentRepository, store *storage.Store) *DocumentService {
	return &DocumentService{DocumentRepo: documentRepo, Store: store}
}

// UploadForEvent stores a batch of multipart files as attachments of an event.
func (s *DocumentService) UploadForEvent(ctx context.Context, userID, eventID int, files []*multipart.FileHeader) []models.UploadResult {
	return s.upload(ctx, userID, &eventID, nil, files)
}

// UploadForPreset stores a batch of multipart files as attachments of a preset.
func (s *DocumentService) UploadForPreset(ctx context.Context, userID, presetID int, files []*multipart.FileHeader) []models.UploadResult {
	return s.upload(ctx, userID, nil, &presetID, files)
}

func (s *DocumentService) upload(ctx context.Context, userID int, eventID, presetID *int, files []*multipart.FileHeader) []models.UploadResult {
	results := make([]models.UploadResult, 0, len(files))
	for _, fh := range files {
		result := models.UploadResult{FileName: fh.Filename}

		if err := s.uploadOne(ctx, userID, eventID, presetID, fh, &result); err != nil {
			result.Error = err.Error()
			metrics.DocumentUploads.WithLabelValues("error").Inc()
		} else {
			metrics.DocumentUploads.WithLabelValues("ok").Inc()
		}
		results = append(results, result)
	}
	return results
}

func (s *DocumentService) uploadOne(ctx context.Context, userID int, eventID, presetID *int, fh *multipart.FileHeader, result *models.UploadResult) error {
	if fh.Size > MaxUploadSize {
		return fmt.Errorf("file exceeds %d MB limit", MaxUploadSize>>20)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return fmt.Errorf("file type %q not allowed", ext)
	}

	f, err := fh.Open()
	if err != nil {
		return fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	contentType := fh.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	key := uuid.NewString() + ext
	url, err := s.Store.Upload(ctx, key, contentType, f)
	if err != nil {
		return fmt.Errorf("store upload: %w", err)
	}

	doc := &models.Document{
		EventID:    eventID,
		PresetID:   presetID,
		FileName:   fh.Filename,
		FileURL:    url,
		FileSize:   fh.Size,
		FileType:   contentType,
		UploadedBy: userID,
	}
	if err := s.DocumentRepo.Create(ctx, doc); err != nil {
		// Storage succeeded but the row didn't: remove the orphan object.
		s.Store.Delete(ctx, key)
		return fmt.Errorf("save document: %w", err)
	}

	result.FileURL = url
	result.FileSize = fh.Size
	result.FileType = contentType
	log.Printf("[Document] uploaded %s (%d bytes) by user %d", fh.Filename, fh.Size, userID)
	return nil
}

// Delete removes a document row and its stored object.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	doc, err := s.DocumentRepo.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return ErrDocumentNotFound
	}
	if err != nil {
		return err
	}
	if err := s.DocumentRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.Store.Delete(ctx, s.Store.KeyFromURL(doc.FileURL))
	return nil
}
