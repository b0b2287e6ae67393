package services

import (
	"context"
	"errors"
	"log"

	"labo-backend/internal/models"
	"labo-backend/internal/repositories"

	"github.com/jackc/pgx/v5"
)

var ErrPresetNotFound = errors.New("preset not found")

// PresetService manages reusable event templates for the creation wizard.
type PresetService struct {
	PresetRepo   *repositories.PresetRepository
	DocumentRepo *repositories.DocumentRepository
}

func NewPresetService(presetRepo *repositories.PresetRepository, documentRepo *repositories.DocumentRepository) *PresetService {
	return &PresetService{PresetRepo: presetRepo, DocumentRepo: documentRepo}
}

// Create saves a preset, ingesting its resource inputs the same way events do.
func (s *PresetService) Create(ctx context.Context, userID int, req *models.CreatePresetRequest) (*models.Preset, error) {
	if !models.ValidDiscipline(req.Discipline) {
		return nil, errors.New("unknown discipline")
	}

	p := &models.Preset{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Discipline:  req.Discipline,
		Remarks:     req.Remarks,
		Materials:   IngestResources(req.Materials),
		CreatedBy:   userID,
	}
	if req.Discipline == models.DisciplineChimie {
		p.Chemicals = IngestResources(req.Chemicals)
	}
	if req.Discipline == models.DisciplinePhysique {
		p.Consumables = IngestResources(req.Consumables)
	}

	if err := s.PresetRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	log.Printf("[Preset] created #%d %q by user %d", p.ID, p.Title, userID)
	return p, nil
}

// Get returns one preset with resources and attachments.
func (s *PresetService) Get(ctx context.Context, id int) (*models.Preset, error) {
	p, err := s.PresetRepo.Get(ctx, id)
	if err == pgx.ErrNoRows {
		return nil, ErrPresetNotFound
	}
	if err != nil {
		return nil, err
	}
	docs, err := s.DocumentRepo.ListByPreset(ctx, p.ID)
	if err != nil {
		return nil, err
	}
	p.Documents = docs
	return p, nil
}

// List returns all presets with resources and attachments.
func (s *PresetService) List(ctx context.Context) ([]*models.Preset, error) {
	presets, err := s.PresetRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range presets {
		docs, err := s.DocumentRepo.ListByPreset(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		p.Documents = docs
	}
	return presets, nil
}

// Delete removes a preset. Its attachments cascade away with it.
func (s *PresetService) Delete(ctx context.Context, id int) error {
	return s.PresetRepo.Delete(ctx, id)
}
