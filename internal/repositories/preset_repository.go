package repositories

import (
	"context"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PresetRepository struct {
	DB *pgxpool.Pool
}

func NewPresetRepository(db *pgxpool.Pool) *PresetRepository {
	return &PresetRepository{DB: db}
}

// Create inserts the preset row and its resource rows.
func (r *PresetRepository) Create(ctx context.Context, p *models.Preset) error {
	err := r.DB.QueryRow(ctx,
		`INSERT INTO presets(title, description, type, discipline, remarks, created_by)
         VALUES($1, $2, $3, $4, $5, $6)
         RETURNING id, created_at, updated_at`,
		p.Title, p.Description, p.Type, p.Discipline, p.Remarks, p.CreatedBy,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return err
	}

	for category, refs := range map[string][]models.ResourceRef{
		ResourceCategoryMaterials:   p.Materials,
		ResourceCategoryChemicals:   p.Chemicals,
		ResourceCategoryConsumables: p.Consumables,
	} {
		for _, ref := range refs {
			_, err := r.DB.Exec(ctx,
				`INSERT INTO preset_resources(preset_id, category, kind, resource_id, catalog_id, name, requested_quantity, unit, is_custom)
                 VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				p.ID, category, ref.Kind, ref.ID, ref.CatalogID, ref.Name,
				ref.RequestedQuantity, ref.Unit, ref.IsCustom)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// Get returns one preset with its resources.
func (r *PresetRepository) Get(ctx context.Context, id int) (*models.Preset, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, title, COALESCE(description, ''), type, discipline, COALESCE(remarks, ''), created_by, created_at, updated_at
         FROM presets WHERE id=$1`, id)

	var p models.Preset
	err := row.Scan(&p.ID, &p.Title, &p.Description, &p.Type, &p.Discipline,
		&p.Remarks, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := r.loadResources(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// List returns all presets with their resources.
func (r *PresetRepository) List(ctx context.Context) ([]*models.Preset, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, title, COALESCE(description, ''), type, discipline, COALESCE(remarks, ''), created_by, created_at, updated_at
         FROM presets ORDER BY title ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var presets []*models.Preset
	for rows.Next() {
		var p models.Preset
		err := rows.Scan(&p.ID, &p.Title, &p.Description, &p.Type, &p.Discipline,
			&p.Remarks, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt)
		if err != nil {
			return nil, err
		}
		presets = append(presets, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, p := range presets {
		if err := r.loadResources(ctx, p); err != nil {
			return nil, err
		}
	}
	return presets, nil
}

// Delete removes a preset and its resources (cascade).
func (r *PresetRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM presets WHERE id=$1`, id)
	return err
}

func (r *PresetRepository) loadResources(ctx context.Context, p *models.Preset) error {
	rows, err := r.DB.Query(ctx,
		`SELECT category, kind, resource_id, catalog_id, name, requested_quantity, unit, is_custom
         FROM preset_resources WHERE preset_id=$1 ORDER BY id ASC`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var ref models.ResourceRef
		err := rows.Scan(&category, &ref.Kind, &ref.ID, &ref.CatalogID, &ref.Name,
			&ref.RequestedQuantity, &ref.Unit, &ref.IsCustom)
		if err != nil {
			return err
		}
		switch category {
		case ResourceCategoryMaterials:
			p.Materials = append(p.Materials, ref)
		case ResourceCategoryChemicals:
			p.Chemicals = append(p.Chemicals, ref)
		case ResourceCategoryConsumables:
			p.Consumables = append(p.Consumables, ref)
		}
	}
	return rows.Err()
}
