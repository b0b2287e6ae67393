package repositories

import (
	"context"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Catalog categories, mirroring the four inventory endpoints.
const (
	CatalogMateriel    = "materiel"
	CatalogChemicals   = "chemicals"
	CatalogEquipment   = "equipement"
	CatalogConsumables = "consommables"
)

// CatalogRepository reads and writes the inventory catalogs. All four catalogs
// share one table, split by category and discipline.
type CatalogRepository struct {
	DB *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{DB: db}
}

const catalogColumns = `id, name, quantity, quantity_prevision, min_quantity, unit, discipline,
	 COALESCE(cas_number, ''), expiration_date, created_at, updated_at`

// List returns the items of one catalog category, optionally filtered by
// discipline (empty means all).
func (r *CatalogRepository) List(ctx context.Context, category, discipline string) ([]models.CatalogItem, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog_items WHERE category=$1`
	args := []any{category}
	if discipline != "" {
		query += ` AND discipline=$2`
		args = append(args, discipline)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.CatalogItem
	for rows.Next() {
		var item models.CatalogItem
		err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.QuantityPrevision,
			&item.MinQuantity, &item.Unit, &item.Discipline, &item.CasNumber,
			&item.ExpirationDate, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Get returns one catalog item by id.
func (r *CatalogRepository) Get(ctx context.Context, id int) (*models.CatalogItem, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT `+catalogColumns+` FROM catalog_items WHERE id=$1`, id)

	var item models.CatalogItem
	err := row.Scan(&item.ID, &item.Name, &item.Quantity, &item.QuantityPrevision,
		&item.MinQuantity, &item.Unit, &item.Discipline, &item.CasNumber,
		&item.ExpirationDate, &item.CreatedAt, &item.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetMany returns catalog items by id, keyed by id. Missing ids are absent
// from the map, not an error: forecasts skip unknown items.
func (r *CatalogRepository) GetMany(ctx context.Context, ids []int) (map[int]models.CatalogItem, error) {
	if len(ids) == 0 {
		return map[int]models.CatalogItem{}, nil
	}
	rows, err := r.DB.Query(ctx,
		`SELECT `+catalogColumns+` FROM catalog_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make(map[int]models.CatalogItem, len(ids))
	for rows.Next() {
		var item models.CatalogItem
		err := rows.Scan(&item.ID, &item.Name, &item.Quantity, &item.QuantityPrevision,
			&item.MinQuantity, &item.Unit, &item.Discipline, &item.CasNumber,
			&item.ExpirationDate, &item.CreatedAt, &item.UpdatedAt)
		if err != nil {
			return nil, err
		}
		items[item.ID] = item
	}
	return items, rows.Err()
}

// Create inserts a new catalog item.
func (r *CatalogRepository) Create(ctx context.Context, category string, item *models.CatalogItem) error {
	return r.DB.QueryRow(ctx,
		`INSERT INTO catalog_items(category, name, quantity, quantity_prevision, min_quantity, unit, discipline, cas_number, expiration_date)
         VALUES($1, $2, $3, $4, $5, $6, $7, NULLIF($8, ''), $9)
         RETURNING id, created_at, updated_at`,
		category, item.Name, item.Quantity, item.QuantityPrevision, item.MinQuantity,
		item.Unit, item.Discipline, item.CasNumber, item.ExpirationDate,
	).Scan(&item.ID, &item.CreatedAt, &item.UpdatedAt)
}

// Update rewrites a catalog item.
func (r *CatalogRepository) Update(ctx context.Context, item *models.CatalogItem) error {
	_, err := r.DB.Exec(ctx,
		`UPDATE catalog_items
         SET name=$1, quantity=$2, quantity_prevision=$3, min_quantity=$4, unit=$5,
             cas_number=NULLIF($6, ''), expiration_date=$7, updated_at=CURRENT_TIMESTAMP
         WHERE id=$8`,
		item.Name, item.Quantity, item.QuantityPrevision, item.MinQuantity, item.Unit,
		item.CasNumber, item.ExpirationDate, item.ID)
	return err
}

// Delete removes a catalog item. Event resource rows keep their denormalized
// name, so past events still display correctly.
func (r *CatalogRepository) Delete(ctx context.Context, id int) error {
	_, err := r.DB.Exec(ctx, `DELETE FROM catalog_items WHERE id=$1`, id)
	return err
}
