package repositories

import (
	"context"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ClassRepository struct {
	DB *pgxpool.Pool
}

func NewClassRepository(db *pgxpool.Pool) *ClassRepository {
	return &ClassRepository{DB: db}
}

// List returns all school classes.
func (r *ClassRepository) List(ctx context.Context) ([]models.Class, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, COALESCE(level, ''), headcount, created_at
         FROM classes ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var classes []models.Class
	for rows.Next() {
		var c models.Class
		if err := rows.Scan(&c.ID, &c.Name, &c.Level, &c.Headcount, &c.CreatedAt); err != nil {
			return nil, err
		}
		classes = append(classes, c)
	}
	return classes, rows.Err()
}
