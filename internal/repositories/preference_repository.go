package repositories

import (
	"context"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PreferenceRepository persists per-user UI state (last active calendar tab).
type PreferenceRepository struct {
	DB *pgxpool.Pool
}

func NewPreferenceRepository(db *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

// Get returns the user's preference. A missing row is not an error: the
// zero value (daily tab) is returned instead.
func (r *PreferenceRepository) Get(ctx context.Context, userID int) (*models.UserPreference, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT user_id, tab_index, updated_at FROM user_preferences WHERE user_id=$1`, userID)

	var pref models.UserPreference
	err := row.Scan(&pref.UserID, &pref.TabIndex, &pref.UpdatedAt)
	if err == pgx.ErrNoRows {
		return &models.UserPreference{UserID: userID, TabIndex: models.TabDaily}, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Set upserts the user's tab index.
func (r *PreferenceRepository) Set(ctx context.Context, userID, tabIndex int) error {
	_, err := r.DB.Exec(ctx,
		`INSERT INTO user_preferences(user_id, tab_index)
         VALUES($1, $2)
         ON CONFLICT (user_id) DO UPDATE SET tab_index=$2, updated_at=CURRENT_TIMESTAMP`,
		userID, tabIndex)
	return err
}
