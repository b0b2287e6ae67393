package repositories

import (
	"context"

	"labo-backend/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RoomRepository struct {
	DB *pgxpool.Pool
}

func NewRoomRepository(db *pgxpool.Pool) *RoomRepository {
	return &RoomRepository{DB: db}
}

// List returns all lab rooms.
func (r *RoomRepository) List(ctx context.Context) ([]models.Room, error) {
	rows, err := r.DB.Query(ctx,
		`SELECT id, name, capacity, COALESCE(description, ''), created_at
         FROM rooms ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rooms []models.Room
	for rows.Next() {
		var room models.Room
		if err := rows.Scan(&room.ID, &room.Name, &room.Capacity, &room.Description, &room.CreatedAt); err != nil {
			return nil, err
		}
		rooms = append(rooms, room)
	}
	return rooms, rows.Err()
}

// Get returns one room by id.
func (r *RoomRepository) Get(ctx context.Context, id int) (*models.Room, error) {
	row := r.DB.QueryRow(ctx,
		`SELECT id, name, capacity, COALESCE(description, ''), created_at FROM rooms WHERE id=$1`, id)

	var room models.Room
	err := row.Scan(&room.ID, &room.Name, &room.Capacity, &room.Description, &room.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &room, nil
}
