package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"solar_planner/internal/models"
)

type RoomSQLite struct {
	db *sql.DB
}

func NewRoomSQLite(db *sql.DB) *RoomSQLite { return &RoomSQLite{db: db} }

var _ RoomRepo = (*RoomSQLite)(nil)

// ErrNotFound is returned when a scoped lookup matches no row.
var ErrNotFound = errors.New("record not found")

const (
	insertRoomSQL     = `INSERT INTO rooms (id, user_id, name, purpose) VALUES (?, ?, ?, ?)`
	selectRoomSQL     = `SELECT id, name, purpose FROM rooms WHERE user_id = ? AND id = ?`
	selectRoomsSQL    = `SELECT id, name, purpose FROM rooms WHERE user_id = ? ORDER BY name ASC`
	deleteRoomSQL     = `DELETE FROM rooms WHERE user_id = ? AND id = ?`
	deleteRoomDevsSQL = `DELETE FROM devices WHERE user_id = ? AND room_id = ?`
)

func (r *RoomSQLite) Create(ctx context.Context, userID int, room models.Room) error {
	if _, err := r.db.ExecContext(ctx, insertRoomSQL, room.ID, userID, room.Name, string(room.Purpose)); err != nil {
		return fmt.Errorf("insert room %q: %w", room.ID, err)
	}
	return nil
}

func (r *RoomSQLite) GetByID(ctx context.Context, userID int, id string) (*models.Room, error) {
	var room models.Room
	var purpose string
	err := r.db.QueryRowContext(ctx, selectRoomSQL, userID, id).Scan(&room.ID, &room.Name, &purpose)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select room %q: %w", id, err)
	}
	room.Purpose = models.RoomPurpose(purpose)
	return &room, nil
}

func (r *RoomSQLite) List(ctx context.Context, userID int) ([]models.Room, error) {
	rows, err := r.db.QueryContext(ctx, selectRoomsSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer rows.Close()

	out := make([]models.Room, 0, 16)
	for rows.Next() {
		var room models.Room
		var purpose string
		if err := rows.Scan(&room.ID, &room.Name, &purpose); err != nil {
			return nil, err
		}
		room.Purpose = models.RoomPurpose(purpose)
		out = append(out, room)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the room and all devices referencing it in one transaction,
// so a recompute never observes a half-deleted room.
func (r *RoomSQLite) Delete(ctx context.Context, userID int, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete room %q: %w", id, err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, deleteRoomDevsSQL, userID, id); err != nil {
		return fmt.Errorf("cascade delete devices of room %q: %w", id, err)
	}

	res, err := tx.ExecContext(ctx, deleteRoomSQL, userID, id)
	if err != nil {
		return fmt.Errorf("delete room %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete room %q: %w", id, err)
	}
	return nil
}
