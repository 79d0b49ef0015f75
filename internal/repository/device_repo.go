package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"solar_planner/internal/models"
)

type DeviceSQLite struct {
	db *sql.DB
}

func NewDeviceSQLite(db *sql.DB) *DeviceSQLite { return &DeviceSQLite{db: db} }

var _ DeviceRepo = (*DeviceSQLite)(nil)

const (
	insertDeviceSQL = `
		INSERT INTO devices (id, user_id, room_id, name, quantity, power_w, usage_hours)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	selectDeviceSQL  = `SELECT id, room_id, name, quantity, power_w, usage_hours FROM devices WHERE user_id = ? AND id = ?`
	selectDevicesSQL = `SELECT id, room_id, name, quantity, power_w, usage_hours FROM devices WHERE user_id = ? ORDER BY name ASC`
	updateDeviceSQL  = `
		UPDATE devices SET room_id = ?, name = ?, quantity = ?, power_w = ?, usage_hours = ?
		WHERE user_id = ? AND id = ?
	`
	deleteDeviceSQL = `DELETE FROM devices WHERE user_id = ? AND id = ?`
)

func (r *DeviceSQLite) Create(ctx context.Context, userID int, d models.Device) error {
	if _, err := r.db.ExecContext(ctx, insertDeviceSQL,
		d.ID, userID, d.RoomID, d.Name, d.Quantity, d.PowerW, d.UsageHours,
	); err != nil {
		return fmt.Errorf("insert device %q: %w", d.ID, err)
	}
	return nil
}

func (r *DeviceSQLite) GetByID(ctx context.Context, userID int, id string) (*models.Device, error) {
	var d models.Device
	err := r.db.QueryRowContext(ctx, selectDeviceSQL, userID, id).
		Scan(&d.ID, &d.RoomID, &d.Name, &d.Quantity, &d.PowerW, &d.UsageHours)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select device %q: %w", id, err)
	}
	return &d, nil
}

func (r *DeviceSQLite) List(ctx context.Context, userID int) ([]models.Device, error) {
	rows, err := r.db.QueryContext(ctx, selectDevicesSQL, userID)
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	defer rows.Close()

	out := make([]models.Device, 0, 32)
	for rows.Next() {
		var d models.Device
		if err := rows.Scan(&d.ID, &d.RoomID, &d.Name, &d.Quantity, &d.PowerW, &d.UsageHours); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Update writes the full row; partial-update merge happens in the service,
// which read-modify-writes under the storage collaborator's serialization.
func (r *DeviceSQLite) Update(ctx context.Context, userID int, d models.Device) error {
	res, err := r.db.ExecContext(ctx, updateDeviceSQL,
		d.RoomID, d.Name, d.Quantity, d.PowerW, d.UsageHours, userID, d.ID,
	)
	if err != nil {
		return fmt.Errorf("update device %q: %w", d.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *DeviceSQLite) Delete(ctx context.Context, userID int, id string) error {
	res, err := r.db.ExecContext(ctx, deleteDeviceSQL, userID, id)
	if err != nil {
		return fmt.Errorf("delete device %q: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrNotFound
	}
	return nil
}
