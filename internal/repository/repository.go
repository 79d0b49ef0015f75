package repository

import (
	"context"
	"database/sql"

	"solar_planner/internal/models"
)

type Authorization interface {
	Create(username, hash string) (int, error)
	GetByUsername(username string) (*models.User, error)
}

// RoomRepo stores rooms scoped by user id. Delete cascades to the room's
// devices inside a single transaction.
type RoomRepo interface {
	Create(ctx context.Context, userID int, r models.Room) error
	GetByID(ctx context.Context, userID int, id string) (*models.Room, error)
	List(ctx context.Context, userID int) ([]models.Room, error)
	Delete(ctx context.Context, userID int, id string) error
}

// DeviceRepo stores devices scoped by user id.
type DeviceRepo interface {
	Create(ctx context.Context, userID int, d models.Device) error
	GetByID(ctx context.Context, userID int, id string) (*models.Device, error)
	List(ctx context.Context, userID int) ([]models.Device, error)
	Update(ctx context.Context, userID int, d models.Device) error
	Delete(ctx context.Context, userID int, id string) error
}

// SettingsRepo stores the per-user SolarSettings singleton. Load reports
// whether a row existed so the service can materialize defaults on first read.
type SettingsRepo interface {
	Load(ctx context.Context, userID int) (models.SolarSettings, bool, error)
	Save(ctx context.Context, userID int, s models.SolarSettings) error
}

type Repository struct {
	Rooms    RoomRepo
	Devices  DeviceRepo
	Settings SettingsRepo
	Auth     Authorization
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Rooms:    NewRoomSQLite(db),
		Devices:  NewDeviceSQLite(db),
		Settings: NewSettingsSQLite(db),
		Auth:     NewUserRepository(db),
	}
}
