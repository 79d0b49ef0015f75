package service

import (
	"context"
	"time"

	"solar_planner/internal/advisor"
	"solar_planner/internal/models"
	"solar_planner/internal/repository"
)

type Authorization interface {
	SignUp(username, password string) (int, error)
	GenerateToken(username, password string) (string, error)
	ParseToken(accessToken string) (int, error)
}

// Inventory exposes CRUD over rooms, devices and solar settings. All input
// validation lives here, at the inventory-entry boundary; the pure engine
// never validates.
type Inventory interface {
	CreateRoom(ctx context.Context, userID int, p RoomParams) (models.Room, error)
	ListRooms(ctx context.Context, userID int) ([]models.Room, error)
	DeleteRoom(ctx context.Context, userID int, roomID string) error

	CreateDevice(ctx context.Context, userID int, p DeviceParams) (models.Device, error)
	ListDevices(ctx context.Context, userID int) ([]models.Device, error)
	UpdateDevice(ctx context.Context, userID int, deviceID string, p DeviceUpdateParams) (models.Device, error)
	DeleteDevice(ctx context.Context, userID int, deviceID string) error

	GetSettings(ctx context.Context, userID int) (models.SolarSettings, error)
	UpdateSettings(ctx context.Context, userID int, p SettingsParams) (models.SolarSettings, error)
}

// Planner recomputes the full building report from a fresh storage snapshot.
type Planner interface {
	Report(ctx context.Context, userID int) (models.BuildingReport, error)
}

// Recommender derives the action plan: advisory service first, rule-based
// fallback on any failure.
type Recommender interface {
	Derive(ctx context.Context, userID int) (models.Recommendation, error)
}

// Publisher notifies subscribers that a user's inventory or settings changed.
// Satisfied by EventBus.Bus.
type Publisher interface {
	Publish(topic string, args ...interface{})
}

// TopicInventoryChanged carries the affected user id as its only argument.
const TopicInventoryChanged = "planner:inventory_changed"

// Service aggregates all sub-services.
type Service struct {
	Inventory
	Planner
	Recommender
	Authorization
}

// NewService wires the repository layer, change bus and advisory endpoint
// into concrete services.
func NewService(repos *repository.Repository, bus Publisher, advisorURL string, advisorTimeout time.Duration) *Service {
	planner := NewPlannerService(repos.Rooms, repos.Devices, repos.Settings)
	return &Service{
		Inventory: NewInventoryService(repos.Rooms, repos.Devices, repos.Settings, bus),
		Planner:   planner,
		Recommender: NewRecommendService(planner,
			advisor.NewRemote(advisorURL, advisorTimeout),
			advisor.NewRuleBased()),
		Authorization: NewAuthService(repos.Auth),
	}
}
