package service

import (
	"context"
	"errors"
	"fmt"

	"solar_planner/internal/models"
	"solar_planner/internal/repository"

	"github.com/google/uuid"
)

// ErrValidation marks input-shape errors caught at the inventory boundary.
// Handlers translate it to a 400 response.
var ErrValidation = errors.New("invalid input")

const maxUsageHours = 24.0

// InventoryService owns room/device/settings mutations. Every successful
// mutation publishes a change notification so subscribers can recompute.
type InventoryService struct {
	rooms    repository.RoomRepo
	devices  repository.DeviceRepo
	settings repository.SettingsRepo
	bus      Publisher
}

func NewInventoryService(rooms repository.RoomRepo, devices repository.DeviceRepo, settings repository.SettingsRepo, bus Publisher) *InventoryService {
	return &InventoryService{rooms: rooms, devices: devices, settings: settings, bus: bus}
}

func (s *InventoryService) notify(userID int) {
	if s.bus != nil {
		s.bus.Publish(TopicInventoryChanged, userID)
	}
}

// ---- Rooms ----

func (s *InventoryService) CreateRoom(ctx context.Context, userID int, p RoomParams) (models.Room, error) {
	if p.Name == "" {
		return models.Room{}, fmt.Errorf("%w: room name is required", ErrValidation)
	}
	if !models.ValidPurpose(p.Purpose) {
		return models.Room{}, fmt.Errorf("%w: purpose must be Classroom, Lab, Office, or ServerRoom", ErrValidation)
	}

	room := models.Room{
		ID:      uuid.NewString(),
		Name:    p.Name,
		Purpose: p.Purpose,
	}
	if err := s.rooms.Create(ctx, userID, room); err != nil {
		return models.Room{}, err
	}
	s.notify(userID)
	return room, nil
}

func (s *InventoryService) ListRooms(ctx context.Context, userID int) ([]models.Room, error) {
	return s.rooms.List(ctx, userID)
}

// DeleteRoom removes the room and, by the storage contract, every device
// referencing it.
func (s *InventoryService) DeleteRoom(ctx context.Context, userID int, roomID string) error {
	if err := s.rooms.Delete(ctx, userID, roomID); err != nil {
		return err
	}
	s.notify(userID)
	return nil
}

// ---- Devices ----

func validateDeviceFields(quantity int, powerW, usageHours float64) error {
	if quantity <= 0 {
		return fmt.Errorf("%w: quantity must be > 0", ErrValidation)
	}
	if powerW <= 0 {
		return fmt.Errorf("%w: power_w must be > 0", ErrValidation)
	}
	if usageHours < 0 || usageHours > maxUsageHours {
		return fmt.Errorf("%w: usage_hours must be within [0, 24]", ErrValidation)
	}
	return nil
}

func (s *InventoryService) CreateDevice(ctx context.Context, userID int, p DeviceParams) (models.Device, error) {
	if p.Name == "" {
		return models.Device{}, fmt.Errorf("%w: device name is required", ErrValidation)
	}
	if err := validateDeviceFields(p.Quantity, p.PowerW, p.UsageHours); err != nil {
		return models.Device{}, err
	}
	// The room reference must resolve; devices are owned by exactly one room.
	if _, err := s.rooms.GetByID(ctx, userID, p.RoomID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return models.Device{}, fmt.Errorf("%w: room %q does not exist", ErrValidation, p.RoomID)
		}
		return models.Device{}, err
	}

	d := models.Device{
		ID:         uuid.NewString(),
		RoomID:     p.RoomID,
		Name:       p.Name,
		Quantity:   p.Quantity,
		PowerW:     p.PowerW,
		UsageHours: p.UsageHours,
	}
	if err := s.devices.Create(ctx, userID, d); err != nil {
		return models.Device{}, err
	}
	s.notify(userID)
	return d, nil
}

func (s *InventoryService) ListDevices(ctx context.Context, userID int) ([]models.Device, error) {
	return s.devices.List(ctx, userID)
}

// UpdateDevice merges the partial params over the stored device, validates
// the merged result, and writes it back.
func (s *InventoryService) UpdateDevice(ctx context.Context, userID int, deviceID string, p DeviceUpdateParams) (models.Device, error) {
	existing, err := s.devices.GetByID(ctx, userID, deviceID)
	if err != nil {
		return models.Device{}, err
	}

	d := *existing
	if p.RoomID != nil {
		d.RoomID = *p.RoomID
	}
	if p.Name != nil {
		d.Name = *p.Name
	}
	if p.Quantity != nil {
		d.Quantity = *p.Quantity
	}
	if p.PowerW != nil {
		d.PowerW = *p.PowerW
	}
	if p.UsageHours != nil {
		d.UsageHours = *p.UsageHours
	}

	if d.Name == "" {
		return models.Device{}, fmt.Errorf("%w: device name is required", ErrValidation)
	}
	if err := validateDeviceFields(d.Quantity, d.PowerW, d.UsageHours); err != nil {
		return models.Device{}, err
	}
	if p.RoomID != nil {
		if _, err := s.rooms.GetByID(ctx, userID, d.RoomID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return models.Device{}, fmt.Errorf("%w: room %q does not exist", ErrValidation, d.RoomID)
			}
			return models.Device{}, err
		}
	}

	if err := s.devices.Update(ctx, userID, d); err != nil {
		return models.Device{}, err
	}
	s.notify(userID)
	return d, nil
}

func (s *InventoryService) DeleteDevice(ctx context.Context, userID int, deviceID string) error {
	if err := s.devices.Delete(ctx, userID, deviceID); err != nil {
		return err
	}
	s.notify(userID)
	return nil
}

// ---- Settings ----

func validateSettings(s models.SolarSettings) error {
	if s.ElectricityRate <= 0 {
		return fmt.Errorf("%w: electricity_rate must be > 0", ErrValidation)
	}
	if s.SolarCostPerKW < 0 {
		return fmt.Errorf("%w: solar_cost_per_kw must be >= 0", ErrValidation)
	}
	if s.EfficiencyFactor <= 0 || s.EfficiencyFactor > 1 {
		return fmt.Errorf("%w: efficiency_factor must be within (0, 1]", ErrValidation)
	}
	if s.SunlightHours <= 0 || s.SunlightHours > maxUsageHours {
		return fmt.Errorf("%w: sunlight_hours must be within (0, 24]", ErrValidation)
	}
	if s.LifetimeYears <= 0 {
		return fmt.Errorf("%w: lifetime_years must be > 0", ErrValidation)
	}
	if s.AnnualInflation < 0 {
		return fmt.Errorf("%w: annual_inflation must be >= 0", ErrValidation)
	}
	return nil
}

// GetSettings returns the user's effective settings. The first-ever read
// materializes the defaults and persists them back.
func (s *InventoryService) GetSettings(ctx context.Context, userID int) (models.SolarSettings, error) {
	settings, found, err := s.settings.Load(ctx, userID)
	if err != nil {
		return models.SolarSettings{}, err
	}
	if !found {
		settings = models.DefaultSolarSettings()
		if err := s.settings.Save(ctx, userID, settings); err != nil {
			return models.SolarSettings{}, err
		}
	}
	return settings, nil
}

// UpdateSettings upserts with merge semantics: unspecified fields retain
// their prior value (defaults when nothing was stored yet).
func (s *InventoryService) UpdateSettings(ctx context.Context, userID int, p SettingsParams) (models.SolarSettings, error) {
	current, err := s.GetSettings(ctx, userID)
	if err != nil {
		return models.SolarSettings{}, err
	}

	if p.ElectricityRate != nil {
		current.ElectricityRate = *p.ElectricityRate
	}
	if p.SolarCostPerKW != nil {
		current.SolarCostPerKW = *p.SolarCostPerKW
	}
	if p.EfficiencyFactor != nil {
		current.EfficiencyFactor = *p.EfficiencyFactor
	}
	if p.SunlightHours != nil {
		current.SunlightHours = *p.SunlightHours
	}
	if p.LifetimeYears != nil {
		current.LifetimeYears = *p.LifetimeYears
	}
	if p.AnnualInflation != nil {
		current.AnnualInflation = *p.AnnualInflation
	}

	if err := validateSettings(current); err != nil {
		return models.SolarSettings{}, err
	}
	if err := s.settings.Save(ctx, userID, current); err != nil {
		return models.SolarSettings{}, err
	}
	s.notify(userID)
	return current, nil
}
