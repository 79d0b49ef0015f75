package service

import (
	"context"

	"solar_planner/internal/engine"
	"solar_planner/internal/models"
	"solar_planner/internal/repository"
)

// PlannerService reads a consistent snapshot of rooms, devices and settings,
// then hands it to the pure engine. Nothing derived is cached between calls.
type PlannerService struct {
	rooms    repository.RoomRepo
	devices  repository.DeviceRepo
	settings repository.SettingsRepo
}

func NewPlannerService(rooms repository.RoomRepo, devices repository.DeviceRepo, settings repository.SettingsRepo) *PlannerService {
	return &PlannerService{rooms: rooms, devices: devices, settings: settings}
}

// Report recomputes the full building report from current state.
func (s *PlannerService) Report(ctx context.Context, userID int) (models.BuildingReport, error) {
	rooms, err := s.rooms.List(ctx, userID)
	if err != nil {
		return models.BuildingReport{}, err
	}
	devices, err := s.devices.List(ctx, userID)
	if err != nil {
		return models.BuildingReport{}, err
	}
	settings, found, err := s.settings.Load(ctx, userID)
	if err != nil {
		return models.BuildingReport{}, err
	}
	if !found {
		settings = models.DefaultSolarSettings()
	}

	return engine.ComputeBuildingTotals(rooms, devices, settings), nil
}
