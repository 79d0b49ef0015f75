package handlers

import (
	"context"
	"net/http"

	"solar_planner/internal/models"
	"solar_planner/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockInventory struct {
	room      models.Room
	rooms     []models.Room
	device    models.Device
	devices   []models.Device
	settings  models.SolarSettings
	err       error
	deleteErr error

	lastRoomID         string
	lastDeviceID       string
	lastRoomParams     service.RoomParams
	lastDeviceParams   service.DeviceParams
	lastUpdateParams   service.DeviceUpdateParams
	lastSettingsParams service.SettingsParams
}

func (m *mockInventory) CreateRoom(_ context.Context, _ int, p service.RoomParams) (models.Room, error) {
	m.lastRoomParams = p
	return m.room, m.err
}
func (m *mockInventory) ListRooms(_ context.Context, _ int) ([]models.Room, error) {
	return m.rooms, m.err
}
func (m *mockInventory) DeleteRoom(_ context.Context, _ int, roomID string) error {
	m.lastRoomID = roomID
	return m.deleteErr
}
func (m *mockInventory) CreateDevice(_ context.Context, _ int, p service.DeviceParams) (models.Device, error) {
	m.lastDeviceParams = p
	return m.device, m.err
}
func (m *mockInventory) ListDevices(_ context.Context, _ int) ([]models.Device, error) {
	return m.devices, m.err
}
func (m *mockInventory) UpdateDevice(_ context.Context, _ int, deviceID string, p service.DeviceUpdateParams) (models.Device, error) {
	m.lastDeviceID = deviceID
	m.lastUpdateParams = p
	return m.device, m.err
}
func (m *mockInventory) DeleteDevice(_ context.Context, _ int, _ string) error {
	return m.deleteErr
}
func (m *mockInventory) GetSettings(_ context.Context, _ int) (models.SolarSettings, error) {
	return m.settings, m.err
}
func (m *mockInventory) UpdateSettings(_ context.Context, _ int, p service.SettingsParams) (models.SolarSettings, error) {
	m.lastSettingsParams = p
	return m.settings, m.err
}

type mockPlanner struct {
	report models.BuildingReport
	err    error
	calls  int
}

func (m *mockPlanner) Report(_ context.Context, _ int) (models.BuildingReport, error) {
	m.calls++
	return m.report, m.err
}

type mockRecommender struct {
	rec   models.Recommendation
	err   error
	calls int
}

func (m *mockRecommender) Derive(_ context.Context, _ int) (models.Recommendation, error) {
	m.calls++
	return m.rec, m.err
}

// authHeader builds a Bearer Authorization header for requests in tests.
func authHeader(token string) http.Header {
	hd := http.Header{}
	hd.Set("Authorization", "Bearer "+token)
	return hd
}

// newTestRouter builds a full router over the mocked service composition.
func newTestRouter(s *service.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewHandler(s, nil, nil)
	return h.InitRoutes()
}
