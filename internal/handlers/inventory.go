package handlers

import (
	"errors"
	"net/http"

	"solar_planner/internal/models"
	"solar_planner/internal/repository"
	"solar_planner/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	errCreateRoom   = "failed to create room"
	errListRooms    = "failed to list rooms"
	errDeleteRoom   = "failed to delete room"
	errCreateDevice = "failed to create device"
	errListDevices  = "failed to list devices"
	errUpdateDevice = "failed to update device"
	errDeleteDevice = "failed to delete device"
	errGetSettings  = "failed to load settings"
	errSaveSettings = "failed to save settings"
)

// Centralized error logging and response.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Errorw(logKey, fields...)
	}
	c.JSON(httpCode, gin.H{"error": userMsg})
}

// serviceError maps service-layer errors onto HTTP responses: validation
// failures are the caller's fault, missing records are 404, the rest is 500.
func (h *Handler) serviceError(c *gin.Context, userMsg, logKey string, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logAndJSONError(c, http.StatusInternalServerError, userMsg, logKey, err)
	}
}

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
	})
}

// CreateRoomRequest is the payload for creating a room.
type CreateRoomRequest struct {
	// Room display name
	Name string `json:"name" binding:"required" example:"Lab A"`
	// Purpose. Allowed: Classroom, Lab, Office, ServerRoom
	Purpose string `json:"purpose" binding:"required" example:"Lab"`
}

// @Summary      Create room
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Param        body  body   CreateRoomRequest  true  "Room payload"
// @Success      201   {object}  models.Room
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/rooms [post]
// @Security     BearerAuth
func (h *Handler) createRoom(c *gin.Context) {
	var req CreateRoomRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	room, err := h.services.Inventory.CreateRoom(c.Request.Context(), userID(c), service.RoomParams{
		Name:    req.Name,
		Purpose: models.RoomPurpose(req.Purpose),
	})
	if err != nil {
		h.serviceError(c, errCreateRoom, "room_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

// @Summary      List rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, rooms"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/rooms [get]
// @Security     BearerAuth
func (h *Handler) listRooms(c *gin.Context) {
	rooms, err := h.services.Inventory.ListRooms(c.Request.Context(), userID(c))
	if err != nil {
		h.serviceError(c, errListRooms, "room_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(rooms), "rooms": rooms})
}

// @Summary      Delete room
// @Description  Cascade-deletes every device assigned to the room.
// @Tags         rooms
// @Produce      json
// @Param        id  path  string  true  "Room id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/rooms/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteRoom(c *gin.Context) {
	if err := h.services.Inventory.DeleteRoom(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.serviceError(c, errDeleteRoom, "room_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// CreateDeviceRequest is the payload for creating a device.
type CreateDeviceRequest struct {
	RoomID string `json:"room_id" binding:"required" example:"6f1c..."`
	Name   string `json:"name" binding:"required" example:"AC Unit"`
	// Number of identical units, must be > 0
	Quantity int `json:"quantity" binding:"required" example:"2"`
	// Power draw per unit in watts, must be > 0
	PowerW float64 `json:"power_w" binding:"required" example:"1500"`
	// Daily usage in hours, within [0, 24]
	UsageHours float64 `json:"usage_hours" example:"6"`
}

// @Summary      Create device
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        body  body   CreateDeviceRequest  true  "Device payload"
// @Success      201   {object}  models.Device
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/devices [post]
// @Security     BearerAuth
func (h *Handler) createDevice(c *gin.Context) {
	var req CreateDeviceRequest
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	device, err := h.services.Inventory.CreateDevice(c.Request.Context(), userID(c), service.DeviceParams{
		RoomID:     req.RoomID,
		Name:       req.Name,
		Quantity:   req.Quantity,
		PowerW:     req.PowerW,
		UsageHours: req.UsageHours,
	})
	if err != nil {
		h.serviceError(c, errCreateDevice, "device_create_failed", err)
		return
	}
	c.JSON(http.StatusCreated, device)
}

// @Summary      List devices
// @Tags         devices
// @Produce      json
// @Success      200  {object}  map[string]interface{}  "count, devices"
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/devices [get]
// @Security     BearerAuth
func (h *Handler) listDevices(c *gin.Context) {
	devices, err := h.services.Inventory.ListDevices(c.Request.Context(), userID(c))
	if err != nil {
		h.serviceError(c, errListDevices, "device_list_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(devices), "devices": devices})
}

// @Summary      Update device
// @Description  Partial update; omitted fields keep their stored value.
// @Tags         devices
// @Accept       json
// @Produce      json
// @Param        id    path   string                      true  "Device id"
// @Param        body  body   service.DeviceUpdateParams  true  "Fields to change"
// @Success      200   {object}  models.Device
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/devices/{id} [patch]
// @Security     BearerAuth
func (h *Handler) updateDevice(c *gin.Context) {
	var req service.DeviceUpdateParams
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	device, err := h.services.Inventory.UpdateDevice(c.Request.Context(), userID(c), c.Param("id"), req)
	if err != nil {
		h.serviceError(c, errUpdateDevice, "device_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, device)
}

// @Summary      Delete device
// @Tags         devices
// @Produce      json
// @Param        id  path  string  true  "Device id"
// @Success      200  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/devices/{id} [delete]
// @Security     BearerAuth
func (h *Handler) deleteDevice(c *gin.Context) {
	if err := h.services.Inventory.DeleteDevice(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		h.serviceError(c, errDeleteDevice, "device_delete_failed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// @Summary      Get solar settings
// @Description  First-ever read materializes and persists the defaults.
// @Tags         settings
// @Produce      json
// @Success      200  {object}  models.SolarSettings
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/v1/settings [get]
// @Security     BearerAuth
func (h *Handler) getSettings(c *gin.Context) {
	settings, err := h.services.Inventory.GetSettings(c.Request.Context(), userID(c))
	if err != nil {
		h.serviceError(c, errGetSettings, "settings_get_failed", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

// @Summary      Update solar settings
// @Description  Merge semantics: omitted fields retain their prior value.
// @Tags         settings
// @Accept       json
// @Produce      json
// @Param        body  body   service.SettingsParams  true  "Fields to change"
// @Success      200   {object}  models.SolarSettings
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/v1/settings [put]
// @Security     BearerAuth
func (h *Handler) updateSettings(c *gin.Context) {
	var req service.SettingsParams
	if ok := h.bindJSONOrBadRequest(c, &req); !ok {
		return
	}
	settings, err := h.services.Inventory.UpdateSettings(c.Request.Context(), userID(c), req)
	if err != nil {
		h.serviceError(c, errSaveSettings, "settings_update_failed", err)
		return
	}
	c.JSON(http.StatusOK, settings)
}
