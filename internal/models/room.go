package models

// RoomPurpose classifies what a room is used for.
type RoomPurpose string

const (
	PurposeClassroom  RoomPurpose = "Classroom"
	PurposeLab        RoomPurpose = "Lab"
	PurposeOffice     RoomPurpose = "Office"
	PurposeServerRoom RoomPurpose = "ServerRoom"
)

// ValidPurpose reports whether p is one of the known room purposes.
func ValidPurpose(p RoomPurpose) bool {
	switch p {
	case PurposeClassroom, PurposeLab, PurposeOffice, PurposeServerRoom:
		return true
	}
	return false
}

// Room is an inventory unit owning zero or more devices by reference.
type Room struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Purpose RoomPurpose `json:"purpose"` // Classroom | Lab | Office | ServerRoom
}

// Device is a powered appliance assigned to exactly one room via RoomID.
// RoomID is a soft reference resolved by lookup, not a pointer.
type Device struct {
	ID         string  `json:"id"`
	RoomID     string  `json:"room_id"`
	Name       string  `json:"name"`
	Quantity   int     `json:"quantity"`    // > 0
	PowerW     float64 `json:"power_w"`     // > 0, watts per unit
	UsageHours float64 `json:"usage_hours"` // [0, 24] hours per day
}
