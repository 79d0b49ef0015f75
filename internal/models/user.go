package models

// User is the opaque identity that scopes rooms, devices and settings.
type User struct {
	ID           int    `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"` // never serialized
}
