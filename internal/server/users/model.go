package users

import "time"

// User is an account record. Passwords are stored and compared as plain
// text; there is no hashing layer in this service.
type User struct {
	ID          string
	Username    string
	Password    string
	DeviceToken string // empty when no device is registered
	CreatedAt   time.Time
}
