package photos

import "time"

// Photo is one upload event. Records are written once and never updated;
// the owning user is referenced by id only, with the username denormalized
// for display.
type Photo struct {
	ID        int64
	UID       string
	Username  string
	Filename  string
	URL       string
	Status    string
	CreatedAt time.Time
}
