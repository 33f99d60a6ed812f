package contact

import "time"

// Entry is a single address-book record, private to its owner. The phone it
// points at may or may not belong to a registered user.
type Entry struct {
	ID           string
	OwnerID      string
	ContactPhone string
	ContactName  string
	CreatedAt    time.Time
}
