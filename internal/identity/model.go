package identity

import "time"

// User represents a registered directory member. Phone is stored in canonical
// form and never changes after registration.
type User struct {
	ID           string
	Phone        string
	Name         string
	Email        string // optional, empty when not provided
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
}

// ScoredUser pairs a user with the trigram similarity of their name against a
// search query.
type ScoredUser struct {
	User
	Similarity float64
}

// Credentials carries a login/registration request.
type Credentials struct {
	Name     string
	Phone    string
	Email    string
	Password string
}
