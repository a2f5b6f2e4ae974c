package uid

import "github.com/google/uuid"

// UUID generates string identifiers, used here for JWT token IDs.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a UUIDv7 string. V7 embeds a timestamp, so token IDs sort
// by issue time; if the entropy source fails it degrades to a random v4.
func (u *UUID) Generate() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}

	return id.String()
}
