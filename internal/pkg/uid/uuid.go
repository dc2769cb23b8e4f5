package uid

import "github.com/google/uuid"

// UUID generates time-ordered UUIDv7 strings, used for correlation IDs and
// export object names.
type UUID struct{}

// NewUUID returns a UUID generator.
func NewUUID() *UUID {
	return &UUID{}
}

// Generate returns a new UUID string. Falls back to v4 if the v7 source fails.
func (u *UUID) Generate() string {
	if id, err := uuid.NewV7(); err == nil {
		return id.String()
	}
	return uuid.NewString()
}
