package workouts

import "github.com/google/uuid"

// IDGenerator hands out identifiers for drafts and exercises.
type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}
