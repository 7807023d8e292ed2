package repository

import (
	"bdaywisher/internal/domain/entity"
	"context"
)

// RosterSource is the external record store holding the roster.
type RosterSource interface {
	// FetchAll returns every person in the roster.
	FetchAll(ctx context.Context) ([]*entity.Person, error)
	// Append adds a person to the roster.
	Append(ctx context.Context, person *entity.Person) error
}
