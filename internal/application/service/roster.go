package service

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/domain/entity"
	"context"
	"time"
)

// RosterService owns the in-memory roster and today's/tomorrow's birthdays.
type RosterService interface {
	// RefreshAll replaces the roster with a fresh fetch from the source.
	RefreshAll(ctx context.Context) ([]*entity.Person, error)
	// RefreshTodayTomorrow recomputes the people whose birthday is on ref's day or the next.
	RefreshTodayTomorrow(ctx context.Context, ref time.Time) (*entity.RosterSnapshot, error)
	// AddPerson appends a person to the source and the in-memory roster.
	AddPerson(ctx context.Context, person *entity.Person) error
	// LoadCachedRoster installs the durable cache hint when the roster is empty.
	LoadCachedRoster(ctx context.Context) int
	// ClearCaches drops the durable cache hints.
	ClearCaches(ctx context.Context) error
	// People returns the in-memory roster.
	People() []*entity.Person
	// Find returns the person with the given identifier.
	Find(id string) (*entity.Person, bool)
	// Snapshot returns the last computed today/tomorrow snapshot, or nil.
	Snapshot() *entity.RosterSnapshot
	// Status reports the loading and error flags.
	Status() dto.RosterStatus
}
