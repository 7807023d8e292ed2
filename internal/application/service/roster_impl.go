package service

import (
	"bdaywisher/internal/application/dto"
	"bdaywisher/internal/domain/constant"
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"bdaywisher/internal/pkg/clock"
	"bdaywisher/internal/pkg/dateutil"
	appErrors "bdaywisher/internal/pkg/errors"
	"bdaywisher/internal/pkg/logger"
	"bdaywisher/internal/pkg/metrics"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"sync"
	"time"
)

var mobileNumberPattern = regexp.MustCompile(`^[0-9]{10}$`)

// rosterCache is the durable hint written after every successful refresh.
type rosterCache struct {
	People    []*entity.Person `json:"people"`
	Timestamp time.Time        `json:"timestamp"`
}

// snapshotCache is the durable hint for the today/tomorrow subsets.
type snapshotCache struct {
	Date      string           `json:"date"`
	Today     []*entity.Person `json:"today"`
	Tomorrow  []*entity.Person `json:"tomorrow"`
	Timestamp time.Time        `json:"timestamp"`
}

type rosterService struct {
	source repository.RosterSource
	kv     repository.KeyValueStore
	clock  clock.Clock
	log    logger.Logger

	writeMu sync.Mutex // serializes mutating operations end to end

	mu            sync.RWMutex // protects the fields below
	people        []*entity.Person
	snapshot      *entity.RosterSnapshot
	loading       bool
	lastErr       error
	lastRefreshed time.Time
}

// NewRosterService creates a new instance of RosterService implementation.
func NewRosterService(source repository.RosterSource, kv repository.KeyValueStore, clk clock.Clock, log logger.Logger) RosterService {
	return &rosterService{
		source: source,
		kv:     kv,
		clock:  clk,
		log:    log,
	}
}

// RefreshAll fetches the whole roster. On failure the previous roster is kept.
func (s *rosterService) RefreshAll(ctx context.Context) ([]*entity.Person, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.refreshAll(ctx)
}

func (s *rosterService) refreshAll(ctx context.Context) ([]*entity.Person, error) {
	s.setLoading(true)
	people, err := s.source.FetchAll(ctx)
	if err != nil {
		metrics.RosterFetchFailed()
		wrapped := fmt.Errorf("%w: %v", appErrors.ErrSourceUnavailable, err)
		s.finish(wrapped)
		s.log.Error("Failed to fetch roster, keeping previous list", err)
		return nil, wrapped
	}

	s.mu.Lock()
	s.people = people
	s.lastRefreshed = s.clock.Now()
	s.mu.Unlock()
	s.finish(nil)

	s.log.Info(fmt.Sprintf("Fetched %d people from roster source.", len(people)))
	s.writeHint(ctx, constant.KeyAllBirthdays, rosterCache{People: people, Timestamp: s.clock.Now()})
	return copyPeople(people), nil
}

// RefreshTodayTomorrow recomputes both subsets from the in-memory roster,
// fetching it first when empty.
func (s *rosterService) RefreshTodayTomorrow(ctx context.Context, ref time.Time) (*entity.RosterSnapshot, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.refreshTodayTomorrow(ctx, ref)
}

func (s *rosterService) refreshTodayTomorrow(ctx context.Context, ref time.Time) (*entity.RosterSnapshot, error) {
	s.mu.RLock()
	empty := len(s.people) == 0
	s.mu.RUnlock()
	if empty {
		if _, err := s.refreshAll(ctx); err != nil {
			return nil, err
		}
	}

	s.mu.RLock()
	people := s.people
	s.mu.RUnlock()

	tomorrow := dateutil.TomorrowOf(ref)
	snap := &entity.RosterSnapshot{
		Date:     time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, ref.Location()),
		Today:    []*entity.Person{},
		Tomorrow: []*entity.Person{},
	}
	for _, p := range people {
		if dateutil.MatchesDay(p.BirthDate, ref) {
			snap.Today = append(snap.Today, p)
		}
		if dateutil.MatchesDay(p.BirthDate, tomorrow) {
			snap.Tomorrow = append(snap.Tomorrow, p)
		}
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.log.Info(fmt.Sprintf("Birthdays for %s: %d today, %d tomorrow.", snap.Date.Format(dto.DateLayout), len(snap.Today), len(snap.Tomorrow)))
	s.writeHint(ctx, constant.KeyTodayTomorrowBirthdays, snapshotCache{
		Date:      snap.Date.Format(dto.DateLayout),
		Today:     snap.Today,
		Tomorrow:  snap.Tomorrow,
		Timestamp: s.clock.Now(),
	})
	return copySnapshot(snap), nil
}

// AddPerson writes person to the source first; the in-memory roster changes
// only when that write succeeds.
func (s *rosterService) AddPerson(ctx context.Context, person *entity.Person) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	p, err := s.validate(person)
	if err != nil {
		return err
	}

	if err := s.source.Append(ctx, p); err != nil {
		metrics.RosterFetchFailed()
		wrapped := fmt.Errorf("%w: %v", appErrors.ErrSourceUnavailable, err)
		s.finish(wrapped)
		s.log.Error(fmt.Sprintf("Failed to append person %s to roster source", p.ID), err)
		return wrapped
	}

	s.mu.Lock()
	s.people = append(s.people, p)
	s.mu.Unlock()
	s.log.Info(fmt.Sprintf("Added %s (%s) to the roster.", p.Name, p.ID))

	if _, err := s.refreshTodayTomorrow(ctx, s.clock.Now()); err != nil {
		s.log.Error("Failed to recompute today/tomorrow after adding person", err)
	}
	return nil
}

func (s *rosterService) validate(in *entity.Person) (*entity.Person, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: missing person", appErrors.ErrInvalidPerson)
	}
	p := *in
	switch {
	case p.ID == "":
		return nil, fmt.Errorf("%w: identifier is required", appErrors.ErrInvalidPerson)
	case p.Name == "":
		return nil, fmt.Errorf("%w: name is required", appErrors.ErrInvalidPerson)
	case p.BirthDate.IsZero():
		return nil, fmt.Errorf("%w: birth date is required", appErrors.ErrInvalidPerson)
	case p.MobileNumber != "" && !mobileNumberPattern.MatchString(p.MobileNumber):
		return nil, fmt.Errorf("%w: mobile number must be exactly 10 digits", appErrors.ErrInvalidPerson)
	}
	if p.MobileNumber != "" && p.CountryCode == "" {
		p.CountryCode = constant.DefaultCountryCode
	}
	if _, exists := s.Find(p.ID); exists {
		return nil, fmt.Errorf("%w: identifier %s already exists", appErrors.ErrInvalidPerson, p.ID)
	}
	return &p, nil
}

// LoadCachedRoster installs the roster cache hint when nothing is loaded yet
// and returns the number of people it contained.
func (s *rosterService) LoadCachedRoster(ctx context.Context) int {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	loaded := len(s.people) > 0
	s.mu.RUnlock()
	if loaded {
		return 0
	}

	raw, ok, err := s.kv.Get(ctx, constant.KeyAllBirthdays)
	if err != nil || !ok {
		if err != nil {
			s.log.Warn(fmt.Sprintf("Failed to read roster cache hint: %v", err))
		}
		return 0
	}
	var cached rosterCache
	if err := json.Unmarshal(raw, &cached); err != nil {
		s.log.Warn(fmt.Sprintf("Ignoring malformed roster cache hint: %v", err))
		return 0
	}

	s.mu.Lock()
	s.people = cached.People
	s.lastRefreshed = cached.Timestamp
	s.mu.Unlock()
	s.log.Info(fmt.Sprintf("Loaded %d people from roster cache written at %s.", len(cached.People), cached.Timestamp.Format(time.RFC3339)))
	return len(cached.People)
}

// ClearCaches drops the durable roster hints. Settings and the reminder ledger are untouched.
func (s *rosterService) ClearCaches(ctx context.Context) error {
	if err := s.kv.Delete(ctx, constant.CacheKeys...); err != nil {
		s.log.Error("Failed to clear roster cache hints", err)
		return fmt.Errorf("%w: %v", appErrors.ErrPersistenceFailed, err)
	}
	s.log.Info("Roster cache hints cleared.")
	return nil
}

func (s *rosterService) writeHint(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err == nil {
		err = s.kv.Set(ctx, key, raw)
	}
	if err != nil {
		s.log.Error(fmt.Sprintf("Failed to write cache hint %s", key), fmt.Errorf("%w: %v", appErrors.ErrPersistenceFailed, err))
	}
}

func (s *rosterService) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *rosterService) finish(err error) {
	s.mu.Lock()
	s.loading = false
	s.lastErr = err
	s.mu.Unlock()
}

// People returns a copy of the in-memory roster.
func (s *rosterService) People() []*entity.Person {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyPeople(s.people)
}

// Find returns the person with the given identifier.
func (s *rosterService) Find(id string) (*entity.Person, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.people {
		if p.ID == id {
			return p, true
		}
	}
	return nil, false
}

// Snapshot returns the last computed snapshot, or nil.
func (s *rosterService) Snapshot() *entity.RosterSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.snapshot == nil {
		return nil
	}
	return copySnapshot(s.snapshot)
}

// Status reports the loading and error flags.
func (s *rosterService) Status() dto.RosterStatus {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st := dto.RosterStatus{Loading: s.loading, People: len(s.people)}
	if s.lastErr != nil {
		st.Error = s.lastErr.Error()
		st.Retryable = errors.Is(s.lastErr, appErrors.ErrSourceUnavailable)
	}
	if !s.lastRefreshed.IsZero() {
		t := s.lastRefreshed
		st.LastRefreshed = &t
	}
	return st
}

func copyPeople(people []*entity.Person) []*entity.Person {
	return append([]*entity.Person(nil), people...)
}

func copySnapshot(s *entity.RosterSnapshot) *entity.RosterSnapshot {
	return &entity.RosterSnapshot{
		Date:     s.Date,
		Today:    append([]*entity.Person{}, s.Today...),
		Tomorrow: append([]*entity.Person{}, s.Tomorrow...),
	}
}
