package service

import (
	"bdaywisher/internal/domain/entity"
	"bdaywisher/internal/domain/repository"
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

var errBoom = errors.New("boom")

type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	sets   map[string]int
	getErr error
	setErr error
}

func newMemKV() *memKV {
	return &memKV{data: map[string][]byte{}, sets: map[string]int{}}
}

func (m *memKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = append([]byte(nil), value...)
	m.sets[key]++
	return nil
}

func (m *memKV) Delete(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.data, k)
	}
	return nil
}

func (m *memKV) setCount(key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sets[key]
}

type scheduledAlert struct {
	handle  string
	at      time.Time
	payload entity.AlertPayload
}

type fakeDelivery struct {
	mu        sync.Mutex
	next      int
	scheduled []scheduledAlert
	canceled  []string
	cancelAll int
	reject    func(entity.AlertPayload) error
	cancelErr error
	listener  repository.CompletionFunc
}

func (f *fakeDelivery) Schedule(_ context.Context, at time.Time, payload entity.AlertPayload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reject != nil {
		if err := f.reject(payload); err != nil {
			return "", err
		}
	}
	f.next++
	handle := fmt.Sprintf("h-%d", f.next)
	f.scheduled = append(f.scheduled, scheduledAlert{handle: handle, at: at, payload: payload})
	return handle, nil
}

func (f *fakeDelivery) Cancel(_ context.Context, handle string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.canceled = append(f.canceled, handle)
	return f.cancelErr
}

func (f *fakeDelivery) CancelAll(context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelAll++
	return nil
}

func (f *fakeDelivery) OnCompleted(fn repository.CompletionFunc) repository.Subscription {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listener = fn
	return noopSubscription{}
}

type noopSubscription struct{}

func (noopSubscription) Cancel() {}

type fakeSource struct {
	people    []*entity.Person
	fetchErr  error
	appendErr error
	fetches   int
}

func (f *fakeSource) FetchAll(context.Context) ([]*entity.Person, error) {
	f.fetches++
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]*entity.Person(nil), f.people...), nil
}

func (f *fakeSource) Append(_ context.Context, p *entity.Person) error {
	if f.appendErr != nil {
		return f.appendErr
	}
	f.people = append(f.people, p)
	return nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func person(id, name string, birth time.Time) *entity.Person {
	return &entity.Person{ID: id, Name: name, BirthDate: birth}
}
