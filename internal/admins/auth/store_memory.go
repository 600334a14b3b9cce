// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/pkg/pagination"
)

// MemoryAdminRepository is an in-process [AdminRepository] used by tests and local tooling.
type MemoryAdminRepository struct {
	mu     sync.RWMutex
	admins map[string]Admin
}

// NewMemoryAdminRepository creates an empty in-memory store.
func NewMemoryAdminRepository() *MemoryAdminRepository {
	return &MemoryAdminRepository{admins: make(map[string]Admin)}
}

// FindByID is the in-memory [AdminRepository.FindByID].
func (repository *MemoryAdminRepository) FindByID(_ context.Context, id string) (*Admin, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	admin, ok := repository.admins[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return &admin, nil
}

// FindByEmail is the in-memory [AdminRepository.FindByEmail].
func (repository *MemoryAdminRepository) FindByEmail(_ context.Context, email string) (*Admin, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	email = NormalizeEmail(email)
	for _, admin := range repository.admins {
		if NormalizeEmail(admin.Email) == email {
			return &admin, nil
		}
	}
	return nil, apperr.NotFound(resourceName)
}

// List is the in-memory [AdminRepository.List].
func (repository *MemoryAdminRepository) List(_ context.Context, page pagination.Params) ([]*Admin, int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	sorted := make([]Admin, 0, len(repository.admins))
	for _, admin := range repository.admins {
		sorted = append(sorted, admin)
	}
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].CreatedAt.Equal(sorted[j].CreatedAt) {
			return sorted[i].ID < sorted[j].ID
		}
		return sorted[i].CreatedAt.Before(sorted[j].CreatedAt)
	})

	result := make([]*Admin, 0, page.Limit)
	for i := page.Offset(); i < len(sorted) && len(result) < page.Limit; i++ {
		result = append(result, &sorted[i])
	}
	return result, len(sorted), nil
}

// Count is the in-memory [AdminRepository.Count].
func (repository *MemoryAdminRepository) Count(context.Context) (int, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()
	return len(repository.admins), nil
}

// Create is the in-memory [AdminRepository.Create].
func (repository *MemoryAdminRepository) Create(_ context.Context, admin *Admin) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.emailTaken(admin.Email, admin.ID) {
		return apperr.Conflict(resourceName + " already exists")
	}
	repository.admins[admin.ID] = *admin
	return nil
}

// Update is the in-memory [AdminRepository.Update].
func (repository *MemoryAdminRepository) Update(_ context.Context, admin *Admin) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.admins[admin.ID]; !ok {
		return apperr.NotFound(resourceName)
	}
	if repository.emailTaken(admin.Email, admin.ID) {
		return apperr.Conflict(resourceName + " already exists")
	}
	repository.admins[admin.ID] = *admin
	return nil
}

// Delete is the in-memory [AdminRepository.Delete].
func (repository *MemoryAdminRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.admins[id]; !ok {
		return apperr.NotFound(resourceName)
	}
	delete(repository.admins, id)
	return nil
}

// emailTaken must be called with the lock held.
func (repository *MemoryAdminRepository) emailTaken(email, exceptID string) bool {
	email = NormalizeEmail(email)
	for id, existing := range repository.admins {
		if id != exceptID && NormalizeEmail(existing.Email) == email {
			return true
		}
	}
	return false
}

// MemoryAttemptLimiter is an in-process [AttemptLimiter].
type MemoryAttemptLimiter struct {
	mu       sync.Mutex
	window   time.Duration
	now      func() time.Time
	counters map[string]attemptCounter
}

type attemptCounter struct {
	count     int
	expiresAt time.Time
}

// NewMemoryAttemptLimiter creates an empty in-memory store.
func NewMemoryAttemptLimiter(window time.Duration) *MemoryAttemptLimiter {
	return &MemoryAttemptLimiter{
		window:   window,
		now:      time.Now,
		counters: make(map[string]attemptCounter),
	}
}

// Failures is the in-memory [AttemptLimiter.Failures].
func (limiter *MemoryAttemptLimiter) Failures(_ context.Context, email string) (int, time.Duration, error) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	counter, ok := limiter.counters[NormalizeEmail(email)]
	now := limiter.now()
	if !ok || !now.Before(counter.expiresAt) {
		return 0, 0, nil
	}
	return counter.count, counter.expiresAt.Sub(now), nil
}

// RecordFailure is the in-memory [AttemptLimiter.RecordFailure].
func (limiter *MemoryAttemptLimiter) RecordFailure(_ context.Context, email string) error {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	key := NormalizeEmail(email)
	now := limiter.now()
	counter := limiter.counters[key]
	if !now.Before(counter.expiresAt) {
		counter.count = 0
	}
	counter.count++
	counter.expiresAt = now.Add(limiter.window)
	limiter.counters[key] = counter
	return nil
}

// Reset is the in-memory [AttemptLimiter.Reset].
func (limiter *MemoryAttemptLimiter) Reset(_ context.Context, email string) error {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.counters, NormalizeEmail(email))
	return nil
}
