// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package application

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/pkg/pagination"
)

// MemoryRepository is an in-process [Repository] used by tests and local tooling.
type MemoryRepository struct {
	mu           sync.RWMutex
	applications map[string]Application
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{applications: make(map[string]Application)}
}

// Create is the in-memory [Repository.Create].
func (repository *MemoryRepository) Create(_ context.Context, application *Application) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.applications[application.ID]; exists {
		return apperr.Conflict(resourceName + " already exists")
	}
	for _, existing := range repository.applications {
		if existing.JobPostID == application.JobPostID && existing.ApplicantEmail == application.ApplicantEmail {
			return ErrAlreadyApplied
		}
	}
	repository.applications[application.ID] = *application
	return nil
}

// FindByID is the in-memory [Repository.FindByID].
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Application, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	application, ok := repository.applications[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return &application, nil
}

// List is the in-memory [Repository.List].
func (repository *MemoryRepository) List(_ context.Context, filter Filter, page pagination.Params) ([]*Application, int, error) {
	repository.mu.RLock()
	matched := make([]Application, 0, len(repository.applications))
	for _, application := range repository.applications {
		if filter.Status != "" && application.Status != filter.Status {
			continue
		}
		if filter.JobPostID != "" && application.JobPostID != filter.JobPostID {
			continue
		}
		matched = append(matched, application)
	}
	repository.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].AppliedAt.Equal(matched[j].AppliedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].AppliedAt.After(matched[j].AppliedAt)
	})

	result := make([]*Application, 0, page.Limit)
	for i := page.Offset(); i < len(matched) && len(result) < page.Limit; i++ {
		result = append(result, &matched[i])
	}
	return result, len(matched), nil
}

// SetStatus is the in-memory [Repository.SetStatus].
func (repository *MemoryRepository) SetStatus(_ context.Context, id string, status Status, adminID string, at time.Time) (*Application, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.applications[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	updated := existing.WithStatus(status, adminID, at)
	repository.applications[id] = updated
	return &updated, nil
}

// Delete is the in-memory [Repository.Delete].
func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.applications[id]; !ok {
		return apperr.NotFound(resourceName)
	}
	delete(repository.applications, id)
	return nil
}
