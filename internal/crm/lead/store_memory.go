// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package lead

import (
	"context"
	"sort"
	"sync"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/pkg/pagination"
)

// MemoryRepository is an in-process [Repository] used by tests and local tooling.
type MemoryRepository struct {
	mu    sync.RWMutex
	leads map[string]Lead
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{leads: make(map[string]Lead)}
}

// Create is the in-memory [Repository.Create].
func (repository *MemoryRepository) Create(_ context.Context, lead *Lead) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, exists := repository.leads[lead.ID]; exists {
		return apperr.Conflict(resourceName + " already exists")
	}
	repository.leads[lead.ID] = *lead
	return nil
}

// FindByID is the in-memory [Repository.FindByID].
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Lead, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	lead, ok := repository.leads[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return &lead, nil
}

// List is the in-memory [Repository.List].
func (repository *MemoryRepository) List(_ context.Context, filter Filter, page pagination.Params) ([]*Lead, int, error) {
	repository.mu.RLock()
	matched := make([]Lead, 0, len(repository.leads))
	for _, lead := range repository.leads {
		if filter.Status == "" || lead.Status == filter.Status {
			matched = append(matched, lead)
		}
	}
	repository.mu.RUnlock()

	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	result := make([]*Lead, 0, page.Limit)
	for i := page.Offset(); i < len(matched) && len(result) < page.Limit; i++ {
		result = append(result, &matched[i])
	}
	return result, len(matched), nil
}

// Update is the in-memory [Repository.Update].
func (repository *MemoryRepository) Update(_ context.Context, lead *Lead) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.leads[lead.ID]
	if !ok {
		return apperr.NotFound(resourceName)
	}
	existing.Status = lead.Status
	existing.AdminComments = lead.AdminComments
	existing.ReviewedBy = lead.ReviewedBy
	existing.UpdatedAt = lead.UpdatedAt
	repository.leads[lead.ID] = existing
	return nil
}
