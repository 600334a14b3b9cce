// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package casestudy

import (
	"context"
	"sort"
	"sync"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/pkg/pagination"
)

// MemoryRepository is an in-process [Repository] used by tests and local tooling.
type MemoryRepository struct {
	mu      sync.RWMutex
	studies map[string]CaseStudy
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{studies: make(map[string]CaseStudy)}
}

// Create is the in-memory [Repository.Create].
func (repository *MemoryRepository) Create(_ context.Context, study *CaseStudy) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if repository.slugTaken(study.Slug, study.ID) {
		return apperr.Conflict(resourceName + " already exists")
	}
	repository.studies[study.ID] = *study
	return nil
}

// FindByID is the in-memory [Repository.FindByID].
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*CaseStudy, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	study, ok := repository.studies[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return &study, nil
}

// FindPublishedBySlug is the in-memory [Repository.FindPublishedBySlug].
func (repository *MemoryRepository) FindPublishedBySlug(_ context.Context, slug string) (*CaseStudy, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, study := range repository.studies {
		if study.Slug == slug && study.Published() {
			return &study, nil
		}
	}
	return nil, apperr.NotFound(resourceName)
}

// List is the in-memory [Repository.List].
func (repository *MemoryRepository) List(_ context.Context, page pagination.Params) ([]*CaseStudy, int, error) {
	all := repository.snapshot(false)
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].DisplayOrder != all[j].DisplayOrder {
			return all[i].DisplayOrder < all[j].DisplayOrder
		}
		return all[i].CreatedAt.After(all[j].CreatedAt)
	})

	result := make([]*CaseStudy, 0, page.Limit)
	for i := page.Offset(); i < len(all) && len(result) < page.Limit; i++ {
		result = append(result, &all[i])
	}
	return result, len(all), nil
}

// ListPublished is the in-memory [Repository.ListPublished].
func (repository *MemoryRepository) ListPublished(context.Context) ([]*CaseStudy, error) {
	published := repository.snapshot(true)
	sort.SliceStable(published, func(i, j int) bool {
		a, b := published[i], published[j]
		if a.DisplayOrder != b.DisplayOrder {
			return a.DisplayOrder < b.DisplayOrder
		}
		switch {
		case a.PublishDate == nil:
			return false
		case b.PublishDate == nil:
			return true
		}
		return a.PublishDate.After(*b.PublishDate)
	})

	result := make([]*CaseStudy, len(published))
	for i := range published {
		result[i] = &published[i]
	}
	return result, nil
}

// Update is the in-memory [Repository.Update].
func (repository *MemoryRepository) Update(_ context.Context, study *CaseStudy) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.studies[study.ID]; !ok {
		return apperr.NotFound(resourceName)
	}
	if repository.slugTaken(study.Slug, study.ID) {
		return apperr.Conflict(resourceName + " already exists")
	}
	repository.studies[study.ID] = *study
	return nil
}

// Delete is the in-memory [Repository.Delete].
func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.studies[id]; !ok {
		return apperr.NotFound(resourceName)
	}
	delete(repository.studies, id)
	return nil
}

func (repository *MemoryRepository) snapshot(publishedOnly bool) []CaseStudy {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	out := make([]CaseStudy, 0, len(repository.studies))
	for _, study := range repository.studies {
		if !publishedOnly || study.Published() {
			out = append(out, study)
		}
	}
	return out
}

// slugTaken must be called with the lock held.
func (repository *MemoryRepository) slugTaken(slug, exceptID string) bool {
	for id, study := range repository.studies {
		if id != exceptID && study.Slug == slug {
			return true
		}
	}
	return false
}
