// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

import (
	"context"
	"sort"
	"sync"

	"github.com/navigant/backoffice/internal/platform/apperr"
	"github.com/navigant/backoffice/pkg/pagination"
)

// MemoryRepository is an in-process [Repository] used by tests and local tooling.
// It enforces token uniqueness the way the uq_review_token index does.
type MemoryRepository struct {
	mu      sync.RWMutex
	reviews map[string]Review
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{reviews: make(map[string]Review)}
}

// Create is the in-memory [Repository.Create].
func (repository *MemoryRepository) Create(_ context.Context, review *Review) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for _, existing := range repository.reviews {
		if existing.Token == review.Token {
			return apperr.Conflict(resourceName + " already exists")
		}
	}
	repository.reviews[review.ID] = *review
	return nil
}

// FindByID is the in-memory [Repository.FindByID].
func (repository *MemoryRepository) FindByID(_ context.Context, id string) (*Review, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	review, ok := repository.reviews[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	return &review, nil
}

// FindByToken is the in-memory [Repository.FindByToken].
func (repository *MemoryRepository) FindByToken(_ context.Context, token string) (*Review, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	for _, review := range repository.reviews {
		if review.Token == token {
			return &review, nil
		}
	}
	return nil, apperr.NotFound(resourceName)
}

// List is the in-memory [Repository.List].
func (repository *MemoryRepository) List(_ context.Context, filter Filter, page pagination.Params) ([]*Review, int, error) {
	matched := repository.snapshot(func(r Review) bool {
		return filter.Status == "" || r.Status == filter.Status
	})
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	result := make([]*Review, 0, page.Limit)
	for i := page.Offset(); i < len(matched) && len(result) < page.Limit; i++ {
		result = append(result, &matched[i])
	}
	return result, len(matched), nil
}

// ListApproved is the in-memory [Repository.ListApproved].
func (repository *MemoryRepository) ListApproved(context.Context) ([]*Review, error) {
	matched := repository.snapshot(func(r Review) bool { return r.Status == StatusApproved })
	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i].SubmittedAt, matched[j].SubmittedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		}
		return a.After(*b)
	})

	result := make([]*Review, len(matched))
	for i := range matched {
		result[i] = &matched[i]
	}
	return result, nil
}

// SubmitByToken is the in-memory [Repository.SubmitByToken].
func (repository *MemoryRepository) SubmitByToken(_ context.Context, token string, submission Submission) (*Review, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	for id, existing := range repository.reviews {
		if existing.Token != token {
			continue
		}
		if existing.Moderated() {
			return nil, ErrAlreadyModerated
		}
		updated := existing.WithSubmission(submission)
		repository.reviews[id] = updated
		return &updated, nil
	}
	return nil, apperr.NotFound(resourceName)
}

// SetStatus is the in-memory [Repository.SetStatus].
func (repository *MemoryRepository) SetStatus(_ context.Context, id string, decision Decision) (*Review, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	existing, ok := repository.reviews[id]
	if !ok {
		return nil, apperr.NotFound(resourceName)
	}
	updated := existing.WithModeration(decision)
	repository.reviews[id] = updated
	return &updated, nil
}

// Delete is the in-memory [Repository.Delete].
func (repository *MemoryRepository) Delete(_ context.Context, id string) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, ok := repository.reviews[id]; !ok {
		return apperr.NotFound(resourceName)
	}
	delete(repository.reviews, id)
	return nil
}

func (repository *MemoryRepository) snapshot(keep func(Review) bool) []Review {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	out := make([]Review, 0, len(repository.reviews))
	for _, review := range repository.reviews {
		if keep(review) {
			out = append(out, review)
		}
	}
	return out
}
