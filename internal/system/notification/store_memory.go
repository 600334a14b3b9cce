// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package notification

import (
	"context"
	"sort"
	"sync"

	"github.com/navigant/backoffice/pkg/pagination"
)

// MemoryRepository is an in-process [Repository] used by tests and local tooling.
type MemoryRepository struct {
	mu    sync.Mutex
	items []Notification
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Create is the in-memory [Repository.Create].
func (repository *MemoryRepository) Create(_ context.Context, n *Notification) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.items = append(repository.items, *n)
	return nil
}

// List is the in-memory [Repository.List].
func (repository *MemoryRepository) List(_ context.Context, page pagination.Params) ([]*Notification, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	sorted := make([]Notification, len(repository.items))
	copy(sorted, repository.items)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].CreatedAt.After(sorted[j].CreatedAt) })

	result := make([]*Notification, 0, page.Limit)
	for i := page.Offset(); i < len(sorted) && len(result) < page.Limit; i++ {
		result = append(result, &sorted[i])
	}
	return result, len(sorted), nil
}

// CountUnread is the in-memory [Repository.CountUnread].
func (repository *MemoryRepository) CountUnread(context.Context) (int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	count := 0
	for _, n := range repository.items {
		if !n.Read {
			count++
		}
	}
	return count, nil
}

// MarkAllRead is the in-memory [Repository.MarkAllRead].
func (repository *MemoryRepository) MarkAllRead(context.Context) (int64, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	var changed int64
	for i := range repository.items {
		if !repository.items[i].Read {
			repository.items[i].Read = true
			changed++
		}
	}
	return changed, nil
}
