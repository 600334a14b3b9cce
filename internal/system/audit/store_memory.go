// Copyright (c) 2026 Navigant. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package audit

import (
	"context"
	"sort"
	"sync"

	"github.com/navigant/backoffice/pkg/pagination"
)

// MemoryRepository is an in-process [Repository] used by tests and local tooling.
type MemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
}

// NewMemoryRepository creates an empty in-memory store.
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

// Append is the in-memory [Repository.Append].
func (repository *MemoryRepository) Append(_ context.Context, entry *Entry) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	repository.entries = append(repository.entries, *entry)
	return nil
}

// List is the in-memory [Repository.List].
func (repository *MemoryRepository) List(_ context.Context, page pagination.Params) ([]*Entry, int, error) {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	sorted := make([]Entry, len(repository.entries))
	copy(sorted, repository.entries)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ID > sorted[j].ID })

	result := make([]*Entry, 0, page.Limit)
	for i := page.Offset(); i < len(sorted) && len(result) < page.Limit; i++ {
		result = append(result, &sorted[i])
	}
	return result, len(sorted), nil
}

// Snapshot returns a copy of every stored entry in insertion order.
func (repository *MemoryRepository) Snapshot() []Entry {
	repository.mu.Lock()
	defer repository.mu.Unlock()
	return append([]Entry(nil), repository.entries...)
}
