package stub

import (
	"sort"
	"sync"
)

// Table is an in-memory record table with sequential ids.
type Table[T any] struct {
	id    func(T) int64
	setID func(*T, int64)

	mu     sync.RWMutex
	rows   map[int64]T
	nextID int64
}

// NewTable builds an empty table.
func NewTable[T any](id func(T) int64, setID func(*T, int64)) *Table[T] {
	return &Table[T]{id: id, setID: setID, rows: map[int64]T{}, nextID: 1}
}

// Insert stores record under a fresh id and returns the stored copy.
func (t *Table[T]) Insert(record T) T {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.setID(&record, t.nextID)
	t.rows[t.nextID] = record
	t.nextID++
	return record
}

// Get returns the record id.
func (t *Table[T]) Get(id int64) (T, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	r, ok := t.rows[id]
	return r, ok
}

// Replace overwrites the record id, keeping the id.
func (t *Table[T]) Replace(id int64, record T) (T, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		var zero T
		return zero, false
	}
	t.setID(&record, id)
	t.rows[id] = record
	return record, true
}

// Delete removes the record id.
func (t *Table[T]) Delete(id int64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.rows[id]; !ok {
		return false
	}
	delete(t.rows, id)
	return true
}

// All returns every record ordered by id.
func (t *Table[T]) All() []T {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]T, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return t.id(out[i]) < t.id(out[j]) })
	return out
}

// Len counts the records.
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
