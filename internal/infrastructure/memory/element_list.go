package memory

import (
	"slices"
	"sync"

	"github.com/krm/catalog-api/internal/core/ports"
)

var _ ports.ElementStore = (*ElementList)(nil)

// ElementList is a process-lifetime list of strings behind one mutex.
type ElementList struct {
	mu    sync.Mutex
	items []string
}

func NewElementList() *ElementList {
	return &ElementList{}
}

func (l *ElementList) Add(element string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.items = append(l.items, element)
}

// All returns a copy; an empty list is a non-nil empty slice.
func (l *ElementList) All() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.items))
	copy(out, l.items)
	return out
}

// Clear empties the list and reports how many elements it held.
func (l *ElementList) Clear() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := len(l.items)
	l.items = slices.Delete(l.items, 0, n)
	return n
}
