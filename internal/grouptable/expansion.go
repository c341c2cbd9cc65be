package grouptable

import "sync"

// Expansion holds the open/closed state of group nodes keyed by Node.Key.
type Expansion struct {
	mu   sync.RWMutex
	open map[string]bool
}

func NewExpansion(initial ...string) *Expansion {
	e := &Expansion{open: make(map[string]bool, len(initial))}
	for _, key := range initial {
		e.open[key] = true
	}
	return e
}

func (e *Expansion) IsExpanded(node *Node) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.open[node.Key]
}

func (e *Expansion) Toggle(node *Node) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open[node.Key] = !e.open[node.Key]
	return e.open[node.Key]
}

func (e *Expansion) Set(node *Node, expanded bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open[node.Key] = expanded
}
