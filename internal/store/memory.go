package store

import (
	"errors"
	"sync"

	"github.com/i474232898/vending-forecast/internal/machine"
)

var (
	// ErrNotFound is returned when no machine has the requested ID.
	ErrNotFound = errors.New("machine not found")
)

// MemoryStore is a concurrency-safe in-memory machine registry.
// Machines are kept in insertion order.
type MemoryStore struct {
	mu sync.RWMutex

	machines []machine.Machine
	nextID   int64
}

// NewMemoryStore creates an empty registry. IDs start at 1.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// Create stores a new machine and returns it with its assigned ID.
// The input is expected to be validated already.
func (s *MemoryStore) Create(in machine.Input) machine.Machine {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := in.WithID(s.nextID)
	s.nextID++
	s.machines = append(s.machines, m)
	return m
}

// Seed creates every input in order.
func (s *MemoryStore) Seed(inputs []machine.Input) []machine.Machine {
	out := make([]machine.Machine, 0, len(inputs))
	for _, in := range inputs {
		out = append(out, s.Create(in))
	}
	return out
}

// Get returns the machine with the given ID.
func (s *MemoryStore) Get(id int64) (machine.Machine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return machine.Machine{}, ErrNotFound
	}
	return s.machines[i], nil
}

// Update replaces every editable field of an existing machine.
func (s *MemoryStore) Update(id int64, in machine.Input) (machine.Machine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return machine.Machine{}, ErrNotFound
	}
	s.machines[i] = in.WithID(id)
	return s.machines[i], nil
}

// Delete removes a machine, keeping the order of the rest.
func (s *MemoryStore) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.machines = append(s.machines[:i], s.machines[i+1:]...)
	return nil
}

// List returns a snapshot copy of all machines in insertion order.
func (s *MemoryStore) List() []machine.Machine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]machine.Machine, len(s.machines))
	copy(out, s.machines)
	return out
}

// indexOf must be called with s.mu held.
func (s *MemoryStore) indexOf(id int64) int {
	for i, m := range s.machines {
		if m.ID == id {
			return i
		}
	}
	return -1
}
