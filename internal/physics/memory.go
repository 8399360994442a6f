package physics

import (
	"context"
	"fmt"
	"sync"
)

// Memory is an in-process Engine that records creation requests. It backs
// tests and the viewer; a real solver adapter implements the same Engine
// interface.
type Memory struct {
	mu          sync.RWMutex
	bodies      map[string]Body
	order       []string
	constraints []Constraint
	closed      bool
}

// NewMemory returns an empty in-memory engine.
func NewMemory() *Memory {
	return &Memory{bodies: make(map[string]Body)}
}

// CreateBody records a body. Creating two bodies with one name is an error.
func (m *Memory) CreateBody(_ context.Context, body Body) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("engine closed")
	}
	if _, exists := m.bodies[body.Name]; exists {
		return fmt.Errorf("body %q already exists", body.Name)
	}
	m.bodies[body.Name] = body
	m.order = append(m.order, body.Name)
	return nil
}

// CreateConstraint records a constraint after checking both endpoints exist.
func (m *Memory) CreateConstraint(_ context.Context, constraint Constraint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return fmt.Errorf("engine closed")
	}
	if _, ok := m.bodies[constraint.Parent]; !ok {
		return fmt.Errorf("constraint %q: unknown parent body %q", constraint.Name, constraint.Parent)
	}
	if _, ok := m.bodies[constraint.Child]; !ok {
		return fmt.Errorf("constraint %q: unknown child body %q", constraint.Name, constraint.Child)
	}
	m.constraints = append(m.constraints, constraint)
	return nil
}

// Close marks the engine closed; further creation calls fail.
func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Body returns a recorded body by name.
func (m *Memory) Body(name string) (Body, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.bodies[name]
	return b, ok
}

// Bodies returns recorded bodies in creation order.
func (m *Memory) Bodies() []Body {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Body, 0, len(m.order))
	for _, name := range m.order {
		out = append(out, m.bodies[name])
	}
	return out
}

// Constraints returns recorded constraints in creation order.
func (m *Memory) Constraints() []Constraint {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]Constraint, len(m.constraints))
	copy(out, m.constraints)
	return out
}
