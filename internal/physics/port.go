// Package physics defines the outbound seam between the scene compiler and
// a physics engine. The compiler never drives an engine directly; it emits a
// scene graph, and Load walks that graph into any Engine implementation.
package physics

import (
	"context"
	"fmt"

	"roboscene/internal/collider"
	"roboscene/internal/frame"
	"roboscene/internal/inertia"
	"roboscene/internal/joint"
	"roboscene/internal/scene"
)

// Body is a rigid-body creation request. Collider and Mass are nil for
// bodies without collision response or without dynamics.
type Body struct {
	Name     string
	Frame    frame.Transform
	Groups   scene.CollisionGroups
	Collider *collider.Compound
	Mass     *inertia.MassProperties
}

// Constraint attaches a child body to a parent body. Bodies are referenced
// by name; both must have been created before the constraint.
type Constraint struct {
	Name   string
	Parent string
	Child  string
	Spec   joint.ConstraintSpec
}

// Engine is the physics subsystem as the compiler sees it.
type Engine interface {
	// CreateBody instantiates a rigid body in the simulation.
	CreateBody(ctx context.Context, body Body) error

	// CreateConstraint wires a joint constraint between two existing
	// bodies.
	CreateConstraint(ctx context.Context, constraint Constraint) error

	// Close releases the engine.
	Close() error
}

// Load instantiates a compiled scene graph in an engine: all bodies first,
// then all constraints, mirroring the compiler's own two passes. Joints
// without a constraint (unbounded continuous joints on engines that cannot
// model them) are skipped.
func Load(ctx context.Context, eng Engine, graph *scene.SceneGraph) error {
	for i := range graph.Links {
		l := &graph.Links[i]
		body := Body{
			Name:     l.Name,
			Frame:    l.Frame,
			Groups:   l.Groups,
			Collider: l.Collider,
			Mass:     l.Mass,
		}
		if err := eng.CreateBody(ctx, body); err != nil {
			return fmt.Errorf("creating body %q: %w", l.Name, err)
		}
	}
	for _, j := range graph.Joints {
		if j.Constraint == nil {
			continue
		}
		constraint := Constraint{
			Name:   j.Name,
			Parent: graph.Link(j.Parent).Name,
			Child:  graph.Link(j.Child).Name,
			Spec:   *j.Constraint,
		}
		if err := eng.CreateConstraint(ctx, constraint); err != nil {
			return fmt.Errorf("creating constraint %q: %w", j.Name, err)
		}
	}
	return nil
}
