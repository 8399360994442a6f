// Package kintree resolves the flat, name-referenced link and joint lists of
// a robot description into an ownership forest: a dense arena of link nodes
// with explicit parent/child indices, plus the joint edges between them.
package kintree

import "roboscene/internal/desc"

// LinkID indexes the link arena.
type LinkID int

// JointID indexes the joint edge list.
type JointID int

// NoLink and NoJoint mark absent references.
const (
	NoLink  LinkID  = -1
	NoJoint JointID = -1
)

// Node is one link in the forest. Parent and ParentJoint are NoLink/NoJoint
// for roots. Children preserve joint declaration order.
type Node struct {
	ID          LinkID
	Name        string
	Parent      LinkID
	ParentJoint JointID
	Children    []LinkID
}

// Edge is one resolved joint: a parent→child connection.
type Edge struct {
	ID     JointID
	Name   string
	Parent LinkID
	Child  LinkID
}

// Skeleton is the resolved kinematic forest. Roots appear in link insertion
// order. The name index is built once here and read-only afterwards.
type Skeleton struct {
	Nodes  []Node
	Edges  []Edge
	Roots  []LinkID
	byName map[string]LinkID
}

// Lookup resolves a link name to its identifier.
func (s *Skeleton) Lookup(name string) (LinkID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// Build resolves links and joints into a skeleton. It fails on duplicate
// link names, joints referencing unknown links, links with more than one
// parent, and cyclic parent→child relations.
func Build(links []desc.Link, joints []desc.Joint) (*Skeleton, error) {
	s := &Skeleton{
		Nodes:  make([]Node, 0, len(links)),
		Edges:  make([]Edge, 0, len(joints)),
		byName: make(map[string]LinkID, len(links)),
	}

	for _, l := range links {
		if _, exists := s.byName[l.Name]; exists {
			return nil, &DuplicateLinkError{Link: l.Name}
		}
		id := LinkID(len(s.Nodes))
		s.byName[l.Name] = id
		s.Nodes = append(s.Nodes, Node{
			ID:          id,
			Name:        l.Name,
			Parent:      NoLink,
			ParentJoint: NoJoint,
		})
	}

	for _, j := range joints {
		parent, ok := s.byName[j.Parent]
		if !ok {
			return nil, &UnknownLinkError{Joint: j.Name, Link: j.Parent}
		}
		child, ok := s.byName[j.Child]
		if !ok {
			return nil, &UnknownLinkError{Joint: j.Name, Link: j.Child}
		}
		if s.Nodes[child].Parent != NoLink {
			return nil, &MultipleParentsError{Link: j.Child}
		}
		id := JointID(len(s.Edges))
		s.Edges = append(s.Edges, Edge{ID: id, Name: j.Name, Parent: parent, Child: child})
		s.Nodes[child].Parent = parent
		s.Nodes[child].ParentJoint = id
		s.Nodes[parent].Children = append(s.Nodes[parent].Children, child)
	}

	if err := s.checkAcyclic(); err != nil {
		return nil, err
	}

	for _, n := range s.Nodes {
		if n.Parent == NoLink {
			s.Roots = append(s.Roots, n.ID)
		}
	}
	return s, nil
}

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// checkAcyclic walks parent→child edges from every node with a three-color
// traversal. Starting from every node, not just roots, catches cycles that
// are unreachable from any root (a pure cycle has no root at all).
func (s *Skeleton) checkAcyclic() error {
	state := make([]visitState, len(s.Nodes))
	var visit func(LinkID) error
	visit = func(id LinkID) error {
		switch state[id] {
		case done:
			return nil
		case inProgress:
			return &CycleError{Link: s.Nodes[id].Name}
		}
		state[id] = inProgress
		for _, child := range s.Nodes[id].Children {
			if err := visit(child); err != nil {
				return err
			}
		}
		state[id] = done
		return nil
	}
	for i := range s.Nodes {
		if state[i] == unvisited {
			if err := visit(LinkID(i)); err != nil {
				return err
			}
		}
	}
	return nil
}
