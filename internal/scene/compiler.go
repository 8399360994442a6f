// Package scene turns a robot description into a physics-ready scene graph:
// compiled links with compound colliders and diagonalized mass properties,
// and compiled joints with constraint specifications. Compilation is
// all-or-nothing; the first structural error aborts the build.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"

	"roboscene/internal/collider"
	"roboscene/internal/desc"
	"roboscene/internal/frame"
	"roboscene/internal/inertia"
	"roboscene/internal/joint"
	"roboscene/internal/kintree"
)

// CompiledVisual is one visual primitive with its frame resolved. Mesh
// filenames pass through untouched; asset loading is the presentation
// side's job.
type CompiledVisual struct {
	Frame    frame.Transform
	Geometry desc.Geometry
}

// CompiledLink is one rigid body of the scene. Collider and Mass are nil
// when the link has no collision primitives or a zero inertia tensor.
// Frame is the link's spawn placement in the world frame.
type CompiledLink struct {
	ID       kintree.LinkID
	Name     string
	Frame    frame.Transform
	Collider *collider.Compound
	Mass     *inertia.MassProperties
	Groups   CollisionGroups
	Visuals  []CompiledVisual
}

// CompiledJoint is one wired joint. Constraint is nil for continuous joints
// when the engine cannot model unbounded revolute constraints.
type CompiledJoint struct {
	ID         kintree.JointID
	Name       string
	Kind       desc.JointKind
	Parent     kintree.LinkID
	Child      kintree.LinkID
	Origin     frame.Transform
	Constraint *joint.ConstraintSpec
}

// SceneGraph is the compiler output handed to the physics and presentation
// subsystems. Links form an arena indexed by LinkID; joints reference links
// by those IDs and form a forest rooted at Roots.
type SceneGraph struct {
	Name   string
	Links  []CompiledLink
	Joints []CompiledJoint
	Roots  []kintree.LinkID
}

// Link returns the compiled link for an ID.
func (g *SceneGraph) Link(id kintree.LinkID) *CompiledLink {
	return &g.Links[id]
}

// WorldFrames resolves every link's placement in the world frame by
// accumulating joint origins from the roots down. Root links sit at the
// identity; the presentation side offsets the whole robot as it likes.
func (g *SceneGraph) WorldFrames() []frame.Transform {
	frames := make([]frame.Transform, len(g.Links))
	for i := range frames {
		frames[i] = frame.Identity()
	}
	childOrigin := make(map[kintree.LinkID]frame.Transform, len(g.Joints))
	children := make(map[kintree.LinkID][]kintree.LinkID, len(g.Joints))
	for _, j := range g.Joints {
		childOrigin[j.Child] = j.Origin
		children[j.Parent] = append(children[j.Parent], j.Child)
	}
	var walk func(id kintree.LinkID)
	walk = func(id kintree.LinkID) {
		for _, child := range children[id] {
			frames[child] = frames[id].Mul(childOrigin[child])
			walk(child)
		}
	}
	for _, root := range g.Roots {
		walk(root)
	}
	return frames
}

// Options configures a Compiler.
type Options struct {
	// UnboundedRevolute is passed through to the joint mapper; see
	// joint.Mapper.
	UnboundedRevolute bool
}

// Compiler drives the two compilation passes.
type Compiler struct {
	log    *zap.Logger
	mapper joint.Mapper
}

// NewCompiler returns a compiler logging through log.
func NewCompiler(log *zap.Logger, opts Options) *Compiler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Compiler{
		log:    log,
		mapper: joint.Mapper{UnboundedRevolute: opts.UnboundedRevolute},
	}
}

// Compile builds the scene graph for a robot description. Pass 1 compiles
// every link independently; pass 2 wires joints, which needs both endpoints
// already instantiated. Any error aborts the whole build; no partial scene
// is returned.
func (c *Compiler) Compile(robot *desc.Robot) (*SceneGraph, error) {
	skeleton, err := kintree.Build(robot.Links, robot.Joints)
	if err != nil {
		return nil, err
	}

	graph := &SceneGraph{
		Name:  robot.Name,
		Links: make([]CompiledLink, len(robot.Links)),
		Roots: skeleton.Roots,
	}

	// Pass 1: per-link payloads. No cross-link dependency.
	for i, l := range robot.Links {
		compiled, err := c.compileLink(kintree.LinkID(i), l)
		if err != nil {
			return nil, fmt.Errorf("link %q: %w", l.Name, err)
		}
		graph.Links[i] = compiled
	}

	// Pass 2: joint wiring over the resolved skeleton.
	graph.Joints = make([]CompiledJoint, 0, len(skeleton.Edges))
	for i, edge := range skeleton.Edges {
		j := robot.Joints[i]
		origin := frame.Compose(j.Origin)
		spec, err := c.mapper.Map(j, origin)
		if err != nil {
			return nil, err
		}
		if spec == nil {
			c.log.Warn("joint emits no constraint; child link is physically unconnected",
				zap.String("joint", j.Name),
				zap.String("kind", j.Kind.String()),
				zap.String("child", robot.Links[edge.Child].Name))
		}
		graph.Joints = append(graph.Joints, CompiledJoint{
			ID:         edge.ID,
			Name:       j.Name,
			Kind:       j.Kind,
			Parent:     edge.Parent,
			Child:      edge.Child,
			Origin:     origin,
			Constraint: spec,
		})
	}

	for id, f := range graph.WorldFrames() {
		graph.Links[id].Frame = f
	}

	c.log.Info("compiled scene",
		zap.String("robot", robot.Name),
		zap.Int("links", len(graph.Links)),
		zap.Int("joints", len(graph.Joints)),
		zap.Int("roots", len(graph.Roots)))
	return graph, nil
}

func (c *Compiler) compileLink(id kintree.LinkID, l desc.Link) (CompiledLink, error) {
	compound, err := collider.Compile(l.Collisions)
	if err != nil {
		return CompiledLink{}, err
	}

	var mass *inertia.MassProperties
	if l.Inertial != nil {
		com := l.Inertial.CenterOfMass
		mass, err = inertia.Diagonalize(l.Inertial.Inertia,
			mgl64.Vec3{com[0], com[1], com[2]}, l.Inertial.Mass)
		if err != nil {
			return CompiledLink{}, err
		}
	}

	visuals := make([]CompiledVisual, 0, len(l.Visuals))
	for _, v := range l.Visuals {
		visuals = append(visuals, CompiledVisual{
			Frame:    frame.Compose(v.Origin),
			Geometry: v.Geometry,
		})
	}

	return CompiledLink{
		ID:       id,
		Name:     l.Name,
		Collider: compound,
		Mass:     mass,
		Groups:   RobotBodyGroups(),
		Visuals:  visuals,
	}, nil
}
