package ws

import (
	"github.com/go-gl/mathgl/mgl64"

	"roboscene/internal/scene"
)

// Message type tags on the wire.
const (
	MessageTypeScene = "scene"
	MessageTypePing  = "ping"
	MessageTypePong  = "pong"
	MessageTypeError = "error"
)

// ShapeMessage is one collision primitive. Rotation is [x, y, z, w].
type ShapeMessage struct {
	Kind        string     `json:"kind"`
	Position    [3]float64 `json:"position"`
	Rotation    [4]float64 `json:"rotation"`
	HalfExtents [3]float64 `json:"half_extents,omitempty"`
	Radius      float64    `json:"radius,omitempty"`
	HalfLength  float64    `json:"half_length,omitempty"`
}

// VisualMessage is one visual primitive. Mesh filenames are forwarded as-is
// for the viewer's asset loader to resolve.
type VisualMessage struct {
	Kind     string     `json:"kind"`
	Position [3]float64 `json:"position"`
	Rotation [4]float64 `json:"rotation"`
	Filename string     `json:"filename,omitempty"`
	Scale    [3]float64 `json:"scale,omitempty"`
}

// LinkMessage is one compiled link with its world placement.
type LinkMessage struct {
	ID       int             `json:"id"`
	Name     string          `json:"name"`
	Position [3]float64      `json:"position"`
	Rotation [4]float64      `json:"rotation"`
	Group    uint32          `json:"group"`
	Filter   uint32          `json:"filter"`
	Mass     float64         `json:"mass,omitempty"`
	Shapes   []ShapeMessage  `json:"shapes,omitempty"`
	Visuals  []VisualMessage `json:"visuals,omitempty"`
}

// JointMessage is one compiled joint. Constrained is false for joints that
// emit no constraint.
type JointMessage struct {
	ID          int         `json:"id"`
	Name        string      `json:"name"`
	Kind        string      `json:"kind"`
	Parent      int         `json:"parent"`
	Child       int         `json:"child"`
	Position    [3]float64  `json:"position"`
	Rotation    [4]float64  `json:"rotation"`
	Axis        *[3]float64 `json:"axis,omitempty"`
	AngularDOF  int         `json:"angular_dof"`
	LinearDOF   int         `json:"linear_dof"`
	Constrained bool        `json:"constrained"`
}

// SceneMessage carries one full compiled scene graph to the viewer.
type SceneMessage struct {
	Type   string         `json:"type"`
	Name   string         `json:"name"`
	Links  []LinkMessage  `json:"links"`
	Joints []JointMessage `json:"joints"`
}

// PingMessage and PongMessage keep viewer connections alive.
type PingMessage struct {
	Type string `json:"type"`
}

type PongMessage struct {
	Type string `json:"type"`
}

// ErrorMessage reports a server-side problem to the viewer.
type ErrorMessage struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// NewSceneMessage flattens a scene graph into its wire form.
func NewSceneMessage(g *scene.SceneGraph) SceneMessage {
	msg := SceneMessage{
		Type:   MessageTypeScene,
		Name:   g.Name,
		Links:  make([]LinkMessage, 0, len(g.Links)),
		Joints: make([]JointMessage, 0, len(g.Joints)),
	}
	for i := range g.Links {
		l := &g.Links[i]
		lm := LinkMessage{
			ID:       int(l.ID),
			Name:     l.Name,
			Position: vec3Wire(l.Frame.Pos),
			Rotation: quatWire(l.Frame.Rot),
			Group:    uint32(l.Groups.Membership),
			Filter:   uint32(l.Groups.Filter),
		}
		if l.Mass != nil {
			lm.Mass = l.Mass.Mass
		}
		if l.Collider != nil {
			for _, s := range l.Collider.Shapes {
				lm.Shapes = append(lm.Shapes, ShapeMessage{
					Kind:        s.Shape.Kind.String(),
					Position:    vec3Wire(s.Frame.Pos),
					Rotation:    quatWire(s.Frame.Rot),
					HalfExtents: vec3Wire(s.Shape.HalfExtents),
					Radius:      s.Shape.Radius,
					HalfLength:  s.Shape.HalfLength,
				})
			}
		}
		for _, v := range l.Visuals {
			vm := VisualMessage{
				Kind:     v.Geometry.Type.String(),
				Position: vec3Wire(v.Frame.Pos),
				Rotation: quatWire(v.Frame.Rot),
			}
			if v.Geometry.Mesh != nil {
				vm.Filename = v.Geometry.Mesh.Filename
				vm.Scale = v.Geometry.Mesh.Scale
			}
			lm.Visuals = append(lm.Visuals, vm)
		}
		msg.Links = append(msg.Links, lm)
	}
	for _, j := range g.Joints {
		jm := JointMessage{
			ID:       int(j.ID),
			Name:     j.Name,
			Kind:     j.Kind.String(),
			Parent:   int(j.Parent),
			Child:    int(j.Child),
			Position: vec3Wire(j.Origin.Pos),
			Rotation: quatWire(j.Origin.Rot),
		}
		if j.Constraint != nil {
			jm.Constrained = true
			jm.AngularDOF = j.Constraint.AngularDOF
			jm.LinearDOF = j.Constraint.LinearDOF
			if j.Constraint.AngularDOF == 1 || j.Constraint.LinearDOF == 1 {
				axis := vec3Wire(j.Constraint.Axis)
				jm.Axis = &axis
			}
		}
		msg.Joints = append(msg.Joints, jm)
	}
	return msg
}

func vec3Wire(v mgl64.Vec3) [3]float64 {
	return [3]float64{v.X(), v.Y(), v.Z()}
}

func quatWire(q mgl64.Quat) [4]float64 {
	return [4]float64{q.V.X(), q.V.Y(), q.V.Z(), q.W}
}
