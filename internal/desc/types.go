// Package desc holds the in-memory robot description: a flat, name-referenced
// list of links and the joints connecting them. The scene compiler consumes
// these types; parsing lives in load.go.
package desc

import "fmt"

// Robot is a complete robot description.
type Robot struct {
	Name   string
	Links  []Link
	Joints []Joint
}

// Origin places a frame relative to its parent: a translation in meters and
// a roll-pitch-yaw triple in radians.
type Origin struct {
	XYZ [3]float64
	RPY [3]float64
}

// InertiaTensor carries the six independent entries of a symmetric 3x3
// inertia tensor, in the link's local frame.
type InertiaTensor struct {
	IXX, IXY, IXZ float64
	IYY, IYZ      float64
	IZZ           float64
}

// IsZero reports whether every entry is exactly zero. A zero tensor marks a
// link that contributes no dynamics.
func (t InertiaTensor) IsZero() bool {
	return t.IXX == 0 && t.IXY == 0 && t.IXZ == 0 && t.IYY == 0 && t.IYZ == 0 && t.IZZ == 0
}

// Inertial is a link's mass distribution: total mass, center of mass in the
// link frame, and the inertia tensor about the center of mass.
type Inertial struct {
	Mass         float64
	CenterOfMass [3]float64
	Inertia      InertiaTensor
}

// GeometryType discriminates the Geometry union.
type GeometryType int

const (
	GeometryBox GeometryType = iota
	GeometryCylinder
	GeometrySphere
	GeometryCapsule
	GeometryMesh
)

func (g GeometryType) String() string {
	switch g {
	case GeometryBox:
		return "box"
	case GeometryCylinder:
		return "cylinder"
	case GeometrySphere:
		return "sphere"
	case GeometryCapsule:
		return "capsule"
	case GeometryMesh:
		return "mesh"
	default:
		return fmt.Sprintf("geometry(%d)", int(g))
	}
}

// BoxData is a box given by its full edge lengths.
type BoxData struct {
	Size [3]float64
}

// CylinderData is a cylinder along the local Z axis.
type CylinderData struct {
	Radius float64
	Length float64
}

// SphereData is a sphere centered on the local origin.
type SphereData struct {
	Radius float64
}

// CapsuleData is a capsule along the local Z axis; Length is the cylindrical
// section, excluding the hemispherical caps.
type CapsuleData struct {
	Radius float64
	Length float64
}

// MeshData references an external mesh asset by filename. Meshes are
// visual-only; the collider compiler rejects them.
type MeshData struct {
	Filename string
	Scale    [3]float64
}

// Geometry is a closed union over the supported primitive shapes. Exactly
// the field matching Type is set.
type Geometry struct {
	Type     GeometryType
	Box      *BoxData
	Cylinder *CylinderData
	Sphere   *SphereData
	Capsule  *CapsuleData
	Mesh     *MeshData
}

// Collision is one collision primitive of a link, placed by its own origin.
type Collision struct {
	Name     string
	Origin   Origin
	Geometry Geometry
}

// Visual is one visual primitive of a link. Mesh geometry is allowed here;
// the filename passes through to the presentation side unresolved.
type Visual struct {
	Name     string
	Origin   Origin
	Geometry Geometry
}

// Link is one rigid body segment of the robot.
type Link struct {
	Name       string
	Inertial   *Inertial
	Collisions []Collision
	Visuals    []Visual
}

// JointKind enumerates the supported and explicitly unsupported joint types.
type JointKind int

const (
	JointFixed JointKind = iota
	JointRevolute
	JointContinuous
	JointPrismatic
	JointSpherical
	JointPlanar
	JointFloating
)

func (k JointKind) String() string {
	switch k {
	case JointFixed:
		return "fixed"
	case JointRevolute:
		return "revolute"
	case JointContinuous:
		return "continuous"
	case JointPrismatic:
		return "prismatic"
	case JointSpherical:
		return "spherical"
	case JointPlanar:
		return "planar"
	case JointFloating:
		return "floating"
	default:
		return fmt.Sprintf("joint(%d)", int(k))
	}
}

// ParseJointKind maps the textual joint type found in description files.
func ParseJointKind(s string) (JointKind, error) {
	switch s {
	case "fixed":
		return JointFixed, nil
	case "revolute":
		return JointRevolute, nil
	case "continuous":
		return JointContinuous, nil
	case "prismatic":
		return JointPrismatic, nil
	case "spherical":
		return JointSpherical, nil
	case "planar":
		return JointPlanar, nil
	case "floating":
		return JointFloating, nil
	default:
		return 0, fmt.Errorf("unknown joint kind %q", s)
	}
}

// Joint connects a parent link to a child link. Axis is meaningful only for
// revolute, continuous and prismatic joints; nil means unspecified.
type Joint struct {
	Name   string
	Kind   JointKind
	Parent string
	Child  string
	Origin Origin
	Axis   *[3]float64
}
