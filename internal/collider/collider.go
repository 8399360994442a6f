// Package collider compiles a link's collision primitives into a single
// compound shape: a list of (local frame, primitive) pairs treated as a
// union by collision queries.
package collider

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"roboscene/internal/desc"
	"roboscene/internal/frame"
)

// Shape is one collision primitive in solver-ready form. Box extents are
// half-extents and cylinder/capsule lengths are half-lengths, matching the
// convention physics engines use; the description carries full sizes.
type Shape struct {
	Kind        desc.GeometryType
	HalfExtents mgl64.Vec3 // box
	Radius      float64    // cylinder, sphere, capsule
	HalfLength  float64    // cylinder, capsule
}

// SubShape places one primitive inside the compound.
type SubShape struct {
	Frame frame.Transform
	Shape Shape
}

// Compound is the union of a link's collision primitives.
type Compound struct {
	Shapes []SubShape
}

// UnsupportedGeometryError reports a collision primitive whose geometry kind
// has no collider mapping. Meshes land here: they are visual-only.
type UnsupportedGeometryError struct {
	Primitive string
	Kind      desc.GeometryType
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("collision primitive %q: unsupported geometry %s", e.Primitive, e.Kind)
}

// Compile maps an ordered list of collision primitives into a compound
// shape. An empty list yields (nil, nil): the link exists as a body but has
// no collision response.
func Compile(primitives []desc.Collision) (*Compound, error) {
	if len(primitives) == 0 {
		return nil, nil
	}
	compound := &Compound{Shapes: make([]SubShape, 0, len(primitives))}
	for _, p := range primitives {
		shape, err := compileShape(p)
		if err != nil {
			return nil, err
		}
		compound.Shapes = append(compound.Shapes, SubShape{
			Frame: frame.Compose(p.Origin),
			Shape: shape,
		})
	}
	return compound, nil
}

func compileShape(p desc.Collision) (Shape, error) {
	switch p.Geometry.Type {
	case desc.GeometryBox:
		size := p.Geometry.Box.Size
		return Shape{
			Kind:        desc.GeometryBox,
			HalfExtents: mgl64.Vec3{size[0] / 2, size[1] / 2, size[2] / 2},
		}, nil
	case desc.GeometryCylinder:
		c := p.Geometry.Cylinder
		return Shape{
			Kind:       desc.GeometryCylinder,
			Radius:     c.Radius,
			HalfLength: c.Length / 2,
		}, nil
	case desc.GeometrySphere:
		return Shape{
			Kind:   desc.GeometrySphere,
			Radius: p.Geometry.Sphere.Radius,
		}, nil
	case desc.GeometryCapsule:
		c := p.Geometry.Capsule
		return Shape{
			Kind:       desc.GeometryCapsule,
			Radius:     c.Radius,
			HalfLength: c.Length / 2,
		}, nil
	case desc.GeometryMesh:
		return Shape{}, &UnsupportedGeometryError{Primitive: p.Name, Kind: desc.GeometryMesh}
	default:
		return Shape{}, &UnsupportedGeometryError{Primitive: p.Name, Kind: p.Geometry.Type}
	}
}
