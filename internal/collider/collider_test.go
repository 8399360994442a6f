package collider

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roboscene/internal/desc"
)

func boxPrimitive(name string, size [3]float64) desc.Collision {
	return desc.Collision{
		Name:     name,
		Geometry: desc.Geometry{Type: desc.GeometryBox, Box: &desc.BoxData{Size: size}},
	}
}

func TestCompileEmptyListYieldsNoCollider(t *testing.T) {
	compound, err := Compile(nil)

	require.NoError(t, err)
	assert.Nil(t, compound)
}

func TestCompileSubShapeCountMatchesPrimitives(t *testing.T) {
	primitives := []desc.Collision{
		boxPrimitive("torso", [3]float64{1, 2, 3}),
		{
			Name:     "head",
			Origin:   desc.Origin{XYZ: [3]float64{0, 0, 0.5}},
			Geometry: desc.Geometry{Type: desc.GeometrySphere, Sphere: &desc.SphereData{Radius: 0.1}},
		},
	}

	compound, err := Compile(primitives)
	require.NoError(t, err)
	require.NotNil(t, compound)
	require.Len(t, compound.Shapes, 2)

	box := compound.Shapes[0]
	assert.Equal(t, desc.GeometryBox, box.Shape.Kind)
	assert.InDelta(t, 0.5, box.Shape.HalfExtents.X(), 1e-12)
	assert.InDelta(t, 1.0, box.Shape.HalfExtents.Y(), 1e-12)
	assert.InDelta(t, 1.5, box.Shape.HalfExtents.Z(), 1e-12)

	sphere := compound.Shapes[1]
	assert.Equal(t, desc.GeometrySphere, sphere.Shape.Kind)
	assert.Equal(t, 0.1, sphere.Shape.Radius)
	assert.InDelta(t, 0.5, sphere.Frame.Pos.Z(), 1e-12)
}

func TestCompileHalvesCylinderAndCapsuleLengths(t *testing.T) {
	primitives := []desc.Collision{
		{
			Name:     "upper_arm",
			Geometry: desc.Geometry{Type: desc.GeometryCylinder, Cylinder: &desc.CylinderData{Radius: 0.05, Length: 0.3}},
		},
		{
			Name:     "finger",
			Geometry: desc.Geometry{Type: desc.GeometryCapsule, Capsule: &desc.CapsuleData{Radius: 0.01, Length: 0.08}},
		},
	}

	compound, err := Compile(primitives)
	require.NoError(t, err)
	require.Len(t, compound.Shapes, 2)

	assert.InDelta(t, 0.15, compound.Shapes[0].Shape.HalfLength, 1e-12)
	assert.InDelta(t, 0.04, compound.Shapes[1].Shape.HalfLength, 1e-12)
}

func TestCompileRejectsMeshGeometry(t *testing.T) {
	primitives := []desc.Collision{
		boxPrimitive("torso", [3]float64{1, 1, 1}),
		{
			Name:     "shell",
			Geometry: desc.Geometry{Type: desc.GeometryMesh, Mesh: &desc.MeshData{Filename: "shell.stl"}},
		},
	}

	_, err := Compile(primitives)
	var unsupported *UnsupportedGeometryError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "shell", unsupported.Primitive)
	assert.Equal(t, desc.GeometryMesh, unsupported.Kind)
}
