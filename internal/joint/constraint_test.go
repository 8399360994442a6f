package joint

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roboscene/internal/desc"
	"roboscene/internal/frame"
)

func axis(x, y, z float64) *[3]float64 {
	return &[3]float64{x, y, z}
}

func TestMapRevolute(t *testing.T) {
	j := desc.Joint{Name: "elbow", Kind: desc.JointRevolute, Axis: axis(0, 0, 1)}

	spec, err := Mapper{}.Map(j, frame.Identity())
	require.NoError(t, err)
	require.NotNil(t, spec)

	assert.Equal(t, FreedomRevolute, spec.Freedom)
	assert.Equal(t, 1, spec.AngularDOF)
	assert.Equal(t, 0, spec.LinearDOF)
	assert.InDelta(t, 1.0, spec.Axis.Z(), 1e-12)
	assert.False(t, spec.Unbounded)
	assert.Equal(t, 0.0, spec.Anchor.Len())
}

func TestMapNormalizesAxis(t *testing.T) {
	j := desc.Joint{Name: "elbow", Kind: desc.JointRevolute, Axis: axis(0, 3, 4)}

	spec, err := Mapper{}.Map(j, frame.Identity())
	require.NoError(t, err)

	assert.InDelta(t, 1.0, spec.Axis.Len(), 1e-12)
	assert.InDelta(t, 0.6, spec.Axis.Y(), 1e-12)
	assert.InDelta(t, 0.8, spec.Axis.Z(), 1e-12)
}

func TestMapFixedLocksEverything(t *testing.T) {
	anchor := frame.Compose(desc.Origin{
		XYZ: [3]float64{0, 0, 0.2},
		RPY: [3]float64{0, 0, math.Pi / 2},
	})
	j := desc.Joint{Name: "mount", Kind: desc.JointFixed}

	spec, err := Mapper{}.Map(j, anchor)
	require.NoError(t, err)

	assert.Equal(t, FreedomLocked, spec.Freedom)
	assert.Equal(t, 0, spec.AngularDOF)
	assert.Equal(t, 0, spec.LinearDOF)
	assert.InDelta(t, 0.2, spec.Anchor.Z(), 1e-12)
	// Orientation lock carries the resolved yaw.
	rotated := spec.Basis.Rotate(mgl64.Vec3{1, 0, 0})
	assert.InDelta(t, 1.0, rotated.Y(), 1e-9)
}

func TestMapPrismatic(t *testing.T) {
	j := desc.Joint{Name: "slider", Kind: desc.JointPrismatic, Axis: axis(1, 0, 0)}

	spec, err := Mapper{}.Map(j, frame.Identity())
	require.NoError(t, err)

	assert.Equal(t, FreedomPrismatic, spec.Freedom)
	assert.Equal(t, 0, spec.AngularDOF)
	assert.Equal(t, 1, spec.LinearDOF)
}

func TestMapSpherical(t *testing.T) {
	j := desc.Joint{Name: "hip", Kind: desc.JointSpherical}

	spec, err := Mapper{}.Map(j, frame.Identity())
	require.NoError(t, err)

	assert.Equal(t, FreedomSpherical, spec.Freedom)
	assert.Equal(t, 3, spec.AngularDOF)
	assert.Equal(t, 0, spec.LinearDOF)
}

func TestMapContinuousWithoutUnboundedSupportEmitsNothing(t *testing.T) {
	j := desc.Joint{Name: "wheel", Kind: desc.JointContinuous, Axis: axis(0, 1, 0)}

	spec, err := Mapper{UnboundedRevolute: false}.Map(j, frame.Identity())
	require.NoError(t, err)
	assert.Nil(t, spec)
}

func TestMapContinuousWithUnboundedSupport(t *testing.T) {
	j := desc.Joint{Name: "wheel", Kind: desc.JointContinuous, Axis: axis(0, 1, 0)}

	spec, err := Mapper{UnboundedRevolute: true}.Map(j, frame.Identity())
	require.NoError(t, err)
	require.NotNil(t, spec)

	assert.Equal(t, FreedomRevolute, spec.Freedom)
	assert.Equal(t, 1, spec.AngularDOF)
	assert.True(t, spec.Unbounded)
}

func TestMapMissingAxis(t *testing.T) {
	for _, kind := range []desc.JointKind{desc.JointRevolute, desc.JointContinuous, desc.JointPrismatic} {
		j := desc.Joint{Name: "broken", Kind: kind}

		_, err := Mapper{UnboundedRevolute: true}.Map(j, frame.Identity())
		var missing *MissingAxisError
		require.ErrorAs(t, err, &missing, "kind %s", kind)
		assert.Equal(t, "broken", missing.Joint)
	}
}

func TestMapZeroAxisIsMissing(t *testing.T) {
	j := desc.Joint{Name: "broken", Kind: desc.JointRevolute, Axis: axis(0, 0, 0)}

	_, err := Mapper{}.Map(j, frame.Identity())
	var missing *MissingAxisError
	require.ErrorAs(t, err, &missing)
}

func TestMapUnsupportedKinds(t *testing.T) {
	for _, kind := range []desc.JointKind{desc.JointPlanar, desc.JointFloating} {
		j := desc.Joint{Name: "exotic", Kind: kind}

		_, err := Mapper{}.Map(j, frame.Identity())
		var unsupported *UnsupportedKindError
		require.ErrorAs(t, err, &unsupported, "kind %s", kind)
		assert.Equal(t, kind, unsupported.Kind)
	}
}
