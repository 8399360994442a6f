package frame

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"

	"roboscene/internal/desc"
)

const tol = 1e-9

func assertVec3(t *testing.T, expected, actual mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, expected.X(), actual.X(), tol)
	assert.InDelta(t, expected.Y(), actual.Y(), tol)
	assert.InDelta(t, expected.Z(), actual.Z(), tol)
}

func TestComposeTranslationOnly(t *testing.T) {
	tf := Compose(desc.Origin{XYZ: [3]float64{1, 2, 3}})

	assertVec3(t, mgl64.Vec3{1, 2, 3}, tf.Pos)
	assert.InDelta(t, 1.0, math.Abs(tf.Rot.W), tol)
	assertVec3(t, mgl64.Vec3{1, 2, 3}, tf.Apply(mgl64.Vec3{}))
}

func TestComposeRollRotatesYToZ(t *testing.T) {
	tf := Compose(desc.Origin{RPY: [3]float64{math.Pi / 2, 0, 0}})

	assertVec3(t, mgl64.Vec3{0, 0, 1}, tf.Rot.Rotate(mgl64.Vec3{0, 1, 0}))
}

func TestComposeYawRotatesXToY(t *testing.T) {
	tf := Compose(desc.Origin{RPY: [3]float64{0, 0, math.Pi / 2}})

	assertVec3(t, mgl64.Vec3{0, 1, 0}, tf.Rot.Rotate(mgl64.Vec3{1, 0, 0}))
}

// The composition order is yaw, then pitch, then roll, applied
// intrinsically. With roll and yaw both at 90 degrees, the Y axis must land
// on Z; the reversed order would leave it on -X.
func TestComposeOrderIsYawPitchRoll(t *testing.T) {
	tf := Compose(desc.Origin{RPY: [3]float64{math.Pi / 2, 0, math.Pi / 2}})

	assertVec3(t, mgl64.Vec3{0, 0, 1}, tf.Rot.Rotate(mgl64.Vec3{0, 1, 0}))
}

func TestMulComposesTranslationThroughRotation(t *testing.T) {
	yaw90 := Compose(desc.Origin{XYZ: [3]float64{1, 0, 0}, RPY: [3]float64{0, 0, math.Pi / 2}})
	step := Compose(desc.Origin{XYZ: [3]float64{1, 0, 0}})

	combined := yaw90.Mul(step)
	assertVec3(t, mgl64.Vec3{1, 1, 0}, combined.Pos)
}

func TestIdentityIsNeutral(t *testing.T) {
	tf := Compose(desc.Origin{XYZ: [3]float64{4, 5, 6}, RPY: [3]float64{0.1, 0.2, 0.3}})

	left := Identity().Mul(tf)
	right := tf.Mul(Identity())
	assertVec3(t, tf.Pos, left.Pos)
	assertVec3(t, tf.Pos, right.Pos)
	assertVec3(t, tf.Rot.Rotate(mgl64.Vec3{1, 2, 3}), left.Rot.Rotate(mgl64.Vec3{1, 2, 3}))
	assertVec3(t, tf.Rot.Rotate(mgl64.Vec3{1, 2, 3}), right.Rot.Rotate(mgl64.Vec3{1, 2, 3}))
}
