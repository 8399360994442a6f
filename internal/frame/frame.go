// Package frame provides rigid transforms composed from the description's
// position + roll-pitch-yaw origins. Every subsystem that places something
// (collision, visual, inertial and joint frames) goes through Compose so the
// Euler order is fixed in exactly one place.
package frame

import (
	"github.com/go-gl/mathgl/mgl64"

	"roboscene/internal/desc"
)

// Transform is an immutable rigid transform: translate by Pos after rotating
// by Rot.
type Transform struct {
	Pos mgl64.Vec3
	Rot mgl64.Quat
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Rot: mgl64.QuatIdent()}
}

// Compose resolves an origin into a rigid transform. The rotation is
// Rz(yaw)·Ry(pitch)·Rx(roll), applied intrinsically; callers must not
// compose RPY themselves. Total over finite input; the description loader
// rejects non-finite values upstream.
func Compose(o desc.Origin) Transform {
	roll := mgl64.QuatRotate(o.RPY[0], mgl64.Vec3{1, 0, 0})
	pitch := mgl64.QuatRotate(o.RPY[1], mgl64.Vec3{0, 1, 0})
	yaw := mgl64.QuatRotate(o.RPY[2], mgl64.Vec3{0, 0, 1})
	return Transform{
		Pos: mgl64.Vec3{o.XYZ[0], o.XYZ[1], o.XYZ[2]},
		Rot: yaw.Mul(pitch).Mul(roll).Normalize(),
	}
}

// Mul composes two transforms: the result applies u in t's frame.
func (t Transform) Mul(u Transform) Transform {
	return Transform{
		Pos: t.Pos.Add(t.Rot.Rotate(u.Pos)),
		Rot: t.Rot.Mul(u.Rot).Normalize(),
	}
}

// Apply transforms a point from the local frame into the parent frame.
func (t Transform) Apply(p mgl64.Vec3) mgl64.Vec3 {
	return t.Pos.Add(t.Rot.Rotate(p))
}
