// Package joint maps abstract joint kinds onto concrete constraint
// specifications: which degrees of freedom remain free, where the anchor
// sits, and about which axis motion is allowed.
package joint

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"

	"roboscene/internal/desc"
	"roboscene/internal/frame"
)

// axisEpsilon is the smallest axis magnitude accepted before normalization.
const axisEpsilon = 1e-9

// Freedom enumerates the motion a constraint leaves unrestricted.
type Freedom int

const (
	// FreedomLocked locks all six degrees of freedom.
	FreedomLocked Freedom = iota
	// FreedomRevolute leaves one rotational degree about Axis.
	FreedomRevolute
	// FreedomPrismatic leaves one translational degree along Axis.
	FreedomPrismatic
	// FreedomSpherical leaves all three rotational degrees, anchor fixed.
	FreedomSpherical
)

func (f Freedom) String() string {
	switch f {
	case FreedomLocked:
		return "locked"
	case FreedomRevolute:
		return "revolute"
	case FreedomPrismatic:
		return "prismatic"
	case FreedomSpherical:
		return "spherical"
	default:
		return fmt.Sprintf("freedom(%d)", int(f))
	}
}

// ConstraintSpec is a solver-ready joint constraint. Anchor and Basis carry
// the resolved joint origin, the attachment of the child link's local frame.
// Axis is unit length and meaningful for revolute and prismatic freedom
// only.
type ConstraintSpec struct {
	Freedom    Freedom
	Anchor     mgl64.Vec3
	Basis      mgl64.Quat
	Axis       mgl64.Vec3
	AngularDOF int
	LinearDOF  int
	// Unbounded marks a revolute constraint with no rotation limits,
	// emitted for continuous joints when the engine supports them.
	Unbounded bool
}

// MissingAxisError reports a joint kind that requires an axis but got none.
type MissingAxisError struct {
	Joint string
}

func (e *MissingAxisError) Error() string {
	return fmt.Sprintf("joint %q requires an axis", e.Joint)
}

// UnsupportedKindError reports a joint kind with no constraint mapping.
type UnsupportedKindError struct {
	Joint string
	Kind  desc.JointKind
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("joint %q: unsupported joint kind %s", e.Joint, e.Kind)
}

// Mapper converts joints into constraint specifications.
type Mapper struct {
	// UnboundedRevolute declares whether the consuming engine can model a
	// revolute constraint with no angular limits. When false, continuous
	// joints map to no constraint at all and the child body is left
	// physically unconnected; the scene compiler logs that gap.
	UnboundedRevolute bool
}

// Map converts one joint into a constraint specification given its resolved
// anchor frame. A (nil, nil) return means the joint deliberately emits no
// constraint; see Mapper.UnboundedRevolute.
func (m Mapper) Map(j desc.Joint, anchor frame.Transform) (*ConstraintSpec, error) {
	switch j.Kind {
	case desc.JointFixed:
		return &ConstraintSpec{
			Freedom: FreedomLocked,
			Anchor:  anchor.Pos,
			Basis:   anchor.Rot,
		}, nil

	case desc.JointRevolute:
		axis, err := requireAxis(j)
		if err != nil {
			return nil, err
		}
		return &ConstraintSpec{
			Freedom:    FreedomRevolute,
			Anchor:     anchor.Pos,
			Basis:      anchor.Rot,
			Axis:       axis,
			AngularDOF: 1,
		}, nil

	case desc.JointContinuous:
		axis, err := requireAxis(j)
		if err != nil {
			return nil, err
		}
		if !m.UnboundedRevolute {
			return nil, nil
		}
		return &ConstraintSpec{
			Freedom:    FreedomRevolute,
			Anchor:     anchor.Pos,
			Basis:      anchor.Rot,
			Axis:       axis,
			AngularDOF: 1,
			Unbounded:  true,
		}, nil

	case desc.JointPrismatic:
		axis, err := requireAxis(j)
		if err != nil {
			return nil, err
		}
		return &ConstraintSpec{
			Freedom:   FreedomPrismatic,
			Anchor:    anchor.Pos,
			Basis:     anchor.Rot,
			Axis:      axis,
			LinearDOF: 1,
		}, nil

	case desc.JointSpherical:
		return &ConstraintSpec{
			Freedom:    FreedomSpherical,
			Anchor:     anchor.Pos,
			Basis:      anchor.Rot,
			AngularDOF: 3,
		}, nil

	case desc.JointPlanar, desc.JointFloating:
		return nil, &UnsupportedKindError{Joint: j.Name, Kind: j.Kind}

	default:
		return nil, &UnsupportedKindError{Joint: j.Name, Kind: j.Kind}
	}
}

// requireAxis validates and normalizes the joint axis. An absent or
// zero-length axis is a MissingAxis error.
func requireAxis(j desc.Joint) (mgl64.Vec3, error) {
	if j.Axis == nil {
		return mgl64.Vec3{}, &MissingAxisError{Joint: j.Name}
	}
	axis := mgl64.Vec3{j.Axis[0], j.Axis[1], j.Axis[2]}
	if axis.Len() < axisEpsilon {
		return mgl64.Vec3{}, &MissingAxisError{Joint: j.Name}
	}
	return axis.Normalize(), nil
}
