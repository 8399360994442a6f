// Package inertia converts raw symmetric inertia tensors into the
// principal-axis form a physics solver consumes: three principal moments and
// a quaternion aligning the link frame with the tensor's eigenbasis.
package inertia

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/mat"

	"roboscene/internal/desc"
)

// orthoTol bounds how far the eigenvector matrix may drift from orthonormal
// before the input tensor is treated as invalid.
const orthoTol = 1e-5

// MassProperties is the diagonalized mass record of one link. Principal
// moments are reported in ascending order, which is the order the
// eigendecomposition produces; downstream code must not rely on any
// correspondence between moment index and body axis without consulting
// Orientation.
type MassProperties struct {
	Mass         float64
	CenterOfMass mgl64.Vec3
	Principal    mgl64.Vec3
	Orientation  mgl64.Quat
}

// InvalidTensorError reports a tensor that cannot be diagonalized into a
// physical mass record: non-finite entries, a failed or non-orthonormal
// eigendecomposition, or materially negative principal moments.
type InvalidTensorError struct {
	Reason string
}

func (e *InvalidTensorError) Error() string {
	return "invalid inertia tensor: " + e.Reason
}

// Diagonalize computes the principal-axis representation of a symmetric
// inertia tensor. A zero tensor yields (nil, nil): the link carries no
// dynamics and gets no mass record. The tensor need not be positive
// definite on input, but negative eigenvalues beyond numerical noise are
// reported as errors rather than clamped away.
func Diagonalize(t desc.InertiaTensor, com mgl64.Vec3, mass float64) (*MassProperties, error) {
	if t.IsZero() {
		return nil, nil
	}
	entries := [6]float64{t.IXX, t.IXY, t.IXZ, t.IYY, t.IYZ, t.IZZ}
	for _, v := range entries {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, &InvalidTensorError{Reason: fmt.Sprintf("non-finite entry %v", v)}
		}
	}
	if math.IsNaN(mass) || math.IsInf(mass, 0) || mass < 0 {
		return nil, &InvalidTensorError{Reason: fmt.Sprintf("non-physical mass %v", mass)}
	}

	sym := mat.NewSymDense(3, []float64{
		t.IXX, t.IXY, t.IXZ,
		t.IXY, t.IYY, t.IYZ,
		t.IXZ, t.IYZ, t.IZZ,
	})
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, true); !ok {
		return nil, &InvalidTensorError{Reason: "eigendecomposition failed"}
	}
	vals := eig.Values(nil)
	var vecs mat.Dense
	eig.VectorsTo(&vecs)

	basis := mgl64.Mat3FromCols(
		mgl64.Vec3{vecs.At(0, 0), vecs.At(1, 0), vecs.At(2, 0)},
		mgl64.Vec3{vecs.At(0, 1), vecs.At(1, 1), vecs.At(2, 1)},
		mgl64.Vec3{vecs.At(0, 2), vecs.At(1, 2), vecs.At(2, 2)},
	)
	return fromEigen(vals, basis, com, mass)
}

// fromEigen validates an eigendecomposition and assembles the mass record.
// Split out from Diagonalize so the orthonormality guard can be exercised
// with a corrupted basis.
func fromEigen(vals []float64, basis mgl64.Mat3, com mgl64.Vec3, mass float64) (*MassProperties, error) {
	if !orthonormal(basis) {
		return nil, &InvalidTensorError{Reason: "eigenbasis is not orthonormal"}
	}
	basis = canonicalize(basis)

	principal, err := clampMoments(vals)
	if err != nil {
		return nil, err
	}

	return &MassProperties{
		Mass:         mass,
		CenterOfMass: com,
		Principal:    principal,
		Orientation:  mgl64.Mat4ToQuat(basis.Mat4()).Normalize(),
	}, nil
}

// orthonormal reports whether m's columns form an orthonormal basis within
// orthoTol.
func orthonormal(m mgl64.Mat3) bool {
	return m.Mul3(m.Transpose()).ApproxEqualThreshold(mgl64.Ident3(), orthoTol)
}

// canonicalize fixes eigenvector sign ambiguity: each column is flipped so
// its dominant component is positive, then the last column is flipped if the
// determinant is negative, so the basis is a proper rotation rather than a
// reflection. For an already-diagonal tensor this lands on the identity.
func canonicalize(m mgl64.Mat3) mgl64.Mat3 {
	cols := [3]mgl64.Vec3{m.Col(0), m.Col(1), m.Col(2)}
	for i, c := range cols {
		dominant := 0
		for j := 1; j < 3; j++ {
			if math.Abs(c[j]) > math.Abs(c[dominant]) {
				dominant = j
			}
		}
		if c[dominant] < 0 {
			cols[i] = c.Mul(-1)
		}
	}
	fixed := mgl64.Mat3FromCols(cols[0], cols[1], cols[2])
	if fixed.Det() < 0 {
		cols[2] = cols[2].Mul(-1)
		fixed = mgl64.Mat3FromCols(cols[0], cols[1], cols[2])
	}
	return fixed
}

// clampMoments zeroes eigenvalues that are negative within numerical noise
// and rejects ones that are materially negative.
func clampMoments(vals []float64) (mgl64.Vec3, error) {
	scale := 0.0
	for _, v := range vals {
		scale = math.Max(scale, math.Abs(v))
	}
	negTol := math.Max(1e-12, 1e-9*scale)

	var out mgl64.Vec3
	for i, v := range vals {
		if v < -negTol {
			return mgl64.Vec3{}, &InvalidTensorError{
				Reason: fmt.Sprintf("negative principal moment %v", v),
			}
		}
		out[i] = math.Max(v, 0)
	}
	return out, nil
}
