package scene

import (
	"github.com/go-gl/mathgl/mgl64"

	"roboscene/internal/collider"
	"roboscene/internal/desc"
	"roboscene/internal/frame"
	"roboscene/internal/kintree"
)

// FieldDimensions sizes the playing field the robot is dropped into, in
// meters.
type FieldDimensions struct {
	BallRadius       float64 `yaml:"ball_radius"`
	Length           float64 `yaml:"length"`
	Width            float64 `yaml:"width"`
	BorderStripWidth float64 `yaml:"border_strip_width"`
}

// DefaultFieldDimensions returns standard field sizing.
func DefaultFieldDimensions() FieldDimensions {
	return FieldDimensions{
		BallRadius:       0.05,
		Length:           9.0,
		Width:            6.0,
		BorderStripWidth: 0.7,
	}
}

// BuildEnvironment produces the static surroundings as a joint-free scene
// graph: a flat ground slab in the environment group and a ball in the
// free-object group. Both collide with everything, including the robot.
func BuildEnvironment(dims FieldDimensions) *SceneGraph {
	groundX := dims.Length + dims.BorderStripWidth*2
	groundY := dims.Width + dims.BorderStripWidth*2

	ground := CompiledLink{
		ID:   0,
		Name: "field",
		Frame: frame.Transform{
			Pos: mgl64.Vec3{0, 0, -1},
			Rot: mgl64.QuatIdent(),
		},
		Collider: &collider.Compound{Shapes: []collider.SubShape{{
			Frame: frame.Identity(),
			Shape: collider.Shape{
				Kind:        desc.GeometryBox,
				HalfExtents: mgl64.Vec3{groundX / 2, groundY / 2, 0.01},
			},
		}}},
		Groups: EnvironmentGroups(),
	}

	ball := CompiledLink{
		ID:   1,
		Name: "ball",
		Frame: frame.Transform{
			Pos: mgl64.Vec3{0, 0, 4},
			Rot: mgl64.QuatIdent(),
		},
		Collider: &collider.Compound{Shapes: []collider.SubShape{{
			Frame: frame.Identity(),
			Shape: collider.Shape{
				Kind:   desc.GeometrySphere,
				Radius: dims.BallRadius,
			},
		}}},
		Groups: FreeObjectGroups(),
	}

	return &SceneGraph{
		Name:  "environment",
		Links: []CompiledLink{ground, ball},
		Roots: []kintree.LinkID{0, 1},
	}
}
