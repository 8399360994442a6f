package physics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"roboscene/internal/desc"
	"roboscene/internal/scene"
)

func compiledRobot(t *testing.T, opts scene.Options) *scene.SceneGraph {
	t.Helper()
	robot := &desc.Robot{
		Name: "testbot",
		Links: []desc.Link{
			{Name: "base", Collisions: []desc.Collision{{
				Name:     "base_box",
				Geometry: desc.Geometry{Type: desc.GeometryBox, Box: &desc.BoxData{Size: [3]float64{1, 1, 1}}},
			}}},
			{Name: "wheel"},
		},
		Joints: []desc.Joint{{
			Name:   "axle",
			Kind:   desc.JointContinuous,
			Parent: "base",
			Child:  "wheel",
			Axis:   &[3]float64{0, 1, 0},
		}},
	}
	graph, err := scene.NewCompiler(nil, opts).Compile(robot)
	require.NoError(t, err)
	return graph
}

func TestLoadCreatesBodiesAndConstraints(t *testing.T) {
	graph := compiledRobot(t, scene.Options{UnboundedRevolute: true})
	eng := NewMemory()

	require.NoError(t, Load(context.Background(), eng, graph))

	bodies := eng.Bodies()
	require.Len(t, bodies, 2)
	assert.Equal(t, "base", bodies[0].Name)
	assert.Equal(t, "wheel", bodies[1].Name)

	constraints := eng.Constraints()
	require.Len(t, constraints, 1)
	assert.Equal(t, "axle", constraints[0].Name)
	assert.Equal(t, "base", constraints[0].Parent)
	assert.Equal(t, "wheel", constraints[0].Child)
	assert.True(t, constraints[0].Spec.Unbounded)
}

func TestLoadSkipsUnconstrainedJoints(t *testing.T) {
	graph := compiledRobot(t, scene.Options{UnboundedRevolute: false})
	eng := NewMemory()

	require.NoError(t, Load(context.Background(), eng, graph))

	assert.Len(t, eng.Bodies(), 2)
	assert.Empty(t, eng.Constraints())
}

func TestLoadEnvironmentAndRobotShareEngine(t *testing.T) {
	graph := compiledRobot(t, scene.Options{UnboundedRevolute: true})
	env := scene.BuildEnvironment(scene.DefaultFieldDimensions())
	eng := NewMemory()
	ctx := context.Background()

	require.NoError(t, Load(ctx, eng, env))
	require.NoError(t, Load(ctx, eng, graph))

	assert.Len(t, eng.Bodies(), 4)
	field, ok := eng.Body("field")
	require.True(t, ok)
	assert.Equal(t, scene.EnvironmentGroups(), field.Groups)
}

func TestMemoryRejectsDuplicateBodies(t *testing.T) {
	eng := NewMemory()
	ctx := context.Background()

	require.NoError(t, eng.CreateBody(ctx, Body{Name: "base"}))
	assert.Error(t, eng.CreateBody(ctx, Body{Name: "base"}))
}

func TestMemoryRejectsConstraintWithUnknownBodies(t *testing.T) {
	eng := NewMemory()
	ctx := context.Background()

	require.NoError(t, eng.CreateBody(ctx, Body{Name: "base"}))
	err := eng.CreateConstraint(ctx, Constraint{Name: "axle", Parent: "base", Child: "ghost"})
	assert.ErrorContains(t, err, "ghost")
}

func TestMemoryRejectsUseAfterClose(t *testing.T) {
	eng := NewMemory()
	require.NoError(t, eng.Close())

	assert.Error(t, eng.CreateBody(context.Background(), Body{Name: "base"}))
}
