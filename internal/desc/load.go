package desc

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Wire format for YAML robot descriptions. Kept separate from the domain
// types so the compiler core never sees yaml tags or string-typed enums.

type robotYAML struct {
	Name   string      `yaml:"name"`
	Links  []linkYAML  `yaml:"links"`
	Joints []jointYAML `yaml:"joints"`
}

type originYAML struct {
	XYZ [3]float64 `yaml:"xyz"`
	RPY [3]float64 `yaml:"rpy"`
}

type inertialYAML struct {
	Mass         float64    `yaml:"mass"`
	CenterOfMass [3]float64 `yaml:"center_of_mass"`
	Inertia      struct {
		IXX float64 `yaml:"ixx"`
		IXY float64 `yaml:"ixy"`
		IXZ float64 `yaml:"ixz"`
		IYY float64 `yaml:"iyy"`
		IYZ float64 `yaml:"iyz"`
		IZZ float64 `yaml:"izz"`
	} `yaml:"inertia"`
}

type geometryYAML struct {
	Type     string     `yaml:"type"`
	Size     [3]float64 `yaml:"size"`
	Radius   float64    `yaml:"radius"`
	Length   float64    `yaml:"length"`
	Filename string     `yaml:"filename"`
	Scale    [3]float64 `yaml:"scale"`
}

type primitiveYAML struct {
	Name     string       `yaml:"name"`
	Origin   originYAML   `yaml:"origin"`
	Geometry geometryYAML `yaml:"geometry"`
}

type linkYAML struct {
	Name      string          `yaml:"name"`
	Inertial  *inertialYAML   `yaml:"inertial"`
	Collision []primitiveYAML `yaml:"collision"`
	Visual    []primitiveYAML `yaml:"visual"`
}

type jointYAML struct {
	Name   string      `yaml:"name"`
	Type   string      `yaml:"type"`
	Parent string      `yaml:"parent"`
	Child  string      `yaml:"child"`
	Origin originYAML  `yaml:"origin"`
	Axis   *[3]float64 `yaml:"axis"`
}

// LoadFile reads and validates a robot description from a YAML file.
func LoadFile(path string) (*Robot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading description %s: %w", path, err)
	}
	robot, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("description %s: %w", path, err)
	}
	return robot, nil
}

// Load parses a YAML robot description from memory and validates that every
// numeric field is finite. Structural validation (name resolution, tree
// shape) is the kinematic tree builder's job, not the parser's.
func Load(data []byte) (*Robot, error) {
	var raw robotYAML
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing description: %w", err)
	}

	robot := &Robot{Name: raw.Name}
	for _, l := range raw.Links {
		link, err := convertLink(l)
		if err != nil {
			return nil, err
		}
		robot.Links = append(robot.Links, link)
	}
	for _, j := range raw.Joints {
		kind, err := ParseJointKind(j.Type)
		if err != nil {
			return nil, fmt.Errorf("joint %q: %w", j.Name, err)
		}
		if err := checkFiniteOrigin(j.Origin); err != nil {
			return nil, fmt.Errorf("joint %q origin: %w", j.Name, err)
		}
		joint := Joint{
			Name:   j.Name,
			Kind:   kind,
			Parent: j.Parent,
			Child:  j.Child,
			Origin: Origin(j.Origin),
		}
		if j.Axis != nil {
			if err := checkFinite3(*j.Axis); err != nil {
				return nil, fmt.Errorf("joint %q axis: %w", j.Name, err)
			}
			axis := *j.Axis
			joint.Axis = &axis
		}
		robot.Joints = append(robot.Joints, joint)
	}
	return robot, nil
}

func convertLink(l linkYAML) (Link, error) {
	link := Link{Name: l.Name}
	if l.Inertial != nil {
		in := &Inertial{
			Mass:         l.Inertial.Mass,
			CenterOfMass: l.Inertial.CenterOfMass,
			Inertia: InertiaTensor{
				IXX: l.Inertial.Inertia.IXX,
				IXY: l.Inertial.Inertia.IXY,
				IXZ: l.Inertial.Inertia.IXZ,
				IYY: l.Inertial.Inertia.IYY,
				IYZ: l.Inertial.Inertia.IYZ,
				IZZ: l.Inertial.Inertia.IZZ,
			},
		}
		if in.Mass < 0 || !isFinite(in.Mass) {
			return Link{}, fmt.Errorf("link %q: invalid mass %v", l.Name, in.Mass)
		}
		if err := checkFinite3(in.CenterOfMass); err != nil {
			return Link{}, fmt.Errorf("link %q center of mass: %w", l.Name, err)
		}
		if err := checkFinite6(in.Inertia); err != nil {
			return Link{}, fmt.Errorf("link %q inertia: %w", l.Name, err)
		}
		link.Inertial = in
	}
	for _, c := range l.Collision {
		geom, err := convertGeometry(c.Geometry)
		if err != nil {
			return Link{}, fmt.Errorf("link %q collision: %w", l.Name, err)
		}
		if err := checkFiniteOrigin(c.Origin); err != nil {
			return Link{}, fmt.Errorf("link %q collision origin: %w", l.Name, err)
		}
		link.Collisions = append(link.Collisions, Collision{
			Name:     c.Name,
			Origin:   Origin(c.Origin),
			Geometry: geom,
		})
	}
	for _, v := range l.Visual {
		geom, err := convertGeometry(v.Geometry)
		if err != nil {
			return Link{}, fmt.Errorf("link %q visual: %w", l.Name, err)
		}
		if err := checkFiniteOrigin(v.Origin); err != nil {
			return Link{}, fmt.Errorf("link %q visual origin: %w", l.Name, err)
		}
		link.Visuals = append(link.Visuals, Visual{
			Name:     v.Name,
			Origin:   Origin(v.Origin),
			Geometry: geom,
		})
	}
	return link, nil
}

func convertGeometry(g geometryYAML) (Geometry, error) {
	switch g.Type {
	case "box":
		if err := checkFinite3(g.Size); err != nil {
			return Geometry{}, fmt.Errorf("box size: %w", err)
		}
		return Geometry{Type: GeometryBox, Box: &BoxData{Size: g.Size}}, nil
	case "cylinder":
		if !isFinite(g.Radius) || !isFinite(g.Length) {
			return Geometry{}, fmt.Errorf("cylinder dimensions not finite")
		}
		return Geometry{Type: GeometryCylinder, Cylinder: &CylinderData{Radius: g.Radius, Length: g.Length}}, nil
	case "sphere":
		if !isFinite(g.Radius) {
			return Geometry{}, fmt.Errorf("sphere radius not finite")
		}
		return Geometry{Type: GeometrySphere, Sphere: &SphereData{Radius: g.Radius}}, nil
	case "capsule":
		if !isFinite(g.Radius) || !isFinite(g.Length) {
			return Geometry{}, fmt.Errorf("capsule dimensions not finite")
		}
		return Geometry{Type: GeometryCapsule, Capsule: &CapsuleData{Radius: g.Radius, Length: g.Length}}, nil
	case "mesh":
		scale := g.Scale
		if scale == [3]float64{} {
			scale = [3]float64{1, 1, 1}
		}
		return Geometry{Type: GeometryMesh, Mesh: &MeshData{Filename: g.Filename, Scale: scale}}, nil
	default:
		return Geometry{}, fmt.Errorf("unknown geometry type %q", g.Type)
	}
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func checkFinite3(v [3]float64) error {
	for _, x := range v {
		if !isFinite(x) {
			return fmt.Errorf("value %v is not finite", x)
		}
	}
	return nil
}

func checkFiniteOrigin(o originYAML) error {
	if err := checkFinite3(o.XYZ); err != nil {
		return err
	}
	return checkFinite3(o.RPY)
}

func checkFinite6(t InertiaTensor) error {
	for _, x := range [6]float64{t.IXX, t.IXY, t.IXZ, t.IYY, t.IYZ, t.IZZ} {
		if !isFinite(x) {
			return fmt.Errorf("value %v is not finite", x)
		}
	}
	return nil
}
