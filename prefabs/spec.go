package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"gopkg.in/yaml.v3"
)

const (
	RobotFile  = "robot.yaml"
	CameraFile = "camera.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	return DecodeSpec[T](filename, data)
}

// DecodeSpec parses already loaded prefab bytes.
func DecodeSpec[T any](filename string, data []byte) (T, error) {
	var zero T
	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return spec, nil
}

// Vec3Spec is written as a three element sequence: [x, y, z].
type Vec3Spec [3]float64

func (v Vec3Spec) Vec3() mgl64.Vec3 {
	return mgl64.Vec3(v)
}

type MaterialSpec struct {
	Color             YAMLColor  `yaml:"color"`
	Emissive          *YAMLColor `yaml:"emissive"`
	EmissiveIntensity float64    `yaml:"emissive_intensity"`
	Transparent       bool       `yaml:"transparent"`
}

type HeadSpec struct {
	Size     Vec3Spec     `yaml:"size"`
	Material MaterialSpec `yaml:"material"`
}

type EyesSpec struct {
	// Spacing is the local X offset of each eye from the head center.
	Spacing   float64      `yaml:"spacing"`
	Y         float64      `yaml:"y"`
	Z         float64      `yaml:"z"`
	Radius    float64      `yaml:"radius"`
	Thickness float64      `yaml:"thickness"`
	Segments  int          `yaml:"segments"`
	Material  MaterialSpec `yaml:"material"`
}

type AntennaSpec struct {
	Base        Vec3Spec     `yaml:"base"`
	BaseRadius  float64      `yaml:"base_radius"`
	BaseHeight  float64      `yaml:"base_height"`
	RodRadius   float64      `yaml:"rod_radius"`
	RodHeight   float64      `yaml:"rod_height"`
	RodSegments int          `yaml:"rod_segments"`
	TipRadius   float64      `yaml:"tip_radius"`
	TipSegments int          `yaml:"tip_segments"`
	Material    MaterialSpec `yaml:"material"`
	TipMaterial MaterialSpec `yaml:"tip_material"`
}

type EarsSpec struct {
	Radius     float64      `yaml:"radius"`
	Depth      float64      `yaml:"depth"`
	Segments   int          `yaml:"segments"`
	Y          float64      `yaml:"y"`
	Z          float64      `yaml:"z"`
	ExtendedX  float64      `yaml:"extended_x"`
	RetractedX float64      `yaml:"retracted_x"`
	Material   MaterialSpec `yaml:"material"`
}

type RobotSpec struct {
	Name     string      `yaml:"name"`
	Position Vec3Spec    `yaml:"position"`
	Head     HeadSpec    `yaml:"head"`
	Eyes     EyesSpec    `yaml:"eyes"`
	Antenna  AntennaSpec `yaml:"antenna"`
	Ears     EarsSpec    `yaml:"ears"`
}

func LoadRobotSpec() (*RobotSpec, error) {
	spec, err := LoadSpec[RobotSpec](RobotFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// CameraSpec places the orbit camera. Angles are in degrees.
type CameraSpec struct {
	Name            string   `yaml:"name"`
	FovY            float64  `yaml:"fov_y"`
	Near            float64  `yaml:"near"`
	Far             float64  `yaml:"far"`
	Target          Vec3Spec `yaml:"target"`
	Azimuth         float64  `yaml:"azimuth"`
	Polar           float64  `yaml:"polar"`
	Radius          float64  `yaml:"radius"`
	MinRadius       float64  `yaml:"min_radius"`
	MaxRadius       float64  `yaml:"max_radius"`
	RotateSpeed     float64  `yaml:"rotate_speed"`
	ZoomSpeed       float64  `yaml:"zoom_speed"`
	SpringFrequency float64  `yaml:"spring_frequency"`
	SpringDamping   float64  `yaml:"spring_damping"`
}

func LoadCameraSpec() (*CameraSpec, error) {
	spec, err := LoadSpec[CameraSpec](CameraFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type YAMLColor struct {
	color.Color
}

// Vec3 returns the color as linear RGB in [0,1]. A missing color is black.
func (c YAMLColor) Vec3() mgl64.Vec3 {
	if c.Color == nil {
		return mgl64.Vec3{}
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return mgl64.Vec3{float64(n.R) / 255, float64(n.G) / 255, float64(n.B) / 255}
}

func (c YAMLColor) MarshalYAML() (any, error) {
	if c.Color == nil {
		return "#000000", nil
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	if n.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", n.R, n.G, n.B), nil
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A), nil
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
