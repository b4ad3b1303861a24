package config

import (
	"io/ioutil"
	"log"
	"sync"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config holds every tunable the editor reads at runtime. Layout constants
// must stay in exact sync with the pick inversion: the unprojection recovers
// grid coordinates by algebraically inverting the projection these drive.
type Config struct {
	Layout struct {
		// Grid-to-anchor-local mapping. X is negated at projection time,
		// ZIncrement is negative so the plane tilts away with growing Y.
		XIncrement float32 `yaml:"x_increment"`
		YIncrement float32 `yaml:"y_increment"`
		ZIncrement float32 `yaml:"z_increment"`
		ZOffset    float32 `yaml:"z_offset"`

		// Native connector geometry length compensation.
		EdgeScale float32 `yaml:"edge_scale"`
	} `yaml:"layout"`

	Pick struct {
		// Base grid-distance tolerance and its per-Y widening. Further rows
		// sit deeper in the perspective, so their acceptable radius grows.
		Tolerance       float32 `yaml:"tolerance"`
		ToleranceYScale float32 `yaml:"tolerance_y_scale"`

		// Valid grid Y range for dragging, deliberately asymmetric.
		YMin float32 `yaml:"y_min"`
		YMax float32 `yaml:"y_max"`
	} `yaml:"pick"`

	Camera struct {
		FovDegrees   float32    `yaml:"fov_degrees"`
		Near         float32    `yaml:"near"`
		Far          float32    `yaml:"far"`
		LookAtOffset [3]float32 `yaml:"look_at_offset"`
	} `yaml:"camera"`

	Anchors struct {
		Camera  string `yaml:"camera"`
		Right   string `yaml:"right"`
		Forward string `yaml:"forward"`
	} `yaml:"anchors"`

	Meshes struct {
		Glyph string `yaml:"glyph"`
		Edge  string `yaml:"edge"`
	} `yaml:"meshes"`

	Encoding string `yaml:"encoding"`
}

var (
	current Config
	mu      sync.RWMutex
)

func init() {
	current = Defaults()
}

func Defaults() Config {
	var c Config
	c.Layout.XIncrement = 5.0
	c.Layout.YIncrement = 15.0
	c.Layout.ZIncrement = -9.0
	c.Layout.ZOffset = 5.0
	c.Layout.EdgeScale = 0.1

	c.Pick.Tolerance = 0.5
	c.Pick.ToleranceYScale = 1.0 / 15.0
	c.Pick.YMin = -3.0
	c.Pick.YMax = 18.0

	c.Camera.FovDegrees = 45.0
	c.Camera.Near = 1.0
	c.Camera.Far = 10000.0

	c.Anchors.Camera = "CameraPosition"
	c.Anchors.Right = "HorizonRight"
	c.Anchors.Forward = "HorizonForward"

	c.Meshes.Glyph = "PerkStar"
	c.Meshes.Edge = "PerkLine"

	c.Encoding = "Windows 1252"
	return c
}

func Get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

func Set(c Config) {
	mu.Lock()
	defer mu.Unlock()
	current = c
}

func LoadFile(path string) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrapf(err, "failed to read config %q", path)
	}

	c := Defaults()
	if err := yaml.Unmarshal(data, &c); err != nil {
		return errors.Wrapf(err, "failed to parse config %q", path)
	}

	Set(c)
	log.Printf("[config] loaded %q", path)
	return nil
}

func SaveFile(path string) error {
	data, err := yaml.Marshal(Get())
	if err != nil {
		return errors.Wrap(err, "failed to marshal config")
	}
	return errors.Wrapf(ioutil.WriteFile(path, data, 0666), "failed to write config %q", path)
}
