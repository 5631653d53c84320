// Package config handles viewer configuration loading and management.
package config

// Config holds all viewer settings.
type Config struct {
	Graphics GraphicsConfig `yaml:"graphics"`
	Camera   CameraConfig   `yaml:"camera"`
	Turbine  TurbineConfig  `yaml:"turbine"`
	Assets   AssetsConfig   `yaml:"assets"`
	Input    InputConfig    `yaml:"input"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// GraphicsConfig holds display and rendering settings.
type GraphicsConfig struct {
	Width         int         `yaml:"width"`
	Height        int         `yaml:"height"`
	Fullscreen    bool        `yaml:"fullscreen"`
	VSync         bool        `yaml:"vsync"`
	ClearColor    [3]float32  `yaml:"clear_color"`
	ShowFPS       bool        `yaml:"show_fps"`
	Light         LightConfig `yaml:"light"`
	ScreenshotDir string      `yaml:"screenshot_dir"`
}

// LightConfig places the directional light used on top of the normal colouring.
type LightConfig struct {
	Azimuth   float32 `yaml:"azimuth"`   // Degrees around +Y, 0 faces +Z
	Elevation float32 `yaml:"elevation"` // Degrees above the horizon
	Ambient   float32 `yaml:"ambient"`   // 0..1, 1 disables shading
}

// CameraConfig holds the orbit camera settings.
type CameraConfig struct {
	FOV           float32    `yaml:"fov"` // Vertical field of view in degrees
	Near          float32    `yaml:"near"`
	Far           float32    `yaml:"far"`
	Distance      float32    `yaml:"distance"`
	Target        [3]float32 `yaml:"target"`
	EnableDamping bool       `yaml:"enable_damping"`
	DampingFactor float32    `yaml:"damping_factor"`
	RotateSpeed   float32    `yaml:"rotate_speed"`
	PanSpeed      float32    `yaml:"pan_speed"`
	ZoomSpeed     float32    `yaml:"zoom_speed"`
	MinDistance   float32    `yaml:"min_distance"`
	MaxDistance   float32    `yaml:"max_distance"`
}

// TurbineConfig holds the animation constants of the turbine.
type TurbineConfig struct {
	MaxSpeed      float32 `yaml:"max_speed"`    // Radians per tick
	Acceleration  float32 `yaml:"acceleration"` // Radians per tick, per tick
	StartEngaged  bool    `yaml:"start_engaged"`
	StartRotating bool    `yaml:"start_rotating"`
	// StartDisengaged places the blades at their disengaged pose on load.
	StartDisengaged bool          `yaml:"start_disengaged"`
	Blades          []BladeConfig `yaml:"blades"`
}

// BladeConfig holds the fixed poses and per-tick step of one blade.
type BladeConfig struct {
	Engaged    [3]float32 `yaml:"engaged"`
	Disengaged [3]float32 `yaml:"disengaged"`
	Step       [3]float32 `yaml:"step"`
	Angle      float32    `yaml:"angle"` // Static roll about the hub axis, degrees
}

// AssetsConfig holds mesh file locations.
type AssetsConfig struct {
	Dir     string `yaml:"dir"`
	Tower   string `yaml:"tower"`
	Nacelle string `yaml:"nacelle"`
	Blade   string `yaml:"blade"`
	// FallbackMeshes substitutes a box for assets that fail to load.
	FallbackMeshes bool `yaml:"fallback_meshes"`
}

// InputConfig holds key bindings by SDL key name.
type InputConfig struct {
	ToggleRotation   string `yaml:"toggle_rotation"`
	ToggleEngagement string `yaml:"toggle_engagement"`
	Screenshot       string `yaml:"screenshot"` // Empty disables screenshots
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Graphics: GraphicsConfig{
			Width:      1280,
			Height:     720,
			Fullscreen: false,
			VSync:      true,
			ClearColor: [3]float32{0.1, 0.1, 0.15},
			Light: LightConfig{
				Azimuth:   35,
				Elevation: 50,
				Ambient:   0.35,
			},
			ScreenshotDir: "screenshots",
		},
		Camera: CameraConfig{
			FOV:           70,
			Near:          0.01,
			Far:           10,
			Distance:      1,
			EnableDamping: true,
			DampingFactor: 0.25,
			RotateSpeed:   0.3,
			PanSpeed:      0.3,
			ZoomSpeed:     0.1,
			MinDistance:   0.1,
			MaxDistance:   5,
		},
		Turbine: TurbineConfig{
			MaxSpeed:        0.01,
			Acceleration:    0.00025,
			StartEngaged:    true,
			StartRotating:   true,
			StartDisengaged: true,
			Blades:          DefaultBlades(),
		},
		Assets: AssetsConfig{
			Dir:            "assets",
			Tower:          "tower.stl",
			Nacelle:        "nacelle.stl",
			Blade:          "blade.stl",
			FallbackMeshes: true,
		},
		Input: InputConfig{
			ToggleRotation:   "R",
			ToggleEngagement: "E",
			Screenshot:       "F12",
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// DefaultBlades returns the three blade poses, spaced 120 degrees about the hub.
func DefaultBlades() []BladeConfig {
	return []BladeConfig{
		{
			Engaged:    [3]float32{0.103, -0.055, 0.046},
			Disengaged: [3]float32{0.303, -0.055, 0.146},
			Step:       [3]float32{0.003, 0, 0.003},
			Angle:      0,
		},
		{
			Engaged:    [3]float32{-0.004, 0.117, 0.046},
			Disengaged: [3]float32{-0.104, 0.290, 0.146},
			Step:       [3]float32{-0.0015, 0.0026, 0.003},
			Angle:      120,
		},
		{
			Engaged:    [3]float32{-0.099, -0.062, 0.046},
			Disengaged: [3]float32{-0.199, -0.235, 0.146},
			Step:       [3]float32{-0.0015, -0.0026, 0.003},
			Angle:      240,
		},
	}
}
