package prefabs

type TransformComponentSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	ScaleX   float64 `yaml:"scale_x"`
	ScaleY   float64 `yaml:"scale_y"`
	Rotation float64 `yaml:"rotation"`
}

type SpriteComponentSpec struct {
	Image              string  `yaml:"image"`
	UseSource          bool    `yaml:"use_source"`
	OriginX            float64 `yaml:"origin_x"`
	OriginY            float64 `yaml:"origin_y"`
	CenterOriginIfZero bool    `yaml:"center_origin_if_zero"`
	FacingLeft         bool    `yaml:"facing_left"`
}

type RenderLayerComponentSpec struct {
	Index int `yaml:"index"`
}

type LineRenderComponentSpec struct {
	Width     float32    `yaml:"width"`
	Color     *YAMLColor `yaml:"color"`
	AntiAlias bool       `yaml:"anti_alias"`
}

type CameraComponentSpec struct {
	TargetName string  `yaml:"target_name"`
	Zoom       float64 `yaml:"zoom"`
	Smoothness float64 `yaml:"smoothness"`
}

type PlayerComponentSpec struct {
	MoveSpeed float64 `yaml:"move_speed"`
	JumpSpeed float64 `yaml:"jump_speed"`
}

type AnimationDefComponentSpec struct {
	Row        int            `yaml:"row"`
	ColStart   int            `yaml:"col_start"`
	FrameCount int            `yaml:"frame_count"`
	FrameW     int            `yaml:"frame_w"`
	FrameH     int            `yaml:"frame_h"`
	FPS        float64        `yaml:"fps"`
	Loop       bool           `yaml:"loop"`
	Next       string         `yaml:"next"`
	Events     map[int]string `yaml:"events"`
}

type AnimationComponentSpec struct {
	Sheet   string                               `yaml:"sheet"`
	Defs    map[string]AnimationDefComponentSpec `yaml:"defs"`
	Current string                               `yaml:"current"`
	Playing bool                                 `yaml:"playing"`
}

type AudioClipSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

type AudioComponentSpec struct {
	Clips []AudioClipSpec `yaml:"clips"`
}

type PhysicsBodyComponentSpec struct {
	Width         float64 `yaml:"width"`
	Height        float64 `yaml:"height"`
	Radius        float64 `yaml:"radius"`
	Mass          float64 `yaml:"mass"`
	Friction      float64 `yaml:"friction"`
	Elasticity    float64 `yaml:"elasticity"`
	Static        bool    `yaml:"static"`
	Kinematic     bool    `yaml:"kinematic"`
	AlignTopLeft  bool    `yaml:"align_top_left"`
	FixedRotation bool    `yaml:"fixed_rotation"`
	Group         uint    `yaml:"group"`
}

type CollisionLayerComponentSpec struct {
	Category uint32 `yaml:"category"`
	Mask     uint32 `yaml:"mask"`
}

type TTLComponentSpec struct {
	Frames  int     `yaml:"frames"`
	Seconds float64 `yaml:"seconds"`
}

type ParticleEmitterComponentSpec struct {
	Color   *YAMLColor `yaml:"color"`
	Damping float64    `yaml:"damping"`
	Gravity float64    `yaml:"gravity"`
}

// GrenadeThrowerComponentSpec mirrors component.GrenadeThrower's tuning.
// Zero values fall back to the component defaults.
type GrenadeThrowerComponentSpec struct {
	ThrowStrength     float64 `yaml:"throw_strength"`
	ExplosionDelay    float64 `yaml:"explosion_delay"`
	LinePoints        int     `yaml:"line_points"`
	TimeBetweenPoints float64 `yaml:"time_between_points"`
	ReleaseOffsetX    float64 `yaml:"release_offset_x"`
	ReleaseOffsetY    float64 `yaml:"release_offset_y"`
	ThrowAnimation    string  `yaml:"throw_animation"`
	ReleaseEvent      string  `yaml:"release_event"`
	GrenadePrefab     string  `yaml:"grenade_prefab"`
	ExplosionPrefab   string  `yaml:"explosion_prefab"`
	ExplosionScript   string  `yaml:"explosion_script"`
	ExplosionSound    string  `yaml:"explosion_sound"`
}
