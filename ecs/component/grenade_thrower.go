package component

// Tuning limits for GrenadeThrower. Out-of-range values are clamped.
const (
	MinThrowStrength      = 1.0
	MaxThrowStrength      = 100.0
	MinExplosionDelay     = 1.0
	MaxExplosionDelay     = 10.0
	MinLinePoints         = 10
	MaxLinePoints         = 100
	MinTimeBetweenPoints  = 0.01
	MaxTimeBetweenPoints  = 0.25
	DefaultThrowStrength  = 10.0
	DefaultExplosionDelay = 5.0
	DefaultLinePoints     = 25
	DefaultTimeBetween    = 0.1
	DefaultReleaseEvent   = "release"
)

// GrenadeThrower aims, previews and throws a single pooled grenade.
type GrenadeThrower struct {
	ThrowStrength     float64
	ExplosionDelay    float64
	LinePoints        int
	TimeBetweenPoints float64

	// ReleaseOffsetX/Y place the hand relative to the thrower's transform
	// while facing right; X is mirrored when facing left.
	ReleaseOffsetX float64
	ReleaseOffsetY float64

	ThrowAnimation  string
	ReleaseEvent    string
	GrenadePrefab   string
	ExplosionPrefab string
	ExplosionScript string
	ExplosionSound  string

	// Runtime state.
	Grenade        uint64
	ThrowAvailable bool
	Aiming         bool
	AimX           float64
	AimY           float64
	// PreviewImpactSpeed is the predicted speed at the end of the preview
	// path, in pixels per second.
	PreviewImpactSpeed float64
	// CollisionCategory/CollisionMask come from the grenade's collision
	// layer and filter the preview raycasts.
	CollisionCategory uint32
	CollisionMask     uint32
	Group             uint
}

// Clamp forces tuning values into their supported ranges.
func (t *GrenadeThrower) Clamp() {
	t.ThrowStrength = clampFloat(t.ThrowStrength, MinThrowStrength, MaxThrowStrength)
	t.ExplosionDelay = clampFloat(t.ExplosionDelay, MinExplosionDelay, MaxExplosionDelay)
	t.TimeBetweenPoints = clampFloat(t.TimeBetweenPoints, MinTimeBetweenPoints, MaxTimeBetweenPoints)
	if t.LinePoints < MinLinePoints {
		t.LinePoints = MinLinePoints
	}
	if t.LinePoints > MaxLinePoints {
		t.LinePoints = MaxLinePoints
	}
}

// ReleaseEventName is the animation frame event that lets go of the grenade.
func (t *GrenadeThrower) ReleaseEventName() string {
	if t.ReleaseEvent == "" {
		return DefaultReleaseEvent
	}
	return t.ReleaseEvent
}

// ReleasePoint returns the hand position for a thrower at (x, y).
func (t *GrenadeThrower) ReleasePoint(x, y float64, facingLeft bool) (float64, float64) {
	ox := t.ReleaseOffsetX
	if facingLeft {
		ox = -ox
	}
	return x + ox, y + t.ReleaseOffsetY
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

var GrenadeThrowerComponent = NewComponent[GrenadeThrower]()
