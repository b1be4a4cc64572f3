package ballistics

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/jakecoffman/cp"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

// wallAt reports a hit where a segment crosses the vertical line x.
func wallAt(xs ...float64) RaycasterFunc {
	return func(from, to cp.Vector) (RayHit, bool) {
		best := RayHit{Alpha: math.Inf(1)}
		found := false
		for _, x := range xs {
			dx := to.X - from.X
			if dx == 0 {
				continue
			}
			alpha := (x - from.X) / dx
			if alpha < 0 || alpha > 1 || alpha >= best.Alpha {
				continue
			}
			best = RayHit{
				Point:  from.Add(to.Sub(from).Mult(alpha)),
				Normal: cp.Vector{X: -math.Copysign(1, dx)},
				Alpha:  alpha,
			}
			found = true
		}
		return best, found
	}
}

func TestInitialVelocity(t *testing.T) {
	tests := []struct {
		name   string
		launch Launch
		want   cp.Vector
	}{
		{"normalizes_direction", Launch{Direction: cp.Vector{X: 3, Y: 4}, Strength: 10, Mass: 2}, cp.Vector{X: 3, Y: 4}},
		{"heavier_is_slower", Launch{Direction: cp.Vector{X: 1}, Strength: 10, Mass: 5}, cp.Vector{X: 2}},
		{"non_positive_mass_is_unit", Launch{Direction: cp.Vector{Y: -1}, Strength: 7, Mass: 0}, cp.Vector{Y: -7}},
		{"zero_direction", Launch{Strength: 10, Mass: 1}, cp.Vector{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, tc.launch.InitialVelocity(), approx); diff != "" {
				t.Fatalf("velocity mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPositionAt(t *testing.T) {
	got := PositionAt(cp.Vector{X: 1, Y: 2}, cp.Vector{X: 10, Y: -10}, cp.Vector{Y: 10}, 1)
	want := cp.Vector{X: 11, Y: -3}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Fatalf("position mismatch (-want +got):\n%s", diff)
	}
}

func TestPredictSampleCountMatchesPoints(t *testing.T) {
	launch := Launch{Origin: cp.Vector{X: 5, Y: 5}, Direction: cp.Vector{X: 1, Y: -1}, Strength: 300, Mass: 1}
	gravity := cp.Vector{Y: 313.92}
	for _, points := range []int{10, 25, 100} {
		path := Sampler{Points: points, Step: 0.1}.Predict(launch, gravity, wallAt())
		if path.Hit {
			t.Fatalf("points=%d: unexpected hit", points)
		}
		if len(path.Points) != points {
			t.Fatalf("points=%d: got %d samples", points, len(path.Points))
		}
	}
}

func TestPredictSamplesFollowClosedForm(t *testing.T) {
	launch := Launch{Origin: cp.Vector{X: 0, Y: 100}, Direction: cp.Vector{X: 1, Y: -2}, Strength: 50, Mass: 2}
	gravity := cp.Vector{Y: 9.81}
	s := Sampler{Points: 12, Step: 0.05}
	path := s.Predict(launch, gravity, nil)

	v0 := launch.InitialVelocity()
	want := make([]cp.Vector, 0, s.Points)
	for i := 0; i < s.Points; i++ {
		want = append(want, PositionAt(launch.Origin, v0, gravity, float64(i)*s.Step))
	}
	if diff := cmp.Diff(want, path.Points, approx); diff != "" {
		t.Fatalf("samples mismatch (-want +got):\n%s", diff)
	}
	if got := s.Duration(); math.Abs(got-0.55) > 1e-12 {
		t.Fatalf("duration = %v, want 0.55", got)
	}
}

func TestPredictTruncatesAtFirstCollision(t *testing.T) {
	launch := Launch{Direction: cp.Vector{X: 1}, Strength: 100, Mass: 1}
	s := Sampler{Points: 25, Step: 0.1}

	tests := []struct {
		name      string
		caster    Raycaster
		wantIndex int
		wantLast  cp.Vector
	}{
		{"on_sample_boundary", wallAt(50), 5, cp.Vector{X: 50}},
		{"mid_segment", wallAt(45), 5, cp.Vector{X: 45}},
		{"nearest_of_two", wallAt(120, 33), 4, cp.Vector{X: 33}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := s.Predict(launch, cp.Vector{}, tc.caster)
			if !path.Hit {
				t.Fatalf("expected a hit")
			}
			if path.HitIndex != tc.wantIndex {
				t.Fatalf("hit index = %d, want %d", path.HitIndex, tc.wantIndex)
			}
			if len(path.Points) != tc.wantIndex+1 {
				t.Fatalf("got %d points, want %d", len(path.Points), tc.wantIndex+1)
			}
			if diff := cmp.Diff(tc.wantLast, path.Points[len(path.Points)-1], approx); diff != "" {
				t.Fatalf("last point mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tc.wantLast, path.HitInfo.Point, approx); diff != "" {
				t.Fatalf("hit info mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestPredictStopsCastingAfterHit(t *testing.T) {
	calls := 0
	caster := RaycasterFunc(func(from, to cp.Vector) (RayHit, bool) {
		calls++
		if calls == 3 {
			return RayHit{Point: to}, true
		}
		return RayHit{}, false
	})
	path := Sampler{Points: 50, Step: 0.1}.Predict(Launch{Direction: cp.Vector{X: 1}, Strength: 10, Mass: 1}, cp.Vector{Y: 9.81}, caster)
	if calls != 3 {
		t.Fatalf("expected 3 casts, got %d", calls)
	}
	if len(path.Points) != 4 {
		t.Fatalf("expected 4 points, got %d", len(path.Points))
	}
}

func TestPredictCastsConsecutiveSegments(t *testing.T) {
	var segments [][2]cp.Vector
	caster := RaycasterFunc(func(from, to cp.Vector) (RayHit, bool) {
		segments = append(segments, [2]cp.Vector{from, to})
		return RayHit{}, false
	})
	path := Sampler{Points: 10, Step: 0.1}.Predict(Launch{Direction: cp.Vector{X: 1, Y: -1}, Strength: 40, Mass: 1}, cp.Vector{Y: 20}, caster)
	if len(segments) != len(path.Points)-1 {
		t.Fatalf("expected %d casts, got %d", len(path.Points)-1, len(segments))
	}
	for i, seg := range segments {
		if seg[0] != path.Points[i] || seg[1] != path.Points[i+1] {
			t.Fatalf("segment %d does not join samples %d and %d", i, i, i+1)
		}
	}
}

func TestPredictIntoReusesBuffer(t *testing.T) {
	buf := make([]cp.Vector, 0, 64)
	path := Sampler{Points: 30, Step: 0.1}.PredictInto(buf, Launch{Direction: cp.Vector{X: 1}, Strength: 10, Mass: 1}, cp.Vector{Y: 9.81}, nil)
	if &path.Points[0] != &buf[:1][0] {
		t.Fatalf("expected path to share the provided buffer")
	}
}

func TestImpactVelocity(t *testing.T) {
	s := Sampler{Points: 25, Step: 0.1}
	launch := Launch{Direction: cp.Vector{X: 1}, Strength: 100, Mass: 1}
	gravity := cp.Vector{Y: 10}

	tests := []struct {
		name   string
		caster Raycaster
		want   cp.Vector
	}{
		// 2.4s of flight covers all 25 samples
		{"unobstructed_last_sample", nil, cp.Vector{X: 100, Y: 24}},
		// wall at x=45 is reached at t=0.45
		{"truncated_at_hit", wallAt(45), cp.Vector{X: 100, Y: 4.5}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := s.Predict(launch, gravity, tc.caster)
			got := s.ImpactVelocity(launch, gravity, path)
			if diff := cmp.Diff(tc.want, got, approx); diff != "" {
				t.Fatalf("impact velocity mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestVelocityAt(t *testing.T) {
	got := VelocityAt(cp.Vector{X: 3, Y: -5}, cp.Vector{Y: 10}, 0.5)
	if diff := cmp.Diff(cp.Vector{X: 3}, got, approx); diff != "" {
		t.Fatalf("velocity mismatch (-want +got):\n%s", diff)
	}
}
