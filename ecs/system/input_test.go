package system

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestInputEdgesHeldAcrossFrozenFrames(t *testing.T) {
	tests := []struct {
		name  string
		held  []inputEdges
		frame inputEdges
		want  inputEdges
	}{
		{
			name:  "release_during_freeze",
			held:  []inputEdges{{}, {throwReleased: true}, {}},
			frame: inputEdges{},
			want:  inputEdges{throwReleased: true},
		},
		{
			name:  "nothing_held",
			frame: inputEdges{jumpPressed: true},
			want:  inputEdges{jumpPressed: true},
		},
		{
			name:  "volume_steps_add_up",
			held:  []inputEdges{{volume: 0.1}, {volume: 0.1, toggle: true}},
			frame: inputEdges{volume: -0.1},
			want:  inputEdges{volume: 0.1, toggle: true},
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var in InputSystem
			for _, e := range tc.held {
				in.hold(e)
			}
			got := in.take(tc.frame)
			if diff := cmp.Diff(tc.want, got, cmp.AllowUnexported(inputEdges{}), cmpopts.EquateApprox(0, 1e-9)); diff != "" {
				t.Fatalf("edges mismatch (-want +got):\n%s", diff)
			}
			if next := in.take(inputEdges{}); next != (inputEdges{}) {
				t.Fatalf("held edges leaked into a second frame: %+v", next)
			}
		})
	}
}
