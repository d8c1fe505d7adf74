package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromPath(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Mode
	}{
		{"understand segment", "/student/learn/u1/understand/m42", ModeUnderstand},
		{"apply segment", "/student/learn/u1/apply/t7", ModeApply},
		{"learn root", "/student/learn/u1", ModeNeutral},
		{"dashboard", "/student/dashboard", ModeNeutral},
		{"root", "/", ModeNeutral},
		{"understand without trailing slash", "/student/learn/u1/understand", ModeNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromPath(tt.path))
		})
	}
}

func TestSwitch(t *testing.T) {
	tests := []struct {
		name        string
		currentPath string
		newMode     Mode
		want        Decision
	}{
		{
			name:        "same mode is a no-op",
			currentPath: "/student/learn/u1/understand/m42",
			newMode:     ModeUnderstand,
			want:        Decision{Action: ActionNone},
		},
		{
			name:        "outside learn route is local state",
			currentPath: "/student/dashboard",
			newMode:     ModeUnderstand,
			want:        Decision{Action: ActionSetLocal},
		},
		{
			name:        "understand to apply reuses the item id",
			currentPath: "/student/learn/u1/understand/m42",
			newMode:     ModeApply,
			want:        Decision{Action: ActionNavigate, Target: "/student/learn/u1/apply/m42"},
		},
		{
			name:        "apply to understand falls back to curriculum overview",
			currentPath: "/student/learn/u1/apply/t7",
			newMode:     ModeUnderstand,
			want:        Decision{Action: ActionNavigate, Target: "/student/learn/u1"},
		},
		{
			name:        "apply to neutral falls back to curriculum overview",
			currentPath: "/student/learn/u1/apply/t7",
			newMode:     ModeNeutral,
			want:        Decision{Action: ActionNavigate, Target: "/student/learn/u1"},
		},
		{
			name:        "learn root to apply is local without an item id",
			currentPath: "/student/learn/u1",
			newMode:     ModeApply,
			want:        Decision{Action: ActionSetLocal},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Switch(tt.currentPath, tt.newMode))
		})
	}
}
