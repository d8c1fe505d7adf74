package navigation

import (
	"fmt"
	"strings"
)

// Mode is the pedagogical context inferred from the current route.
type Mode string

const (
	ModeNeutral    Mode = "NEUTRAL"
	ModeUnderstand Mode = "UNDERSTAND"
	ModeApply      Mode = "APPLY"
)

// FromPath derives the mode purely from the path. Nothing else (query
// string, stored preference) participates.
func FromPath(path string) Mode {
	switch {
	case strings.Contains(path, "/understand/"):
		return ModeUnderstand
	case strings.Contains(path, "/apply/"):
		return ModeApply
	default:
		return ModeNeutral
	}
}

// Action says how a mode switch should be realized by the caller.
type Action string

const (
	// ActionNone: switching to the mode already in effect is a no-op.
	ActionNone Action = "none"
	// ActionNavigate: the switch is a navigation to Decision.Target.
	ActionNavigate Action = "navigate"
	// ActionSetLocal: outside the learn route the mode is plain local state.
	ActionSetLocal Action = "set_local"
)

type Decision struct {
	Action Action
	Target string
}

// learnRoute matches /student/learn/{universityID}/{mode}/{itemID}.
type learnRoute struct {
	universityID string
	itemID       string
}

func parseLearnRoute(path string) (*learnRoute, bool) {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	if len(segs) != 5 || segs[0] != "student" || segs[1] != "learn" {
		return nil, false
	}
	return &learnRoute{universityID: segs[2], itemID: segs[4]}, true
}

// Switch decides what a mode change from the given path means. On the learn
// route, UNDERSTAND -> APPLY reuses the trailing item identifier for the
// apply route; this is best-effort, since understand and apply identifiers
// may be namespaced differently and the target may not resolve. Every other
// learn-route switch falls back to the university's curriculum overview,
// because there is no reliable mapping from a practice topic back to a
// specific study-material id.
func Switch(currentPath string, newMode Mode) Decision {
	if FromPath(currentPath) == newMode {
		return Decision{Action: ActionNone}
	}

	route, ok := parseLearnRoute(currentPath)
	if !ok {
		return Decision{Action: ActionSetLocal}
	}

	if newMode == ModeApply {
		return Decision{
			Action: ActionNavigate,
			Target: fmt.Sprintf("/student/learn/%s/apply/%s", route.universityID, route.itemID),
		}
	}
	return Decision{
		Action: ActionNavigate,
		Target: fmt.Sprintf("/student/learn/%s", route.universityID),
	}
}
