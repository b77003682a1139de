package resource

import (
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Key is a case-folded key name such as "w", "up" or "enter".
type Key string

// KeyOf folds a frontend key name into a Key.
func KeyOf(name string) Key {
	return Key(cases.Fold().String(strings.TrimSpace(name)))
}

type Action uint8

const (
	ActionNone Action = iota
	ActionConfirm
	ActionAccelerate
	ActionBrake
	ActionRotateLeft
	ActionRotateRight
)

var actionNames = map[string]Action{
	"confirm":      ActionConfirm,
	"accelerate":   ActionAccelerate,
	"brake":        ActionBrake,
	"rotate_left":  ActionRotateLeft,
	"rotate_right": ActionRotateRight,
}

func (a Action) String() string {
	for name, act := range actionNames {
		if act == a {
			return name
		}
	}
	return "none"
}

// ParseAction maps a config action name to an Action.
func ParseAction(name string) (Action, bool) {
	a, ok := actionNames[cases.Fold().String(name)]
	return a, ok
}

// KeyboardEvent is one press or release as delivered by the frontend.
type KeyboardEvent struct {
	Pressed bool
	Key     Key
}

type WindowEventKind uint8

const (
	WindowResize WindowEventKind = iota
)

type WindowEvent struct {
	Kind   WindowEventKind
	Width  uint32
	Height uint32
}

// Bindings maps keys to gameplay actions.
type Bindings struct {
	keys map[Key]Action
}

// NewBindings builds the key map from action name -> key names. Unknown
// action names are returned so the caller can report them.
func NewBindings(table map[string][]string) (Bindings, []string) {
	b := Bindings{keys: make(map[Key]Action)}
	var unknown []string
	for name, keys := range table {
		act, ok := ParseAction(name)
		if !ok {
			unknown = append(unknown, name)
			continue
		}
		for _, k := range keys {
			b.keys[KeyOf(k)] = act
		}
	}
	slices.Sort(unknown)
	return b, unknown
}

// DefaultBindings is WASD plus arrows, Enter and Space to confirm.
func DefaultBindings() Bindings {
	b, _ := NewBindings(map[string][]string{
		"accelerate":   {"W", "Up"},
		"brake":        {"S", "Down"},
		"rotate_left":  {"A", "Left"},
		"rotate_right": {"D", "Right"},
		"confirm":      {"Enter", "Space"},
	})
	return b
}

// Action returns the action bound to k, or ActionNone.
func (b Bindings) Action(k Key) Action {
	return b.keys[k]
}
