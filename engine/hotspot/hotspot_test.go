package hotspot

import (
	"testing"

	"github.com/marisk/vantage/types"
)

func lookHandler(text string) *types.Handler {
	return &types.Handler{Result: types.ResultText, Contents: types.Contents{Text: text}}
}

func TestFind(t *testing.T) {
	actions := []types.Action{
		{Rect: types.Rect{10, 10, 50, 50}, Look: lookHandler("painting")},
		{Rect: types.Rect{100, 100, 30, 30}, Use: lookHandler("lever")},
	}

	a := Find(actions, 20, 20)
	if a == nil || a.Look == nil || a.Look.Contents.Text != "painting" {
		t.Fatalf("click (20,20) matched %+v, want painting region", a)
	}
	if a := Find(actions, 110, 120); a == nil || a.Use == nil {
		t.Error("click (110,120) should match the lever region")
	}
	if a := Find(actions, 200, 200); a != nil {
		t.Errorf("click (200,200) matched %+v, want none", a)
	}
}

// Overlapping regions resolve to the first declared.
func TestFind_FirstDeclaredWins(t *testing.T) {
	actions := []types.Action{
		{Rect: types.Rect{10, 10, 100, 100}, Look: lookHandler("first")},
		{Rect: types.Rect{10, 10, 100, 100}, Look: lookHandler("second")},
	}
	a := Find(actions, 50, 50)
	if a == nil || a.Look.Contents.Text != "first" {
		t.Fatalf("overlap resolved to %+v, want first-declared", a)
	}
}

func TestHandler(t *testing.T) {
	a := &types.Action{
		Rect: types.Rect{1, 1, 10, 10},
		Look: lookHandler("dusty shelf"),
		Go:   &types.Handler{Result: types.ResultExit, Contents: types.Contents{Text: "attic"}},
	}

	if h := Handler(a, types.VerbLook); h == nil || h.Contents.Text != "dusty shelf" {
		t.Error("look handler not returned")
	}
	if h := Handler(a, types.VerbGo); h == nil || h.Result != types.ResultExit {
		t.Error("go handler not returned")
	}
	if h := Handler(a, types.VerbUse); h != nil {
		t.Errorf("use handler = %+v, want nil for missing verb", h)
	}
	if h := Handler(nil, types.VerbLook); h != nil {
		t.Error("nil action should return nil handler")
	}
}

func TestDefaultVerb(t *testing.T) {
	tests := []struct {
		name string
		a    *types.Action
		want types.Verb
	}{
		{"look wins", &types.Action{Look: lookHandler("x"), Use: lookHandler("y"), Go: lookHandler("z")}, types.VerbLook},
		{"use before go", &types.Action{Use: lookHandler("y"), Go: lookHandler("z")}, types.VerbUse},
		{"go only", &types.Action{Go: lookHandler("z")}, types.VerbGo},
		{"empty region", &types.Action{}, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		if got := DefaultVerb(tt.a); got != tt.want {
			t.Errorf("%s: DefaultVerb = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestSecondaryVerb(t *testing.T) {
	tests := []struct {
		name string
		a    *types.Action
		want types.Verb
	}{
		{"use wins", &types.Action{Look: lookHandler("x"), Use: lookHandler("y"), Go: lookHandler("z")}, types.VerbUse},
		{"go when no use", &types.Action{Look: lookHandler("x"), Go: lookHandler("z")}, types.VerbGo},
		{"look never secondary", &types.Action{Look: lookHandler("x")}, ""},
		{"nil", nil, ""},
	}
	for _, tt := range tests {
		if got := SecondaryVerb(tt.a); got != tt.want {
			t.Errorf("%s: SecondaryVerb = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestIcon(t *testing.T) {
	tests := []struct {
		a    *types.Action
		want string
	}{
		{&types.Action{Look: lookHandler("x"), Use: lookHandler("y")}, "lookuse"},
		{&types.Action{Look: lookHandler("x"), Go: lookHandler("z")}, "lookgo"},
		{&types.Action{Look: lookHandler("x")}, "look"},
		{&types.Action{Use: lookHandler("y")}, "use"},
		{&types.Action{Go: lookHandler("z")}, "go"},
		{&types.Action{}, ""},
	}
	for _, tt := range tests {
		if got := Icon(tt.a); got != tt.want {
			t.Errorf("Icon(%+v) = %q, want %q", tt.a, got, tt.want)
		}
	}
}
