package canvas_test

import (
	"testing"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
)

func TestAbsolutePosition(t *testing.T) {
	e := core.Entity{Position: core.Point{X: 3, Y: 4}}
	if got := canvas.AbsolutePosition(e); got != e.Position {
		t.Errorf("expected fallback to Position, got %+v", got)
	}

	abs := core.Point{X: 30, Y: 40}
	e.PositionAbsolute = &abs
	if got := canvas.AbsolutePosition(e); got != abs {
		t.Errorf("expected %+v, got %+v", abs, got)
	}
}

func TestRelativeToParent(t *testing.T) {
	got := canvas.RelativeToParent(core.Point{X: 150, Y: 160}, core.Point{X: 100, Y: 100})
	if got != (core.Point{X: 50, Y: 60}) {
		t.Errorf("got %+v", got)
	}
}

func TestContains(t *testing.T) {
	abs := core.Point{X: 100, Y: 100}
	g := core.Entity{Kind: core.KindGroup, PositionAbsolute: &abs, Size: core.Size{Width: 200, Height: 100}}

	tests := []struct {
		name string
		p    core.Point
		want bool
	}{
		{"Inside", core.Point{X: 150, Y: 150}, true},
		{"Top Left Corner", core.Point{X: 100, Y: 100}, true},
		{"Bottom Right Corner", core.Point{X: 300, Y: 200}, true},
		{"Left Of", core.Point{X: 99.9, Y: 150}, false},
		{"Below", core.Point{X: 150, Y: 200.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canvas.Contains(g, tt.p); got != tt.want {
				t.Errorf("Contains(%+v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}
