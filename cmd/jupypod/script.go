package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/jupypod/pkg/core"
	"github.com/aretw0/jupypod/pkg/notebook"
)

// Script is a recorded sequence of canvas gestures, replayed by 'jupypod run'.
//
//	steps:
//	  - add: {kind: group, as: ideas, x: 0, y: 0}
//	  - add: {kind: note, as: first, x: 700, y: 100, content: "hello"}
//	  - drag: {ref: first, x: 150, y: 150}
//	  - drop: {ref: first, x: 150, y: 150}
//	  - rename: {ref: ideas, name: Ideas}
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step holds exactly one gesture.
type Step struct {
	Add     *AddStep     `yaml:"add,omitempty"`
	Content *ContentStep `yaml:"content,omitempty"`
	Move    *PointStep   `yaml:"move,omitempty"`
	Resize  *ResizeStep  `yaml:"resize,omitempty"`
	Drag    *PointStep   `yaml:"drag,omitempty"`
	Drop    *PointStep   `yaml:"drop,omitempty"`
	Rename  *RenameStep  `yaml:"rename,omitempty"`
	Remove  *RefStep     `yaml:"remove,omitempty"`
	Select  *RefStep     `yaml:"select,omitempty"`
	Layout  *RefStep     `yaml:"layout,omitempty"`
	Leave   bool         `yaml:"leave,omitempty"`
}

// AddStep creates an entity. As names it for later steps.
type AddStep struct {
	Kind    string  `yaml:"kind"`
	As      string  `yaml:"as"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Parent  string  `yaml:"parent"`
	Content string  `yaml:"content"`
}

// ContentStep replaces a note's content.
type ContentStep struct {
	Ref  string `yaml:"ref"`
	Text string `yaml:"text"`
}

// PointStep carries a pointer location (drag, drop) or a parent-relative
// position (move).
type PointStep struct {
	Ref string  `yaml:"ref"`
	X   float64 `yaml:"x"`
	Y   float64 `yaml:"y"`
}

type ResizeStep struct {
	Ref    string  `yaml:"ref"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

type RenameStep struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name"`
}

type RefStep struct {
	Ref string `yaml:"ref"`
}

// ParseScript decodes and validates a gesture script.
func ParseScript(r io.Reader) (*Script, error) {
	var s Script
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty script")
		}
		return nil, fmt.Errorf("invalid script: %w", err)
	}
	for i, step := range s.Steps {
		if n := step.actions(); n != 1 {
			return nil, fmt.Errorf("step %d: want exactly one action, got %d", i+1, n)
		}
		if step.Add != nil {
			if _, err := core.ParseKind(step.Add.Kind); err != nil {
				return nil, fmt.Errorf("step %d: %w", i+1, err)
			}
		}
	}
	return &s, nil
}

func (s Step) actions() int {
	n := 0
	for _, set := range []bool{
		s.Add != nil, s.Content != nil, s.Move != nil, s.Resize != nil,
		s.Drag != nil, s.Drop != nil, s.Rename != nil, s.Remove != nil,
		s.Select != nil, s.Layout != nil, s.Leave,
	} {
		if set {
			n++
		}
	}
	return n
}

// scriptRunner replays steps against a notebook service and saves the result.
// Names given by AddStep.As resolve to entity ids; any other ref is taken as an id.
type scriptRunner struct {
	svc  *notebook.Service
	refs map[string]string
}

func newScriptRunner(svc *notebook.Service) *scriptRunner {
	return &scriptRunner{svc: svc, refs: make(map[string]string)}
}

func (r *scriptRunner) Run(ctx context.Context, s *Script) error {
	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.step(ctx, step); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	// Geometry steps (move, resize, layout) do not save on their own.
	return r.svc.Save(ctx)
}

func (r *scriptRunner) step(ctx context.Context, s Step) error {
	switch {
	case s.Add != nil:
		return r.add(ctx, s.Add)

	case s.Content != nil:
		id, err := r.resolve(s.Content.Ref)
		if err != nil {
			return err
		}
		ok, err := r.svc.UpdateContent(ctx, id, []byte(s.Content.Text))
		if err == nil && !ok {
			err = fmt.Errorf("%q is not a note", s.Content.Ref)
		}
		return err

	case s.Move != nil:
		id, err := r.resolve(s.Move.Ref)
		if err != nil {
			return err
		}
		pos := core.Point{X: s.Move.X, Y: s.Move.Y}
		return r.svc.OnNodesChange(ctx, []core.Change{{Type: core.ChangePosition, ID: id, Position: &pos}})

	case s.Resize != nil:
		id, err := r.resolve(s.Resize.Ref)
		if err != nil {
			return err
		}
		size := core.Size{Width: s.Resize.Width, Height: s.Resize.Height}
		return r.svc.OnNodesChange(ctx, []core.Change{{Type: core.ChangeDimensions, ID: id, Dimensions: &size}})

	case s.Drag != nil:
		id, err := r.resolve(s.Drag.Ref)
		if err != nil {
			return err
		}
		r.svc.OnNodeDrag(id, core.Point{X: s.Drag.X, Y: s.Drag.Y})
		return nil

	case s.Drop != nil:
		id, err := r.resolve(s.Drop.Ref)
		if err != nil {
			return err
		}
		return r.svc.OnNodeDragStop(ctx, id, core.Point{X: s.Drop.X, Y: s.Drop.Y})

	case s.Rename != nil:
		id, err := r.resolve(s.Rename.Ref)
		if err != nil {
			return err
		}
		if !r.svc.RenameGroup(id, s.Rename.Name) {
			return fmt.Errorf("%q is not a group", s.Rename.Ref)
		}
		return nil

	case s.Remove != nil:
		id, err := r.resolve(s.Remove.Ref)
		if err != nil {
			return err
		}
		return r.svc.OnNodesChange(ctx, []core.Change{{Type: core.ChangeRemove, ID: id}})

	case s.Select != nil:
		id, err := r.resolve(s.Select.Ref)
		if err != nil {
			return err
		}
		return r.svc.OnNodesChange(ctx, []core.Change{{Type: core.ChangeSelect, ID: id, Selected: true}})

	case s.Layout != nil:
		if s.Layout.Ref == "" {
			r.svc.Store().AutoLayoutAll()
			return nil
		}
		id, err := r.resolve(s.Layout.Ref)
		if err != nil {
			return err
		}
		r.svc.Store().AutoLayout(id)
		return nil

	case s.Leave:
		r.svc.OnPaneLeave()
		return nil
	}
	return errors.New("empty step")
}

func (r *scriptRunner) add(ctx context.Context, a *AddStep) error {
	kind, err := core.ParseKind(a.Kind)
	if err != nil {
		return err
	}
	parentID := ""
	if a.Parent != "" {
		if parentID, err = r.resolve(a.Parent); err != nil {
			return err
		}
	}

	e, err := r.svc.AddNode(ctx, kind, core.Point{X: a.X, Y: a.Y}, parentID)
	if err != nil {
		return err
	}
	if a.As != "" {
		r.refs[a.As] = e.ID
	}
	if a.Content != "" && kind == core.KindNote {
		_, err = r.svc.UpdateContent(ctx, e.ID, []byte(a.Content))
	}
	return err
}

func (r *scriptRunner) resolve(ref string) (string, error) {
	if id, ok := r.refs[ref]; ok {
		return id, nil
	}
	if _, ok := r.svc.Store().Get(ref); ok {
		return ref, nil
	}
	return "", fmt.Errorf("unknown ref %q", ref)
}
