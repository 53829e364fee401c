// Package core holds the domain types shared by the canvas engine, the notebook
// serializer and the storage adapters.
package core

import (
	"encoding/json"
	"fmt"
)

// Kind distinguishes the two entity capabilities: rich content or containment.
type Kind string

const (
	KindNote  Kind = "note"
	KindGroup Kind = "group"
)

func (k Kind) String() string { return string(k) }

// Valid reports whether k is a known entity kind.
func (k Kind) Valid() bool {
	return k == KindNote || k == KindGroup
}

// ParseKind converts user input ("note", "group") into a Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(s)
	if !k.Valid() {
		return "", fmt.Errorf("unknown entity kind %q", s)
	}
	return k, nil
}

// Point is a 2D canvas coordinate.
type Point struct {
	X float64 `json:"x" yaml:"x"`
	Y float64 `json:"y" yaml:"y"`
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p minus q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Size is the geometric extent of an entity.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// Entity is the sole structural unit of the canvas: a note or a group.
//
// ParentID points up to the containing group; the empty string is the root.
// Depth and PositionAbsolute are derived and must not be treated as authoritative.
type Entity struct {
	ID       string `json:"id"`
	Kind     Kind   `json:"kind"`
	ParentID string `json:"parentId,omitempty"`

	Position         Point  `json:"position"`
	PositionAbsolute *Point `json:"positionAbsolute,omitempty"`
	Size             Size   `json:"size"`
	Depth            int    `json:"depth"`

	// Content is the opaque rich-text document state of a note.
	Content json.RawMessage `json:"content,omitempty"`
	// Name is the header label of a group.
	Name string `json:"name,omitempty"`
	// Background is the depth-based tint of a group.
	Background string `json:"background,omitempty"`

	Highlighted bool `json:"-"`
}

// IsGroup reports whether the entity can contain other entities.
func (e Entity) IsGroup() bool { return e.Kind == KindGroup }

// IsTopLevel reports whether the entity sits directly on the canvas root.
func (e Entity) IsTopLevel() bool { return e.ParentID == "" }

// Clone returns a deep copy of the entity.
func (e Entity) Clone() Entity {
	c := e
	if e.PositionAbsolute != nil {
		abs := *e.PositionAbsolute
		c.PositionAbsolute = &abs
	}
	if e.Content != nil {
		c.Content = append(json.RawMessage(nil), e.Content...)
	}
	return c
}

// ChangeType identifies the kind of geometry change reported by the render surface.
type ChangeType string

const (
	ChangePosition   ChangeType = "position"
	ChangeDimensions ChangeType = "dimensions"
	ChangeRemove     ChangeType = "remove"
	ChangeSelect     ChangeType = "select"
)

// Change is one element of a geometry batch coming from the render surface.
// Position carries the new parent-relative position and Dimensions the new size.
type Change struct {
	Type       ChangeType `json:"type"`
	ID         string     `json:"id"`
	Position   *Point     `json:"position,omitempty"`
	Dimensions *Size      `json:"dimensions,omitempty"`
	Dragging   bool       `json:"dragging,omitempty"`
	Selected   bool       `json:"selected,omitempty"`
}

// EventType represents the type of change observed on stored notebooks.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change of a notebook file.
type Event struct {
	Type      EventType
	ID        string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.ID)
}
