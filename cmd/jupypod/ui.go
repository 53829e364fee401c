package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/aretw0/jupypod/pkg/canvas"
	"github.com/aretw0/jupypod/pkg/core"
)

var (
	Brand  = color.New(color.FgHiGreen, color.Bold)
	Subtle = color.New(color.FgHiBlack)
	Warn   = color.New(color.FgYellow)
	Info   = color.New(color.FgCyan)
	Good   = color.New(color.FgGreen)
	Bad    = color.New(color.FgRed)
)

const previewWidth = 48

// CheckIcon marks a successful operation.
func CheckIcon() string { return Good.Sprint("✓") }

// CrossIcon marks a failure.
func CrossIcon() string { return Bad.Sprint("✗") }

// outline lists the canvas entities depth-first, parents before children.
// Its order defines the 1-based indices accepted by the commands.
func outline(store *canvas.Store) []core.Entity {
	var out []core.Entity
	var visit func(parentID string)
	visit = func(parentID string) {
		for _, e := range store.Children(parentID) {
			out = append(out, e)
			if e.IsGroup() {
				visit(e.ID)
			}
		}
	}
	visit("")
	return out
}

// entityAt resolves a 1-based outline index.
func entityAt(store *canvas.Store, index int) (core.Entity, error) {
	entities := outline(store)
	if index < 1 || index > len(entities) {
		return core.Entity{}, fmt.Errorf("no entity #%d (notebook has %d)", index, len(entities))
	}
	return entities[index-1], nil
}

// indexOf returns the 1-based outline index of id, or 0.
func indexOf(store *canvas.Store, id string) int {
	for i, e := range outline(store) {
		if e.ID == id {
			return i + 1
		}
	}
	return 0
}

// printTree writes the canvas hierarchy as an indented tree.
func printTree(w io.Writer, store *canvas.Store) {
	entities := outline(store)
	if len(entities) == 0 {
		Subtle.Fprintln(w, "(empty notebook)")
		return
	}
	for i, e := range entities {
		indent := strings.Repeat("  ", e.Depth)
		index := Subtle.Sprintf("%3d", i+1)
		abs := canvas.AbsolutePosition(e)
		geom := Subtle.Sprintf("@(%.0f,%.0f) %.0fx%.0f", abs.X, abs.Y, e.Size.Width, e.Size.Height)

		if e.IsGroup() {
			marker := ""
			if e.Highlighted {
				marker = " " + Warn.Sprint("*")
			}
			fmt.Fprintf(w, "%s %s%s %s%s\n", index, indent, Info.Sprint("□ "+e.Name), geom, marker)
			continue
		}
		fmt.Fprintf(w, "%s %s%s %s\n", index, indent, preview(e.Content), geom)
	}
}

// preview renders a short single line text of a note's content. Editor
// documents are flattened by collecting their "text" fields.
func preview(content json.RawMessage) string {
	if len(content) == 0 {
		return Subtle.Sprint("(empty)")
	}

	var v any
	if err := json.Unmarshal(content, &v); err != nil {
		return truncate(string(content))
	}

	var parts []string
	collectText(v, &parts)
	text := strings.Join(strings.Fields(strings.Join(parts, " ")), " ")
	if text == "" {
		return Subtle.Sprint("(empty)")
	}
	return truncate(text)
}

func collectText(v any, parts *[]string) {
	switch x := v.(type) {
	case string:
		*parts = append(*parts, x)
	case []any:
		for _, item := range x {
			collectText(item, parts)
		}
	case map[string]any:
		if t, ok := x["text"].(string); ok {
			*parts = append(*parts, t)
		}
		for k, item := range x {
			if k != "text" && k != "type" && k != "attrs" {
				collectText(item, parts)
			}
		}
	case float64, bool:
		*parts = append(*parts, fmt.Sprint(x))
	}
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= previewWidth {
		return s
	}
	return string(r[:previewWidth-1]) + "…"
}
