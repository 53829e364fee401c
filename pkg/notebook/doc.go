// Package notebook connects the canvas engine to persistent notebook documents.
//
// The on-disk format is a Jupyter-style document holding one markdown cell per
// note. Only notes are written: groups, parentage, sizes and depths live in
// memory only, and every load rebuilds a flat canvas of top-level notes with
// freshly generated ids.
//
// Service wraps a canvas.Store with the gesture handlers of the render surface
// (drag, drop, geometry batches, selection) and saves the document through a
// core.Repository after each persisted mutation.
package notebook
