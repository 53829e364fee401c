// Package jupypod is the composition root of the Jupypod notebook canvas.
//
// A notebook is a 2D canvas of rich-text notes that can be nested inside
// visual groups. The canvas engine (pkg/canvas) keeps the entity hierarchy,
// its derived state and the group auto-layout; the notebook service
// (pkg/notebook) turns render-surface gestures into canvas operations and
// persists the notes as a Jupyter-style document through a core.Repository.
//
// Storage adapters:
//
//   - fs: one .ipynb file per storage key, with a recursive file watcher.
//   - bolt: a single bbolt database file.
//   - memory: process-local, for tests and scripted sessions.
//
// Usage:
//
//	svc, err := jupypod.New("./notes",
//		jupypod.WithAdapter("bolt"),
//		jupypod.WithLogger(logger),
//	)
//
//	note, err := svc.AddNode(ctx, core.KindNote, core.Point{X: 100, Y: 100}, "")
package jupypod
