package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/aretw0/jupypod/pkg/core"
)

var (
	addX       float64
	addY       float64
	addParent  int
	addContent string
)

var addCmd = &cobra.Command{
	Use:   "add [note|group]",
	Short: "Add a note or a group to the canvas",
	Long: `Add creates an entity at (--x, --y). With --parent the position is relative to
the group at that index (see 'jupypod list').

Only notes are stored: groups live for the current session and are meant for
'jupypod run' scripts.`,
	Args:      cobra.MaximumNArgs(1),
	ValidArgs: []string{string(core.KindNote), string(core.KindGroup)},
	Run: func(cmd *cobra.Command, args []string) {
		kind := core.KindNote
		if len(args) == 1 {
			k, err := core.ParseKind(args[0])
			if err != nil {
				fatal("Invalid kind", err)
			}
			kind = k
		}

		ctx := context.Background()
		_, svc := mustOpen()
		defer svc.Close()

		parentID := ""
		if addParent > 0 {
			parent, err := entityAt(svc.Store(), addParent)
			if err != nil {
				fatal("Invalid parent", err)
			}
			if !parent.IsGroup() {
				fatalf("entity #%d is not a group", addParent)
			}
			parentID = parent.ID
		}

		e, err := svc.AddNode(ctx, kind, core.Point{X: addX, Y: addY}, parentID)
		if err != nil {
			fatal("Failed to save notebook", err)
		}
		if addContent != "" && kind == core.KindNote {
			if _, err := svc.UpdateContent(ctx, e.ID, []byte(addContent)); err != nil {
				fatal("Failed to save notebook", err)
			}
		}

		fmt.Printf("%s Added %s #%d\n", CheckIcon(), e.Kind, indexOf(svc.Store(), e.ID))
		if kind == core.KindGroup {
			Warn.Println("Groups are not stored; they disappear when the notebook is reloaded.")
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().Float64Var(&addX, "x", 0, "X position")
	addCmd.Flags().Float64Var(&addY, "y", 0, "Y position")
	addCmd.Flags().IntVar(&addParent, "parent", 0, "Index of the containing group")
	addCmd.Flags().StringVar(&addContent, "content", "", "Note content (editor JSON or plain text)")
}
