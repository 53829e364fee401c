package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/spf13/cobra"
)

var editCmd = &cobra.Command{
	Use:   "edit <index> [content]",
	Short: "Replace the content of a note",
	Long: `Edit stores new content for the note at index. The content is an editor JSON
document or plain text; when omitted it is read from stdin.`,
	Args: cobra.RangeArgs(1, 2),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("Invalid index", err)
		}

		var content []byte
		if len(args) == 2 {
			content = []byte(args[1])
		} else {
			content, err = io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
		}

		ctx := context.Background()
		_, svc := mustOpen()
		defer svc.Close()

		e, err := entityAt(svc.Store(), index)
		if err != nil {
			fatal("Invalid index", err)
		}
		ok, err := svc.UpdateContent(ctx, e.ID, content)
		if err != nil {
			fatal("Failed to save notebook", err)
		}
		if !ok {
			fatalf("entity #%d is not a note", index)
		}
		fmt.Printf("%s Updated note #%d\n", CheckIcon(), index)
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
