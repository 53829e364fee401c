package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

var rmYes bool

var rmCmd = &cobra.Command{
	Use:     "rm <index>",
	Aliases: []string{"delete"},
	Short:   "Remove an entity from the canvas",
	Long: `Rm removes the entity at index (see 'jupypod list'). Children of a removed
group move to the group's parent and keep their place on the canvas.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fatal("Invalid index", err)
		}

		ctx := context.Background()
		_, svc := mustOpen()
		defer svc.Close()

		e, err := entityAt(svc.Store(), index)
		if err != nil {
			fatal("Invalid index", err)
		}

		if !rmYes {
			label := preview(e.Content)
			if e.IsGroup() {
				label = e.Name
			}
			fmt.Printf("Remove %s #%d %s? [y/N] ", e.Kind, index, label)
			answer, _ := bufio.NewReader(os.Stdin).ReadString('\n')
			if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
				fmt.Println("Aborted.")
				return
			}
		}

		if _, err := svc.RemoveNode(ctx, e.ID); err != nil {
			fatal("Failed to save notebook", err)
		}
		fmt.Printf("%s Removed %s #%d\n", CheckIcon(), e.Kind, index)
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmCmd.Flags().BoolVarP(&rmYes, "yes", "y", false, "Do not ask for confirmation")
}
