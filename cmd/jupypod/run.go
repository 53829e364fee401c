package main

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/jupypod"
	"github.com/aretw0/jupypod/pkg/adapters/memory"
)

var (
	runDryRun bool
	runQuiet  bool
)

var runCmd = &cobra.Command{
	Use:   "run <script.yaml>",
	Short: "Replay a gesture script on the notebook",
	Long: `Run replays a YAML script of canvas gestures (add, move, resize, drag, drop,
rename, remove, select, layout, leave) as the render surface would emit them,
then prints the resulting canvas.

With --dry-run the script runs on an in-memory copy of the notebook and
nothing is stored.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		f, err := os.Open(args[0])
		if err != nil {
			fatal("Failed to open script", err)
		}
		script, err := ParseScript(f)
		f.Close()
		if err != nil {
			fatal("Failed to parse script", err)
		}

		ctx := context.Background()
		_, svc := mustOpen()
		defer svc.Close()

		if runDryRun {
			var buf bytes.Buffer
			if err := svc.Export(ctx, &buf, nil); err != nil {
				fatal("Failed to copy notebook", err)
			}
			scratch, err := jupypod.New("",
				jupypod.WithRepository(memory.NewRepository()),
				jupypod.WithLogger(slog.Default()),
				jupypod.WithRestore(false),
			)
			if err != nil {
				fatal("Failed to create scratch notebook", err)
			}
			if err := scratch.Import(ctx, &buf, nil); err != nil {
				fatal("Failed to copy notebook", err)
			}
			svc = scratch
		}

		if err := newScriptRunner(svc).Run(ctx, script); err != nil {
			fatal("Script failed", err)
		}

		if !runQuiet {
			printTree(os.Stdout, svc.Store())
		}
		if runDryRun {
			Subtle.Println("(dry run: nothing stored)")
		} else {
			fmt.Printf("%s Replayed %d steps\n", CheckIcon(), len(script.Steps))
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runDryRun, "dry-run", false, "Run on an in-memory copy")
	runCmd.Flags().BoolVarP(&runQuiet, "quiet", "q", false, "Do not print the resulting canvas")
}
