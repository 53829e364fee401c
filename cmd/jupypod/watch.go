package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/aretw0/jupypod/pkg/adapters/lifecycle"
	"github.com/aretw0/jupypod/pkg/core"
)

var watchPattern string

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Reload the notebook whenever its file changes",
	Long: `Watch follows external edits of the stored notebook (fs adapter only) and
prints the canvas after each reload. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		repo, svc := mustOpen()
		defer svc.Close()

		w, ok := repo.(core.Watchable)
		if !ok {
			fatalf("adapter %q does not support watching", cfg.Adapter)
		}

		pattern := cfg.Watch.Pattern
		if watchPattern != "" {
			pattern = watchPattern
		}
		events, err := w.Watch(ctx, pattern)
		if err != nil {
			fatal("Failed to watch", err)
		}

		src := lifecycle.NewSource(events,
			lifecycle.WithKeys(svc.Key()),
			lifecycle.WithTypes(core.EventCreate, core.EventModify),
		)
		if err := src.Start(ctx); err != nil {
			fatal("Failed to watch", err)
		}

		printTree(os.Stdout, svc.Store())
		Subtle.Printf("watching %s (%s)\n", storePath(), pattern)

		for e := range src.Events() {
			ev, ok := lifecycle.AsEvent(e)
			if !ok {
				continue
			}
			if err := svc.Restore(ctx); err != nil {
				continue
			}
			ts := time.Unix(ev.Timestamp, 0).Format(time.TimeOnly)
			fmt.Printf("\n%s %s %s\n", Info.Sprint("↻"), Subtle.Sprint(ts), ev)
			printTree(os.Stdout, svc.Store())
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVar(&watchPattern, "pattern", "", "Doublestar pattern of watched files (default from config)")
}
