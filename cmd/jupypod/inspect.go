package main

import (
	"encoding/json"
	"os"

	"github.com/aretw0/introspection"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Dump the internal state of the service and storage as JSON",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		repo, svc := mustOpen()
		defer svc.Close()

		state := map[string]any{
			svc.ComponentType(): svc.State(),
		}
		if comp, ok := repo.(introspection.Introspectable); ok {
			name := "repository"
			if c, ok := repo.(introspection.Component); ok {
				name = c.ComponentType()
			}
			state[name] = comp.State()
		}

		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(state); err != nil {
			fatal("Error encoding JSON", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
