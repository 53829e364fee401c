package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/jupypod"
	"github.com/aretw0/jupypod/internal/config"
	"github.com/aretw0/jupypod/pkg/core"
	"github.com/aretw0/jupypod/pkg/notebook"
)

var (
	initStarter     bool
	initForce       bool
	initWriteConfig bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize notebook storage in the current workspace",
	Long: `Init creates the storage selected by the configuration (a directory for the
fs adapter, a database file for bolt). With --starter the notebook is seeded
with three empty notes.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		if initWriteConfig {
			path, err := writeDefaultConfig(workspaceRoot)
			if err != nil {
				fatal("Failed to write config", err)
			}
			fmt.Printf("%s Wrote %s\n", CheckIcon(), path)
		}

		repo, svc := mustOpen(jupypod.WithRestore(false))
		defer svc.Close()

		if initStarter {
			_, err := repo.Get(ctx, svc.Key())
			switch {
			case err == nil && !initForce:
				fatalf("notebook %q already exists (use --force to overwrite)", svc.Key())
			case err != nil && !errors.Is(err, core.ErrNotFound):
				fatal("Failed to check notebook", err)
			}
			if err := svc.Reset(ctx, notebook.StarterNotes()); err != nil {
				fatal("Failed to seed notebook", err)
			}
		}

		fmt.Printf("%s Initialized %s notebook %q in %s\n", CheckIcon(), cfg.Adapter, svc.Key(), storePath())
	},
}

// writeDefaultConfig writes jupypod.yaml in dir unless a config file exists.
func writeDefaultConfig(dir string) (string, error) {
	if path, ok := config.Discover(dir); ok {
		return "", fmt.Errorf("config already exists: %s", path)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, config.FileNames[0])
	return path, os.WriteFile(path, data, 0644)
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVar(&initStarter, "starter", false, "Seed the notebook with three empty notes")
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing notebook when seeding")
	initCmd.Flags().BoolVar(&initWriteConfig, "write-config", false, "Write a jupypod.yaml with the effective settings")
}
