package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/jupypod"
	"github.com/aretw0/jupypod/internal/config"
	"github.com/aretw0/jupypod/pkg/core"
)

var (
	verbose     bool
	cfgPath     string
	adapterFlag string
	storeFlag   string
	keyFlag     string
	readOnly    bool

	cfg           = config.Default()
	workspaceRoot string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jupypod",
	Short: "A notebook canvas of nested notes and groups",
	Long: `Jupypod keeps a 2D canvas of rich-text notes, nested in visual groups,
and stores the notes as a Jupyter-style notebook document.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return err
		}

		level := cfg.SlogLevel()
		if verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "Config file (default: jupypod.yaml|yml|toml in the workspace root)")
	rootCmd.PersistentFlags().StringVar(&adapterFlag, "adapter", "", "Storage adapter: fs, bolt or memory")
	rootCmd.PersistentFlags().StringVar(&storeFlag, "store", "", "Storage location (directory or .db file)")
	rootCmd.PersistentFlags().StringVar(&keyFlag, "key", "", "Storage key of the notebook")
	rootCmd.PersistentFlags().BoolVar(&readOnly, "read-only", false, "Never write to storage")
}

// loadConfig resolves the workspace root and merges the config file with the flags.
func loadConfig() error {
	var err error
	if cfgPath != "" {
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		workspaceRoot, err = filepath.Abs(filepath.Dir(cfgPath))
		if err != nil {
			return err
		}
	} else {
		wd, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get working directory: %w", err)
		}
		workspaceRoot, err = jupypod.FindRoot(wd)
		if err != nil {
			workspaceRoot = wd
		}
		if cfg, _, err = config.LoadDir(workspaceRoot); err != nil {
			return err
		}
	}

	if adapterFlag != "" {
		cfg.Adapter = adapterFlag
	}
	if storeFlag != "" {
		cfg.Store = storeFlag
	}
	if keyFlag != "" {
		cfg.Key = keyFlag
	}
	return cfg.Validate()
}

func storePath() string {
	return cfg.StorePath(workspaceRoot)
}

func baseOptions() []jupypod.Option {
	return []jupypod.Option{
		jupypod.WithAdapter(cfg.Adapter),
		jupypod.WithStorageKey(cfg.Key),
		jupypod.WithLogger(slog.Default()),
		jupypod.WithReadOnly(readOnly),
		jupypod.WithWatchDebounce(cfg.DebounceDuration()),
		jupypod.WithAlerter(func(err error) {
			Bad.Fprintf(os.Stderr, "%s %v\n", CrossIcon(), err)
		}),
	}
}

// openWorkspace opens the configured storage and the notebook service on top of it.
func openWorkspace(extra ...jupypod.Option) (core.Repository, *jupypod.Service, error) {
	repo, err := jupypod.Init(storePath(), baseOptions()...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open storage: %w", err)
	}
	opts := append(baseOptions(), jupypod.WithRepository(repo))
	svc, err := jupypod.New(storePath(), append(opts, extra...)...)
	if err != nil {
		return nil, nil, err
	}
	return repo, svc, nil
}

func mustOpen(extra ...jupypod.Option) (core.Repository, *jupypod.Service) {
	repo, svc, err := openWorkspace(extra...)
	if err != nil {
		fatal("Failed to open notebook", err)
	}
	return repo, svc
}
