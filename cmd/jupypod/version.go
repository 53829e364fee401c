package main

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jupypod"
	"github.com/aretw0/jupypod/pkg/notebook"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the jupypod version and notebook format",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("jupypod %s (%s/%s)\n", strings.TrimSpace(jupypod.Version), runtime.GOOS, runtime.GOARCH)
		fmt.Printf("notebook format %d.%d\n", notebook.FormatMajor, notebook.FormatMinor)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
