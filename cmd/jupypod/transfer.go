package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/jupypod/pkg/notebook"
)

var (
	exportFormat string
	importFormat string
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Write the stored notebook to a file or stdout",
	Long: `Export writes the stored notebook as .ipynb JSON or YAML. The format follows
the file extension unless --format is given; stdout defaults to JSON.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, svc := mustOpen()
		defer svc.Close()

		var (
			w    io.Writer = os.Stdout
			path string
		)
		if len(args) == 1 {
			path = args[0]
			f, err := os.Create(path)
			if err != nil {
				fatal("Failed to create file", err)
			}
			defer f.Close()
			w = f
		}

		ser, err := serializerFor(exportFormat, path)
		if err != nil {
			fatal("Invalid format", err)
		}
		if err := svc.Export(ctx, w, ser); err != nil {
			fatal("Failed to export notebook", err)
		}
		if path != "" {
			fmt.Fprintf(os.Stderr, "%s Exported to %s\n", CheckIcon(), path)
		}
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Replace the notebook with a .ipynb or YAML document",
	Long: `Import parses the document and replaces the canvas and the stored notebook
with its cells. A malformed document leaves the notebook untouched. Use - to
read from stdin.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		_, svc := mustOpen()
		defer svc.Close()

		var r io.Reader = os.Stdin
		path := args[0]
		if path != "-" {
			f, err := os.Open(path)
			if err != nil {
				fatal("Failed to open file", err)
			}
			defer f.Close()
			r = f
		} else {
			path = ""
		}

		ser, err := serializerFor(importFormat, path)
		if err != nil {
			fatal("Invalid format", err)
		}
		if err := svc.Import(ctx, r, ser); err != nil {
			os.Exit(1)
		}
		fmt.Printf("%s Imported %d notes\n", CheckIcon(), svc.Store().Len())
	},
}

// serializerFor picks the serializer by explicit format name or by file extension.
func serializerFor(format, path string) (notebook.Serializer, error) {
	if format == "" {
		if path == "" {
			return notebook.NewJSONSerializer(), nil
		}
		return notebook.SerializerFor(path), nil
	}
	ser, ok := notebook.DefaultSerializers()["."+strings.TrimPrefix(strings.ToLower(format), ".")]
	if !ok {
		return nil, fmt.Errorf("unknown format %q (want ipynb, json or yaml)", format)
	}
	return ser, nil
}

func init() {
	rootCmd.AddCommand(exportCmd, importCmd)
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "Output format: ipynb, json or yaml")
	importCmd.Flags().StringVarP(&importFormat, "format", "f", "", "Input format: ipynb, json or yaml")
}
