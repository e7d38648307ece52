package system

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// docGenerators maps --format values to cobra/doc tree writers.
var docGenerators = map[string]func(root *cobra.Command, dir string) error{
	"markdown": doc.GenMarkdownTree,
	"yaml":     doc.GenYamlTree,
	"man": func(root *cobra.Command, dir string) error {
		return doc.GenManTree(root, &doc.GenManHeader{Title: "NUTRIGUARD", Section: "1"}, dir)
	},
}

func NewGenDocsCommand() *cobra.Command {
	var (
		outDir string
		format string
	)

	cmd := &cobra.Command{
		Use:   "gendocs",
		Short: "Generate reference docs for the nutriguard CLI",
		Long: `Write one page per command of the nutriguard CLI.

Formats: markdown (default), man, yaml.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen, found := docGenerators[format]
			if !found {
				return fmt.Errorf("unknown format %q: use markdown, man or yaml", format)
			}

			dir, err := filepath.Abs(outDir)
			if err != nil {
				return fmt.Errorf("resolve %q: %w", outDir, err)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create %q: %w", dir, err)
			}

			root := cmd.Root()
			root.DisableAutoGenTag = true
			if err := gen(root, dir); err != nil {
				return fmt.Errorf("generate %s docs: %w", format, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "CLI docs (%s) written to %s\n", format, dir)
			return nil
		},
	}

	cmd.Flags().StringVar(&outDir, "outdir", "docs/cli", "output directory")
	cmd.Flags().StringVar(&format, "format", "markdown", "markdown, man or yaml")

	return cmd
}
