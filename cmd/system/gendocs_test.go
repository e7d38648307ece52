package system

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDocsRoot(args ...string) (*cobra.Command, *bytes.Buffer) {
	root := &cobra.Command{Use: "nutriguard"}
	root.AddCommand(NewSystemCommand())
	out := &bytes.Buffer{}
	root.SetOut(out)
	root.SetErr(out)
	root.SetArgs(append([]string{"system", "gendocs"}, args...))
	return root, out
}

func TestGenDocs_Formats(t *testing.T) {
	tests := []struct {
		format string
		file   string
	}{
		{format: "markdown", file: "nutriguard_system_migrate.md"},
		{format: "yaml", file: "nutriguard_system_migrate.yaml"},
		{format: "man", file: "nutriguard-system-migrate.1"},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			dir := t.TempDir()
			root, out := newDocsRoot("--outdir", dir, "--format", tt.format)

			require.NoError(t, root.Execute())
			_, err := os.Stat(filepath.Join(dir, tt.file))
			assert.NoError(t, err)
			assert.Contains(t, out.String(), dir)
		})
	}
}

func TestGenDocs_UnknownFormat(t *testing.T) {
	root, _ := newDocsRoot("--outdir", t.TempDir(), "--format", "pdf")
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown format "pdf"`)
}
