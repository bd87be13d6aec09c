package rsf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRender performs exact text substitution and nothing else.
func TestRender(t *testing.T) {
	t.Parallel()

	out := Render("UniqueId: 0xf{{UNIQUE_ID}}\n", map[string]string{UniqueIDToken: "8D29C9"})
	require.Equal(t, "UniqueId: 0xf8D29C9\n", out)

	// No token, no change.
	require.Equal(t, "untouched", Render("untouched", map[string]string{UniqueIDToken: "8D29C9"}))

	// Every occurrence is replaced.
	out = Render("{{UNIQUE_ID}}-{{UNIQUE_ID}}", map[string]string{UniqueIDToken: "AB12CD"})
	require.Equal(t, "AB12CD-AB12CD", out)
}

// TestMaterialize reads the template and writes the substituted result.
func TestMaterialize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	templatePath := filepath.Join(dir, "spec.rsf")
	outputPath := filepath.Join(dir, "out.rsf")

	require.NoError(t, os.WriteFile(templatePath, []byte("UniqueId: 0x{{UNIQUE_ID}}\n"), 0o644))
	require.NoError(t, Materialize(templatePath, outputPath, "8D29C9"))

	contents, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	require.Equal(t, "UniqueId: 0x8D29C9\n", string(contents))

	// Missing template is an error.
	require.Error(t, Materialize(filepath.Join(dir, "absent.rsf"), outputPath, "8D29C9"))
}
