package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strichware/bardec/internal/testutil"
)

func writeFixture(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	// Flag values and Changed state persist across Execute calls on the
	// shared command tree; reset so tests stay independent.
	decodeCmd.Flags().Visit(func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	})
	root := GetRootCommand()
	buf := &bytes.Buffer{}
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func TestDecodeCommandText(t *testing.T) {
	png := testutil.PNGBytes(t, testutil.RenderEAN13(t, "5901234123457"))
	path := writeFixture(t, "ean13.png", png)

	out, err := execute(t, "decode", path)
	require.NoError(t, err)
	assert.Contains(t, out, "5901234123457")
	assert.Contains(t, out, "ean13")
}

func TestDecodeCommandJSON(t *testing.T) {
	png := testutil.PNGBytes(t, testutil.RenderEAN8(t, "96385074"))
	path := writeFixture(t, "ean8.png", png)

	out, err := execute(t, "decode", "--format", "json", path)
	require.NoError(t, err)
	assert.Contains(t, out, `"payload": "96385074"`)
	assert.Contains(t, out, `"symbology": "ean8"`)
}

func TestDecodeCommandFailure(t *testing.T) {
	png := testutil.PNGBytes(t, testutil.UniformImage(100, 60, 200))
	path := writeFixture(t, "blank.png", png)

	out, err := execute(t, "decode", path)
	assert.Error(t, err)
	assert.Contains(t, out, "FAILED")
}

func TestDecodeCommandContinueOnError(t *testing.T) {
	good := writeFixture(t, "good.png",
		testutil.PNGBytes(t, testutil.RenderEAN13(t, "5901234123457")))
	bad := writeFixture(t, "bad.png",
		testutil.PNGBytes(t, testutil.UniformImage(100, 60, 200)))

	out, err := execute(t, "decode", "--continue-on-error", good, bad)
	require.NoError(t, err)
	assert.Contains(t, out, "5901234123457")
	assert.Contains(t, out, "FAILED")
}

func TestDecodeCommandMissingFile(t *testing.T) {
	out, err := execute(t, "decode", "/nonexistent/image.png")
	assert.Error(t, err)
	assert.Contains(t, out, "read file")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "bardec")
}
