package cli

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

func newTestOutput(t *testing.T, jsonMode bool) (*Output, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool("json", jsonMode, "")
	cmd.SetOut(&buf)
	return NewOutput(cmd), &buf
}

func TestOutput_Printf_WritesToCommandWriter(t *testing.T) {
	out, buf := newTestOutput(t, false)
	out.Printf("hello %s\n", "world")
	require.Equal(t, "hello world\n", buf.String())
}

func TestOutput_JSON_EncodesData(t *testing.T) {
	out, buf := newTestOutput(t, true)
	require.True(t, out.IsJSON())
	require.NoError(t, out.JSON(map[string]string{"key": "value"}))
	require.Contains(t, buf.String(), `"key": "value"`)
}

func TestOutput_ColoredMessage_PlainWhenColorDisabled(t *testing.T) {
	out, buf := newTestOutput(t, false)
	out.Success("ok")
	require.Equal(t, "ok\n", buf.String())
}

func TestTable_Render_PadsColumnsToWidestCell(t *testing.T) {
	out, buf := newTestOutput(t, false)
	table := NewTable(out, "Sector", "PV01")
	table.AddRow("SHORT_END", "12.3456")
	table.AddRow("LONG_END", "1.0")
	table.Render()

	output := buf.String()
	require.Contains(t, output, "Sector")
	require.Contains(t, output, "SHORT_END")
	require.Contains(t, output, "LONG_END")
	// "LONG_END" is padded to the 9-character width of "SHORT_END", then
	// followed by the two-space column separator.
	require.Contains(t, output, "LONG_END   1.0")
}

func TestTable_Render_NoHeadersIsNoOp(t *testing.T) {
	out, buf := newTestOutput(t, false)
	table := NewTable(out)
	table.AddRow("a")
	table.Render()
	require.Empty(t, buf.String())
}
