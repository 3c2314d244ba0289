package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTest(mode Mode, tty bool) (*Renderer, *bytes.Buffer, *bytes.Buffer) {
	out, errOut := &bytes.Buffer{}, &bytes.Buffer{}
	return NewRendererWithTTY(out, errOut, tty, mode), out, errOut
}

func TestParseMode(t *testing.T) {
	for _, m := range Modes {
		got, err := ParseMode(string(m))
		require.NoError(t, err)
		assert.Equal(t, m, got)
	}
	got, err := ParseMode("")
	require.NoError(t, err)
	assert.Equal(t, ModeAuto, got)

	_, err = ParseMode("html")
	assert.ErrorContains(t, err, `unknown output mode "html"`)
}

func TestEffectiveMode(t *testing.T) {
	tests := []struct {
		mode Mode
		tty  bool
		want Mode
	}{
		{ModeAuto, true, ModeText},
		{ModeAuto, false, ModeMarkdown},
		{ModeJSON, true, ModeJSON},
		{ModeText, false, ModeText},
		{"", false, ModeMarkdown},
	}
	for _, tt := range tests {
		r, _, _ := newTest(tt.mode, tt.tty)
		assert.Equal(t, tt.want, r.EffectiveMode(), "mode=%q tty=%v", tt.mode, tt.tty)
	}
}

func TestNewRenderer_BufferIsNotTTY(t *testing.T) {
	r := NewRenderer(&bytes.Buffer{}, &bytes.Buffer{}, ModeAuto)
	assert.False(t, r.IsTTY())
	assert.Equal(t, ModeMarkdown, r.EffectiveMode())
}

func TestHeader(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.Header(2, "Species")
	assert.Equal(t, "## Species\n\n", out.String())

	r, out, _ = newTest(ModeText, false)
	r.Header(2, "Species")
	assert.Equal(t, "Species\n", out.String())
}

func TestMessages_PlainWithoutTTY(t *testing.T) {
	r, out, errOut := newTest(ModeText, false)
	r.Success("compiled h2o2.xml")
	r.Muted("2 reactions")
	r.Warning("no reactions")
	r.Error("boom")

	assert.Equal(t, "✓ compiled h2o2.xml\n2 reactions\n", out.String())
	assert.Equal(t, "Warning: no reactions\nError: boom\n", errOut.String())
	assert.NotContains(t, out.String()+errOut.String(), "\x1b[")
}

func TestStatusLine(t *testing.T) {
	r, out, _ := newTest(ModeMarkdown, false)
	r.StatusLine("gri30.cti", "ok", "325 reactions")
	line := out.String()
	assert.True(t, strings.HasPrefix(line, "- gri30.cti"))
	assert.Contains(t, line, "ok  325 reactions")
}

func TestStructured(t *testing.T) {
	v := map[string]any{"name": "h2o2", "species": 9}

	r, out, _ := newTest(ModeJSON, false)
	ok, err := r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.JSONEq(t, `{"name":"h2o2","species":9}`, out.String())

	r, out, _ = newTest(ModeYAML, false)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "name: h2o2\nspecies: 9\n", out.String())

	r, out, _ = newTest(ModeText, true)
	ok, err = r.Structured(v)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Empty(t, out.String())
}

func TestTable(t *testing.T) {
	headers := []string{"Species", "Phase"}
	rows := [][]string{{"H2", "gas"}, {"PT(S)", "surf"}}

	r, out, _ := newTest(ModeMarkdown, false)
	r.Table(headers, rows)
	md := out.String()
	assert.Contains(t, md, "| H2 | gas |")
	assert.Contains(t, md, "| PT(S) | surf |")
	assert.Contains(t, md, "| --- | --- |")

	r, out, _ = newTest(ModeText, true)
	r.Table(headers, rows)
	txt := out.String()
	assert.Contains(t, txt, "┌")
	assert.Contains(t, txt, "PT(S)")
}

func TestFormatHelpers(t *testing.T) {
	assert.Equal(t, "# Title", FormatHeader(0, "Title"))
	assert.Equal(t, "### Title", FormatHeader(3, "Title"))
	assert.Equal(t, "- **dataset:** h2o2", FormatKeyValue("dataset", "h2o2"))
	assert.Equal(t, "```xml\n<ctml/>\n```", FormatCodeBlock("xml", "<ctml/>\n"))
}
