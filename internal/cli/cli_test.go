package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/orgutils/internal/config"
	"github.com/mrlokans/orgutils/internal/zotero/zoterotest"
)

func testConfig(dataDir string) *config.Config {
	return &config.Config{
		Zotero:  config.Zotero{DataDir: dataDir},
		Outline: config.Outline{Command: config.DefaultOutlineCommand},
		Org:     config.Org{TitleHeading: config.DefaultTitleHeading, Lang: config.LangEnglish},
		Kindle:  config.Kindle{BaseHeadingDepth: 1},
	}
}

func newZoteroFixture(t *testing.T) *zoterotest.Fixture {
	fx := zoterotest.New(t)
	fx.AddAttachment(42, "ABCD1234", "paper.pdf")
	fx.AddAnnotation(42, "1", `{"pageIndex":0,"rects":[[10,0,0,490]]}`, "hello", "")
	fx.AddAnnotation(42, "2", `{"pageIndex":1,"rects":[[10,0,0,300]]}`, "", "a thought")
	fx.AddTitledItem(7, "ITEM0007", "Go in Practice")
	return fx
}

func TestZoteroExtractCommand_ParseFlags(t *testing.T) {
	cmd := NewZoteroExtractCommand(testConfig(""))
	require.NoError(t, cmd.ParseFlags([]string{"1234", "-lang", "ja", "-no-outline"}))
	assert.Equal(t, "1234", cmd.ID)
	assert.Equal(t, "ja", cmd.Lang)
	assert.True(t, cmd.NoOutline)

	cmd = NewZoteroExtractCommand(testConfig(""))
	require.NoError(t, cmd.ParseFlags([]string{"-verbose", "ABCD1234"}))
	assert.Equal(t, "ABCD1234", cmd.ID)
	assert.True(t, cmd.Verbose)

	assert.Error(t, NewZoteroExtractCommand(testConfig("")).ParseFlags(nil))
	assert.Error(t, NewZoteroExtractCommand(testConfig("")).ParseFlags([]string{"1", "2"}))
	assert.Error(t, NewZoteroExtractCommand(testConfig("")).ParseFlags([]string{"1", "-lang", "fr"}))
}

func TestZoteroExtractCommand_Run(t *testing.T) {
	fx := newZoteroFixture(t)

	var out bytes.Buffer
	cmd := NewZoteroExtractCommand(testConfig(fx.Dir))
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"42", "-no-outline"}))
	require.NoError(t, cmd.Run())

	expected := `* Highlights & notes

#+BEGIN_QUOTE
hello (p. 1)
#+END_QUOTE

a thought (p. 2)

`
	assert.Equal(t, expected, out.String())
}

func TestZoteroExtractCommand_NotFound(t *testing.T) {
	fx := newZoteroFixture(t)

	var out bytes.Buffer
	cmd := NewZoteroExtractCommand(testConfig(fx.Dir))
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"9999", "-no-outline"}))

	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "document 9999 not found")
	assert.Empty(t, out.String())
}

func TestZoteroDocsCommand_Run(t *testing.T) {
	fx := newZoteroFixture(t)

	var out bytes.Buffer
	cmd := NewZoteroDocsCommand(testConfig(fx.Dir))
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags(nil))
	require.NoError(t, cmd.Run())

	assert.Equal(t, "ID\tAnnotation Count\tFile\n42\t2\t\"paper.pdf\"\n", out.String())
}

func TestZoteroItemsCommand_Run(t *testing.T) {
	fx := newZoteroFixture(t)

	var out bytes.Buffer
	cmd := NewZoteroItemsCommand(testConfig(fx.Dir))
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-title", "%Practice%"}))
	require.NoError(t, cmd.Run())

	assert.Equal(t, "ITEM0007\tGo in Practice\n", out.String())
}

func TestKindleExportCommand_OutputDir(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "clippings.txt")
	clippings := `Deep Work (Cal Newport)
- Your Highlight on page 10 | Location 150-151 | Added on Tuesday, April 15, 2025 11:34:00 PM

Deep work is valuable.
==========
`
	require.NoError(t, os.WriteFile(input, []byte(clippings), 0o644))

	outDir := filepath.Join(dir, "org")
	var out bytes.Buffer
	cmd := NewKindleExportCommand(testConfig(""))
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-file", input, "-format", "clippings", "-output", outDir}))
	require.NoError(t, cmd.Run())

	data, err := os.ReadFile(filepath.Join(outDir, "Deep Work.org"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "* Deep Work\n:PROPERTIES:\n:AUTHOR: Cal Newport\n")
	assert.Contains(t, string(data), "Deep work is valuable. (loc. 150)")
	assert.Contains(t, out.String(), "Deep Work.org")
}

func TestKindleExportCommand_ParseFlags(t *testing.T) {
	assert.Error(t, NewKindleExportCommand(testConfig("")).ParseFlags(nil))
	assert.Error(t, NewKindleExportCommand(testConfig("")).ParseFlags([]string{"-file", "x", "-format", "html"}))
}

func TestSnipdConvertCommand_Run(t *testing.T) {
	input := filepath.Join(t.TempDir(), "episode.md")
	require.NoError(t, os.WriteFile(input, []byte("# Episode\n\nClick to expand\n\nKept text\n"), 0o644))

	var out bytes.Buffer
	cmd := NewSnipdConvertCommand()
	cmd.Out = &out
	require.NoError(t, cmd.ParseFlags([]string{"-file", input}))
	require.NoError(t, cmd.Run())

	assert.Equal(t, "* Episode\n\nKept text\n\n", out.String())
}

func TestEpubPagesCommand_MissingFile(t *testing.T) {
	cmd := NewEpubPagesCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-file", filepath.Join(t.TempDir(), "missing.epub")}))
	assert.Error(t, cmd.Run())
}
