package epub

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const containerXML = `<?xml version="1.0"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
  <rootfiles>
    <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
  </rootfiles>
</container>`

const contentOPF = `<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" version="3.0">
  <manifest>
    <item id="css" href="style.css" media-type="text/css"/>
    <item id="ch1" href="text/chapter1.xhtml" media-type="application/xhtml+xml"/>
    <item id="ch2" href="text/chapter%202.xhtml" media-type="application/xhtml+xml"/>
  </manifest>
</package>`

const chapter1 = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
<h1>Preface</h1>
<p>Before any page.<span id="p1" aria-label=" page 1. " epub:type="pagebreak" role="doc-pagebreak"></span></p>
<h1>Chapter 1</h1>
<h2>Section 1.1</h2>
<p>Text <span class="note">not a pagebreak</span></p>
</body>
</html>`

const chapter2 = `<?xml version="1.0" encoding="UTF-8"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
<p><span id="p2" epub:type="pagebreak" role="doc-pagebreak"></span></p>
<h1><span id="p3" epub:type="pagebreak" role="doc-pagebreak"></span>Chapter 2</h1>
<h3>Detail</h3>
</body>
</html>`

func writeEpub(t *testing.T, files map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "book.epub")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return path
}

func TestParseStructure(t *testing.T) {
	path := writeEpub(t, map[string]string{
		"mimetype":                   "application/epub+zip",
		"META-INF/container.xml":     containerXML,
		"OEBPS/content.opf":          contentOPF,
		"OEBPS/text/chapter1.xhtml":  chapter1,
		"OEBPS/text/chapter 2.xhtml": chapter2,
		"OEBPS/style.css":            "h1 { color: red }",
	})

	pages, err := ParseStructure(path)
	require.NoError(t, err)

	expected := []PageItems{
		{Page: "", Items: []Item{{Tag: "h1", Title: "Preface"}}},
		{Page: "1", Items: []Item{{Tag: "h1", Title: "Chapter 1"}, {Tag: "h2", Title: "Section 1.1"}}},
		{Page: "2"},
		{Page: "3", Items: []Item{{Tag: "h1", Title: "Chapter 2"}, {Tag: "h3", Title: "Detail"}}},
	}
	assert.Equal(t, expected, pages)
}

func TestParseStructure_MissingContainer(t *testing.T) {
	path := writeEpub(t, map[string]string{"mimetype": "application/epub+zip"})

	_, err := ParseStructure(path)
	assert.True(t, errors.Is(err, ErrNoPackage))
}

func TestParseStructure_NotAZip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.epub")
	require.NoError(t, os.WriteFile(path, []byte("not a zip"), 0o644))

	_, err := ParseStructure(path)
	assert.Error(t, err)
}
