// Package epub lists the headings of an EPUB grouped by the print page they
// appear on, using the pagebreak markers publishers embed in the text:
//
//	<span id="p144" aria-label=" page 144. " epub:type="pagebreak" role="doc-pagebreak"/>
package epub

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

const containerPath = "META-INF/container.xml"

var ErrNoPackage = errors.New("epub has no package document")

type Item struct {
	Tag   string
	Title string
}

// PageItems holds the headings found on one page. Page is empty for
// headings that precede the first pagebreak.
type PageItems struct {
	Page  string
	Items []Item
}

type container struct {
	Rootfiles []struct {
		FullPath string `xml:"full-path,attr"`
	} `xml:"rootfiles>rootfile"`
}

type packageDocument struct {
	Manifest []struct {
		ID   string `xml:"id,attr"`
		Href string `xml:"href,attr"`
	} `xml:"manifest>item"`
}

// ParseStructure reads the EPUB at path and returns pages in the order they
// were first seen.
func ParseStructure(epubPath string) ([]PageItems, error) {
	zr, err := zip.OpenReader(epubPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open epub: %w", err)
	}
	defer zr.Close()

	files := make(map[string]*zip.File, len(zr.File))
	for _, f := range zr.File {
		files[f.Name] = f
	}

	documents, err := contentDocuments(files)
	if err != nil {
		return nil, err
	}

	s := newStructure()
	for _, name := range documents {
		f, ok := files[name]
		if !ok {
			continue
		}
		if err := s.scan(f); err != nil {
			return nil, fmt.Errorf("failed to scan %s: %w", name, err)
		}
	}

	return s.pages, nil
}

// contentDocuments returns the HTML documents of the manifest, in manifest
// order, as archive paths.
func contentDocuments(files map[string]*zip.File) ([]string, error) {
	var c container
	if err := decodeXML(files, containerPath, &c); err != nil {
		return nil, err
	}
	if len(c.Rootfiles) == 0 || c.Rootfiles[0].FullPath == "" {
		return nil, ErrNoPackage
	}
	opfPath := c.Rootfiles[0].FullPath

	var pkg packageDocument
	if err := decodeXML(files, opfPath, &pkg); err != nil {
		return nil, err
	}

	base := path.Dir(opfPath)
	var docs []string
	for _, item := range pkg.Manifest {
		href, err := url.PathUnescape(item.Href)
		if err != nil {
			href = item.Href
		}
		if !strings.HasSuffix(href, ".html") && !strings.HasSuffix(href, ".xhtml") {
			continue
		}
		docs = append(docs, path.Join(base, href))
	}
	return docs, nil
}

func decodeXML(files map[string]*zip.File, name string, v any) error {
	f, ok := files[name]
	if !ok {
		if name == containerPath {
			return ErrNoPackage
		}
		return fmt.Errorf("missing %s in epub", name)
	}
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer rc.Close()

	if err := xml.NewDecoder(rc).Decode(v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

type structure struct {
	pages   []PageItems
	index   map[string]int
	current string
}

func newStructure() *structure {
	return &structure{index: make(map[string]int)}
}

func (s *structure) page(id string) *PageItems {
	i, ok := s.index[id]
	if !ok {
		i = len(s.pages)
		s.index[id] = i
		s.pages = append(s.pages, PageItems{Page: id})
	}
	return &s.pages[i]
}

func (s *structure) scan(f *zip.File) error {
	rc, err := f.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	return s.scanDocument(rc)
}

func (s *structure) scanDocument(r io.Reader) error {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return err
	}

	doc.Find("h1, h2, h3, span").Each(func(_ int, sel *goquery.Selection) {
		tag := goquery.NodeName(sel)
		if tag == "span" {
			if isPagebreak(sel) {
				s.current = pageID(sel)
				s.page(s.current)
			}
			return
		}

		sel.Find("span").EachWithBreak(func(_ int, span *goquery.Selection) bool {
			if isPagebreak(span) {
				s.current = pageID(span)
				return false
			}
			return true
		})

		p := s.page(s.current)
		p.Items = append(p.Items, Item{Tag: tag, Title: strings.TrimSpace(sel.Text())})
	})
	return nil
}

func isPagebreak(sel *goquery.Selection) bool {
	return sel.AttrOr("epub:type", "") == "pagebreak"
}

// pageID drops the one-letter prefix of ids like "p144".
func pageID(sel *goquery.Selection) string {
	id := sel.AttrOr("id", "")
	if id == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(id)
	return id[size:]
}
