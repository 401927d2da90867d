// Command generate_demo creates a demo Zotero data directory with annotated
// public domain books, for trying the zotero-* commands without a Zotero
// installation.
// Usage: go run cmd/generate_demo/main.go [-dir path/to/datadir]
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/orgutils/internal/zotero"
	"github.com/mrlokans/orgutils/internal/zotero/zoterotest"
)

const defaultDemoDataDir = "./demo/zotero"

type fatalLogger struct{}

func (fatalLogger) Helper() {}

func (fatalLogger) Fatalf(format string, args ...any) {
	log.Fatalf(format, args...)
}

type demoAnnotation struct {
	Page    int
	Y       float64
	Text    string
	Comment string
}

type demoBook struct {
	ItemID      int64
	Key         string
	Filename    string
	Title       string
	Annotations []demoAnnotation
}

func main() {
	dataDir := flag.String("dir", defaultDemoDataDir, "path to the demo Zotero data directory")
	flag.Parse()

	log.Printf("Generating demo Zotero data directory at %s...", *dataDir)

	// Start fresh; the schema cannot be created twice
	if err := os.Remove(filepath.Join(*dataDir, zotero.DatabaseFile)); err != nil && !os.IsNotExist(err) {
		log.Fatalf("Failed to remove existing demo database: %v", err)
	}

	fx := zoterotest.NewAt(fatalLogger{}, *dataDir)
	defer fx.Close()

	for _, book := range getPublicDomainBooks() {
		fx.AddTitledItem(book.ItemID+1000, book.Key[:6]+"PT", book.Title)
		fx.AddAttachment(book.ItemID, book.Key, book.Filename)
		for _, a := range book.Annotations {
			fx.AddAnnotation(book.ItemID, fmt.Sprint(a.Page), position(a), a.Text, a.Comment)
		}
		log.Printf("Saved: %s (item %d, key %s, %d annotations)", book.Title, book.ItemID, book.Key, len(book.Annotations))
	}

	log.Println("Demo data directory generated successfully!")
	log.Printf("Try: ZOTERO_DATA_DIR=%s orgutils zotero-docs", *dataDir)
	log.Println("The attachments are empty files, so extract with -no-outline.")
}

func position(a demoAnnotation) string {
	data, err := json.Marshal(zotero.Position{
		PageIndex: a.Page - 1,
		Rects:     [][]float64{{72, a.Y - 12, 520, a.Y}},
	})
	if err != nil {
		log.Fatalf("Failed to encode position: %v", err)
	}
	return string(data)
}

func getPublicDomainBooks() []demoBook {
	return []demoBook{
		// Marcus Aurelius - Meditations (Public Domain)
		{
			ItemID:   1,
			Key:      "MEDIT001",
			Filename: "Meditations.pdf",
			Title:    "Meditations",
			Annotations: []demoAnnotation{
				{Page: 3, Y: 640, Text: "You have power over your mind - not outside events. Realize this, and you will find strength."},
				{Page: 3, Y: 410, Text: "The happiness of your life depends upon the quality of your thoughts.", Comment: "Book IV"},
				{Page: 7, Y: 700, Text: "Waste no more time arguing about what a good man should be. Be one."},
				{Page: 12, Y: 300, Text: "The soul becomes dyed with the color of its thoughts."},
				{Page: 12, Y: 120, Comment: "Compare with Seneca on imagination"},
			},
		},

		// Seneca - Letters from a Stoic (Public Domain)
		{
			ItemID:   2,
			Key:      "STOIC002",
			Filename: "Letters from a Stoic.pdf",
			Title:    "Letters from a Stoic",
			Annotations: []demoAnnotation{
				{Page: 1, Y: 500, Text: "We suffer more often in imagination than in reality."},
				{Page: 4, Y: 650, Text: "It is not that we have a short time to live, but that we waste a lot of it."},
				{Page: 9, Y: 220, Text: "Difficulties strengthen the mind, as labor does the body.", Comment: "Letter LXXVIII"},
			},
		},

		// 夏目漱石 - こころ (Public Domain)
		{
			ItemID:   3,
			Key:      "KOKORO03",
			Filename: "こころ.pdf",
			Title:    "こころ",
			Annotations: []demoAnnotation{
				{Page: 2, Y: 600, Text: "私 は その 人 を 常に 先生 と 呼んで いた。"},
				{Page: 5, Y: 480, Text: "精神的に 向上心 の ない もの は 馬鹿 だ。", Comment: "K の言葉"},
			},
		},
	}
}
