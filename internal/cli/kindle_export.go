package cli

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/mrlokans/orgutils/internal/config"
	"github.com/mrlokans/orgutils/internal/kindle"
	"github.com/mrlokans/orgutils/internal/utils"
)

const (
	kindleFormatJSON      = "json"
	kindleFormatClippings = "clippings"
)

// KindleExportCommand converts Kindle highlights to Org
type KindleExportCommand struct {
	FilePath         string
	Format           string
	Lang             string
	OutputDir        string
	BaseHeadingDepth int
	Verbose          bool

	Out io.Writer
}

func NewKindleExportCommand(cfg *config.Config) *KindleExportCommand {
	return &KindleExportCommand{
		Lang:             cfg.Org.Lang,
		BaseHeadingDepth: cfg.Kindle.BaseHeadingDepth,
		Out:              os.Stdout,
	}
}

func (cmd *KindleExportCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("kindle-export", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Bookcision JSON export or Kindle 'My Clippings.txt' (required)")
	fs.StringVar(&cmd.Format, "format", kindleFormatJSON, "Input format: json (Bookcision) or clippings")
	fs.StringVar(&cmd.Lang, "lang", cmd.Lang, "Text language (en or ja)")
	fs.StringVar(&cmd.OutputDir, "output", "", "Write one .org file per book into this directory instead of stdout")
	fs.IntVar(&cmd.BaseHeadingDepth, "base-depth", cmd.BaseHeadingDepth, "Added to h<N> note heading levels")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s kindle-export -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert Kindle highlights to Org.\n\n")
		fmt.Fprintf(os.Stderr, "Notes act as markup: 'h1 Title' turns a highlight into a heading and\n")
		fmt.Fprintf(os.Stderr, "'vocab term' files it under the vocabulary section.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s kindle-export -file bookcision.json > book.org\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s kindle-export -file \"My Clippings.txt\" -format clippings -output ~/org/kindle\n", os.Args[0])
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	if cmd.Format != kindleFormatJSON && cmd.Format != kindleFormatClippings {
		return fmt.Errorf("unsupported format %q (expected json or clippings)", cmd.Format)
	}
	if !config.ValidLang(cmd.Lang) {
		return fmt.Errorf("unsupported language %q (expected en or ja)", cmd.Lang)
	}

	return nil
}

func (cmd *KindleExportCommand) Run() error {
	books, err := cmd.readBooks()
	if err != nil {
		return err
	}
	if cmd.Verbose {
		log.Printf("Read %d books from %s", len(books), cmd.FilePath)
	}

	converter := kindle.NewConverter(cmd.BaseHeadingDepth, cmd.Lang)

	if cmd.OutputDir == "" {
		for _, book := range books {
			if err := converter.Export(book, cmd.Out); err != nil {
				return fmt.Errorf("failed to write %q: %w", book.Title, err)
			}
		}
		return nil
	}

	if err := os.MkdirAll(cmd.OutputDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, book := range books {
		var buf bytes.Buffer
		if err := converter.Export(book, &buf); err != nil {
			return fmt.Errorf("failed to render %q: %w", book.Title, err)
		}
		path := filepath.Join(cmd.OutputDir, utils.OrgFilename(book.Title))
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(cmd.Out, "%s\n", path)
	}
	return nil
}

func (cmd *KindleExportCommand) readBooks() ([]kindle.Book, error) {
	file, err := os.Open(cmd.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", cmd.FilePath, err)
	}
	defer file.Close()

	if cmd.Format == kindleFormatClippings {
		books, err := kindle.NewParser().Parse(file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse clippings: %w", err)
		}
		return books, nil
	}

	book, err := kindle.ParseBookcision(file)
	if err != nil {
		return nil, err
	}
	return []kindle.Book{*book}, nil
}
