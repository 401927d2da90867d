package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/mrlokans/orgutils/internal/config"
	"github.com/mrlokans/orgutils/internal/exporters"
	"github.com/mrlokans/orgutils/internal/outline"
	"github.com/mrlokans/orgutils/internal/zotero"
)

// ZoteroExtractCommand renders one document's outline and annotations as Org
type ZoteroExtractCommand struct {
	ID             string
	DataDir        string
	OutlineCommand string
	TitleHeading   string
	HeadingOffset  int
	Lang           string
	NoOutline      bool
	Verbose        bool

	Out io.Writer
}

func NewZoteroExtractCommand(cfg *config.Config) *ZoteroExtractCommand {
	return &ZoteroExtractCommand{
		DataDir:        cfg.Zotero.DataDir,
		OutlineCommand: cfg.Outline.Command,
		TitleHeading:   cfg.Org.TitleHeading,
		HeadingOffset:  cfg.Org.HeadingOffset,
		Lang:           cfg.Org.Lang,
		Out:            os.Stdout,
	}
}

func (cmd *ZoteroExtractCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("zotero-extract", flag.ContinueOnError)

	fs.StringVar(&cmd.DataDir, "data-dir", cmd.DataDir, "Zotero data directory (searched in ~/Zotero and ~/.local/var/zotero if empty)")
	fs.StringVar(&cmd.OutlineCommand, "outline-command", cmd.OutlineCommand, "Command printing the PDF outline as XML when called with -T <file>")
	fs.StringVar(&cmd.TitleHeading, "title", cmd.TitleHeading, "Title of the top-level heading")
	fs.IntVar(&cmd.HeadingOffset, "heading-offset", cmd.HeadingOffset, "Added to every outline heading level")
	fs.StringVar(&cmd.Lang, "lang", cmd.Lang, "Text language (en or ja); spaces between full-width characters are removed either way")
	fs.BoolVar(&cmd.NoOutline, "no-outline", false, "Skip outline extraction and render annotations only")
	fs.BoolVar(&cmd.Verbose, "verbose", false, "Enable verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s zotero-extract <id> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Render a Zotero document's PDF outline and annotations as Org.\n")
		fmt.Fprintf(os.Stderr, "<id> is the attachment's item ID or its 8-character key.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s zotero-extract 1234 > notes.org\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s zotero-extract ABCD2345 -lang ja -no-outline\n", os.Args[0])
	}

	rest, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}

	if len(rest) != 1 {
		fs.Usage()
		return fmt.Errorf("exactly one document id is required")
	}
	cmd.ID = rest[0]

	if !config.ValidLang(cmd.Lang) {
		return fmt.Errorf("unsupported language %q (expected en or ja)", cmd.Lang)
	}

	return nil
}

func (cmd *ZoteroExtractCommand) Run() error {
	dataDir, err := zotero.FindDataDir(cmd.DataDir)
	if err != nil {
		return err
	}
	if cmd.Verbose {
		log.Printf("Using Zotero data directory %s", dataDir)
	}

	var outliner outline.Extractor = outline.NewDumpPDF(cmd.OutlineCommand)
	if cmd.NoOutline {
		outliner = outline.Nop{}
	}

	exporter := exporters.NewZoteroExporter(zotero.NewStore(dataDir), outliner, cmd.TitleHeading, cmd.HeadingOffset)
	exporter.Verbose = cmd.Verbose

	result, err := exporter.Export(context.Background(), cmd.ID, cmd.Out)
	if err != nil {
		if errors.Is(err, zotero.ErrNotFound) {
			return fmt.Errorf("document %s not found", cmd.ID)
		}
		return err
	}

	if cmd.Verbose {
		log.Printf("Exported %d outline entries and %d annotations (%d empty annotations dropped)",
			result.OutlineEntries, result.AnnotationsWritten, result.AnnotationsDropped)
	}
	return nil
}

// parseInterspersed lets positional arguments come before or between flags.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		if fs.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, fs.Arg(0))
		args = fs.Args()[1:]
	}
}
