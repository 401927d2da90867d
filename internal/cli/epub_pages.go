package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/orgutils/internal/epub"
)

// EpubPagesCommand prints the headings of an EPUB by print page
type EpubPagesCommand struct {
	FilePath string

	Out io.Writer
}

func NewEpubPagesCommand() *EpubPagesCommand {
	return &EpubPagesCommand{Out: os.Stdout}
}

func (cmd *EpubPagesCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("epub-pages", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "EPUB file (required)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s epub-pages -file <path>\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List h1-h3 headings with the print page they start on, as\n")
		fmt.Fprintf(os.Stderr, "tab-separated page, tag and title. Pages without headings print alone.\n")
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *EpubPagesCommand) Run() error {
	pages, err := epub.ParseStructure(cmd.FilePath)
	if err != nil {
		return err
	}

	for _, page := range pages {
		if len(page.Items) == 0 {
			fmt.Fprintln(cmd.Out, page.Page)
			continue
		}
		for _, item := range page.Items {
			fmt.Fprintf(cmd.Out, "%s\t%s\t%s\n", page.Page, item.Tag, item.Title)
		}
	}
	return nil
}
