package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/orgutils/internal/config"
	"github.com/mrlokans/orgutils/internal/zotero"
)

// ZoteroItemsCommand lists item keys with their titles
type ZoteroItemsCommand struct {
	DataDir string
	Title   string

	Out io.Writer
}

func NewZoteroItemsCommand(cfg *config.Config) *ZoteroItemsCommand {
	return &ZoteroItemsCommand{DataDir: cfg.Zotero.DataDir, Out: os.Stdout}
}

func (cmd *ZoteroItemsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("zotero-items", flag.ContinueOnError)

	fs.StringVar(&cmd.DataDir, "data-dir", cmd.DataDir, "Zotero data directory")
	fs.StringVar(&cmd.Title, "title", "", "SQL LIKE pattern the title must match, e.g. '%Go%'")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s zotero-items [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List Zotero item keys and titles.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ZoteroItemsCommand) Run() error {
	dataDir, err := zotero.FindDataDir(cmd.DataDir)
	if err != nil {
		return err
	}

	items, err := zotero.NewStore(dataDir).ListItems(cmd.Title)
	if err != nil {
		return err
	}

	for _, item := range items {
		fmt.Fprintf(cmd.Out, "%s\t%s\n", item.Key, item.Title)
	}
	return nil
}
