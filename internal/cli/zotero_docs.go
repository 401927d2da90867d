package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/mrlokans/orgutils/internal/config"
	"github.com/mrlokans/orgutils/internal/zotero"
)

// ZoteroDocsCommand lists documents that have at least one annotation
type ZoteroDocsCommand struct {
	DataDir string
	Aligned bool

	Out io.Writer
}

func NewZoteroDocsCommand(cfg *config.Config) *ZoteroDocsCommand {
	return &ZoteroDocsCommand{DataDir: cfg.Zotero.DataDir, Out: os.Stdout}
}

func (cmd *ZoteroDocsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("zotero-docs", flag.ContinueOnError)

	fs.StringVar(&cmd.DataDir, "data-dir", cmd.DataDir, "Zotero data directory")
	fs.BoolVar(&cmd.Aligned, "aligned", false, "Align columns for reading instead of tab-separated output")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s zotero-docs [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "List annotated documents as tab-separated ID, annotation count and file name.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	return fs.Parse(args)
}

func (cmd *ZoteroDocsCommand) Run() error {
	dataDir, err := zotero.FindDataDir(cmd.DataDir)
	if err != nil {
		return err
	}

	docs, err := zotero.NewStore(dataDir).ListDocuments()
	if err != nil {
		return err
	}

	out := cmd.Out
	var tw *tabwriter.Writer
	if cmd.Aligned {
		tw = tabwriter.NewWriter(cmd.Out, 0, 4, 2, ' ', 0)
		out = tw
	}

	fmt.Fprintln(out, "ID\tAnnotation Count\tFile")
	for _, doc := range docs {
		fmt.Fprintf(out, "%d\t%d\t\"%s\"\n", doc.ID, doc.AnnotationCount, doc.Filename)
	}

	if tw != nil {
		return tw.Flush()
	}
	return nil
}
