package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/mrlokans/orgutils/internal/cli"
	"github.com/mrlokans/orgutils/internal/config"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	cfg := config.NewConfig()
	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "zotero-extract":
		cmd = cli.NewZoteroExtractCommand(cfg)
	case "zotero-docs":
		cmd = cli.NewZoteroDocsCommand(cfg)
	case "zotero-items":
		cmd = cli.NewZoteroItemsCommand(cfg)
	case "kindle-export":
		cmd = cli.NewKindleExportCommand(cfg)
	case "snipd-convert":
		cmd = cli.NewSnipdConvertCommand()
	case "epub-pages":
		cmd = cli.NewEpubPagesCommand()

	case "version", "-v", "--version":
		fmt.Printf("orgutils %s (%s)\n", Version, Commit)
		return

	case "-h", "--help", "help":
		printUsage()
		return

	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  zotero-extract  Render a Zotero PDF's outline and annotations as Org\n")
	fmt.Fprintf(os.Stderr, "  zotero-docs     List Zotero documents that have annotations\n")
	fmt.Fprintf(os.Stderr, "  zotero-items    List Zotero item keys and titles\n")
	fmt.Fprintf(os.Stderr, "  kindle-export   Convert Kindle highlights (Bookcision JSON or My Clippings.txt) to Org\n")
	fmt.Fprintf(os.Stderr, "  snipd-convert   Convert a Snipd podcast export to Org or HTML\n")
	fmt.Fprintf(os.Stderr, "  epub-pages      List EPUB headings by print page\n")
	fmt.Fprintf(os.Stderr, "  version         Print version information\n")
	fmt.Fprintf(os.Stderr, "\nEnvironment:\n")
	fmt.Fprintf(os.Stderr, "  ZOTERO_DATA_DIR, OUTLINE_COMMAND, ORG_TITLE_HEADING, ORG_HEADING_OFFSET,\n")
	fmt.Fprintf(os.Stderr, "  ORG_LANG, KINDLE_BASE_HEADING_DEPTH\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
