package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mrlokans/orgutils/internal/exporters"
	"github.com/mrlokans/orgutils/internal/snipd"
)

// SnipdConvertCommand converts a Snipd markdown export to Org or HTML
type SnipdConvertCommand struct {
	FilePath string
	Format   string

	Converter exporters.Converter
	Out       io.Writer
}

func NewSnipdConvertCommand() *SnipdConvertCommand {
	return &SnipdConvertCommand{Converter: snipd.NewConverter(), Out: os.Stdout}
}

func (cmd *SnipdConvertCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("snipd-convert", flag.ContinueOnError)

	fs.StringVar(&cmd.FilePath, "file", "", "Snipd markdown export (required)")
	fs.StringVar(&cmd.Format, "format", snipd.FormatOrg, "Output format: org or html")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s snipd-convert -file <path> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Convert a Snipd podcast export, dropping emoji and export boilerplate.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.FilePath == "" {
		return fmt.Errorf("required flag -file not provided")
	}
	return nil
}

func (cmd *SnipdConvertCommand) Run() error {
	data, err := os.ReadFile(cmd.FilePath)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.FilePath, err)
	}

	output, err := cmd.Converter.Convert(string(data), cmd.Format)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(cmd.Out, output)
	return err
}
