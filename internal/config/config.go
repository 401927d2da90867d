package config

import (
	"github.com/spf13/viper"
)

type (
	Config struct {
		Zotero
		Outline
		Org
		Kindle
	}

	Zotero struct {
		DataDir string // Directory holding zotero.sqlite; searched in default locations if empty
	}
	Outline struct {
		Command string // Outline dumper invoked as "<command> -T <file>"
	}
	Org struct {
		TitleHeading  string // Heading that opens every Zotero export
		HeadingOffset int    // Added to outline levels; 1 nests outline under the title heading
		Lang          string // "en" or "ja"
	}
	Kindle struct {
		BaseHeadingDepth int
	}
)

func NewConfig() *Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("zotero_data_dir", "")
	v.SetDefault("outline_command", DefaultOutlineCommand)
	v.SetDefault("org_title_heading", DefaultTitleHeading)
	v.SetDefault("org_heading_offset", 0)
	v.SetDefault("org_lang", LangEnglish)
	v.SetDefault("kindle_base_heading_depth", 1)

	return &Config{
		Zotero: Zotero{
			DataDir: v.GetString("ZOTERO_DATA_DIR"),
		},
		Outline: Outline{
			Command: v.GetString("OUTLINE_COMMAND"),
		},
		Org: Org{
			TitleHeading:  v.GetString("ORG_TITLE_HEADING"),
			HeadingOffset: v.GetInt("ORG_HEADING_OFFSET"),
			Lang:          v.GetString("ORG_LANG"),
		},
		Kindle: Kindle{
			BaseHeadingDepth: v.GetInt("KINDLE_BASE_HEADING_DEPTH"),
		},
	}
}
