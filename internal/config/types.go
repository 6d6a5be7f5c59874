package config

import "quizharvest/internal/locale"

// Config is the contents of .quizharvest/config.yml.
type Config struct {
	Version   int            `yaml:"version"`
	Locale    string         `yaml:"locale"`
	Phrases   locale.Phrases `yaml:"phrases"`
	OutputDir string         `yaml:"output_dir"`
	Workers   int            `yaml:"workers"`
	PDFToText string         `yaml:"pdftotext"`
	Format    string         `yaml:"format"`

	// Root is the directory relative paths resolve against. Set by Load.
	Root string `yaml:"-"`
}

// Defaults used when a field is empty or no config file exists.
const (
	DefaultLocale    = locale.Default
	DefaultWorkers   = 1
	DefaultPDFToText = "pdftotext"
	DefaultFormat    = "json"
)

// Default returns the configuration used when no config file is found.
func Default() Config {
	cfg := Config{Version: 1}
	Normalize(&cfg)
	return cfg
}
