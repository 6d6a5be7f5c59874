package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const defaultConfig = `version: 1

# Phrase profile of the platform UI: es or en.
locale: es

# Override individual phrases of the profile, for example:
# phrases:
#   single_answer: "La respuesta correcta es"
#   heading_markers: ["Pregunta", "Actividad"]

output_dir: "./quizharvest-results"

# Documents extracted in parallel.
workers: 1

pdftotext: "pdftotext"

# Results encoding: json or yaml.
format: json
`

// Scaffold writes a commented default config to configPath. It refuses to
// overwrite an existing file.
func Scaffold(configPath string) error {
	if configPath == "" {
		return fmt.Errorf("config path is required")
	}
	if info, err := os.Stat(configPath); err == nil {
		if info.IsDir() {
			return fmt.Errorf("config path %q is a directory", configPath)
		}
		return fmt.Errorf("config file already exists at %q", configPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
