package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"quizharvest/internal/config"
)

// loadConfig loads the config at configPath, or the nearest one above the
// working directory. With no config anywhere the defaults are returned and
// path is empty.
func loadConfig(configPath string) (config.Config, string, error) {
	explicit := strings.TrimSpace(configPath)
	if explicit != "" {
		abs, err := filepath.Abs(explicit)
		if err != nil {
			return config.Config{}, "", fmt.Errorf("resolve config path: %w", err)
		}
		explicit = abs
	}
	return config.Resolve(explicit, "")
}
