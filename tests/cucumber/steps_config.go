package cucumber

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cucumber/godog"

	"quizharvest/internal/config"
)

// anEmptyWorkspace creates a temp directory and makes it the working directory.
func (s *featureState) anEmptyWorkspace() error {
	if s.workDir != "" {
		return nil
	}
	dir, err := os.MkdirTemp("", "quizharvest-feature-*")
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	s.workDir = dir
	s.configPath = config.ConfigPath(dir)
	wd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working dir: %w", err)
	}
	s.previousWD = wd
	if err := os.Chdir(dir); err != nil {
		return fmt.Errorf("chdir: %w", err)
	}
	return nil
}

// aConfigWithLocale writes a valid config selecting a phrase profile.
func (s *featureState) aConfigWithLocale(name string) error {
	if err := s.anEmptyWorkspace(); err != nil {
		return err
	}
	return s.writeConfig(fmt.Sprintf("version: 1\nlocale: %s\noutput_dir: ./results\n", name))
}

// theConfigIsInvalid replaces the config with an invalid configuration.
func (s *featureState) theConfigIsInvalid() error {
	if err := s.anEmptyWorkspace(); err != nil {
		return err
	}
	return s.writeConfig("version: 2\nlocale: es\n")
}

// anExportedReview writes a text export into the workspace.
func (s *featureState) anExportedReview(name string, body *godog.DocString) error {
	if err := s.anEmptyWorkspace(); err != nil {
		return err
	}
	path := filepath.Join(s.workDir, name)
	if err := os.WriteFile(path, []byte(body.Content+"\n"), 0o644); err != nil {
		return fmt.Errorf("write review: %w", err)
	}
	return nil
}

// writeConfig persists configuration content to the workspace config path.
func (s *featureState) writeConfig(contents string) error {
	if s.configPath == "" {
		return fmt.Errorf("config path is not set")
	}
	if err := os.MkdirAll(filepath.Dir(s.configPath), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(s.configPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
