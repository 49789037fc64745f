package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	ioutils "github.com/handiism/id3-recode/internal/io"
	"github.com/handiism/id3-recode/internal/recode"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// AppName is the directory name used under the XDG config directories.
const AppName = "id3recode"

// Log formats accepted by Settings.LogFormat.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// Settings holds all configuration options.
type Settings struct {
	// Backup settings
	Backup          bool   `json:"backup" koanf:"backup"`
	BackupExtension string `json:"backup_extension" koanf:"backup_extension"`

	// File discovery
	Extensions []string `json:"extensions" koanf:"extensions"`

	// Conversion settings
	MaxConcurrentFiles int    `json:"max_concurrent_files" koanf:"max_concurrent_files"`
	SourceCodec        string `json:"source_codec" koanf:"source_codec"`
	TagPadding         int    `json:"tag_padding" koanf:"tag_padding"`

	// Output settings
	LogFormat string `json:"log_format" koanf:"log_format"` // text, json
	Verbose   bool   `json:"verbose" koanf:"verbose"`
}

// DefaultSettings returns settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		Backup:          false,
		BackupExtension: ".orig",

		Extensions: []string{".mp3"},

		MaxConcurrentFiles: 1,
		SourceCodec:        recode.DefaultCodec,
		TagPadding:         0,

		LogFormat: LogFormatText,
		Verbose:   false,
	}
}

// DefaultPath returns the config file found in the XDG config directories,
// or the path where it would be created in the user config directory.
func DefaultPath() string {
	rel := filepath.Join(AppName, "config.toml")
	if path, err := xdg.SearchConfigFile(rel); err == nil {
		return path
	}
	return filepath.Join(xdg.ConfigHome, rel)
}

// Load reads settings from a TOML or JSON file, chosen by extension.
//
// A missing file is not an error: the defaults are returned. Keys absent
// from the file keep their default value.
func Load(path string) (*Settings, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	settings := DefaultSettings()
	settings.Extensions = nil

	if isTOML(path) {
		k := koanf.New(".")
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
		if err := k.Unmarshal("", settings); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	} else {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := json.Unmarshal(data, settings); err != nil {
			return nil, fmt.Errorf("decoding %s: %w", path, err)
		}
	}

	if len(settings.Extensions) == 0 {
		settings.Extensions = DefaultSettings().Extensions
	}
	return settings, nil
}

// Save writes settings to a TOML or JSON file, chosen by extension.
func (s *Settings) Save(path string) error {
	if err := ioutils.EnsureDir(filepath.Dir(path)); err != nil {
		return err
	}

	var (
		data []byte
		err  error
	)
	if isTOML(path) {
		data, err = toml.Parser().Marshal(s.toMap())
	} else {
		data, err = json.MarshalIndent(s, "", "  ")
	}
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Validate checks every option and returns all problems joined into one
// error, or nil when the settings are usable.
func (s *Settings) Validate() error {
	var errs []error
	if s.MaxConcurrentFiles < 1 {
		errs = append(errs, fmt.Errorf("max_concurrent_files must be at least 1, got %d", s.MaxConcurrentFiles))
	}
	if s.TagPadding < 0 {
		errs = append(errs, fmt.Errorf("tag_padding must not be negative, got %d", s.TagPadding))
	}
	if _, err := recode.NewReinterpreter(s.SourceCodec); err != nil {
		errs = append(errs, fmt.Errorf("source_codec: %w", err))
	}
	if s.LogFormat != LogFormatText && s.LogFormat != LogFormatJSON {
		errs = append(errs, fmt.Errorf("log_format must be %q or %q, got %q", LogFormatText, LogFormatJSON, s.LogFormat))
	}
	if s.Backup && s.BackupExtension == "" {
		errs = append(errs, errors.New("backup_extension must not be empty when backup is enabled"))
	}
	for _, ext := range s.Extensions {
		if !strings.HasPrefix(ext, ".") {
			errs = append(errs, fmt.Errorf("extension %q must start with a dot", ext))
		}
	}
	return errors.Join(errs...)
}

// ToDriverOptions converts settings to the options of a conversion driver.
func (s *Settings) ToDriverOptions() recode.Options {
	return recode.Options{
		Codec:           s.SourceCodec,
		Backup:          s.Backup,
		BackupExtension: s.BackupExtension,
		Padding:         s.TagPadding,
	}
}

func (s *Settings) toMap() map[string]interface{} {
	exts := make([]interface{}, len(s.Extensions))
	for i, e := range s.Extensions {
		exts[i] = e
	}
	return map[string]interface{}{
		"backup":               s.Backup,
		"backup_extension":     s.BackupExtension,
		"extensions":           exts,
		"max_concurrent_files": s.MaxConcurrentFiles,
		"source_codec":         s.SourceCodec,
		"tag_padding":          s.TagPadding,
		"log_format":           s.LogFormat,
		"verbose":              s.Verbose,
	}
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".toml")
}
