// Package config provides configuration management for id3-recode.
//
// This package handles:
//   - Loading and saving settings from TOML or JSON files
//   - Default configuration values
//   - Locating the config file in the XDG config directories
//   - Conversion to recode.Options for the conversion driver
//
// # Default Settings
//
// Use DefaultSettings() to get sensible defaults:
//
//	settings := config.DefaultSettings()
//	// cp932 source codec
//	// one file at a time
//	// no backups
//
// # Loading from File
//
//	settings, err := config.Load(config.DefaultPath())
//	if err != nil {
//	    // Uses defaults if file doesn't exist
//	}
//
// Files ending in .toml are read with koanf; anything else is read as JSON:
//
//	backup = true
//	backup_extension = ".orig"
//	extensions = [".mp3", ".mp2"]
//	max_concurrent_files = 4
//	source_codec = "cp932"
//
// # Saving Settings
//
//	settings.Backup = true
//	err := settings.Save("/path/to/config.toml")
//
// # Configuration Options
//
// Settings includes options for:
//   - Backup copies and their extension
//   - File extensions picked up from directories
//   - Concurrent file limit
//   - Source codec (cp932 or euc-jp)
//   - Padding reserved in rewritten tags
//   - Log format and verbosity
package config
