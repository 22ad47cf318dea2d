package library

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tailscale/hujson"
)

// Config holds all configuration options.
type Config struct {
	// From config files (serialized)
	LibraryFile string `json:"library_file"`
	HistoryFile string `json:"history_file,omitempty"`

	// Resolved paths (computed, not serialized)
	EffectiveCwd   string `json:"-"` // Absolute working directory (from -C flag or os.Getwd)
	LibraryFileAbs string `json:"-"` // Absolute path to the library document
	HistoryFileAbs string `json:"-"` // Absolute path to shell history; empty disables history

	// Sources tracks which config files were loaded (for diagnostics)
	Sources ConfigSources `json:"-"`
}

// ConfigSources tracks which config files were loaded.
type ConfigSources struct {
	Global  string // Path to global config if loaded, empty otherwise
	Project string // Path to project config if loaded, empty otherwise
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		LibraryFile: "books.json",
	}
}

// ConfigFileName is the default project config file name.
const ConfigFileName = ".shelf.json"

const defaultHistoryFile = ".shelf_history"

// getGlobalConfigPath returns the path to the global config file.
// Uses $XDG_CONFIG_HOME/shelf/config.json if set, otherwise ~/.config/shelf/config.json.
// Returns empty string if home directory cannot be determined.
func getGlobalConfigPath(env map[string]string) string {
	if xdgConfig := env["XDG_CONFIG_HOME"]; xdgConfig != "" {
		return filepath.Join(xdgConfig, "shelf", "config.json")
	}

	if home := env["HOME"]; home != "" {
		return filepath.Join(home, ".config", "shelf", "config.json")
	}

	return ""
}

// LoadConfigInput holds the inputs for LoadConfig.
type LoadConfigInput struct {
	WorkDirOverride     string            // -C/--cwd flag value; if empty, os.Getwd() is used
	ConfigPath          string            // -c/--config flag value
	LibraryFileOverride string            // --library flag value
	HasLibraryOverride  bool              // --library was given, even if empty
	Env                 map[string]string // environment variables
}

// LoadConfig loads configuration with the following precedence (highest wins):
// 1. Defaults
// 2. Global user config (~/.config/shelf/config.json or $XDG_CONFIG_HOME/shelf/config.json)
// 3. Project config file at default location (.shelf.json, if exists)
// 4. Explicit config file via ConfigPath (if non-empty)
// 5. CLI overrides.
//
// All paths in the returned Config are resolved to absolute paths.
func LoadConfig(input LoadConfigInput) (Config, error) {
	workDir := input.WorkDirOverride
	if workDir == "" {
		var err error

		workDir, err = os.Getwd()
		if err != nil {
			return Config{}, fmt.Errorf("cannot get working directory: %w", err)
		}
	}

	workDir, err := filepath.Abs(workDir)
	if err != nil {
		return Config{}, fmt.Errorf("cannot resolve working directory: %w", err)
	}

	cfg := DefaultConfig()

	globalCfg, globalPath, err := loadGlobalConfig(input.Env)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Global = globalPath
	cfg = mergeConfig(cfg, globalCfg)

	projectCfg, projectPath, err := loadProjectConfig(workDir, input.ConfigPath)
	if err != nil {
		return Config{}, err
	}

	cfg.Sources.Project = projectPath
	cfg = mergeConfig(cfg, projectCfg)

	if input.HasLibraryOverride {
		cfg.LibraryFile = input.LibraryFileOverride
	}

	if cfg.LibraryFile == "" {
		return Config{}, ErrLibraryFileEmpty
	}

	cfg.EffectiveCwd = workDir
	cfg.LibraryFileAbs = absFrom(workDir, cfg.LibraryFile)

	switch {
	case cfg.HistoryFile != "":
		cfg.HistoryFileAbs = absFrom(workDir, cfg.HistoryFile)
	case input.Env["HOME"] != "":
		cfg.HistoryFileAbs = filepath.Join(input.Env["HOME"], defaultHistoryFile)
	}

	return cfg, nil
}

func absFrom(dir, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}

	return filepath.Join(dir, path)
}

// loadGlobalConfig loads the global user config file if it exists.
func loadGlobalConfig(env map[string]string) (Config, string, error) {
	globalCfgPath := getGlobalConfigPath(env)
	if globalCfgPath == "" {
		return Config{}, "", nil
	}

	globalCfg, loaded, err := loadConfigFile(globalCfgPath, false)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return globalCfg, globalCfgPath, nil
}

// loadProjectConfig loads the project config file (.shelf.json) or an explicit config file.
func loadProjectConfig(workDir, configPath string) (Config, string, error) {
	cfgFile := filepath.Join(workDir, ConfigFileName)
	mustExist := false

	if configPath != "" {
		cfgFile = absFrom(workDir, configPath)
		mustExist = true

		_, statErr := os.Stat(cfgFile)
		if statErr != nil {
			return Config{}, "", fmt.Errorf("%w: %s", ErrConfigFileNotFound, configPath)
		}
	}

	fileCfg, loaded, err := loadConfigFile(cfgFile, mustExist)
	if err != nil || !loaded {
		return Config{}, "", err
	}

	return fileCfg, cfgFile, nil
}

// loadConfigFile loads a config file. If mustExist is false, missing files return zero config.
// A file that sets library_file to "" is rejected.
func loadConfigFile(path string, mustExist bool) (Config, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !mustExist {
			return Config{}, false, nil
		}

		return Config{}, false, fmt.Errorf("%w: %s", ErrConfigFileRead, path)
	}

	cfg, explicitEmpty, err := parseConfig(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, err)
	}

	if explicitEmpty {
		return Config{}, false, fmt.Errorf("%w %s: %w", ErrConfigInvalid, path, ErrLibraryFileEmpty)
	}

	return cfg, true, nil
}

// parseConfig parses JSONC. It also reports whether library_file was
// present but empty, which would otherwise be indistinguishable from unset.
func parseConfig(data []byte) (Config, bool, error) {
	standardized, err := hujson.Standardize(data)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid JSONC: %w", err)
	}

	var cfg Config

	err = json.Unmarshal(standardized, &cfg)
	if err != nil {
		return Config{}, false, fmt.Errorf("invalid JSON: %w", err)
	}

	var raw map[string]any

	_ = json.Unmarshal(standardized, &raw)

	val, exists := raw["library_file"]
	str, isString := val.(string)

	return cfg, exists && isString && str == "", nil
}

func mergeConfig(base, overlay Config) Config {
	if overlay.LibraryFile != "" {
		base.LibraryFile = overlay.LibraryFile
	}

	if overlay.HistoryFile != "" {
		base.HistoryFile = overlay.HistoryFile
	}

	return base
}
