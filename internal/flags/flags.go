package flags

import (
	"os"
	"strings"

	"github.com/spf13/pflag"
)

const (
	// Env vars
	EnvVarConfigFile   = "DISTRIBUTIONS_CONFIG_FILE"
	EnvVarChangedFiles = "DISTRIBUTIONS_CHANGED_FILES"
	EnvVarLogPath      = "DISTRIBUTIONS_LOG_PATH"
	EnvVarLogLevel     = "DISTRIBUTIONS_LOG_LEVEL"

	// Defaults
	DefaultConfigFile  = ".distributions.toml"
	DefaultRegistryDir = "."
	DefaultLogPath     = ""
	DefaultLogLevel    = "info"

	// Flag names
	FlagNameConfigFile  = "config-file"
	FlagNameRegistryDir = "registry-dir"
	FlagNameLogPath     = "log-path"
	FlagNameLogLevel    = "log-level"
)

var (
	ConfigFile  string
	RegistryDir string
	LogPath     string
	LogLevel    string
)

func InitFlags(fs *pflag.FlagSet) {
	initConfigFile(fs)
	initRegistryDir(fs)
	initLogger(fs)
}

func initConfigFile(fs *pflag.FlagSet) {
	if ConfigFile == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarConfigFile)); env != "" {
			ConfigFile = env
		} else {
			ConfigFile = DefaultConfigFile
		}
	}
	fs.StringVar(&ConfigFile, FlagNameConfigFile, ConfigFile, "path to config file")
}

func initRegistryDir(fs *pflag.FlagSet) {
	if RegistryDir == "" {
		RegistryDir = DefaultRegistryDir
	}
	fs.StringVar(&RegistryDir, FlagNameRegistryDir, RegistryDir, "path to the registry root directory")
}

func initLogger(fs *pflag.FlagSet) {
	if LogPath == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogPath)); env != "" {
			LogPath = env
		} else {
			LogPath = DefaultLogPath
		}
	}
	fs.StringVar(&LogPath, FlagNameLogPath, LogPath, "path to generated log file")

	if LogLevel == "" {
		if env := strings.TrimSpace(os.Getenv(EnvVarLogLevel)); env != "" {
			LogLevel = strings.ToLower(env)
		} else {
			LogLevel = DefaultLogLevel
		}
	}
	fs.StringVar(&LogLevel, FlagNameLogLevel, LogLevel, "log level for validator logs")
}

// ChangedFiles returns the newline-separated changed file list from the
// environment, trimmed of blank entries. An unset or empty variable yields nil,
// which callers treat as "scan the whole registry".
func ChangedFiles() []string {
	raw := os.Getenv(EnvVarChangedFiles)
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	var files []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}

	return files
}
