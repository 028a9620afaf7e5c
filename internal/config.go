package internal

import (
	"context"
	"embed"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/lrstanley/go-ytdlp"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// AppName is used for XDG directories and the env prefix
const AppName = "ytorg"

// DefaultAudioQuality is the mp3 bitrate handed to yt-dlp
const DefaultAudioQuality = "192K"

// CommandRunner executes external commands
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// DefaultCommandRunner implements CommandRunner
type DefaultCommandRunner struct{}

func (r *DefaultCommandRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Config holds application settings
type Config struct {
	// User configurable settings
	BaseDir       string
	AudioQuality  string
	Verbose       bool
	Quiet         bool
	Clipboard     bool
	MCPLogEnabled bool

	// Fixed XDG paths (not configurable)
	ConfigDir  string
	CacheDir   string
	ConfigFile string
}

//go:embed config.toml
var defaultFS embed.FS

// DefaultBaseDir is where downloads land unless configured otherwise
func DefaultBaseDir() string {
	return filepath.Join(xdg.Home, "Youtube_Downloads")
}

// ensureDefaultFile checks if a file exists in the specified directory
// and creates it from the embedded default if it doesn't exist
func ensureDefaultFile(configDir, embedFilename, description string) error {
	filePath := filepath.Join(configDir, embedFilename)

	if FileExists(filePath) {
		return nil
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	defaultContent, err := defaultFS.ReadFile(embedFilename)
	if err != nil {
		return fmt.Errorf("reading embedded default %s: %w", description, err)
	}

	if err := os.WriteFile(filePath, defaultContent, 0644); err != nil {
		return fmt.Errorf("writing default %s: %w", description, err)
	}

	fmt.Fprintf(os.Stderr, "Created default %s at %s\n", description, filePath)
	return nil
}

// EnsureDefaultConfig checks if a config file exists in the XDG config directory
// and creates it from the embedded default if it doesn't exist
func EnsureDefaultConfig(configDir string) error {
	return ensureDefaultFile(configDir, "config.toml", "configuration")
}

// EnsureEngine makes sure a yt-dlp binary is available, downloading one if needed
func EnsureEngine(ctx context.Context) {
	ytdlp.MustInstall(ctx, nil)
}

// InitConfig initializes Viper and loads configuration. configFile overrides
// the XDG location; flags, when set, take precedence over file and env.
func InitConfig(configFile string, flags *pflag.FlagSet) (*Config, error) {
	configDir := filepath.Join(xdg.ConfigHome, AppName)
	cacheDir := filepath.Join(xdg.CacheHome, AppName)

	v := viper.New()

	v.SetDefault("base_dir", DefaultBaseDir())
	v.SetDefault("audio_quality", DefaultAudioQuality)
	v.SetDefault("verbose", false)
	v.SetDefault("quiet", false)
	v.SetDefault("clipboard", false)
	v.SetDefault("mcp_log", false)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("toml")
		v.AddConfigPath(configDir)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(strings.ToUpper(AppName))
	v.AutomaticEnv()

	if flags != nil {
		for key, name := range map[string]string{
			"verbose":   "verbose",
			"base_dir":  "base-dir",
			"clipboard": "clipboard",
		} {
			// unchanged flags would shadow file and env values with their zero defaults
			if flag := flags.Lookup(name); flag != nil && flag.Changed {
				if err := v.BindPFlag(key, flag); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			if configFile != "" {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Warning: Error reading config file: %v\n", err)
		}
	}

	config := &Config{
		BaseDir:       expandHome(v.GetString("base_dir")),
		AudioQuality:  v.GetString("audio_quality"),
		Verbose:       v.GetBool("verbose"),
		Quiet:         v.GetBool("quiet"),
		Clipboard:     v.GetBool("clipboard"),
		MCPLogEnabled: v.GetBool("mcp_log"),

		ConfigDir:  configDir,
		CacheDir:   cacheDir,
		ConfigFile: v.ConfigFileUsed(),
	}

	if config.Verbose && config.ConfigFile != "" {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", config.ConfigFile)
	}

	return config, nil
}

// expandHome resolves a leading ~ against the user's home directory
func expandHome(path string) string {
	if path == "~" {
		return xdg.Home
	}
	if rest, ok := strings.CutPrefix(path, "~/"); ok {
		return filepath.Join(xdg.Home, rest)
	}
	return path
}
