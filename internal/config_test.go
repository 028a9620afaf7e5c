package internal

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/spf13/pflag"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestInitConfigDefaults(t *testing.T) {
	path := writeConfig(t, "")

	config, err := InitConfig(path, nil)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if config.BaseDir != filepath.Join(xdg.Home, "Youtube_Downloads") {
		t.Errorf("BaseDir = %q", config.BaseDir)
	}
	if config.AudioQuality != DefaultAudioQuality {
		t.Errorf("AudioQuality = %q, want %q", config.AudioQuality, DefaultAudioQuality)
	}
	if config.Verbose || config.Quiet || config.Clipboard || config.MCPLogEnabled {
		t.Errorf("boolean settings should default to false: %+v", config)
	}
	if config.ConfigFile != path {
		t.Errorf("ConfigFile = %q, want %q", config.ConfigFile, path)
	}
}

func TestInitConfigFileEnvAndFlags(t *testing.T) {
	path := writeConfig(t, `
base_dir = "~/Media/YT"
audio_quality = "256K"
clipboard = true
`)
	t.Setenv("YTORG_AUDIO_QUALITY", "128K")

	flagDir := t.TempDir()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Bool("verbose", false, "")
	flags.String("base-dir", "", "")
	flags.Bool("clipboard", false, "")

	config, err := InitConfig(path, flags)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if config.BaseDir != filepath.Join(xdg.Home, "Media", "YT") {
		t.Errorf("file base_dir with ~ not expanded: %q", config.BaseDir)
	}
	if config.AudioQuality != "128K" {
		t.Errorf("env should override file: AudioQuality = %q", config.AudioQuality)
	}
	if !config.Clipboard {
		t.Error("unchanged clipboard flag must not shadow the file value")
	}

	if err := flags.Set("base-dir", flagDir); err != nil {
		t.Fatalf("setting flag: %v", err)
	}
	config, err = InitConfig(path, flags)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
	if config.BaseDir != flagDir {
		t.Errorf("flag should override file: BaseDir = %q, want %q", config.BaseDir, flagDir)
	}
}

func TestInitConfigMissingExplicitFile(t *testing.T) {
	if _, err := InitConfig(filepath.Join(t.TempDir(), "missing.toml"), nil); err == nil {
		t.Fatal("expected an error for a missing --config file")
	}
}

func TestEnsureDefaultConfig(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ytorg")

	if err := EnsureDefaultConfig(dir); err != nil {
		t.Fatalf("EnsureDefaultConfig failed: %v", err)
	}
	path := filepath.Join(dir, "config.toml")
	if !FileExists(path) {
		t.Fatal("default config not written")
	}

	if err := os.WriteFile(path, []byte("verbose = true\n"), 0644); err != nil {
		t.Fatalf("editing config: %v", err)
	}
	if err := EnsureDefaultConfig(dir); err != nil {
		t.Fatalf("EnsureDefaultConfig failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading config: %v", err)
	}
	if string(data) != "verbose = true\n" {
		t.Error("existing config was overwritten")
	}
}

// captureStdout returns everything fn writes to os.Stdout
func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("creating pipe: %v", err)
	}
	stdout := os.Stdout
	os.Stdout = w
	defer func() { os.Stdout = stdout }()

	fn()

	if err := w.Close(); err != nil {
		t.Fatalf("closing pipe: %v", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("reading pipe: %v", err)
	}
	return string(data)
}

// stdout carries the MCP stdio protocol, so config setup must stay off it
func TestConfigSetupKeepsStdoutClean(t *testing.T) {
	path := writeConfig(t, "verbose = true\n")
	dir := filepath.Join(t.TempDir(), "ytorg")

	got := captureStdout(t, func() {
		if err := EnsureDefaultConfig(dir); err != nil {
			t.Errorf("EnsureDefaultConfig failed: %v", err)
		}
		config, err := InitConfig(path, pflag.NewFlagSet("test", pflag.ContinueOnError))
		if err != nil {
			t.Errorf("InitConfig failed: %v", err)
			return
		}
		if !config.Verbose {
			t.Error("expected verbose from config file")
		}
	})
	if got != "" {
		t.Errorf("unexpected stdout output: %q", got)
	}
}

func TestEmbeddedConfigParses(t *testing.T) {
	data, err := defaultFS.ReadFile("config.toml")
	if err != nil {
		t.Fatalf("reading embedded config: %v", err)
	}
	config, err := InitConfig(writeConfig(t, string(data)), nil)
	if err != nil {
		t.Fatalf("embedded config does not load: %v", err)
	}
	if config.AudioQuality != DefaultAudioQuality {
		t.Errorf("AudioQuality = %q", config.AudioQuality)
	}
}
