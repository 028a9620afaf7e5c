package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rtzll/ytorg/internal"
)

var (
	config     *internal.Config
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "ytorg",
	Short: "Download YouTube media into category and uploader folders",
	Long: `ytorg downloads YouTube videos as mp3 or mp4 and files them under

  <base>/<Category>/<Uploader>/<Title>.<ext>

It asks for a URL, a format and a category, warns when the same title from
the same uploader already exists in another category, and only downloads
after you confirm. Downloading itself is done by yt-dlp.`,
	Example: `  # Start an interactive session
  ytorg

  # Store downloads somewhere else
  ytorg --base-dir ~/Media/YouTube

  # Press enter at the URL prompt to use a link from the clipboard
  ytorg --clipboard`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadConfig(cmd)
	},
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		internal.EnsureEngine(cmd.Context())

		ffmpeg := internal.NewFFmpeg(&internal.DefaultCommandRunner{}, config.Verbose)
		if err := ffmpeg.Check(cmd.Context()); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}

		app := internal.NewApp(config)
		return app.RunInteractive(cmd.Context())
	},
}

// loadConfig reads config file, env and flags, and prepares XDG directories
func loadConfig(cmd *cobra.Command) error {
	cfg, err := internal.InitConfig(configFile, cmd.Flags())
	if err != nil {
		return err
	}
	config = cfg

	if err := internal.EnsureDirs(config.ConfigDir, config.CacheDir); err != nil {
		return fmt.Errorf("creating XDG directories: %w", err)
	}

	if err := internal.EnsureDefaultConfig(config.ConfigDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to ensure default config: %v\n", err)
	}

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	defer close(done)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case <-sigCh:
		case <-done:
			return
		}
		fmt.Fprintln(os.Stderr, "\nReceived interrupt signal. Shutting down...")

		// Cancelling stops a running yt-dlp; prompts block on stdin, so exit
		// as soon as no engine process is left
		cancel()
		if !internal.WaitEngineIdle(3 * time.Second) {
			fmt.Fprintln(os.Stderr, "Warning: Shutdown timed out, forcing exit")
		}
		os.Exit(130)
	}()

	rootCmd.SetContext(ctx)

	return rootCmd.Execute()
}

func init() {
	internal.AddSessionFlags(rootCmd)
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for debugging")
	rootCmd.PersistentFlags().String("base-dir", "", "Download root (default is ~/Youtube_Downloads)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default is $XDG_CONFIG_HOME/ytorg/config.toml)")
}
