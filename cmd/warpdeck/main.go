package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/five82/warpdeck/internal/app"
)

var (
	configPath  string
	prefsPath   string
	pollSeconds int
)

var rootCmd = &cobra.Command{
	Use:   "warpdeck",
	Short: "Terminal dashboard for SignWarpX warps",
	Long: `warpdeck browses the warps of a SignWarpX server, shows teleport
statistics and manages invites on private warps.

Examples:
  warpdeck                         # Open the dashboard
  warpdeck --poll 10               # Auto-refresh every 10 seconds when enabled
  warpdeck warps --world world     # Print overworld warps
  warpdeck invite vault Alex       # Invite Alex to the private warp "vault"`,
	SilenceUsage: true,
	Args:         cobra.NoArgs,
	RunE:         runDashboard,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "override warpdeck config path (optional)")
	flags.StringVar(&prefsPath, "prefs", "", "override preferences path (optional)")
	rootCmd.Flags().IntVar(&pollSeconds, "poll", 0, "auto-refresh interval in seconds (optional, defaults to config)")
}

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "warpdeck: %v\n", err)
		return 1
	}
	return 0
}

func options() app.Options {
	opts := app.Options{ConfigPath: configPath, PrefsPath: prefsPath}
	if pollSeconds > 0 {
		opts.PollEvery = time.Duration(pollSeconds) * time.Second
	}
	return opts
}

func runDashboard(cmd *cobra.Command, args []string) error {
	return app.Run(cmd.Context(), options())
}
