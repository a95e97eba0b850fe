// Package commands implements the CLI commands for tldr.
package commands

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"github.com/dbrgn/tealdeer/internal/cache"
	"github.com/dbrgn/tealdeer/internal/config"
	clierrors "github.com/dbrgn/tealdeer/internal/errors"
	"github.com/dbrgn/tealdeer/internal/logging"
	"github.com/dbrgn/tealdeer/internal/platform"
	"github.com/dbrgn/tealdeer/internal/render"
)

// version is overridden at release time via ldflags.
var version = "0.1.0"

// Flag values.
var (
	updateFlag     bool
	listFlag       bool
	clearCacheFlag bool
	searchFlag     bool
	rawFlag        bool
	seedConfigFlag bool
	platformFlag   string
	configFlag     string
	verbosity      int
	quiet          bool
	logFormat      string
)

func init() {
	rootCmd.Flags().BoolVarP(&updateFlag, "update", "u", false,
		"update the local page cache")
	rootCmd.Flags().BoolVarP(&listFlag, "list", "l", false,
		"list all pages for the current platform")
	rootCmd.Flags().BoolVarP(&clearCacheFlag, "clear-cache", "c", false,
		"delete the local page cache")
	rootCmd.Flags().BoolVar(&searchFlag, "search", false,
		"interactively search and show a page")
	rootCmd.Flags().BoolVarP(&rawFlag, "raw", "r", false,
		"print page markdown without styling")
	rootCmd.Flags().BoolVar(&seedConfigFlag, "seed-config", false,
		"write the default config file and exit")
	rootCmd.Flags().StringVarP(&platformFlag, "platform", "p", "",
		"override the detected platform: linux, osx, windows, sunos")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "",
		"path to a config file")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v",
		"increase verbosity level (e.g., -v, -vv)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false,
		"suppress non-error output")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "text",
		"log format: text, json")

	rootCmd.Version = version
	rootCmd.SetVersionTemplate("tldr version {{.Version}}\n")

	// Silence errors and usage so we can control error output
	rootCmd.SilenceErrors = true
	rootCmd.SilenceUsage = true
}

var rootCmd = &cobra.Command{
	Use:   "tldr [command]",
	Short: "Simplified, community-driven man pages",
	Long: `tldr shows short, practical usage examples for command line tools,
served from a locally cached copy of the community page collection.

The cache is stored on disk and refreshed as a whole from the remote
archive. Pages are resolved with platform-specific pages taking
precedence over common ones; pages from a custom directory are always
shown in addition.`,
	Example: `  # Show the page for tar
  tldr tar

  # Multi-word commands are joined with dashes
  tldr git checkout

  # Refresh the local cache
  tldr --update

  # List all pages for this platform
  tldr --list

  # Pretend to be on another platform
  tldr --platform osx brew`,
	Args: cobra.ArbitraryArgs,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	RunE: run,
}

// setupLogging configures the default logger based on verbosity flags.
func setupLogging(cmd *cobra.Command) error {
	if quiet && verbosity > 0 {
		return clierrors.NewUserError(
			errors.New("cannot use --quiet and --verbose together"),
			"Pick one of --quiet or --verbose")
	}

	var level slog.Level
	if quiet {
		level = slog.LevelError
	} else {
		level = logging.LevelFromVerbosity(verbosity)
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	var handler slog.Handler
	switch logging.Format(logFormat) {
	case logging.FormatJSON:
		handler = slog.NewJSONHandler(cmd.ErrOrStderr(), opts)
	default:
		handler = logging.NewHandler(cmd.ErrOrStderr(), opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)

	return nil
}

func run(cmd *cobra.Command, args []string) error {
	env := config.FromEnv()

	if seedConfigFlag {
		path, err := config.Seed(config.Dir(env))
		if err != nil {
			return clierrors.NewUserError(err, "Remove the existing file or set TEALDEER_CONFIG_DIR")
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Wrote default config to %s\n", path)
		return nil
	}

	config.Init(env)
	cfg, err := config.Load(configFlag)
	if err != nil {
		return clierrors.NewUserError(err, "Run 'tldr --seed-config' to create a default config")
	}

	pf := platform.Detect()
	if platformFlag != "" {
		pf, err = platform.Parse(platformFlag)
		if err != nil {
			return clierrors.NewUserError(err, "Run 'tldr --help' to see valid platforms")
		}
	}

	c := cache.New(cache.Settings{
		CacheDir:       env.CacheDir,
		CustomPagesDir: env.CustomPagesDir,
		PagesURL:       cfg.Pages.URL,
		HTTPProxy:      env.HTTPProxy,
		HTTPSProxy:     env.HTTPSProxy,
	}, pf, slog.Default())

	renderer := render.New(cmd.OutOrStdout(), render.Options{
		Raw:     rawFlag || cfg.Display.Raw,
		Compact: cfg.Display.Compact,
	})

	switch {
	case clearCacheFlag:
		return runClearCache(cmd.OutOrStdout(), c)
	case updateFlag:
		return runUpdate(cmd.OutOrStdout(), c)
	case listFlag:
		return runList(cmd.OutOrStdout(), c)
	case searchFlag:
		return runSearch(c, renderer)
	case len(args) > 0:
		return runShow(c, renderer, cfg, pageName(args))
	default:
		return cmd.Help()
	}
}

// pageName derives the page name from the positional arguments.
// Multi-word commands are joined with dashes: `tldr git checkout`
// looks up git-checkout.
func pageName(args []string) string {
	return strings.ToLower(strings.Join(args, "-"))
}

func runClearCache(w io.Writer, c *cache.Cache) error {
	if err := c.Clear(); err != nil {
		return clierrors.NewUserError(err, "Nothing to clear? The cache may not exist yet")
	}
	fmt.Fprintln(w, "Successfully deleted cache.")
	return nil
}

func runUpdate(w io.Writer, c *cache.Cache) error {
	if err := c.Update(); err != nil {
		return clierrors.NewSystemError(err, "Check your network connection and proxy settings")
	}
	fmt.Fprintln(w, "Successfully updated cache.")
	return nil
}

func runList(w io.Writer, c *cache.Cache) error {
	pages, err := c.ListPages()
	if err != nil {
		return clierrors.NewSystemError(err, "Run 'tldr --update' to populate the cache")
	}
	for _, page := range pages {
		fmt.Fprintln(w, page)
	}
	return nil
}

func runShow(c *cache.Cache, renderer *render.Renderer, cfg *config.Config, name string) error {
	warnIfStale(c, cfg)

	result, err := c.FindPages(name)
	if err != nil {
		if errors.Is(err, cache.ErrPageNotFound) {
			return clierrors.NewUserError(err,
				fmt.Sprintf("Page %q not found. Run 'tldr --update' to refresh the cache", name))
		}
		return clierrors.NewSystemError(err, "")
	}

	return renderer.Render(result)
}

// warnIfStale logs a warning when the cache is missing or older than the
// configured maximum age. The lookup proceeds either way.
func warnIfStale(c *cache.Cache, cfg *config.Config) {
	age, ok := c.LastUpdateAge()
	if !ok {
		slog.Warn("cache does not exist yet, run `tldr --update` to create it")
		return
	}

	maxAge := time.Duration(cfg.Updates.MaxAgeDays) * 24 * time.Hour
	if maxAge > 0 && age > maxAge {
		slog.Warn("cache is stale, run `tldr --update` to refresh it",
			"age_days", int(age.Hours()/24))
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
