package cli

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rgolubev/patentlens/internal/cache"
	"github.com/rgolubev/patentlens/internal/pipeline"
	"github.com/rgolubev/patentlens/internal/web"
)

var (
	listen       string
	httpTimeout  time.Duration
	userAgent    string
	maxBytes     int64
	noCache      bool
	respectRobot bool
	fetchRPS     float64
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the patent search form",
	Long: `Serve starts the web interface:
- A search form for the invention description, feature list, and API key
- Bounded inputs for similarity threshold, minimum matches, and patent count
- Inline results with per-feature scores and supporting sentences
- JSON export of matched patents

Analyses run one at a time per submission; nothing is persisted between
searches.

Example:
  patentlens serve
  patentlens serve --listen 0.0.0.0:9090
  patentlens serve --fetch-rps 1 --respect-robots`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&listen, "listen", "", "listen address (default from config, 127.0.0.1:8080)")
	serveCmd.Flags().DurationVar(&httpTimeout, "timeout", 30*time.Second, "per-request timeout for provider and patent fetches")
	serveCmd.Flags().StringVar(&userAgent, "ua", "Mozilla/5.0", "HTTP User-Agent for patent page fetches")
	serveCmd.Flags().Int64Var(&maxBytes, "max-bytes", 4_000_000, "max response bytes to read per patent page")
	serveCmd.Flags().BoolVar(&noCache, "no-cache", false, "disable provider-response caching")
	serveCmd.Flags().BoolVar(&respectRobot, "respect-robots", false, "check robots.txt before fetching patent pages")
	serveCmd.Flags().Float64Var(&fetchRPS, "fetch-rps", 0, "max patent page fetches per second (0 = unlimited)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := loadConfig()

	// Flags override file config
	if listen != "" {
		cfg.Server.Listen = listen
	}
	if cmd.Flags().Changed("timeout") {
		cfg.HTTP.Timeout = httpTimeout
	}
	if cmd.Flags().Changed("ua") {
		cfg.HTTP.UserAgent = userAgent
	}
	if cmd.Flags().Changed("max-bytes") {
		cfg.HTTP.MaxBodyBytes = maxBytes
	}
	if cmd.Flags().Changed("respect-robots") {
		cfg.Politeness.RespectRobots = respectRobot
	}
	if cmd.Flags().Changed("fetch-rps") {
		cfg.Politeness.RequestsPerSecond = fetchRPS
	}
	cfg.Output.Verbose = cfg.Output.Verbose || verbose

	var c cache.Cache
	if !noCache && cfg.Search.CacheTTL > 0 {
		c = cache.NewMemoryCache(cfg.Search.CacheTTL, 2*cfg.Search.CacheTTL)
	}

	analyzer := pipeline.NewAnalyzer(cfg, c)
	handler := web.NewServer(analyzer, cfg.Output.Verbose)

	if verbose {
		fmt.Fprintf(os.Stderr, "Listen:        %s\n", cfg.Server.Listen)
		fmt.Fprintf(os.Stderr, "HTTP timeout:  %v\n", cfg.HTTP.Timeout)
		fmt.Fprintf(os.Stderr, "User-Agent:    %s\n", cfg.HTTP.UserAgent)
		fmt.Fprintf(os.Stderr, "Cache:         %v\n", c != nil)
		fmt.Fprintln(os.Stderr)
	}

	fmt.Fprintf(os.Stderr, "Patentlens listening on http://%s\n", cfg.Server.Listen)

	server := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
