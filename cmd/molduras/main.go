package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/marcoscrape/molduras/internal/config"
	"github.com/marcoscrape/molduras/internal/discover"
	"github.com/marcoscrape/molduras/internal/extract"
	"github.com/marcoscrape/molduras/internal/fetcher"
	"github.com/marcoscrape/molduras/internal/media"
	"github.com/marcoscrape/molduras/internal/scraper"
	"github.com/marcoscrape/molduras/internal/storage"
)

var (
	cfgFile     string
	verbose     bool
	outputPath  string
	imageDir    string
	delay       string
	userAgent   string
	storageType string
	fetcherType string
	timeout     string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "molduras",
		Short: "molduras — category scraper for picture-frame mouldings",
		Long: `molduras crawls e-commerce moulding categories, extracts per-product
metadata (id, name, width in cm, heuristic color/style), downloads each
product's primary image, and writes the aggregated records as JSON.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(scrapeCmd())
	rootCmd.AddCommand(configCmd())
	rootCmd.AddCommand(versionCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// scrapeCmd creates the "scrape" subcommand.
func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape [category-url...]",
		Short: "Scrape the configured (or given) categories",
		Long:  "Crawl each category listing, extract every product, download images, and write the output file. With no arguments the configured categories are used.",
		RunE:  runScrape,
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output JSON file path")
	cmd.Flags().StringVar(&imageDir, "images", "", "image output directory")
	cmd.Flags().StringVar(&delay, "delay", "", "delay between requests (e.g. 600ms)")
	cmd.Flags().StringVar(&userAgent, "user-agent", "", "custom User-Agent string")
	cmd.Flags().StringVar(&storageType, "storage", "", "storage backend: json or mongo")
	cmd.Flags().StringVar(&fetcherType, "fetcher", "", "fetcher backend: http or browser")
	cmd.Flags().StringVar(&timeout, "timeout", "", "per-request timeout (e.g. 30s)")

	return cmd
}

// runScrape executes the scrape command.
func runScrape(cmd *cobra.Command, args []string) error {
	logger := setupLogger()

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	applyCLIOverrides(cfg)
	if len(args) > 0 {
		cfg.Site.Categories = args
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger.Info("starting scrape",
		"categories", len(cfg.Site.Categories),
		"fetcher", cfg.Fetcher.Type,
		"storage", cfg.Storage.Type,
		"output", cfg.Storage.DataPath,
	)

	f, err := fetcher.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create fetcher: %w", err)
	}
	defer f.Close()

	walker, err := discover.New(cfg, f, logger)
	if err != nil {
		return fmt.Errorf("create walker: %w", err)
	}

	extractor, err := extract.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create extractor: %w", err)
	}

	downloader, err := media.NewDownloader(cfg.Storage.ImageDir, cfg.Fetcher.UserAgent, cfg.Fetcher.ImageTimeout, logger)
	if err != nil {
		return fmt.Errorf("create downloader: %w", err)
	}

	store, err := storage.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create storage: %w", err)
	}
	defer store.Close()

	// SIGINT/SIGTERM cancels the run; accumulated records are discarded.
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received signal, stopping", "signal", sig)
		cancel()
	}()

	s := scraper.New(cfg, f, walker, extractor, downloader, store, logger)
	stats, err := s.Run(ctx)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	fmt.Printf("Listo: %s => %d molduras\n", cfg.Storage.DataPath, stats.Products)
	fmt.Printf("   Links:      %d discovered\n", stats.LinksFound)
	fmt.Printf("   Images:     %d downloaded\n", stats.Images)
	fmt.Printf("   Duplicates: %d dropped\n", stats.Duplicates)
	fmt.Printf("   Errors:     %d items skipped\n", stats.ItemErrors)
	fmt.Printf("   Elapsed:    %s\n", stats.Elapsed.Round(time.Millisecond))

	return nil
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Site:\n")
			fmt.Printf("  Base URL:        %s\n", cfg.Site.BaseURL)
			fmt.Printf("  Categories:      %d configured\n", len(cfg.Site.Categories))
			for _, cat := range cfg.Site.Categories {
				fmt.Printf("    - %s\n", cat)
			}
			fmt.Printf("\nFetcher:\n")
			fmt.Printf("  Type:            %s\n", cfg.Fetcher.Type)
			fmt.Printf("  Request Timeout: %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Printf("  Image Timeout:   %s\n", cfg.Fetcher.ImageTimeout)
			fmt.Printf("\nCrawl:\n")
			fmt.Printf("  Page Delay:      %s\n", cfg.Crawl.PageDelay)
			fmt.Printf("  Product Delay:   %s\n", cfg.Crawl.ProductDelay)
			fmt.Printf("\nStorage:\n")
			fmt.Printf("  Type:            %s\n", cfg.Storage.Type)
			fmt.Printf("  Data Path:       %s\n", cfg.Storage.DataPath)
			fmt.Printf("  Image Dir:       %s\n", cfg.Storage.ImageDir)
			return nil
		},
	}
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("molduras %s\n", config.Version)
		},
	}
}

// setupLogger creates a structured logger.
func setupLogger() *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if outputPath != "" {
		cfg.Storage.DataPath = outputPath
	}
	if imageDir != "" {
		cfg.Storage.ImageDir = imageDir
	}
	if delay != "" {
		if d, err := time.ParseDuration(delay); err == nil {
			cfg.Crawl.PageDelay = d
			cfg.Crawl.ProductDelay = d
		}
	}
	if userAgent != "" {
		cfg.Fetcher.UserAgent = userAgent
	}
	if storageType != "" {
		cfg.Storage.Type = storageType
	}
	if fetcherType != "" {
		cfg.Fetcher.Type = fetcherType
	}
	if timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			cfg.Fetcher.RequestTimeout = d
		}
	}
}
