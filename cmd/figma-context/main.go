package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	figmacontext "github.com/hellenic-development/figma-context"
	"github.com/hellenic-development/figma-context/pkg/cache"
	"github.com/hellenic-development/figma-context/pkg/config"
	"github.com/hellenic-development/figma-context/pkg/figma"
	"github.com/hellenic-development/figma-context/pkg/formatter"
	"github.com/hellenic-development/figma-context/pkg/logging"
	"github.com/hellenic-development/figma-context/pkg/mcpserver"
)

const version = "1.0.0"

var (
	configFile string
	figmaURL   string
	inputFile  string
	token      string
	outputFile string
	outputJSON bool
	framework  string
	metrics    bool

	cacheBackend string
	cachePath    string
	cacheTTL     int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "figma-context",
		Short: "Extract design context from Figma files",
		Long: "A tool to extract a normalized design context (colors, typography, spacing, " +
			"components, layout, prototype flows, accessibility) and an engineering-complexity " +
			"assessment from Figma files, via the Figma API or a saved JSON export",
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "YAML config file (optional)")
	rootCmd.PersistentFlags().StringVarP(&figmaURL, "url", "u", "", "Figma file URL")
	rootCmd.PersistentFlags().StringVarP(&inputFile, "input", "i", "", "Local Figma file API JSON export (instead of --url)")
	rootCmd.PersistentFlags().StringVarP(&token, "token", "t", "", "Figma Personal Access Token (or FIGMA_TOKEN env)")
	rootCmd.PersistentFlags().StringVar(&cacheBackend, "cache", "", "Cache backend: none, memory, sqlite")
	rootCmd.PersistentFlags().StringVar(&cachePath, "cache-path", "", "SQLite cache database path")
	rootCmd.PersistentFlags().IntVar(&cacheTTL, "cache-ttl", 0, "Cache TTL in seconds")

	extractCmd := &cobra.Command{
		Use:   "extract",
		Short: "Extract the full design context",
		Run:   runExtract,
	}
	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "DESIGN_CONTEXT.md", "Output file")
	extractCmd.Flags().BoolVar(&outputJSON, "json", false, "Write the raw context as JSON instead of markdown")
	extractCmd.Flags().BoolVar(&metrics, "metrics", false, "Record and print extraction metrics")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Assess the engineering complexity of the design",
		Run:   runAnalyze,
	}
	analyzeCmd.Flags().StringVarP(&framework, "framework", "f", "", "Target framework: react, vue, angular, svelte")
	analyzeCmd.Flags().BoolVar(&outputJSON, "json", false, "Print the raw report as JSON instead of markdown")

	mcpCmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the extraction tools over the Model Context Protocol (stdio)",
		Run:   runMCP,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("figma-context version %s\n", version)
		},
	}

	rootCmd.AddCommand(extractCmd, analyzeCmd, mcpCmd, versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// loadConfig merges defaults, the optional YAML file, and flag overrides.
func loadConfig() *Config {
	red := color.New(color.FgRed)

	cfg := NewDefaultConfig()
	if configFile != "" {
		if err := config.Load(configFile, cfg); err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	if token != "" {
		cfg.Token = token
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("FIGMA_TOKEN")
	}
	if framework != "" {
		cfg.Framework = framework
	}
	if cacheBackend != "" {
		cfg.Cache.Backend = cacheBackend
	}
	if cachePath != "" {
		cfg.Cache.Path = cachePath
	}
	if cacheTTL > 0 {
		cfg.Cache.TTL = cacheTTL
	}

	if err := cfg.Validate(); err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// loadDocument fetches the file from the Figma API or reads a local export.
func loadDocument(cfg *Config) (*figma.FileResponse, error) {
	if inputFile != "" {
		return figma.LoadFile(inputFile)
	}
	if figmaURL == "" {
		return nil, fmt.Errorf("either --url or --input is required")
	}
	if cfg.Token == "" {
		return nil, fmt.Errorf("--token or FIGMA_TOKEN is required with --url")
	}

	fileKey, err := figma.ExtractFileKey(figmaURL)
	if err != nil {
		return nil, fmt.Errorf("extract file key: %w", err)
	}
	client := figma.NewClient(cfg.Token)
	return client.GetFile(fileKey)
}

// buildExtractor wires the extractor with the configured logger and cache
// store. The returned teardown disconnects the store.
func buildExtractor(cfg *Config) (*figmacontext.Extractor, func(), error) {
	logger := logging.New(cfg.LoggerConfig())

	store, err := cfg.Store()
	if err != nil {
		return nil, nil, err
	}

	opts := []figmacontext.Option{figmacontext.WithLogger(logger)}
	teardown := func() {}
	if store != nil {
		if err := store.Connect(); err != nil {
			return nil, nil, fmt.Errorf("connect cache: %w", err)
		}
		opts = append(opts, figmacontext.WithCache(store))
		teardown = func() { disconnect(store) }
	}

	return figmacontext.New(opts...), teardown, nil
}

func disconnect(store cache.Store) {
	if err := store.Disconnect(); err != nil {
		color.New(color.FgYellow).Printf("⚠ cache disconnect: %v\n", err)
	}
}

func runExtract(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cyan.Println("\n🎨 Figma Context Extractor")
	cyan.Println("===========================")
	cyan.Println()

	cfg := loadConfig()

	doc, err := loadDocument(cfg)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	extractor, teardown, err := buildExtractor(cfg)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer teardown()

	result := extractor.ExtractContext(doc, cfg.ExtractionOptions(metrics))

	cyan.Println("\n📊 Extraction Summary:")
	fmt.Printf("  • Nodes: %d\n", len(result.Nodes))
	if result.Styles != nil {
		fmt.Printf("  • Colors: %d  Fonts: %d  Spacing: %d  Shadows: %d\n",
			len(result.Styles.Palette), len(result.Styles.Fonts),
			len(result.Styles.Spacing), len(result.Styles.Shadows))
		fmt.Printf("  • Contrast: %d compliant, %d violations\n",
			len(result.Styles.Accessibility.Compliant),
			len(result.Styles.Accessibility.Violations))
	}
	fmt.Printf("  • Components: %d\n", len(result.Components))
	fmt.Printf("  • Detected regions: %d\n", len(result.Semantics))
	fmt.Printf("  • Confidence: %.2f", result.Extraction.Confidence)
	if result.Extraction.Cached {
		fmt.Print("  (cached)")
	}
	fmt.Println()
	if result.Extraction.Error != "" {
		red.Printf("  • Degraded: %s\n", result.Extraction.Error)
	}

	var payload []byte
	if outputJSON {
		payload, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	} else {
		payload = []byte(formatter.ToMarkdown(result))
	}

	green.Printf("\n💾 Writing to %s... ", outputFile)
	if err := os.WriteFile(outputFile, payload, 0644); err != nil {
		red.Printf("✗\n")
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	green.Println("✓")

	if metrics {
		snap := extractor.Metrics().Snapshot()
		fmt.Printf("\n⏱  %d extraction(s), average %s\n", snap.TotalExtractions, snap.AverageDuration)
	}

	green.Printf("\n✨ Successfully extracted design context to %s\n\n", outputFile)
}

func runAnalyze(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	cfg := loadConfig()

	doc, err := loadDocument(cfg)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	extractor, teardown, err := buildExtractor(cfg)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer teardown()

	report := extractor.AnalyzeComplexity(doc, cfg.Framework)

	if outputJSON {
		payload, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(payload))
		return
	}

	cyan.Printf("\n🧮 Complexity: %s (score %d/10)\n\n", report.OverallLevel, report.OverallScore)
	fmt.Print(formatter.ComplexityToMarkdown(report))
}

func runMCP(cmd *cobra.Command, args []string) {
	red := color.New(color.FgRed)

	cfg := loadConfig()

	extractor, teardown, err := buildExtractor(cfg)
	if err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
	defer teardown()

	srv := mcpserver.New(extractor, cfg.ExtractionOptions(false))
	if err := srv.ServeStdio(); err != nil {
		red.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
