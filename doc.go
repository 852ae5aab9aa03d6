// Package figmacontext extracts a normalized design context from Figma
// documents: a flattened node list, a style system (colors with WCAG contrast
// analysis, typography, spacing, shadows, grids), a component inventory,
// layout measurements, a prototype-flow graph, detected UI intents, and
// consolidated design tokens — plus a separate engineering-complexity
// assessment with a development-time estimate.
//
// The CLI lives in cmd/figma-context; this root package exposes the pipeline
// as a Go API so callers can embed extraction in their own tools.
//
// # Import
//
// The module path contains a hyphen but Go package names cannot, so the
// package is named figmacontext:
//
//	import "github.com/hellenic-development/figma-context" // package figmacontext
//
// # Quick start
//
//	client := figma.NewClient(os.Getenv("FIGMA_TOKEN"))
//	file, err := client.GetFile("ABC123")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	extractor := figmacontext.New(
//	    figmacontext.WithLogger(slog.Default()),
//	)
//	ctx := extractor.ExtractContext(file, figmacontext.Options{})
//	fmt.Printf("confidence: %.2f, %d nodes\n", ctx.Extraction.Confidence, len(ctx.Nodes))
//
// ExtractContext never returns an error: a failed extraction yields a
// low-confidence fallback Context with the error text in the extraction
// block, so consumers always receive a renderable result.
//
// # Caching
//
// Pass a cache store and enable caching per request:
//
//	store := cache.NewSQLite("contexts.db")
//	if err := store.Connect(); err != nil {
//	    log.Fatal(err)
//	}
//	defer store.Disconnect()
//
//	extractor := figmacontext.New(figmacontext.WithCache(store))
//	ctx := extractor.ExtractContext(file, figmacontext.Options{
//	    EnableCaching: true,
//	    CacheTTL:      600,
//	})
//
// Cached results come back marked Extraction.Cached=true. Concurrent callers
// for the same key may both compute; the last write wins.
package figmacontext
