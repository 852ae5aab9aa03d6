package figmacontext

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/hellenic-development/figma-context/pkg/cache"
	"github.com/hellenic-development/figma-context/pkg/complexity"
	"github.com/hellenic-development/figma-context/pkg/components"
	"github.com/hellenic-development/figma-context/pkg/figma"
	"github.com/hellenic-development/figma-context/pkg/layout"
	"github.com/hellenic-development/figma-context/pkg/nodes"
	"github.com/hellenic-development/figma-context/pkg/prototypes"
	"github.com/hellenic-development/figma-context/pkg/styles"
)

// Collaborator contracts consumed by the orchestrator. Each runs inside the
// fan-out and may fail independently without aborting the others.
type (
	// NodeParser flattens the document tree into ordered node summaries.
	NodeParser interface {
		ParseNodes(root *figma.Node) ([]nodes.Node, error)
	}

	// ComponentMapper builds the component inventory.
	ComponentMapper interface {
		MapComponents(root *figma.Node, defs map[string]figma.Component) (map[string]components.Component, error)
	}

	// LayoutAnalyzer extracts layout measurements.
	LayoutAnalyzer interface {
		AnalyzeLayout(root *figma.Node) (*layout.Info, error)
	}

	// PrototypeMapper builds the prototype-flow graph.
	PrototypeMapper interface {
		MapPrototypes(root *figma.Node) (*prototypes.Graph, error)
	}

	// StyleExtractor builds the style system. It never returns an error: a
	// failed extraction yields a fallback system instead.
	StyleExtractor interface {
		Extract(document *figma.Node, declared map[string]figma.Style) *styles.StyleSystem
	}
)

// Extractor orchestrates context extraction: it fans out to the style
// extractor and the external collaborators in parallel, merges their outputs
// into a unified Context, and applies read-through caching.
type Extractor struct {
	logger *slog.Logger
	store  cache.Store

	styles     StyleExtractor
	nodeParser NodeParser
	components ComponentMapper
	layout     LayoutAnalyzer
	prototypes PrototypeMapper

	metrics *MetricsAccumulator
	now     func() time.Time
}

// Option customizes an Extractor.
type Option func(*Extractor)

// WithLogger sets the structured logger. A nil logger silences all output.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Extractor) { e.logger = logger }
}

// WithCache sets the cache store used when Options.EnableCaching is true.
// Without a store, caching is disabled regardless of the option.
func WithCache(store cache.Store) Option {
	return func(e *Extractor) { e.store = store }
}

// WithStyleExtractor replaces the default style extractor.
func WithStyleExtractor(s StyleExtractor) Option {
	return func(e *Extractor) { e.styles = s }
}

// WithNodeParser replaces the default node parser.
func WithNodeParser(p NodeParser) Option {
	return func(e *Extractor) { e.nodeParser = p }
}

// WithComponentMapper replaces the default component mapper.
func WithComponentMapper(m ComponentMapper) Option {
	return func(e *Extractor) { e.components = m }
}

// WithLayoutAnalyzer replaces the default layout analyzer.
func WithLayoutAnalyzer(a LayoutAnalyzer) Option {
	return func(e *Extractor) { e.layout = a }
}

// WithPrototypeMapper replaces the default prototype mapper.
func WithPrototypeMapper(m PrototypeMapper) Option {
	return func(e *Extractor) { e.prototypes = m }
}

// WithMetrics sets the extraction-metrics accumulator used when
// Options.EnablePerformanceMetrics is true.
func WithMetrics(m *MetricsAccumulator) Option {
	return func(e *Extractor) { e.metrics = m }
}

// New creates an Extractor wired with the default collaborators. Any of them
// can be replaced through options.
func New(opts ...Option) *Extractor {
	e := &Extractor{now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.New(slog.DiscardHandler)
	}
	if e.styles == nil {
		e.styles = styles.New(e.logger)
	}
	if e.nodeParser == nil {
		e.nodeParser = nodes.Parser{}
	}
	if e.components == nil {
		e.components = components.Mapper{}
	}
	if e.layout == nil {
		e.layout = layout.Analyzer{}
	}
	if e.prototypes == nil {
		e.prototypes = prototypes.Mapper{}
	}
	if e.metrics == nil {
		e.metrics = NewMetricsAccumulator(DefaultMetricsSamples)
	}
	return e
}

// Metrics returns the extraction-metrics accumulator.
func (e *Extractor) Metrics() *MetricsAccumulator { return e.metrics }

// ExtractStyles runs the style pipeline alone, without fan-out or caching.
func (e *Extractor) ExtractStyles(doc *figma.FileResponse) *styles.StyleSystem {
	return e.styles.Extract(&doc.Document, doc.Styles)
}

// AnalyzeComplexity runs the complexity analysis alone. The framework selects
// the architecture recommendation table row.
func (e *Extractor) AnalyzeComplexity(doc *figma.FileResponse, framework string) *complexity.Report {
	return complexity.Analyze(&doc.Document, framework)
}

// facetResults holds each fan-out task's output in its own slot. Tasks share
// no mutable state; every goroutine writes to a disjoint field.
type facetResults struct {
	nodes      []nodes.Node
	styles     *styles.StyleSystem
	components map[string]components.Component
	layout     *layout.Info
	prototypes *prototypes.Graph

	failures []string
}

// ExtractContext produces the unified Context for a document. It never panics
// or returns an error past its own boundary: a total failure yields a
// FallbackContext with confidence 0.1.
//
// With caching enabled and a store configured, the call is read-through: a
// fresh unexpired entry is returned marked cached=true without recomputation,
// and a computed result is written back with the configured TTL. Concurrent
// callers for the same key may both compute and both write; the last writer
// wins.
func (e *Extractor) ExtractContext(doc *figma.FileResponse, opts Options) *Context {
	start := e.now()
	meta := doc.Meta()

	caching := opts.EnableCaching && e.store != nil
	key := ""
	if caching {
		key = CacheKey(meta.ID, meta.Version, opts)
		if cached := e.readCache(key); cached != nil {
			cached.Extraction.Cached = true
			cached.Extraction.ProcessingTime = msSince(start, e.now())
			if opts.EnablePerformanceMetrics {
				e.record(meta.ID, start, true)
			}
			return cached
		}
	}

	results := e.fanOut(doc, opts)

	var out *Context
	if len(results.failures) == facetCount {
		e.logger.Error("all extraction facets failed",
			"file", meta.ID, "failures", strings.Join(results.failures, "; "))
		out = FallbackContext(meta, strings.Join(results.failures, "; "))
	} else {
		out = e.merge(meta, results)
	}

	out.Extraction.Timestamp = start
	out.Extraction.ProcessingTime = msSince(start, e.now())

	if caching && out.Extraction.Error == "" {
		e.writeCache(key, opts.ttl(), out)
	}
	if opts.EnablePerformanceMetrics {
		e.record(meta.ID, start, false)
	}
	return out
}

const facetCount = 5

// fanOut runs every facet extractor concurrently, bounded by the configured
// concurrency limit, and waits for all of them to settle. A panic or error in
// one facet is recorded and its slot keeps the empty default.
func (e *Extractor) fanOut(doc *figma.FileResponse, opts Options) *facetResults {
	results := &facetResults{
		nodes:      []nodes.Node{},
		styles:     &styles.StyleSystem{},
		components: map[string]components.Component{},
		layout:     &layout.Info{},
		prototypes: &prototypes.Graph{Transitions: []prototypes.Transition{}, EntryPoints: []string{}},
	}

	failed := make(chan string, facetCount)

	var group errgroup.Group
	group.SetLimit(opts.concurrency())

	run := func(name string, fn func() error) {
		group.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("%v", r)
				}
				if err != nil {
					e.logger.Warn("extraction facet failed, continuing without it",
						"facet", name, "error", err)
					failed <- fmt.Sprintf("%s: %v", name, err)
				}
			}()
			return fn()
		})
	}

	run("nodes", func() error {
		parsed, err := e.nodeParser.ParseNodes(&doc.Document)
		if err != nil {
			return err
		}
		results.nodes = parsed
		return nil
	})
	run("styles", func() error {
		results.styles = e.styles.Extract(&doc.Document, doc.Styles)
		return nil
	})
	run("components", func() error {
		comps, err := e.components.MapComponents(&doc.Document, doc.Components)
		if err != nil {
			return err
		}
		results.components = comps
		return nil
	})
	run("layout", func() error {
		info, err := e.layout.AnalyzeLayout(&doc.Document)
		if err != nil {
			return err
		}
		results.layout = info
		return nil
	})
	run("prototypes", func() error {
		graph, err := e.prototypes.MapPrototypes(&doc.Document)
		if err != nil {
			return err
		}
		results.prototypes = graph
		return nil
	})

	// Join-all: every facet settles before merging, no short-circuit.
	_ = group.Wait()
	close(failed)
	for msg := range failed {
		results.failures = append(results.failures, msg)
	}
	return results
}

// merge assembles the unified Context and derives semantics, design tokens,
// and accessibility. A fault inside the merge yields a FallbackContext.
func (e *Extractor) merge(meta figma.FileMeta, results *facetResults) (out *Context) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Error("context merge failed", "file", meta.ID, "error", fmt.Sprint(r))
			out = FallbackContext(meta, fmt.Sprint(r))
		}
	}()

	out = &Context{
		File:       meta,
		Nodes:      results.nodes,
		Styles:     results.styles,
		Components: results.components,
		Layout:     results.layout,
		Prototypes: results.prototypes,
	}
	out.Semantics = DetectIntents(results.nodes)
	out.DesignTokens = consolidateTokens(results.styles, results.components)
	out.Accessibility = deriveAccessibility(results.nodes, results.styles)
	out.Extraction.Confidence = contextConfidence(out)
	return out
}

// readCache returns the unmarshaled cached context, or nil on miss. Store and
// decode faults are logged and treated as misses.
func (e *Extractor) readCache(key string) *Context {
	payload, ok, err := e.store.Get(key)
	if err != nil {
		e.logger.Warn("cache read failed, treating as miss", "key", key, "error", err)
		return nil
	}
	if !ok {
		return nil
	}
	var cached Context
	if err := json.Unmarshal(payload, &cached); err != nil {
		e.logger.Warn("cache entry corrupt, treating as miss", "key", key, "error", err)
		return nil
	}
	return &cached
}

// writeCache serializes and stores the context. Faults are logged, never
// propagated.
func (e *Extractor) writeCache(key string, ttl time.Duration, out *Context) {
	payload, err := json.Marshal(out)
	if err != nil {
		e.logger.Warn("context serialization failed, skipping cache write", "key", key, "error", err)
		return
	}
	if err := e.store.SetEx(key, ttl, payload); err != nil {
		e.logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (e *Extractor) record(fileID string, start time.Time, cached bool) {
	e.metrics.Record(Sample{
		FileID:   fileID,
		At:       start,
		Duration: e.now().Sub(start),
		Cached:   cached,
	})
}

func msSince(start, end time.Time) float64 {
	return float64(end.Sub(start)) / float64(time.Millisecond)
}
