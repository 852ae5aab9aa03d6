package figmacontext

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hellenic-development/figma-context/pkg/cache"
	"github.com/hellenic-development/figma-context/pkg/components"
	"github.com/hellenic-development/figma-context/pkg/figma"
	"github.com/hellenic-development/figma-context/pkg/layout"
	"github.com/hellenic-development/figma-context/pkg/nodes"
	"github.com/hellenic-development/figma-context/pkg/prototypes"
	"github.com/hellenic-development/figma-context/pkg/styles"
)

func testDocument() *figma.FileResponse {
	return &figma.FileResponse{
		FileKey:      "file-1",
		Name:         "Design System",
		Version:      "42",
		LastModified: "2026-01-01T00:00:00Z",
		Document: figma.Node{
			ID:   "0:0",
			Name: "Document",
			Type: "DOCUMENT",
			Children: []figma.Node{
				{
					ID:   "1:1",
					Name: "Login Screen",
					Type: "FRAME",
					Children: []figma.Node{
						{
							ID:   "1:2",
							Name: "Primary/500",
							Type: "RECTANGLE",
							Fills: []figma.Paint{{
								Type:  "SOLID",
								Color: &figma.Color{R: 0.1, G: 0.4, B: 0.9, A: 1},
							}},
						},
						{
							ID:         "1:3",
							Name:       "Title",
							Type:       "TEXT",
							Characters: "Welcome back",
							Style: &figma.TypeStyle{
								FontFamily: "Inter",
								FontSize:   24,
								FontWeight: 600,
							},
						},
					},
				},
				{
					ID:       "2:1",
					Name:     "Button/Primary",
					Type:     "COMPONENT",
					Children: []figma.Node{{ID: "2:2", Name: "Label", Type: "TEXT"}},
				},
			},
		},
		Styles:     map[string]figma.Style{},
		Components: map[string]figma.Component{},
	}
}

func TestExtractContextMergesAllSlots(t *testing.T) {
	e := New()
	ctx := e.ExtractContext(testDocument(), Options{})

	require.NotNil(t, ctx)
	assert.Equal(t, "file-1", ctx.File.ID)
	assert.NotEmpty(t, ctx.Nodes)
	assert.False(t, ctx.Styles.Empty())
	assert.NotEmpty(t, ctx.Components)
	assert.NotNil(t, ctx.Layout)
	assert.NotNil(t, ctx.Prototypes)
	assert.False(t, ctx.Extraction.Cached)
	assert.Empty(t, ctx.Extraction.Error)
	assert.Equal(t, 1.0, ctx.Extraction.Confidence)
}

func TestExtractContextDetectsIntents(t *testing.T) {
	e := New()
	ctx := e.ExtractContext(testDocument(), Options{})

	require.Len(t, ctx.Semantics, 1)
	assert.Equal(t, "1:1", ctx.Semantics[0].NodeID)
	assert.Equal(t, "login_form", ctx.Semantics[0].Intent)
	assert.Equal(t, 0.8, ctx.Semantics[0].Confidence)
}

func TestCacheRoundTrip(t *testing.T) {
	store, err := cache.NewMemory(16)
	require.NoError(t, err)
	e := New(WithCache(store))

	opts := Options{EnableCaching: true, CacheTTL: 60}
	first := e.ExtractContext(testDocument(), opts)
	second := e.ExtractContext(testDocument(), opts)

	assert.False(t, first.Extraction.Cached)
	assert.True(t, second.Extraction.Cached)

	strip := func(c Context) []byte {
		c.Extraction = ExtractionInfo{}
		payload, err := json.Marshal(c)
		require.NoError(t, err)
		return payload
	}
	assert.Equal(t, strip(*first), strip(*second),
		"non-metadata fields should be byte-identical across the cache")
}

func TestCachingDisabledWithoutStore(t *testing.T) {
	e := New()

	opts := Options{EnableCaching: true}
	first := e.ExtractContext(testDocument(), opts)
	second := e.ExtractContext(testDocument(), opts)

	assert.False(t, first.Extraction.Cached)
	assert.False(t, second.Extraction.Cached)
}

type faultyStore struct{}

func (faultyStore) Connect() error    { return nil }
func (faultyStore) Disconnect() error { return nil }
func (faultyStore) Get(string) ([]byte, bool, error) {
	return nil, false, errors.New("store down")
}
func (faultyStore) SetEx(string, time.Duration, []byte) error {
	return errors.New("store down")
}

func TestCacheFaultTreatedAsMiss(t *testing.T) {
	e := New(WithCache(faultyStore{}))

	ctx := e.ExtractContext(testDocument(), Options{EnableCaching: true})

	require.NotNil(t, ctx)
	assert.False(t, ctx.Extraction.Cached)
	assert.Equal(t, 1.0, ctx.Extraction.Confidence)
}

func TestCacheKeyDeterministicAndOptionSensitive(t *testing.T) {
	opts := Options{EnableCaching: true, CacheTTL: 300}

	assert.Equal(t,
		CacheKey("file-1", "42", opts),
		CacheKey("file-1", "42", opts))

	changed := opts
	changed.CacheTTL = 600
	assert.NotEqual(t,
		CacheKey("file-1", "42", opts),
		CacheKey("file-1", "42", changed))

	assert.NotEqual(t,
		CacheKey("file-1", "42", opts),
		CacheKey("file-1", "43", opts))
}

type failingParser struct{}

func (failingParser) ParseNodes(*figma.Node) ([]nodes.Node, error) {
	return nil, errors.New("parser down")
}

type panickingStyles struct{}

func (panickingStyles) Extract(*figma.Node, map[string]figma.Style) *styles.StyleSystem {
	panic("styles down")
}

type failingComponents struct{}

func (failingComponents) MapComponents(*figma.Node, map[string]figma.Component) (map[string]components.Component, error) {
	return nil, errors.New("mapper down")
}

type failingLayout struct{}

func (failingLayout) AnalyzeLayout(*figma.Node) (*layout.Info, error) {
	return nil, errors.New("layout down")
}

type failingPrototypes struct{}

func (failingPrototypes) MapPrototypes(*figma.Node) (*prototypes.Graph, error) {
	return nil, errors.New("prototypes down")
}

func TestTotalFailureResilience(t *testing.T) {
	e := New(
		WithNodeParser(failingParser{}),
		WithStyleExtractor(panickingStyles{}),
		WithComponentMapper(failingComponents{}),
		WithLayoutAnalyzer(failingLayout{}),
		WithPrototypeMapper(failingPrototypes{}),
	)

	ctx := e.ExtractContext(testDocument(), Options{})

	require.NotNil(t, ctx, "extraction must resolve even when every facet fails")
	assert.Equal(t, 0.1, ctx.Extraction.Confidence)
	assert.NotEmpty(t, ctx.Extraction.Error)
	assert.Equal(t, []nodes.Node{}, ctx.Nodes)
	assert.Empty(t, ctx.Components)
}

func TestSingleFacetFailureIsIsolated(t *testing.T) {
	e := New(WithLayoutAnalyzer(failingLayout{}))

	ctx := e.ExtractContext(testDocument(), Options{})

	assert.Equal(t, &layout.Info{}, ctx.Layout, "failed facet keeps its empty default")
	assert.NotEmpty(t, ctx.Nodes, "other facets still contribute")
	assert.Empty(t, ctx.Extraction.Error)
}

func TestContextConfidence(t *testing.T) {
	full := testDocument()
	e := New()

	tests := []struct {
		name string
		ctx  *Context
		want float64
	}{
		{
			name: "all three present",
			ctx:  e.ExtractContext(full, Options{}),
			want: 1.0,
		},
		{
			name: "only nodes",
			ctx: &Context{
				Nodes:  []nodes.Node{{ID: "1"}},
				Styles: styles.Fallback(""),
			},
			want: 0.25,
		},
		{
			name: "nothing",
			ctx: &Context{
				Styles: styles.Fallback(""),
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contextConfidence(tt.ctx))
		})
	}
}

func TestDetectIntentsRuleOrder(t *testing.T) {
	parsed := []nodes.Node{
		{ID: "1", Name: "Login Header", Type: "FRAME", ChildCount: 2},
		{ID: "2", Name: "Nav Bar", Type: "FRAME", ChildCount: 1},
		{ID: "3", Name: "CTA Button", Type: "FRAME", ChildCount: 1},
		{ID: "4", Name: "Nav Bar", Type: "FRAME", ChildCount: 0},
		{ID: "5", Name: "Header", Type: "GROUP", ChildCount: 3},
		{ID: "6", Name: "Hero", Type: "FRAME", ChildCount: 2},
	}

	regions := DetectIntents(parsed)

	require.Len(t, regions, 3)
	assert.Equal(t, "login_form", regions[0].Intent, "login outranks header in rule order")
	assert.Equal(t, "navigation", regions[1].Intent)
	assert.Equal(t, "call_to_action", regions[2].Intent)
}

func TestConsolidateTokens(t *testing.T) {
	sys := styles.Fallback("")
	sys.Palette["#1a66e6"] = &styles.ColorEntry{Hex: "#1a66e6", Name: "Primary/500"}
	sys.Palette["#222222"] = &styles.ColorEntry{Hex: "#222222"} // unnamed, skipped
	sys.Fonts["Inter-24-600"] = &styles.FontToken{Family: "Inter", Size: 24, Weight: 600}
	sys.Spacing["padding-16"] = &styles.SpacingToken{Kind: "padding", Value: 16}
	sys.Spacing["gap-16"] = &styles.SpacingToken{Kind: "gap", Value: 16}
	sys.Spacing["gap-8"] = &styles.SpacingToken{Kind: "gap", Value: 8}

	comps := map[string]components.Component{
		"Button": {Name: "Button"},
		"Card":   {Name: "Card"},
	}

	tokens := consolidateTokens(sys, comps)

	assert.Equal(t, map[string]string{"primary-500": "#1a66e6"}, tokens.Colors)
	assert.Equal(t, []string{"Inter-24-600"}, tokens.Fonts)
	assert.Equal(t, []float64{8, 16}, tokens.Spacing, "spacing values deduplicated across kinds")
	assert.Equal(t, []string{"Button", "Card"}, tokens.Components)
}

func TestDeriveAccessibility(t *testing.T) {
	parsed := []nodes.Node{
		{ID: "1", Type: "TEXT", FontSize: 10},
		{ID: "2", Type: "TEXT", FontSize: 16},
		{ID: "3", Type: "TEXT"}, // no style info, not counted as small
		{ID: "4", Type: "RECTANGLE"},
	}

	report := deriveAccessibility(parsed, styles.Fallback(""))

	assert.Equal(t, 3, report.TextNodeCount)
	assert.Equal(t, 1, report.SmallTextCount)
}

func TestFallbackContextShape(t *testing.T) {
	meta := figma.FileMeta{ID: "file-1", Name: "Broken"}
	ctx := FallbackContext(meta, "merge exploded")

	assert.Equal(t, meta, ctx.File)
	assert.Equal(t, []nodes.Node{}, ctx.Nodes)
	assert.NotNil(t, ctx.Components)
	assert.Equal(t, 0.1, ctx.Extraction.Confidence)
	assert.Equal(t, "merge exploded", ctx.Extraction.Error)
}

func TestMetricsAccumulatorBoundedAndReset(t *testing.T) {
	m := NewMetricsAccumulator(2)

	m.Record(Sample{FileID: "a", Duration: 10 * time.Millisecond})
	m.Record(Sample{FileID: "b", Duration: 20 * time.Millisecond, Cached: true})
	m.Record(Sample{FileID: "c", Duration: 30 * time.Millisecond})

	snap := m.Snapshot()
	assert.Equal(t, 3, snap.TotalExtractions)
	assert.Equal(t, 1, snap.CacheHits)
	assert.Equal(t, 2, snap.SampleCount, "ring drops oldest sample")
	assert.Equal(t, 25*time.Millisecond, snap.AverageDuration)

	m.Reset()
	assert.Equal(t, MetricsSnapshot{}, m.Snapshot())
}

func TestMetricsRecordedOnlyWhenEnabled(t *testing.T) {
	e := New()

	e.ExtractContext(testDocument(), Options{})
	assert.Equal(t, 0, e.Metrics().Snapshot().TotalExtractions)

	e.ExtractContext(testDocument(), Options{EnablePerformanceMetrics: true})
	assert.Equal(t, 1, e.Metrics().Snapshot().TotalExtractions)
}
