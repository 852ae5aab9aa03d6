package figmacontext

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/hellenic-development/figma-context/pkg/components"
	"github.com/hellenic-development/figma-context/pkg/figma"
	"github.com/hellenic-development/figma-context/pkg/layout"
	"github.com/hellenic-development/figma-context/pkg/nodes"
	"github.com/hellenic-development/figma-context/pkg/prototypes"
	"github.com/hellenic-development/figma-context/pkg/styles"
)

// Options configures a single extraction request. The whole struct is
// fingerprinted into the cache key, so any differing option value addresses a
// different cache entry.
type Options struct {
	EnableCaching            bool `json:"enableCaching"`
	CacheTTL                 int  `json:"cacheTTL"` // seconds
	EnablePerformanceMetrics bool `json:"enablePerformanceMetrics"`
	MaxConcurrentExtractions int  `json:"maxConcurrentExtractions"`
}

// DefaultCacheTTL applies when Options.CacheTTL is zero or negative.
const DefaultCacheTTL = 300 * time.Second

// defaultConcurrency applies when Options.MaxConcurrentExtractions is zero or
// negative.
const defaultConcurrency = 4

func (o Options) ttl() time.Duration {
	if o.CacheTTL <= 0 {
		return DefaultCacheTTL
	}
	return time.Duration(o.CacheTTL) * time.Second
}

func (o Options) concurrency() int {
	if o.MaxConcurrentExtractions <= 0 {
		return defaultConcurrency
	}
	return o.MaxConcurrentExtractions
}

// CacheKey returns the deterministic cache key for one extraction request:
// context:{fileId}:{version}:{base64(JSON(options))}. Identical inputs always
// map to the same key.
func CacheKey(fileID, version string, opts Options) string {
	payload, err := json.Marshal(opts)
	if err != nil {
		// Options contains only marshalable scalar fields.
		panic(fmt.Sprintf("marshal options: %v", err))
	}
	return fmt.Sprintf("context:%s:%s:%s", fileID, version,
		base64.StdEncoding.EncodeToString(payload))
}

// ExtractionInfo is the metadata block attached to every Context.
type ExtractionInfo struct {
	Timestamp      time.Time `json:"timestamp"`
	ProcessingTime float64   `json:"processingTime"` // milliseconds
	Cached         bool      `json:"cached"`
	Confidence     float64   `json:"confidence"`
	Error          string    `json:"error,omitempty"`
}

// Context is the unified extraction result: every collaborator's output in its
// named slot, plus the derived semantics, design tokens, and accessibility
// sections. A Context is immutable once returned.
type Context struct {
	File          figma.FileMeta                  `json:"file"`
	Nodes         []nodes.Node                    `json:"nodes"`
	Styles        *styles.StyleSystem             `json:"styles"`
	Components    map[string]components.Component `json:"components"`
	Layout        *layout.Info                    `json:"layout"`
	Prototypes    *prototypes.Graph               `json:"prototypes"`
	Semantics     []SemanticRegion                `json:"semantics"`
	DesignTokens  DesignTokens                    `json:"designTokens"`
	Accessibility AccessibilityReport             `json:"accessibility"`
	Extraction    ExtractionInfo                  `json:"extraction"`
}

// FallbackContext is the minimal valid Context returned when extraction fails
// entirely: every slot empty but well-typed, confidence 0.1, and the captured
// error text in the extraction block.
func FallbackContext(meta figma.FileMeta, errText string) *Context {
	return &Context{
		File:       meta,
		Nodes:      []nodes.Node{},
		Styles:     styles.Fallback(""),
		Components: map[string]components.Component{},
		Layout:     &layout.Info{},
		Prototypes: &prototypes.Graph{Transitions: []prototypes.Transition{}, EntryPoints: []string{}},
		Semantics:  []SemanticRegion{},
		Extraction: ExtractionInfo{
			Timestamp:  time.Now(),
			Confidence: fallbackConfidence,
			Error:      errText,
		},
	}
}

const fallbackConfidence = 0.1

// contextConfidence scores a merged context: 0.25 for each of nodes, styles,
// and components that is non-empty, plus a 0.25 completeness bonus when all
// three are present.
func contextConfidence(c *Context) float64 {
	score := 0.0
	present := 0
	if len(c.Nodes) > 0 {
		score += 0.25
		present++
	}
	if !c.Styles.Empty() {
		score += 0.25
		present++
	}
	if len(c.Components) > 0 {
		score += 0.25
		present++
	}
	if present == 3 {
		score += 0.25
	}
	if score > 1 {
		score = 1
	}
	return score
}
