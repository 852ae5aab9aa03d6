package complexity

import "math"

// Factor is one qualitative complexity dimension scored on a 0-10 scale.
type Factor struct {
	Score      float64 `json:"score"`
	Level      Level   `json:"level"`
	Confidence float64 `json:"confidence"`
}

// Estimate is the development-time projection derived from the overall level
// and factor scores. Hours are split into fixed shares.
type Estimate struct {
	TotalHours    float64 `json:"totalHours"`
	Development   float64 `json:"development"`
	Testing       float64 `json:"testing"`
	Optimization  float64 `json:"optimization"`
	Documentation float64 `json:"documentation"`
	Confidence    float64 `json:"confidence"`
}

// factorMetric scores one structural metric against fixed low/medium/high
// thresholds, yielding an ordinal 0-3.
type factorMetric struct {
	name              string
	value             func(Metrics) float64
	low, medium, high float64
}

// factorMetrics binds each qualitative factor to the metrics that measure it.
// Kept as data rather than logic so thresholds stay testable and extensible.
var factorMetrics = map[string][]factorMetric{
	"visual": {
		{"elementCount", func(m Metrics) float64 { return float64(m.ElementCount) }, 5, 15, 30},
		{"maxDepth", func(m Metrics) float64 { return float64(m.MaxDepth) }, 3, 5, 8},
	},
	"interaction": {
		{"componentCount", func(m Metrics) float64 { return float64(m.ComponentCount) }, 2, 5, 10},
		{"formCount", func(m Metrics) float64 { return float64(m.FormCount) }, 1, 2, 4},
	},
	"data": {
		{"inputCount", func(m Metrics) float64 { return float64(m.InputCount) }, 2, 5, 9},
		{"formCount", func(m Metrics) float64 { return float64(m.FormCount) }, 1, 2, 3},
	},
	"state": {
		{"componentCount", func(m Metrics) float64 { return float64(m.ComponentCount) }, 3, 6, 12},
		{"inputCount", func(m Metrics) float64 { return float64(m.InputCount) }, 2, 4, 8},
	},
	"integration": {
		{"autoLayoutCount", func(m Metrics) float64 { return float64(m.AutoLayoutCount) }, 2, 5, 10},
		{"complexConstraintCount", func(m Metrics) float64 { return float64(m.ComplexConstraintCount) }, 1, 3, 6},
	},
}

// factorWeights are the fixed weights for the overall score. They sum to 1.
var factorWeights = map[string]float64{
	"visual":      0.2,
	"interaction": 0.3,
	"data":        0.2,
	"state":       0.2,
	"integration": 0.1,
}

// baseHours are the development-time baselines per overall level.
var baseHours = map[Level]float64{
	LevelSimple:     8,
	LevelMedium:     24,
	LevelComplex:    56,
	LevelEnterprise: 120,
}

// architectureTable keys a recommendation on (framework, level). Unrecognized
// frameworks or levels fall back to the component-based default.
var architectureTable = map[string]map[Level]string{
	"react": {
		LevelSimple:     "component-based",
		LevelMedium:     "component-based with custom hooks",
		LevelComplex:    "feature-sliced with context providers",
		LevelEnterprise: "micro-frontends with module federation",
	},
	"vue": {
		LevelSimple:     "component-based",
		LevelMedium:     "composables with single-file components",
		LevelComplex:    "feature modules with pinia stores",
		LevelEnterprise: "micro-frontends with module federation",
	},
	"angular": {
		LevelSimple:     "component-based",
		LevelMedium:     "feature modules with services",
		LevelComplex:    "standalone components with signal stores",
		LevelEnterprise: "nx workspace with domain libraries",
	},
	"svelte": {
		LevelSimple:     "component-based",
		LevelMedium:     "component-based with stores",
		LevelComplex:    "route-based modules with shared stores",
		LevelEnterprise: "micro-frontends with module federation",
	},
}

const defaultArchitecture = "component-based"

// scoreOrdinal reduces a metric value to an ordinal 0-3 against its thresholds.
func scoreOrdinal(v, low, medium, high float64) float64 {
	switch {
	case v > high:
		return 3
	case v > medium:
		return 2
	case v > low:
		return 1
	default:
		return 0
	}
}

// scoreFactor averages the ordinal scores of a factor's metrics and scales the
// average onto a 0-10 range. Confidence is the fraction of metrics that
// actually measured something.
func scoreFactor(m Metrics, defs []factorMetric) Factor {
	if len(defs) == 0 {
		return Factor{Level: LevelSimple}
	}

	var sum float64
	present := 0
	for _, def := range defs {
		v := def.value(m)
		if v > 0 {
			present++
		}
		sum += scoreOrdinal(v, def.low, def.medium, def.high)
	}

	score := sum / float64(len(defs)) * 10 / 3
	return Factor{
		Score:      score,
		Level:      levelForScore(score),
		Confidence: float64(present) / float64(len(defs)),
	}
}

// overallScore is the weighted sum of the factor scores, rounded to the
// nearest integer.
func overallScore(factors map[string]Factor) int {
	var sum float64
	for name, f := range factors {
		sum += factorWeights[name] * f.Score
	}
	return int(math.Round(sum))
}

// levelForScore maps a 0-10 score onto the fixed complexity bands.
func levelForScore(score float64) Level {
	switch {
	case score < 3:
		return LevelSimple
	case score < 6:
		return LevelMedium
	case score < 8:
		return LevelComplex
	default:
		return LevelEnterprise
	}
}

// estimate projects development hours from the overall level, then applies the
// factor surcharges multiplicatively: +30% for interaction above 7, +20% for
// visual above 8, +15% for data above 6.
func estimate(level Level, factors map[string]Factor, m Metrics) Estimate {
	hours := baseHours[level]

	if factors["interaction"].Score > 7 {
		hours *= 1.3
	}
	if factors["visual"].Score > 8 {
		hours *= 1.2
	}
	if factors["data"].Score > 6 {
		hours *= 1.15
	}

	return Estimate{
		TotalHours:    hours,
		Development:   hours * 0.6,
		Testing:       hours * 0.2,
		Optimization:  hours * 0.1,
		Documentation: hours * 0.1,
		Confidence:    metricCompleteness(m),
	}
}

// metricCompleteness is the fraction of structural metrics that measured a
// non-zero value, used as the estimate confidence.
func metricCompleteness(m Metrics) float64 {
	present := 0
	for _, v := range []int{
		m.ElementCount, m.ComponentCount, m.MaxDepth, m.AutoLayoutCount,
		m.ComplexConstraintCount, m.FormCount, m.InputCount,
	} {
		if v > 0 {
			present++
		}
	}
	return float64(present) / 7
}

// RecommendArchitecture looks up the architecture pattern for a framework and
// complexity level, defaulting to component-based.
func RecommendArchitecture(framework string, level Level) string {
	if byLevel, ok := architectureTable[framework]; ok {
		if pattern, ok := byLevel[level]; ok {
			return pattern
		}
	}
	return defaultArchitecture
}
