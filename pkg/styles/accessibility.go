package styles

import (
	"math"
	"sort"
)

// WCAGAAThreshold is the minimum contrast ratio for WCAG AA normal text.
const WCAGAAThreshold = 4.5

// ContrastPair is one unordered pair of palette colors with its contrast ratio
// rounded to two decimals.
type ContrastPair struct {
	ColorA string  `json:"colorA"`
	ColorB string  `json:"colorB"`
	Ratio  float64 `json:"ratio"`
}

// ContrastReport lists every palette pair classified against WCAG AA.
type ContrastReport struct {
	Compliant  []ContrastPair `json:"compliant"`
	Violations []ContrastPair `json:"violations"`
}

// RelativeLuminance computes the perceptual brightness of an sRGB color with
// channel values in [0,1], using the sRGB linearization curve.
func RelativeLuminance(rgb [3]float64) float64 {
	r := linearize(rgb[0])
	g := linearize(rgb[1])
	b := linearize(rgb[2])
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func linearize(c float64) float64 {
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// ContrastRatio computes the WCAG contrast ratio between two colors. The
// result ranges from 1 (identical) to 21 (black on white).
func ContrastRatio(a, b [3]float64) float64 {
	la := RelativeLuminance(a)
	lb := RelativeLuminance(b)
	lighter := math.Max(la, lb)
	darker := math.Min(la, lb)
	return (lighter + 0.05) / (darker + 0.05)
}

// AnalyzeContrast evaluates every unordered pair of distinct palette colors
// and classifies each as compliant (ratio >= 4.5) or a violation. Pairs are
// emitted in stable hex order.
func AnalyzeContrast(palette map[string]*ColorEntry) ContrastReport {
	keys := make([]string, 0, len(palette))
	for hex := range palette {
		keys = append(keys, hex)
	}
	sort.Strings(keys)

	report := ContrastReport{
		Compliant:  []ContrastPair{},
		Violations: []ContrastPair{},
	}

	for i := 0; i < len(keys); i++ {
		for j := i + 1; j < len(keys); j++ {
			a := palette[keys[i]]
			b := palette[keys[j]]

			ratio := ContrastRatio(a.RGB, b.RGB)
			pair := ContrastPair{
				ColorA: a.Hex,
				ColorB: b.Hex,
				Ratio:  math.Round(ratio*100) / 100,
			}

			if pair.Ratio >= WCAGAAThreshold {
				report.Compliant = append(report.Compliant, pair)
			} else {
				report.Violations = append(report.Violations, pair)
			}
		}
	}

	return report
}
