package formatter

import (
	"fmt"
	"sort"
	"strings"

	figmacontext "github.com/hellenic-development/figma-context"
	"github.com/hellenic-development/figma-context/pkg/complexity"
	"github.com/hellenic-development/figma-context/pkg/styles"
)

// ToMarkdown transforms an extracted design context into a well-formatted
// markdown document. The output includes CSS variable definitions for colors,
// typography, spacing, and shadows, the detected semantic regions, the
// accessibility report, and a layout summary, ready to be integrated into a
// design system or CSS framework.
func ToMarkdown(ctx *figmacontext.Context) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("# Design Context - %s\n\n", ctx.File.Name))
	sb.WriteString(fmt.Sprintf("Extracted %d nodes with overall confidence %.2f.\n\n",
		len(ctx.Nodes), ctx.Extraction.Confidence))
	if ctx.Extraction.Error != "" {
		sb.WriteString(fmt.Sprintf("> Extraction degraded: %s\n\n", ctx.Extraction.Error))
	}

	writeStyleSystem(&sb, ctx.Styles)
	writeTokens(&sb, ctx.DesignTokens)
	writeSemantics(&sb, ctx.Semantics)
	writeAccessibility(&sb, ctx.Accessibility)
	writeLayout(&sb, ctx)

	return sb.String()
}

func writeStyleSystem(sb *strings.Builder, sys *styles.StyleSystem) {
	if sys == nil {
		return
	}

	sb.WriteString("## Design System\n\n")

	if len(sys.Palette) > 0 {
		sb.WriteString("### Color Palette\n\n")
		sb.WriteString("```css\n")
		byCategory := map[string][]*styles.ColorEntry{}
		for _, hex := range sortedKeys(sys.Palette) {
			entry := sys.Palette[hex]
			byCategory[entry.Category] = append(byCategory[entry.Category], entry)
		}
		for _, category := range []string{
			styles.CategoryPrimary, styles.CategorySecondary, styles.CategoryNeutral,
			styles.CategorySemantic, styles.CategoryAccent, "",
		} {
			entries := byCategory[category]
			if len(entries) == 0 {
				continue
			}
			label := category
			if label == "" {
				label = "uncategorized"
			}
			sb.WriteString(fmt.Sprintf("/* %s colors */\n", label))
			for i, entry := range entries {
				cssName := toKebabCase(entry.Name)
				if cssName == "" {
					cssName = fmt.Sprintf("%s-%d", label, i+1)
				}
				sb.WriteString(fmt.Sprintf("--color-%s: %s;\n", cssName, entry.Hex))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")
	}

	if len(sys.Fonts) > 0 {
		sb.WriteString("### Typography\n\n")
		sb.WriteString("```css\n")
		for _, key := range sortedKeys(sys.Fonts) {
			font := sys.Fonts[key]
			sb.WriteString(fmt.Sprintf("--text-%s: %.0fpx/%.0f '%s';\n",
				toKebabCase(key), font.Size, font.Weight, font.Family))
		}
		sb.WriteString("```\n\n")
	}

	if len(sys.Spacing) > 0 {
		sb.WriteString("### Spacing\n\n")
		sb.WriteString("```css\n")
		for _, key := range sortedKeys(sys.Spacing) {
			token := sys.Spacing[key]
			sb.WriteString(fmt.Sprintf("--space-%s: %.0fpx;\n", toKebabCase(key), token.Value))
		}
		sb.WriteString("```\n\n")
	}

	if len(sys.Shadows) > 0 {
		sb.WriteString("### Shadows\n\n")
		sb.WriteString("```css\n")
		for i, key := range sortedKeys(sys.Shadows) {
			shadow := sys.Shadows[key]
			name := toKebabCase(shadow.Name)
			if name == "" {
				name = fmt.Sprintf("shadow-%d", i+1)
			}
			value := fmt.Sprintf("%.0fpx %.0fpx %.0fpx", shadow.X, shadow.Y, shadow.Blur)
			if shadow.Spread > 0 {
				value += fmt.Sprintf(" %.0fpx", shadow.Spread)
			}
			value += " " + shadow.Color
			sb.WriteString(fmt.Sprintf("--shadow-%s: %s;\n", name, value))
		}
		sb.WriteString("```\n\n")
	}
}

func writeTokens(sb *strings.Builder, tokens figmacontext.DesignTokens) {
	if len(tokens.Components) == 0 {
		return
	}
	sb.WriteString("## Components\n\n")
	for _, name := range tokens.Components {
		sb.WriteString(fmt.Sprintf("- %s\n", name))
	}
	sb.WriteString("\n")
}

func writeSemantics(sb *strings.Builder, regions []figmacontext.SemanticRegion) {
	if len(regions) == 0 {
		return
	}
	sb.WriteString("## Detected Regions\n\n")
	sb.WriteString("| Region | Intent | Confidence |\n")
	sb.WriteString("|--------|--------|------------|\n")
	for _, region := range regions {
		sb.WriteString(fmt.Sprintf("| %s | %s | %.1f |\n",
			region.Name, region.Intent, region.Confidence))
	}
	sb.WriteString("\n")
}

func writeAccessibility(sb *strings.Builder, report figmacontext.AccessibilityReport) {
	sb.WriteString("## Accessibility\n\n")
	sb.WriteString(fmt.Sprintf("- **Compliant color pairs** (WCAG AA): %d\n", len(report.Contrast.Compliant)))
	sb.WriteString(fmt.Sprintf("- **Violations**: %d\n", len(report.Contrast.Violations)))
	sb.WriteString(fmt.Sprintf("- **Text nodes**: %d (%d below 12px)\n\n",
		report.TextNodeCount, report.SmallTextCount))

	if len(report.Contrast.Violations) > 0 {
		sb.WriteString("| Foreground | Background | Ratio |\n")
		sb.WriteString("|------------|------------|-------|\n")
		for _, pair := range report.Contrast.Violations {
			sb.WriteString(fmt.Sprintf("| `%s` | `%s` | %.2f |\n", pair.ColorA, pair.ColorB, pair.Ratio))
		}
		sb.WriteString("\n")
	}
}

func writeLayout(sb *strings.Builder, ctx *figmacontext.Context) {
	if ctx.Layout == nil {
		return
	}
	sb.WriteString("## Layout Specifications\n\n")
	if ctx.Layout.HeaderHeight > 0 {
		sb.WriteString(fmt.Sprintf("- **Header Height**: %.0fpx\n", ctx.Layout.HeaderHeight))
	}
	if ctx.Layout.SidebarWidth > 0 {
		sb.WriteString(fmt.Sprintf("- **Sidebar Width**: %.0fpx\n", ctx.Layout.SidebarWidth))
	}
	if ctx.Layout.ContentPadding > 0 {
		sb.WriteString(fmt.Sprintf("- **Content Padding**: %.0fpx\n", ctx.Layout.ContentPadding))
	}
	sb.WriteString(fmt.Sprintf("- **Auto-layout frames**: %d (%d horizontal, %d vertical)\n",
		ctx.Layout.AutoLayoutFrames, ctx.Layout.HorizontalFrames, ctx.Layout.VerticalFrames))
	if ctx.Prototypes != nil && len(ctx.Prototypes.Transitions) > 0 {
		sb.WriteString(fmt.Sprintf("- **Prototype transitions**: %d across %d screens\n",
			len(ctx.Prototypes.Transitions), ctx.Prototypes.ScreenCount))
	}
	sb.WriteString("\n")
}

// ComplexityToMarkdown renders the engineering-complexity report.
func ComplexityToMarkdown(report *complexity.Report) string {
	var sb strings.Builder

	sb.WriteString("# Complexity Assessment\n\n")
	sb.WriteString(fmt.Sprintf("Overall: **%s** (score %d/10)\n\n",
		report.OverallLevel, report.OverallScore))

	sb.WriteString("| Factor | Score | Level |\n")
	sb.WriteString("|--------|-------|-------|\n")
	for _, name := range sortedKeys(report.Factors) {
		factor := report.Factors[name]
		sb.WriteString(fmt.Sprintf("| %s | %.1f | %s |\n", name, factor.Score, factor.Level))
	}
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("- **Architecture**: %s\n", report.Architecture))
	sb.WriteString(fmt.Sprintf("- **State management**: %s\n", report.StateManagement))
	sb.WriteString(fmt.Sprintf("- **Estimate**: %.0fh total (%.0fh development, %.0fh testing)\n\n",
		report.Estimate.TotalHours, report.Estimate.Development, report.Estimate.Testing))

	if len(report.Recommendations) > 0 {
		sb.WriteString("## Recommendations\n\n")
		for _, rec := range report.Recommendations {
			sb.WriteString(fmt.Sprintf("- %s\n", rec))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// toKebabCase converts a string to kebab-case format (lowercase with hyphens).
// This is used for generating CSS variable names from Figma style names.
// Special characters are removed, and spaces/underscores are replaced with hyphens.
func toKebabCase(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "_", "-")
	s = strings.ReplaceAll(s, "/", "-")

	var result strings.Builder
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '-' {
			result.WriteRune(r)
		}
	}

	return result.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
