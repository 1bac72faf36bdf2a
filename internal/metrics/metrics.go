// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package metrics scans plain paper text for reported evaluation-metric
// values and for mentions of well-known datasets and model architectures.
package metrics

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Names lists the target metrics in canonical report order.
var Names = []string{
	"accuracy",
	"precision",
	"recall",
	"f1_score",
	"auc_roc",
	"specificity",
	"sensitivity",
	"mae",
	"mse",
	"rmse",
	"bleu",
	"rouge",
}

// bounded marks metrics whose values live in [0,1] and are therefore
// subject to percentage normalization. Error magnitudes and text-generation
// scores are kept raw.
var bounded = map[string]bool{
	"accuracy":    true,
	"precision":   true,
	"recall":      true,
	"f1_score":    true,
	"auc_roc":     true,
	"specificity": true,
	"sensitivity": true,
}

// IsBounded reports whether the named metric is normalized to [0,1].
func IsBounded(name string) bool { return bounded[name] }

// Result holds everything extracted from one paper's text. Empty maps and
// slices are valid results, not errors.
type Result struct {
	// Values maps metric name to its normalized value.
	Values map[string]float64

	// Datasets lists distinct dataset names found, lowercase, sorted.
	Datasets []string

	// Models lists distinct model/architecture names found, lowercase, sorted.
	Models []string
}

const (
	numGroup = `(\d+(?:\.\d+)?)`
	pctGroup = `(\s*%)?`
)

// labelVariants builds the ordered pattern set for one metric label.
// The label must be a non-capturing alternation so the numeric value is
// always capture group 1 and the optional percent sign group 2. Variants
// tolerate label/value ordering, ":"/"="/"of" connectors, and percentage
// vs. fractional notation; value-first requires an explicit percent sign
// to avoid capturing unrelated numbers.
func labelVariants(label string) []*regexp.Regexp {
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b` + label + `\s+(?:of\s+|was\s+|is\s+)` + numGroup + pctGroup),
		regexp.MustCompile(`(?i)\b` + label + `\s*[:=]\s*` + numGroup + pctGroup),
		regexp.MustCompile(`(?i)\b` + label + `\s+` + numGroup + pctGroup),
		regexp.MustCompile(`(?i)` + numGroup + `(\s*%)\s+` + label + `\b`),
	}
}

// patterns holds the ordered pattern variants per metric. Order matters:
// the first variant that matches supplies the value.
var patterns = map[string][]*regexp.Regexp{
	"accuracy":    labelVariants(`(?:accuracy)`),
	"precision":   labelVariants(`(?:precision)`),
	"recall":      labelVariants(`(?:recall)`),
	"f1_score":    labelVariants(`(?:f1[\s-]?score|f[\s-]?score|f1)`),
	"auc_roc":     labelVariants(`(?:auc[\s-]?roc|auroc|auc)`),
	"specificity": labelVariants(`(?:specificity)`),
	"sensitivity": labelVariants(`(?:sensitivity)`),
	"mae":         labelVariants(`(?:mae|mean\s+absolute\s+error)`),
	"mse":         labelVariants(`(?:mse|mean\s+squared\s+error)`),
	"rmse":        labelVariants(`(?:rmse|root\s+mean\s+squared?\s+error)`),
	"bleu":        labelVariants(`(?:bleu(?:[\s-]?[1-4])?)`),
	"rouge":       labelVariants(`(?:rouge(?:[\s-]?[l1-9])?)`),
}

// Extract scans text for metric values and dataset/model mentions.
// Only the first match per metric is kept.
func Extract(text string) Result {
	res := Result{Values: make(map[string]float64)}
	if text == "" {
		return res
	}
	lower := strings.ToLower(text)

	for _, name := range Names {
		for _, re := range patterns[name] {
			m := re.FindStringSubmatch(lower)
			if m == nil {
				continue
			}
			value, err := strconv.ParseFloat(m[1], 64)
			if err != nil {
				continue
			}
			hasPercent := len(m) > 2 && strings.Contains(m[2], "%")
			res.Values[name] = normalize(name, value, hasPercent)
			break
		}
	}

	res.Datasets = findVocab(lower, datasetVocab)
	res.Models = findVocab(lower, modelVocab)
	return res
}

// normalize applies the percentage rule: a value with a percent sign or
// exceeding 1 is a percentage for bounded metrics and is divided by 100.
// Unbounded metrics keep their raw magnitude. A bare value at or below 1
// is taken as an already-normalized fraction; borderline inputs like "0.5"
// where 50% was intended are inherently ambiguous and resolve this way.
func normalize(name string, value float64, hasPercent bool) float64 {
	if !IsBounded(name) {
		return value
	}
	if hasPercent || value > 1 {
		return value / 100
	}
	return value
}

// findVocab returns the sorted distinct vocabulary terms present in the
// lowercased text.
func findVocab(lower string, vocab []string) []string {
	var found []string
	for _, term := range vocab {
		if strings.Contains(lower, term) {
			found = append(found, term)
		}
	}
	sort.Strings(found)
	return found
}
