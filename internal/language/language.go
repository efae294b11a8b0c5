// Package language classifies contract sources as FunC or Tact. The
// classification is attached to the report once, upstream of the audit
// pipeline, and never re-derived from the model's output.
package language

import (
	"path/filepath"
	"strings"

	"github.com/ripgtxgt/ton-audit-ai/internal/models"
)

// extensions maps known filename extensions to a language.
var extensions = map[string]models.Language{
	".fc":   models.LanguageFunc,
	".func": models.LanguageFunc,
	".tact": models.LanguageTact,
}

// funcMarkers are content fragments characteristic of FunC source.
var funcMarkers = []string{
	"recv_internal",
	"recv_external",
	"impure",
	"#include",
	"slice ",
	"cell ",
}

// tactMarkers are content fragments characteristic of Tact source.
var tactMarkers = []string{
	"contract ",
	"receive(",
	"init(",
	"import \"@stdlib",
	"fun ",
	"trait ",
}

// Detect classifies a contract by filename extension first, falling back
// to content heuristics when the extension is absent or unknown.
func Detect(filename, source string) models.Language {
	if lang, ok := extensions[strings.ToLower(filepath.Ext(filename))]; ok {
		return lang
	}
	return detectByContent(source)
}

// detectByContent scores marker hits per language and picks the winner.
// FunC's line comments (";;") are a strong signal on their own.
func detectByContent(source string) models.Language {
	funcScore := 0
	tactScore := 0

	for _, m := range funcMarkers {
		if strings.Contains(source, m) {
			funcScore++
		}
	}
	for _, m := range tactMarkers {
		if strings.Contains(source, m) {
			tactScore++
		}
	}

	if strings.Contains(source, ";;") {
		funcScore += 2
	}

	switch {
	case funcScore == 0 && tactScore == 0:
		return models.LanguageUnknown
	case funcScore >= tactScore:
		return models.LanguageFunc
	default:
		return models.LanguageTact
	}
}
