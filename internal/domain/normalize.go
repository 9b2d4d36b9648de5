package domain

import (
	"regexp"
	"strings"
)

// misspellings maps common movie-domain typos to their canonical spelling.
// Applied as whole-word substitution before any other normalization step.
var misspellings = map[string]string{
	"acton":      "action",
	"actoin":     "action",
	"comdy":      "comedy",
	"commedy":    "comedy",
	"horor":      "horror",
	"horrer":     "horror",
	"thriler":    "thriller",
	"triller":    "thriller",
	"advanture":  "adventure",
	"adventur":   "adventure",
	"romanc":     "romance",
	"romantc":    "romance",
	"docmentary": "documentary",
	"documentry": "documentary",
	"moive":      "movie",
	"muvie":      "movie",
	"movei":      "movie",
	"serie":      "series",
	"siries":     "series",
	"drame":      "drama",
	"siensi":     "science",
	"fantacy":    "fantasy",
	"misteri":    "mystery",
	"mistery":    "mystery",
}

// kinyarwandaTerms maps Kinyarwanda movie-domain vocabulary to canonical
// English search terms. Applied when the language hint is "rw" or the query
// contains any indicator token.
var kinyarwandaTerms = map[string]string{
	"filimi":    "movie",
	"filime":    "movie",
	"amafilime": "movies",
	"amashusho": "videos",
	"urwenya":   "comedy",
	"ubwoba":    "horror",
	"ubukana":   "action",
	"urukundo":  "romance",
	"ikinamico": "drama",
	"intambara": "war",
	"umuziki":   "music",
	"amateka":   "history",
	"ubumenyi":  "science",
	"indirimbo": "songs",
	"abana":     "kids",
}

// kinyarwandaIndicators are tokens whose presence flips auto-detection to
// Kinyarwanda even without an explicit language hint.
var kinyarwandaIndicators = map[string]struct{}{
	"filimi":    {},
	"filime":    {},
	"amafilime": {},
	"amashusho": {},
	"urwenya":   {},
	"ubwoba":    {},
	"ubukana":   {},
	"urukundo":  {},
	"ikinamico": {},
	"intambara": {},
	"umuziki":   {},
	"amateka":   {},
	"indirimbo": {},
}

var (
	nonWordRe    = regexp.MustCompile(`[^a-z0-9_\s-]+`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize canonicalizes raw query text for retrieval: trim and lowercase,
// correct known misspellings word-by-word, translate Kinyarwanda movie
// vocabulary when hinted or detected, strip anything outside word, space and
// hyphen characters, and collapse whitespace.
//
// The function is pure, total (empty in, empty out) and idempotent.
func Normalize(raw string, lang Language) string {
	q := strings.ToLower(strings.TrimSpace(raw))
	if q == "" {
		return ""
	}

	words := strings.Fields(q)
	for i, w := range words {
		if fixed, ok := misspellings[w]; ok {
			words[i] = fixed
		}
	}

	if lang == LanguageKinyarwanda || containsKinyarwanda(words) {
		for i, w := range words {
			if en, ok := kinyarwandaTerms[w]; ok {
				words[i] = en
			}
		}
	}

	q = strings.Join(words, " ")
	q = nonWordRe.ReplaceAllString(q, "")
	q = whitespaceRe.ReplaceAllString(q, " ")

	return strings.TrimSpace(q)
}

// DetectLanguage resolves an "auto" language hint by inspecting the query
// for Kinyarwanda indicator tokens.
func DetectLanguage(raw string) Language {
	words := strings.Fields(strings.ToLower(raw))
	if containsKinyarwanda(words) {
		return LanguageKinyarwanda
	}
	return LanguageEnglish
}

// containsKinyarwanda reports whether any token is a known indicator.
func containsKinyarwanda(words []string) bool {
	for _, w := range words {
		if _, ok := kinyarwandaIndicators[w]; ok {
			return true
		}
	}
	return false
}

// CorrectSpelling returns the misspelling-table correction for the literal
// query, if one exists. Used by the suggestion generator.
func CorrectSpelling(query string) (string, bool) {
	fixed, ok := misspellings[strings.ToLower(strings.TrimSpace(query))]
	return fixed, ok
}

const vowels = "aeiou"

// VowelVariants generates spelling variants of a short query by substituting
// each vowel with every other vowel, up to max results. Queries longer than
// five characters yield nothing.
func VowelVariants(query string, max int) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	if len(q) == 0 || len(q) > 5 || max <= 0 {
		return nil
	}

	variants := make([]string, 0, max)
	for i, r := range q {
		if !strings.ContainsRune(vowels, r) {
			continue
		}
		for _, v := range vowels {
			if v == r {
				continue
			}
			variants = append(variants, q[:i]+string(v)+q[i+1:])
			if len(variants) >= max {
				return variants
			}
		}
	}
	return variants
}
