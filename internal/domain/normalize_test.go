package domain

import (
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		lang     Language
		expected string
	}{
		{
			name:     "trim and lowercase",
			raw:      "  The Dark Knight  ",
			lang:     LanguageEnglish,
			expected: "the dark knight",
		},
		{
			name:     "misspelling corrected",
			raw:      "acton",
			lang:     LanguageEnglish,
			expected: "action",
		},
		{
			name:     "misspelling corrected inside phrase",
			raw:      "best acton movies",
			lang:     LanguageEnglish,
			expected: "best action movies",
		},
		{
			name:     "kinyarwanda with explicit hint",
			raw:      "filimi",
			lang:     LanguageKinyarwanda,
			expected: "movie",
		},
		{
			name:     "kinyarwanda auto-detected via indicator",
			raw:      "filimi ubukana",
			lang:     LanguageAuto,
			expected: "movie action",
		},
		{
			name:     "kinyarwanda not applied without hint or indicator",
			raw:      "dark knight",
			lang:     LanguageAuto,
			expected: "dark knight",
		},
		{
			name:     "punctuation stripped",
			raw:      "spider-man: far, far away!",
			lang:     LanguageEnglish,
			expected: "spider-man far far away",
		},
		{
			name:     "whitespace collapsed",
			raw:      "star \t  wars",
			lang:     LanguageEnglish,
			expected: "star wars",
		},
		{
			name:     "empty input",
			raw:      "",
			lang:     LanguageAuto,
			expected: "",
		},
		{
			name:     "whitespace only",
			raw:      "   ",
			lang:     LanguageAuto,
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw, tt.lang)
			if got != tt.expected {
				t.Errorf("Normalize(%q, %q) = %q, want %q", tt.raw, tt.lang, got, tt.expected)
			}
		})
	}
}

// Normalization must be idempotent: running it twice yields the same string.
func TestNormalize_Idempotent(t *testing.T) {
	queries := []string{
		"Acton Movies!",
		"filimi z'urukundo",
		"  The   GODFATHER  ",
		"comdy",
		"spider-man",
		"",
	}

	for _, q := range queries {
		for _, lang := range []Language{LanguageEnglish, LanguageKinyarwanda, LanguageAuto} {
			once := Normalize(q, lang)
			twice := Normalize(once, lang)
			if once != twice {
				t.Errorf("Normalize not idempotent for %q (%s): %q != %q", q, lang, once, twice)
			}
		}
	}
}

func TestCorrectSpelling(t *testing.T) {
	if fixed, ok := CorrectSpelling("Acton"); !ok || fixed != "action" {
		t.Errorf("CorrectSpelling(Acton) = %q, %v; want action, true", fixed, ok)
	}
	if _, ok := CorrectSpelling("action"); ok {
		t.Error("CorrectSpelling(action) should not match: already canonical")
	}
}

func TestVowelVariants(t *testing.T) {
	tests := []struct {
		name  string
		query string
		max   int
		count int
	}{
		{"short query yields variants", "actn", 3, 3},
		{"respects max", "cat", 2, 2},
		{"no vowels no variants", "xyz", 3, 0},
		{"too long yields nothing", "avengers", 3, 0},
		{"empty yields nothing", "", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := VowelVariants(tt.query, tt.max)
			if len(got) != tt.count {
				t.Errorf("VowelVariants(%q, %d) returned %d variants (%v), want %d",
					tt.query, tt.max, len(got), got, tt.count)
			}
		})
	}
}

func TestVowelVariants_SubstitutesEachVowel(t *testing.T) {
	got := VowelVariants("cat", 4)
	want := []string{"cet", "cit", "cot", "cut"}
	if len(got) != len(want) {
		t.Fatalf("VowelVariants(cat, 4) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("variant[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
