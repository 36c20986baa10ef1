package mnemonic

import (
	"math"
	"regexp"
	"strings"

	"github.com/agnivade/levenshtein"
)

var (
	whitespaceRegex   = regexp.MustCompile(`\s+`)
	numberedListRegex = regexp.MustCompile(`(?m)^\s*\d+[\.\)\:]\s*`)
	bulletListRegex   = regexp.MustCompile(`(?m)^\s*[-*•]\s*`)
)

// Normalize cleans operator-transcribed share/seed input: lowercases,
// strips numbered-list and bullet prefixes, turns commas into spaces,
// and collapses whitespace. Forensic recovery input is routinely
// copy-pasted out of a numbered backup sheet, so this runs ahead of
// every decode.
func Normalize(input string) string {
	input = strings.ToLower(input)
	input = numberedListRegex.ReplaceAllString(input, " ")
	input = bulletListRegex.ReplaceAllString(input, " ")
	input = strings.ReplaceAll(input, ",", " ")
	input = whitespaceRegex.ReplaceAllString(input, " ")
	return strings.TrimSpace(input)
}

// MaxTypoDistance bounds how far a word may be from a wordlist entry and
// still be offered as a suggestion.
const MaxTypoDistance = 2

// TypoInfo describes one word that failed wordlist membership.
type TypoInfo struct {
	Index      int
	Word       string
	Suggestion string
	Distance   int
}

// IsValidWord reports whether word (case-insensitive) is in the wordlist.
func IsValidWord(word string) bool {
	_, ok := wordIndex[strings.ToLower(word)]
	return ok
}

// SuggestWord returns the closest wordlist entry to input by Levenshtein
// distance, or "" if nothing is within MaxTypoDistance.
func SuggestWord(input string) string {
	input = strings.ToLower(input)

	minDist := math.MaxInt
	var suggestion string

	for _, word := range wordlist {
		dist := levenshtein.ComputeDistance(input, word)
		if dist == 0 {
			return word
		}
		if dist < minDist {
			minDist = dist
			suggestion = word
		}
	}

	if minDist <= MaxTypoDistance {
		return suggestion
	}
	return ""
}

// DetectTypos scans a raw phrase and reports every word absent from the
// wordlist along with its best suggestion.
func DetectTypos(phrase string) []TypoInfo {
	if phrase == "" {
		return nil
	}

	words := strings.Fields(Normalize(phrase))
	var typos []TypoInfo

	for i, word := range words {
		if IsValidWord(word) {
			continue
		}
		suggestion := SuggestWord(word)
		distance := 0
		if suggestion != "" {
			distance = levenshtein.ComputeDistance(word, suggestion)
		}
		typos = append(typos, TypoInfo{Index: i, Word: word, Suggestion: suggestion, Distance: distance})
	}

	return typos
}

// FormatTypoSuggestions renders DetectTypos output for CLI display.
func FormatTypoSuggestions(typos []TypoInfo) string {
	if len(typos) == 0 {
		return ""
	}

	var b strings.Builder
	for i, typo := range typos {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("word ")
		b.WriteString(itoa(typo.Index + 1))
		b.WriteString(": '")
		b.WriteString(typo.Word)
		b.WriteByte('\'')
		if typo.Suggestion != "" {
			b.WriteString(" - did you mean '")
			b.WriteString(typo.Suggestion)
			b.WriteString("'?")
		} else {
			b.WriteString(" is not a valid wordlist entry")
		}
	}
	return b.String()
}
