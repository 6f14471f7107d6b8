package search

import (
	"strings"
	"unicode"
)

const maxVariants = 8

type QueryContext struct {
	Original   string
	Normalized string
	Variants   []string
}

// NormalizeQuery lowercases, drops punctuation and collapses whitespace.
// It is only used to look up synonyms; matching uses the raw text.
func NormalizeQuery(input string) string {
	input = strings.ToLower(strings.TrimSpace(input))
	if input == "" {
		return ""
	}

	b := strings.Builder{}
	b.Grow(len(input))
	for _, r := range input {
		switch {
		case unicode.IsLetter(r) || unicode.IsNumber(r):
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-' || r == '/':
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// ExpandQuery returns original first, then synonym phrases for the whole
// normalized query, for its compact form ("fullstack" -> "full stack"), and
// for a leading one- or two-word phrase with the remaining words kept.
func ExpandQuery(original, normalized string) []string {
	out := make([]string, 0, maxVariants)
	seen := make(map[string]struct{}, maxVariants)
	add := func(s string) {
		s = strings.TrimSpace(s)
		if s == "" {
			return
		}
		key := strings.ToLower(s)
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, s)
	}

	add(original)
	if normalized == "" {
		return out
	}
	add(normalized)
	for _, syn := range GetSynonyms(normalized) {
		add(syn)
	}

	words := strings.Fields(normalized)
	if len(words) == 1 {
		for k, syns := range Synonyms {
			if strings.Contains(k, " ") && strings.ReplaceAll(k, " ", "") == words[0] {
				add(k)
				for _, syn := range syns {
					add(syn)
				}
			}
		}
	}

	withRest := func(phrase string, rest []string) {
		tail := strings.Join(rest, " ")
		for _, syn := range GetSynonyms(phrase) {
			add(strings.TrimSpace(syn + " " + tail))
		}
	}
	if len(words) >= 2 {
		withRest(words[0], words[1:])
	}
	if len(words) >= 3 {
		withRest(words[0]+" "+words[1], words[2:])
	}

	if len(out) > maxVariants {
		out = out[:maxVariants]
	}
	return out
}

func ProcessQuery(input string) QueryContext {
	original := strings.TrimSpace(input)
	normalized := NormalizeQuery(original)
	if original == "" {
		return QueryContext{Variants: []string{}}
	}
	return QueryContext{
		Original:   original,
		Normalized: normalized,
		Variants:   ExpandQuery(original, normalized),
	}
}
