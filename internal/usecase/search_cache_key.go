package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

const (
	JobsListPrefix      = "jobs:list:"
	JobsSearchPrefix    = "jobs:search:"
	CoursesListPrefix   = "courses:list:"
	CoursesSearchPrefix = "courses:search:"
)

// NormalizeSearchValue lowercases s and collapses its whitespace.
func NormalizeSearchValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	s = strings.Join(strings.Fields(s), " ")
	return s
}

// NormalizeList normalizes every item and drops blanks.
func NormalizeList(items []string) []string {
	out := make([]string, 0, len(items))
	for _, s := range items {
		s = NormalizeSearchValue(s)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// CacheKey hashes params into a key under prefix. Callers normalize params
// first so equivalent queries share an entry.
func CacheKey(prefix string, params any) string {
	b, _ := json.Marshal(params)
	sum := sha256.Sum256(b)
	return prefix + hex.EncodeToString(sum[:])
}
