// Package keywords normalizes LLM-extracted search keywords. The extraction
// service is treated as opaque and possibly malformed input.
package keywords

import (
	"strings"
	"unicode"
)

const (
	minLen = 2
	maxLen = 15
	maxN   = 5
	minN   = 4
)

// fillTerms top up a short keyword list; Fallback replaces a failed one.
var fillTerms = []string{"businessman", "office", "meeting", "professional", "boardroom"}

var fallbackTerms = []string{"businessman", "office", "meeting", "boardroom", "executive"}

// Clean lower-cases, strips punctuation and keeps only 2-15 character
// alphabetic tokens, deduplicated in input order and capped at 5.
func Clean(raw []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, maxN)
	for _, kw := range raw {
		kw = strings.ToLower(strings.TrimSpace(kw))
		kw = strings.Map(func(r rune) rune {
			switch r {
			case '"', '\'', '.', ',', '`':
				return -1
			}
			return r
		}, kw)
		if len(kw) < minLen || len(kw) > maxLen || !isAlpha(kw) {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
		if len(out) == maxN {
			break
		}
	}
	return out
}

// Fill tops the list up to at least 4 keywords with proven stock-search
// terms, capped at 5.
func Fill(kws []string) []string {
	for _, f := range fillTerms {
		if len(kws) >= minN {
			break
		}
		if !contains(kws, f) {
			kws = append(kws, f)
		}
	}
	if len(kws) > maxN {
		kws = kws[:maxN]
	}
	return kws
}

// Fallback is the deterministic keyword list used when extraction fails
// outright.
func Fallback() []string {
	out := make([]string, len(fallbackTerms))
	copy(out, fallbackTerms)
	return out
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
