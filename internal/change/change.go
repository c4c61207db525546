// Package change measures how much a source text moved between two versions
// and decides whether an existing translation can be patched incrementally.
package change

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Default thresholds for incremental translation.
const (
	DefaultMaxDiffPercentage = 50.0
	DefaultMaxTotalLines     = 100
)

// Assessment describes the change between a previous and a current text.
type Assessment struct {
	// Known is false when no previous version was available.
	Known          bool
	DiffPercentage float64
	ChangedLines   int
	TotalLines     int
	// Base is the previous text the assessment was computed against.
	Base string
	// Delta is a unified diff from Base to the current text.
	Delta string
}

// Missing returns the assessment used when the previous version cannot be
// retrieved. It always forces a full translation.
func Missing() Assessment {
	return Assessment{}
}

// Assess compares two texts line by line. Every inserted or deleted line
// counts once and a replaced line counts twice.
func Assess(previous, current string) Assessment {
	prevLines := splitLines(previous)
	curLines := splitLines(current)

	changed := 0
	matcher := difflib.NewMatcher(prevLines, curLines)
	for _, op := range matcher.GetOpCodes() {
		switch op.Tag {
		case 'r':
			changed += (op.I2 - op.I1) + (op.J2 - op.J1)
		case 'd':
			changed += op.I2 - op.I1
		case 'i':
			changed += op.J2 - op.J1
		}
	}

	total := max(len(prevLines), len(curLines))
	pct := 0.0
	if total > 0 {
		pct = float64(changed) / float64(total) * 100
	}

	return Assessment{
		Known:          true,
		DiffPercentage: pct,
		ChangedLines:   changed,
		TotalLines:     total,
		Base:           previous,
		Delta:          unified(prevLines, curLines),
	}
}

func unified(a, b []string) string {
	withNL := func(lines []string) []string {
		out := make([]string, len(lines))
		for i, l := range lines {
			out[i] = l + "\n"
		}
		return out
	}
	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        withNL(a),
		B:        withNL(b),
		FromFile: "previous",
		ToFile:   "current",
		Context:  2,
	})
	if err != nil {
		return ""
	}
	return diff
}

// splitLines splits on line boundaries without keeping terminators. An empty
// text has no lines and a trailing newline does not open a new one.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	if s == "" {
		return nil
	}
	s = strings.TrimSuffix(s, "\n")
	return strings.Split(s, "\n")
}

// Policy holds the thresholds that gate incremental translation.
type Policy struct {
	MaxDiffPercentage float64
	MaxTotalLines     int
}

// DefaultPolicy returns the stock thresholds: under 50% changed and under
// 100 lines.
func DefaultPolicy() Policy {
	return Policy{MaxDiffPercentage: DefaultMaxDiffPercentage, MaxTotalLines: DefaultMaxTotalLines}
}

// Incremental reports whether a change may be applied to an existing
// translation instead of translating from scratch.
func (p Policy) Incremental(a Assessment, hasTranslation bool) bool {
	if !a.Known || !hasTranslation {
		return false
	}
	return a.DiffPercentage < p.MaxDiffPercentage && a.TotalLines < p.MaxTotalLines
}

// Normalize canonicalizes text before hashing or comparison.
func Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// Hash returns the hex SHA-256 of the normalized text.
func Hash(s string) string {
	sum := sha256.Sum256([]byte(Normalize(s)))
	return hex.EncodeToString(sum[:])
}
