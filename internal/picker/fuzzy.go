// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package picker

import (
	"strings"
	"unicode"
)

// =============================================================================
// FUZZY MATCHING
// =============================================================================

// fuzzyMatch performs fuzzy matching between a query and a target string.
// Returns a score (higher is better) and whether the match succeeded.
//
// Matching rules:
//   - Each character in query must appear in order in target
//   - Consecutive matches get bonus points
//   - Matches at word boundaries get bonus points
//   - Matches at start of string get bonus points
//   - Case-insensitive matching
//
// Examples:
//   - "mn" matches "main.go" with high score (start + boundary)
//   - "srv" matches "server/handler.go" (non-consecutive)
//   - "xyz" does not match "main.go"
func fuzzyMatch(query, target string) (score int, matched bool) {
	if query == "" {
		return 0, true
	}

	queryRunes := []rune(strings.ToLower(query))
	targetRunes := []rune(strings.ToLower(target))

	if len(queryRunes) > len(targetRunes) {
		return 0, false
	}

	// Pre-convert original strings to runes for case matching
	targetOrigRunes := []rune(target)
	queryOrigRunes := []rune(query)

	queryPos := 0
	score = 0
	lastMatchPos := -1

	for targetPos := 0; targetPos < len(targetRunes) && queryPos < len(queryRunes); targetPos++ {
		if targetRunes[targetPos] == queryRunes[queryPos] {
			matchScore := 1

			// Bonus for consecutive matches
			if lastMatchPos == targetPos-1 {
				matchScore += 5
			}

			// Bonus for match at start of target
			if targetPos == 0 {
				matchScore += 10
			}

			// Bonus for match at word boundary
			if isWordBoundary(targetRunes, targetPos) {
				matchScore += 7
			}

			// Bonus for exact case match
			if targetPos < len(targetOrigRunes) && queryPos < len(queryOrigRunes) {
				if targetOrigRunes[targetPos] == queryOrigRunes[queryPos] {
					matchScore += 2
				}
			}

			score += matchScore
			lastMatchPos = targetPos
			queryPos++
		}
	}

	matched = queryPos == len(queryRunes)

	// Penalty for longer targets (shorter strings are better matches)
	if matched {
		score -= len(targetRunes) / 4
	}

	return score, matched
}

// isWordBoundary returns true if the position is at a word boundary.
// A word boundary is:
//   - After a space, slash, dot, dash, or underscore
//   - After a lowercase letter followed by an uppercase letter (camelCase)
func isWordBoundary(runes []rune, pos int) bool {
	if pos == 0 {
		return true
	}

	if pos >= len(runes) {
		return false
	}

	prev := runes[pos-1]

	if prev == ' ' || prev == '/' || prev == '.' || prev == '-' || prev == '_' {
		return true
	}

	if unicode.IsLower(prev) && unicode.IsUpper(runes[pos]) {
		return true
	}

	return false
}

// HighlightMatch returns the positions of matched characters for styling.
func HighlightMatch(query, target string) (positions []int) {
	if query == "" {
		return nil
	}

	queryRunes := []rune(strings.ToLower(query))
	targetRunes := []rune(strings.ToLower(target))

	queryPos := 0
	for targetPos := 0; targetPos < len(targetRunes) && queryPos < len(queryRunes); targetPos++ {
		if targetRunes[targetPos] == queryRunes[queryPos] {
			positions = append(positions, targetPos)
			queryPos++
		}
	}

	if queryPos != len(queryRunes) {
		return nil
	}
	return positions
}
