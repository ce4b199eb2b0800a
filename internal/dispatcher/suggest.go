package dispatcher

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// maxSuggestionDistance bounds how far a typo may be from a known action.
const maxSuggestionDistance = 4

// suggestAction returns the known action closest to name, or "" if none is
// within maxSuggestionDistance edits. Comparison is case-insensitive.
func suggestAction(name string, known []string) string {
	name = strings.ToLower(name)

	best := ""
	bestDist := maxSuggestionDistance + 1
	for _, candidate := range known {
		dist := levenshtein.ComputeDistance(name, strings.ToLower(candidate))
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}
