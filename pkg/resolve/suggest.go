package resolve

import "github.com/platinummonkey/cog/pkg/schema"

// suggestFlag returns the declared flag closest to an unknown token, or ""
// when nothing is within edit distance 2.
func suggestFlag(s *schema.Schema, unknown string) string {
	const maxDistance = 2

	best := ""
	bestDist := maxDistance + 1
	for _, arg := range s.Args() {
		for _, flag := range arg.Flags {
			if d := levenshtein(unknown, flag); d < bestDist {
				best, bestDist = flag, d
			}
		}
	}
	return best
}

func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	cur := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		cur[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			cur[j] = min(prev[j]+1, cur[j-1]+1, prev[j-1]+cost)
		}
		prev, cur = cur, prev
	}
	return prev[len(rb)]
}
