package classifier

// MatchRatio returns a similarity in [0,1] between two strings as
// 2*M/T, where M is the total size of the longest matching blocks found
// recursively and T the combined length. This is the cheap second metric
// used to pick a response among a predicted intent's training examples.
func MatchRatio(a, b string) float64 {
	ar := []rune(a)
	br := []rune(b)
	total := len(ar) + len(br)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingSize(ar, br)) / float64(total)
}

func matchingSize(a, b []rune) int {
	ai, bi, n := longestMatch(a, b)
	if n == 0 {
		return 0
	}
	return n + matchingSize(a[:ai], b[:bi]) + matchingSize(a[ai+n:], b[bi+n:])
}

// longestMatch finds the longest common contiguous block between a and b.
func longestMatch(a, b []rune) (besti, bestj, bestn int) {
	j2len := make(map[int]int)
	for i := range a {
		next := make(map[int]int)
		for j := range b {
			if a[i] == b[j] {
				k := j2len[j-1] + 1
				next[j] = k
				if k > bestn {
					besti, bestj, bestn = i-k+1, j-k+1, k
				}
			}
		}
		j2len = next
	}
	return besti, bestj, bestn
}
