// Package zpubdiff scores how close a candidate zpub string is to a
// target, driving the search driver's progress feedback and best-match
// tracking.
package zpubdiff

// Metrics is the differential score between two zpub strings.
type Metrics struct {
	PrefixLen       int
	HammingDistance int
	Similarity      float64
}

// Diff compares candidate against target and returns prefix length,
// Hamming distance (positions past the end of the shorter string count
// as mismatches), and similarity in [0, 1].
func Diff(candidate, target string) Metrics {
	prefixLen := commonPrefixLen(candidate, target)
	hamming := hammingDistance(candidate, target)

	maxLen := len(candidate)
	if len(target) > maxLen {
		maxLen = len(target)
	}

	similarity := 1.0
	if maxLen > 0 {
		similarity = 1.0 - float64(hamming)/float64(maxLen)
	}

	return Metrics{
		PrefixLen:       prefixLen,
		HammingDistance: hamming,
		Similarity:      similarity,
	}
}

func commonPrefixLen(a, b string) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	i := 0
	for i < n && a[i] == b[i] {
		i++
	}
	return i
}

func hammingDistance(a, b string) int {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}

	dist := 0
	for i := 0; i < n; i++ {
		var ca, cb byte
		if i < len(a) {
			ca = a[i]
		} else {
			dist++
			continue
		}
		if i < len(b) {
			cb = b[i]
		} else {
			dist++
			continue
		}
		if ca != cb {
			dist++
		}
	}
	return dist
}
