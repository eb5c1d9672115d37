package sequence

import (
	"fmt"
	"strconv"
	"strings"
)

// CompressRange renders a sorted slice of distinct integers as a bracketed
// range string. Consecutive integers collapse into an inclusive "start-end"
// pair, isolated integers render alone, and runs are comma separated:
//
//	CompressRange([]int{1, 2, 3, 5}) == "[1-3, 5]"
//
// An empty slice renders as "[]". The same compression serves both present
// and missing frame ranges; callers choose which set to feed it.
func CompressRange(frames []int) string {
	if len(frames) == 0 {
		return "[]"
	}

	var runs []string
	start := frames[0]
	prev := frames[0]
	flush := func() {
		if start == prev {
			runs = append(runs, strconv.Itoa(start))
		} else {
			runs = append(runs, fmt.Sprintf("%d-%d", start, prev))
		}
	}

	for _, f := range frames[1:] {
		if f == prev+1 {
			prev = f
			continue
		}
		flush()
		start = f
		prev = f
	}
	flush()

	return "[" + strings.Join(runs, ", ") + "]"
}

// ExpandRange parses a range string in CompressRange notation back into the
// sorted slice of integers it denotes. It is the exact inverse of
// CompressRange, kept exported for callers that consume the rendered
// notation; the round-trip property between the two is what the range tests
// verify.
func ExpandRange(s string) ([]int, error) {
	if !strings.HasPrefix(s, "[") || !strings.HasSuffix(s, "]") {
		return nil, fmt.Errorf("range string %q is not bracketed", s)
	}
	body := strings.TrimSpace(s[1 : len(s)-1])
	if body == "" {
		return []int{}, nil
	}

	var frames []int
	for _, part := range strings.Split(body, ",") {
		part = strings.TrimSpace(part)
		lo, hi, found := strings.Cut(part, "-")
		if !found {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, fmt.Errorf("invalid frame %q in range string: %w", part, err)
			}
			frames = append(frames, n)
			continue
		}
		first, err := strconv.Atoi(lo)
		if err != nil {
			return nil, fmt.Errorf("invalid range start %q: %w", lo, err)
		}
		last, err := strconv.Atoi(hi)
		if err != nil {
			return nil, fmt.Errorf("invalid range end %q: %w", hi, err)
		}
		if last < first {
			return nil, fmt.Errorf("descending range %q", part)
		}
		for n := first; n <= last; n++ {
			frames = append(frames, n)
		}
	}
	return frames, nil
}
