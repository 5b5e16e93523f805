package store

import (
	"slices"
	"strconv"
	"strings"

	"goalie/internal/model"
)

// SortTasks orders tasks by ID so that "2" < "2.1" < "2.10" < "10".
func SortTasks(tasks []*model.Task) {
	slices.SortStableFunc(tasks, func(a, b *model.Task) int {
		return CompareTaskIDs(a.ID, b.ID)
	})
}

// CompareTaskIDs compares dotted task IDs segment by segment, numerically
// where both segments are integers and lexically otherwise.
func CompareTaskIDs(a, b string) int {
	as, bs := strings.Split(a, "."), strings.Split(b, ".")
	for i := 0; i < len(as) && i < len(bs); i++ {
		if c := compareSegment(as[i], bs[i]); c != 0 {
			return c
		}
	}
	return len(as) - len(bs)
}

func compareSegment(a, b string) int {
	an, aErr := strconv.Atoi(a)
	bn, bErr := strconv.Atoi(b)
	switch {
	case aErr == nil && bErr == nil:
		return an - bn
	case aErr == nil:
		return -1
	case bErr == nil:
		return 1
	default:
		return strings.Compare(a, b)
	}
}
