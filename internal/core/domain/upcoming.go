package domain

import (
	"sort"
	"time"
)

// SelectUpcoming returns the classes whose course is in wanted and whose
// start lies strictly inside (now, now+horizonDays), ordered by start time.
// Classes pointing at a course that is not in known are skipped; a nil
// known set means every course resolves.
func SelectUpcoming(classes []*Class, wanted, known map[string]struct{}, now time.Time, horizonDays int) []*Class {
	if horizonDays <= 0 || len(wanted) == 0 {
		return []*Class{}
	}
	until := now.AddDate(0, 0, horizonDays)

	out := make([]*Class, 0, len(classes))
	for _, c := range classes {
		if c == nil {
			continue
		}
		if _, ok := wanted[c.CourseID]; !ok {
			continue
		}
		if known != nil {
			if _, ok := known[c.CourseID]; !ok {
				continue
			}
		}
		if !c.ScheduledDateTime.After(now) || !c.ScheduledDateTime.Before(until) {
			continue
		}
		out = append(out, c)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ScheduledDateTime.Before(out[j].ScheduledDateTime)
	})
	return out
}

// IDSet builds a lookup set from a list of identifiers, ignoring empties.
func IDSet(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return set
}
