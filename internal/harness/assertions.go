package harness

import (
	"fmt"
	"slices"
)

// checkExpect compares a step record with its expectations and returns
// one message per mismatch. A command error that the step did not expect
// is always a mismatch.
func checkExpect(rec StepRecord, expect *Expect) []string {
	var errs []string
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Sprintf(format, args...))
	}

	if expect == nil {
		if rec.Error != "" {
			fail("unexpected error %s", rec.Error)
		}
		return errs
	}

	if rec.Error != expect.Error {
		switch {
		case expect.Error == "":
			fail("unexpected error %s", rec.Error)
		case rec.Error == "":
			fail("expected error %s, got none", expect.Error)
		default:
			fail("expected error %s, got %s", expect.Error, rec.Error)
		}
	}

	if expect.Visible != nil {
		if got := visibleIDs(rec); !slices.Equal(got, expect.Visible) {
			fail("visible: expected %v, got %v", expect.Visible, got)
		}
	}
	if expect.Favorite != nil {
		if got := favoriteIDs(rec); !slices.Equal(got, expect.Favorite) {
			fail("favorite: expected %v, got %v", expect.Favorite, got)
		}
	}
	if expect.Favorites != nil && !slices.Equal(rec.Favorites, expect.Favorites) {
		fail("favorites: expected %v, got %v", expect.Favorites, rec.Favorites)
	}

	checkInt(fail, "total", expect.Total, rec.View.Total)
	checkBool(fail, "has_more", expect.HasMore, rec.View.HasMore)
	checkBool(fail, "loading", expect.Loading, rec.View.IsLoadingMore)
	checkBool(fail, "scheduled", expect.Scheduled, rec.Scheduled)
	checkBool(fail, "scrolled", expect.Scrolled, rec.Scrolled)

	if expect.Status != "" && expect.Status != rec.View.Status {
		fail("status: expected %q, got %q", expect.Status, rec.View.Status)
	}
	return errs
}

func checkInt(fail func(string, ...any), name string, want *int, got int) {
	if want != nil && *want != got {
		fail("%s: expected %d, got %d", name, *want, got)
	}
}

func checkBool(fail func(string, ...any), name string, want *bool, got bool) {
	if want != nil && *want != got {
		fail("%s: expected %t, got %t", name, *want, got)
	}
}

func visibleIDs(rec StepRecord) []int64 {
	ids := make([]int64, len(rec.View.Visible))
	for i, r := range rec.View.Visible {
		ids[i] = r.ID
	}
	return ids
}

func favoriteIDs(rec StepRecord) []int64 {
	ids := []int64{}
	for _, r := range rec.View.Visible {
		if r.IsFavorite {
			ids = append(ids, r.ID)
		}
	}
	return ids
}
