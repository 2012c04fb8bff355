package meeting

import (
	"cmp"
	"slices"

	"meetingportal/internal/model"
)

func sortBySchedule(meetings []model.Meeting) {
	slices.SortFunc(meetings, func(a, b model.Meeting) int {
		return cmp.Or(
			cmp.Compare(a.Date, b.Date),
			cmp.Compare(a.Time, b.Time),
			cmp.Compare(a.ID, b.ID),
		)
	})
}
