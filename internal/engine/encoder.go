package engine

import (
	"fmt"

	"github.com/Hu1906/TKB/internal/models"
	appErrors "github.com/Hu1906/TKB/pkg/errors"
)

// maxWeek bounds the term length: weekMask is a uint64 with bit w set iff
// the meeting recurs on week w. Real terms run ~20 weeks, so 64 bits is a
// hard but generous ceiling; a week outside it is a data defect, never
// silently truncated.
const maxWeek = 63

// encodedMeeting is the compact comparable form of one meeting. start and
// end keep the catalog's HHMM integer encoding, which orders chronologically
// for same-day comparison because no meeting spans midnight.
type encodedMeeting struct {
	day      int
	start    int
	end      int
	weekMask uint64
}

// encodedSection pairs a catalog section with its encoded meetings.
type encodedSection struct {
	section  *models.Section
	meetings []encodedMeeting
}

func encodeSection(sec *models.Section) (*encodedSection, error) {
	meetings := make([]encodedMeeting, 0, len(sec.Sessions))
	for _, sess := range sec.Sessions {
		var mask uint64
		for _, week := range sess.Weeks {
			if week < 0 || week > maxWeek {
				return nil, appErrors.Clone(appErrors.ErrEncoding,
					fmt.Sprintf("section %s: week %d outside supported range 0-%d", sec.ClassID, week, maxWeek))
			}
			mask |= 1 << uint(week)
		}
		meetings = append(meetings, encodedMeeting{
			day:      sess.Day,
			start:    sess.StartTime,
			end:      sess.EndTime,
			weekMask: mask,
		})
	}
	return &encodedSection{section: sec, meetings: meetings}, nil
}
