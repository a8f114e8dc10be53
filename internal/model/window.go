package model

import "time"

// AnalysisWindow is the contiguous 24-hour span all symbols are evaluated
// against in one cycle, anchored at a fixed local hour-of-day boundary.
type AnalysisWindow struct {
	StartLocal time.Time
	EndLocal   time.Time
	StartUTCms int64
	EndUTCms   int64
}

// AlignedWindow computes the most recent 24-hour window ending at anchorHour
// in loc that does not extend past now. The window end is never in the
// future and the span is exactly 24 hours.
func AlignedWindow(now time.Time, anchorHour int, loc *time.Location) AnalysisWindow {
	local := now.In(loc)

	end := time.Date(local.Year(), local.Month(), local.Day(), anchorHour, 0, 0, 0, loc)
	if end.After(local) {
		end = end.AddDate(0, 0, -1)
	}
	start := end.Add(-24 * time.Hour)

	return AnalysisWindow{
		StartLocal: start,
		EndLocal:   end,
		StartUTCms: start.UnixMilli(),
		EndUTCms:   end.UnixMilli(),
	}
}

// Describe renders the window for reporting, e.g. "2026-08-29 17:00 → 2026-08-30 17:00".
func (w AnalysisWindow) Describe() string {
	const layout = "2006-01-02 15:04"
	return w.StartLocal.Format(layout) + " → " + w.EndLocal.Format(layout)
}
