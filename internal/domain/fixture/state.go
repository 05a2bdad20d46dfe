package fixture

import "strings"

// LiveStates are Sportmonks v3 developer state names for matches in play.
var LiveStates = map[string]struct{}{
	"INPLAY_1ST_HALF":    {},
	"INPLAY_2ND_HALF":    {},
	"HT":                 {},
	"BREAK":              {},
	"INPLAY_ET":          {},
	"INPLAY_ET_2ND_HALF": {},
	"EXTRA_TIME_BREAK":   {},
	"PEN_BREAK":          {},
	"INPLAY_PENALTIES":   {},
	"LIVE":               {},
}

// FinishedStates are terminal Sportmonks v3 state names with a final result.
var FinishedStates = map[string]struct{}{
	"FT":      {},
	"AET":     {},
	"FT_PEN":  {},
	"AWARDED": {},
	"WO":      {},
}

// CricketLiveStatuses are v2 cricket fixture statuses for innings in progress.
var CricketLiveStatuses = map[string]struct{}{
	"1ST INNINGS":   {},
	"2ND INNINGS":   {},
	"3RD INNINGS":   {},
	"4TH INNINGS":   {},
	"STUMP DAY 1":   {},
	"STUMP DAY 2":   {},
	"STUMP DAY 3":   {},
	"STUMP DAY 4":   {},
	"INNINGS BREAK": {},
	"TEA BREAK":     {},
	"LUNCH":         {},
	"DINNER":        {},
	"INT.":          {},
	"DELAYED":       {},
}

var CricketFinishedStatuses = map[string]struct{}{
	"FINISHED": {},
	"ABAN.":    {},
}

func IsLiveState(code string) bool {
	_, ok := LiveStates[normalizeCode(code)]
	return ok
}

func IsFinishedState(code string) bool {
	_, ok := FinishedStates[normalizeCode(code)]
	return ok
}

// StatusForState classifies a football state code. Unknown codes are not started.
func StatusForState(code string) Status {
	switch {
	case IsLiveState(code):
		return StatusLive
	case IsFinishedState(code):
		return StatusFinished
	default:
		return StatusNotStarted
	}
}

func StatusForCricket(status string) Status {
	normalized := normalizeCode(status)
	if _, ok := CricketLiveStatuses[normalized]; ok {
		return StatusLive
	}
	if _, ok := CricketFinishedStatuses[normalized]; ok {
		return StatusFinished
	}
	return StatusNotStarted
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
