package sportmonks

import (
	"fmt"
	"strings"

	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
)

// ProcessCricketFixtures maps v2 cricket fixtures into the canonical view. Scores carry the
// runs of each side's latest innings.
func ProcessCricketFixtures(raw []CricketFixture) []fixture.Processed {
	out := make([]fixture.Processed, 0, len(raw))
	for _, item := range raw {
		out = append(out, processCricketFixture(item))
	}
	return out
}

func processCricketFixture(item CricketFixture) fixture.Processed {
	home := cricketTeam(item.LocalTeam, item.LocalTeamID, "Home")
	away := cricketTeam(item.VisitorTeam, item.VisitorTeamID, "Away")

	status := strings.TrimSpace(item.Status)
	state := fixture.State{
		Code:      status,
		Name:      status,
		ShortName: status,
		Status:    fixture.StatusForCricket(status),
	}
	if item.Live && state.Status == fixture.StatusNotStarted {
		state.Status = fixture.StatusLive
	}

	var runs []CricketRun
	if item.Runs.Set {
		runs = item.Runs.Data
	}

	league := fixture.League{ID: item.LeagueID}
	if item.League.Set {
		league.Name = strings.TrimSpace(item.League.Data.Name)
		league.ImagePath = strings.TrimSpace(item.League.Data.ImagePath)
	}

	processed := fixture.Processed{
		ID:         item.ID,
		SportKey:   fixture.SportCricket,
		Name:       home.Name + " vs " + away.Name,
		StartingAt: ParseDateStringToISO(item.StartingAt),
		State:      state,
		IsLive:     state.Status == fixture.StatusLive,
		IsFinished: state.Status == fixture.StatusFinished,
		League:     league,
		HomeTeam:   home,
		AwayTeam:   away,
		Scores: fixture.Scores{
			Home: latestRuns(runs, home.ID),
			Away: latestRuns(runs, away.ID),
		},
		Comments: []fixture.Comment{},
		Venue:    resolveVenue(item.Venue),
		Note:     strings.TrimSpace(item.Note),
	}

	switch {
	case processed.Note != "":
		note := processed.Note
		processed.LatestEvent = &note
	case processed.IsLive:
		text := fmt.Sprintf("Match is live (%s)", status)
		processed.LatestEvent = &text
	case processed.IsFinished:
		text := fmt.Sprintf("Match finished (%s)", status)
		processed.LatestEvent = &text
	}
	return processed
}

func cricketTeam(team relation[CricketTeam], fallbackID int64, fallbackName string) fixture.Team {
	out := fixture.Team{ID: fallbackID, Name: fallbackName}
	if !team.Set {
		return out
	}
	if team.Data.ID != 0 {
		out.ID = team.Data.ID
	}
	if name := strings.TrimSpace(team.Data.Name); name != "" {
		out.Name = name
	}
	out.ShortCode = strings.TrimSpace(team.Data.Code)
	out.ImagePath = strings.TrimSpace(team.Data.ImagePath)
	return out
}

func latestRuns(runs []CricketRun, teamID int64) int {
	if teamID == 0 {
		return 0
	}
	score, inning := 0, -1
	for _, run := range runs {
		if run.TeamID == teamID && run.Inning > inning {
			score, inning = run.Score, run.Inning
		}
	}
	return score
}
