package sportmonks

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
)

// ISOLayout is the millisecond UTC layout used for every timestamp this API returns.
const ISOLayout = "2006-01-02T15:04:05.000Z"

var now = time.Now

// ProcessV3FootballFixtures maps raw v3 fixtures into the canonical view. It never fails:
// absent data falls back to defaults, and output order and length follow the input.
func ProcessV3FootballFixtures(raw []Fixture) []fixture.Processed {
	out := make([]fixture.Processed, 0, len(raw))
	for _, item := range raw {
		out = append(out, processV3FootballFixture(item))
	}
	return out
}

func processV3FootballFixture(item Fixture) fixture.Processed {
	home, away := resolveTeams(item.Participants)

	stateCode := ""
	state := fixture.State{}
	if item.State.Set {
		stateCode = item.State.Data.code()
		state = fixture.State{
			ID:        item.State.Data.ID,
			Code:      stateCode,
			Name:      strings.TrimSpace(item.State.Data.Name),
			ShortName: strings.TrimSpace(item.State.Data.ShortName),
		}
	}
	if state.ID == 0 {
		state.ID = item.StateID
	}
	state.Status = fixture.StatusForState(stateCode)
	isLive := state.Status == fixture.StatusLive
	isFinished := state.Status == fixture.StatusFinished

	comments := sortedComments(item.Comments)

	name := strings.TrimSpace(item.Name)
	if name == "" {
		name = home.Name + " vs " + away.Name
	}

	processed := fixture.Processed{
		ID:         item.ID,
		SportKey:   fixture.SportFootball,
		Name:       name,
		StartingAt: ParseDateStringToISO(item.StartingAt),
		State:      state,
		IsLive:     isLive,
		IsFinished: isFinished,
		League:     resolveLeague(item),
		HomeTeam:   home,
		AwayTeam:   away,
		Scores: fixture.Scores{
			Home: currentScore(item.Scores, home.ID),
			Away: currentScore(item.Scores, away.ID),
		},
		Odds:     resolveOdds(item.Odds),
		Comments: comments,
		Venue:    resolveVenue(item.Venue),
		Referee:  resolveReferee(item.Referees),
		Minute:   resolveMinute(item.Periods, comments, isLive),
		Note:     strings.TrimSpace(item.ResultInfo),
	}
	processed.LatestEvent = resolveLatestEvent(comments, item.Events, state, isLive, isFinished)
	return processed
}

func resolveTeams(participants []Participant) (fixture.Team, fixture.Team) {
	home := fixture.Team{Name: "Home"}
	away := fixture.Team{Name: "Away"}
	for _, item := range participants {
		team := fixture.Team{
			ID:        item.ID,
			Name:      strings.TrimSpace(item.Name),
			ShortCode: strings.TrimSpace(item.ShortCode),
			ImagePath: strings.TrimSpace(item.ImagePath),
		}
		switch strings.ToLower(strings.TrimSpace(item.Meta.Location)) {
		case "home":
			if team.Name == "" {
				team.Name = "Home"
			}
			home = team
		case "away":
			if team.Name == "" {
				team.Name = "Away"
			}
			away = team
		}
	}
	return home, away
}

// currentScore returns the CURRENT score entry for the participant, or 0.
func currentScore(scores []Score, participantID int64) int {
	if participantID == 0 {
		return 0
	}
	for _, score := range scores {
		if score.ParticipantID != participantID {
			continue
		}
		if !strings.EqualFold(strings.TrimSpace(score.Description), "CURRENT") {
			continue
		}
		if goals, ok := score.goals(); ok {
			return goals
		}
	}
	return 0
}

func resolveLeague(item Fixture) fixture.League {
	if !item.League.Set {
		return fixture.League{ID: item.LeagueID}
	}
	league := fixture.League{
		ID:        item.League.Data.ID,
		Name:      strings.TrimSpace(item.League.Data.Name),
		ImagePath: strings.TrimSpace(item.League.Data.ImagePath),
	}
	if league.ID == 0 {
		league.ID = item.LeagueID
	}
	if item.League.Data.Country.Set {
		league.Country = strings.TrimSpace(item.League.Data.Country.Data.Name)
	}
	return league
}

func resolveVenue(venue relation[Venue]) *fixture.Venue {
	if !venue.Set || venue.Data.ID == 0 && strings.TrimSpace(venue.Data.Name) == "" {
		return nil
	}
	return &fixture.Venue{
		ID:   venue.Data.ID,
		Name: strings.TrimSpace(venue.Data.Name),
		City: strings.TrimSpace(venue.Data.CityName),
	}
}

func resolveReferee(referees []FixtureReferee) *string {
	for _, item := range referees {
		if !item.Referee.Set {
			continue
		}
		for _, candidate := range []string{item.Referee.Data.CommonName, item.Referee.Data.DisplayName, item.Referee.Data.Name} {
			if name := strings.TrimSpace(candidate); name != "" {
				return &name
			}
		}
	}
	return nil
}

// sortedComments orders by minute then extra minute, newest first. Ties keep provider order.
func sortedComments(raw []Comment) []fixture.Comment {
	out := make([]fixture.Comment, 0, len(raw))
	for _, item := range raw {
		out = append(out, fixture.Comment{
			ID:          item.ID,
			Minute:      intValue(item.Minute),
			ExtraMinute: item.ExtraMinute,
			Text:        strings.TrimSpace(item.Comment),
			IsGoal:      item.IsGoal,
			IsImportant: item.IsImportant,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Minute != out[j].Minute {
			return out[i].Minute > out[j].Minute
		}
		return intValue(out[i].ExtraMinute) > intValue(out[j].ExtraMinute)
	})
	return out
}

func resolveMinute(periods []Period, comments []fixture.Comment, isLive bool) *int {
	for _, period := range periods {
		if period.Ticking && period.Minutes != nil {
			minute := *period.Minutes
			return &minute
		}
	}
	if isLive && len(comments) > 0 {
		minute := comments[0].Minute
		return &minute
	}
	return nil
}

func resolveLatestEvent(comments []fixture.Comment, events []Event, state fixture.State, isLive, isFinished bool) *string {
	for _, comment := range comments {
		if comment.Text != "" {
			text := comment.Text
			return &text
		}
	}

	if event, ok := newestEvent(events); ok {
		player := strings.TrimSpace(event.PlayerName)
		if player == "" {
			player = "Unknown"
		}
		text := fmt.Sprintf("%d' %s: %s", intValue(event.Minute), event.typeName(), player)
		return &text
	}

	label := firstNonEmpty(state.Name, state.ShortName, state.Code)
	switch {
	case isLive:
		text := fmt.Sprintf("Match is live (%s)", label)
		return &text
	case isFinished:
		text := fmt.Sprintf("Match finished (%s)", label)
		return &text
	}
	return nil
}

func newestEvent(events []Event) (Event, bool) {
	if len(events) == 0 {
		return Event{}, false
	}
	best := events[0]
	for _, item := range events[1:] {
		if eventAfter(item, best) {
			best = item
		}
	}
	return best, true
}

func eventAfter(a, b Event) bool {
	if intValue(a.Minute) != intValue(b.Minute) {
		return intValue(a.Minute) > intValue(b.Minute)
	}
	if intValue(a.ExtraMinute) != intValue(b.ExtraMinute) {
		return intValue(a.ExtraMinute) > intValue(b.ExtraMinute)
	}
	return intValue(a.SortOrder) > intValue(b.SortOrder)
}

// ParseDateStringToISO turns a provider timestamp ("2024-07-13 18:30:00", UTC without zone)
// into "2024-07-13T18:30:00.000Z". Unparseable input yields the current time.
func ParseDateStringToISO(raw string) string {
	value := strings.TrimSpace(raw)
	if value != "" {
		if parsed, ok := parseProviderDateTime(value); ok {
			return parsed.Format(ISOLayout)
		}
	}
	return now().UTC().Format(ISOLayout)
}

func parseProviderDateTime(value string) (time.Time, bool) {
	candidate := strings.Replace(value, " ", "T", 1)
	if !strings.HasSuffix(candidate, "Z") && !hasZoneOffset(candidate) {
		candidate += "Z"
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04Z07:00"} {
		if parsed, err := time.Parse(layout, candidate); err == nil {
			return parsed.UTC(), true
		}
	}
	if parsed, err := time.Parse(time.DateOnly, value); err == nil {
		return parsed.UTC(), true
	}
	return time.Time{}, false
}

func hasZoneOffset(value string) bool {
	idx := strings.IndexByte(value, 'T')
	if idx < 0 {
		return false
	}
	clock := value[idx+1:]
	return strings.ContainsAny(clock, "+-")
}

func intValue(value *int) int {
	if value == nil {
		return 0
	}
	return *value
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
