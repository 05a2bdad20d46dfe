package sportmonks

import (
	"bytes"
	"strconv"
	"strings"

	sonic "github.com/bytedance/sonic"
)

// Fixture is a Sportmonks v3 football fixture with the includes this service requests.
type Fixture struct {
	ID           int64            `json:"id"`
	LeagueID     int64            `json:"league_id"`
	StateID      int64            `json:"state_id"`
	Name         string           `json:"name"`
	StartingAt   string           `json:"starting_at"`
	ResultInfo   string           `json:"result_info"`
	Participants []Participant    `json:"participants"`
	Scores       []Score          `json:"scores"`
	State        relation[State]  `json:"state"`
	League       relation[League] `json:"league"`
	Venue        relation[Venue]  `json:"venue"`
	Comments     []Comment        `json:"comments"`
	Events       []Event          `json:"events"`
	Periods      []Period         `json:"periods"`
	Odds         []Odd            `json:"odds"`
	Referees     []FixtureReferee `json:"referees"`
}

type Participant struct {
	ID        int64           `json:"id"`
	Name      string          `json:"name"`
	ShortCode string          `json:"short_code"`
	ImagePath string          `json:"image_path"`
	Meta      ParticipantMeta `json:"meta"`
}

type ParticipantMeta struct {
	Location string `json:"location"`
	Winner   any    `json:"winner"`
	Position *int   `json:"position"`
}

type Score struct {
	ID            int64          `json:"id"`
	ParticipantID int64          `json:"participant_id"`
	TypeID        int64          `json:"type_id"`
	Description   string         `json:"description"`
	Score         map[string]any `json:"score"`
}

// goals reads score.goals, which Sportmonks sends as a number but sometimes as a string.
func (s Score) goals() (int, bool) {
	if s.Score == nil {
		return 0, false
	}
	for _, key := range []string{"goals", "value"} {
		raw, ok := s.Score[key]
		if !ok || raw == nil {
			continue
		}
		value := int(asFloat64(raw))
		if value >= 0 {
			return value, true
		}
	}
	return 0, false
}

type State struct {
	ID            int64  `json:"id"`
	State         string `json:"state"`
	Name          string `json:"name"`
	ShortName     string `json:"short_name"`
	DeveloperName string `json:"developer_name"`
}

// code prefers the `state` field and falls back to developer_name.
func (s State) code() string {
	if value := strings.TrimSpace(s.State); value != "" {
		return value
	}
	return strings.TrimSpace(s.DeveloperName)
}

type League struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	ImagePath string            `json:"image_path"`
	Country   relation[Country] `json:"country"`
}

type Country struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type Venue struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	CityName string `json:"city_name"`
}

type Comment struct {
	ID          int64  `json:"id"`
	Comment     string `json:"comment"`
	Minute      *int   `json:"minute"`
	ExtraMinute *int   `json:"extra_minute"`
	IsGoal      bool   `json:"is_goal"`
	IsImportant bool   `json:"is_important"`
	Order       *int   `json:"order"`
}

type Event struct {
	ID            int64             `json:"id"`
	TypeID        int64             `json:"type_id"`
	ParticipantID int64             `json:"participant_id"`
	PlayerName    string            `json:"player_name"`
	Info          string            `json:"info"`
	Addition      string            `json:"addition"`
	Minute        *int              `json:"minute"`
	ExtraMinute   *int              `json:"extra_minute"`
	SortOrder     *int              `json:"sort_order"`
	Type          relation[TypeRef] `json:"type"`
}

func (e Event) typeName() string {
	if e.Type.Set {
		if name := strings.TrimSpace(e.Type.Data.Name); name != "" {
			return name
		}
		if name := strings.TrimSpace(e.Type.Data.DeveloperName); name != "" {
			return name
		}
	}
	return "Event"
}

type TypeRef struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Code          string `json:"code"`
	DeveloperName string `json:"developer_name"`
}

type Period struct {
	ID          int64  `json:"id"`
	TypeID      int64  `json:"type_id"`
	Started     *int64 `json:"started"`
	Ended       *int64 `json:"ended"`
	Minutes     *int   `json:"minutes"`
	Seconds     *int   `json:"seconds"`
	Ticking     bool   `json:"ticking"`
	Description string `json:"description"`
}

// Odd is one outcome price from one bookmaker.
type Odd struct {
	ID                int64  `json:"id"`
	MarketID          int64  `json:"market_id"`
	BookmakerID       int64  `json:"bookmaker_id"`
	Label             string `json:"label"`
	Value             string `json:"value"`
	Name              string `json:"name"`
	MarketDescription string `json:"market_description"`
	Total             string `json:"total"`
	Handicap          string `json:"handicap"`
}

type FixtureReferee struct {
	ID        int64             `json:"id"`
	RefereeID int64             `json:"referee_id"`
	TypeID    int64             `json:"type_id"`
	Referee   relation[Referee] `json:"referee"`
}

type Referee struct {
	ID          int64  `json:"id"`
	CommonName  string `json:"common_name"`
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
}

// CricketFixture is a Sportmonks v2 cricket fixture with localteam, visitorteam, league and
// runs included.
type CricketFixture struct {
	ID            int64                  `json:"id"`
	LeagueID      int64                  `json:"league_id"`
	Round         string                 `json:"round"`
	Type          string                 `json:"type"`
	Status        string                 `json:"status"`
	Note          string                 `json:"note"`
	Live          bool                   `json:"live"`
	StartingAt    string                 `json:"starting_at"`
	LocalTeamID   int64                  `json:"localteam_id"`
	VisitorTeamID int64                  `json:"visitorteam_id"`
	LocalTeam     relation[CricketTeam]  `json:"localteam"`
	VisitorTeam   relation[CricketTeam]  `json:"visitorteam"`
	League        relation[League]       `json:"league"`
	Venue         relation[Venue]        `json:"venue"`
	Runs          relation[[]CricketRun] `json:"runs"`
}

type CricketTeam struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Code      string `json:"code"`
	ImagePath string `json:"image_path"`
}

type CricketRun struct {
	ID      int64   `json:"id"`
	TeamID  int64   `json:"team_id"`
	Inning  int     `json:"inning"`
	Score   int     `json:"score"`
	Wickets int     `json:"wickets"`
	Overs   float64 `json:"overs"`
}

// relation decodes an include that may arrive bare or wrapped as {"data": ...}.
type relation[T any] struct {
	Data T
	Set  bool
}

func (r *relation[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		r.Set = false
		return nil
	}

	if trimmed[0] == '{' {
		var wrapped struct {
			Data *T `json:"data"`
		}
		if err := sonic.Unmarshal(trimmed, &wrapped); err == nil && wrapped.Data != nil {
			r.Data = *wrapped.Data
			r.Set = true
			return nil
		}
	}

	var direct T
	if err := sonic.Unmarshal(trimmed, &direct); err != nil {
		return err
	}
	r.Data = direct
	r.Set = true
	return nil
}

func asFloat64(value any) float64 {
	switch typed := value.(type) {
	case float64:
		return typed
	case float32:
		return float64(typed)
	case int:
		return float64(typed)
	case int64:
		return float64(typed)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0
		}
		return parsed
	default:
		return 0
	}
}
