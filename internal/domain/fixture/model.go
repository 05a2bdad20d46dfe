package fixture

const (
	SportFootball = "football"
	SportCricket  = "cricket"
)

// Status is the coarse lifecycle stage derived from the provider state code.
type Status string

const (
	StatusNotStarted Status = "NOT_STARTED"
	StatusLive       Status = "LIVE"
	StatusFinished   Status = "FINISHED"
)

// Processed is the canonical read-only view of one provider fixture. It is rebuilt from
// upstream JSON on every request and never persisted.
type Processed struct {
	ID          int64     `json:"id"`
	SportKey    string    `json:"sportKey"`
	Name        string    `json:"name"`
	StartingAt  string    `json:"startingAt"`
	State       State     `json:"state"`
	IsLive      bool      `json:"isLive"`
	IsFinished  bool      `json:"isFinished"`
	League      League    `json:"league"`
	HomeTeam    Team      `json:"homeTeam"`
	AwayTeam    Team      `json:"awayTeam"`
	Scores      Scores    `json:"scores"`
	Odds        *Odds     `json:"odds,omitempty"`
	Comments    []Comment `json:"comments"`
	Venue       *Venue    `json:"venue,omitempty"`
	Referee     *string   `json:"referee,omitempty"`
	Minute      *int      `json:"minute,omitempty"`
	LatestEvent *string   `json:"latestEvent,omitempty"`
	Note        string    `json:"note,omitempty"`
}

type State struct {
	ID        int64  `json:"id"`
	Code      string `json:"state"`
	Name      string `json:"name"`
	ShortName string `json:"shortName"`
	Status    Status `json:"status"`
}

type League struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Country   string `json:"country,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
}

type Team struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	ShortCode string `json:"shortCode,omitempty"`
	ImagePath string `json:"imagePath,omitempty"`
}

type Scores struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

type Comment struct {
	ID          int64  `json:"id"`
	Minute      int    `json:"minute"`
	ExtraMinute *int   `json:"extraMinute,omitempty"`
	Text        string `json:"comment"`
	IsGoal      bool   `json:"isGoal"`
	IsImportant bool   `json:"isImportant"`
}

type Venue struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	City string `json:"city,omitempty"`
}

// Odds holds one decimal price per supported market outcome. Nil means the market was absent.
type Odds struct {
	Home             *float64      `json:"home,omitempty"`
	Draw             *float64      `json:"draw,omitempty"`
	Away             *float64      `json:"away,omitempty"`
	OverUnder        *OverUnder    `json:"overUnder,omitempty"`
	BothTeamsToScore *YesNo        `json:"bothTeamsToScore,omitempty"`
	DrawNoBet        *DrawNoBet    `json:"drawNoBet,omitempty"`
	DoubleChance     *DoubleChance `json:"doubleChance,omitempty"`
}

type OverUnder struct {
	Point float64  `json:"point"`
	Over  *float64 `json:"over,omitempty"`
	Under *float64 `json:"under,omitempty"`
}

type YesNo struct {
	Yes *float64 `json:"yes,omitempty"`
	No  *float64 `json:"no,omitempty"`
}

type DrawNoBet struct {
	Home *float64 `json:"home,omitempty"`
	Away *float64 `json:"away,omitempty"`
}

type DoubleChance struct {
	HomeOrDraw *float64 `json:"homeOrDraw,omitempty"`
	AwayOrDraw *float64 `json:"awayOrDraw,omitempty"`
	HomeOrAway *float64 `json:"homeOrAway,omitempty"`
}

// IsEmpty reports whether no market produced a price.
func (o Odds) IsEmpty() bool {
	return o.Home == nil && o.Draw == nil && o.Away == nil &&
		o.OverUnder == nil && o.BothTeamsToScore == nil &&
		o.DrawNoBet == nil && o.DoubleChance == nil
}
