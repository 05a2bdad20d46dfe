package sportmonks

import (
	"strings"

	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
	"github.com/shopspring/decimal"
)

const (
	marketFulltimeResult   = 1
	marketDoubleChance     = 2
	marketBothTeamsToScore = 14
	marketGoalsOverUnder   = 80

	preferredOverUnderLine = "2.5"
)

type oddsMarket int

const (
	marketUnknown oddsMarket = iota
	marketMatchWinner
	marketOverUnder
	marketBTTS
	marketDrawNoBet
	marketDouble
)

var fullTimeMarketsByID = map[int64]oddsMarket{
	marketFulltimeResult:   marketMatchWinner,
	marketDoubleChance:     marketDouble,
	marketBothTeamsToScore: marketBTTS,
	marketGoalsOverUnder:   marketOverUnder,
}

// Descriptions must match exactly so half-time, team, cards and corners variants
// ("1st Half Goals Over/Under", "Double Chance - 1st Half") stay unknown.
var fullTimeMarketsByDescription = map[string]oddsMarket{
	"fulltime result":     marketMatchWinner,
	"full time result":    marketMatchWinner,
	"match winner":        marketMatchWinner,
	"1x2":                 marketMatchWinner,
	"goals over/under":    marketOverUnder,
	"over/under":          marketOverUnder,
	"total goals":         marketOverUnder,
	"both teams to score": marketBTTS,
	"draw no bet":         marketDrawNoBet,
	"double chance":       marketDouble,
}

func classifyMarket(item Odd) oddsMarket {
	if market, ok := fullTimeMarketsByID[item.MarketID]; ok {
		return market
	}
	description := strings.Join(strings.Fields(strings.ToLower(item.MarketDescription)), " ")
	return fullTimeMarketsByDescription[description]
}

// resolveOdds keeps the first valid price seen per outcome. Over/under prefers the 2.5 line
// and otherwise uses the first line offered.
func resolveOdds(items []Odd) *fixture.Odds {
	if len(items) == 0 {
		return nil
	}

	var out fixture.Odds
	lines := make(map[string]*fixture.OverUnder)
	lineOrder := make([]string, 0, 4)

	for _, item := range items {
		price, ok := parsePrice(item.Value)
		if !ok {
			continue
		}
		label := normalizeLabel(item.Label, item.Name)

		switch classifyMarket(item) {
		case marketMatchWinner:
			switch label {
			case "1", "home":
				setPrice(&out.Home, price)
			case "x", "draw":
				setPrice(&out.Draw, price)
			case "2", "away":
				setPrice(&out.Away, price)
			}
		case marketOverUnder:
			point, ok := parsePoint(firstNonEmpty(item.Total, item.Handicap, item.Name))
			if !ok {
				continue
			}
			key := point.String()
			line, exists := lines[key]
			if !exists {
				pointValue, _ := point.Float64()
				line = &fixture.OverUnder{Point: pointValue}
				lines[key] = line
				lineOrder = append(lineOrder, key)
			}
			switch {
			case strings.HasPrefix(label, "over"):
				setPrice(&line.Over, price)
			case strings.HasPrefix(label, "under"):
				setPrice(&line.Under, price)
			}
		case marketBTTS:
			if out.BothTeamsToScore == nil {
				out.BothTeamsToScore = &fixture.YesNo{}
			}
			switch label {
			case "yes":
				setPrice(&out.BothTeamsToScore.Yes, price)
			case "no":
				setPrice(&out.BothTeamsToScore.No, price)
			}
		case marketDrawNoBet:
			if out.DrawNoBet == nil {
				out.DrawNoBet = &fixture.DrawNoBet{}
			}
			switch label {
			case "1", "home":
				setPrice(&out.DrawNoBet.Home, price)
			case "2", "away":
				setPrice(&out.DrawNoBet.Away, price)
			}
		case marketDouble:
			if out.DoubleChance == nil {
				out.DoubleChance = &fixture.DoubleChance{}
			}
			switch label {
			case "1x", "home/draw", "home or draw":
				setPrice(&out.DoubleChance.HomeOrDraw, price)
			case "x2", "draw/away", "away/draw", "draw or away":
				setPrice(&out.DoubleChance.AwayOrDraw, price)
			case "12", "home/away", "home or away":
				setPrice(&out.DoubleChance.HomeOrAway, price)
			}
		}
	}

	if len(lineOrder) > 0 {
		key := lineOrder[0]
		if _, ok := lines[preferredOverUnderLine]; ok {
			key = preferredOverUnderLine
		}
		out.OverUnder = lines[key]
	}
	if out.BothTeamsToScore != nil && out.BothTeamsToScore.Yes == nil && out.BothTeamsToScore.No == nil {
		out.BothTeamsToScore = nil
	}
	if out.DrawNoBet != nil && out.DrawNoBet.Home == nil && out.DrawNoBet.Away == nil {
		out.DrawNoBet = nil
	}
	if out.DoubleChance != nil && out.DoubleChance.HomeOrDraw == nil &&
		out.DoubleChance.AwayOrDraw == nil && out.DoubleChance.HomeOrAway == nil {
		out.DoubleChance = nil
	}

	if out.IsEmpty() {
		return nil
	}
	return &out
}

func normalizeLabel(label, name string) string {
	value := strings.ToLower(strings.TrimSpace(label))
	if value == "" {
		value = strings.ToLower(strings.TrimSpace(name))
	}
	return value
}

// parsePrice reads a decimal price rounded to two places. Prices at or below 1.00 are
// rejected since they cannot pay out.
func parsePrice(raw string) (float64, bool) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil || value.LessThanOrEqual(decimal.NewFromInt(1)) {
		return 0, false
	}
	price, _ := value.Round(2).Float64()
	return price, true
}

// parsePoint reads the line from values like "2.5" or "Over 2.5".
func parsePoint(raw string) (decimal.Decimal, bool) {
	fields := strings.Fields(raw)
	for i := len(fields) - 1; i >= 0; i-- {
		if value, err := decimal.NewFromString(fields[i]); err == nil {
			return value, true
		}
	}
	return decimal.Decimal{}, false
}

func setPrice(dst **float64, price float64) {
	if *dst != nil {
		return
	}
	value := price
	*dst = &value
}
