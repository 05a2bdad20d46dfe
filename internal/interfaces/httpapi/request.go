package httpapi

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
)

type liveScoresRequest struct {
	LeagueIDs     []int64 `validate:"max=25,dive,gt=0"`
	FirstPageOnly bool
}

type oddsRequest struct {
	SportKey   string `validate:"required,max=64"`
	Regions    string `validate:"omitempty,max=64"`
	Markets    string `validate:"omitempty,max=128"`
	OddsFormat string `validate:"omitempty,oneof=decimal american"`
}

type cricketFixturesRequest struct {
	From time.Time
	To   time.Time
}

func parseLiveScoresRequest(query url.Values) (liveScoresRequest, error) {
	var req liveScoresRequest

	ids, err := parseIDList(query.Get("leagueId"))
	if err != nil {
		return liveScoresRequest{}, err
	}
	req.LeagueIDs = ids

	firstPageOnly, err := parseOptionalBool(query.Get("firstPageOnly"), "firstPageOnly")
	if err != nil {
		return liveScoresRequest{}, err
	}
	req.FirstPageOnly = firstPageOnly

	return req, nil
}

func parseOddsRequest(query url.Values) oddsRequest {
	return oddsRequest{
		SportKey:   strings.TrimSpace(query.Get("sportKey")),
		Regions:    strings.TrimSpace(query.Get("regions")),
		Markets:    strings.TrimSpace(query.Get("markets")),
		OddsFormat: strings.ToLower(strings.TrimSpace(query.Get("oddsFormat"))),
	}
}

func parseCricketFixturesRequest(query url.Values) (cricketFixturesRequest, error) {
	from, err := parseOptionalDate(query.Get("from"), "from")
	if err != nil {
		return cricketFixturesRequest{}, err
	}
	to, err := parseOptionalDate(query.Get("to"), "to")
	if err != nil {
		return cricketFixturesRequest{}, err
	}
	return cricketFixturesRequest{From: from, To: to}, nil
}

// parseIDList reads "8,564, 82". Empty input means no filter.
func parseIDList(raw string) ([]int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}

	parts := strings.Split(raw, ",")
	out := make([]int64, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		id, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: leagueId must be a comma-separated list of integers", usecase.ErrInvalidInput)
		}
		out = append(out, id)
	}
	return out, nil
}

func parseOptionalBool(raw, name string) (bool, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %s must be true or false", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

func parseOptionalDate(raw, name string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	value, err := time.Parse(time.DateOnly, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be a date in YYYY-MM-DD format", usecase.ErrInvalidInput, name)
	}
	return value, nil
}

// describeValidationError turns validator output into one readable sentence per field.
func describeValidationError(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}

	messages := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := queryParamName(fe.StructField())
		switch fe.Tag() {
		case "required":
			messages = append(messages, field+" is required")
		case "oneof":
			messages = append(messages, fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
		case "max":
			messages = append(messages, fmt.Sprintf("%s exceeds the maximum of %s", field, fe.Param()))
		case "gt":
			messages = append(messages, field+" must be a positive integer")
		default:
			messages = append(messages, field+" is invalid")
		}
	}
	return strings.Join(messages, "; ")
}

func queryParamName(structField string) string {
	if name, _, ok := strings.Cut(structField, "["); ok {
		structField = name
	}
	switch structField {
	case "LeagueIDs":
		return "leagueId"
	case "FirstPageOnly":
		return "firstPageOnly"
	case "SportKey":
		return "sportKey"
	case "OddsFormat":
		return "oddsFormat"
	case "Regions":
		return "regions"
	case "Markets":
		return "markets"
	default:
		return structField
	}
}
