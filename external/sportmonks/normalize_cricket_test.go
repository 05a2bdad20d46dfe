package sportmonks

import (
	"testing"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/sportsbet-api/internal/domain/fixture"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProcessCricketFixtures(t *testing.T) {
	t.Parallel()

	raw := `[{
		"id": 55001,
		"league_id": 3,
		"status": "2nd Innings",
		"note": "",
		"starting_at": "2024-07-13T09:30:00.000000Z",
		"localteam_id": 36,
		"visitorteam_id": 37,
		"localteam": {"id": 36, "name": "India", "code": "IND"},
		"visitorteam": {"data": {"id": 37, "name": "England", "code": "ENG"}},
		"league": {"id": 3, "name": "T20I"},
		"runs": [
			{"team_id": 36, "inning": 1, "score": 182, "wickets": 6, "overs": 20},
			{"team_id": 37, "inning": 2, "score": 97, "wickets": 3, "overs": 11.2}
		]
	}, {
		"id": 55002,
		"status": "Finished",
		"note": "India won by 5 wickets",
		"starting_at": "2024-07-10T09:30:00.000000Z",
		"localteam_id": 36,
		"visitorteam_id": 38
	}]`

	var items []CricketFixture
	require.NoError(t, sonic.Unmarshal([]byte(raw), &items))

	out := ProcessCricketFixtures(items)
	require.Len(t, out, 2)

	live := out[0]
	assert.Equal(t, fixture.SportCricket, live.SportKey)
	assert.Equal(t, "India vs England", live.Name)
	assert.True(t, live.IsLive)
	assert.Equal(t, fixture.Scores{Home: 182, Away: 97}, live.Scores)
	assert.Equal(t, "2024-07-13T09:30:00.000Z", live.StartingAt)
	assert.NotNil(t, live.Comments)

	done := out[1]
	assert.True(t, done.IsFinished)
	assert.Equal(t, "Home vs Away", done.Name)
	assert.EqualValues(t, 36, done.HomeTeam.ID)
	require.NotNil(t, done.LatestEvent)
	assert.Equal(t, "India won by 5 wickets", *done.LatestEvent)
}
