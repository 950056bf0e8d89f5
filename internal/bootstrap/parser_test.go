package bootstrap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clubsJSON = `[
	{
		"code": "pppjo",
		"name": "Penn Pre-Professional Juggling Organization",
		"description": "The PPPJO is looking for intense jugglers.",
		"tags": ["Pre-Professional", "Athletics", "Undergraduate"]
	},
	{
		"code": "penn-memes",
		"name": "Penn Memes Club",
		"description": "We love memes.",
		"tags": ["Undergraduate", "Literary"]
	}
]`

const clubsHTML = `<html><body>
<div class="box">
	<strong class="club-name">Penn Chess Society</strong>
	<span class="tag is-info is-rounded">Games</span>
	<em>We play chess.</em>
</div>
<div class="box">
	<div class="columns">
		<strong class="club-name">Locust Labs</strong>
		<span class="tag is-info is-rounded">Technology</span>
	</div>
	<em>Student-run software shop.</em>
</div>
<div class="notbox">
	<strong class="club-name">Not A Club</strong>
</div>
</body></html>`

func TestParseClubsJSON(t *testing.T) {
	records, err := ParseClubsJSON(strings.NewReader(clubsJSON))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "pppjo", records[0].Code)
	assert.Equal(t, "Penn Pre-Professional Juggling Organization", records[0].Name)
	assert.Equal(t, []string{"Pre-Professional", "Athletics", "Undergraduate"}, records[0].Tags)
}

func TestParseClubsJSON_Malformed(t *testing.T) {
	_, err := ParseClubsJSON(strings.NewReader(`{"not": "an array"`))
	assert.Error(t, err)
}

func TestParseClubsHTML(t *testing.T) {
	records, err := ParseClubsHTML(strings.NewReader(clubsHTML))
	require.NoError(t, err)
	require.Len(t, records, 2, "only div.box elements yield records")

	assert.Equal(t, "Penn Chess Society", records[0].Name)
	assert.Equal(t, []string{"Games"}, records[0].Tags)
	assert.Equal(t, "We play chess.", records[0].Description)
	assert.Empty(t, records[0].Code, "scraped records carry no code")

	assert.Equal(t, "Locust Labs", records[1].Name, "nested markup still parses")
	assert.Equal(t, []string{"Technology"}, records[1].Tags)
}

func TestParseClubsHTML_EmptyDocument(t *testing.T) {
	records, err := ParseClubsHTML(strings.NewReader("<html><body></body></html>"))
	require.NoError(t, err)
	assert.Empty(t, records)
}
