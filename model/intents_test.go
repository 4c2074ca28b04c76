package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntents(t *testing.T) {
	i, err := ParseIntents([]string{"guilds", " GUILD_MESSAGES "})
	require.NoError(t, err)
	assert.Equal(t, Intents(513), i)
	assert.True(t, i.Has(IntentGuilds))
	assert.False(t, i.Has(IntentGuilds|IntentMessageContent))

	i, err = ParseIntents([]string{"default", "privileged"})
	require.NoError(t, err)
	assert.True(t, i.Has(IntentGuildPresences|IntentAutoModerationExecution))
	assert.Equal(t, Intents(1<<21), IntentAutoModerationExecution)

	_, err = ParseIntents([]string{"guild_mesages"})
	assert.ErrorContains(t, err, "guild_mesages")
}

func TestIdentifyEncoding(t *testing.T) {
	b, err := json.Marshal(&Identify{
		Token:          "T",
		Properties:     IdentifyProperties{OS: "linux", Browser: "cord", Device: "cord"},
		Intents:        IntentGuilds | IntentGuildMessages,
		LargeThreshold: 250,
		Shard:          &[2]int{0, 2},
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"T","properties":{"os":"linux","browser":"cord","device":"cord"},`+
		`"intents":513,"large_threshold":250,"shard":[0,2]}`, string(b))
}

func TestUpdatePresenceEncodesEmptyActivities(t *testing.T) {
	b, err := json.Marshal(&UpdatePresence{Status: StatusIdle})
	require.NoError(t, err)
	assert.JSONEq(t, `{"since":null,"activities":[],"status":"idle","afk":false}`, string(b))

	b, err = json.Marshal(&Identify{Token: "T", Presence: &UpdatePresence{Status: StatusOnline}})
	require.NoError(t, err)
	assert.Contains(t, string(b), `"activities":[]`)

	since := int64(10)
	b, err = json.Marshal(UpdatePresence{
		Since:      &since,
		Activities: []*Activity{{Name: "the logs", Type: ActivityWatching}},
		Status:     StatusDND,
		AFK:        true,
	})
	require.NoError(t, err)
	assert.JSONEq(t, `{"since":10,"activities":[{"name":"the logs","type":3}],"status":"dnd","afk":true}`, string(b))

	out := UpdatePresence{}
	require.NoError(t, json.Unmarshal(b, &out))
	assert.Equal(t, StatusDND, out.Status)
	require.Len(t, out.Activities, 1)
}
