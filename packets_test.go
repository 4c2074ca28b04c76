package cord

import (
	"encoding/json"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/WatchBeam/cord/v2/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGatewayURL(t *testing.T) {
	u, err := gatewayURL("wss://gateway.discord.gg", 10, true)
	require.NoError(t, err)

	parsed, err := url.Parse(u)
	require.NoError(t, err)
	assert.Equal(t, "/", parsed.Path)
	assert.Equal(t, url.Values{
		"v":        {"10"},
		"encoding": {"json"},
		"compress": {"zlib-stream"},
	}, parsed.Query())

	u, err = gatewayURL("wss://resume.example.com/?compress=zlib-stream&v=9", 10, false)
	require.NoError(t, err)
	assert.Equal(t, "wss://resume.example.com/?encoding=json&v=10", u)

	_, err = gatewayURL("://nope", 10, true)
	assert.Error(t, err)
}

func TestOperationString(t *testing.T) {
	assert.Equal(t, "HELLO", Hello.String())
	assert.Equal(t, "REQUEST_GUILD_MEMBERS", RequestGuildMembers.String())
	assert.Equal(t, "OP(5)", Operation(5).String())
	assert.Equal(t, "OP(42)", Operation(42).String())
}

func TestPayloadDecoding(t *testing.T) {
	p := &Payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"op":0,"s":7,"t":"TYPING_START","d":{"user_id":"1"}}`), p))
	assert.Equal(t, Dispatch, p.Operation)
	require.NotNil(t, p.Sequence)
	assert.Equal(t, uint64(7), *p.Sequence)
	assert.Equal(t, "TYPING_START", p.Event)
	assert.JSONEq(t, `{"user_id":"1"}`, string(p.Data))

	p = &Payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"op":11,"s":null,"t":null,"d":null}`), p))
	assert.Equal(t, HeartbeatAck, p.Operation)
	assert.Nil(t, p.Sequence)
}

func TestFrameEncoding(t *testing.T) {
	b, err := json.Marshal(&frame{Operation: Heartbeat, Data: (*uint64)(nil)})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":1,"d":null}`, string(b))

	seq := uint64(42)
	b, err = json.Marshal(&frame{Operation: Heartbeat, Data: &seq})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":1,"d":42}`, string(b))
}

func TestControlFramesDecodeToWhatWasSent(t *testing.T) {
	since := int64(1700000000000)
	cases := []struct {
		op   Operation
		data interface{}
		into interface{}
	}{
		{
			op: Identify,
			data: &model.Identify{
				Token:          "T",
				Properties:     model.IdentifyProperties{OS: "linux", Browser: "cord", Device: "cord"},
				Intents:        model.IntentGuilds | model.IntentGuildMessages,
				LargeThreshold: 250,
				Shard:          &[2]int{1, 4},
				Presence: &model.UpdatePresence{
					Activities: []*model.Activity{},
					Status:     model.StatusOnline,
				},
			},
			into: &model.Identify{},
		},
		{
			op:   Resume,
			data: &model.Resume{Token: "T", SessionID: "abc", Sequence: 0},
			into: &model.Resume{},
		},
		{
			op:   Resume,
			data: &model.Resume{Token: "T", SessionID: "abc", Sequence: 42},
			into: &model.Resume{},
		},
		{
			op: PresenceUpdate,
			data: &model.UpdatePresence{
				Since:      &since,
				Activities: []*model.Activity{{Name: "the logs", Type: model.ActivityWatching}},
				Status:     model.StatusIdle,
				AFK:        true,
			},
			into: &model.UpdatePresence{},
		},
	}

	for _, tc := range cases {
		t.Run(tc.op.String(), func(t *testing.T) {
			b, err := json.Marshal(&frame{Operation: tc.op, Data: tc.data})
			require.NoError(t, err)

			p := &Payload{}
			require.NoError(t, json.Unmarshal(b, p))
			assert.Equal(t, tc.op, p.Operation)
			assert.Nil(t, p.Sequence)
			assert.Equal(t, "", p.Event)

			require.NoError(t, json.Unmarshal(p.Data, tc.into))
			assert.Equal(t, tc.data, tc.into)
		})
	}
}

func TestResumeCarriesZeroSequence(t *testing.T) {
	b, err := json.Marshal(&frame{Operation: Resume, Data: &model.Resume{Token: "T", SessionID: "abc"}})
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":6,"d":{"token":"T","session_id":"abc","seq":0}}`, string(b))
}

func TestHeartbeatInterval(t *testing.T) {
	d, err := heartbeatInterval(json.RawMessage(`{"heartbeat_interval":41250}`))
	require.NoError(t, err)
	assert.Equal(t, 41250*time.Millisecond, d)

	d, err = heartbeatInterval(json.RawMessage(fmt.Sprintf(`{"heartbeat_interval":%d}`, maxHeartbeatInterval)))
	require.NoError(t, err)
	assert.Greater(t, d, time.Duration(0))

	for _, bad := range []string{
		`{"heartbeat_interval":0}`,
		`{"heartbeat_interval":-1}`,
		fmt.Sprintf(`{"heartbeat_interval":%d}`, maxHeartbeatInterval+1),
		`{"heartbeat_interval":9300000000000000}`,
		`{"heartbeat_interval":99999999999999999999}`,
		`{"heartbeat_interval":"soon"}`,
		`{}`,
		`null`,
	} {
		_, err := heartbeatInterval(json.RawMessage(bad))
		assert.Error(t, err, bad)
	}
}
