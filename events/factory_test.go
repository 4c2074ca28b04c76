package events

import (
	"errors"
	"testing"

	"github.com/WatchBeam/cord/v2/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeReady(t *testing.T) {
	ev, err := Decode("READY", []byte(`{
		"v": 10,
		"session_id": "abc",
		"resume_gateway_url": "wss://resume.example",
		"user": {"id": "80351110224678912", "username": "cord", "bot": true},
		"guilds": [{"id": "41771983423143937", "unavailable": true}],
		"application": {"id": "80351110224678912", "flags": 0},
		"_trace": ["ignored"]
	}`))
	require.Nil(t, err)

	r, ok := ev.(*model.Ready)
	require.True(t, ok)
	assert.Equal(t, "abc", r.SessionID)
	assert.Equal(t, "wss://resume.example", r.ResumeGatewayURL)
	assert.Equal(t, model.ID(80351110224678912), r.User.ID)
	assert.True(t, r.User.Bot)
	require.Len(t, r.Guilds, 1)
	assert.True(t, r.Guilds[0].Unavailable)
}

func TestDecodeGuildCreateFillsGuildIDs(t *testing.T) {
	ev, err := Decode("GUILD_CREATE", []byte(`{
		"id": "41771983423143937",
		"name": "test",
		"channels": [{"id": "41771983423143938", "type": 0, "name": "general"}],
		"members": [{"user": {"id": "1"}, "roles": [], "joined_at": "2015-04-26T06:26:56.936000+00:00"}],
		"voice_states": [{"user_id": "1", "channel_id": "41771983423143939", "session_id": "s"}]
	}`))
	require.Nil(t, err)

	g := ev.(*model.GuildCreate)
	require.NotNil(t, g.Channels[0].GuildID)
	assert.Equal(t, g.ID, *g.Channels[0].GuildID)
	assert.Equal(t, g.ID, *g.Members[0].GuildID)
	assert.Equal(t, g.ID, *g.VoiceStates[0].GuildID)
	assert.Equal(t, 1, g.MemberCount)
}

func TestDecodeMessageCreateAttachesAuthorToMember(t *testing.T) {
	ev, err := Decode("MESSAGE_CREATE", []byte(`{
		"id": "2", "channel_id": "3", "guild_id": "4",
		"author": {"id": "5", "username": "u"},
		"member": {"roles": []},
		"content": "hi",
		"timestamp": "2017-07-11T17:27:07.299000+00:00",
		"edited_timestamp": null
	}`))
	require.Nil(t, err)

	m := ev.(*model.MessageCreate)
	assert.Equal(t, "hi", m.Content)
	assert.Nil(t, m.EditedTimestamp)
	require.NotNil(t, m.Member)
	assert.Same(t, m.Author, m.Member.User)
}

func TestDecodeVoiceStateWithNullChannel(t *testing.T) {
	ev, err := Decode("VOICE_STATE_UPDATE", []byte(`{"guild_id":"1","channel_id":null,"user_id":"2","session_id":"x"}`))
	require.Nil(t, err)

	v := ev.(*model.VoiceStateUpdate)
	assert.Nil(t, v.ChannelID)
	assert.Equal(t, model.ID(2), v.UserID)
}

func TestDecodeResumedWithNullData(t *testing.T) {
	ev, err := Decode("RESUMED", []byte(`null`))
	require.Nil(t, err)
	assert.Equal(t, "RESUMED", ev.Kind())
}

func TestDecodeUnknownKind(t *testing.T) {
	_, err := Decode("SOMETHING_NEW", []byte(`{}`))
	assert.ErrorIs(t, err, ErrUnknownKind)
	assert.False(t, Known("SOMETHING_NEW"))
	assert.True(t, Known("INTERACTION_CREATE"))
}

func TestDecodeBadPayload(t *testing.T) {
	_, err := Decode("CHANNEL_CREATE", []byte(`{"id": 12`))
	assert.NotNil(t, err)
	assert.False(t, errors.Is(err, ErrUnknownKind))
}

func TestTypedHandlers(t *testing.T) {
	var got *model.ChannelCreate
	h := ChannelCreate(func(c *model.ChannelCreate) error {
		got = c
		return nil
	})
	assert.Equal(t, "CHANNEL_CREATE", h.Name())

	ev := &model.ChannelCreate{}
	assert.Nil(t, h.Invoke(ev))
	assert.Same(t, ev, got)

	var mismatch *MismatchError
	assert.ErrorAs(t, h.Invoke(&model.Ready{}), &mismatch)
	assert.Equal(t, "READY", mismatch.Got)
}

func TestHandlerErrorUnwraps(t *testing.T) {
	cause := errors.New("boom")
	err := &HandlerError{Event: "MESSAGE_CREATE", Err: cause}

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "EXCEPTION", err.Kind())
	assert.Equal(t, "EXCEPTION", Exception(func(*HandlerError) error { return nil }).Name())
}
