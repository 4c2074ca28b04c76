package cord

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGatewayReadsGood(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/gateway/bot", r.URL.Path)
		assert.Equal(t, "Bot tooken", r.Header.Get("Authorization"))
		fmt.Fprintln(w, `{"url":"wss://gateway.discord.gg","shards":1}`)
	}))
	defer ts.Close()

	gw, err := HTTPGatewayRetriever{
		Client:  http.DefaultClient,
		BaseURL: ts.URL,
		Token:   "tooken",
	}.Gateway(context.Background())

	assert.Nil(t, err)
	assert.Equal(t, "wss://gateway.discord.gg", gw)
}

func TestGatewayErrorsOnBadPacket(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"url":"wss://ga`)
	}))
	defer ts.Close()

	_, err := HTTPGatewayRetriever{BaseURL: ts.URL}.Gateway(context.Background())

	assert.NotNil(t, err)
}

func TestGatewayErrorsOnEmptyURL(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, `{"shards":1}`)
	}))
	defer ts.Close()

	_, err := HTTPGatewayRetriever{BaseURL: ts.URL}.Gateway(context.Background())

	assert.NotNil(t, err)
}

func TestGatewayErrorsOnStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		fmt.Fprintln(w, `{"message": "401: Unauthorized", "code": 0}`)
	}))
	defer ts.Close()

	_, err := HTTPGatewayRetriever{BaseURL: ts.URL}.Gateway(context.Background())

	assert.ErrorContains(t, err, "401")
}

func TestGatewayPropogateHTTPError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(100 * time.Millisecond)
		fmt.Fprintln(w, `{"url":"wss://gateway.discord.gg"}`)
	}))
	defer ts.Close()

	_, err := HTTPGatewayRetriever{
		Client:  &http.Client{Timeout: time.Nanosecond},
		BaseURL: ts.URL,
	}.Gateway(context.Background())

	assert.NotNil(t, err)
}

func TestStaticGateway(t *testing.T) {
	gw, err := StaticGateway("ws://localhost").Gateway(context.Background())
	assert.Nil(t, err)
	assert.Equal(t, "ws://localhost", gw)
}
