package slack

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Source) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	source := NewSource("xoxb-test", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	return srv, source
}

func TestSource_Name(t *testing.T) {
	assert.Equal(t, "Slack", NewSource("t").Name())
}

func TestSource_IsRelevantFor(t *testing.T) {
	source := NewSource("t")

	tests := []struct {
		query    string
		relevant bool
	}{
		{"what did alice say in the standup discussion", true},
		{"find the slack thread about deploys", true},
		{"any Message from bob", true},
		{"quarterly revenue spreadsheet", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.relevant, source.IsRelevantFor(tt.query), "query: %q", tt.query)
	}
}

func TestSource_Connect(t *testing.T) {
	_, source := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth.test", r.URL.Path)
		assert.Equal(t, "Bearer xoxb-test", r.Header.Get("Authorization"))
		w.Write([]byte(`{"ok": true, "team": "acme"}`))
	})

	require.NoError(t, source.Connect(context.Background()))
}

func TestSource_Connect_InvalidToken(t *testing.T) {
	_, source := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok": false, "error": "invalid_auth"}`))
	})

	err := source.Connect(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_auth")
}

func TestSource_Search(t *testing.T) {
	_, source := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.messages", r.URL.Path)
		assert.Equal(t, "deploy failure", r.URL.Query().Get("query"))
		w.Write([]byte(`{
			"ok": true,
			"messages": {"matches": [
				{"text": "the deploy failed again", "permalink": "https://acme.slack.com/p1",
				 "username": "alice", "ts": "1700000000.000100", "channel": {"name": "ops"}},
				{"text": "rollback complete", "permalink": "https://acme.slack.com/p2",
				 "username": "bob", "ts": "1700000100.000200", "channel": {"name": "ops"}}
			]}
		}`))
	})

	results, err := source.Search(context.Background(), "deploy failure")

	require.NoError(t, err)
	require.Len(t, results, 2)

	assert.Equal(t, "Slack", results[0].Source)
	assert.Equal(t, "Message in #ops", results[0].Title)
	assert.Equal(t, "the deploy failed again", results[0].Content)
	assert.Equal(t, "https://acme.slack.com/p1", results[0].URL)
	assert.InDelta(t, 1.0, results[0].RelevanceScore, 1e-9)
	assert.Equal(t, "alice", results[0].Metadata["user"])

	// Rank decay: second match scores lower.
	assert.InDelta(t, 0.9, results[1].RelevanceScore, 1e-9)
}

func TestSource_Search_APIError(t *testing.T) {
	_, source := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok": false, "error": "not_allowed_token_type"}`))
	})

	_, err := source.Search(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not_allowed_token_type")
}

func TestSource_Search_HTTPError(t *testing.T) {
	_, source := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "too many requests", http.StatusTooManyRequests)
	})

	_, err := source.Search(context.Background(), "anything")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}

func TestSource_Search_UnknownChannel(t *testing.T) {
	_, source := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"ok": true, "messages": {"matches": [{"text": "hi", "channel": {}}]}}`))
	})

	results, err := source.Search(context.Background(), "hi")

	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Message in #unknown", results[0].Title)
}
