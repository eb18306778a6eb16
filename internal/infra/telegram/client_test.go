package telegram

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"homework_status_bot/internal/domain/homework"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

func newTestAdapter(t *testing.T, handler http.HandlerFunc) *TelebotAdapter {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	b, err := NewBot("test-token", server.URL, server.Client())
	require.NoError(t, err)
	return NewTelebotAdapter(b, testLogger())
}

// formValue reads a parameter telebot sent either as JSON or as a form.
func formValue(t *testing.T, r *http.Request, key string) string {
	t.Helper()
	if r.Header.Get("Content-Type") == "application/json" {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		v, _ := body[key].(string)
		return v
	}
	require.NoError(t, r.ParseForm())
	return r.Form.Get(key)
}

func TestTelebotAdapter_Deliver_Success(t *testing.T) {
	var gotPath, gotChat string
	adapter := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotChat = formValue(t, r, "chat_id")
		_, _ = w.Write([]byte(`{"ok":true,"result":{"message_id":7,"date":1700000000,"chat":{"id":42,"type":"private"},"text":"hi"}}`))
	})

	err := adapter.Deliver(context.Background(), "42", "hi")
	require.NoError(t, err)
	assert.Equal(t, "/bottest-token/sendMessage", gotPath)
	assert.Equal(t, "42", gotChat)
}

func TestTelebotAdapter_Deliver_APIError(t *testing.T) {
	adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`))
	})

	err := adapter.Deliver(context.Background(), "999", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, homework.ErrDelivery)
	assert.Equal(t, homework.KindDelivery, homework.KindOf(err))
}

func TestTelebotAdapter_Deliver_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := server.URL
	server.Close()

	b, err := NewBot("test-token", url, nil)
	require.NoError(t, err)
	adapter := NewTelebotAdapter(b, testLogger())

	err = adapter.Deliver(context.Background(), "42", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, homework.ErrDelivery)
}

func TestTelebotAdapter_Deliver_CancelledContext(t *testing.T) {
	called := false
	adapter := newTestAdapter(t, func(w http.ResponseWriter, _ *http.Request) {
		called = true
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := adapter.Deliver(ctx, "42", "hi")
	require.Error(t, err)
	assert.ErrorIs(t, err, homework.ErrDelivery)
	assert.False(t, called)
}

func TestChatRecipient(t *testing.T) {
	assert.Equal(t, "@homework_channel", chatRecipient("@homework_channel").Recipient())
}
