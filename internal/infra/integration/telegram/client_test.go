package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessagePostsChatAndText(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("TOKEN", server.URL)
	err := client.SendMessage(context.Background(), 42, "привет")

	require.NoError(t, err)
	assert.Equal(t, "/botTOKEN/sendMessage", gotPath)
	assert.Equal(t, float64(42), gotBody["chat_id"])
	assert.Equal(t, "привет", gotBody["text"])
}

func TestGetUpdatesDecodesResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"ok":true,"result":[
			{"update_id":10,"message":{"message_id":1,"from":{"id":42},"chat":{"id":100},"text":"/start"}}
		]}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("TOKEN", server.URL)
	updates, err := client.GetUpdates(context.Background(), 0, 0)

	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(10), updates[0].UpdateID)
	require.NotNil(t, updates[0].Message)
	assert.Equal(t, int64(42), updates[0].Message.From.ID)
	assert.Equal(t, int64(100), updates[0].Message.Chat.ID)
	assert.Equal(t, "/start", updates[0].Message.Text)
}

func TestAPIErrorSurfacesDescription(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"ok":false,"error_code":403,"description":"Forbidden: bot was blocked by the user"}`))
	}))
	defer server.Close()

	client := NewClientWithBaseURL("TOKEN", server.URL)
	err := client.SendMessage(context.Background(), 42, "hi")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot was blocked")
}
