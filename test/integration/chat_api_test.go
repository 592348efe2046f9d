package integration

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"ai-chatbot-be/internal/bootstrap"
	"ai-chatbot-be/internal/config"
	"ai-chatbot-be/internal/dto"
	"ai-chatbot-be/internal/pkg/serverutils"
	"ai-chatbot-be/internal/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeOllama stands in for both the embedding and completion endpoints
// so the whole HTTP stack runs without external services.
func fakeOllama(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/embeddings", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"embedding": []float64{0.5, 0.5, 0.5},
		})
	})
	mux.HandleFunc("/api/chat", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"message": map[string]string{"role": "assistant", "content": "We are open 9-5 on weekdays."},
			"done":    true,
		})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func postJSON(t *testing.T, app interface {
	Test(req *http.Request, msTimeout ...int) (*http.Response, error)
}, path string, body interface{}) *http.Response {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, 30000)
	require.NoError(t, err)
	return resp
}

func TestChatAPITrainAndAsk(t *testing.T) {
	stub := fakeOllama(t)

	t.Setenv("KNOWLEDGE_BACKEND", "memory")
	t.Setenv("EMBEDDING_PROVIDER", "ollama")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("OLLAMA_BASE_URL", stub.URL)
	t.Setenv("OPERATOR_IDS", "op-test")
	t.Setenv("LOG_FILE_PATH", filepath.Join(t.TempDir(), "app.log"))

	cfg := config.Load()
	container := bootstrap.NewContainer(nil, cfg)
	srv := server.New(cfg, container)
	app := srv.GetApp()

	// Operator keeps their configured identity across channels.
	resp := postJSON(t, app, "/api/chat/v1/session", dto.CreateSessionRequest{UserId: "op-test"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var sessionRes serverutils.BaseResponse[dto.CreateSessionResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sessionRes))
	assert.Equal(t, "op-test", sessionRes.Data.SessionId)

	// Walk the FAQ training flow end to end.
	for _, msg := range []string{"1", "What are your hours?", "9-5 on weekdays", "yes"} {
		resp = postJSON(t, app, "/api/chat/v1/message", dto.ChatMessageRequest{
			SessionId: "op-test",
			Message:   msg,
		})
		require.Equal(t, http.StatusOK, resp.StatusCode)
	}

	var trained serverutils.BaseResponse[dto.ChatMessageResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&trained))
	assert.Contains(t, trained.Data.Reply, "Training Successful")

	// A visitor question now flows through retrieval and completion.
	resp = postJSON(t, app, "/api/chat/v1/session", dto.CreateSessionRequest{})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var visitorSession serverutils.BaseResponse[dto.CreateSessionResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&visitorSession))
	require.NotEmpty(t, visitorSession.Data.SessionId)

	resp = postJSON(t, app, "/api/chat/v1/message", dto.ChatMessageRequest{
		SessionId: visitorSession.Data.SessionId,
		Message:   "When are you open?",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var answer serverutils.BaseResponse[dto.ChatMessageResponse]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answer))
	assert.Equal(t, "We are open 9-5 on weekdays.", answer.Data.Reply)
}

func TestChatAPIValidation(t *testing.T) {
	stub := fakeOllama(t)

	t.Setenv("KNOWLEDGE_BACKEND", "memory")
	t.Setenv("EMBEDDING_PROVIDER", "ollama")
	t.Setenv("LLM_PROVIDER", "ollama")
	t.Setenv("OLLAMA_BASE_URL", stub.URL)
	t.Setenv("LOG_FILE_PATH", filepath.Join(t.TempDir(), "app.log"))

	cfg := config.Load()
	container := bootstrap.NewContainer(nil, cfg)
	app := server.New(cfg, container).GetApp()

	resp := postJSON(t, app, "/api/chat/v1/message", dto.ChatMessageRequest{Message: "hi"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
