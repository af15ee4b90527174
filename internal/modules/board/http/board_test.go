package http

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	plathttp "board/internal/platform/http"
	"board/internal/platform/security"
)

const testSecret = "test-secret"

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()
	return plathttp.NewServer(plathttp.Options{AppName: "test"}, NewModule(testSecret))
}

func authHeader(t *testing.T, userID string) string {
	t.Helper()
	jwtMgr := security.NewJWTManager(testSecret, 15*time.Minute)
	token, _, err := jwtMgr.IssueAccess(userID, "parent", uuid.New().String())
	require.NoError(t, err)
	return "Bearer " + token
}

func doJSON(t *testing.T, app *fiber.App, method, path, auth string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]any{}
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out))
	}
	return resp.StatusCode, out
}

func TestPostsRequireAuth(t *testing.T) {
	app := newTestApp(t)
	status, body := doJSON(t, app, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body["error_code"])
}

func TestPostCRUD(t *testing.T) {
	app := newTestApp(t)
	author := uuid.New().String()
	auth := authHeader(t, author)

	status, post := doJSON(t, app, http.MethodPost, "/api/v1/posts", auth, map[string]any{
		"title": "Bake sale on Friday",
		"body":  "Sign-up sheet is by the front door.",
	})
	require.Equal(t, http.StatusCreated, status)
	postID := post["id"].(string)
	assert.Equal(t, author, post["author_id"])

	status, got := doJSON(t, app, http.MethodGet, "/api/v1/posts/"+postID, auth, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bake sale on Friday", got["title"])

	status, list := doJSON(t, app, http.MethodGet, "/api/v1/posts", auth, nil)
	require.Equal(t, http.StatusOK, status)
	assert.EqualValues(t, 1, list["total"])

	status, upd := doJSON(t, app, http.MethodPatch, "/api/v1/posts/"+postID, auth, map[string]any{
		"title": "Bake sale moved to Monday",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Bake sale moved to Monday", upd["title"])

	// someone else cannot edit or delete it
	other := authHeader(t, uuid.New().String())
	status, _ = doJSON(t, app, http.MethodPatch, "/api/v1/posts/"+postID, other, map[string]any{
		"title": "hijacked",
	})
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/posts/"+postID, other, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/posts/"+postID, auth, nil)
	require.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodGet, "/api/v1/posts/"+postID, auth, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestComments(t *testing.T) {
	app := newTestApp(t)
	auth := authHeader(t, uuid.New().String())

	status, post := doJSON(t, app, http.MethodPost, "/api/v1/posts", auth, map[string]any{
		"title": "Lost mitten", "body": "Blue, left by the sandbox.",
	})
	require.Equal(t, http.StatusCreated, status)
	postID := post["id"].(string)

	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/posts/"+postID+"/comments", auth, map[string]any{
		"body": "Found it, it is in the office.",
	})
	require.Equal(t, http.StatusCreated, status)

	// comments on a missing post are rejected
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/posts/"+uuid.New().String()+"/comments", auth, map[string]any{
		"body": "hello?",
	})
	assert.Equal(t, http.StatusNotFound, status)

	status, list := doJSON(t, app, http.MethodGet, "/api/v1/posts/"+postID+"/comments", auth, nil)
	require.Equal(t, http.StatusOK, status)
	comments := list["comments"].([]any)
	assert.Len(t, comments, 1)
}

func TestMemos(t *testing.T) {
	app := newTestApp(t)
	user := uuid.New().String()
	auth := authHeader(t, user)

	status, memo := doJSON(t, app, http.MethodPost, "/api/v1/memos", auth, map[string]any{
		"body": "Pick up art supplies",
	})
	require.Equal(t, http.StatusCreated, status)
	memoID := memo["id"].(string)

	// memos are private to their owner
	other := authHeader(t, uuid.New().String())
	status, list := doJSON(t, app, http.MethodGet, "/api/v1/memos", other, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, list["memos"])

	status, upd := doJSON(t, app, http.MethodPatch, "/api/v1/memos/"+memoID, auth, map[string]any{
		"body": "Pick up art supplies before Friday",
	})
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Pick up art supplies before Friday", upd["body"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/memos/"+memoID, auth, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestMessages(t *testing.T) {
	app := newTestApp(t)
	alice := uuid.New().String()
	bob := uuid.New().String()
	aliceAuth := authHeader(t, alice)
	bobAuth := authHeader(t, bob)

	status, msg := doJSON(t, app, http.MethodPost, "/api/v1/messages", aliceAuth, map[string]any{
		"recipient_id": bob,
		"body":         "Is the field trip still on?",
	})
	require.Equal(t, http.StatusCreated, status)
	msgID := msg["id"].(string)

	// both sides see the conversation
	status, conv := doJSON(t, app, http.MethodGet, "/api/v1/messages/"+alice, bobAuth, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, conv["messages"].([]any), 1)

	// only the recipient can mark it read
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/messages/"+msgID+"/read", aliceAuth, nil)
	assert.Equal(t, http.StatusNotFound, status)
	status, _ = doJSON(t, app, http.MethodPost, "/api/v1/messages/"+msgID+"/read", bobAuth, nil)
	assert.Equal(t, http.StatusOK, status)
}

func TestPushTokens(t *testing.T) {
	app := newTestApp(t)
	auth := authHeader(t, uuid.New().String())

	status, _ := doJSON(t, app, http.MethodPost, "/api/v1/push-tokens", auth, map[string]any{
		"token": "fcm-token-abc123", "platform": "android",
	})
	require.Equal(t, http.StatusCreated, status)

	status, resp := doJSON(t, app, http.MethodPost, "/api/v1/push-tokens", auth, map[string]any{
		"token": "fcm-token-abc123", "platform": "watch",
	})
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "VALIDATION_ERROR", resp["error_code"])

	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/push-tokens/fcm-token-abc123", auth, nil)
	assert.Equal(t, http.StatusOK, status)
	status, _ = doJSON(t, app, http.MethodDelete, "/api/v1/push-tokens/fcm-token-abc123", auth, nil)
	assert.Equal(t, http.StatusNotFound, status)
}
