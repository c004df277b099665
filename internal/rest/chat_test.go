package rest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pickwise/domain"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChatService struct {
	userID         uint
	conversationID uuid.UUID
	query          string
}

func (f *fakeChatService) Chat(_ context.Context, userID uint, conversationID uuid.UUID, query string) domain.ChatReply {
	f.userID = userID
	f.conversationID = conversationID
	f.query = query
	return domain.ChatReply{Answer: "ok"}
}

func postChat(t *testing.T, svc ChatService, body string) *httptest.ResponseRecorder {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("user_id", uint(7))

	require.NoError(t, NewChatHandler(svc).Chat(c))
	return rec
}

func TestChat_OmittedConversationIsStateless(t *testing.T) {
	svc := &fakeChatService{}

	rec := postChat(t, svc, `{"message":"laptop for uni under 3000"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, uint(7), svc.userID)
	assert.Equal(t, uuid.Nil, svc.conversationID)
	assert.Equal(t, "laptop for uni under 3000", svc.query)
}

func TestChat_ConversationIDPassedThrough(t *testing.T) {
	svc := &fakeChatService{}
	convID := uuid.New()

	rec := postChat(t, svc, `{"conversation_id":"`+convID.String()+`","message":"hi"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, convID, svc.conversationID)
}

func TestChat_MalformedConversationIDRejected(t *testing.T) {
	svc := &fakeChatService{}

	rec := postChat(t, svc, `{"conversation_id":"not-a-uuid","message":"hi"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.query)
}
