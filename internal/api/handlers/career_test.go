package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"career-relay/internal/api/validation"
	"career-relay/pkg/models"
	"career-relay/pkg/utils"
)

// stubService records calls and returns canned results
type stubService struct {
	mu sync.Mutex

	records []any
	reply   string
	err     error

	recommendPayloads []map[string]any
	chatMessages      []any
	sectors           []any
}

func (s *stubService) Recommend(_ context.Context, payload map[string]any) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recommendPayloads = append(s.recommendPayloads, payload)
	return s.records, s.err
}

func (s *stubService) Chat(_ context.Context, message any) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.chatMessages = append(s.chatMessages, message)
	return s.reply, s.err
}

func (s *stubService) MarketTrends(_ context.Context, sector any) ([]any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sectors = append(s.sectors, sector)
	return s.records, s.err
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = &validation.EchoValidator{Validator: validation.New()}
	return e
}

func serve(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) models.ErrorResponse {
	t.Helper()
	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRecommendationsHandler_Success(t *testing.T) {
	svc := &stubService{records: []any{map[string]any{"title": "Go Engineer", "company": "Acme"}}}
	e := newEcho()
	e.POST("/recommendations", RecommendationsHandler(svc))

	rec := serve(t, e, http.MethodPost, "/recommendations",
		`{"preferences": "Remote", "skills": "Go", "detailed_expectations": "startup"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recommendations": [{"title": "Go Engineer", "company": "Acme"}]}`, rec.Body.String())

	require.Len(t, svc.recommendPayloads, 1)
	payload := svc.recommendPayloads[0]
	assert.Equal(t, "Remote", *payload["preferences"].(*string))
	assert.Equal(t, "Go", *payload["skills"].(*string))
	assert.Equal(t, "startup", *payload["detailed_expectations"].(*string))
}

func TestRecommendationsHandler_EmptyResultIsSuccess(t *testing.T) {
	svc := &stubService{records: []any{}}
	e := newEcho()
	e.POST("/recommendations", RecommendationsHandler(svc))

	rec := serve(t, e, http.MethodPost, "/recommendations", `{"preferences": "", "skills": ""}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"recommendations": []}`, rec.Body.String())
	assert.NotContains(t, svc.recommendPayloads[0], "detailed_expectations")
}

func TestRecommendationsHandler_MissingSkills(t *testing.T) {
	svc := &stubService{}
	e := newEcho()
	e.POST("/recommendations", RecommendationsHandler(svc))

	rec := serve(t, e, http.MethodPost, "/recommendations", `{"preferences": "Remote"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, "validation_failed", resp.Error)
	assert.Contains(t, resp.Detail, "skills")
	assert.Empty(t, svc.recommendPayloads, "service must not be invoked")
}

func TestRecommendationsHandler_MalformedBody(t *testing.T) {
	svc := &stubService{}
	e := newEcho()
	e.POST("/recommendations", RecommendationsHandler(svc))

	for _, body := range []string{`{"preferences": `, `{"preferences": 1, "skills": "Go"}`, `{"preferences": null, "skills": "Go"}`} {
		rec := serve(t, e, http.MethodPost, "/recommendations", body)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code, body)
	}
	assert.Empty(t, svc.recommendPayloads)
}

func TestRecommendationsHandler_InternalFault(t *testing.T) {
	svc := &stubService{err: utils.NewLLMError("gemini", errors.New("dial tcp: connection refused"))}
	e := newEcho()
	e.POST("/recommendations", RecommendationsHandler(svc))

	rec := serve(t, e, http.MethodPost, "/recommendations", `{"preferences": "Remote", "skills": "Go"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	resp := decodeError(t, rec)
	assert.Equal(t, recommendationFailureDetail, resp.Detail)
	assert.NotContains(t, rec.Body.String(), "connection refused")
}

func TestRecommendationsHandler_DispatcherValidationError(t *testing.T) {
	svc := &stubService{err: utils.NewValidationError("Unknown mode: mode(9)", models.ErrUnknownMode)}
	e := newEcho()
	e.POST("/recommendations", RecommendationsHandler(svc))

	rec := serve(t, e, http.MethodPost, "/recommendations", `{"preferences": "Remote", "skills": "Go"}`)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Unknown mode: mode(9)", decodeError(t, rec).Detail)
}

func TestChatHandler(t *testing.T) {
	svc := &stubService{reply: "Hello! How can I help?"}
	e := newEcho()
	e.POST("/chat", ChatHandler(svc))

	rec := serve(t, e, http.MethodPost, "/chat", `{"message": "Hi"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"response": "Hello! How can I help?"}`, rec.Body.String())
	require.Len(t, svc.chatMessages, 1)
	assert.Equal(t, "Hi", *svc.chatMessages[0].(*string))
}

func TestChatHandler_MissingMessage(t *testing.T) {
	svc := &stubService{}
	e := newEcho()
	e.POST("/chat", ChatHandler(svc))

	rec := serve(t, e, http.MethodPost, "/chat", `{}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, svc.chatMessages)
}

func TestChatHandler_InternalFault(t *testing.T) {
	svc := &stubService{err: errors.New("boom")}
	e := newEcho()
	e.POST("/chat", ChatHandler(svc))

	rec := serve(t, e, http.MethodPost, "/chat", `{"message": "Hi"}`)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, chatFailureDetail, decodeError(t, rec).Detail)
}

func TestMarketTrendsHandler(t *testing.T) {
	svc := &stubService{records: []any{map[string]any{"title": "AI", "description": "Learn it"}}}
	e := newEcho()
	e.GET("/market-trends", MarketTrendsHandler(svc))

	rec := serve(t, e, http.MethodGet, "/market-trends?sector=Healthcare", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"market_trends": [{"title": "AI", "description": "Learn it"}]}`, rec.Body.String())

	rec = serve(t, e, http.MethodGet, "/market-trends", "")
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, svc.sectors, 2)
	assert.Equal(t, "Healthcare", svc.sectors[0])
	assert.Nil(t, svc.sectors[1])
}

func TestMarketTrendsHandler_InternalFault(t *testing.T) {
	svc := &stubService{err: errors.New("boom")}
	e := newEcho()
	e.GET("/market-trends", MarketTrendsHandler(svc))

	rec := serve(t, e, http.MethodGet, "/market-trends?sector=Tech", "")

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, marketTrendsFailureDetail, decodeError(t, rec).Detail)
}

func TestHandlers_LongInputsAreAccepted(t *testing.T) {
	svc := &stubService{records: []any{}, reply: "ok"}
	e := newEcho()
	e.POST("/recommendations", RecommendationsHandler(svc))
	e.POST("/chat", ChatHandler(svc))
	e.GET("/market-trends", MarketTrendsHandler(svc))

	long := strings.Repeat("a", 9000)

	rec := serve(t, e, http.MethodPost, "/recommendations",
		`{"preferences": "`+long+`", "skills": "`+long+`", "detailed_expectations": "`+long+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, e, http.MethodPost, "/chat", `{"message": "`+long+`"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = serve(t, e, http.MethodGet, "/market-trends?sector="+strings.Repeat("b", 500), "")
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, svc.sectors, 1)
	assert.Equal(t, strings.Repeat("b", 500), svc.sectors[0])
	require.Len(t, svc.chatMessages, 1)
	assert.Equal(t, long, *svc.chatMessages[0].(*string))
}
