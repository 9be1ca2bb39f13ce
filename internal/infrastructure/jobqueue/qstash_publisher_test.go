package jobqueue

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/goalpool/prediction-league/internal/platform/logging"
	"github.com/goalpool/prediction-league/internal/platform/resilience"
)

type capturedPublish struct {
	path    string
	headers http.Header
	body    string
}

func newTestPublisher(t *testing.T, status int, captured *capturedPublish) (*QStashPublisher, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if captured != nil {
			raw, _ := io.ReadAll(r.Body)
			captured.path = r.URL.Path
			captured.headers = r.Header.Clone()
			captured.body = string(raw)
		}
		w.WriteHeader(status)
	}))
	t.Cleanup(server.Close)

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:          server.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://predictions.example.com",
		Retries:          3,
		InternalJobToken: "job-secret",
		Timeout:          2 * time.Second,
		CircuitBreaker:   resilience.CircuitBreakerConfig{Enabled: false},
	}, logging.NewNop())

	return publisher, server
}

func TestQStashPublisher_EnqueueSetsUpstashHeaders(t *testing.T) {
	t.Parallel()

	var captured capturedPublish
	publisher, _ := newTestPublisher(t, http.StatusOK, &captured)

	err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/recalculate", map[string]any{"reason": "result_recorded"}, 30*time.Second, "match-42")
	require.NoError(t, err)

	require.Equal(t, "/v2/publish/https://predictions.example.com/v1/internal/jobs/recalculate", captured.path)
	require.Equal(t, "Bearer qstash-token", captured.headers.Get("Authorization"))
	require.Equal(t, http.MethodPost, captured.headers.Get("Upstash-Method"))
	require.Equal(t, "3", captured.headers.Get("Upstash-Retries"))
	require.Equal(t, "30s", captured.headers.Get("Upstash-Delay"))
	require.Equal(t, "match-42", captured.headers.Get("Upstash-Deduplication-Id"))
	require.Equal(t, "job-secret", captured.headers.Get("Upstash-Forward-X-Internal-Job-Token"))
	require.JSONEq(t, `{"reason":"result_recorded"}`, captured.body)
}

func TestQStashPublisher_EnqueueGlobalRecalcTargetsJobEndpoint(t *testing.T) {
	t.Parallel()

	var captured capturedPublish
	publisher, _ := newTestPublisher(t, http.StatusCreated, &captured)

	err := publisher.EnqueueGlobalRecalc(context.Background())
	require.NoError(t, err)
	require.True(t, strings.HasSuffix(captured.path, GlobalRecalcPath))
	require.Empty(t, captured.headers.Get("Upstash-Delay"))
	require.Empty(t, captured.headers.Get("Upstash-Deduplication-Id"))
}

func TestQStashPublisher_EnqueueRejectsEmptyPath(t *testing.T) {
	t.Parallel()

	publisher, _ := newTestPublisher(t, http.StatusOK, nil)

	err := publisher.Enqueue(context.Background(), "   ", nil, 0, "")
	require.Error(t, err)
}

func TestQStashPublisher_NonRetryableStatusFails(t *testing.T) {
	t.Parallel()

	publisher, _ := newTestPublisher(t, http.StatusBadRequest, nil)

	err := publisher.Enqueue(context.Background(), "/v1/internal/jobs/recalculate", nil, 0, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "status=400")
}

func TestQStashPublisher_CircuitOpensAfterTransientFailures(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	t.Cleanup(server.Close)

	publisher := NewQStashPublisher(QStashPublisherConfig{
		BaseURL:       server.URL,
		Token:         "qstash-token",
		TargetBaseURL: "https://predictions.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Minute,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())

	require.Error(t, publisher.Enqueue(context.Background(), GlobalRecalcPath, nil, 0, ""))
	require.Error(t, publisher.Enqueue(context.Background(), GlobalRecalcPath, nil, 0, ""))

	err := publisher.Enqueue(context.Background(), GlobalRecalcPath, nil, 0, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "temporarily unavailable")
}

func TestNormalizeDelay(t *testing.T) {
	t.Parallel()

	require.Equal(t, "0s", normalizeDelay(0))
	require.Equal(t, "0s", normalizeDelay(-time.Second))
	require.Equal(t, "90s", normalizeDelay(90*time.Second))
	require.Equal(t, "2s", normalizeDelay(1500*time.Millisecond))
}

func TestValidateHTTPBaseURL(t *testing.T) {
	t.Parallel()

	got, err := validateHTTPBaseURL("https://qstash.upstash.io/")
	require.NoError(t, err)
	require.Equal(t, "https://qstash.upstash.io", got)

	_, err = validateHTTPBaseURL("")
	require.Error(t, err)

	_, err = validateHTTPBaseURL("ftp://qstash.upstash.io")
	require.Error(t, err)
}

func TestBuildCurlPreviewMasksSecrets(t *testing.T) {
	t.Parallel()

	preview := buildCurlPreview("https://qstash.upstash.io/v2/publish/https://predictions.example.com/v1/internal/jobs/recalculate", "30s", 3, "match-42", `{"reason":"result_recorded"}`, true)

	require.Contains(t, preview, "Authorization: Bearer ***")
	require.Contains(t, preview, "Upstash-Forward-X-Internal-Job-Token: ***")
	require.Contains(t, preview, "Upstash-Delay: 30s")
	require.NotContains(t, preview, "job-secret")
	require.NotContains(t, preview, "qstash-token")
}
