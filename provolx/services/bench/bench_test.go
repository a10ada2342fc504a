package bench

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"provolx/provolx/utils/types"
)

func fakeAIService(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"healthy"}`))
	})
	mux.HandleFunc("/chat", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.SheetData == nil {
			http.Error(w, "bad", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"answer":"ok"}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestRunAgainstHealthyService(t *testing.T) {
	srv := fakeAIService(t)
	r := NewRunner(Options{AIURL: srv.URL + "/", HealthRequests: 4, ChatRequests: 3, Workers: 2})

	report := r.Run(context.Background())
	require.NotEmpty(t, report.RunID)
	require.Len(t, report.Single, 2)
	assert.Equal(t, AIHealthName, report.Single[0].Endpoint)
	assert.Equal(t, AIChatName, report.Single[1].Endpoint)
	assert.Equal(t, len(`{"answer":"ok"}`), report.Single[1].ResponseLength)
	assert.Equal(t, 2, report.Successful)
	assert.Zero(t, report.Failed)
	assert.Empty(t, report.FailedResults())

	require.Len(t, report.Concurrent, 2)
	assert.Equal(t, 4, report.Concurrent[0].TotalRequests)
	assert.Equal(t, 4, report.Concurrent[0].SuccessfulRequests)
	assert.Equal(t, 3, report.Concurrent[1].SuccessfulRequests)
	require.NotNil(t, report.Concurrent[1].MedianResponseTime)
}

func TestBackendProbeFailure(t *testing.T) {
	srv := fakeAIService(t)
	dead := httptest.NewServer(http.NotFoundHandler())
	dead.Close()

	r := NewRunner(Options{AIURL: srv.URL, BackendURL: dead.URL, HealthRequests: 2, ChatRequests: 1})
	report := r.Run(context.Background())

	require.Len(t, report.Single, 3)
	assert.Equal(t, BackendHealthName, report.Single[0].Endpoint)
	assert.False(t, report.Single[0].Success)
	assert.NotEmpty(t, report.Single[0].Error)
	assert.Equal(t, 1, report.Failed)
	assert.Len(t, report.FailedResults(), 1)

	require.Len(t, report.Concurrent, 3)
	backend := report.Concurrent[2]
	assert.Equal(t, "All requests failed", backend.Error)
	assert.Zero(t, backend.SuccessfulRequests)
	assert.Nil(t, backend.AvgResponseTime)
}

func TestConcurrentRespectsWorkerLimit(t *testing.T) {
	var inFlight, peak int32
	probe := func(ctx context.Context) Result {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		atomic.AddInt32(&inFlight, -1)
		return Result{Endpoint: "x", Success: true, ResponseTimeMs: 10}
	}

	r := NewRunner(Options{Workers: 3})
	res := r.Concurrent(context.Background(), "x", probe, 12)
	assert.Equal(t, 12, res.SuccessfulRequests)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(3))
}

func TestNonOKStatusIsFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	res := NewRunner(Options{AIURL: srv.URL}).AIChat(context.Background())
	assert.False(t, res.Success)
	assert.Equal(t, http.StatusInternalServerError, res.StatusCode)
	assert.Zero(t, res.ResponseLength)
}

func TestStats(t *testing.T) {
	avg, lo, hi, median := stats([]float64{4, 1, 3, 2})
	assert.Equal(t, 2.5, avg)
	assert.Equal(t, 1.0, lo)
	assert.Equal(t, 4.0, hi)
	assert.Equal(t, 2.5, median)

	_, _, _, median = stats([]float64{5, 1, 9})
	assert.Equal(t, 5.0, median)
}
