// provolx/services/bench/bench.go
package bench

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"provolx/provolx/utils/logging"
	"provolx/provolx/utils/types"
)

const (
	AIHealthName      = "AI Service Health"
	AIChatName        = "AI Chat Response"
	BackendHealthName = "Backend Health"
)

// Options controls what a Runner targets and how hard it pushes.
type Options struct {
	AIURL          string
	BackendURL     string // optional; backend probes are skipped when empty
	Workers        int
	HealthRequests int
	ChatRequests   int
	Client         *http.Client
}

func DefaultOptions() Options {
	return Options{
		AIURL:          "http://localhost:8001",
		Workers:        5,
		HealthRequests: 20,
		ChatRequests:   10,
	}
}

// Result is the outcome of one timed request.
type Result struct {
	Endpoint       string  `json:"endpoint"`
	ResponseTimeMs float64 `json:"response_time_ms,omitempty"`
	StatusCode     int     `json:"status_code,omitempty"`
	Success        bool    `json:"success"`
	ResponseLength int     `json:"response_length,omitempty"`
	Error          string  `json:"error,omitempty"`
}

// ConcurrentResult aggregates the successful requests of a concurrent run.
// Timing fields are only set when at least one request succeeded.
type ConcurrentResult struct {
	Endpoint           string   `json:"endpoint"`
	TotalRequests      int      `json:"total_requests"`
	SuccessfulRequests int      `json:"successful_requests"`
	AvgResponseTime    *float64 `json:"avg_response_time,omitempty"`
	MinResponseTime    *float64 `json:"min_response_time,omitempty"`
	MaxResponseTime    *float64 `json:"max_response_time,omitempty"`
	MedianResponseTime *float64 `json:"median_response_time,omitempty"`
	Error              string   `json:"error,omitempty"`
}

type Report struct {
	RunID      string             `json:"run_id"`
	Single     []Result           `json:"single"`
	Concurrent []ConcurrentResult `json:"concurrent"`
	Successful int                `json:"successful"`
	Failed     int                `json:"failed"`
}

// FailedResults lists the single-request results that did not succeed.
func (r Report) FailedResults() []Result {
	var out []Result
	for _, res := range r.Single {
		if !res.Success {
			out = append(out, res)
		}
	}
	return out
}

// Probe issues one timed request.
type Probe func(ctx context.Context) Result

type Runner struct {
	opts   Options
	client *http.Client
}

func NewRunner(opts Options) *Runner {
	def := DefaultOptions()
	if opts.AIURL == "" {
		opts.AIURL = def.AIURL
	}
	if opts.Workers <= 0 {
		opts.Workers = def.Workers
	}
	if opts.HealthRequests <= 0 {
		opts.HealthRequests = def.HealthRequests
	}
	if opts.ChatRequests <= 0 {
		opts.ChatRequests = def.ChatRequests
	}
	opts.AIURL = strings.TrimRight(opts.AIURL, "/")
	opts.BackendURL = strings.TrimRight(opts.BackendURL, "/")

	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: 2 * time.Minute}
	}
	return &Runner{opts: opts, client: client}
}

// ChatPayload is the vehicle maintenance request used to time /chat.
func ChatPayload() types.ChatRequest {
	rowCount := 3
	return types.ChatRequest{
		Message: "What are the common maintenance tasks for a 2023 VW Taigun?",
		Token:   "test_token",
		SheetData: &types.SheetData{
			Name: "Vehicle Maintenance Data",
			Columns: []types.Column{
				{"name": "VehicleID"}, {"name": "Model"}, {"name": "Year"}, {"name": "ServiceType"}, {"name": "Mileage"},
			},
			DataPreview: []types.Row{
				{"V1001", "VW Taigun", 2023, "Oil Change", 15000},
				{"V1002", "VW Taigun", 2023, "Tire Rotation", 30000},
				{"V1003", "VW Taigun", 2023, "Brake Service", 45000},
			},
			RowCount: &rowCount,
		},
	}
}

func (r *Runner) AIHealth(ctx context.Context) Result {
	return r.timed(ctx, AIHealthName, http.MethodGet, r.opts.AIURL+"/health", nil, false)
}

func (r *Runner) AIChat(ctx context.Context) Result {
	body, err := json.Marshal(ChatPayload())
	if err != nil {
		return Result{Endpoint: AIChatName, Error: err.Error()}
	}
	return r.timed(ctx, AIChatName, http.MethodPost, r.opts.AIURL+"/chat", body, true)
}

func (r *Runner) BackendHealth(ctx context.Context) Result {
	return r.timed(ctx, BackendHealthName, http.MethodGet, r.opts.BackendURL+"/", nil, false)
}

func (r *Runner) timed(ctx context.Context, name, method, url string, body []byte, measureBody bool) Result {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return Result{Endpoint: name, Error: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return Result{Endpoint: name, Error: err.Error()}
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	elapsed := time.Since(start)
	if err != nil {
		return Result{Endpoint: name, StatusCode: resp.StatusCode, Error: fmt.Sprintf("read body: %v", err)}
	}

	res := Result{
		Endpoint:       name,
		ResponseTimeMs: float64(elapsed.Microseconds()) / 1000,
		StatusCode:     resp.StatusCode,
		Success:        resp.StatusCode == http.StatusOK,
	}
	if measureBody && res.Success {
		res.ResponseLength = len(data)
	}
	return res
}

// Concurrent fires n requests through probe with at most Workers in flight.
func (r *Runner) Concurrent(ctx context.Context, name string, probe Probe, n int) ConcurrentResult {
	results := make([]Result, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.opts.Workers)
	for i := 0; i < n; i++ {
		g.Go(func() error {
			results[i] = probe(gctx)
			return nil
		})
	}
	_ = g.Wait()

	var times []float64
	for _, res := range results {
		if res.Success {
			times = append(times, res.ResponseTimeMs)
		}
	}

	out := ConcurrentResult{Endpoint: name, TotalRequests: n, SuccessfulRequests: len(times)}
	if len(times) == 0 {
		out.Error = "All requests failed"
		return out
	}
	avg, lo, hi, median := stats(times)
	out.AvgResponseTime, out.MinResponseTime, out.MaxResponseTime, out.MedianResponseTime = &avg, &lo, &hi, &median
	return out
}

// Run executes every single-request probe in order, then the concurrent runs.
func (r *Runner) Run(ctx context.Context) Report {
	report := Report{RunID: uuid.NewString()}
	defer logging.LogDuration(logging.WithTraceID(ctx, report.RunID), "bench_run")()

	probes := []Probe{r.AIHealth, r.AIChat}
	if r.opts.BackendURL != "" {
		probes = append([]Probe{r.BackendHealth}, probes...)
	}
	for _, probe := range probes {
		res := probe(ctx)
		report.Single = append(report.Single, res)
		if res.Success {
			report.Successful++
		} else {
			report.Failed++
		}
		logging.AppLogger.Info("benchmark result",
			zap.String("run_id", report.RunID),
			zap.String("endpoint", res.Endpoint),
			zap.Bool("success", res.Success),
			zap.Float64("response_time_ms", res.ResponseTimeMs),
		)
	}

	report.Concurrent = append(report.Concurrent,
		r.Concurrent(ctx, AIHealthName, r.AIHealth, r.opts.HealthRequests),
		r.Concurrent(ctx, AIChatName, r.AIChat, r.opts.ChatRequests),
	)
	if r.opts.BackendURL != "" {
		report.Concurrent = append(report.Concurrent,
			r.Concurrent(ctx, BackendHealthName, r.BackendHealth, r.opts.HealthRequests))
	}
	return report
}

// stats averages the two middle values for an even-length median.
func stats(values []float64) (avg, lo, hi, median float64) {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 1 {
		median = sorted[n/2]
	} else {
		median = (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return stat.Mean(sorted, nil), floats.Min(sorted), floats.Max(sorted), median
}
