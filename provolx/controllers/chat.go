// provolx/controllers/chat.go
package controllers

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"provolx/provolx/services/analysis"
	"provolx/provolx/services/chart"
	"provolx/provolx/services/llm"
	"provolx/provolx/utils/jsonutils"
	"provolx/provolx/utils/logging"
	"provolx/provolx/utils/types"
)

const previewRows = 3

const closingInstruction = `Please provide a helpful response. If the question involves data analysis that would benefit from visualization,
please suggest creating a chart or graph and describe what type of visualization would be most appropriate.`

// Renderer produces a base64 chart or reports that there is none.
type Renderer func(columns []types.Column, sample []types.Row) (string, bool)

type ChatController struct {
	llm    llm.Generator
	render Renderer
	now    func() time.Time
}

func NewChatController(gen llm.Generator) *ChatController {
	return &ChatController{llm: gen, render: chart.Render, now: time.Now}
}

// ChatResult is the orchestrator's output before it is put on the wire.
type ChatResult struct {
	Answer        string
	Model         string
	GeneratedAt   time.Time
	Visualization string
}

func (r ChatResult) Response() types.ChatResponse {
	return types.ChatResponse{
		Answer:        r.Answer,
		Model:         r.Model,
		Timestamp:     r.GeneratedAt.Format(time.RFC3339Nano),
		Visualization: r.Visualization,
	}
}

// Validate applies the request checks that must pass before any upstream call.
func Validate(req types.ChatRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return ErrEmptyMessage
	}
	if req.Token == "" {
		return ErrMissingToken
	}
	return nil
}

// Chat validates req, asks the model, and attaches a chart when the message asks for one.
func (c *ChatController) Chat(ctx context.Context, req types.ChatRequest) (ChatResult, error) {
	defer logging.LogDuration(ctx, "chat_controller_chat")()

	if err := Validate(req); err != nil {
		logging.AppLogger.Warn("Rejected chat request",
			zap.String("trace_id", logging.TraceID(ctx)), zap.String("detail", err.Error()))
		return ChatResult{}, err
	}
	c.logRequest(ctx, req)

	prompt := BuildPrompt(req)

	answer, err := c.llm.Generate(ctx, prompt)
	if err != nil {
		upstreamErr := &UpstreamError{Err: err}
		logging.ErrorLogger.Error("Error in AI chat",
			zap.String("trace_id", logging.TraceID(ctx)), zap.Error(err))
		return ChatResult{}, upstreamErr
	}

	result := ChatResult{
		Answer:      answer,
		Model:       c.llm.Model(),
		GeneratedAt: c.now(),
	}

	if WantsChart(req) {
		var columns []types.Column
		var sample []types.Row
		if req.SheetData != nil {
			columns, sample = req.SheetData.Columns, req.SheetData.DataPreview
		}
		if payload, ok := c.render(columns, sample); ok {
			result.Visualization = payload
		}
	}

	logging.AppLogger.Info("Generated response",
		zap.String("trace_id", logging.TraceID(ctx)),
		zap.String("answer", truncate(answer, 100)),
		zap.Bool("visualization", result.Visualization != ""),
	)
	return result, nil
}

// WantsChart keeps the historical precedence: the dataset guard only scopes
// "chart"; "graph" and "visualize" trigger on their own.
func WantsChart(req types.ChatRequest) bool {
	msg := strings.ToLower(req.Message)
	hasSample := req.SheetData != nil && len(req.SheetData.DataPreview) > 0
	return hasSample && strings.Contains(msg, "chart") ||
		strings.Contains(msg, "graph") ||
		strings.Contains(msg, "visualize")
}

// BuildPrompt flattens instructions, history, sheet context and the question
// into the single text block sent upstream.
func BuildPrompt(req types.ChatRequest) string {
	instruction := analysis.SystemPrompt
	sheet := req.SheetData
	if sheet != nil && len(sheet.Columns) > 0 {
		domain := analysis.Classify(sheet.Columns, sheet.DataPreview)
		instruction = analysis.Compose(domain, sheet.Columns, sheet.Name)
	}

	history := make([]string, len(req.ConversationHistory))
	for i, msg := range req.ConversationHistory {
		history[i] = msg.Role + ": " + msg.Content
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(instruction)
	b.WriteString("\n\nConversation History:\n")
	b.WriteString(strings.Join(history, "\n"))
	b.WriteString("\n\n")
	b.WriteString(sheetContext(sheet))
	b.WriteString("\n\nUser Question: ")
	b.WriteString(req.Message)
	b.WriteString("\n\n")
	b.WriteString(closingInstruction)
	b.WriteString("\n")
	return b.String()
}

func sheetContext(sheet *types.SheetData) string {
	if sheet == nil || len(sheet.DataPreview) == 0 {
		return ""
	}

	name := sheet.Name
	if name == "" {
		name = "Unnamed Sheet"
	}
	rowCount := "Unknown"
	if sheet.RowCount != nil && *sheet.RowCount != 0 {
		rowCount = fmt.Sprint(*sheet.RowCount)
	}
	preview := sheet.DataPreview
	if len(preview) > previewRows {
		preview = preview[:previewRows]
	}

	return fmt.Sprintf(`
Sheet Data Context:
- Sheet Name: %s
- Row Count: %s
- Columns: %s
- Data Preview: %s
`, name, rowCount, analysis.ColumnList(sheet.Columns, "Unnamed", "None provided"), jsonutils.Compact(preview))
}

func (c *ChatController) logRequest(ctx context.Context, req types.ChatRequest) {
	fields := []zap.Field{
		zap.String("trace_id", logging.TraceID(ctx)),
		zap.String("message", truncate(req.Message, 50)),
		zap.String("token", maskToken(req.Token)),
		zap.Bool("has_sheet_data", req.SheetData != nil),
		zap.Int("history_turns", len(req.ConversationHistory)),
	}
	if s := req.SheetData; s != nil {
		rows := 0
		if s.RowCount != nil {
			rows = *s.RowCount
		}
		fields = append(fields,
			zap.String("sheet_name", s.Name),
			zap.Int("sheet_rows", rows),
			zap.Int("data_preview_length", len(s.DataPreview)),
		)
	}
	logging.AppLogger.Info("Received AI request", fields...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}

// maskToken keeps enough of the token to correlate requests in logs.
func maskToken(token string) string {
	r := []rune(token)
	if len(r) <= 4 {
		return "****"
	}
	return string(r[:4]) + "****"
}
