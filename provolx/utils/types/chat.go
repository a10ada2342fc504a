// provolx/utils/types/chat.go
package types

import "fmt"

// Column is a column descriptor as sent by the spreadsheet frontend. Only
// "name" is interpreted; any other metadata rides along untouched.
type Column map[string]interface{}

// Name returns the "name" entry as text, or "" when it is absent or null.
func (c Column) Name() string {
	v, ok := c["name"]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Row is one sample row, positionally aligned with the columns. Cells are
// JSON scalars: string, float64, bool or nil.
type Row []interface{}

type SheetData struct {
	Name        string   `json:"name,omitempty"`
	Columns     []Column `json:"columns,omitempty"`
	DataPreview []Row    `json:"dataPreview,omitempty"`
	RowCount    *int     `json:"rowCount,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message             string     `json:"message"`
	Token               string     `json:"token"`
	SheetData           *SheetData `json:"sheetData,omitempty"`
	ConversationHistory []Message  `json:"conversation_history,omitempty"`
}

type ChatResponse struct {
	Answer        string `json:"answer"`
	Model         string `json:"model"`
	Timestamp     string `json:"timestamp"`
	Visualization string `json:"visualization,omitempty"` // base64 PNG
}

// ErrorResponse mirrors the {"detail": ...} body the frontend already parses.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
