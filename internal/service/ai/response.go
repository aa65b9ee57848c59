package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/thelab/fan-chat/backend/internal/model/chat"
)

type envelope struct {
	Type    string   `json:"type"`
	Text    string   `json:"text"`
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// ParseResponse classifies raw model output. A JSON object with "type":"table"
// becomes a table, "type":"text" its text; anything that is not such an
// object is plain text and kept verbatim.
func ParseResponse(content string) (chat.Response, error) {
	body := stripFence(strings.TrimSpace(content))
	if !strings.HasPrefix(body, "{") {
		return chat.TextResponse(content), nil
	}

	decoder := json.NewDecoder(strings.NewReader(body))
	decoder.UseNumber()

	var env envelope
	if err := decoder.Decode(&env); err != nil {
		return chat.TextResponse(content), nil
	}
	if decoder.More() {
		return chat.TextResponse(content), nil
	}

	switch env.Type {
	case "":
		return chat.TextResponse(content), nil
	case string(chat.KindText):
		return chat.TextResponse(env.Text), nil
	case string(chat.KindTable):
		if len(env.Columns) == 0 {
			return chat.Response{}, fmt.Errorf("%w: table without columns", chat.ErrUnrecognizedResponse)
		}
		table := chat.Table{Columns: env.Columns, Rows: make([][]string, 0, len(env.Rows))}
		for _, row := range env.Rows {
			cells := make([]string, len(row))
			for i, cell := range row {
				cells[i] = cellString(cell)
			}
			table.Rows = append(table.Rows, cells)
		}
		return chat.TableResponse(table), nil
	default:
		return chat.Response{}, fmt.Errorf("%w: %q", chat.ErrUnrecognizedResponse, env.Type)
	}
}

// stripFence removes a surrounding ```json fence if present.
func stripFence(s string) string {
	if !strings.HasPrefix(s, "```") || !strings.HasSuffix(s, "```") || len(s) < 6 {
		return s
	}
	inner := strings.TrimSuffix(strings.TrimPrefix(s, "```"), "```")
	if nl := strings.IndexByte(inner, '\n'); nl >= 0 && !strings.Contains(inner[:nl], "{") {
		inner = inner[nl+1:]
	}
	return strings.TrimSpace(inner)
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	default:
		var buf bytes.Buffer
		if err := json.NewEncoder(&buf).Encode(val); err != nil {
			return fmt.Sprint(val)
		}
		return strings.TrimSpace(buf.String())
	}
}
