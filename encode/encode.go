package encode

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Encoding limits. MaxLength bounds the rendered text. Nesting is capped at
// two levels: record fields render in full, composites inside them render as
// shallow previews of at most PreviewFields fields, and anything deeper
// collapses to an ellipsis.
const (
	MaxLength     = 200
	PreviewFields = 3
)

const ellipsis = "..."

// Record renders a result record as bounded text. A string "message" field
// that fits the budget is returned alone; otherwise the record is rendered
// as sorted key=value fragments, stopping with an ellipsis once the budget
// would be exceeded.
func Record(rec map[string]any) string {
	if msg, ok := rec["message"].(string); ok && len(msg) <= MaxLength {
		return msg
	}

	keys := make([]string, 0, len(rec))
	for k := range rec {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		frag := k + "=" + renderValue(rec[k], 1)
		sep := ""
		if b.Len() > 0 {
			sep = ", "
		}
		if b.Len()+len(sep)+len(frag) > MaxLength {
			b.WriteString(ellipsis)
			break
		}
		b.WriteString(sep)
		b.WriteString(frag)
	}
	return b.String()
}

// Value renders any handler result as bounded text. Strings pass through
// (truncated to the budget), records go through Record, and everything else
// is formatted compactly.
func Value(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return clip(t)
	case map[string]any:
		return Record(t)
	default:
		return clip(renderValue(v, 1))
	}
}

// Text wraps already-rendered text in the uniform single-content envelope.
func Text(text string, isError bool) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
		IsError: isError,
	}
}

// Error wraps an error outcome: the plain message inside the error envelope.
func Error(message string) *mcp.CallToolResult {
	return Text(message, true)
}

func clip(s string) string {
	if len(s) <= MaxLength {
		return s
	}
	return s[:MaxLength] + ellipsis
}

// renderValue renders one value at the given nesting depth. Record fields
// sit at depth 1; composites there become previews, composites below that
// collapse.
func renderValue(v any, depth int) string {
	switch t := v.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(t)
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'g', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case map[string]any:
		if depth > 1 {
			return "{" + ellipsis + "}"
		}
		return renderPreview(t, depth)
	case []any:
		if depth > 1 {
			return "[" + ellipsis + "]"
		}
		limit := len(t)
		if limit > PreviewFields {
			limit = PreviewFields
		}
		parts := make([]string, 0, limit+1)
		for _, item := range t[:limit] {
			parts = append(parts, renderValue(item, depth+1))
		}
		if limit < len(t) {
			parts = append(parts, ellipsis)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprintf("%v", t)
	}
}

// renderPreview renders a nested composite as a shallow preview of at most
// PreviewFields fields, keys sorted.
func renderPreview(m map[string]any, depth int) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	limit := len(keys)
	if limit > PreviewFields {
		limit = PreviewFields
	}
	parts := make([]string, 0, limit+1)
	for _, k := range keys[:limit] {
		parts = append(parts, k+"="+renderValue(m[k], depth+1))
	}
	if limit < len(keys) {
		parts = append(parts, ellipsis)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
