package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/jonwraymond/tooldiscovery/tooldoc"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/scenebridge/task"
)

func staticProvider(defs ...ToolDef) Provider {
	return func() ([]ToolDef, error) { return defs, nil }
}

func echoDef(name string) ToolDef {
	return ToolDef{
		Name:        name,
		Description: "Echoes its arguments back.",
		Handler: func(_ context.Context, args map[string]any) (any, error) {
			return args, nil
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) != 1 {
		t.Fatalf("content blocks = %d, want 1", len(res.Content))
	}
	tc, ok := res.Content[0].(*mcp.TextContent)
	if !ok {
		t.Fatalf("content = %T, want *mcp.TextContent", res.Content[0])
	}
	return tc.Text
}

func TestNew_RegistersTools(t *testing.T) {
	r := New(Options{}, staticProvider(echoDef("alpha"), echoDef("beta")))
	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	names := r.Names()
	if len(names) != 2 || names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("Names() = %v", names)
	}
}

func TestNew_SkipsFailedProvider(t *testing.T) {
	failing := func() ([]ToolDef, error) { return nil, errors.New("not wired") }
	r := New(Options{}, failing, staticProvider(echoDef("survivor")))
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want the surviving provider's tool", r.Len())
	}
}

func TestNew_SkipsBadDefinitions(t *testing.T) {
	unnamed := ToolDef{Handler: func(context.Context, map[string]any) (any, error) { return nil, nil }}
	handlerless := ToolDef{Name: "inert"}
	dup := echoDef("twice")
	r := New(Options{}, staticProvider(unnamed, handlerless, dup, dup))
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want only the first valid registration", r.Len())
	}
}

func TestDispatch_Success(t *testing.T) {
	r := New(Options{}, staticProvider(ToolDef{
		Name: "greet",
		Handler: func(context.Context, map[string]any) (any, error) {
			return map[string]any{"message": "hello"}, nil
		},
	}))
	res := r.Dispatch(context.Background(), "greet", map[string]any{})
	if res.IsError {
		t.Fatalf("IsError = true, text = %q", resultText(t, res))
	}
	if got := resultText(t, res); got != "hello" {
		t.Errorf("text = %q", got)
	}
}

func TestDispatch_HandlerError(t *testing.T) {
	r := New(Options{}, staticProvider(ToolDef{
		Name: "faulty",
		Handler: func(context.Context, map[string]any) (any, error) {
			return nil, fmt.Errorf("faulty: bad input")
		},
	}))
	res := r.Dispatch(context.Background(), "faulty", map[string]any{})
	if !res.IsError {
		t.Fatal("IsError = false, want error envelope")
	}
	if got := resultText(t, res); got != "faulty: bad input" {
		t.Errorf("text = %q", got)
	}
}

func TestDispatch_ToolNotFound(t *testing.T) {
	r := New(Options{})
	res := r.Dispatch(context.Background(), "ghost", map[string]any{})
	if !res.IsError {
		t.Fatal("IsError = false")
	}
	if got := resultText(t, res); got != "Tool not found: ghost" {
		t.Errorf("text = %q", got)
	}
}

func TestDispatch_ArgumentErrorShortCircuits(t *testing.T) {
	called := false
	r := New(Options{}, staticProvider(ToolDef{
		Name: "watched",
		Handler: func(context.Context, map[string]any) (any, error) {
			called = true
			return nil, nil
		},
	}))
	res := r.Dispatch(context.Background(), "watched", map[string]any{task.ArgErrorKey: "invalid arguments: truncated"})
	if !res.IsError {
		t.Fatal("IsError = false")
	}
	if got := resultText(t, res); got != "invalid arguments: truncated" {
		t.Errorf("text = %q", got)
	}
	if called {
		t.Error("handler ran despite the decode-stage failure")
	}
}

func TestDispatch_SentinelCompletesUnregistered(t *testing.T) {
	r := New(Options{})
	res := r.Dispatch(context.Background(), task.SentinelTool, map[string]any{task.ArgErrorKey: task.UnrecognizedMessage})
	if !res.IsError {
		t.Fatal("IsError = false")
	}
	if got := resultText(t, res); got != task.UnrecognizedMessage {
		t.Errorf("text = %q", got)
	}
}

func TestDispatch_PanicBecomesErrorEnvelope(t *testing.T) {
	r := New(Options{}, staticProvider(ToolDef{
		Name: "volatile",
		Handler: func(context.Context, map[string]any) (any, error) {
			panic("wires crossed")
		},
	}))
	res := r.Dispatch(context.Background(), "volatile", map[string]any{})
	if !res.IsError {
		t.Fatal("IsError = false")
	}
	got := resultText(t, res)
	if !strings.Contains(got, "internal error in volatile") || !strings.Contains(got, "wires crossed") {
		t.Errorf("text = %q", got)
	}
}

func TestSearchAndDescribe(t *testing.T) {
	def := echoDef("paint_part")
	def.Description = "Paints a part with a palette color."
	def.Doc = tooldoc.DocEntry{Summary: "Paints a part.", Notes: "Accepts palette names."}
	r := New(Options{Namespace: "demo"}, staticProvider(def))

	results, err := r.Search("palette", 5)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) == 0 || results[0].ID != "demo:paint_part" {
		t.Errorf("Search() = %v", results)
	}

	doc, err := r.Describe("paint_part", tooldoc.DetailFull)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if doc.Summary != "Paints a part." {
		t.Errorf("Describe() summary = %q", doc.Summary)
	}
}

func TestCatalog(t *testing.T) {
	r := New(Options{}, staticProvider(echoDef("b_tool"), echoDef("a_tool")))
	cat := r.Catalog()
	if len(cat) != 2 {
		t.Fatalf("Catalog() = %d entries", len(cat))
	}
	if cat[0].Name != "a_tool" || cat[1].Name != "b_tool" {
		t.Errorf("Catalog() order = %s, %s", cat[0].Name, cat[1].Name)
	}
	if cat[0].Namespace != DefaultNamespace {
		t.Errorf("namespace = %q", cat[0].Namespace)
	}
}
