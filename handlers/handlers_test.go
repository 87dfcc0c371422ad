package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonwraymond/scenebridge/sandbox"
	"github.com/jonwraymond/scenebridge/scene"
	"github.com/jonwraymond/scenebridge/tools"
)

// stubNode is a map-backed Node for handler tests.
type stubNode struct {
	kind  string
	props map[string]any
	calls []string
}

func (n *stubNode) Kind() string { return n.kind }

func (n *stubNode) Get(name string) (any, error) {
	v, ok := n.props[name]
	if !ok {
		return nil, scene.ErrNoSuchProperty
	}
	return v, nil
}

func (n *stubNode) Set(name string, value any) error {
	n.props[name] = value
	return nil
}

func (n *stubNode) Call(method string, args ...any) (any, error) {
	n.calls = append(n.calls, method)
	if method == "Destroy" {
		return nil, nil
	}
	return nil, scene.ErrNoSuchMethod
}

type stubInserter struct {
	path string
	err  error
}

func (s stubInserter) Insert(_ context.Context, query string) (string, error) {
	return s.path, s.err
}

// buildTools resolves the Scene provider into a map keyed by tool name.
func buildTools(t *testing.T, opts Options) map[string]tools.ToolDef {
	t.Helper()
	defs, err := Scene(opts)()
	if err != nil {
		t.Fatalf("Scene() error = %v", err)
	}
	out := make(map[string]tools.ToolDef, len(defs))
	for _, d := range defs {
		out[d.Name] = d
	}
	return out
}

func sceneOptions(node *stubNode) Options {
	return Options{
		Sandbox: sandbox.New(sandbox.Options{}),
		Resolve: func(path string) (scene.Node, error) {
			if node != nil && path == "Workspace.Part" {
				return node, nil
			}
			return nil, scene.ErrNodeNotFound
		},
	}
}

func TestScene_RequiresCapabilities(t *testing.T) {
	if _, err := Scene(Options{Resolve: func(string) (scene.Node, error) { return nil, nil }})(); !errors.Is(err, ErrSandboxRequired) {
		t.Errorf("missing sandbox error = %v", err)
	}
	if _, err := Scene(Options{Sandbox: sandbox.New(sandbox.Options{})})(); !errors.Is(err, ErrResolverRequired) {
		t.Errorf("missing resolver error = %v", err)
	}
}

func TestRunCommand(t *testing.T) {
	defs := buildTools(t, sceneOptions(nil))
	run := defs["run_command"].Handler
	ctx := context.Background()

	t.Run("output and values", func(t *testing.T) {
		v, err := run(ctx, map[string]any{"command": `print("hi") return 4`})
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		rec := v.(map[string]any)
		if rec["output"] != "hi" {
			t.Errorf("output = %v", rec["output"])
		}
		values := rec["values"].([]any)
		if len(values) != 1 || values[0] != 4.0 {
			t.Errorf("values = %v", values)
		}
	})

	t.Run("silent success", func(t *testing.T) {
		v, err := run(ctx, map[string]any{"command": `local x = 1`})
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		rec := v.(map[string]any)
		if rec["message"] != "command completed with no output" {
			t.Errorf("message = %v", rec["message"])
		}
	})

	t.Run("load failure", func(t *testing.T) {
		_, err := run(ctx, map[string]any{"command": `return return`})
		if err == nil || !strings.HasPrefix(err.Error(), "load failed:") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("runtime failure carries prior output", func(t *testing.T) {
		_, err := run(ctx, map[string]any{"command": `print("before") error("boom")`})
		if err == nil {
			t.Fatal("error = nil")
		}
		if !strings.Contains(err.Error(), "before") || !strings.Contains(err.Error(), "boom") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("empty command rejected", func(t *testing.T) {
		if _, err := run(ctx, map[string]any{"command": "  "}); err == nil {
			t.Error("error = nil")
		}
	})
}

func TestInsertModel(t *testing.T) {
	ctx := context.Background()

	t.Run("no inserter configured", func(t *testing.T) {
		defs := buildTools(t, sceneOptions(nil))
		_, err := defs["insert_model"].Handler(ctx, map[string]any{"query": "tree"})
		if err == nil || !strings.Contains(err.Error(), "no asset inserter") {
			t.Errorf("error = %v", err)
		}
	})

	t.Run("inserted", func(t *testing.T) {
		opts := sceneOptions(nil)
		opts.Insert = stubInserter{path: "Workspace.Tree"}
		defs := buildTools(t, opts)
		v, err := defs["insert_model"].Handler(ctx, map[string]any{"query": "tree"})
		if err != nil {
			t.Fatalf("handler error = %v", err)
		}
		rec := v.(map[string]any)
		if rec["message"] != "Inserted model at Workspace.Tree" {
			t.Errorf("message = %v", rec["message"])
		}
	})

	t.Run("empty query rejected", func(t *testing.T) {
		defs := buildTools(t, sceneOptions(nil))
		if _, err := defs["insert_model"].Handler(ctx, map[string]any{}); err == nil {
			t.Error("error = nil")
		}
	})
}

func TestGetProperty(t *testing.T) {
	node := &stubNode{kind: "Part", props: map[string]any{"Name": "DemoPart"}}
	defs := buildTools(t, sceneOptions(node))
	ctx := context.Background()

	v, err := defs["get_property"].Handler(ctx, map[string]any{"path": "Workspace.Part", "property": "Name"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	rec := v.(map[string]any)
	if rec["value"] != "DemoPart" {
		t.Errorf("value = %v", rec["value"])
	}

	if _, err := defs["get_property"].Handler(ctx, map[string]any{"path": "Workspace.Missing", "property": "Name"}); !errors.Is(err, scene.ErrNodeNotFound) {
		t.Errorf("missing node error = %v", err)
	}
	if _, err := defs["get_property"].Handler(ctx, map[string]any{"path": "Workspace.Part"}); err == nil {
		t.Error("missing property argument accepted")
	}
}

func TestSetProperty_ConvertsComposites(t *testing.T) {
	node := &stubNode{kind: "Part", props: map[string]any{}}
	defs := buildTools(t, sceneOptions(node))
	ctx := context.Background()

	_, err := defs["set_property"].Handler(ctx, map[string]any{
		"path":     "Workspace.Part",
		"property": "Color",
		"value":    map[string]any{"r": 1.0, "g": 0.5, "b": 0.0},
	})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	c, ok := node.props["Color"].(scene.Color3)
	if !ok {
		t.Fatalf("stored value = %T, want scene.Color3", node.props["Color"])
	}
	if c != (scene.Color3{R: 1, G: 0.5, B: 0}) {
		t.Errorf("stored value = %v", c)
	}
}

func TestSetProperty_ConversionErrorNamesField(t *testing.T) {
	node := &stubNode{kind: "Part", props: map[string]any{}}
	defs := buildTools(t, sceneOptions(node))

	_, err := defs["set_property"].Handler(context.Background(), map[string]any{
		"path":     "Workspace.Part",
		"property": "Color",
		"value":    map[string]any{"r": 1.0, "g": "loud", "b": 0.0},
	})
	if err == nil || !strings.Contains(err.Error(), "g") {
		t.Errorf("error = %v, want offending field named", err)
	}
	if _, stored := node.props["Color"]; stored {
		t.Error("failed conversion still wrote the property")
	}
}

func TestCallMethod(t *testing.T) {
	node := &stubNode{kind: "Part", props: map[string]any{}}
	defs := buildTools(t, sceneOptions(node))
	ctx := context.Background()

	v, err := defs["call_method"].Handler(ctx, map[string]any{"path": "Workspace.Part", "method": "Destroy"})
	if err != nil {
		t.Fatalf("handler error = %v", err)
	}
	rec := v.(map[string]any)
	if rec["method"] != "Destroy" {
		t.Errorf("method = %v", rec["method"])
	}
	if len(node.calls) != 1 || node.calls[0] != "Destroy" {
		t.Errorf("calls = %v", node.calls)
	}

	if _, err := defs["call_method"].Handler(ctx, map[string]any{"path": "Workspace.Part", "method": "Vanish"}); !errors.Is(err, scene.ErrNoSuchMethod) {
		t.Errorf("unknown method error = %v", err)
	}
}

func TestTitles(t *testing.T) {
	defs := buildTools(t, sceneOptions(nil))
	if got := defs["run_command"].Title; got != "Run Command" {
		t.Errorf("title = %q", got)
	}
}
