package task

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Tool names the shorthand shapes map to, and the sentinel for unrecognized
// payloads. The sentinel is never registered, so dispatch resolves it through
// the argument error path.
const (
	RunCommandTool  = "run_command"
	InsertModelTool = "insert_model"
	SentinelTool    = "__unrecognized"
)

// ArgErrorKey marks an argument record that carries a decode-stage failure
// instead of real arguments. Dispatch turns it into an error result without
// invoking a handler.
const ArgErrorKey = "error"

// UnrecognizedMessage is the deterministic error for payloads matching none
// of the known task shapes.
const UnrecognizedMessage = "Unrecognized task structure"

// ErrDecode is a hard decode failure: the payload never became a task and
// the coordinator must resend it.
var ErrDecode = errors.New("task: decode failure")

// Task is one decoded request to invoke a named tool.
type Task struct {
	// ID is the correlation token echoed back with the result.
	ID string

	// ToolName is the registry name to dispatch to.
	ToolName string

	// Args is the argument record. An ArgErrorKey entry means decoding of
	// the arguments themselves failed.
	Args map[string]any
}

// envelope is the top-level wire record.
type envelope struct {
	ID   string          `json:"id"`
	Args json.RawMessage `json:"args"`
}

// shorthand mirrors the coordinator's externally tagged task variants.
type shorthand struct {
	RunCommand  *runCommandArgs  `json:"RunCommand"`
	InsertModel *insertModelArgs `json:"InsertModel"`
	ToolName    string           `json:"tool_name"`
	Arguments   json.RawMessage  `json:"arguments"`
}

type runCommandArgs struct {
	Command string `json:"command"`
}

type insertModelArgs struct {
	Query string `json:"query"`
}

// Decode turns one wire payload into a Task. A malformed payload (bad JSON,
// missing id) returns ErrDecode and consumes nothing; every other payload
// yields a dispatchable task, using the sentinel error path for shapes the
// decoder does not recognize.
func Decode(payload []byte) (Task, error) {
	var env envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return Task{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if env.ID == "" {
		return Task{}, fmt.Errorf("%w: missing task id", ErrDecode)
	}

	t := Task{ID: env.ID}
	if len(env.Args) == 0 {
		return unrecognized(t), nil
	}

	var sh shorthand
	if err := json.Unmarshal(env.Args, &sh); err != nil {
		return unrecognized(t), nil
	}

	switch {
	case sh.ToolName != "":
		t.ToolName = sh.ToolName
		t.Args = decodeArguments(sh.Arguments)
	case sh.RunCommand != nil:
		t.ToolName = RunCommandTool
		t.Args = map[string]any{"command": sh.RunCommand.Command}
	case sh.InsertModel != nil:
		t.ToolName = InsertModelTool
		t.Args = map[string]any{"query": sh.InsertModel.Query}
	default:
		return unrecognized(t), nil
	}
	return t, nil
}

// decodeArguments resolves the direct-by-name argument document. It accepts
// an inline object or a JSON string holding one; a failure to decode yields
// an ArgErrorKey record so the task still completes through the error path.
func decodeArguments(raw json.RawMessage) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}

	// A string argument is itself a JSON document.
	var embedded string
	if err := json.Unmarshal(raw, &embedded); err == nil {
		if embedded == "" {
			return map[string]any{}
		}
		raw = []byte(embedded)
	}

	var args map[string]any
	if err := json.Unmarshal(raw, &args); err != nil {
		return map[string]any{ArgErrorKey: fmt.Sprintf("invalid arguments: %v", err)}
	}
	if args == nil {
		args = map[string]any{}
	}
	return args
}

func unrecognized(t Task) Task {
	t.ToolName = SentinelTool
	t.Args = map[string]any{ArgErrorKey: UnrecognizedMessage}
	return t
}
