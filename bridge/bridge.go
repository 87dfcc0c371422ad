package bridge

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/jonwraymond/scenebridge/encode"
	"github.com/jonwraymond/scenebridge/task"
)

// Correlation headers on the poll request.
const (
	HeaderTaskID    = "X-Task-Id"
	HeaderSessionID = "X-Session-Id"
)

// pendingResponse is the sole mutable state threading task correlation
// across round-trips: at most one computed-but-undelivered result.
type pendingResponse struct {
	taskID string
	body   []byte
}

// Bridge is the poll loop. Create it with New and drive it with Run from a
// single goroutine.
type Bridge struct {
	opts    Options
	session string
	enabled atomic.Bool

	// pending is only touched from the Run goroutine.
	pending *pendingResponse
}

// New creates a Bridge.
func New(opts Options) (*Bridge, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts.applyDefaults()

	b := &Bridge{
		opts:    opts,
		session: uuid.NewString(),
	}
	b.enabled.Store(true)
	return b, nil
}

// SessionID returns the id sent with every poll, letting the coordinator
// tell reconnects apart.
func (b *Bridge) SessionID() string {
	return b.session
}

// Stop requests cooperative shutdown. The loop observes it at iteration
// boundaries, so latency is bounded by one request timeout plus one tool
// execution.
func (b *Bridge) Stop() {
	b.enabled.Store(false)
}

// Run drives the poll loop until Stop is called or ctx is done. Each
// iteration delivers the previous result (if any), waits for the next task,
// and dispatches it synchronously. Run never returns a task-level error;
// only cancellation ends it.
func (b *Bridge) Run(ctx context.Context) error {
	for b.enabled.Load() {
		if err := ctx.Err(); err != nil {
			return err
		}

		// The pending response is consumed before the attempt: delivery
		// is at-most-once, and a transport failure drops the result.
		pending := b.pending
		b.pending = nil

		payload, err := b.exchange(ctx, pending)
		if err := ctx.Err(); err != nil {
			return err
		}
		if err != nil {
			b.opts.Logger.Warn("poll exchange failed", zap.Error(err))
			if pending != nil {
				b.opts.Logger.Warn("dropping undelivered result", zap.String("task", pending.taskID))
			}
			if err := sleep(ctx, b.opts.RetryBackoff); err != nil {
				return err
			}
			continue
		}

		if len(payload) == 0 {
			if err := sleep(ctx, b.opts.PollInterval); err != nil {
				return err
			}
			continue
		}

		t, err := task.Decode(payload)
		if err != nil {
			// Hard decode failure: abort the iteration, consume nothing.
			// The poll interval paces the retry in case the coordinator
			// keeps serving the same malformed payload.
			b.opts.Logger.Error("task decode failed", zap.Error(err))
			if err := sleep(ctx, b.opts.PollInterval); err != nil {
				return err
			}
			continue
		}

		result := b.dispatch(ctx, t)
		b.pending = b.encodePending(t.ID, result)
	}
	return nil
}

// exchange performs one blocking poll round-trip. The request carries the
// previous result when one is pending, else an empty body; the response is
// the next task payload, or empty when the coordinator has nothing.
func (b *Bridge) exchange(ctx context.Context, pending *pendingResponse) ([]byte, error) {
	var body io.Reader
	if pending != nil {
		body = bytes.NewReader(pending.body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.opts.Endpoint, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderSessionID, b.session)
	if pending != nil {
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set(HeaderTaskID, pending.taskID)
	}

	resp, err := b.opts.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNoContent {
		return nil, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("coordinator returned %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// dispatch runs one task through the registry, bracketed by the host's
// undo/redo checkpoint when one is configured.
func (b *Bridge) dispatch(ctx context.Context, t task.Task) *mcp.CallToolResult {
	if b.opts.Checkpoint != nil {
		done := b.opts.Checkpoint("Task: " + t.ToolName)
		defer done()
	}
	return b.opts.Registry.Dispatch(ctx, t.ToolName, t.Args)
}

// encodePending marshals the envelope for the next delivery attempt.
func (b *Bridge) encodePending(taskID string, result *mcp.CallToolResult) *pendingResponse {
	body, err := json.Marshal(result)
	if err != nil {
		b.opts.Logger.Error("result marshal failed", zap.String("task", taskID), zap.Error(err))
		body, _ = json.Marshal(encode.Error("internal error: result not encodable"))
	}
	return &pendingResponse{taskID: taskID, body: body}
}

// sleep waits for d, returning early if ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
