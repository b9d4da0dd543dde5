package realtime

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync/atomic"

	"github.com/zishang520/engine.io-client-go/transports"
	"github.com/zishang520/engine.io/v2/types"
	sioclient "github.com/zishang520/socket.io-client-go/socket"

	"github.com/vk/taskorder/internal/api"
	"github.com/vk/taskorder/internal/ctxlog"
	"github.com/vk/taskorder/internal/scheduler"
	"github.com/vk/taskorder/internal/task"
)

// RemoteError is a rejection reported by the server.
type RemoteError struct {
	Code    string
	Message string
}

func (e *RemoteError) Error() string {
	return e.Message
}

// Unwrap maps the error code back to the local sentinel, so callers can
// classify remote and local failures the same way.
func (e *RemoteError) Unwrap() error {
	switch api.ErrorCode(e.Code) {
	case api.CodeInvalidInput:
		return scheduler.ErrInvalidInput
	case api.CodeUnknownDependency:
		return scheduler.ErrUnknownDependency
	case api.CodeCycleDetected:
		return scheduler.ErrCycleDetected
	default:
		return nil
	}
}

// payload is the wire form of a schedule event.
type payload struct {
	ProjectID string        `json:"projectId"`
	Tasks     []task.Record `json:"tasks"`
}

type result struct {
	resp *api.ScheduleResponse
	err  error
}

// Submit connects to the server at rawURL, emits one schedule event and
// waits for the reply or for ctx to end. An empty URL path means
// DefaultPath.
func Submit(ctx context.Context, rawURL, projectID string, tasks []task.Task) (*api.ScheduleResponse, error) {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse URL: %w", err)
	}
	if parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, fmt.Errorf("invalid server URL %q: scheme and host are required", rawURL)
	}
	path := parsedURL.Path
	if path == "" || path == "/" {
		path = DefaultPath
	}

	logger := ctxlog.FromContext(ctx).With("url", rawURL, "project_id", projectID)
	logger.Debug("Submitting schedule over socket.io.", "tasks", len(tasks))

	var isConnected atomic.Bool
	done := make(chan result, 1)
	deliver := func(r result) {
		select {
		case done <- r:
		default:
		}
	}

	baseURL := fmt.Sprintf("%s://%s", parsedURL.Scheme, parsedURL.Host)
	opts := sioclient.DefaultOptions()
	opts.SetPath(path)
	opts.SetTransports(types.NewSet(transports.WebSocket))

	manager := sioclient.NewManager(baseURL, opts)
	io := manager.Socket("/", opts)
	defer func() {
		logger.Debug("Disconnecting socket client.")
		io.Disconnect()
	}()

	io.On(types.EventName("connect"), func(...any) {
		isConnected.Store(true)
		logger.Debug("Connected.", "sid", io.Id())
		io.Emit(EventSchedule, payload{ProjectID: projectID, Tasks: task.ToRecords(tasks)})
	})

	io.On(types.EventName("connect_error"), func(errs ...any) {
		if len(errs) > 0 {
			if err, ok := errs[0].(error); ok {
				deliver(result{err: fmt.Errorf("connect to %s: %w", rawURL, err)})
				return
			}
		}
		deliver(result{err: fmt.Errorf("connect to %s failed", rawURL)})
	})

	io.On(types.EventName(EventResult), func(data ...any) {
		var resp api.ScheduleResponse
		if err := decodeReply(data, &resp); err != nil {
			deliver(result{err: err})
			return
		}
		deliver(result{resp: &resp})
	})

	io.On(types.EventName(EventError), func(data ...any) {
		var body api.ErrorResponse
		if err := decodeReply(data, &body); err != nil {
			deliver(result{err: err})
			return
		}
		deliver(result{err: &RemoteError{Code: body.Code, Message: body.Error}})
	})

	io.Connect()

	select {
	case <-ctx.Done():
		if isConnected.Load() {
			return nil, fmt.Errorf("timed out after connecting while waiting for %q: %w", EventResult, ctx.Err())
		}
		return nil, fmt.Errorf("timed out while waiting for initial connection: %w", ctx.Err())
	case res := <-done:
		return res.resp, res.err
	}
}

func decodeReply(data []any, v any) error {
	if len(data) == 0 {
		return errors.New("empty reply from server")
	}
	raw, err := json.Marshal(data[0])
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("decode reply: %w", err)
	}
	return nil
}
