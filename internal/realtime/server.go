package realtime

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	sio "github.com/zishang520/socket.io/v2/socket"

	"github.com/vk/taskorder/internal/api"
	"github.com/vk/taskorder/internal/ctxlog"
)

// Server answers schedule events on the default namespace.
type Server struct {
	io     *sio.Server
	logger *slog.Logger
}

// NewServer creates a socket.io server with the schedule handler attached.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{
		io:     sio.NewServer(nil, nil),
		logger: logger.With("transport", "socket.io"),
	}
	s.io.On("connection", s.onConnection)
	return s
}

// Handler returns the HTTP handler to mount at DefaultPath.
func (s *Server) Handler() http.Handler {
	return s.io.ServeHandler(nil)
}

// Close disconnects every client.
func (s *Server) Close() {
	s.io.Close(nil)
}

func (s *Server) onConnection(clients ...any) {
	if len(clients) == 0 {
		return
	}
	client, ok := clients[0].(*sio.Socket)
	if !ok {
		s.logger.Warn("Unexpected connection argument.", "type", fmt.Sprintf("%T", clients[0]))
		return
	}
	logger := s.logger.With("sid", client.Id())
	logger.Debug("Client connected.")

	client.On(EventSchedule, func(args ...any) {
		ctx := ctxlog.WithLogger(context.Background(), logger.With("request_id", uuid.NewString()))
		event, payload := Handle(ctx, args...)
		client.Emit(event, payload)
	})
	client.On("disconnect", func(reason ...any) {
		logger.Debug("Client disconnected.", "reason", reason)
	})
}

// Handle processes one schedule event and returns the reply event name and
// payload.
func Handle(ctx context.Context, args ...any) (string, any) {
	logger := ctxlog.FromContext(ctx)

	resp, err := handle(ctx, args)
	if err != nil {
		httpErr := api.MapError(err)
		if httpErr.StatusCode >= http.StatusInternalServerError {
			logger.Error("Schedule event failed.", "error", err)
		} else {
			logger.Info("Schedule event rejected.", "code", httpErr.Code, "error", err)
		}
		return EventError, httpErr.Response()
	}
	logger.Info("Schedule event answered.", "project_id", resp.ProjectID, "tasks", len(resp.RecommendedOrder))
	return EventResult, resp
}

func handle(ctx context.Context, args []any) (*api.ScheduleResponse, error) {
	req, err := decodeRequest(args)
	if err != nil {
		return nil, err
	}
	return api.Schedule(ctx, req.ProjectID, req)
}

// decodeRequest accepts the first event argument as either a decoded JSON
// object or a raw JSON string.
func decodeRequest(args []any) (*api.ScheduleRequest, error) {
	if len(args) == 0 || args[0] == nil {
		return nil, api.ErrMissingTasks
	}

	var raw []byte
	switch v := args[0].(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode event payload: %w", err)
		}
		raw = b
	}

	var req api.ScheduleRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return nil, api.ErrMissingTasks
	}
	return &req, nil
}
