package app

import (
	"context"
	"fmt"

	"github.com/vk/taskorder/internal/api"
	"github.com/vk/taskorder/internal/ctxlog"
	"github.com/vk/taskorder/internal/realtime"
	"github.com/vk/taskorder/internal/render"
	"github.com/vk/taskorder/internal/scheduler"
	"github.com/vk/taskorder/internal/task"
)

// Run executes the mode selected by the configuration and blocks until it
// finishes. In serve mode that is when ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")
	defer a.logger.Debug("App.Run method finished.")

	if a.config.Serve {
		return a.serve(ctx)
	}

	model, err := a.loader.Load(ctx, a.config.TaskPaths...)
	if err != nil {
		return fmt.Errorf("failed to load task files: %w", err)
	}

	project := a.config.Project
	if project == "" {
		project = model.Project
	}
	if project == "" {
		project = DefaultProject
	}
	tasks := model.Tasks
	if tasks == nil {
		tasks = []task.Task{}
	}

	var resp *api.ScheduleResponse
	if a.config.RemoteURL != "" {
		resp, err = a.scheduleRemote(ctx, project, tasks)
	} else {
		resp, err = a.scheduleLocal(ctx, project, tasks)
	}
	if err != nil {
		return err
	}

	return render.Write(a.outW, a.config.Output, resp, tasks)
}

func (a *App) scheduleLocal(ctx context.Context, project string, tasks []task.Task) (*api.ScheduleResponse, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Computing recommended order.", "project_id", project, "tasks", len(tasks))

	order, err := scheduler.Schedule(tasks)
	if err != nil {
		return nil, fmt.Errorf("failed to schedule tasks: %w", err)
	}
	return &api.ScheduleResponse{ProjectID: project, RecommendedOrder: order}, nil
}

func (a *App) scheduleRemote(ctx context.Context, project string, tasks []task.Task) (*api.ScheduleResponse, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Info("Submitting tasks to remote scheduler.", "url", a.config.RemoteURL, "project_id", project, "tasks", len(tasks))

	ctx, cancel := context.WithTimeout(ctx, a.config.RemoteTimeout)
	defer cancel()

	resp, err := realtime.Submit(ctx, a.config.RemoteURL, project, tasks)
	if err != nil {
		return nil, fmt.Errorf("remote schedule failed: %w", err)
	}
	return resp, nil
}
