// Package cli は端末ローカルのストアを操作するコマンドラインツール。
package cli

import (
	"context"
	"log/slog"

	"go_5_wobushizi/internal/bootstrap"
	"go_5_wobushizi/internal/config"
	"go_5_wobushizi/internal/middleware"
	"go_5_wobushizi/internal/model"
	"go_5_wobushizi/internal/service"
	"go_5_wobushizi/internal/store"

	"github.com/spf13/cobra"
)

// app はサブコマンドが共有する依存。文字表は必要になった時に1度だけ読む。
type app struct {
	opts    *GlobalOptions
	tracker service.TrackerService
	logger  *slog.Logger
}

func (a *app) ctx(cmd *cobra.Command) context.Context {
	ctx := middleware.WithLogger(cmd.Context(), a.logger)
	return middleware.WithIdentity(ctx, model.Identity{DeviceID: a.opts.Device})
}

func (a *app) trackerService(cmd *cobra.Command) (service.TrackerService, error) {
	if a.tracker != nil {
		return a.tracker, nil
	}

	a.logger = bootstrap.NewLogger(cmd.ErrOrStderr(), a.opts.LogLevel, "dev")

	dataset, err := bootstrap.LoadDataset(cmd.Context(), a.opts.Dataset, "", a.logger)
	if err != nil {
		return nil, err
	}
	dir, err := bootstrap.ExpandDataDir(a.opts.DataDir)
	if err != nil {
		return nil, err
	}

	selector := store.NewSelector(nil, dataset.Index,
		store.NewLocalProvider(dir, dataset.Index, a.logger),
		nil, nil, nil, a.logger)

	cfg := &config.Config{App: config.AppConfig{
		ProgressTarget: config.DefaultProgressTarget,
		Milestones:     config.DefaultMilestones,
	}}
	a.tracker = service.NewTrackerService(selector, dataset.Index, cfg)
	return a.tracker, nil
}

func New() *cobra.Command {
	a := &app{opts: &GlobalOptions{}}

	cmd := &cobra.Command{
		Use:   config.AppName,
		Short: "Track the Chinese characters you can read.",
		Long: `Paste Chinese text, confirm which characters you know,
and keep a local record of known and study characters.`,
		Version:       config.AppVersion,
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddGlobalArgs(cmd, a.opts)
	addCommands(cmd, a)
	return cmd
}

func addCommands(topLevel *cobra.Command, a *app) {
	addLog(topLevel, a)
	addStatus(topLevel, a)
	addMark(topLevel, a)
	addHistory(topLevel, a)
	addSummary(topLevel, a)
	addReset(topLevel, a)
	addConvert(topLevel)
}
