// Package appshell wires KPI boards into an admin-shell style application,
// seeding one navigation entry per registered department.
package appshell

import (
	"context"
	"errors"
	"fmt"

	core "github.com/goliatone/go-kpiboard/components/kpiboard"
	activitypkg "github.com/goliatone/go-kpiboard/pkg/activity"
)

// MenuBuilder ensures board entries exist within the shell navigation.
type MenuBuilder interface {
	EnsureMenuItem(ctx context.Context, menuCode string, item MenuItem) error
}

// MenuItem captures board link metadata.
type MenuItem struct {
	Label    string
	Route    string
	Icon     string
	Position int
}

// Config wires the department registry + feature flags into an app shell.
type Config struct {
	EnableBoards   bool
	MenuCode       string
	MenuBuilder    MenuBuilder
	Registry       *core.Registry
	OverviewItem   MenuItem
	ActivityHooks  activitypkg.Hooks
	ActivityConfig activitypkg.Config
}

// Shell exposes helpers for admin-shell style applications.
type Shell struct {
	cfg     Config
	emitter *activitypkg.Emitter
}

// New creates a Shell helper that can seed board navigation.
func New(cfg Config) (*Shell, error) {
	if cfg.EnableBoards && cfg.Registry == nil {
		return nil, errors.New("appshell: department registry is required when boards are enabled")
	}
	if cfg.MenuCode == "" {
		cfg.MenuCode = "admin.main"
	}
	if cfg.OverviewItem.Label == "" {
		cfg.OverviewItem.Label = "Overview"
	}
	if cfg.OverviewItem.Route == "" {
		cfg.OverviewItem.Route = "boards.overview"
	}
	if cfg.OverviewItem.Icon == "" {
		cfg.OverviewItem.Icon = "home"
	}
	return &Shell{
		cfg:     cfg,
		emitter: activitypkg.NewEmitter(cfg.ActivityHooks, cfg.ActivityConfig),
	}, nil
}

// Registry exposes the configured department registry when boards are enabled.
func (s *Shell) Registry() *core.Registry {
	if !s.cfg.EnableBoards {
		return nil
	}
	return s.cfg.Registry
}

// Activity exposes the shell's activity emitter.
func (s *Shell) Activity() *activitypkg.Emitter {
	return s.emitter
}

// Bootstrap seeds the overview entry plus one menu item per department.
func (s *Shell) Bootstrap(ctx context.Context) error {
	if !s.cfg.EnableBoards || s.cfg.MenuBuilder == nil {
		return nil
	}
	if err := s.cfg.MenuBuilder.EnsureMenuItem(ctx, s.cfg.MenuCode, s.cfg.OverviewItem); err != nil {
		return fmt.Errorf("appshell: seed overview entry: %w", err)
	}
	for idx, dept := range s.cfg.Registry.Departments() {
		item := MenuItem{
			Label:    dept.Name,
			Route:    "boards." + dept.Slug,
			Icon:     "chart-bar",
			Position: s.cfg.OverviewItem.Position + idx + 1,
		}
		if err := s.cfg.MenuBuilder.EnsureMenuItem(ctx, s.cfg.MenuCode, item); err != nil {
			return fmt.Errorf("appshell: seed %s entry: %w", dept.Slug, err)
		}
	}
	return nil
}
