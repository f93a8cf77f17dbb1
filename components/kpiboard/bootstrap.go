package kpiboard

import (
	"context"
	"errors"
	"fmt"
)

// SeedDefaultSelection selects every catalog KPI that has an authored
// default placement on a freshly hydrated board. Used when a company opens
// a department dashboard for the first time and the remote store has no
// selection yet.
func SeedDefaultSelection(ctx context.Context, board *Board) error {
	if board == nil {
		return errors.New("kpiboard: board is required to seed selection")
	}
	if len(board.Selected()) > 0 {
		return nil
	}
	var seedErr error
	for _, placement := range board.Department().DefaultPlacements {
		if _, err := board.AddKPI(ctx, placement.ID); err != nil {
			seedErr = errors.Join(seedErr, fmt.Errorf("seed %s: %w", placement.ID, err))
		}
	}
	return seedErr
}

// NotificationsClient defines the minimal interface needed from an external
// notifications service.
type NotificationsClient interface {
	PublishBoardEvent(ctx context.Context, event BoardEvent) error
}

// NotificationsHook forwards board events to an external notifications
// client.
type NotificationsHook struct {
	Client  NotificationsClient
	Channel string
}

// BoardUpdated publishes events to the configured notifications client.
func (h *NotificationsHook) BoardUpdated(ctx context.Context, event BoardEvent) error {
	if h == nil || h.Client == nil {
		return nil
	}
	return h.Client.PublishBoardEvent(ctx, event)
}
