package kpiboard

import (
	core "github.com/goliatone/go-kpiboard/components/kpiboard"
)

// Board exposes the underlying components/kpiboard.Board type.
type Board = core.Board

// BoardOptions re-export for convenience.
type BoardOptions = core.BoardOptions

// Aggregator re-exports the overview aggregator.
type Aggregator = core.Aggregator

// AggregatorOptions re-export for convenience.
type AggregatorOptions = core.AggregatorOptions

// NewBoard proxies to the internal constructor.
func NewBoard(opts BoardOptions) (*Board, error) {
	return core.NewBoard(opts)
}

// NewAggregator proxies to the internal constructor.
func NewAggregator(opts AggregatorOptions) (*Aggregator, error) {
	return core.NewAggregator(opts)
}
