package orders

import (
	"context"
	"strings"
)

// Actions reported in the order events counter.
const (
	actionCreate = "create"
	actionCancel = "cancel"
	actionIgnore = "ignore"
)

type actionFunc func(context.Context, Event) error

type action struct {
	name string
	fn   actionFunc
}

type actionFactory struct {
	byStatus map[string]action
}

func newActionFactory(onPlaced, onCancelled actionFunc) *actionFactory {
	create := action{name: actionCreate, fn: onPlaced}
	cancel := action{name: actionCancel, fn: onCancelled}
	return &actionFactory{
		byStatus: map[string]action{
			"placed":    create,
			"created":   create,
			"confirmed": create,
			"cancelled": cancel,
			"canceled":  cancel,
		},
	}
}

func (f *actionFactory) get(status string) (action, bool) {
	status = strings.ToLower(strings.TrimSpace(status))
	a, ok := f.byStatus[status]
	return a, ok
}
