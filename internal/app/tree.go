package app

import (
	"context"
	"errors"

	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"github.com/rsnakamura/theape/internal/engine/composite"
	"github.com/rsnakamura/theape/internal/engine/contain"
	"github.com/rsnakamura/theape/internal/engine/countdown"
	"go.trai.ch/zerr"
)

const (
	operationCategory = "Operation"
	pluginCategory    = "Plugin"
)

// operation is an executor of plugin units. Unit failures that escape it
// are raised as operation failures so the run can move on to the next one.
type operation struct {
	*composite.Composite
}

func (o operation) Invoke(ctx context.Context) error {
	guard := contain.Guard{
		Match: contain.Is(domain.ErrUnitFailure),
		Convert: func(err error) error {
			if errors.Is(err, domain.ErrOperationFailed) {
				return err
			}
			return zerr.With(zerr.Wrap(errors.Join(domain.ErrOperationFailed, err), "operation aborted"), "operation", o.Config().Identifier)
		},
	}
	return guard.Call(func() error { return o.Composite.Invoke(ctx) })
}

func (o operation) String() string {
	return o.Config().Identifier
}

// treeDeps are what buildTree wires into every executor.
type treeDeps struct {
	catalog  ports.PluginCatalog
	reporter ports.Reporter
	logger   ports.Logger
	clock    clockwork.Clock
}

// buildTree assembles the run tree: a root executor of operations, each an
// executor of the units built from its plugin sections. The root repeats
// its operations while the countdown allows. On error everything built so
// far is closed.
func buildTree(cfg *domain.RunConfig, identifier string, deps treeDeps) (*composite.Composite, error) {
	root := composite.New(composite.Config{
		Trap:       domain.ErrOperationFailed,
		Message:    "operation failed",
		Category:   operationCategory,
		Identifier: identifier,
	},
		composite.WithBudget(countdown.NewTimer(cfg.Countdown, deps.clock)),
		composite.WithReporter(deps.reporter),
		composite.WithLogger(deps.logger),
		composite.WithClock(deps.clock),
	)

	for _, op := range cfg.Operations {
		exec := composite.New(composite.Config{
			Trap:       domain.ErrPluginFailed,
			Message:    "plugin failed",
			Category:   pluginCategory,
			Identifier: op.Name,
		},
			composite.WithReporter(deps.reporter),
			composite.WithLogger(deps.logger),
			composite.WithClock(deps.clock),
		)
		// Added before it is filled so a build error below closes it too.
		if err := root.Add(operation{exec}); err != nil {
			return nil, errors.Join(err, root.Close())
		}

		for _, section := range op.Plugins {
			unit, err := buildUnit(deps.catalog, section)
			if err != nil {
				err = zerr.With(zerr.Wrap(err, "cannot build operation"), "operation", op.Name)
				return nil, errors.Join(err, root.Close())
			}
			if err := exec.Add(unit); err != nil {
				return nil, errors.Join(err, root.Close())
			}
		}
	}

	return root, nil
}

func buildUnit(catalog ports.PluginCatalog, section domain.PluginSection) (ports.Unit, error) {
	plugin, err := catalog.Get(section.Plugin)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "cannot resolve plugin"), "section", section.Name)
	}
	unit, err := plugin.Build(section)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to build plugin"), "section", section.Name)
	}
	if unit == nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrNotInvokable, "plugin built no unit"), "section", section.Name)
	}
	return unit, nil
}
