package plugins

import (
	"context"
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"go.trai.ch/zerr"
)

// Sleep builds units that wait for a fixed time.
type Sleep struct {
	about
	logger ports.Logger
	clock  clockwork.Clock
}

// NewSleep creates the sleep plugin.
func NewSleep(deps Deps) *Sleep {
	return &Sleep{
		about: about{
			name:    "sleep",
			summary: "Waits for a fixed time",
			help: `The sleep plugin blocks for the configured time on every invocation. An interrupted run stops the wait early.

Options:
  time  how long to wait, as a Go duration such as 500ms or 1m30s (required)`,
			sample: `      - name: pause
        plugin: sleep
        options:
          time: 1s
`,
		},
		logger: deps.Logger,
		clock:  deps.Clock,
	}
}

type sleepOptions struct {
	Time time.Duration `mapstructure:"time"`
}

// Build creates a sleep unit.
func (s *Sleep) Build(section domain.PluginSection) (ports.Unit, error) {
	var opts sleepOptions
	if err := decodeOptions(section, &opts); err != nil {
		return nil, err
	}
	return &sleepUnit{label: unitLabel(section), name: section.Name, opts: opts, logger: s.logger, clock: s.clock}, nil
}

type sleepUnit struct {
	label  string
	name   string
	opts   sleepOptions
	logger ports.Logger
	clock  clockwork.Clock
}

func (u *sleepUnit) Invoke(ctx context.Context) error {
	u.logger.Debug(fmt.Sprintf("sleeping for %s", u.opts.Time))
	select {
	case <-u.clock.After(u.opts.Time):
		return nil
	case <-ctx.Done():
		return zerr.Wrap(ctx.Err(), "sleep interrupted")
	}
}

func (u *sleepUnit) Validate() error {
	if u.opts.Time <= 0 {
		return invalid(u.name, "sleep time must be positive")
	}
	return nil
}

func (u *sleepUnit) Close() error {
	return nil
}

func (u *sleepUnit) String() string {
	return u.label
}
