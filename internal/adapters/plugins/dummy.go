package plugins

import (
	"context"

	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
)

// Dummy builds units that only log. Its units implement neither Validate nor
// Close, so they show up as non-conformant in reports.
type Dummy struct {
	about
	logger ports.Logger
}

// NewDummy creates the dummy plugin.
func NewDummy(deps Deps) *Dummy {
	return &Dummy{
		about: about{
			name:    "dummy",
			summary: "Logs a message and does nothing else",
			help: `The dummy plugin logs a message each time it is invoked. It is useful for checking a run file and for seeing how the executor reports progress.

Options:
  message  text logged on every invocation (default "dummy invoked")
  fail     when true every invocation fails with a plugin failure`,
			sample: `      - name: dummy
        plugin: dummy
        options:
          message: hello from the ape
          # fail: true
`,
		},
		logger: deps.Logger,
	}
}

type dummyOptions struct {
	Message string `mapstructure:"message"`
	Fail    bool   `mapstructure:"fail"`
}

// Build creates a dummy unit.
func (d *Dummy) Build(section domain.PluginSection) (ports.Unit, error) {
	opts := dummyOptions{Message: "dummy invoked"}
	if err := decodeOptions(section, &opts); err != nil {
		return nil, err
	}
	return &dummyUnit{label: unitLabel(section), name: section.Name, opts: opts, logger: d.logger}, nil
}

type dummyUnit struct {
	label  string
	name   string
	opts   dummyOptions
	logger ports.Logger
}

func (u *dummyUnit) Invoke(_ context.Context) error {
	u.logger.Info(u.opts.Message)
	if u.opts.Fail {
		return failed(u.name, "dummy failure requested", nil)
	}
	return nil
}

func (u *dummyUnit) String() string {
	return u.label
}
