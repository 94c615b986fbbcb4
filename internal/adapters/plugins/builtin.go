package plugins

import (
	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
)

// Deps are the collaborators shared by the built-in plugins.
type Deps struct {
	Logger ports.Logger
	// Clock drives sleeps and timestamps. Nil means the real clock.
	Clock clockwork.Clock
	// OutputDir receives files written by plugins.
	OutputDir string
}

func (d Deps) withDefaults() Deps {
	if d.Clock == nil {
		d.Clock = clockwork.NewRealClock()
	}
	if d.OutputDir == "" {
		d.OutputDir = domain.DefaultOutputPath()
	}
	return d
}

// Builtins returns the plugins shipped with ape.
func Builtins(deps Deps) []ports.Plugin {
	deps = deps.withDefaults()
	return []ports.Plugin{
		NewDummy(deps),
		NewSleep(deps),
		NewShell(deps),
		NewDial(deps),
		NewHTTP(deps),
		NewSQLite(deps),
		NewPostgres(deps),
		NewAMQP(deps),
	}
}
