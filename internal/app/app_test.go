package app_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/adapters/detector"
	"github.com/rsnakamura/theape/internal/app"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
	"github.com/rsnakamura/theape/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

// fakeUnit counts invocations and closes.
type fakeUnit struct {
	name    string
	err     error
	invoked int
	closed  int
	invalid bool
}

func (u *fakeUnit) Invoke(context.Context) error {
	u.invoked++
	return u.err
}

func (u *fakeUnit) Validate() error {
	if u.invalid {
		return domain.ErrConfiguration
	}
	return nil
}

func (u *fakeUnit) Close() error {
	u.closed++
	return nil
}

func (u *fakeUnit) String() string { return u.name }

type fixture struct {
	app     *app.App
	loader  *mocks.MockConfigLoader
	catalog *mocks.MockPluginCatalog
	plugin  *mocks.MockPlugin
	out     *bytes.Buffer
	units   map[string]*fakeUnit
	// errs overrides the error a unit returns, by section name.
	errs map[string]error
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()
	log.EXPECT().Info(gomock.Any()).AnyTimes()
	log.EXPECT().Warn(gomock.Any()).AnyTimes()
	log.EXPECT().Error(gomock.Any()).AnyTimes()

	f := &fixture{
		loader:  mocks.NewMockConfigLoader(ctrl),
		catalog: mocks.NewMockPluginCatalog(ctrl),
		plugin:  mocks.NewMockPlugin(ctrl),
		out:     new(bytes.Buffer),
		units:   make(map[string]*fakeUnit),
		errs:    make(map[string]error),
	}
	f.app = app.New(f.loader, f.catalog, log).
		WithOutput(f.out).
		WithClock(clockwork.NewFakeClock()).
		WithEnvironment(detector.Environment{})

	f.plugin.EXPECT().Build(gomock.Any()).DoAndReturn(func(s domain.PluginSection) (ports.Unit, error) {
		u := &fakeUnit{name: s.Name, err: f.errs[s.Name]}
		if fail, _ := s.Options["fail"].(bool); fail {
			u.err = domain.ErrPluginFailed
		}
		if invalid, _ := s.Options["invalid"].(bool); invalid {
			u.invalid = true
		}
		f.units[s.Name] = u
		return u, nil
	}).AnyTimes()

	return f
}

func section(name string, options map[string]any) domain.PluginSection {
	return domain.PluginSection{Name: name, Plugin: "fake", Options: options}
}

func runConfig(iterations int) *domain.RunConfig {
	return &domain.RunConfig{
		Fingerprint: "0123456789abcdef",
		Sources:     []string{"ape.yaml"},
		Countdown:   domain.Countdown{Iterations: iterations},
		Operations: []domain.Operation{
			{Name: "first", Plugins: []domain.PluginSection{
				section("a", nil),
				section("b", map[string]any{"fail": true}),
			}},
			{Name: "second", Plugins: []domain.PluginSection{
				section("c", nil),
			}},
		},
	}
}

func TestApp_Run(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load([]string{"ape.yaml"}).Return(runConfig(2), nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	err := f.app.Run(context.Background(), []string{"ape.yaml"}, app.RunOptions{OutputMode: "plain"})
	require.NoError(t, err)

	for _, name := range []string{"a", "b", "c"} {
		assert.Equal(t, 2, f.units[name].invoked, name)
		assert.Equal(t, 1, f.units[name].closed, name)
	}

	out := f.out.String()
	assert.Contains(t, out, "** Operation 1 of 2 (first) **")
	assert.Contains(t, out, "** Operation 2 of 2 (second) **")
	assert.Contains(t, out, "*** first Started ***")
	assert.Contains(t, out, "** Plugin 2 of 2 (b) **")
	assert.Contains(t, out, "Plugin 2 of 2 (b) failed")
	assert.Equal(t, 2, strings.Count(out, "*** first Started ***"))
	assert.Equal(t, 5, strings.Count(out, " Started ***"))
	assert.Regexp(t, `\*\*\* ape [0-9a-f-]{36} Ended`, out)
}

func TestApp_Run_SinglePassWithoutCountdown(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(runConfig(0), nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	require.NoError(t, f.app.Run(context.Background(), []string{"ape.yaml"}, app.RunOptions{OutputMode: "plain"}))
	assert.Equal(t, 1, f.units["a"].invoked)
}

func TestApp_Run_InvalidTreeIsClosedAndNotInvoked(t *testing.T) {
	f := newFixture(t)
	cfg := runConfig(1)
	cfg.Operations[1].Plugins[0] = section("c", map[string]any{"invalid": true})
	f.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	err := f.app.Run(context.Background(), []string{"ape.yaml"}, app.RunOptions{OutputMode: "plain"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	for _, name := range []string{"a", "b", "c"} {
		assert.Zero(t, f.units[name].invoked, name)
		assert.Equal(t, 1, f.units[name].closed, name)
	}
	assert.NotContains(t, f.out.String(), "Started")
}

func TestApp_Run_UnknownPluginClosesBuiltUnits(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(runConfig(1), nil)
	gomock.InOrder(
		f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(2),
		f.catalog.EXPECT().Get("fake").Return(nil, domain.ErrPluginNotFound),
	)

	err := f.app.Run(context.Background(), []string{"ape.yaml"}, app.RunOptions{OutputMode: "plain"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPluginNotFound)
	assert.Equal(t, 1, f.units["a"].closed)
	assert.Equal(t, 1, f.units["b"].closed)
}

func TestApp_Run_LoadError(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(nil, domain.ErrNoOperations)

	err := f.app.Run(context.Background(), nil, app.RunOptions{})
	assert.ErrorIs(t, err, domain.ErrNoOperations)
}

func TestApp_Run_BadOutputMode(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(runConfig(1), nil)

	err := f.app.Run(context.Background(), nil, app.RunOptions{OutputMode: "fancy"})
	require.Error(t, err)
}

func TestApp_Run_Cancelled(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(runConfig(5), nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := f.app.Run(ctx, nil, app.RunOptions{OutputMode: "plain"})
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, f.units["a"].invoked)
	assert.Equal(t, 1, f.units["a"].closed)
}

func TestApp_Run_UncontainedFailureBecomesOperationFailure(t *testing.T) {
	f := newFixture(t)
	cfg := runConfig(1)
	f.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	// b fails with a storage error the operation does not trap.
	cfg.Operations[0].Plugins[1].Options = nil
	f.errs["b"] = domain.ErrStorage

	err := f.app.Run(context.Background(), nil, app.RunOptions{OutputMode: "plain"})
	require.NoError(t, err)
	assert.Contains(t, f.out.String(), "Operation 1 of 2 (first) failed")
	assert.Equal(t, 1, f.units["c"].invoked, "the next operation still runs")
}

func TestApp_Check(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load([]string{"ape.yaml"}).Return(runConfig(3), nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	require.NoError(t, f.app.Check(context.Background(), []string{"ape.yaml"}))

	out := f.out.String()
	assert.Contains(t, out, "Fingerprint: 0123456789abcdef")
	assert.Contains(t, out, "Countdown -- iterations: 3")
	assert.Contains(t, out, "1. first")
	assert.Contains(t, out, "- b (fake)")
	assert.Zero(t, f.units["a"].invoked)
	assert.Equal(t, 1, f.units["a"].closed)
}

func TestApp_Check_Invalid(t *testing.T) {
	f := newFixture(t)
	cfg := runConfig(1)
	cfg.Operations[0].Plugins[0] = section("a", map[string]any{"invalid": true})
	f.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	err := f.app.Check(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestApp_Check_UnknownPluginKeepsKind(t *testing.T) {
	f := newFixture(t)
	f.loader.EXPECT().Load(gomock.Any()).Return(runConfig(1), nil)
	f.catalog.EXPECT().Get("fake").Return(nil, domain.ErrPluginNotFound)

	err := f.app.Check(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrPluginNotFound)
	assert.Contains(t, err.Error(), "cannot resolve plugin")
	assert.Empty(t, f.out.String())
}

func TestApp_ListFetchHelp(t *testing.T) {
	ctrl := gomock.NewController(t)
	catalog := mocks.NewMockPluginCatalog(ctrl)

	sleep := mocks.NewMockPlugin(ctrl)
	sleep.EXPECT().Name().Return("sleep").AnyTimes()
	sleep.EXPECT().Summary().Return("Waits").AnyTimes()
	sleep.EXPECT().Help().Return(strings.Repeat("word ", 30)).AnyTimes()
	sleep.EXPECT().Sample().Return("      - plugin: sleep\n").AnyTimes()

	dummy := mocks.NewMockPlugin(ctrl)
	dummy.EXPECT().Name().Return("dummy").AnyTimes()
	dummy.EXPECT().Summary().Return("Logs").AnyTimes()
	dummy.EXPECT().Sample().Return("      - plugin: dummy\n").AnyTimes()

	catalog.EXPECT().List().Return([]ports.Plugin{dummy, sleep}).AnyTimes()
	catalog.EXPECT().Get("sleep").Return(sleep, nil).AnyTimes()
	catalog.EXPECT().Get("dummy").Return(dummy, nil).AnyTimes()
	catalog.EXPECT().Get("nope").Return(nil, domain.ErrPluginNotFound).AnyTimes()

	out := new(bytes.Buffer)
	a := app.New(mocks.NewMockConfigLoader(ctrl), catalog, mocks.NewMockLogger(ctrl)).WithOutput(out)

	t.Run("list", func(t *testing.T) {
		out.Reset()
		require.NoError(t, a.List())
		assert.Equal(t, "dummy  Logs\nsleep  Waits\n", out.String())
	})

	t.Run("fetch defaults to dummy", func(t *testing.T) {
		out.Reset()
		require.NoError(t, a.Fetch(nil))
		assert.Contains(t, out.String(), "operations:")
		assert.True(t, strings.HasSuffix(out.String(), "      - plugin: dummy\n"))
	})

	t.Run("fetch unknown", func(t *testing.T) {
		assert.ErrorIs(t, a.Fetch([]string{"nope"}), domain.ErrPluginNotFound)
	})

	t.Run("help wraps", func(t *testing.T) {
		out.Reset()
		require.NoError(t, a.Help("sleep", 20))
		for _, line := range strings.Split(out.String(), "\n") {
			assert.LessOrEqual(t, len(strings.TrimRight(line, " ")), 20, line)
		}
		assert.Contains(t, out.String(), "sleep: Waits")
	})

	t.Run("help without name lists plugins", func(t *testing.T) {
		out.Reset()
		require.NoError(t, a.Help("", 0))
		assert.Contains(t, out.String(), "dummy: Logs")
		assert.Contains(t, out.String(), "sleep: Waits")
	})
}

func TestApp_RunErrorsAreNotSwallowed(t *testing.T) {
	f := newFixture(t)
	cfg := runConfig(1)
	f.loader.EXPECT().Load(gomock.Any()).Return(cfg, nil)
	f.catalog.EXPECT().Get("fake").Return(f.plugin, nil).Times(3)

	boom := errors.New("boom")
	f.errs["c"] = boom

	err := f.app.Run(context.Background(), nil, app.RunOptions{OutputMode: "plain"})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.NotRegexp(t, `\*\*\* ape \S+ Ended`, f.out.String())
}
