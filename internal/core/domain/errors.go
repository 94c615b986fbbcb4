package domain

import "go.trai.ch/zerr"

var (
	// ErrConfiguration is returned when a structural invariant of an executor,
	// a plugin or a run file is violated.
	ErrConfiguration = zerr.New("configuration invalid")

	// ErrNotInvokable is returned when a child does not implement the invocation interface.
	ErrNotInvokable = zerr.New("has not implemented the invocation interface")

	// ErrChildFailed marks a contained child failure when it is reported.
	ErrChildFailed = zerr.New("child invocation failed")

	// ErrExecutorClosed is returned when a closed executor is asked to do more work.
	ErrExecutorClosed = zerr.New("executor is closed")

	// ErrExecutorRunning is returned when an executor is modified while it is running.
	ErrExecutorRunning = zerr.New("executor is running")

	// ErrUnitFailure is the root of all unit-level failures.
	// It is too broad to be trapped by an executor on its own.
	ErrUnitFailure = zerr.New("unit failure")

	// ErrOperationFailed is returned when an operation cannot complete.
	ErrOperationFailed = zerr.Wrap(ErrUnitFailure, "operation failed")

	// ErrPluginFailed is returned when a plugin invocation fails.
	ErrPluginFailed = zerr.Wrap(ErrUnitFailure, "plugin failed")

	// ErrConnection is returned for failures talking to a remote endpoint.
	ErrConnection = zerr.Wrap(ErrUnitFailure, "connection failed")

	// ErrStorage is returned when output storage cannot be written.
	ErrStorage = zerr.Wrap(ErrUnitFailure, "storage failed")

	// ErrPluginNotFound is returned when a run file references an unknown plugin.
	ErrPluginNotFound = zerr.New("plugin not found")

	// ErrInvalidPluginOptions is returned when plugin options cannot be decoded.
	ErrInvalidPluginOptions = zerr.New("invalid plugin options")

	// ErrConfigReadFailed is returned when the run file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when the run file cannot be parsed.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrNoOperations is returned when a run file declares no operations.
	ErrNoOperations = zerr.New("no operations configured")

	// ErrDuplicateOperation is returned when two operations share a name.
	ErrDuplicateOperation = zerr.New("duplicate operation name")

	// ErrMissingOperationName is returned when an operation has no name.
	ErrMissingOperationName = zerr.New("missing operation name")

	// ErrMissingPluginName is returned when a plugin section does not name its plugin.
	ErrMissingPluginName = zerr.New("missing plugin name")

	// ErrInvalidCountdown is returned when the countdown section cannot be interpreted.
	ErrInvalidCountdown = zerr.New("invalid countdown")

	// ErrStorageNotOpen is returned when writing to storage that was never opened.
	ErrStorageNotOpen = zerr.New("storage not open")

	// ErrNoConfigFiles is returned when no configuration file was given.
	ErrNoConfigFiles = zerr.New("no configuration files given")
)
