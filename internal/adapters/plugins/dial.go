package plugins

import (
	"context"
	"errors"
	"net"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rsnakamura/theape/internal/adapters/connection"
	"github.com/rsnakamura/theape/internal/adapters/storage"
	"github.com/rsnakamura/theape/internal/core/domain"
	"github.com/rsnakamura/theape/internal/core/ports"
)

var dialHeaders = []string{"time", "address", "command", "reply"}

// Dial builds units that send a command to a TCP server and record the reply.
type Dial struct {
	about
	logger    ports.Logger
	clock     clockwork.Clock
	outputDir string
}

// NewDial creates the dial plugin.
func NewDial(deps Deps) *Dial {
	return &Dial{
		about: about{
			name:    "dial",
			summary: "Sends a line to a TCP server and records the reply as CSV",
			help: `The dial plugin keeps a TCP connection to a server, sends one command line per invocation and reads one reply line. Every exchange is appended to a CSV file (time, address, command, reply) in the output directory.

Socket errors are plugin failures. With suppress set they are only logged and an empty reply is recorded.

Options:
  address   host:port of the server (required)
  command   the line to send (required)
  username  recorded in reports only
  timeout   connect and exchange timeout, as a Go duration (default 10s)
  output    CSV file name (default: <name>.csv); existing files are kept
  suppress  log socket errors instead of failing`,
			sample: `      - name: probe
        plugin: dial
        options:
          address: localhost:7
          command: ping
          # timeout: 5s
          # suppress: true
`,
		},
		logger:    deps.Logger,
		clock:     deps.Clock,
		outputDir: deps.OutputDir,
	}
}

type dialOptions struct {
	Address  string        `mapstructure:"address"`
	Command  string        `mapstructure:"command"`
	Username string        `mapstructure:"username"`
	Timeout  time.Duration `mapstructure:"timeout"`
	Output   string        `mapstructure:"output"`
	Suppress bool          `mapstructure:"suppress"`
}

// Build creates a dial unit.
func (d *Dial) Build(section domain.PluginSection) (ports.Unit, error) {
	opts := dialOptions{Timeout: connection.DefaultTimeout, Output: section.Name + ".csv"}
	if err := decodeOptions(section, &opts); err != nil {
		return nil, err
	}

	client := connection.NewClient(opts.Address, d.logger)
	client.Username = opts.Username
	client.Timeout = opts.Timeout
	if opts.Suppress {
		client.Mode = connection.Suppress
	}

	return &dialUnit{
		label:  unitLabel(section),
		name:   section.Name,
		opts:   opts,
		client: client,
		files:  storage.NewFileStorage(d.outputDir, false),
		clock:  d.clock,
	}, nil
}

type dialUnit struct {
	label  string
	name   string
	opts   dialOptions
	client *connection.Client
	files  *storage.FileStorage
	clock  clockwork.Clock

	file *storage.FileStorage
	rows *storage.CSVStorage
}

func (u *dialUnit) Invoke(ctx context.Context) error {
	reply, err := u.client.Exec(ctx, u.opts.Command)
	if err != nil {
		return failed(u.name, "dial failed", err)
	}

	if u.rows == nil {
		rows, file, err := storage.OpenCSV(u.files, u.opts.Output, dialHeaders)
		if err != nil {
			return failed(u.name, "cannot open dial output", err)
		}
		u.rows, u.file = rows, file
	}

	err = u.rows.WriteRow(map[string]string{
		"time":    u.clock.Now().Format(time.RFC3339Nano),
		"address": u.opts.Address,
		"command": u.opts.Command,
		"reply":   reply,
	})
	if err != nil {
		return failed(u.name, "cannot record reply", err)
	}
	return nil
}

func (u *dialUnit) Validate() error {
	if u.opts.Address == "" {
		return invalid(u.name, "dial address is not set")
	}
	if _, _, err := net.SplitHostPort(u.opts.Address); err != nil {
		return invalid(u.name, "dial address must be host:port")
	}
	if u.opts.Command == "" {
		return invalid(u.name, "dial command is not set")
	}
	if u.opts.Timeout <= 0 {
		return invalid(u.name, "dial timeout must be positive")
	}
	if u.opts.Output == "" {
		return invalid(u.name, "dial output is not set")
	}
	return nil
}

// Close closes the connection and the output file.
func (u *dialUnit) Close() error {
	err := u.client.Close()
	if u.file != nil {
		err = errors.Join(err, u.file.Close())
		u.file, u.rows = nil, nil
	}
	return err
}

func (u *dialUnit) String() string {
	return u.label
}
