package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/aussiebroadwan/casdoor-go/pkg/casdoorsdk"
	"github.com/aussiebroadwan/casdoor-go/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// ErrUsage is returned for a missing or malformed command line.
var ErrUsage = errors.New("usage")

// Usage describes the command line.
const Usage = `usage: casdoorctl [-config file] <command> [args]

commands:
  list [-tree] [-page n] [-size n] <kind>
  get <kind> <name>
  enforce [-enforcer id] [-permission id] [-model id] [-resource id] [-owner org] <sub> <obj> <act> [more...]
  signin-url [-pkce] <redirect>
  signup-url [-password] <redirect>
  parse-token <jwt>
  mfa-code <secret>
  upload [-user name] [-tag tag] <file> <fullFilePath>
  introspect [-hint type] <token>

kinds: adapter application cert enforcer group model organization payment
  permission plan pricing product provider resource role session
  subscription syncer token user webhook`

// Application wires the configuration, logger and SDK client behind the
// CLI commands.
type Application struct {
	cfg    Config
	logger *slog.Logger
	client *casdoorsdk.Client
	out    io.Writer
}

// New builds the logger and SDK client. Command output goes to out.
func New(cfg Config, out io.Writer) (*Application, error) {
	app := &Application{
		cfg: cfg,
		out: out,
		logger: slogx.New(slogx.Config{
			Service: "casdoorctl",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	client, err := casdoorsdk.New(cfg.Casdoor, casdoorsdk.WithLogger(app.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create casdoor client: %w", err)
	}
	app.client = client

	return app, nil
}

// Run executes the command named by args[0].
func (app *Application) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing command", ErrUsage)
	}

	commands := map[string]func(context.Context, []string) error{
		"list":        app.runList,
		"get":         app.runGet,
		"enforce":     app.runEnforce,
		"signin-url":  app.runSignInURL,
		"signup-url":  app.runSignUpURL,
		"parse-token": app.runParseToken,
		"mfa-code":    app.runMfaCode,
		"upload":      app.runUpload,
		"introspect":  app.runIntrospect,
	}

	run, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: unknown command %q", ErrUsage, args[0])
	}

	app.logger.Debug("running command", "command", args[0])
	return run(ctx, args[1:])
}

func (app *Application) printJSON(v any) error {
	enc := json.NewEncoder(app.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (app *Application) println(s string) error {
	_, err := fmt.Fprintln(app.out, s)
	return err
}
