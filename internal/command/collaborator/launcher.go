package collaborator

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"

	"voice-assistant-engine/pkg/log"
)

// ExecLauncher opens desktop applications through the OS launcher
// ("open -a" on darwin, the binary itself elsewhere).
type ExecLauncher struct {
	l    log.Logger
	goos string

	mu   sync.Mutex
	open map[string]struct{}
}

// NewExecLauncher creates an AppLauncher backed by os/exec.
func NewExecLauncher(l log.Logger) *ExecLauncher {
	return &ExecLauncher{
		l:    l,
		goos: runtime.GOOS,
		open: make(map[string]struct{}),
	}
}

var _ AppLauncher = (*ExecLauncher)(nil)

// Open launches the named application, reporting already_open when this
// process launched it before.
func (e *ExecLauncher) Open(ctx context.Context, app string) (Result, error) {
	app = strings.TrimSpace(strings.ToLower(app))
	if app == "" {
		return Result{Outcome: OutcomeAppNotFound}, nil
	}

	e.mu.Lock()
	_, running := e.open[app]
	e.mu.Unlock()
	if running {
		return Result{Outcome: OutcomeAlreadyOpen}, nil
	}

	cmd := e.command(ctx, app)
	if err := cmd.Start(); err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return Result{Outcome: OutcomeAppNotFound}, nil
		}
		return Result{Outcome: OutcomeAppNotFound}, fmt.Errorf("launcher: start %s: %w", app, err)
	}

	// Detach; the application outlives the request.
	go func() { _ = cmd.Wait() }()

	e.mu.Lock()
	e.open[app] = struct{}{}
	e.mu.Unlock()

	e.l.Infof(ctx, "launcher: opened %s", app)
	return Result{Outcome: OutcomeOpened, Detail: app}, nil
}

func (e *ExecLauncher) command(ctx context.Context, app string) *exec.Cmd {
	if e.goos == "darwin" {
		return exec.CommandContext(ctx, "open", "-a", app)
	}
	// Linux desktop entries are lower-case binary names by convention.
	return exec.CommandContext(ctx, strings.ReplaceAll(app, " ", "-"))
}
