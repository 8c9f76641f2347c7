// Package runner manages a single long-running external script: it launches
// the process, tails its combined output into a bounded in-memory log, and
// supports terminate and reset from the control panel.
package runner

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"taxtool/internal/logger"
)

var (
	// ErrAlreadyRunning is returned by Start while a process is active.
	ErrAlreadyRunning = errors.New("script is already running")

	// ErrNotRunning is returned by Stop when no process is active.
	ErrNotRunning = errors.New("script is not running")
)

const (
	// Log buffer bounds: once maxLogLines is exceeded the buffer is
	// trimmed down to keepLogLines.
	maxLogLines  = 1000
	keepLogLines = 500
)

// Status is a point-in-time snapshot of the managed process.
type Status struct {
	Running   bool     `json:"running"`
	PID       int      `json:"pid,omitempty"`
	StartTime string   `json:"start_time,omitempty"`
	Current   string   `json:"current,omitempty"`
	Logs      []string `json:"logs"`
	ExitCode  *int     `json:"exit_code,omitempty"`
}

// Runner supervises one external script at a time.
type Runner struct {
	mu        sync.Mutex
	name      string
	markers   []string // lowercase substrings that update the Current line
	onLine    func(string)
	cmd       *exec.Cmd
	running   bool
	startTime time.Time
	current   string
	logs      []string
	exitCode  *int
	log       zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithMarkers sets the lowercase substrings that, when seen in an output
// line, promote that line to the "current activity" field.
func WithMarkers(markers ...string) Option {
	return func(r *Runner) { r.markers = markers }
}

// WithLineHook registers a callback invoked for every appended log entry,
// e.g. to broadcast lines over WebSocket.
func WithLineHook(fn func(string)) Option {
	return func(r *Runner) { r.onLine = fn }
}

// New creates a runner identified by name in logs.
func New(name string, opts ...Option) *Runner {
	r := &Runner{
		name: name,
		log:  logger.WithComponent("runner-" + name),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Start launches the command and begins tailing its combined stdout/stderr.
// It returns the PID of the started process.
func (r *Runner) Start(command []string, extraArgs ...string) (int, error) {
	if len(command) == 0 {
		return 0, fmt.Errorf("runner %s: empty command", r.name)
	}

	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return 0, ErrAlreadyRunning
	}

	args := append(append([]string{}, command[1:]...), extraArgs...)
	cmd := exec.Command(command[0], args...)

	pr, pw := io.Pipe()
	cmd.Stdout = pw
	cmd.Stderr = pw

	if err := cmd.Start(); err != nil {
		r.mu.Unlock()
		pw.Close()
		return 0, fmt.Errorf("runner %s: start failed: %w", r.name, err)
	}

	r.cmd = cmd
	r.running = true
	r.startTime = time.Now()
	r.current = ""
	r.exitCode = nil
	pid := cmd.Process.Pid
	r.appendLocked(fmt.Sprintf("%s script started (pid %d)", r.name, pid))
	r.mu.Unlock()

	r.log.Info().Int("pid", pid).Strs("command", command).Msg("Script started")

	go r.tail(pr)
	go r.reap(cmd, pw)

	return pid, nil
}

// Stop sends SIGTERM to the running process.
func (r *Runner) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running || r.cmd == nil || r.cmd.Process == nil {
		return ErrNotRunning
	}
	if err := r.cmd.Process.Signal(syscall.SIGTERM); err != nil {
		return fmt.Errorf("runner %s: stop failed: %w", r.name, err)
	}
	r.appendLocked("stopping script...")
	return nil
}

// Reset stops the process if running and clears all status and logs.
func (r *Runner) Reset() {
	r.mu.Lock()
	if r.running && r.cmd != nil && r.cmd.Process != nil {
		// Best effort; the reap goroutine clears the running flag.
		_ = r.cmd.Process.Signal(syscall.SIGTERM)
	}
	r.logs = nil
	r.current = ""
	r.exitCode = nil
	r.mu.Unlock()

	r.log.Info().Msg("Runner reset")
}

// ClearLogs drops the buffered log lines, keeping the process state.
func (r *Runner) ClearLogs() {
	r.mu.Lock()
	r.logs = nil
	r.mu.Unlock()
}

// Status returns a snapshot with at most tail log lines (0 = all).
func (r *Runner) Status(tail int) Status {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := r.logs
	if tail > 0 && len(logs) > tail {
		logs = logs[len(logs)-tail:]
	}
	st := Status{
		Running:  r.running,
		Current:  r.current,
		Logs:     append([]string(nil), logs...),
		ExitCode: r.exitCode,
	}
	if r.running && r.cmd != nil && r.cmd.Process != nil {
		st.PID = r.cmd.Process.Pid
	}
	if !r.startTime.IsZero() {
		st.StartTime = r.startTime.Format(time.RFC3339)
	}
	return st
}

func (r *Runner) tail(pr *io.PipeReader) {
	sc := bufio.NewScanner(pr)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if line == "" {
			continue
		}
		r.appendOutput(line)
	}
}

func (r *Runner) reap(cmd *exec.Cmd, pw *io.PipeWriter) {
	err := cmd.Wait()
	pw.Close()

	code := 0
	if cmd.ProcessState != nil {
		code = cmd.ProcessState.ExitCode()
	}

	r.mu.Lock()
	r.running = false
	r.current = ""
	r.exitCode = &code
	r.cmd = nil
	r.appendLocked(fmt.Sprintf("%s script finished (exit code: %d)", r.name, code))
	r.mu.Unlock()

	if err != nil {
		r.log.Warn().Err(err).Int("exit_code", code).Msg("Script exited with error")
	} else {
		r.log.Info().Int("exit_code", code).Msg("Script finished")
	}
}

// appendOutput timestamps a raw output line, updates the current-activity
// marker and pushes the entry into the bounded buffer.
func (r *Runner) appendOutput(line string) {
	r.mu.Lock()
	entry := r.appendLocked(line)
	if r.matchesMarker(line) {
		r.current = line
	}
	hook := r.onLine
	r.mu.Unlock()

	if hook != nil {
		hook(entry)
	}
}

func (r *Runner) appendLocked(line string) string {
	entry := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), line)
	r.logs = append(r.logs, entry)
	if len(r.logs) > maxLogLines {
		r.logs = append([]string(nil), r.logs[len(r.logs)-keepLogLines:]...)
	}
	return entry
}

func (r *Runner) matchesMarker(line string) bool {
	low := strings.ToLower(line)
	for _, m := range r.markers {
		if strings.Contains(low, m) {
			return true
		}
	}
	return false
}
