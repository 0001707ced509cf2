// Package launcher downloads the bootstrap payload to a process-unique
// temporary file, executes it, and guarantees the file is removed on every
// exit path, including interruption.
package launcher

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rileyhilliard/gitstrap/internal/errors"
	"github.com/rileyhilliard/gitstrap/internal/exec"
	"github.com/rileyhilliard/gitstrap/internal/logger"
)

// downloadTimeout bounds the whole fetch; the payload is a small script.
const downloadTimeout = 60 * time.Second

// Launcher fetches and runs the remote bootstrap script.
type Launcher struct {
	Runner exec.Runner
	Log    logger.Logger

	// Client is the HTTP client for the fetch. Nil means a default client
	// with downloadTimeout.
	Client *http.Client

	// TempDir overrides os.TempDir, for tests.
	TempDir string
}

// NewLauncher creates a launcher with a timeout-bounded HTTP client.
func NewLauncher(r exec.Runner, log logger.Logger) *Launcher {
	return &Launcher{
		Runner: r,
		Log:    log,
		Client: &http.Client{Timeout: downloadTimeout},
	}
}

// ScriptPath returns the process-unique temporary path for the downloaded
// script, derived from the PID so concurrent launchers never collide.
func (l *Launcher) ScriptPath() string {
	dir := l.TempDir
	if dir == "" {
		dir = os.TempDir()
	}
	return filepath.Join(dir, fmt.Sprintf("gitstrap-bootstrap-%d.sh", os.Getpid()))
}

// Fetch downloads url to the temp path and marks it executable. The caller
// owns removal of the returned path.
func (l *Launcher) Fetch(url string) (string, error) {
	client := l.Client
	if client == nil {
		client = &http.Client{Timeout: downloadTimeout}
	}

	resp, err := client.Get(url)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrNet,
			"Failed to download "+url,
			"Check your network connection and the URL.")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", errors.New(errors.ErrNet,
			fmt.Sprintf("Failed to download %s: HTTP %d", url, resp.StatusCode),
			"Check that the URL is correct and publicly readable.")
	}

	path := l.ScriptPath()
	// A stale file from a crashed run that recycled this PID is discarded,
	// never reused; O_EXCL then guarantees the write goes to a file this
	// process created, not to anything recreated at the path in between.
	_ = os.Remove(path)
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o700)
	if err != nil {
		return "", errors.WrapWithCode(err, errors.ErrExec,
			"Failed to create temporary script at "+path,
			"Check permissions on the temp directory.")
	}

	_, copyErr := io.Copy(f, resp.Body)
	closeErr := f.Close()
	if copyErr != nil || closeErr != nil {
		os.Remove(path)
		err := copyErr
		if err == nil {
			err = closeErr
		}
		return "", errors.WrapWithCode(err, errors.ErrNet,
			"Failed to write the downloaded script",
			"Check disk space in the temp directory.")
	}

	l.Log.Debug("downloaded %s to %s", url, path)
	return path, nil
}

// Launch runs the full sequence: fetch, execute, clean up. The child
// process inherits the current terminal and its exit status is returned.
//
// The temporary file is removed on normal completion, on error, and on
// SIGINT/SIGTERM; the signal handler is installed before the download so no
// window exists where the file could outlive the process.
func (l *Launcher) Launch(url string) (int, error) {
	scriptPath := l.ScriptPath()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-sigCh:
			os.Remove(scriptPath)
			os.Exit(1)
		case <-done:
		}
	}()

	path, err := l.Fetch(url)
	if err != nil {
		return 1, err
	}
	defer os.Remove(path)

	l.Log.Info("running bootstrap script")
	code, err := l.Runner.Run(path)
	if err != nil {
		return 1, err
	}
	return code, nil
}
