// Package sage runs the lattice-estimator of Albrecht et al. in an
// external Sage or Python interpreter.
package sage

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/tuneinsight/lwe-security-estimator/estimator"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
)

//go:embed estimate.py
var script string

// exitImportFailure is the exit status of the script when the estimator
// package cannot be imported.
const exitImportFailure = 3

// Config configures the interpreter running the estimator.
type Config struct {
	// Python is the interpreter command line, e.g. ["sage", "-python"].
	Python []string
	// EstimatorPath is prepended to the interpreter's module search path.
	// It should point to a checkout of the lattice-estimator repository.
	EstimatorPath string
	// Progress receives the estimator's progress output. Discarded if nil.
	Progress io.Writer
}

// ConfigFromEnv reads LWE_ESTIMATOR_PYTHON and LWE_ESTIMATOR_PATH. The
// interpreter defaults to "sage -python" if sage is on the PATH and to
// python3 otherwise.
func ConfigFromEnv() (cfg Config) {

	if py := strings.Fields(os.Getenv("LWE_ESTIMATOR_PYTHON")); len(py) != 0 {
		cfg.Python = py
	} else if _, err := exec.LookPath("sage"); err == nil {
		cfg.Python = []string{"sage", "-python"}
	} else {
		cfg.Python = []string{"python3"}
	}

	cfg.EstimatorPath = os.Getenv("LWE_ESTIMATOR_PATH")

	return
}

// Bridge is an estimator.Backend backed by the lattice-estimator.
type Bridge struct {
	python []string
	path   string
	log    io.Writer
}

// New checks the configuration and returns a Bridge. A missing
// interpreter is reported as *estimator.CollaboratorUnavailableError.
func New(cfg Config) (b *Bridge, err error) {

	if len(cfg.Python) == 0 {
		return nil, fmt.Errorf("sage: no interpreter configured")
	}

	var python string
	if python, err = exec.LookPath(cfg.Python[0]); err != nil {
		return nil, &estimator.CollaboratorUnavailableError{Cause: err}
	}

	if cfg.EstimatorPath != "" {
		pkg := filepath.Join(cfg.EstimatorPath, "estimator")
		if fi, err := os.Stat(pkg); err != nil || !fi.IsDir() {
			return nil, &estimator.CollaboratorUnavailableError{Cause: fmt.Errorf("no estimator package in %s", cfg.EstimatorPath)}
		}
	}

	b = &Bridge{
		python: append([]string{python}, cfg.Python[1:]...),
		path:   cfg.EstimatorPath,
		log:    cfg.Progress,
	}

	if b.log == nil {
		b.log = io.Discard
	}

	return
}

// Rough runs LWE.estimate.rough.
func (b *Bridge) Rough(ctx context.Context, params lwe.Parameters) (estimator.Evaluation, error) {
	return b.run(ctx, params, false)
}

// Full runs LWE.estimate.
func (b *Bridge) Full(ctx context.Context, params lwe.Parameters) (estimator.Evaluation, error) {
	return b.run(ctx, params, true)
}

func (b *Bridge) run(ctx context.Context, params lwe.Parameters, exact bool) (eval estimator.Evaluation, err error) {

	req, err := newRequest(params, b.path, exact)
	if err != nil {
		return
	}

	var stdin []byte
	if stdin, err = json.Marshal(req); err != nil {
		return
	}

	args := append(append([]string{}, b.python[1:]...), "-c", script)

	cmd := exec.CommandContext(ctx, b.python[0], args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(stdin)
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(&stderr, b.log)

	if err = cmd.Run(); err != nil {

		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {

			msg := lastLine(stderr.String())

			if exitErr.ExitCode() == exitImportFailure {
				return nil, &estimator.CollaboratorUnavailableError{Cause: errors.New(msg)}
			}

			return nil, fmt.Errorf("sage: %s", msg)
		}

		return nil, &estimator.CollaboratorUnavailableError{Cause: err}
	}

	var res response
	if err = json.Unmarshal(stdout.Bytes(), &res); err != nil {
		return nil, fmt.Errorf("sage: invalid estimator output: %w", err)
	}

	return res.evaluation()
}

// lastLine returns the last non-empty line of s, which holds the message of
// a Python traceback.
func lastLine(s string) string {

	lines := strings.Split(strings.TrimSpace(s), "\n")

	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}

	return "estimator exited without output"
}
