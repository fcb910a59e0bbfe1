// Command lwe-secpar prints the security parameter, floor(log2(rop)) of
// the cheapest known attack, of an LWE instance.
//
//	lwe-secpar 512 12289 --s-dist '{"name": "Binary"}' --e-dist '{"name": "DiscreteGaussian", "stddev": 3.2}'
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"math/big"
	"os"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/tuneinsight/lwe-security-estimator/cost"
	"github.com/tuneinsight/lwe-security-estimator/distribution"
	"github.com/tuneinsight/lwe-security-estimator/estimator"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
	"github.com/tuneinsight/lwe-security-estimator/sage"
)

const name = "lwe-secpar"

var (
	Version        = "0.1.0"
	DefaultBackend = "sage"
	DefaultTimeout = time.Duration(0)
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

type options struct {
	sDist, eDist  string
	m             samplesValue
	exact         bool
	backend       string
	estimatorPath string
	python        string
	verbose       bool
	timeout       time.Duration
}

func run(args []string, stdout, stderr io.Writer) int {

	if hasVersionFlag(args) {
		fmt.Fprintf(stdout, "%s %s\n", name, Version)
		return 0
	}

	var opts options

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.sDist, "s-dist", "", `JSON spec of the secret distribution, e.g. '{"name": "DiscreteGaussianAlpha", "alpha": 0.001, "q": 12289}'`)
	fs.StringVar(&opts.eDist, "e-dist", "", `JSON spec of the error distribution, e.g. '{"name": "CenteredBinomial", "eta": 3}'`)
	fs.Var(&opts.m, "m", "number of samples (default unbounded)")
	fs.BoolVar(&opts.exact, "exact", false, "run the full estimate instead of the rough one")
	fs.Bool("version", false, "print the version and exit")
	fs.StringVar(&opts.backend, "backend", DefaultBackend, "cost estimator: sage (lattice-estimator) or builtin")
	fs.StringVar(&opts.estimatorPath, "estimator-path", "", "lattice-estimator checkout used by the sage backend (overrides LWE_ESTIMATOR_PATH)")
	fs.StringVar(&opts.python, "python", "", "interpreter used by the sage backend (overrides LWE_ESTIMATOR_PYTHON)")
	fs.BoolVar(&opts.verbose, "verbose", false, "log the parameters and the cost of every attack to stderr")
	fs.DurationVar(&opts.timeout, "timeout", DefaultTimeout, "abort the estimation after this duration (0 = no limit)")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "usage: %s ring_dim q --s-dist JSON --e-dist JSON [--m M] [--exact]\n\n", name)
		fs.PrintDefaults()
	}

	positional, err := parseInterspersed(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}

	if len(positional) != 2 {
		return fail(stderr, "expected 2 positional arguments (ring_dim q), got %d", len(positional))
	}

	n, err := strconv.Atoi(positional[0])
	if err != nil {
		return fail(stderr, "invalid ring_dim %q", positional[0])
	}

	q, ok := new(big.Int).SetString(positional[1], 10)
	if !ok {
		return fail(stderr, "invalid q %q", positional[1])
	}

	switch {
	case opts.sDist == "" && opts.eDist == "":
		return fail(stderr, "the following arguments are required: --s-dist, --e-dist")
	case opts.sDist == "":
		return fail(stderr, "the following arguments are required: --s-dist")
	case opts.eDist == "":
		return fail(stderr, "the following arguments are required: --e-dist")
	}

	secret, err := parseDescriptor("--s-dist", opts.sDist)
	if err != nil {
		return fail(stderr, "%v", err)
	}

	noise, err := parseDescriptor("--e-dist", opts.eDist)
	if err != nil {
		return fail(stderr, "%v", err)
	}

	params, err := lwe.Request{
		N:      n,
		Q:      q,
		Secret: secret,
		Error:  noise,
		M:      opts.m.Samples,
	}.Build()

	if err != nil {
		if isResolutionError(err) {
			return fail(stderr, "%v", err)
		}
		return fail(stderr, "Error while estimating: %v", err)
	}

	var logger *log.Logger
	if opts.verbose {
		logger = log.New(stderr, name+": ", 0)
	} else {
		logger = log.New(io.Discard, "", 0)
	}

	backend, err := newBackend(opts, stderr)
	if err != nil {
		return fail(stderr, "%v", err)
	}

	mode := estimator.Rough
	if opts.exact {
		mode = estimator.Exact
	}

	logger.Printf("%s", params)
	logger.Printf("fingerprint %s", params.Fingerprint())
	logger.Printf("backend %s, mode %s", opts.backend, mode)

	ctx := context.Background()
	if opts.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, opts.timeout)
		defer cancel()
	}

	secpar, eval, err := estimator.SecurityLevel(ctx, backend, params, mode)
	if err != nil {

		var unavailable *estimator.CollaboratorUnavailableError
		if errors.As(err, &unavailable) {
			return fail(stderr, "%v", err)
		}

		var eerr *estimator.EstimationError
		if errors.As(err, &eerr) {
			err = eerr.Cause
		}

		return fail(stderr, "Error while estimating: %v", err)
	}

	for _, k := range eval.Names() {
		c := eval[k]
		logger.Printf("%-6s log2(rop) = %7.2f  beta = %d  eta = %d  d = %d  m = %d", k, c.LogRop(), c.Beta, c.Eta, c.Dim, c.M)
	}

	if k, c, ok := eval.Cheapest(); ok {
		logger.Printf("cheapest attack: %s (log2(rop) = %.2f)", k, c.LogRop())
	}

	fmt.Fprintln(stdout, secpar)

	return 0
}

// parseInterspersed parses fs allowing flags before, between and after
// the positional arguments, which it returns in order.
func parseInterspersed(fs *flag.FlagSet, args []string) (positional []string, err error) {

	for {

		if err = fs.Parse(args); err != nil {
			return
		}

		rest := fs.Args()

		// everything after "--" is positional
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(positional, rest...), nil
		}

		if len(rest) == 0 {
			return
		}

		positional = append(positional, rest[0])
		args = rest[1:]
	}
}

func hasVersionFlag(args []string) bool {
	for _, arg := range args {
		switch arg {
		case "--":
			return false
		case "-version", "--version":
			return true
		}
	}
	return false
}

func parseDescriptor(flagName, value string) (d distribution.Descriptor, err error) {

	if d, err = distribution.ParseDescriptor([]byte(value)); err != nil {
		var malformed *distribution.MalformedInputError
		if errors.As(err, &malformed) && malformed.NotObject {
			return d, fmt.Errorf("%s must be a JSON object.", flagName)
		}
	}

	return
}

func isResolutionError(err error) bool {
	var (
		verr    *distribution.ValidationError
		unknown *distribution.UnknownKindError
	)
	return errors.As(err, &verr) || errors.As(err, &unknown)
}

func newBackend(opts options, stderr io.Writer) (estimator.Backend, error) {

	switch opts.backend {
	case "builtin":
		return cost.New(), nil
	case "sage":

		cfg := sage.ConfigFromEnv()

		if opts.python != "" {
			cfg.Python = []string{opts.python}
		}

		if opts.estimatorPath != "" {
			cfg.EstimatorPath = opts.estimatorPath
		}

		if opts.verbose {
			cfg.Progress = stderr
		}

		return sage.New(cfg)
	default:
		return nil, fmt.Errorf("unknown backend %q (expected builtin or sage)", opts.backend)
	}
}

// fail prints a single error line, in red when stderr is a terminal, and
// returns the exit status.
func fail(stderr io.Writer, format string, args ...interface{}) int {

	c := color.New(color.FgRed)

	if f, ok := stderr.(*os.File); !ok || !isatty.IsTerminal(f.Fd()) {
		c.DisableColor()
	}

	c.Fprintf(stderr, format+"\n", args...)

	return 1
}

// samplesValue is a flag.Value for the number of samples; unset means
// unbounded.
type samplesValue struct {
	lwe.Samples
}

func (s *samplesValue) Set(v string) error {

	m, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid number of samples %q", v)
	}

	if m < 0 {
		return fmt.Errorf("number of samples must be non-negative")
	}

	s.Samples = lwe.Bounded(m)

	return nil
}
