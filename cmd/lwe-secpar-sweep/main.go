// Command lwe-secpar-sweep estimates the security parameter of a range of
// ring dimensions, or of named RLWE presets, and writes one CSV row per
// parameter set.
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"fmt"
	"io"
	"log"
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/tuneinsight/lwe-security-estimator/cost"
	"github.com/tuneinsight/lwe-security-estimator/distribution"
	"github.com/tuneinsight/lwe-security-estimator/estimator"
	"github.com/tuneinsight/lwe-security-estimator/lwe"
	"github.com/tuneinsight/lwe-security-estimator/presets"
	"github.com/tuneinsight/lwe-security-estimator/sage"
	"github.com/tuneinsight/lwe-security-estimator/stats"
)

var (
	LogNMin = 9  // Log2 of the smallest ring dimension
	LogNMax = 12 // Log2 of the largest ring dimension
	LogQ    = 32 // Log2 of the modulus
	SDist   = `{"name": "Ternary"}`
	EDist   = `{"name": "DiscreteGaussian", "stddev": 3.2}`
)

var Header = append([]string{
	"LogN",
	"LogQ",
	"SecPar",
	"Cheapest",
}, append(append([]string{}, stats.Header...), "Fingerprint")...)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		log.Fatal(err)
	}
}

// run executes the sweep. Every file it opens is closed before it returns.
func run(args []string, stdout, stderr io.Writer) (err error) {

	fs := flag.NewFlagSet("lwe-secpar-sweep", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var (
		lognMin = fs.Int("logn-min", LogNMin, "log2 of the smallest ring dimension")
		lognMax = fs.Int("logn-max", LogNMax, "log2 of the largest ring dimension")
		logq    = fs.Int("logq", LogQ, "log2 of the modulus; q is the largest prime below 2^logq")
		sDist   = fs.String("s-dist", SDist, "JSON spec of the secret distribution")
		eDist   = fs.String("e-dist", EDist, "JSON spec of the error distribution")
		m       = fs.Int("m", -1, "number of samples (-1 = unbounded)")
		exact   = fs.Bool("exact", false, "run the full estimate instead of the rough one")
		backend = fs.String("backend", "sage", "cost estimator: sage (lattice-estimator) or builtin")
		names   = fs.String("presets", "", "comma-separated RLWE presets to evaluate instead of the range, or 'all'")
		out     = fs.String("out", "", "write the CSV to this file (default stdout)")
		chart   = fs.String("chart", "", "render an HTML chart of the security parameter to this file")
	)

	if err = fs.Parse(args); err != nil {
		return
	}

	var points []point

	if *names != "" {
		points, err = presetPoints(*names)
	} else {
		samples := lwe.Unbounded()
		if *m >= 0 {
			samples = lwe.Bounded(*m)
		}
		points, err = rangePoints(*lognMin, *lognMax, *logq, *sDist, *eDist, samples)
	}

	if err != nil {
		return fmt.Errorf("parameters: %w", err)
	}

	var b estimator.Backend
	switch *backend {
	case "builtin":
		b = cost.New()
	case "sage":
		if b, err = sage.New(sage.ConfigFromEnv()); err != nil {
			return fmt.Errorf("sage: %w", err)
		}
	default:
		return fmt.Errorf("unknown backend %q", *backend)
	}

	mode := estimator.Rough
	if *exact {
		mode = estimator.Exact
	}

	w := stdout
	if *out != "" {

		var f *os.File
		if f, err = os.Create(*out); err != nil {
			return fmt.Errorf("create csv: %w", err)
		}

		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close csv: %w", cerr)
			}
		}()

		w = f
	}

	results, err := sweep(context.Background(), b, mode, points, w, stderr)
	if err != nil {
		return fmt.Errorf("sweep: %w", err)
	}

	if *chart != "" {

		var f *os.File
		if f, err = os.Create(*chart); err != nil {
			return fmt.Errorf("create html: %w", err)
		}

		if err = render(f, results); err != nil {
			f.Close()
			return fmt.Errorf("render html: %w", err)
		}

		if err = f.Close(); err != nil {
			return fmt.Errorf("close html: %w", err)
		}

		fmt.Fprintln(stderr, "Chart:", *chart)
	}

	return nil
}

// point is a parameter set to evaluate.
type point struct {
	Label  string
	LogN   int
	Params lwe.Parameters
}

// result is an evaluated point.
type result struct {
	point
	SecPar   uint32
	Cheapest string
	Stats    *stats.SecurityStats
}

func rangePoints(lognMin, lognMax, logq int, sDist, eDist string, m lwe.Samples) (points []point, err error) {

	if lognMin < 1 || lognMax < lognMin {
		return nil, fmt.Errorf("invalid ring dimension range [%d, %d]", lognMin, lognMax)
	}

	if logq < 2 {
		return nil, fmt.Errorf("invalid logq %d", logq)
	}

	var secret, noise distribution.Descriptor

	if secret, err = distribution.ParseDescriptor([]byte(sDist)); err != nil {
		return
	}

	if noise, err = distribution.ParseDescriptor([]byte(eDist)); err != nil {
		return
	}

	q := primeBelow(logq)

	for logN := lognMin; logN <= lognMax; logN++ {

		var params lwe.Parameters
		if params, err = (lwe.Request{N: 1 << logN, Q: q, Secret: secret, Error: noise, M: m}).Build(); err != nil {
			return
		}

		points = append(points, point{Label: strconv.Itoa(logN), LogN: logN, Params: params})
	}

	return
}

func presetPoints(list string) (points []point, err error) {

	names := presets.Names()
	if list != "all" {
		names = strings.Split(list, ",")
	}

	for _, name := range names {

		lit, err := presets.Lookup(name)
		if err != nil {
			return nil, err
		}

		params, err := presets.Parameters(lit)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		points = append(points, point{Label: strings.TrimSpace(name), LogN: lit.LogN, Params: params})
	}

	return
}

// primeBelow returns the largest prime smaller than 2^logq.
func primeBelow(logq int) *big.Int {

	q := new(big.Int).Lsh(big.NewInt(1), uint(logq))
	one := big.NewInt(1)

	q.Sub(q, one)
	for !q.ProbablyPrime(32) {
		q.Sub(q, one)
	}

	return q
}

// sweep evaluates every point and writes the CSV. Points with the same
// fingerprint as an earlier one are skipped.
func sweep(ctx context.Context, b estimator.Backend, mode estimator.Mode, points []point, out, progress io.Writer) (results []result, err error) {

	w := csv.NewWriter(out)

	// CSV Header
	if err = w.Write(Header); err != nil {
		return
	}

	w.Flush()

	seen := map[string]bool{}

	for _, p := range points {

		fingerprint := p.Params.Fingerprint()
		if seen[fingerprint] {
			fmt.Fprintf(progress, "%s: duplicate of an earlier point, skipped\n", p.Label)
			continue
		}
		seen[fingerprint] = true

		fmt.Fprintf(progress, "%s: n=%d - LogQ=%.2f\n", p.Label, p.Params.N(), p.Params.LogQ())

		var eval estimator.Evaluation
		var secpar uint32
		if secpar, eval, err = estimator.SecurityLevel(ctx, b, p.Params, mode); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Label, err)
		}

		s := stats.NewSecurityStats()
		s.Update(eval)
		if err = s.Finalize(); err != nil {
			return
		}

		cheapest, _, _ := eval.Cheapest()

		r := result{point: p, SecPar: secpar, Cheapest: cheapest, Stats: s}
		results = append(results, r)

		if err = w.Write(r.ToCSV()); err != nil {
			return
		}

		w.Flush()
	}

	return results, w.Error()
}

func (r result) ToCSV() []string {
	return append(append([]string{
		strconv.Itoa(r.LogN),
		fmt.Sprintf("%.2f", r.Params.LogQ()),
		strconv.FormatUint(uint64(r.SecPar), 10),
		r.Cheapest,
	}, r.Stats.ToCSV()...), r.Params.Fingerprint())
}

// chartValue maps values that cannot be encoded in JSON to a gap.
func chartValue(v float64) interface{} {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return "-"
	}
	return v
}

// render writes an HTML page with the security parameter of every result.
func render(w io.Writer, results []result) error {

	labels := make([]string, len(results))
	secpar := make([]opts.LineData, len(results))
	minLog := make([]opts.LineData, len(results))

	for i, r := range results {
		labels[i] = r.Label
		secpar[i] = opts.LineData{Value: r.SecPar}
		minLog[i] = opts.LineData{Value: chartValue(r.Stats.MinLogRop)}
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Security parameter", Subtitle: "floor(log2(rop)) of the cheapest attack"}),
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "lwe-secpar-sweep", Width: "1200px", Height: "600px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	line.SetXAxis(labels).
		AddSeries("secpar", secpar).
		AddSeries("min log2(rop)", minLog).
		SetSeriesOptions(charts.WithLabelOpts(opts.Label{Show: opts.Bool(true)}))

	page := components.NewPage()
	page.AddCharts(line)

	return page.Render(w)
}
