package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/MeKo-Tech/benchkit"
	"github.com/MeKo-Tech/benchkit/internal/config"
	"github.com/MeKo-Tech/benchkit/internal/workload"
	"github.com/MeKo-Tech/benchkit/promexport"
	"github.com/MeKo-Tech/benchkit/suite"
)

var runCmd = &cobra.Command{
	Use:   "run [workload...]",
	Short: "Run built-in workloads under the harness",
	Long: `Run the named built-in workloads (all of them when none are given),
timing each iteration and collecting per-iteration counters, then print the
summary report.

With --metrics-addr, benchmark statistics are additionally served as
Prometheus metrics on /metrics for the duration of the run.`,
	RunE: runWorkloads,
}

func init() {
	defaults := config.DefaultConfig()

	runCmd.Flags().IntP("iterations", "n", defaults.Run.Iterations, "number of timed iterations per workload")
	runCmd.Flags().Int("warmup", defaults.Run.Warmup, "untimed warmup iterations per workload")
	runCmd.Flags().String("format", defaults.Output.Format, "output format (text, yaml)")
	runCmd.Flags().StringP("output", "o", "", "write results to file instead of stdout")
	runCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address during the run")

	_ = viper.BindPFlag("run.iterations", runCmd.Flags().Lookup("iterations"))
	_ = viper.BindPFlag("run.warmup", runCmd.Flags().Lookup("warmup"))
	_ = viper.BindPFlag("output.format", runCmd.Flags().Lookup("format"))
	_ = viper.BindPFlag("output.file", runCmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("metrics.addr", runCmd.Flags().Lookup("metrics-addr"))

	rootCmd.AddCommand(runCmd)
}

func runWorkloads(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()
	if err := cfg.Validate(); err != nil {
		return err
	}

	names := args
	if len(names) == 0 {
		names = cfg.Run.Workloads
	}

	opts := []suite.Option{}
	if cfg.Run.Warmup > 0 {
		opts = append(opts, suite.WithWarmup(cfg.Run.Warmup))
	}

	var metricsShutdown func()
	if cfg.Metrics.Addr != "" {
		registry := prometheus.NewRegistry()
		opts = append(opts, suite.WithObserver(func(b *benchkit.Benchmark) {
			registry.MustRegister(promexport.NewCollector(b))
		}))
		metricsShutdown = serveMetrics(cfg.Metrics.Addr, registry)
		defer metricsShutdown()
	}

	s := suite.New(opts...)
	if err := workload.Register(s, names...); err != nil {
		return err
	}

	slog.Info("starting benchmark run",
		"workloads", s.Names(),
		"iterations", cfg.Run.Iterations,
		"warmup", cfg.Run.Warmup)

	results, err := s.RunAll(cfg.Run.Iterations)
	if err != nil {
		return err
	}

	out, closeOut, err := resolveOutput(cmd, cfg.Output.File)
	if err != nil {
		return err
	}
	defer closeOut()

	switch cfg.Output.Format {
	case "yaml":
		if err := writeYAML(out, results); err != nil {
			return err
		}
	default:
		s.PrintResults(out)
	}

	for _, r := range results {
		if r.Err != nil {
			return fmt.Errorf("workload %s failed after %d iterations: %w", r.Name, r.Iterations, r.Err)
		}
	}
	return nil
}

// serveMetrics exposes the registry on /metrics until the returned shutdown
// function is called.
func serveMetrics(addr string, registry *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		slog.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("metrics server failed", "error", err)
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}

func resolveOutput(cmd *cobra.Command, file string) (io.Writer, func(), error) {
	if file == "" {
		return cmd.OutOrStdout(), func() {}, nil
	}
	f, err := os.Create(file)
	if err != nil {
		return nil, nil, fmt.Errorf("creating output file: %w", err)
	}
	return f, func() { _ = f.Close() }, nil
}

type counterStatsDoc struct {
	Mean  float64 `yaml:"mean"`
	Low   float64 `yaml:"p2_5"`
	High  float64 `yaml:"p97_5"`
	Total int64   `yaml:"total"`
}

type resultDoc struct {
	Name        string                     `yaml:"name"`
	Iterations  int                        `yaml:"iterations"`
	MeanSeconds float64                    `yaml:"mean_seconds"`
	RangeLow    float64                    `yaml:"range_low_seconds"`
	RangeHigh   float64                    `yaml:"range_high_seconds"`
	Counters    map[string]counterStatsDoc `yaml:"counters,omitempty"`
	Error       string                     `yaml:"error,omitempty"`
}

func writeYAML(w io.Writer, results []suite.Result) error {
	docs := make([]resultDoc, 0, len(results))
	for _, r := range results {
		doc := resultDoc{
			Name:       r.Name,
			Iterations: r.Iterations,
		}
		if r.Err != nil {
			doc.Error = r.Err.Error()
		}
		if r.Iterations > 0 {
			b := r.Benchmark
			mean, err := b.Mean()
			if err != nil {
				return err
			}
			low, high, err := b.PercentileRange()
			if err != nil {
				return err
			}
			doc.MeanSeconds = mean.Seconds()
			doc.RangeLow = low.Seconds()
			doc.RangeHigh = high.Seconds()

			counters := b.Counters()
			if len(counters) > 0 {
				doc.Counters = make(map[string]counterStatsDoc, len(counters))
				for _, name := range counters {
					cm, err := b.CounterMean(name)
					if err != nil {
						return err
					}
					clow, err := b.CounterPercentile(name, 2.5)
					if err != nil {
						return err
					}
					chigh, err := b.CounterPercentile(name, 97.5)
					if err != nil {
						return err
					}
					var total int64
					for _, v := range b.CounterValues(name) {
						total += v
					}
					doc.Counters[name] = counterStatsDoc{
						Mean:  cm,
						Low:   clow,
						High:  chigh,
						Total: total,
					}
				}
			}
		}
		docs = append(docs, doc)
	}

	enc := yaml.NewEncoder(w)
	defer func() { _ = enc.Close() }()
	return enc.Encode(docs)
}
