package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-bench/internal/mines"
	"github.com/vancomm/minesweeper-bench/internal/plan"
	"github.com/vancomm/minesweeper-bench/internal/policy"
	"github.com/vancomm/minesweeper-bench/internal/stats"
	"github.com/vancomm/minesweeper-bench/internal/store"
)

var log = logrus.New()

type options struct {
	planPath   string
	preset     string
	policy     string
	iterations int
	workers    int
	seed       uint64
	dbPath     string
	logFile    string
	verbose    bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.planPath, "plan", "", "HCL benchmark plan; overrides -preset, -policy and -iterations")
	flag.StringVar(&o.preset, "preset", "", "preset to play (beginner, intermediate, expert); all when empty")
	flag.StringVar(&o.policy, "policy", "random", "guessing policy")
	flag.IntVar(&o.iterations, "iterations", 1000, "games per preset")
	flag.IntVar(&o.workers, "workers", runtime.GOMAXPROCS(0), "concurrent games")
	flag.Uint64Var(&o.seed, "seed", 0, "random seed; 0 picks one")
	flag.StringVar(&o.dbPath, "db", "", "SQLite file to accumulate results in")
	flag.StringVar(&o.logFile, "log-file", "", "also write logs to this rotated file")
	flag.BoolVar(&o.verbose, "v", false, "debug logging")
	flag.Parse()
	return o
}

func setupLogging(o options) {
	level := logrus.InfoLevel
	if o.verbose {
		level = logrus.DebugLevel
	}
	log.SetLevel(level)
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	if o.logFile == "" {
		return
	}
	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   o.logFile,
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Level:      level,
		Formatter:  &logrus.JSONFormatter{TimestampFormat: time.RFC3339},
	})
	if err != nil {
		log.Fatal("unable to open log file: ", err)
	}
	log.AddHook(hook)
}

// toPlan turns the flags into the same shape a plan file has.
func toPlan(o options) (*plan.Plan, error) {
	if o.planPath != "" {
		p, err := plan.Load(o.planPath)
		if err != nil {
			return nil, err
		}
		if o.seed != 0 {
			p.Seed = o.seed
		}
		return p, nil
	}

	pol, err := policy.ByName(o.policy)
	if err != nil {
		return nil, err
	}
	presets := stats.Presets()
	if o.preset != "" {
		preset, ok := stats.PresetByName(o.preset)
		if !ok {
			return nil, fmt.Errorf("unknown preset %q", o.preset)
		}
		presets = []stats.Preset{preset}
	}
	return &plan.Plan{
		Iterations: o.iterations,
		Workers:    max(1, o.workers),
		Seed:       o.seed,
		Policies:   []policy.Policy{pol},
		Presets:    presets,
	}, nil
}

// newSlogger writes slog records as text to w, including debug records when
// verbose is set.
func newSlogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func main() {
	o := parseFlags()
	setupLogging(o)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	p, err := toPlan(o)
	if err != nil {
		log.Fatal(err)
	}
	if p.Seed == 0 {
		p.Seed = mines.NewRand().Uint64()
	}

	var results *store.Results
	if o.dbPath != "" {
		db, err := store.Open(o.dbPath)
		if err != nil {
			log.Fatal(err)
		}
		defer db.Close()
		if results, err = store.NewResults(db); err != nil {
			log.Fatal("unable to create results store: ", err)
		}
	}

	/* the engine and harness log through slog; send both into logrus */
	slogOut := log.WriterLevel(logrus.DebugLevel)
	defer slogOut.Close()
	logger := newSlogger(slogOut, o.verbose)
	mines.Log = logger

	log.WithFields(logrus.Fields{
		"iterations": p.Iterations,
		"workers":    p.Workers,
		"seed":       p.Seed,
		"presets":    len(p.Presets),
		"policies":   len(p.Policies),
	}).Info("starting benchmark")

	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "preset\tpolicy\tgames\twins\trate\tmoves/game\ttime")
	for _, pol := range p.Policies {
		res, err := stats.RunAll(ctx, p.Presets, stats.Options{
			Policy:     pol,
			Iterations: p.Iterations,
			Workers:    p.Workers,
			Seed:       p.Seed,
			Logger:     logger,
		})
		for _, r := range res {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%.2f%%\t%.1f\t%s\n",
				r.Preset.Name, r.Policy, r.Games, r.Wins, r.Rate()*100,
				float64(r.Moves)/float64(max(1, r.Games)), r.Duration.Round(time.Millisecond))
			log.Debug(r.String())
			if results == nil {
				continue
			}
			total, err := results.Add(r)
			if err != nil {
				log.Error("unable to store result: ", err)
				continue
			}
			log.WithFields(logrus.Fields{
				"preset": total.Preset.Name,
				"policy": total.Policy,
				"games":  total.Games,
				"rate":   total.Rate(),
			}).Info("accumulated")
		}
		if err != nil {
			tw.Flush()
			log.Fatal(err)
		}
	}
	tw.Flush()
}
