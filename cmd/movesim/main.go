package main

import (
	"flag"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/oomph-ac/movesim/settings"
	"github.com/oomph-ac/movesim/worker"
	"github.com/sirupsen/logrus"
)

// The following program runs a movement scenario read from a YAML file and logs where every actor ends up.
func main() {
	configPath := flag.String("config", "config.toml", "path to the settings file, created with defaults if missing")
	scenarioPath := flag.String("scenario", "scenario.yaml", "path to the scenario to run")
	flag.Parse()

	log := logrus.New()
	log.Formatter = &logrus.TextFormatter{ForceColors: true, FullTimestamp: true, TimestampFormat: "2006-01-02 15:04:05"}

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		if err := settings.SaveDefault(*configPath); err != nil {
			log.Fatalf("error creating config: %v", err)
		}
	}
	conf, err := settings.Load(*configPath)
	if err != nil {
		log.Fatalf("error reading config: %v", err)
	}
	if lvl, err := logrus.ParseLevel(conf.Log.Level); err == nil {
		log.Level = lvl
	} else {
		log.Warnf("invalid log level %q, using info", conf.Log.Level)
	}

	if conf.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: conf.Sentry.DSN, Environment: conf.Sentry.Environment}); err != nil {
			log.Fatalf("error initialising sentry: %v", err)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if conf.Stats.Enabled {
		// set configurations before calling `statsview.New()` method
		viewer.SetConfiguration(viewer.WithTheme(viewer.ThemeWesteros), viewer.WithAddr(conf.Stats.Addr))

		mgr := statsview.New()
		go mgr.Start()
		defer mgr.Stop()
	}

	sc, err := LoadScenario(*scenarioPath)
	if err != nil {
		log.Fatalf("error loading scenario: %v", err)
	}

	pool := worker.New(conf.Workers.Count, log)
	defer pool.Close()

	opts := conf.MovementOptions()
	if log.IsLevelEnabled(logrus.TraceLevel) {
		opts.Debugf = log.Tracef
	}
	sim, err := newSimulation(sc, opts, conf.Movement.StepHeight, pool.Submit, log)
	if err != nil {
		log.Fatalf("error building scenario: %v", err)
	}

	start := time.Now()
	results := sim.run()
	log.Infof("ran %d ticks for %d actors in %v", sc.Ticks, len(sim.actors), time.Since(start))
	for i, res := range results {
		s := sim.actors[i].body.State()
		log.WithFields(logrus.Fields{
			"actor":    s.ID,
			"kind":     s.Kind.Name,
			"position": res.Position,
			"ground":   s.Ground,
		}).Info("final state")
	}
}
