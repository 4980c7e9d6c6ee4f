package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"

	"github.com/davecgh/go-spew/spew"
	"github.com/joho/godotenv"

	"github.com/curbz/flightimpact/internal/config"
	"github.com/curbz/flightimpact/internal/logging"
	"github.com/curbz/flightimpact/internal/mission"
	"github.com/curbz/flightimpact/internal/model"
	"github.com/curbz/flightimpact/internal/summary"
)

const (
	envConfig   = "FLIGHTIMPACT_CONFIG"
	envLogLevel = "FLIGHTIMPACT_LOG_LEVEL"
)

func main() {
	os.Exit(run())
}

func run() int {
	// a missing .env is fine, anything else is reported
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "error loading .env file: %v\n", err)
		return mission.ExitFailure
	}

	cfgPath := flag.String("config", os.Getenv(envConfig), "YAML configuration file (built-in A321neo/PW1100G data when empty)")
	logLevel := flag.String("loglevel", os.Getenv(envLogLevel), "log level: debug, info, warn, error")
	logFile := flag.String("logfile", "", "write logs to this rotating file instead of stderr")
	format := flag.String("format", string(summary.Text), "output format: text, json, yaml, msgpack")
	from := flag.String("from", "", "origin ICAO code; with -to, replaces the configured missions")
	to := flag.String("to", "", "destination ICAO code")
	track := flag.Int("track", -1, "number of great-circle waypoints to print (overrides cruise.waypoints)")
	dump := flag.Bool("dump", false, "dump each mission result at debug level")
	flag.Parse()

	outFormat := summary.Format(*format)
	switch outFormat {
	case summary.Text, summary.JSON, summary.YAML, summary.MsgPack:
	default:
		fmt.Fprintf(os.Stderr, "unknown output format %q\n", *format)
		return mission.ExitInvalidArgument
	}

	lg, err := logging.New(*logLevel, *logFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return mission.ExitInvalidArgument
	}
	defer lg.Close()
	if lg.LogFile != "" {
		fmt.Fprintf(os.Stderr, "logging to %s\n", lg.LogFile)
	}

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		return mission.ExitCode(err)
	}
	if (*from == "") != (*to == "") {
		fmt.Fprintln(os.Stderr, "FAILED: -from and -to must be given together")
		return mission.ExitInvalidArgument
	}
	if *from != "" {
		cfg.Route(*from, *to)
	}
	if *track >= 0 {
		cfg.Cruise.Waypoints = *track
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		return mission.ExitCode(err)
	}
	missions, err := cfg.Resolve()
	if err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		return mission.ExitCode(err)
	}
	lg.WithField("config", *cfgPath).Debugf("running %d mission(s)", len(missions))

	var (
		summaries []*summary.EmissionsSummary
		results   []*model.MissionResult
	)
	code := mission.ExitOK
	for _, o := range mission.RunAll(context.Background(), missions, lg) {
		if o.Err != nil {
			fmt.Fprintf(os.Stderr, "FAILED: %s: %v\n", o.Mission.Name, o.Err)
			if code == mission.ExitOK {
				code = mission.ExitCode(o.Err)
			}
			continue
		}
		if *dump {
			lg.Debugf("%s", spew.Sdump(o.Result))
		}
		summaries = append(summaries, summary.Build(o.Result))
		results = append(results, o.Result)
	}

	if err := summary.Write(os.Stdout, outFormat, summaries...); err != nil {
		fmt.Fprintf(os.Stderr, "FAILED: %v\n", err)
		return mission.ExitFailure
	}
	if outFormat == summary.Text {
		for _, res := range results {
			printTrack(res)
		}
	}
	return code
}

func printTrack(res *model.MissionResult) {
	if len(res.Track) == 0 {
		return
	}
	fmt.Printf("---- %s track (%.0f nm) ----\n", res.Name, res.CruiseDistanceNM)
	for i, p := range res.Track {
		fmt.Printf("  %4d %10.5f %11.5f\n", i, p.Lat, p.Lon)
	}
}
