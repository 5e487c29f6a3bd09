// Command windborne-export retrieves WindBorne observations for a time
// range and writes them to time-bucketed CSV files for NWP ingestion.
//
// Files are broken up into buckets as specified by -b, and each file
// name carries the time at the mid-point of its bucket. To get files
// centered on 00 UTC 29 April with 6-hour buckets, start 3 hours prior,
// at 21 UTC 28 April.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nwp-tools/windborne-export/internal/config"
	"github.com/nwp-tools/windborne-export/internal/export"
	"github.com/nwp-tools/windborne-export/internal/log"
	"github.com/nwp-tools/windborne-export/internal/scheduler"
	"github.com/nwp-tools/windborne-export/internal/store"
	"github.com/nwp-tools/windborne-export/internal/windborne"
)

// timeLayout is the positional argument format, in UTC.
const timeLayout = "2006-01-02_15:04"

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] START [END]\n\n"+
			"Retrieves WindBorne observations and writes them to CSV.\n"+
			"START and END are UTC times formatted as %s; END defaults to now.\n\n",
		os.Args[0], timeLayout)
	flag.PrintDefaults()
}

func main() {
	bucketHours := flag.Float64("b", 6.0, "hours of observations to accumulate into a file before opening the next file")
	combine := flag.Bool("c", false, "combine all missions into the same output files")
	outputDir := flag.String("o", "", "output directory (default: working directory)")
	poll := flag.Duration("poll", 0, "re-run the export on this interval instead of exiting (e.g. 10m)")
	debug := flag.Bool("debug", false, "enable debug logging")
	flag.Usage = usage
	flag.Parse()

	if err := log.Init(*debug); err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logging: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	args := flag.Args()
	if len(args) < 1 || len(args) > 2 {
		fmt.Fprintln(os.Stderr, "error processing input args, one or two time arguments are needed")
		usage()
		os.Exit(2)
	}

	startTime, err := parseUTC(args[0])
	if err != nil {
		log.Fatalf("invalid start time %q: %v", args[0], err)
	}
	endTime := time.Now().Unix()
	if len(args) == 2 {
		endTime, err = parseUTC(args[1])
		if err != nil {
			log.Fatalf("invalid end time %q: %v", args[1], err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	// Shared HTTP client for outbound API calls.
	httpClient := &http.Client{
		Timeout: 60 * time.Second,
	}

	client := windborne.NewClient(httpClient, cfg.BaseURL, cfg.ClientID, cfg.APIKey)
	collector := export.NewCollector(client, store.NewPartitionStore())
	writer := export.NewCSVWriter(cfg.OutputDir)
	exporter := export.NewExporter(collector, writer)

	opts := export.RunOptions{
		StartTime:   startTime,
		EndTime:     endTime,
		BucketHours: *bucketHours,
		Combine:     *combine,
	}
	if err := opts.Validate(); err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := exporter.Run(ctx, opts); err != nil {
		log.Fatalf("export failed: %v", err)
	}

	if *poll <= 0 {
		return
	}

	// Poll mode: keep re-exporting with the window end advanced to now.
	sched := scheduler.New(*poll, func(jobCtx context.Context) error {
		o := opts
		o.EndTime = time.Now().Unix()
		return exporter.Run(jobCtx, o)
	})
	if err := sched.Start(); err != nil {
		log.Fatalf("failed to start poll scheduler: %v", err)
	}
	defer sched.Stop()

	<-ctx.Done()
}

func parseUTC(s string) (int64, error) {
	t, err := time.ParseInLocation(timeLayout, s, time.UTC)
	if err != nil {
		return 0, err
	}
	return t.Unix(), nil
}
