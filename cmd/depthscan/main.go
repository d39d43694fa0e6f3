// Command depthscan scans depth frames for obstacle intervals and prints a
// steering decision per frame as JSON lines.
//
// Usage:
//
//	depthscan [flags] frame.csv [frame.json ...]
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/banshee-data/depth.steer/internal/config"
	"github.com/banshee-data/depth.steer/internal/depth/gridio"
	"github.com/banshee-data/depth.steer/internal/depth/monitor"
	"github.com/banshee-data/depth.steer/internal/depth/pipeline"
	"github.com/banshee-data/depth.steer/internal/monitoring"
	"github.com/banshee-data/depth.steer/internal/version"
)

type options struct {
	configPath string
	output     string
	plotDir    string
	reportPath string
	debug      bool
	version    bool

	// Overrides applied on top of the config file; nil when the flag is unset.
	overrides *config.TuningConfig
}

func parseFlags(args []string) (*options, []string, error) {
	fs := flag.NewFlagSet("depthscan", flag.ContinueOnError)
	o := &options{overrides: config.EmptyTuningConfig()}

	fs.StringVar(&o.configPath, "config", "", "Tuning config JSON (defaults to compiled-in values)")
	fs.StringVar(&o.output, "out", "-", "Where to write JSON lines ('-' for stdout)")
	fs.StringVar(&o.plotDir, "plot", "", "Directory for per-frame column profile PNGs")
	fs.StringVar(&o.reportPath, "report", "", "Write an HTML run report to this path")
	fs.BoolVar(&o.debug, "debug", false, "Enable per-frame debug logging")
	fs.BoolVar(&o.version, "version", false, "Print version information and exit")

	maxDiff := fs.Float64("max-diff", config.DefaultMaxDiff, "Override max_diff")
	maxPath := fs.Int("max-path-depth", config.DefaultMaxPathDepth, "Override max_path_depth")
	minSpan := fs.Int("min-col-span", config.DefaultMinColSpan, "Override min_col_span")
	halfWidth := fs.Float64("half-width", 0, "Override frame_half_width (0 derives it from the grid)")
	threshold := fs.Float64("threshold", config.DefaultSteerThreshold, "Override steer_threshold")
	stride := fs.Int("stride", config.DefaultFrameStride, "Override frame_stride")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "max-diff":
			o.overrides.MaxDiff = maxDiff
		case "max-path-depth":
			o.overrides.MaxPathDepth = maxPath
		case "min-col-span":
			o.overrides.MinColSpan = minSpan
		case "half-width":
			o.overrides.FrameHalfWidth = halfWidth
		case "threshold":
			o.overrides.SteerThreshold = threshold
		case "stride":
			o.overrides.FrameStride = stride
		}
	})

	if fs.NArg() == 0 && !o.version {
		return nil, nil, errors.New("no input frames given")
	}
	return o, fs.Args(), nil
}

func loadConfig(o *options) (*config.TuningConfig, error) {
	cfg := config.DefaultTuningConfig()
	if o.configPath != "" {
		loaded, err := config.LoadTuningConfig(o.configPath)
		if err != nil {
			return nil, err
		}
		cfg.Merge(loaded)
	}
	cfg.Merge(o.overrides)
	if o.plotDir != "" {
		// Profiles are drawn from the frame as captured.
		preserve := true
		cfg.PreserveInput = &preserve
	}
	return cfg, cfg.Validate()
}

func loadFrames(paths []string) ([]pipeline.Frame, error) {
	frames := make([]pipeline.Frame, 0, len(paths))
	for i, path := range paths {
		g, err := gridio.ReadFile(path)
		if err != nil {
			return nil, err
		}
		frames = append(frames, pipeline.Frame{Index: i, Source: path, Grid: g})
	}
	return frames, nil
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	o, paths, err := parseFlags(args)
	if err != nil {
		return err
	}
	if o.version {
		_, err := fmt.Fprintf(stdout, "depthscan %s\n", version.String())
		return err
	}
	if o.debug {
		monitoring.EnableDebug()
	}

	cfg, err := loadConfig(o)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	frames, err := loadFrames(paths)
	if err != nil {
		return err
	}
	proc, err := pipeline.NewProcessor(cfg)
	if err != nil {
		return err
	}

	out := stdout
	if o.output != "-" {
		f, err := os.Create(o.output)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	if o.plotDir != "" {
		if err := os.MkdirAll(o.plotDir, 0755); err != nil {
			return err
		}
	}

	enc := json.NewEncoder(out)
	var results []*pipeline.FrameResult
	emit := func(res *pipeline.FrameResult) error {
		if err := enc.Encode(res); err != nil {
			return err
		}
		if o.plotDir != "" {
			path := filepath.Join(o.plotDir, monitor.ProfileFileName(res))
			if err := monitor.PlotColumnProfile(path, frames[res.FrameIndex].Grid, res); err != nil {
				log.Printf("WARNING: profile plot for frame %d failed: %v", res.FrameIndex, err)
			}
		}
		if o.reportPath != "" {
			results = append(results, res)
		}
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	summary, err := proc.Run(ctx, pipeline.Feed(ctx, frames), emit)
	if err != nil {
		return err
	}
	log.Printf("depthscan %s", version.String())
	log.Printf("Run %s: %d frames (%d skipped, %d failed), left=%d right=%d undecided=%d",
		summary.RunID, summary.Frames, summary.Skipped, summary.Failed,
		summary.Left, summary.Right, summary.Frames-summary.Decided)

	if o.reportPath != "" {
		f, err := os.Create(o.reportPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := monitor.RenderRunReport(f, results); err != nil {
			return err
		}
		log.Printf("Run report written to %s", o.reportPath)
	}
	return nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		log.Fatalf("depthscan: %v", err)
	}
}
