package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/term"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/okian/timeline/internal/adapters/dataset"
	"github.com/okian/timeline/internal/adapters/http/api"
	"github.com/okian/timeline/internal/adapters/render/svg"
	"github.com/okian/timeline/internal/adapters/tui"
	service "github.com/okian/timeline/internal/app"
	"github.com/okian/timeline/internal/config"
	"github.com/okian/timeline/pkg/logger"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 10 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
)

type flags struct {
	year   string
	out    string
	genre  string
	artist string
	svg    bool
}

func parseFlags(args []string) (flags, error) {
	var f flags
	fs := flag.NewFlagSet("timeline", flag.ContinueOnError)
	fs.StringVar(&f.year, "year", "", "year file to open when scrobbles_path is a directory")
	fs.BoolVar(&f.svg, "svg", false, "write an SVG snapshot instead of starting the explorer")
	fs.StringVar(&f.out, "o", "", "SVG output file (default stdout)")
	fs.StringVar(&f.genre, "genre", "", "genre to highlight in the SVG snapshot")
	fs.StringVar(&f.artist, "artist", "", "artist whose latest scrobble is selected in the SVG snapshot")
	if err := fs.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func main() {
	f, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr for initialization errors since logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}
	if f.year != "" {
		cfg.DataYear = f.year
	}

	interactive := !f.svg && term.IsTerminal(os.Stdout.Fd())

	// The explorer owns the terminal, so its logs go to a file.
	logOut := io.Writer(os.Stderr)
	if interactive && cfg.LogFile != "" {
		lf, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			os.Stderr.WriteString("failed to open log file: " + err.Error() + "\n")
			os.Exit(1)
		}
		defer lf.Close()
		logOut = lf
	}
	logOpts := []logger.Option{logger.WithOutput(logOut)}
	if cfg.LogJSON {
		logOpts = append(logOpts, logger.WithJSON())
	}
	if err := logger.Init(logOpts...); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		if err := logger.Sync(); err != nil {
			os.Stderr.WriteString("failed to sync logs: " + err.Error() + "\n")
		}
	}()

	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, f, interactive, log); err != nil {
		log.Error(ctx, "timeline failed", logger.Error(err))
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, f flags, interactive bool, log logger.Logger) error {
	loader, err := newLoader(cfg, log)
	if err != nil {
		return err
	}

	src, years, err := dataset.ResolveSource(cfg.ScrobblesPath, cfg.GenresPath, cfg.DataYear)
	if err != nil {
		return err
	}
	ds, err := loader.Load(ctx, src)
	if err != nil {
		return err
	}

	if !interactive {
		return exportSVG(ctx, cfg, f, ds)
	}

	board := service.NewStatusBoard()
	if cfg.MetricsAddr != "" {
		srv := newServer(ctx, cfg.MetricsAddr, board)
		go func() {
			log.Info(ctx, "starting observability server", logger.String("addr", cfg.MetricsAddr))
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error(ctx, "observability server stopped", logger.Error(fmt.Errorf("%w: %w", api.ErrServe, err)))
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error(ctx, "observability server shutdown failed", logger.Error(err))
			}
		}()
	}

	settings, err := cellSettings(cfg)
	if err != nil {
		return err
	}
	axis, _ := colorful.Hex(cfg.TimeAxisColor)

	opts := []tui.Option{
		tui.WithStatusBoard(board),
		tui.WithLegendHeight(cfg.LegendHeight),
		tui.WithAxisColor(axis),
		tui.WithLogger(log.Named("tui")),
	}
	if w, h, err := term.GetSize(os.Stdout.Fd()); err == nil {
		opts = append(opts, tui.WithSize(w, h))
	}
	if len(years) > 0 {
		opts = append(opts, tui.WithYears(years, func(ctx context.Context, year string) (*dataset.Dataset, error) {
			src, _, err := dataset.ResolveSource(cfg.ScrobblesPath, cfg.GenresPath, year)
			if err != nil {
				return nil, err
			}
			return loader.Load(ctx, src)
		}))
	}

	m, err := tui.New(ctx, ds, settings, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen(), tea.WithMouseAllMotion())
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("explorer: %w", err)
	}
	log.Info(ctx, "explorer closed")
	return nil
}

func newLoader(cfg *config.Config, log logger.Logger) (*dataset.Loader, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	popts, err := cfg.PaletteOptions()
	if err != nil {
		return nil, err
	}
	return dataset.NewLoader(
		dataset.WithCache(dataset.NewCache()),
		dataset.WithLocation(loc),
		dataset.WithPaletteOptions(popts...),
		dataset.WithLogger(log.Named("dataset")),
	), nil
}

// cellSettings maps the configured geometry onto terminal cells.
func cellSettings(cfg *config.Config) (service.Settings, error) {
	exact, err := colorful.Hex(cfg.ExactMatchColor)
	if err != nil {
		return service.Settings{}, fmt.Errorf("%w: exact_match_color: %w", config.ErrInvalidConfig, err)
	}
	s := service.Settings{
		Padding:         cfg.PlotPadding,
		PointSize:       cfg.PointSize,
		PointMaxMargin:  cfg.PointMaxMargin,
		TimeAxisWidth:   cfg.TimeAxisWidth,
		LabelMargin:     cfg.LabelMargin,
		ZoomDeltaFactor: cfg.ZoomDeltaFactor,
		MinTimeRange:    cfg.MinTimeRange(),
		ResizeDebounce:  cfg.ResizeDebounce(),
		ExactMatchColor: exact,
	}
	return s, s.Validate()
}

// pixelSettings keeps the pixel geometry of the SVG canvas and takes the
// rest from the configuration.
func pixelSettings(cfg *config.Config) (service.Settings, error) {
	exact, err := colorful.Hex(cfg.ExactMatchColor)
	if err != nil {
		return service.Settings{}, fmt.Errorf("%w: exact_match_color: %w", config.ErrInvalidConfig, err)
	}
	s := service.DefaultSettings()
	s.MinTimeRange = cfg.MinTimeRange()
	s.ExactMatchColor = exact
	return s, s.Validate()
}

func exportSVG(ctx context.Context, cfg *config.Config, f flags, ds *dataset.Dataset) error {
	settings, err := pixelSettings(cfg)
	if err != nil {
		return err
	}
	bg, _ := colorful.Hex(cfg.BackgroundColor)
	axis, _ := colorful.Hex(cfg.TimeAxisColor)

	canvas := svg.New(
		svg.WithSize(cfg.SVGWidth, cfg.SVGHeight),
		svg.WithPadding(settings.Padding),
		svg.WithPointSize(settings.PointSize),
		svg.WithTimeAxis(settings.TimeAxisWidth, axis),
		svg.WithBackground(bg),
	)
	s, err := service.NewSession(ctx, ds, settings, service.Deps{
		Renderer:   canvas,
		Labels:     canvas,
		TimeLabels: canvas,
	})
	if err != nil {
		return err
	}

	switch {
	case f.artist != "":
		if !s.Controller.SelectArtist(ctx, f.artist) {
			return fmt.Errorf("%w: artist %q", service.ErrNotFound, f.artist)
		}
	case f.genre != "":
		if !s.Controller.SelectGenre(ctx, f.genre) {
			return fmt.Errorf("%w: genre %q", service.ErrNotFound, f.genre)
		}
	}

	var w io.Writer = os.Stdout
	if f.out != "" {
		file, err := os.Create(f.out)
		if err != nil {
			return fmt.Errorf("create %s: %w", f.out, err)
		}
		defer file.Close()
		w = file
	}
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

func newServer(ctx context.Context, addr string, board *service.StatusBoard) *http.Server {
	mux := http.NewServeMux()
	api.NewServer(board).Register(ctx, mux)
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}
