package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"shape-canvas/canvas"
	"shape-canvas/config"
	"shape-canvas/editor"
	"shape-canvas/logging"
	"shape-canvas/prefs"
	"shape-canvas/script"
	"shape-canvas/shape"
	"shape-canvas/store"
	"shape-canvas/ui"
)

func main() {
	if err := run(); err != nil {
		slog.Error("shape-canvas failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	log := logging.New(os.Stderr, level)
	slog.SetDefault(log)

	st, file, closeStore, err := openStore(context.Background(), cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	if err := seed(st, cfg, log); err != nil {
		return err
	}

	pm := prefs.Open(cfg.PrefsApp, log)
	face := LoadUIFont(cfg.FontPath, log)

	ed, err := editor.New(st, editorOptions(cfg, pm.Prefs(), face, log))
	if err != nil {
		return fmt.Errorf("create editor: %w", err)
	}
	defer ed.Close()

	if err := ed.SetInsertMode(pm.Prefs().InsertMode); err != nil {
		log.Warn("saved insert mode ignored", "error", err)
	}

	if cfg.Snapshot != "" {
		return writeSnapshot(ed, cfg.Snapshot, log)
	}

	g := NewGame(ed, file, pm, face, log)
	w, h := windowSize(ed)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle(WindowTitle)

	return ebiten.RunGame(g)
}

// openStore opens the configured backend. file is non-nil only for the YAML
// store, which is the one that needs an explicit save.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (store.Store, *store.File, func(), error) {
	closeFn := func() {}
	switch cfg.Store {
	case config.StoreYAML:
		f, err := store.OpenFile(cfg.StorePath)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open scene file: %w", err)
		}
		log.Info("using yaml store", "path", f.Path())
		return f, f, closeFn, nil
	case config.StorePostgres:
		pg, err := store.OpenPostgres(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("open postgres store: %w", err)
		}
		log.Info("using postgres store")
		return pg, nil, pg.Close, nil
	default:
		log.Info("using in-memory store")
		return store.NewMemory(), nil, closeFn, nil
	}
}

// seed runs the seed script against an empty store.
func seed(st store.Store, cfg *config.Config, log *slog.Logger) error {
	if cfg.SeedScript == "" {
		return nil
	}
	existing, err := st.List()
	if err != nil {
		return fmt.Errorf("list shapes: %w", err)
	}
	if len(existing) > 0 {
		log.Info("store not empty, seed script skipped", "shapes", len(existing))
		return nil
	}
	res, err := script.Run(st, cfg.SeedScript, nil, script.Options{
		Width:  float64(cfg.Width),
		Height: float64(cfg.Height),
		Logger: log,
	})
	if err != nil {
		return err
	}
	log.Info("seed script done", "file", cfg.SeedScript, "shapes", len(res.IDs))
	return nil
}

// editorOptions builds the editor configuration. A grid size set in the
// environment wins over the remembered one.
func editorOptions(cfg *config.Config, p prefs.Prefs, face font.Face, log *slog.Logger) editor.Options {
	opts := editor.DefaultOptions()
	opts.Width = cfg.Width
	opts.Height = cfg.Height
	opts.Tolerance = cfg.Tolerance
	opts.MinVertices = cfg.MinPolygonVertices
	opts.RectSize = cfg.DefaultRectSize
	opts.Interval = cfg.RedrawInterval
	opts.Style = shape.DefaultStyle()
	opts.Style.SelectionColor = cfg.SelectionRGBA()
	opts.Style.SelectionWidth = cfg.SelectionWidth
	opts.Style.HandleSize = cfg.HandleSize
	opts.GridSize = cfg.GridSize
	if opts.GridSize == 0 {
		opts.GridSize = p.GridSize
	}
	opts.GridColor = ColorGrid
	opts.Background = ColorCanvas
	opts.Face = face
	opts.Mapper = canvas.Mapper{
		OffsetX:    CanvasMargin,
		OffsetY:    CanvasMargin,
		BorderLeft: CanvasBorder,
		BorderTop:  CanvasBorder,
		ChromeTop:  ui.ToolbarHeight,
	}
	opts.Logger = log
	return opts
}

func writeSnapshot(ed *editor.Editor, path string, log *slog.Logger) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := ed.Snapshot(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	log.Info("snapshot written", "path", path, "frames", ed.Frames())
	return nil
}
