package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/portalmap/internal/config"
	"github.com/cory-johannsen/portalmap/internal/maploader"
	"github.com/cory-johannsen/portalmap/internal/observability"
	"github.com/cory-johannsen/portalmap/internal/resource"
	"github.com/cory-johannsen/portalmap/internal/scene"
)

// levelSummary is the YAML report printed for one loaded level.
type levelSummary struct {
	Level    string         `yaml:"level"`
	Spawn    scene.Vec3     `yaml:"spawn,flow"`
	End      scene.Vec3     `yaml:"end,flow"`
	Stats    scene.Stats    `yaml:"stats"`
	Triggers map[string]int `yaml:"triggers,omitempty"`
}

func summarize(levelPath string, sc *scene.Scene) levelSummary {
	s := levelSummary{
		Level: levelPath,
		Spawn: sc.Player.Position,
		End:   sc.End.Position,
		Stats: sc.Stats(),
	}
	for _, t := range sc.Triggers {
		if s.Triggers == nil {
			s.Triggers = make(map[string]int)
		}
		s.Triggers[t.Type]++
	}
	return s
}

// app holds everything a subcommand needs once configuration is loaded.
type app struct {
	logger *zap.Logger
	store  *resource.Store
	loader *maploader.Loader
}

func (a *app) close() {
	a.store.Close()
	_ = a.logger.Sync()
}

func newApp(configPath string, dataDir string) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	return newAppFromConfig(cfg)
}

// newAppFromConfig wires the logger, resource store, and loader. On failure
// everything already built is released before returning.
func newAppFromConfig(cfg config.Config) (_ *app, err error) {
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	var store *resource.Store
	defer func() {
		if err == nil {
			return
		}
		if store != nil {
			store.Close()
		}
		_ = logger.Sync()
	}()

	absent, err := resource.ParseAbsentPolicy(cfg.Resources.Absent)
	if err != nil {
		return nil, err
	}
	store, err = resource.NewStore(resource.Options{
		DataDir:       cfg.Data.Dir,
		TextureDir:    cfg.Data.TextureDir,
		MeshDir:       cfg.Data.MeshDir,
		Absent:        absent,
		CacheCapacity: cfg.Resources.CacheCapacity,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("building resource store: %w", err)
	}

	loader, err := maploader.New(cfg, store, logger, maploader.Options{
		TriggerWalk:   maploader.TriggerWalk(cfg.Loader.TriggerWalk),
		RequireLights: cfg.Loader.RequireLights,
	})
	if err != nil {
		return nil, err
	}

	logger.Debug("mapcheck configured",
		zap.String("data_dir", cfg.Data.Dir),
		zap.String("trigger_walk", cfg.Loader.TriggerWalk),
		zap.Bool("require_lights", cfg.Loader.RequireLights),
		zap.String("absent", cfg.Resources.Absent),
	)
	return &app{logger: logger, store: store, loader: loader}, nil
}

func newRootCmd() *cobra.Command {
	var configPath, dataDir string

	root := &cobra.Command{
		Use:   "mapcheck",
		Short: "Load level files and report their contents",
		Long: `mapcheck loads level files through the same pipeline the game uses.

A level that loads prints a YAML summary; a level that is rejected prints the
reason and the command exits non-zero.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to configuration file (defaults and PORTAL_* env when empty)")
	root.PersistentFlags().StringVar(&dataDir, "data", "", "override data.dir")

	root.AddCommand(&cobra.Command{
		Use:   "load <level>",
		Short: "Load one level and print its summary",
		Example: `  # Load a level relative to the data directory
  mapcheck load maps/n1.xml --data ./data`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, dataDir)
			if err != nil {
				return err
			}
			defer a.close()

			sc, err := a.loader.Load(args[0])
			if err != nil {
				return err
			}
			return writeYAML(cmd.OutOrStdout(), summarize(args[0], sc))
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "check <dir>",
		Short: "Load every level in a directory",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(configPath, dataDir)
			if err != nil {
				return err
			}
			defer a.close()

			scenes, err := a.loader.LoadDir(args[0])
			if err != nil {
				return err
			}
			paths := make([]string, 0, len(scenes))
			for p := range scenes {
				paths = append(paths, p)
			}
			sort.Strings(paths)
			summaries := make([]levelSummary, 0, len(paths))
			for _, p := range paths {
				summaries = append(summaries, summarize(p, scenes[p]))
			}
			hits, misses := a.store.CacheStats()
			a.logger.Info("levels checked",
				zap.Int("levels", len(paths)),
				zap.Int64("cache_hits", hits),
				zap.Int64("cache_misses", misses),
			)
			return writeYAML(cmd.OutOrStdout(), summaries)
		},
	})

	return root
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding summary: %w", err)
	}
	return enc.Close()
}
