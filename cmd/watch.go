package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/freshwaterdesigns/freshwater-cdn/internal/behaviors"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/config"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/pipeline"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/ui"
	"github.com/freshwaterdesigns/freshwater-cdn/internal/util"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
)

// Editors tend to fire several events per save, so each file gets its
// own trailing-edge timer and only the last event triggers a render.
const watchSettle = 100 * time.Millisecond

var (
	flagWatchDir        string
	flagWatchOutput     string
	flagWatchViewport   int
	flagWatchMultiplier int
	flagWatchShopHost   string
	flagWatchBehaviors  string
)

func init() {
	watchCmd := &cobra.Command{
		Use:   "watch --dir <folder> [flags]",
		Short: "Watch a folder of theme sections and re-render them on change",
		RunE:  runWatch,
	}

	watchCmd.Flags().StringVar(&flagWatchDir, "dir", "", "folder with section files to watch")
	watchCmd.Flags().StringVar(&flagWatchOutput, "out", "", "output folder for rendered sections")
	watchCmd.Flags().IntVar(&flagWatchViewport, "viewport", 1280, "viewport width in px")
	watchCmd.Flags().IntVar(&flagWatchMultiplier, "multiplier", 11, "scroller growth target in visible widths")
	watchCmd.Flags().StringVar(&flagWatchShopHost, "shop-host", "", "the storefront's own host; links elsewhere are external")
	watchCmd.Flags().StringVar(&flagWatchBehaviors, "behaviors", "", "behaviors to apply (e.g. \"scroller,accordion\")")
	_ = watchCmd.MarkFlagRequired("dir")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, usedPath, err := config.LoadMerged(config.Options{
		IgnoreConfig: flagIgnoreConfig,
		Debug:        flagDebug,
		Output:       flagWatchOutput,
		ShopHost:     flagWatchShopHost,
	})
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("viewport") {
		cfg.ViewportWidth = flagWatchViewport
	}
	if cmd.Flags().Changed("multiplier") {
		cfg.GrowthMultiplier = flagWatchMultiplier
	}
	if flagWatchBehaviors != "" {
		cfg.Behaviors = splitBehaviors(flagWatchBehaviors)
	}

	logSvc := ui.NewLogger(cfg.Debug)
	if usedPath != "" {
		fmt.Printf("Config file: %s\n", usedPath)
	}

	if cfg.Output == "" {
		cfg.Output = "."
	}
	if err := os.MkdirAll(cfg.Output, 0755); err != nil {
		return fmt.Errorf("cannot create output folder: %w", err)
	}
	util.SetupInterruptHandler(cfg.Output)

	r := pipeline.New(cfg.ViewportWidth, behaviors.ForNames(cfg.Behaviors), logSvc)
	r.Multiplier = cfg.GrowthMultiplier
	r.ShopHost = cfg.ShopHost

	// Render everything once so the output folder starts in sync. An
	// empty folder is fine to watch; a missing one is not.
	inputs, err := pipeline.CollectDir(flagWatchDir)
	if err != nil {
		if _, statErr := os.Stat(flagWatchDir); statErr != nil {
			return statErr
		}
		logSvc.Warnf("%v", err)
	}
	for _, in := range inputs {
		renderOne(r, in, cfg.Output, logSvc)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(flagWatchDir); err != nil {
		return fmt.Errorf("watch %s: %w", flagWatchDir, err)
	}

	logSvc.Infof("watching %s (%d sections)", flagWatchDir, len(inputs))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	var (
		mu      sync.Mutex
		pending = map[string]*time.Timer{}
	)

	for {
		select {
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if !strings.HasSuffix(strings.ToLower(ev.Name), ".html") {
				continue
			}

			path := ev.Name
			mu.Lock()
			if t, ok := pending[path]; ok {
				t.Stop()
			}
			pending[path] = time.AfterFunc(watchSettle, func() {
				mu.Lock()
				delete(pending, path)
				mu.Unlock()

				in := pipeline.Input{Name: filepath.Base(path), Path: path}
				renderOne(r, in, cfg.Output, logSvc)
			})
			mu.Unlock()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logSvc.Errorf("watch: %v", err)

		case <-quit:
			mu.Lock()
			for _, t := range pending {
				t.Stop()
			}
			mu.Unlock()

			logSvc.Infof("stopped watching %s", flagWatchDir)
			return nil
		}
	}
}

func renderOne(r *pipeline.Renderer, in pipeline.Input, outDir string, log *ui.Logger) {
	path, size, err := r.RenderInput(in, outDir)
	if err != nil {
		log.Errorf("section %s failed: %v", in.Name, err)
		return
	}
	log.Infof("rendered %s (%s)", path, util.Human(size))
}
