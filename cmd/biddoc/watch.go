package main

import (
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/biddoc-ops/biddoc/internal/config"
	"github.com/biddoc-ops/biddoc/internal/runner"
)

var (
	watchConfigPath string
	watchVerbose    bool
	watchBaseDir    string
)

// debounce window for editors that write a file in several events.
const watchDebounce = 500 * time.Millisecond

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run the pipeline when the config or input file changes",
	Long: `Watch the configuration file and the configured input file; every
change triggers a fresh sequential run with its own workspace.`,
	RunE: watchPipeline,
}

func init() {
	watchCmd.Flags().StringVar(&watchConfigPath, "config", "", "path to configuration file (required)")
	watchCmd.Flags().BoolVarP(&watchVerbose, "verbose", "v", false, "enable debug logging")
	watchCmd.Flags().StringVar(&watchBaseDir, "runs-dir", "", "base directory for run workspaces")
	_ = watchCmd.MarkFlagRequired("config")
}

func watchPipeline(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup(watchConfigPath, watchVerbose)
	if err != nil {
		return err
	}
	defer log.Sync()

	trigger := make(chan struct{}, 1)
	var timer *time.Timer
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(watchDebounce, func() {
			select {
			case trigger <- struct{}{}:
			default:
			}
		})
	}

	// Config changes arrive through the config watcher; an edit that fails
	// to decode or validate is dropped there and the previous configuration
	// stays in effect.
	cfgCh := make(chan *config.Config, 1)
	if err := config.Watch(watchConfigPath, log, func(fresh *config.Config) {
		select {
		case cfgCh <- fresh:
		default:
		}
	}); err != nil {
		return err
	}

	// The input file gets a raw directory watch; many editors replace files
	// on save, which breaks per-file watches.
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	inputPath := filepath.Clean(cfg.InputFile)
	if err := watcher.Add(filepath.Dir(inputPath)); err != nil {
		return err
	}

	log.Info("Watching for changes",
		zap.String("config", watchConfigPath),
		zap.String("input", cfg.InputFile),
	)

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case fresh := <-cfgCh:
			if next := filepath.Clean(fresh.InputFile); next != inputPath {
				if err := watcher.Add(filepath.Dir(next)); err != nil {
					log.Error("Cannot watch new input directory", zap.Error(err))
				} else {
					inputPath = next
				}
			}
			cfg = fresh
			log.Info("Configuration reloaded")
			schedule()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != inputPath {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			schedule()

		case <-trigger:
			// Runs stay strictly sequential: one at a time, each with its
			// own workspace.
			r := runner.New(cfg, log, runner.Options{
				ConfigFile: watchConfigPath,
				BaseDir:    watchBaseDir,
			})
			if _, err := r.Run(); err != nil {
				log.Error("Run failed", zap.Error(err))
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Error("Watcher error", zap.Error(err))

		case sig := <-shutdown:
			log.Info("Shutdown signal received", zap.String("signal", sig.String()))
			return nil
		}
	}
}
