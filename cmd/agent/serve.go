package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/openrune/botcore/internal/clients/textgen"
	"github.com/openrune/botcore/internal/config"
	"github.com/openrune/botcore/internal/coordinators"
	"github.com/openrune/botcore/internal/coordinators/combat"
	"github.com/openrune/botcore/internal/coordinators/economy"
	"github.com/openrune/botcore/internal/coordinators/navigation"
	"github.com/openrune/botcore/internal/coordinators/social"
	"github.com/openrune/botcore/internal/engine"
	"github.com/openrune/botcore/internal/errors"
	"github.com/openrune/botcore/internal/gateway"
	"github.com/openrune/botcore/internal/orchestrators/reputation"
	"github.com/openrune/botcore/internal/pkg/clock"
	"github.com/openrune/botcore/internal/pkg/rng"
	redisclient "github.com/openrune/botcore/internal/redis"
	reputationrepo "github.com/openrune/botcore/internal/repositories/reputation"
	"github.com/openrune/botcore/internal/scheduler"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the decision core",
	Long:  `Start the websocket gateway and the decision tick loop with all enabled coordinators.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "path to YAML config file (defaults apply when omitted)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return errors.Wrap(err, "failed to load config")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("received shutdown signal, stopping")
		cancel()
	}()

	clk := clock.New()

	repo, err := buildReputationRepo(&cfg, clk)
	if err != nil {
		return err
	}

	repService, err := reputation.NewOrchestrator(&reputation.Config{
		Repo:  repo,
		Clock: clk,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create reputation service")
	}

	sched := scheduler.New(clk)

	seed := cfg.RNGSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	random := rng.NewSeeded(seed)

	var textGen textgen.Client
	if cfg.TextGen.Endpoint != "" {
		textGen, err = textgen.NewHTTPClient(cfg.TextGen)
		if err != nil {
			return errors.Wrap(err, "failed to create textgen client")
		}
	}

	// Registration order breaks exact weight ties and stays fixed.
	coords, err := buildCoordinators(&cfg, repService, textGen, sched, random, clk)
	if err != nil {
		return err
	}

	router, err := coordinators.NewRouter(&coordinators.RouterConfig{
		Coordinators: coords,
		TickBudget:   cfg.TickBudget(),
	})
	if err != nil {
		return errors.Wrap(err, "failed to create router")
	}

	eng, err := engine.New(&engine.Config{
		Router:    router,
		Scheduler: sched,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create engine")
	}

	srv, err := gateway.NewServer(&gateway.Config{
		Engine:     eng,
		ListenAddr: cfg.Gateway.ListenAddr,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create gateway")
	}

	slog.Info("agent starting",
		"listen_addr", cfg.Gateway.ListenAddr,
		"coordinators", len(coords),
		"tick_budget", cfg.TickBudget(),
	)

	return srv.Start(ctx)
}

// buildReputationRepo picks Redis persistence when an endpoint is
// configured, in-memory otherwise.
func buildReputationRepo(cfg *config.Config, clk clock.Clock) (reputationrepo.Repository, error) {
	if cfg.Redis.Endpoint == "" {
		slog.Warn("no redis endpoint configured, reputation will not survive restarts")
		return reputationrepo.NewInMemory(), nil
	}

	client, err := redisclient.NewClient(cfg.Redis.Endpoint, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create redis client")
	}

	repo, err := reputationrepo.NewRedisRepository(&reputationrepo.Config{
		Client: client,
		Clock:  clk,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create reputation repository")
	}
	return repo, nil
}

func buildCoordinators(
	cfg *config.Config,
	repService reputation.Service,
	textGen textgen.Client,
	sched *scheduler.Scheduler,
	random rng.Source,
	clk clock.Clock,
) ([]coordinators.Coordinator, error) {
	var coords []coordinators.Coordinator

	if cfg.Combat.Enabled {
		c, err := combat.NewCoordinator(&combat.Config{Combat: cfg.Combat})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create combat coordinator")
		}
		coords = append(coords, c)
	}

	if cfg.Economy.Enabled {
		c, err := economy.NewCoordinator(&economy.Config{Economy: cfg.Economy})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create economy coordinator")
		}
		coords = append(coords, c)
	}

	if cfg.Navigation.Enabled {
		c, err := navigation.NewCoordinator(&navigation.Config{Navigation: cfg.Navigation})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create navigation coordinator")
		}
		coords = append(coords, c)
	}

	if cfg.Social.Enabled {
		c, err := social.NewCoordinator(&social.Config{
			Social:     cfg.Social,
			Economy:    cfg.Economy,
			Reputation: repService,
			TextGen:    textGen,
			Scheduler:  sched,
			Random:     random,
			Clock:      clk,
		})
		if err != nil {
			return nil, errors.Wrap(err, "failed to create social coordinator")
		}
		coords = append(coords, c)
	}

	if len(coords) == 0 {
		return nil, errors.FailedPrecondition("no coordinators enabled")
	}

	return coords, nil
}
