package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/interverse/verse-go/internal/bootstrap"
	"github.com/interverse/verse-go/internal/chain"
	"github.com/interverse/verse-go/internal/config"
	"github.com/interverse/verse-go/internal/conversion"
	"github.com/interverse/verse-go/internal/domain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/gamelink"
	"github.com/interverse/verse-go/internal/inventory"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/mining"
	"github.com/interverse/verse-go/internal/player"
	"github.com/interverse/verse-go/internal/wallet"
)

const shutdownTimeout = 10 * time.Second

// app is the composition root: every subsystem wired to the shared client
// and event bus. Games embedding this module assemble the same graph.
type app struct {
	client        *chain.Client
	store         *inventory.Store
	keeper        *wallet.Keeper
	players       *player.Service
	bridge        *gamelink.Bridge
	engine        *conversion.Engine
	miner         *mining.Miner
	metricsServer *http.Server
}

func buildApp(cfg *config.Config) (*app, *event.ResilientPublisher, error) {
	bus, publisher, err := bootstrap.InitializeEventSystem(cfg)
	if err != nil {
		return nil, nil, err
	}

	engine, err := bootstrap.LoadConversionRules(cfg)
	if err != nil {
		return nil, nil, err
	}

	client := chain.NewClient(chain.Config{
		NodeURL:        cfg.NodeURL,
		GameID:         cfg.GameID,
		APIKey:         cfg.APIKey,
		ReconnectDelay: cfg.ReconnectDelay,
		RequestTimeout: cfg.RequestTimeout,
	}, publisher)

	store := inventory.NewStore()
	inventory.NewSubscriber(store, bus)

	a := &app{
		client:  client,
		store:   store,
		keeper:  wallet.NewKeeper(client, bus),
		players: player.NewService(cfg.GameID, client, publisher),
		bridge:  gamelink.NewBridge(cfg.GameID, client, publisher),
		engine:  engine,
		miner:   mining.NewMiner(mining.Config{}, publisher),
	}
	return a, publisher, nil
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	initLogger(cfg)

	a, publisher, err := buildApp(cfg)
	if err != nil {
		log.Fatalf("Failed to build application: %v", err)
	}

	ctx := context.Background()
	a.client.Start(ctx)

	if err := a.client.Connect(); err != nil {
		log.Fatalf("Failed to start push channel: %v", err)
	}

	// Create a wallet, register the local player, and start mining to it.
	if err := a.keeper.Create(func(w domain.Wallet, err error) {
		if err != nil {
			logger.Error("Wallet creation failed", "error", err)
			return
		}

		identity, err := a.players.IdentifyPlayer(w.Address, cfg.ServiceName)
		if err != nil {
			logger.Error("Player identification failed", "error", err)
			return
		}
		if err := a.players.RegisterPlayerWithChain(identity, func(_ string, err error) {
			if err != nil {
				logger.Warn("Player registration not recorded", "error", err)
			}
		}); err != nil {
			logger.Error("Failed to register player", "error", err)
		}

		if err := a.miner.StartMining(ctx, w.Address); err != nil {
			logger.Error("Failed to start mining", "error", err)
		}
	}); err != nil {
		log.Fatalf("Failed to request wallet: %v", err)
	}

	a.metricsServer = bootstrap.StartMetricsServer(cfg.MetricsAddr)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	bootstrap.GracefulShutdown(shutdownCtx, bootstrap.ShutdownComponents{
		Client:        a.client,
		Miner:         a.miner,
		Publisher:     publisher,
		MetricsServer: a.metricsServer,
	})
}
