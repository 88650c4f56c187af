package bootstrap

import (
	"context"
	"net/http"

	"github.com/interverse/verse-go/internal/chain"
	"github.com/interverse/verse-go/internal/event"
	"github.com/interverse/verse-go/internal/logger"
	"github.com/interverse/verse-go/internal/mining"
)

// ShutdownComponents holds everything that needs graceful shutdown.
type ShutdownComponents struct {
	Client        *chain.Client
	Miner         *mining.Miner
	Publisher     *event.ResilientPublisher
	MetricsServer *http.Server
}

// GracefulShutdown stops components in dependency order: first the producers
// (miner, push channel), then the client dispatch loop, then the event
// publisher so pending retries flush, and the metrics server last.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	logger.Info(LogMsgShuttingDown)

	if components.Miner != nil {
		components.Miner.StopMining()
	}

	if components.Client != nil {
		components.Client.Disconnect()
		components.Client.Stop()
	}

	if components.Publisher != nil {
		components.Publisher.Wait()
		logger.Info(LogMsgPublisherFlushed)
	}

	StopMetricsServer(ctx, components.MetricsServer)

	logger.Info(LogMsgShutdownComplete)
}
