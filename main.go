package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/config"
	"github.com/topshef/hedera-nft-auction-demo/internal/ledger"
	"github.com/topshef/hedera-nft-auction-demo/internal/mirror"
	"github.com/topshef/hedera-nft-auction-demo/internal/refund"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/internal/scheduled"
	"github.com/topshef/hedera-nft-auction-demo/internal/server"
	"github.com/topshef/hedera-nft-auction-demo/internal/watcher"
	"github.com/topshef/hedera-nft-auction-demo/utils"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		utils.Fatal("invalid configuration", map[string]any{"error": err.Error()})
	}

	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		utils.Fatal("failed to connect to database", map[string]any{"error": err.Error()})
	}
	if err := repository.AutoMigrate(db); err != nil {
		utils.Fatal("failed to migrate database schema", map[string]any{"error": err.Error()})
	}

	auctions := repository.NewAuctionsRepository(db)
	bids := repository.NewBidsRepository(db)
	operations := repository.NewOperationsRepository(db)

	// an unsupported or unknown provider is a configuration error, caught here
	provider, err := mirror.NewProvider(cfg.Mirror.Provider, cfg.Mirror.BaseURL, nil)
	if err != nil {
		utils.Fatal("invalid mirror configuration", map[string]any{"error": err.Error()})
	}

	client, err := ledger.NewHederaClient(cfg.Ledger.Network, cfg.Ledger.OperatorID, cfg.Ledger.OperatorKey, cfg.Ledger.AuctionKey)
	if err != nil {
		utils.Fatal("invalid ledger configuration", map[string]any{"error": err.Error()})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	supervisor := watcher.NewSupervisor(auctions, bids, provider, client, cfg.MirrorInterval())
	closure := watcher.NewClosureWatcher(auctions, cfg.ClosureInterval())
	refunder := refund.NewProcessor(auctions, bids, client, cfg.RefundInterval())
	executor := scheduled.NewExecutor(auctions, operations, client, cfg.ExecutorInterval())

	var wg sync.WaitGroup
	wg.Add(4)
	go func() { defer wg.Done(); supervisor.Run(ctx) }()
	go func() { defer wg.Done(); closure.Run(ctx) }()
	go func() { defer wg.Done(); refunder.Run(ctx) }()
	go func() { defer wg.Done(); executor.Run(ctx) }()

	router := server.SetupRouter(auctions, bids)
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		utils.Info("starting auction node API", map[string]any{"addr": srv.Addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			utils.Error("API server failed", map[string]any{"error": err.Error()})
			stop()
		}
	}()

	<-ctx.Done()
	utils.Info("shutting down", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.Error("API shutdown failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	// let in-flight reconciliation cycles finish before the process exits
	wg.Wait()
}
