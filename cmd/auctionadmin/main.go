// Command auctionadmin provides operator utilities for the auction node:
// seeding a test auction and resetting all reconciliation state.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/topshef/hedera-nft-auction-demo/internal/config"
	"github.com/topshef/hedera-nft-auction-demo/internal/models"
	"github.com/topshef/hedera-nft-auction-demo/internal/repository"
	"github.com/topshef/hedera-nft-auction-demo/utils"

	"github.com/spf13/cobra"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func main() {
	var verbose bool

	root := &cobra.Command{
		Use:          "auctionadmin",
		Short:        "Administrative utilities for the auction node",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				utils.SetDebug()
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(seedCmd(), resetCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load(".")
	if err != nil {
		return nil, err
	}
	db, err := gorm.Open(mysql.Open(cfg.DSN()), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate schema: %w", err)
	}
	return db, nil
}

func seedCmd() *cobra.Command {
	var (
		tokenID        string
		accountID      string
		ownerAccountID string
		reserve        int64
		minimumBid     int64
		winnerCanBid   bool
		durationMins   int64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create a pending auction for testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !models.ValidEntityID(tokenID) {
				return fmt.Errorf("invalid token id %q, expected shard.realm.num", tokenID)
			}
			if !models.ValidEntityID(accountID) {
				return fmt.Errorf("invalid auction account id %q, expected shard.realm.num", accountID)
			}
			if ownerAccountID != "" && !models.ValidEntityID(ownerAccountID) {
				return fmt.Errorf("invalid owner account id %q, expected shard.realm.num", ownerAccountID)
			}

			db, err := openDB()
			if err != nil {
				return err
			}

			now := time.Now()
			auction := models.Auction{
				TokenID:             tokenID,
				AuctionAccountID:    accountID,
				TokenOwnerAccountID: ownerAccountID,
				Reserve:             reserve,
				MinimumBid:          minimumBid,
				WinnerCanBid:        winnerCanBid,
				Status:              models.AuctionPending,
				StartTimestamp:      models.TimestampFrom(now),
				EndTimestamp:        models.TimestampFrom(now.Add(time.Duration(durationMins) * time.Minute)),
			}

			auctions := repository.NewAuctionsRepository(db)
			if err := auctions.Create(context.Background(), &auction); err != nil {
				return err
			}

			memo := "auction setup " + utils.GenerateID()
			operations := repository.NewOperationsRepository(db)
			op := models.ScheduledOperation{
				TransactionTimestamp: models.TimestampFrom(now.Add(10 * time.Second)),
				AuctionID:            auction.ID,
				TransactionType:      models.OperationTokenAssociate,
				Memo:                 memo,
				Status:               models.OperationPending,
			}
			if err := operations.Create(context.Background(), &op); err != nil {
				return err
			}

			utils.Info("auction seeded", map[string]any{
				"auction_id": auction.ID,
				"token":      tokenID,
				"account":    accountID,
			})
			return nil
		},
	}

	cmd.Flags().StringVar(&tokenID, "token", "", "token id to auction")
	cmd.Flags().StringVar(&accountID, "account", "", "auction account id")
	cmd.Flags().StringVar(&ownerAccountID, "owner", "", "token owner account id")
	cmd.Flags().Int64Var(&reserve, "reserve", 0, "reserve in tinybars")
	cmd.Flags().Int64Var(&minimumBid, "minimum-bid", 0, "minimum bid in tinybars")
	cmd.Flags().BoolVar(&winnerCanBid, "winner-can-bid", true, "whether the current winner may raise their own bid")
	cmd.Flags().Int64Var(&durationMins, "duration", 60, "auction duration in minutes")
	_ = cmd.MarkFlagRequired("token")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

func resetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Delete all auctions, bids and scheduled operations",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			ctx := context.Background()

			if err := repository.NewBidsRepository(db).DeleteAll(ctx); err != nil {
				return err
			}
			if err := repository.NewOperationsRepository(db).DeleteAll(ctx); err != nil {
				return err
			}
			if err := repository.NewAuctionsRepository(db).DeleteAll(ctx); err != nil {
				return err
			}

			utils.Info("all auction state deleted", nil)
			return nil
		},
	}
}
