package main

import (
	"context"
	"flag"
	"fmt"

	"ewaste-exchange-go/internal/api"
	"ewaste-exchange-go/internal/common"
	"ewaste-exchange-go/internal/config"
	"ewaste-exchange-go/internal/currency"

	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	emailFlag := flag.String("email", "", "Buyer email (required)")
	itemFlag := flag.String("item", "", "Item ID (required)")
	walletFlag := flag.String("wallet", "", "Wallet address to verify for the buyer before purchasing (optional)")
	flag.Parse()

	if *emailFlag == "" || *itemFlag == "" {
		zap.L().Fatal("Required flags: --email, --item")
	}

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	services, err := common.InitializeServices(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize services", zap.Error(err))
	}
	defer services.Close()

	exchange := api.NewExchangeService(services.Engine, services.Store)

	buyer, err := services.Store.GetProfileByEmail(ctx, *emailFlag)
	if err != nil {
		zap.L().Fatal("Buyer not found", zap.String("email", *emailFlag), zap.Error(err))
	}

	if *walletFlag != "" {
		if _, err := exchange.VerifyWallet(ctx, buyer.Id, *walletFlag); err != nil {
			zap.L().Fatal("Wallet verification failed",
				zap.String("email", *emailFlag),
				zap.String("wallet", *walletFlag),
				zap.Error(err))
		}
		fmt.Printf("Wallet %s verified for %s\n\n", *walletFlag, buyer.Name)
	}

	result := exchange.PurchaseItem(ctx, buyer.Id, *itemFlag)
	if !result.Success {
		common.PrintHeader("PURCHASE FAILED", common.DefaultWidth)
		fmt.Printf("Item:  %s\n", *itemFlag)
		fmt.Printf("Buyer: %s (%s)\n", buyer.Name, buyer.Email)
		fmt.Printf("Error: %s\n", result.Error)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Purchase failed",
			zap.String("item_id", *itemFlag),
			zap.String("error", result.Error))
	}

	item := result.Item
	entry := result.Settlement
	common.PrintHeader("PURCHASE COMPLETE", common.DefaultWidth)
	fmt.Printf("Item ID:    %s\n", item.Id)
	fmt.Printf("Category:   %s\n", item.Category)
	fmt.Printf("Buyer:      %s (%s)\n", buyer.Name, buyer.Email)
	fmt.Printf("Paid:       %s\n", currency.FormatDual(entry.AmountRs, entry.AmountEth))
	fmt.Printf("Rate:       %s Rs/ETH (frozen at listing time)\n", entry.ExchangeRate.String())
	fmt.Printf("Settlement: %s (%s)\n", entry.TxHash, entry.Status)
	common.PrintSeparator("=", common.DefaultWidth)

	zap.L().Info("Purchase complete",
		zap.String("item_id", item.Id),
		zap.String("buyer_id", buyer.Id),
		zap.String("tx_hash", entry.TxHash))
}
