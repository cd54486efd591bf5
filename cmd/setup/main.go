package main

import (
	"context"
	"flag"
	"fmt"

	"ewaste-exchange-go/internal/common"
	"ewaste-exchange-go/internal/config"
	"ewaste-exchange-go/internal/currency"
	"ewaste-exchange-go/internal/wallet"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	seedRateFlag := flag.Bool("seed-rate", true, "Seed the exchange rate from the pricing file")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	zap.L().Info("Setting up SQLite database", zap.String("path", cfg.Database.Path))
	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	if *seedRateFlag {
		pricing, err := common.LoadPricingFile(cfg.Pricing.File)
		if err != nil {
			zap.L().Fatal("Failed to load pricing file", zap.Error(err))
		}

		rate := decimal.NewFromFloat(pricing.RsToEthRate)
		if err := dbService.SetExchangeRate(ctx, rate); err != nil {
			zap.L().Fatal("Failed to seed exchange rate", zap.Error(err))
		}

		zap.L().Info("Exchange rate seeded",
			zap.String("rs_per_eth", rate.String()),
			zap.Strings("categories", pricing.Categories))
	}

	rate, err := dbService.ExchangeRate(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read exchange rate", zap.Error(err))
	}

	profiles, err := dbService.ListProfiles(ctx)
	if err != nil {
		zap.L().Fatal("Failed to list profiles", zap.Error(err))
	}

	common.PrintHeader("EXCHANGE SETUP COMPLETE", common.DefaultWidth)
	fmt.Printf("Database:       %s\n", cfg.Database.Path)
	fmt.Printf("Network:        %s (chain id %s)\n", wallet.NetworkSepolia, wallet.SepoliaChainId)
	fmt.Printf("Company wallet: %s\n", wallet.CompanyAddress)
	fmt.Printf("Exchange rate:  %s Rs/ETH\n", rate.String())
	fmt.Printf("Profiles:       %d\n", len(profiles))
	for i, p := range profiles {
		fmt.Printf("%s%s (%s) [%s]\n", common.BoxPrefix(i == len(profiles)-1), p.Name, p.Email, p.Role)
	}
	common.PrintSeparator("=", common.DefaultWidth)
	fmt.Printf("\nExample item values at the current rate: Rs 1000 = %s ETH\n",
		currency.FormatEth(currency.RsToEth(decimal.NewFromInt(1000), rate)))

	zap.L().Info("Setup complete",
		zap.Int("profiles", len(profiles)),
		zap.String("exchange_rate", rate.String()))
}
