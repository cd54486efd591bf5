package main

import (
	"context"
	"flag"
	"fmt"

	"ewaste-exchange-go/internal/common"
	"ewaste-exchange-go/internal/config"
	"ewaste-exchange-go/internal/currency"
	"ewaste-exchange-go/internal/finance"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	itemsFlag := flag.Bool("items", false, "Also list every item with its financial fields")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		zap.L().Fatal("Failed to load config", zap.Error(err))
	}

	dbService, err := common.InitializeDatabaseOnly(ctx, cfg)
	if err != nil {
		zap.L().Fatal("Failed to initialize database", zap.Error(err))
	}
	defer dbService.Close()

	items, err := dbService.ListItems(ctx, "")
	if err != nil {
		zap.L().Fatal("Failed to list items", zap.Error(err))
	}

	rate, err := dbService.ExchangeRate(ctx)
	if err != nil {
		zap.L().Fatal("Failed to read exchange rate", zap.Error(err))
	}

	summary := finance.Aggregate(items)

	common.PrintHeader("FINANCIAL SUMMARY", common.DefaultWidth)
	fmt.Printf("Revenue: %s\n", currency.FormatDual(summary.Revenue, currency.RsToEth(summary.Revenue, rate)))
	fmt.Printf("Cost:    %s\n", currency.FormatDual(summary.Cost, currency.RsToEth(summary.Cost, rate)))
	fmt.Printf("Profit:  %s\n", currency.FormatDual(summary.Profit, currency.RsToEth(summary.Profit, rate)))
	common.PrintSeparator("-", common.DefaultWidth)
	fmt.Printf("Items: %d total\n", len(items))
	fmt.Printf("%ssold:               %d\n", common.BoxPrefix(false), summary.Sold)
	fmt.Printf("%srecycled:           %d\n", common.BoxPrefix(false), summary.Recycled)
	fmt.Printf("%sscrapped:           %d\n", common.BoxPrefix(false), summary.Scrapped)
	fmt.Printf("%sready to sell:      %d\n", common.BoxPrefix(false), summary.Listed)
	fmt.Printf("%sawaiting valuation: %d\n", common.BoxPrefix(true), summary.Pending)
	common.PrintSeparator("=", common.DefaultWidth)

	if *itemsFlag && len(items) > 0 {
		fmt.Println()
		common.PrintHeader("ITEMS", common.WideWidth)
		for _, item := range items {
			fmt.Printf("%s  %-18s %-12s %s\n", item.Id, item.Status, item.Category,
				currency.FormatDual(item.SellerQuotedPrice, item.SellerQuotedPriceEth))
			if item.FinalPayout.GreaterThan(decimal.Zero) {
				fmt.Printf("  payout %s, repair %s, listed %s\n",
					currency.FormatRs(item.FinalPayout),
					currency.FormatRs(item.RepairCost),
					currency.FormatRs(item.SellingPrice))
			}
		}
		common.PrintSeparator("=", common.WideWidth)
	}

	zap.L().Info("Financial summary computed",
		zap.Int("items", len(items)),
		zap.String("revenue", summary.Revenue.String()),
		zap.String("cost", summary.Cost.String()),
		zap.String("profit", summary.Profit.String()))
}
