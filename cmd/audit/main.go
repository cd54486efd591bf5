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

	itemFlag := flag.String("item", "", "Restrict the trail to a single item ID (optional)")
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

	entries, err := dbService.ListSettlements(ctx, *itemFlag)
	if err != nil {
		zap.L().Fatal("Failed to list settlements", zap.Error(err))
	}

	title := "SETTLEMENT AUDIT TRAIL"
	if *itemFlag != "" {
		title = fmt.Sprintf("SETTLEMENT AUDIT TRAIL - ITEM %s", *itemFlag)
	}
	common.PrintHeader(title, common.WideWidth)

	if len(entries) == 0 {
		fmt.Println("No settlement entries recorded.")
		common.PrintSeparator("=", common.WideWidth)
		return
	}

	// Payments into the company wallet minus payments out of it.
	netRs := decimal.Zero
	netEth := decimal.Zero

	for i, entry := range entries {
		last := i == len(entries)-1
		fmt.Printf("%s [%s] %s  %s\n",
			entry.CreatedAt.Format("2006-01-02 15:04:05"),
			entry.Type,
			currency.FormatDual(entry.AmountRs, entry.AmountEth),
			entry.Status)
		fmt.Printf("%sitem:   %s\n", common.BoxPrefix(false), entry.ItemId)
		fmt.Printf("%sroute:  %s -> %s\n", common.BoxPrefix(false), entry.FromAddress, entry.ToAddress)
		fmt.Printf("%srate:   %s Rs/ETH\n", common.BoxPrefix(false), entry.ExchangeRate.String())
		fmt.Printf("%stx:     %s\n", common.BoxPrefix(last), entry.TxHash)

		// Reversals swap addresses but keep their type, so flow direction
		// comes from the route rather than the entry type.
		switch {
		case entry.ToAddress == wallet.CompanyAddress:
			netRs = netRs.Add(entry.AmountRs)
			netEth = netEth.Add(entry.AmountEth)
		case entry.FromAddress == wallet.CompanyAddress:
			netRs = netRs.Sub(entry.AmountRs)
			netEth = netEth.Sub(entry.AmountEth)
		}
	}

	common.PrintSeparator("-", common.WideWidth)
	fmt.Printf("Entries:          %d\n", len(entries))
	fmt.Printf("Net company flow: %s\n", currency.FormatDual(netRs, netEth))
	common.PrintSeparator("=", common.WideWidth)

	zap.L().Info("Audit trail listed",
		zap.Int("entries", len(entries)),
		zap.String("item_id", *itemFlag),
		zap.String("net_rs", netRs.String()))
}
