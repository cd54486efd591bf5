package main

import (
	"context"
	"flag"
	"fmt"

	"ewaste-exchange-go/internal/api"
	"ewaste-exchange-go/internal/common"
	"ewaste-exchange-go/internal/config"
	"ewaste-exchange-go/internal/currency"
	"ewaste-exchange-go/internal/lifecycle"
	"ewaste-exchange-go/internal/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type processRequest struct {
	email        string
	itemId       string
	decision     models.Decision
	payout       decimal.Decimal
	repairCost   decimal.Decimal
	sellingPrice decimal.Decimal
}

func parseAndValidateFlags() (*processRequest, error) {
	emailFlag := flag.String("email", "", "Processing official's email (required)")
	itemFlag := flag.String("item", "", "Item ID (required)")
	decisionFlag := flag.String("decision", "", "Processing decision: recycle, refurbish or scrap (required)")
	payoutFlag := flag.String("payout", "", "Final payout to the seller in Rs (required)")
	repairFlag := flag.String("repair", "0", "Repair cost in Rs")
	sellingFlag := flag.String("selling-price", "0", "Listing price in Rs (required for refurbish)")
	flag.Parse()

	if *emailFlag == "" || *itemFlag == "" || *decisionFlag == "" || *payoutFlag == "" {
		return nil, fmt.Errorf("required flags: --email, --item, --decision, --payout")
	}

	payout, err := decimal.NewFromString(*payoutFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid payout format: %w", err)
	}
	repairCost, err := decimal.NewFromString(*repairFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid repair cost format: %w", err)
	}
	sellingPrice, err := decimal.NewFromString(*sellingFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid selling price format: %w", err)
	}

	return &processRequest{
		email:        *emailFlag,
		itemId:       *itemFlag,
		decision:     models.Decision(*decisionFlag),
		payout:       payout,
		repairCost:   repairCost,
		sellingPrice: sellingPrice,
	}, nil
}

func main() {
	ctx := context.Background()

	_, loggerCleanup := common.InitializeLogger()
	defer loggerCleanup()

	req, err := parseAndValidateFlags()
	if err != nil {
		zap.L().Fatal("Invalid flags", zap.Error(err))
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

	official, err := services.Store.GetProfileByEmail(ctx, req.email)
	if err != nil {
		zap.L().Fatal("Official not found", zap.String("email", req.email), zap.Error(err))
	}

	result := exchange.ProcessItem(ctx, lifecycle.ProcessItemParams{
		OfficialId:   official.Id,
		ItemId:       req.itemId,
		Decision:     req.decision,
		FinalPayout:  req.payout,
		RepairCost:   req.repairCost,
		SellingPrice: req.sellingPrice,
	})
	if !result.Success {
		common.PrintHeader("PROCESSING FAILED", common.DefaultWidth)
		fmt.Printf("Item:     %s\n", req.itemId)
		fmt.Printf("Decision: %s\n", req.decision)
		fmt.Printf("Error:    %s\n", result.Error)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Item processing failed",
			zap.String("item_id", req.itemId),
			zap.String("error", result.Error))
	}

	item := result.Item
	entry := result.Settlement
	common.PrintHeader("ITEM PROCESSED", common.DefaultWidth)
	fmt.Printf("Item ID:      %s\n", item.Id)
	fmt.Printf("Processed By: %s (%s)\n", official.Name, official.Email)
	fmt.Printf("Branch:       %s\n", item.Branch)
	fmt.Printf("New Status:   %s\n", item.Status)
	fmt.Printf("Payout:       %s\n", currency.FormatDual(item.FinalPayout, item.FinalPayoutEth))
	if item.RepairCost.GreaterThan(decimal.Zero) {
		fmt.Printf("Repair Cost:  %s\n", currency.FormatDual(item.RepairCost, item.RepairCostEth))
	}
	if item.Status == models.StatusReadyToSell {
		fmt.Printf("Listed At:    %s\n", currency.FormatDual(item.SellingPrice, item.SellingPriceEth))
	}
	fmt.Printf("Settlement:   %s (%s)\n", entry.TxHash, entry.Status)
	common.PrintSeparator("=", common.DefaultWidth)

	zap.L().Info("Item processed",
		zap.String("item_id", item.Id),
		zap.String("decision", string(req.decision)),
		zap.String("status", string(item.Status)),
		zap.String("tx_hash", entry.TxHash))
}
