package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"ewaste-exchange-go/internal/api"
	"ewaste-exchange-go/internal/common"
	"ewaste-exchange-go/internal/config"
	"ewaste-exchange-go/internal/currency"
	"ewaste-exchange-go/internal/lifecycle"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type submitRequest struct {
	email      string
	category   string
	condition  string
	price      decimal.Decimal
	mediaPaths []string
	wallet     string
}

func parseAndValidateFlags() (*submitRequest, error) {
	emailFlag := flag.String("email", "", "Seller email (required)")
	categoryFlag := flag.String("category", "", "Item category, e.g. Laptop (required)")
	conditionFlag := flag.String("condition", "", "Item condition: Working, Repairable or Scrap (required)")
	priceFlag := flag.String("price", "", "Seller's quoted price in Rs (required)")
	mediaFlag := flag.String("media", "", "Comma-separated photo paths (optional)")
	walletFlag := flag.String("wallet", "", "Wallet address to verify for the seller before submitting (optional)")
	flag.Parse()

	if *emailFlag == "" || *categoryFlag == "" || *conditionFlag == "" || *priceFlag == "" {
		return nil, fmt.Errorf("required flags: --email, --category, --condition, --price")
	}

	price, err := decimal.NewFromString(*priceFlag)
	if err != nil {
		return nil, fmt.Errorf("invalid price format: %w", err)
	}
	if price.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("price must be greater than zero")
	}

	var mediaPaths []string
	if *mediaFlag != "" {
		for _, p := range strings.Split(*mediaFlag, ",") {
			if p = strings.TrimSpace(p); p != "" {
				mediaPaths = append(mediaPaths, p)
			}
		}
	}

	return &submitRequest{
		email:      *emailFlag,
		category:   *categoryFlag,
		condition:  *conditionFlag,
		price:      price,
		mediaPaths: mediaPaths,
		wallet:     *walletFlag,
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

	seller, err := services.Store.GetProfileByEmail(ctx, req.email)
	if err != nil {
		zap.L().Fatal("Seller not found", zap.String("email", req.email), zap.Error(err))
	}

	if req.wallet != "" {
		if _, err := exchange.VerifyWallet(ctx, seller.Id, req.wallet); err != nil {
			zap.L().Fatal("Wallet verification failed",
				zap.String("email", req.email),
				zap.String("wallet", req.wallet),
				zap.Error(err))
		}
		fmt.Printf("Wallet %s verified for %s\n\n", req.wallet, seller.Name)
	}

	result := exchange.SubmitItem(ctx, lifecycle.SubmitItemParams{
		SellerId:    seller.Id,
		Category:    req.category,
		Condition:   req.condition,
		QuotedPrice: req.price,
		MediaPaths:  req.mediaPaths,
	})
	if !result.Success {
		common.PrintHeader("SUBMISSION FAILED", common.DefaultWidth)
		fmt.Printf("Error: %s\n", result.Error)
		common.PrintSeparator("=", common.DefaultWidth)
		zap.L().Fatal("Item submission failed", zap.String("error", result.Error))
	}

	item := result.Item
	common.PrintHeader("ITEM SUBMITTED", common.DefaultWidth)
	fmt.Printf("Item ID:      %s\n", item.Id)
	fmt.Printf("Seller:       %s (%s)\n", seller.Name, seller.Email)
	fmt.Printf("Category:     %s\n", item.Category)
	fmt.Printf("Condition:    %s\n", item.Condition)
	fmt.Printf("Quoted Price: %s\n", currency.FormatDual(item.SellerQuotedPrice, item.SellerQuotedPriceEth))
	fmt.Printf("Status:       %s\n", item.Status)
	if len(item.MediaPaths) > 0 {
		fmt.Printf("Media:        %d file(s)\n", len(item.MediaPaths))
	}
	common.PrintSeparator("=", common.DefaultWidth)

	zap.L().Info("Item submitted",
		zap.String("item_id", item.Id),
		zap.String("seller_id", seller.Id))
}
