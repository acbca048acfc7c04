package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/consignly/consignly/internal/app"
	"github.com/consignly/consignly/internal/consignors"
	"github.com/consignly/consignly/internal/platform/db"
	"github.com/consignly/consignly/internal/products"
	"github.com/consignly/consignly/internal/sales"
	"github.com/consignly/consignly/internal/shared"
)

type sampleConsignment struct {
	consignor shared.Payload
	product   shared.Payload
	saleTotal float64
}

var samples = []sampleConsignment{
	{
		consignor: shared.Payload{"full_name": "Emma Stone", "email": "emma.stone@example.com"},
		product: shared.Payload{
			"name":           "Vintage Leather Bag",
			"category":       "Accessories",
			"condition":      "Used - Good",
			"description":    "A classic leather shoulder bag.",
			"expected_price": 120.00,
			"minimum_price":  95.00,
			"quantity":       1,
			"image_url":      "https://example.com/bag.jpg",
			"specifications": map[string]any{"location": map[string]any{"floor": "1", "aisle": "A", "rack": "R1", "bin": "B1"}, "barcode": "ABC123456789"},
		},
		saleTotal: 110.00,
	},
	{
		consignor: shared.Payload{"full_name": "Liam White", "email": "liam.white@example.com"},
		product: shared.Payload{
			"name":           "Designer Silk Scarf",
			"category":       "Accessories",
			"condition":      "New",
			"description":    "Hand-printed silk scarf.",
			"expected_price": 75.00,
			"minimum_price":  60.00,
			"quantity":       2,
			"image_url":      "https://example.com/scarf.jpg",
			"specifications": map[string]any{"location": map[string]any{"floor": "1", "aisle": "B", "rack": "R2", "bin": "B3"}, "barcode": "DEF987654321"},
		},
		saleTotal: 75.00,
	},
}

func main() {
	ctx := context.Background()

	cfg, err := app.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN, cfg.PGMaxConns)
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	gateway := db.NewGateway(pool, nil, logger)
	consignorService := consignors.NewService(consignors.NewRepository(gateway))
	productService := products.NewService(products.NewRepository(gateway))
	salesService := sales.NewService(sales.NewRepository(gateway), cfg.CommissionRate, time.Now)

	fmt.Println("→ Seeding consignments...")
	for _, sample := range samples {
		if err := seedConsignment(ctx, logger, consignorService, productService, salesService, sample); err != nil {
			log.Fatalf("seed %s: %v", sample.product["name"], err)
		}
	}

	fmt.Println("✓ Seed complete at", time.Now().Format(time.RFC3339))
}

func seedConsignment(
	ctx context.Context,
	logger *slog.Logger,
	consignorService *consignors.Service,
	productService *products.Service,
	salesService *sales.Service,
	sample sampleConsignment,
) error {
	consignor, err := consignorService.Add(ctx, sample.consignor)
	if err != nil {
		return err
	}

	payload := shared.Payload{"consignor_id": consignor.ID}
	for k, v := range sample.product {
		payload[k] = v
	}
	product, err := productService.Add(ctx, payload)
	if err != nil {
		// The consignor row only exists to own this product.
		cleanupErr := consignorService.Delete(ctx, consignor.ID)
		if errors.Is(err, shared.ErrConflict) {
			logger.Info("product already seeded", slog.Any("name", sample.product["name"]))
			return cleanupErr
		}
		return errors.Join(err, cleanupErr)
	}

	_, err = salesService.Record(ctx, shared.Payload{
		"product_id":     product.ID,
		"amount":         sample.saleTotal,
		"payment_method": "card",
	})
	return err
}
