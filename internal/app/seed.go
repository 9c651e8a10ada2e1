package app

import (
	"context"
	"log/slog"

	"catalogue/internal/models"
	"catalogue/internal/services"
)

func seedDemoProducts(ctx context.Context, svc *services.ProductService, log *slog.Logger) {
	products := []struct {
		partNumber, partName, category string
		price                          float64
		stock                          int
	}{
		{"BRK-1001", "Brake Pad", "Brakes", 45.50, 40},
		{"FLT-2001", "Oil Filter", "Filters", 9.99, 120},
		{"SPK-3001", "Spark Plug", "Ignition", 4.25, 300},
	}

	for _, p := range products {
		req := &models.ProductRequest{
			PartNumber: &p.partNumber,
			PartName:   &p.partName,
			Category:   &p.category,
			Price:      &p.price,
			Stock:      &p.stock,
		}
		resp, err := svc.AddProduct(ctx, req)
		if err != nil {
			if kind, ok := services.KindOf(err); ok && kind == services.DuplicateData {
				continue
			}
			log.Warn("Error seeding product", "part_number", p.partNumber, "error", err)
			continue
		}
		log.Info("Seeded product", "id", resp.Data.ID, "part_number", p.partNumber)
	}
}
