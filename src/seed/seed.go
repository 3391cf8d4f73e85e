package seed

import (
	"context"
	"time"

	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/RealEstate/RealEstate-Backend/src/logger"
	"github.com/RealEstate/RealEstate-Backend/src/models"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type demoProperty struct {
	request dtos.CreatePropertyRequest
	images  []dtos.AddImageRequest
	traces  []dtos.AddTraceRequest
}

// Seed loads demo owners and properties into an empty database. It goes
// through the services so the usual invariants apply. A database that already
// has owners is left untouched.
func Seed(ctx context.Context, db *gorm.DB, owners *services.OwnerService, properties *services.PropertyService) error {
	log := logger.FromContext(ctx)

	var count int64
	if err := db.WithContext(ctx).Model(&models.OwnerModel{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Info("Owners already exist, skipping demo data", zap.Int64("owners", count))
		return nil
	}

	alice, err := owners.CreateOwner(ctx, dtos.CreateOwnerRequest{Name: "Alice", Address: "12 Harbor Way, Seattle"})
	if err != nil {
		return err
	}
	bob, err := owners.CreateOwner(ctx, dtos.CreateOwnerRequest{Name: "Bob", Address: "48 Pine Ave, Portland"})
	if err != nil {
		return err
	}

	demo := []demoProperty{
		{
			request: dtos.CreatePropertyRequest{
				Name: "Casa", Address: "Calle 1", Price: 250000, CodeInternal: "C1", Year: 2005, OwnerID: alice.ID,
			},
			images: []dtos.AddImageRequest{
				{File: "https://images.example.com/c1/front.jpg", Enabled: true},
				{File: "https://images.example.com/c1/kitchen.jpg"},
			},
			traces: []dtos.AddTraceRequest{
				{DateSale: time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC), Name: "Initial sale", Value: 180000, Tax: 5400},
			},
		},
		{
			request: dtos.CreatePropertyRequest{
				Name: "Pike Street Loft", Address: "1501 Pike St, Seattle", Price: 420000, CodeInternal: "SEA-0001", Year: 2012, OwnerID: alice.ID,
			},
			images: []dtos.AddImageRequest{
				{File: "https://images.example.com/sea-0001/living.jpg", Enabled: true},
			},
		},
		{
			request: dtos.CreatePropertyRequest{
				Name: "Pearl District Flat", Address: "900 NW Lovejoy St, Portland", Price: 315000, CodeInternal: "PDX-0001", Year: 1998, OwnerID: bob.ID,
			},
			traces: []dtos.AddTraceRequest{
				{DateSale: time.Date(2009, 3, 15, 0, 0, 0, 0, time.UTC), Name: "Bank sale", Value: 150000, Tax: 3000},
				{DateSale: time.Date(2019, 9, 30, 0, 0, 0, 0, time.UTC), Name: "Resale", Value: 290000, Tax: 8700},
			},
		},
	}

	for _, d := range demo {
		property, err := properties.CreateProperty(ctx, d.request)
		if err != nil {
			return err
		}
		for _, img := range d.images {
			if _, err := properties.AddPropertyImage(ctx, property.ID, img.File, img.Enabled); err != nil {
				return err
			}
		}
		for _, trace := range d.traces {
			if _, err := properties.AddPropertyTrace(ctx, property.ID, trace); err != nil {
				return err
			}
		}
	}

	log.Info("Demo data created", zap.Int("owners", 2), zap.Int("properties", len(demo)))
	return nil
}
