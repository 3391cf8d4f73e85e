package services

import (
	"context"
	"testing"

	"github.com/RealEstate/RealEstate-Backend/src/db"
	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/RealEstate/RealEstate-Backend/src/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, gdb.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func mustCreateOwner(t *testing.T, svc *OwnerService, name string) *models.OwnerModel {
	t.Helper()
	owner, err := svc.CreateOwner(context.Background(), dtos.CreateOwnerRequest{Name: name, Address: name + " street"})
	require.NoError(t, err)
	return owner
}

func propertyRequest(code string, ownerID int) dtos.CreatePropertyRequest {
	return dtos.CreatePropertyRequest{
		Name:         "House " + code,
		Address:      "1 Main St",
		Price:        100000,
		CodeInternal: code,
		Year:         2001,
		OwnerID:      ownerID,
	}
}

func mustCreateProperty(t *testing.T, svc *PropertyService, req dtos.CreatePropertyRequest) *models.PropertyModel {
	t.Helper()
	p, err := svc.CreateProperty(context.Background(), req)
	require.NoError(t, err)
	return p
}
