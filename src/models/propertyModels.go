package models

import "time"

type PropertyModel struct {
	ID           int                  `json:"id" gorm:"primaryKey;autoIncrement"`
	Name         string               `json:"name" gorm:"type:varchar(200);not null"`
	Address      string               `json:"address" gorm:"type:varchar(250);not null"`
	Price        float64              `json:"price" gorm:"type:decimal(18,2);not null;index"`
	CodeInternal string               `json:"codeInternal" gorm:"column:code_internal;type:varchar(64);not null;uniqueIndex:ux_properties_code_internal"`
	Year         int                  `json:"year" gorm:"not null;index"`
	OwnerID      int                  `json:"ownerId" gorm:"column:owner_id;not null;index"`
	Owner        *OwnerModel          `json:"owner,omitempty" gorm:"foreignKey:OwnerID;references:ID"`
	Images       []PropertyImageModel `json:"images,omitempty" gorm:"foreignKey:PropertyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Traces       []PropertyTraceModel `json:"traces,omitempty" gorm:"foreignKey:PropertyID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

func (PropertyModel) TableName() string {
	return "properties"
}

// PropertyImageModel is an image URL attached to a property. Enabled marks the
// property's cover image; at most one per property.
type PropertyImageModel struct {
	ID         int    `json:"id" gorm:"primaryKey;autoIncrement"`
	PropertyID int    `json:"propertyId" gorm:"column:property_id;not null;index:ix_property_images_property_enabled,priority:1"`
	File       string `json:"file" gorm:"type:varchar(2048);not null"`
	Enabled    bool   `json:"enabled" gorm:"not null;default:false;index:ix_property_images_property_enabled,priority:2"`
}

func (PropertyImageModel) TableName() string {
	return "property_images"
}

// PropertyTraceModel is a historical sale record. Traces are append-only.
type PropertyTraceModel struct {
	ID         int       `json:"id" gorm:"primaryKey;autoIncrement"`
	PropertyID int       `json:"propertyId" gorm:"column:property_id;not null;index:ix_property_traces_property_date,priority:1"`
	DateSale   time.Time `json:"dateSale" gorm:"column:date_sale;not null;index:ix_property_traces_property_date,priority:2"`
	Name       string    `json:"name" gorm:"type:varchar(200);not null"`
	Value      float64   `json:"value" gorm:"type:decimal(18,2);not null"`
	Tax        float64   `json:"tax" gorm:"type:decimal(18,2);not null"`
}

func (PropertyTraceModel) TableName() string {
	return "property_traces"
}
