package dtos

import (
	"time"

	"github.com/RealEstate/RealEstate-Backend/src/models"
)

// CreatePropertyRequest is the body of POST /properties
type CreatePropertyRequest struct {
	Name         string  `json:"name" binding:"required,notblank,max=200"`
	Address      string  `json:"address" binding:"required,notblank,max=250"`
	Price        float64 `json:"price" binding:"gte=0,lte=1000000000"`
	CodeInternal string  `json:"codeInternal" binding:"required,notblank,max=64"`
	Year         int     `json:"year" binding:"gte=1800,lte=2100"`
	OwnerID      int     `json:"ownerId" binding:"required,gt=0"`
}

// UpdatePropertyRequest is the body of PUT /properties/:id; every field is overwritten
type UpdatePropertyRequest struct {
	Name         string  `json:"name" binding:"required,notblank,max=200"`
	Address      string  `json:"address" binding:"required,notblank,max=250"`
	Price        float64 `json:"price" binding:"gte=0,lte=1000000000"`
	CodeInternal string  `json:"codeInternal" binding:"required,notblank,max=64"`
	Year         int     `json:"year" binding:"gte=1800,lte=2100"`
	OwnerID      int     `json:"ownerId" binding:"required,gt=0"`
}

type ChangePriceRequest struct {
	Price float64 `json:"price" binding:"gt=0,lte=1000000000"`
}

type AddImageRequest struct {
	File    string `json:"file" binding:"required,url,max=2048"`
	Enabled bool   `json:"enabled"`
}

type AddTraceRequest struct {
	DateSale time.Time `json:"dateSale" binding:"required"`
	Name     string    `json:"name" binding:"required,notblank,max=200"`
	Value    float64   `json:"value" binding:"gte=0,lte=1000000000"`
	Tax      float64   `json:"tax" binding:"gte=0,lte=1000000000"`
}

// ListPropertiesQuery holds the query string of GET /properties. Every filter
// is optional; present filters are combined with AND.
type ListPropertiesQuery struct {
	Name     string   `form:"name"`
	Address  string   `form:"address"`
	MinPrice *float64 `form:"minPrice" binding:"omitempty,gte=0"`
	MaxPrice *float64 `form:"maxPrice" binding:"omitempty,gte=0"`
	MinYear  *int     `form:"minYear"`
	MaxYear  *int     `form:"maxYear"`
	OwnerID  *int     `form:"ownerId"`
	SortBy   string   `form:"sortBy"`
	Desc     bool     `form:"desc"`
	Page     int      `form:"page"`
	PageSize int      `form:"pageSize"`
}

type OwnerSummaryDTO struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

type PropertyImageDTO struct {
	ID      int    `json:"id"`
	File    string `json:"file"`
	Enabled bool   `json:"enabled"`
}

type PropertyTraceDTO struct {
	ID       int       `json:"id"`
	DateSale time.Time `json:"dateSale"`
	Name     string    `json:"name"`
	Value    float64   `json:"value"`
	Tax      float64   `json:"tax"`
}

// PropertyDTO is the detail view of GET /properties/:id
type PropertyDTO struct {
	ID           int                `json:"id"`
	Name         string             `json:"name"`
	Address      string             `json:"address"`
	Price        float64            `json:"price"`
	CodeInternal string             `json:"codeInternal"`
	Year         int                `json:"year"`
	Owner        *OwnerSummaryDTO   `json:"owner"`
	Images       []PropertyImageDTO `json:"images"`
	Traces       []PropertyTraceDTO `json:"traces"`
}

// PropertyListItemDTO is the summary view used by listings
type PropertyListItemDTO struct {
	ID           int              `json:"id"`
	Name         string           `json:"name"`
	Address      string           `json:"address"`
	Price        float64          `json:"price"`
	Year         int              `json:"year"`
	CodeInternal string           `json:"codeInternal"`
	Owner        *OwnerSummaryDTO `json:"owner"`
	ImagesCount  int              `json:"imagesCount"`
}

// ImportResult reports a spreadsheet import
type ImportResult struct {
	Imported int      `json:"imported"`
	Errors   []string `json:"errors"`
}

func ToOwnerSummaryDTO(o *models.OwnerModel) *OwnerSummaryDTO {
	if o == nil {
		return nil
	}
	return &OwnerSummaryDTO{ID: o.ID, Name: o.Name}
}

func ToPropertyImageDTO(i models.PropertyImageModel) PropertyImageDTO {
	return PropertyImageDTO{ID: i.ID, File: i.File, Enabled: i.Enabled}
}

func ToPropertyTraceDTO(t models.PropertyTraceModel) PropertyTraceDTO {
	return PropertyTraceDTO{
		ID:       t.ID,
		DateSale: t.DateSale,
		Name:     t.Name,
		Value:    t.Value,
		Tax:      t.Tax,
	}
}

// ToPropertyDTO maps a property with its preloaded owner, images and traces.
// Images and traces keep the order they were loaded in.
func ToPropertyDTO(p *models.PropertyModel) *PropertyDTO {
	if p == nil {
		return nil
	}

	dto := &PropertyDTO{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		CodeInternal: p.CodeInternal,
		Year:         p.Year,
		Owner:        ToOwnerSummaryDTO(p.Owner),
		Images:       make([]PropertyImageDTO, 0, len(p.Images)),
		Traces:       make([]PropertyTraceDTO, 0, len(p.Traces)),
	}
	for _, img := range p.Images {
		dto.Images = append(dto.Images, ToPropertyImageDTO(img))
	}
	for _, t := range p.Traces {
		dto.Traces = append(dto.Traces, ToPropertyTraceDTO(t))
	}
	return dto
}

func ToPropertyListItemDTO(p *models.PropertyModel, imagesCount int) *PropertyListItemDTO {
	if p == nil {
		return nil
	}
	return &PropertyListItemDTO{
		ID:           p.ID,
		Name:         p.Name,
		Address:      p.Address,
		Price:        p.Price,
		Year:         p.Year,
		CodeInternal: p.CodeInternal,
		Owner:        ToOwnerSummaryDTO(p.Owner),
		ImagesCount:  imagesCount,
	}
}
