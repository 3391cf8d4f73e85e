package controllers

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// upload limit for spreadsheet imports
const maxImportSize = 10 << 20

type PropertyController struct {
	service *services.PropertyService
	metrics *metrics.Metrics
}

func NewPropertyController(service *services.PropertyService, m *metrics.Metrics) *PropertyController {
	return &PropertyController{service: service, metrics: m}
}

// CreateProperty handles POST requests to create a new property
func (pc *PropertyController) CreateProperty(c *gin.Context) {
	var req dtos.CreatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	property, err := pc.service.CreateProperty(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	pc.metrics.RecordOperation("property", "create")
	c.Header("Location", fmt.Sprintf("/properties/%d", property.ID))
	c.JSON(http.StatusCreated, property)
}

// UpdateProperty handles PUT requests to update an existing property
func (pc *PropertyController) UpdateProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.UpdatePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	property, err := pc.service.UpdateProperty(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	pc.metrics.RecordOperation("property", "update")
	c.JSON(http.StatusOK, property)
}

// ChangePropertyPrice handles PUT requests to change the price of a property
func (pc *PropertyController) ChangePropertyPrice(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.ChangePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	property, err := pc.service.ChangePropertyPrice(c.Request.Context(), id, req.Price)
	if err != nil {
		respondError(c, err)
		return
	}

	pc.metrics.RecordOperation("property", "change_price")
	c.JSON(http.StatusOK, property)
}

// DeleteProperty handles DELETE requests to remove a property with its images and traces
func (pc *PropertyController) DeleteProperty(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := pc.service.DeleteProperty(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}

	pc.metrics.RecordOperation("property", "delete")
	c.Status(http.StatusNoContent)
}

// GetPropertyByID handles GET requests to retrieve a property with owner, images and traces
func (pc *PropertyController) GetPropertyByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	property, err := pc.service.GetPropertyByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if property == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Property not found"})
		return
	}
	c.JSON(http.StatusOK, property)
}

// GetAllProperties handles GET requests to list properties with filters, sorting and paging
func (pc *PropertyController) GetAllProperties(c *gin.Context) {
	var q dtos.ListPropertiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}
	q.Page, q.PageSize = clampPaging(q.Page, q.PageSize)

	page, err := pc.service.ListProperties(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// ======================= IMAGES & TRACES =======================

// AddPropertyImage handles POST requests to attach an image to a property
func (pc *PropertyController) AddPropertyImage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.AddImageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	image, err := pc.service.AddPropertyImage(c.Request.Context(), id, req.File, req.Enabled)
	if err != nil {
		respondError(c, err)
		return
	}

	pc.metrics.RecordOperation("property_image", "create")
	c.JSON(http.StatusOK, image)
}

// AddPropertyTrace handles POST requests to record a sale of a property
func (pc *PropertyController) AddPropertyTrace(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.AddTraceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	trace, err := pc.service.AddPropertyTrace(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	pc.metrics.RecordOperation("property_trace", "create")
	c.JSON(http.StatusOK, trace)
}

// GetPropertyTraces handles GET requests to retrieve the sale history of a property
func (pc *PropertyController) GetPropertyTraces(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	traces, err := pc.service.GetPropertyTraces(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, traces)
}

// ======================= SPREADSHEETS =======================

// ImportProperties expects a multipart upload in the "file" field
func (pc *PropertyController) ImportProperties(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	result, err := pc.service.ImportPropertiesFromExcel(c.Request.Context(), file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if result.Imported > 0 {
		pc.metrics.RecordOperation("property", "import")
	}
	c.JSON(http.StatusOK, result)
}

// ExportProperties handles GET requests to download the filtered listing as an xlsx workbook
func (pc *PropertyController) ExportProperties(c *gin.Context) {
	var q dtos.ListPropertiesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}

	// buffered so a failure can still become a JSON error
	var buf bytes.Buffer
	if err := pc.service.ExportPropertiesToExcel(c.Request.Context(), q, &buf); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="properties.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}
