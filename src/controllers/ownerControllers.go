package controllers

import (
	"fmt"
	"net/http"

	"github.com/RealEstate/RealEstate-Backend/src/dtos"
	"github.com/RealEstate/RealEstate-Backend/src/metrics"
	"github.com/RealEstate/RealEstate-Backend/src/services"
	"github.com/gin-gonic/gin"
)

type OwnerController struct {
	service *services.OwnerService
	metrics *metrics.Metrics
}

func NewOwnerController(service *services.OwnerService, m *metrics.Metrics) *OwnerController {
	return &OwnerController{service: service, metrics: m}
}

// CreateOwner handles POST requests to create a new owner
func (oc *OwnerController) CreateOwner(c *gin.Context) {
	var req dtos.CreateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	owner, err := oc.service.CreateOwner(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}

	oc.metrics.RecordOperation("owner", "create")
	c.Header("Location", fmt.Sprintf("/owners/%d", owner.ID))
	c.JSON(http.StatusCreated, owner)
}

// GetOwnerByID handles GET requests to retrieve an owner and its properties
func (oc *OwnerController) GetOwnerByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	owner, err := oc.service.GetOwnerByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if owner == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		return
	}
	c.JSON(http.StatusOK, owner)
}

// GetAllOwners handles GET requests to list owners with an optional name filter
func (oc *OwnerController) GetAllOwners(c *gin.Context) {
	var q dtos.ListOwnersQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		respondBindingError(c, err)
		return
	}
	q.Page, q.PageSize = clampPaging(q.Page, q.PageSize)

	page, err := oc.service.ListOwners(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// UpdateOwner handles PUT requests to update an existing owner
func (oc *OwnerController) UpdateOwner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dtos.UpdateOwnerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	owner, err := oc.service.UpdateOwner(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	oc.metrics.RecordOperation("owner", "update")
	c.JSON(http.StatusOK, owner)
}

// DeleteOwner handles DELETE requests to remove an owner without properties
func (oc *OwnerController) DeleteOwner(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	deleted, err := oc.service.DeleteOwner(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, gin.H{"error": "Owner not found"})
		return
	}

	oc.metrics.RecordOperation("owner", "delete")
	c.Status(http.StatusNoContent)
}
