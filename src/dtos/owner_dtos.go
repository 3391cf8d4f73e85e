package dtos

import "time"

// CreateOwnerRequest is the body of POST /owners
type CreateOwnerRequest struct {
	Name     string     `json:"name" binding:"required,notblank,max=200"`
	Address  string     `json:"address" binding:"required,notblank,max=250"`
	Photo    *string    `json:"photo" binding:"omitempty,url,max=2048"`
	Birthday *time.Time `json:"birthday"`
}

// UpdateOwnerRequest is the body of PUT /owners/:id; every field is overwritten
type UpdateOwnerRequest struct {
	Name     string     `json:"name" binding:"required,notblank,max=200"`
	Address  string     `json:"address" binding:"required,notblank,max=250"`
	Photo    *string    `json:"photo" binding:"omitempty,url,max=2048"`
	Birthday *time.Time `json:"birthday"`
}

// ListOwnersQuery holds the query string of GET /owners
type ListOwnersQuery struct {
	Name     string `form:"name"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}
