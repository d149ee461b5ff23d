package handlers

import (
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProcedureHandler handles procedure catalog requests.
type ProcedureHandler struct {
	DB *gorm.DB
}

// NewProcedureHandler creates a new ProcedureHandler.
func NewProcedureHandler(db *gorm.DB) *ProcedureHandler {
	return &ProcedureHandler{DB: db}
}

// CreateProcedureRequest represents the request body for creating a procedure.
type CreateProcedureRequest struct {
	Name        string  `json:"name" binding:"required"`
	PriceJod    float64 `json:"priceJod" binding:"required,gte=0"`
	Description string  `json:"description"`
}

// CreateProcedure handles adding a procedure to the catalog (admin).
func (h *ProcedureHandler) CreateProcedure(c *gin.Context) {
	var req CreateProcedureRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	procedure := models.Procedure{
		Name:        req.Name,
		PriceJod:    req.PriceJod,
		Description: req.Description,
	}

	if err := h.DB.Create(&procedure).Error; err != nil {
		utils.InternalServerError(c, "Failed to create procedure: "+err.Error())
		return
	}

	utils.Created(c, "Procedure created successfully", procedure)
}

// GetProcedures handles fetching the full catalog ordered by name.
func (h *ProcedureHandler) GetProcedures(c *gin.Context) {
	var procedures []models.Procedure
	if err := h.DB.Order("name").Find(&procedures).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch procedures: "+err.Error())
		return
	}

	utils.Success(c, "Procedures fetched successfully", procedures)
}

// UpdateProcedureRequest represents the request body for a partial procedure
// update. A price change reprices every historical visit referencing the
// procedure on its next read.
type UpdateProcedureRequest struct {
	Name        string   `json:"name"`
	PriceJod    *float64 `json:"priceJod"`
	Description string   `json:"description"`
}

// UpdateProcedure handles updating a procedure (admin).
func (h *ProcedureHandler) UpdateProcedure(c *gin.Context) {
	procedureID := c.Param("id")

	var req UpdateProcedureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.UnprocessableEntity(c, "Invalid request payload: "+err.Error())
		return
	}

	var procedure models.Procedure
	if err := h.DB.First(&procedure, "id = ?", procedureID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Procedure not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != "" {
		procedure.Name = req.Name
	}
	if req.PriceJod != nil {
		procedure.PriceJod = *req.PriceJod
	}
	if req.Description != "" {
		procedure.Description = req.Description
	}

	if err := h.DB.Save(&procedure).Error; err != nil {
		utils.InternalServerError(c, "Failed to update procedure: "+err.Error())
		return
	}

	utils.Success(c, "Procedure updated successfully", procedure)
}

// DeleteProcedure handles removing a procedure from the catalog (admin).
// Visit line items referencing it are left in place and simply stop
// contributing to costs and balances.
func (h *ProcedureHandler) DeleteProcedure(c *gin.Context) {
	procedureID := c.Param("id")

	var procedure models.Procedure
	if err := h.DB.First(&procedure, "id = ?", procedureID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Procedure not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.Procedure{}, "id = ?", procedureID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete procedure: "+err.Error())
		return
	}

	utils.Success(c, "Procedure deleted successfully", nil)
}
