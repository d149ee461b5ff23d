package handlers

import (
	"time"

	"clinic-app-server/internal/ledger"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// VisitHandler handles visit requests.
type VisitHandler struct {
	DB *gorm.DB
}

// NewVisitHandler creates a new VisitHandler.
func NewVisitHandler(db *gorm.DB) *VisitHandler {
	return &VisitHandler{DB: db}
}

// VisitLineItem is a visit line item priced at the procedure's current
// price.
type VisitLineItem struct {
	ProcedureID string  `json:"procedureId"`
	Name        string  `json:"name"`
	PriceJod    float64 `json:"priceJod"`
	Quantity    int     `json:"quantity"`
}

// VisitResponse is a visit with names, priced line items and the computed
// total cost joined in.
type VisitResponse struct {
	models.Visit
	PatientName  string          `json:"patientName"`
	DoctorName   string          `json:"doctorName"`
	Procedures   []VisitLineItem `json:"procedures"`
	TotalCostJod float64         `json:"totalCostJod"`
}

// lineItems fetches the visit's line items joined with the procedure
// catalog. Items whose procedure has been deleted drop out of the join.
func (h *VisitHandler) lineItems(visitID string) ([]VisitLineItem, error) {
	var items []VisitLineItem
	err := h.DB.Table("visit_procedures").
		Select("procedures.id AS procedure_id, procedures.name AS name, procedures.price_jod AS price_jod, visit_procedures.quantity AS quantity").
		Joins("JOIN procedures ON procedures.id = visit_procedures.procedure_id").
		Where("visit_procedures.visit_id = ?", visitID).
		Scan(&items).Error
	return items, err
}

func (h *VisitHandler) toVisitResponse(c *gin.Context, visit models.Visit) (VisitResponse, bool) {
	items, err := h.lineItems(visit.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch visit procedures: "+err.Error())
		return VisitResponse{}, false
	}
	if items == nil {
		items = []VisitLineItem{}
	}

	costItems := make([]ledger.LineItem, len(items))
	for i, item := range items {
		costItems[i] = ledger.LineItem{PriceJod: item.PriceJod, Quantity: item.Quantity}
	}

	return VisitResponse{
		Visit:        visit,
		PatientName:  visit.Patient.Name,
		DoctorName:   visit.Doctor.FullName,
		Procedures:   items,
		TotalCostJod: ledger.TotalCost(costItems).InexactFloat64(),
	}, true
}

// CreateVisitLineItemRequest is one (procedure, quantity) pairing of a new
// visit.
type CreateVisitLineItemRequest struct {
	ProcedureID string `json:"procedureId" binding:"required"`
	Quantity    int    `json:"quantity"`
}

// CreateVisitRequest represents the request body for creating a visit.
type CreateVisitRequest struct {
	PatientID  string                       `json:"patientId" binding:"required"`
	DoctorID   string                       `json:"doctorId" binding:"required"`
	Status     string                       `json:"status"`
	Notes      string                       `json:"notes"`
	Procedures []CreateVisitLineItemRequest `json:"procedures"`
}

// CreateVisit handles recording a visit with its line items (doctor/admin).
func (h *VisitHandler) CreateVisit(c *gin.Context) {
	var req CreateVisitRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	if req.Status == "" {
		req.Status = "in_progress"
	}

	visit := models.Visit{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		VisitDate: time.Now(),
		Status:    req.Status,
		Notes:     req.Notes,
	}

	if err := h.DB.Create(&visit).Error; err != nil {
		utils.InternalServerError(c, "Failed to create visit: "+err.Error())
		return
	}

	for _, item := range req.Procedures {
		quantity := item.Quantity
		if quantity <= 0 {
			quantity = 1
		}
		lineItem := models.VisitProcedure{
			VisitID:     visit.ID,
			ProcedureID: item.ProcedureID,
			Quantity:    quantity,
		}
		if err := h.DB.Create(&lineItem).Error; err != nil {
			utils.InternalServerError(c, "Failed to create visit procedure: "+err.Error())
			return
		}
	}

	visit.Patient = patient
	visit.Doctor = doctor
	response, ok := h.toVisitResponse(c, visit)
	if !ok {
		return
	}
	utils.Created(c, "Visit created successfully", response)
}

// GetVisits handles listing visits, optionally filtered by patient, newest
// first.
func (h *VisitHandler) GetVisits(c *gin.Context) {
	query := h.DB.Preload("Patient").Preload("Doctor")

	if patientID := c.Query("patientId"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}

	var visits []models.Visit
	if err := query.Order("visit_date desc").Find(&visits).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch visits: "+err.Error())
		return
	}

	responses := make([]VisitResponse, 0, len(visits))
	for _, visit := range visits {
		response, ok := h.toVisitResponse(c, visit)
		if !ok {
			return
		}
		responses = append(responses, response)
	}

	utils.Success(c, "Visits fetched successfully", responses)
}

// UpdateVisitRequest represents the request body for a partial visit update.
// Line items are fixed once the visit is created.
type UpdateVisitRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// UpdateVisit handles updating a visit's status or notes (doctor/admin).
func (h *VisitHandler) UpdateVisit(c *gin.Context) {
	visitID := c.Param("id")

	var req UpdateVisitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.UnprocessableEntity(c, "Invalid request payload: "+err.Error())
		return
	}

	var visit models.Visit
	if err := h.DB.First(&visit, "id = ?", visitID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Visit not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Status != "" {
		visit.Status = req.Status
	}
	if req.Notes != "" {
		visit.Notes = req.Notes
	}

	if err := h.DB.Save(&visit).Error; err != nil {
		utils.InternalServerError(c, "Failed to update visit: "+err.Error())
		return
	}

	if err := h.DB.Preload("Patient").Preload("Doctor").First(&visit, "id = ?", visitID).Error; err != nil {
		utils.InternalServerError(c, "Failed to reload visit: "+err.Error())
		return
	}

	response, ok := h.toVisitResponse(c, visit)
	if !ok {
		return
	}
	utils.Success(c, "Visit updated successfully", response)
}
