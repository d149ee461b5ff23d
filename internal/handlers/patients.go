package handlers

import (
	"clinic-app-server/internal/ledger"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PatientHandler handles patient record requests.
type PatientHandler struct {
	DB     *gorm.DB
	Ledger *ledger.Calculator
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(db *gorm.DB) *PatientHandler {
	return &PatientHandler{DB: db, Ledger: ledger.NewCalculator(db)}
}

// PatientResponse is a patient record with its derived balance attached.
type PatientResponse struct {
	models.Patient
	BalanceJod float64 `json:"balanceJod"`
}

func (h *PatientHandler) withBalance(c *gin.Context, patient models.Patient) (PatientResponse, bool) {
	balance, err := h.Ledger.Balance(patient.ID)
	if err != nil {
		utils.InternalServerError(c, "Failed to compute balance: "+err.Error())
		return PatientResponse{}, false
	}
	return PatientResponse{Patient: patient, BalanceJod: balance}, true
}

// CreatePatientRequest represents the request body for creating a patient.
type CreatePatientRequest struct {
	Name           string `json:"name" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	Email          string `json:"email"`
	DateOfBirth    string `json:"dateOfBirth"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medicalHistory"`
	Notes          string `json:"notes"`
}

// CreatePatient handles creating a new patient record.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	var req CreatePatientRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	patient := models.Patient{
		Name:           req.Name,
		Phone:          req.Phone,
		Email:          req.Email,
		DateOfBirth:    req.DateOfBirth,
		Address:        req.Address,
		MedicalHistory: req.MedicalHistory,
		Notes:          req.Notes,
	}

	if err := h.DB.Create(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to create patient: "+err.Error())
		return
	}

	response, ok := h.withBalance(c, patient)
	if !ok {
		return
	}
	utils.Created(c, "Patient created successfully", response)
}

// GetPatients handles fetching all patients with balances, newest first.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	var patients []models.Patient
	if err := h.DB.Order("created_at desc").Find(&patients).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch patients: "+err.Error())
		return
	}

	responses := make([]PatientResponse, 0, len(patients))
	for _, patient := range patients {
		response, ok := h.withBalance(c, patient)
		if !ok {
			return
		}
		responses = append(responses, response)
	}

	utils.Success(c, "Patients fetched successfully", responses)
}

// GetPatientByID handles fetching a single patient with its balance.
func (h *PatientHandler) GetPatientByID(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	response, ok := h.withBalance(c, patient)
	if !ok {
		return
	}
	utils.Success(c, "Patient fetched successfully", response)
}

// UpdatePatientRequest represents the request body for a partial patient update.
type UpdatePatientRequest struct {
	Name           string `json:"name"`
	Phone          string `json:"phone"`
	Email          string `json:"email"`
	DateOfBirth    string `json:"dateOfBirth"`
	Address        string `json:"address"`
	MedicalHistory string `json:"medicalHistory"`
	Notes          string `json:"notes"`
}

// UpdatePatient handles partially updating a patient record.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	patientID := c.Param("id")

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.UnprocessableEntity(c, "Invalid request payload: "+err.Error())
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.DateOfBirth != "" {
		patient.DateOfBirth = req.DateOfBirth
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.MedicalHistory != "" {
		patient.MedicalHistory = req.MedicalHistory
	}
	if req.Notes != "" {
		patient.Notes = req.Notes
	}

	if err := h.DB.Save(&patient).Error; err != nil {
		utils.InternalServerError(c, "Failed to update patient: "+err.Error())
		return
	}

	response, ok := h.withBalance(c, patient)
	if !ok {
		return
	}
	utils.Success(c, "Patient updated successfully", response)
}

// DeletePatient handles deleting a patient and all dependent records:
// appointments, payments, image records, visit line items, visits, then the
// patient itself (admin). Uploaded image files stay on disk.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	patientID := c.Param("id")

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Appointment{}, "patient_id = ?", patientID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Payment{}, "patient_id = ?", patientID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.MedicalImage{}, "patient_id = ?", patientID).Error; err != nil {
			return err
		}

		var visitIDs []string
		if err := tx.Model(&models.Visit{}).Where("patient_id = ?", patientID).Pluck("id", &visitIDs).Error; err != nil {
			return err
		}
		if len(visitIDs) > 0 {
			if err := tx.Delete(&models.VisitProcedure{}, "visit_id IN ?", visitIDs).Error; err != nil {
				return err
			}
		}
		if err := tx.Delete(&models.Visit{}, "patient_id = ?", patientID).Error; err != nil {
			return err
		}

		return tx.Delete(&models.Patient{}, "id = ?", patientID).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete patient: "+err.Error())
		return
	}

	utils.Success(c, "Patient deleted successfully", nil)
}
