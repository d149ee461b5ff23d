package handlers

import (
	"time"

	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// PaymentHandler handles payment requests.
type PaymentHandler struct {
	DB *gorm.DB
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(db *gorm.DB) *PaymentHandler {
	return &PaymentHandler{DB: db}
}

// PaymentResponse is a payment with patient and recorder names joined in.
type PaymentResponse struct {
	models.Payment
	PatientName    string `json:"patientName"`
	RecordedByName string `json:"recordedByName"`
}

func toPaymentResponse(payment models.Payment) PaymentResponse {
	return PaymentResponse{
		Payment:        payment,
		PatientName:    payment.Patient.Name,
		RecordedByName: payment.Recorder.FullName,
	}
}

// CreatePaymentRequest represents the request body for recording a payment.
type CreatePaymentRequest struct {
	PatientID string  `json:"patientId" binding:"required"`
	AmountJod float64 `json:"amountJod" binding:"required,gt=0"`
	Notes     string  `json:"notes"`
}

// CreatePayment handles recording a payment (receptionist/admin). The
// recording user is taken from the session.
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	var req CreatePaymentRequest
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

	payment := models.Payment{
		PatientID:   req.PatientID,
		AmountJod:   req.AmountJod,
		PaymentDate: time.Now(),
		RecordedBy:  user.ID,
		Notes:       req.Notes,
	}

	if err := h.DB.Create(&payment).Error; err != nil {
		utils.InternalServerError(c, "Failed to record payment: "+err.Error())
		return
	}

	payment.Patient = patient
	payment.Recorder = *user
	utils.Created(c, "Payment recorded successfully", toPaymentResponse(payment))
}

// GetPayments handles listing payments, optionally filtered by patient,
// newest first.
func (h *PaymentHandler) GetPayments(c *gin.Context) {
	query := h.DB.Preload("Patient").Preload("Recorder")

	if patientID := c.Query("patientId"); patientID != "" {
		query = query.Where("patient_id = ?", patientID)
	}

	var payments []models.Payment
	if err := query.Order("payment_date desc").Find(&payments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch payments: "+err.Error())
		return
	}

	responses := make([]PaymentResponse, 0, len(payments))
	for _, payment := range payments {
		responses = append(responses, toPaymentResponse(payment))
	}

	utils.Success(c, "Payments fetched successfully", responses)
}
