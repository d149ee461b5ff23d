package handlers

import (
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AppointmentHandler handles appointment scheduling requests.
type AppointmentHandler struct {
	DB *gorm.DB
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(db *gorm.DB) *AppointmentHandler {
	return &AppointmentHandler{DB: db}
}

// AppointmentResponse is an appointment with patient and doctor names joined
// in.
type AppointmentResponse struct {
	models.Appointment
	PatientName string `json:"patientName"`
	DoctorName  string `json:"doctorName"`
}

func toAppointmentResponse(appointment models.Appointment) AppointmentResponse {
	return AppointmentResponse{
		Appointment: appointment,
		PatientName: appointment.Patient.Name,
		DoctorName:  appointment.Doctor.FullName,
	}
}

// CreateAppointmentRequest represents the request body for creating an
// appointment. Overlaps are not checked; colliding appointments may coexist.
type CreateAppointmentRequest struct {
	PatientID       string `json:"patientId" binding:"required"`
	DoctorID        string `json:"doctorId" binding:"required"`
	AppointmentDate string `json:"appointmentDate" binding:"required"`
	AppointmentTime string `json:"appointmentTime" binding:"required"`
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// CreateAppointment handles creating a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	var req CreateAppointmentRequest
	if !utils.BindAndValidate(c, &req) {
		return
	}

	// Verify patient exists
	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", req.PatientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	// Verify doctor exists and is a doctor
	var doctor models.User
	if err := h.DB.Where("id = ? AND role = ?", req.DoctorID, models.RoleDoctor).First(&doctor).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Doctor not found or user is not a doctor")
		} else {
			utils.InternalServerError(c, "Database error verifying doctor: "+err.Error())
		}
		return
	}

	if req.DurationMinutes <= 0 {
		req.DurationMinutes = 30
	}
	if req.Status == "" {
		req.Status = "scheduled"
	}

	appointment := models.Appointment{
		PatientID:       req.PatientID,
		DoctorID:        req.DoctorID,
		AppointmentDate: req.AppointmentDate,
		AppointmentTime: req.AppointmentTime,
		DurationMinutes: req.DurationMinutes,
		Status:          req.Status,
		Notes:           req.Notes,
	}

	if err := h.DB.Create(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to create appointment: "+err.Error())
		return
	}

	appointment.Patient = patient
	appointment.Doctor = doctor
	utils.Created(c, "Appointment created successfully", toAppointmentResponse(appointment))
}

// GetAppointments handles listing appointments, optionally filtered by
// doctor and date. Doctor-role callers always see their own appointments
// only: any requested doctorId is silently overridden by their own id.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	query := h.DB.Preload("Patient").Preload("Doctor")

	if user.Role == models.RoleDoctor {
		query = query.Where("doctor_id = ?", user.ID)
	} else if doctorID := c.Query("doctorId"); doctorID != "" {
		query = query.Where("doctor_id = ?", doctorID)
	}

	if date := c.Query("date"); date != "" {
		query = query.Where("appointment_date = ?", date)
	}

	var appointments []models.Appointment
	if err := query.Order("appointment_date, appointment_time").Find(&appointments).Error; err != nil {
		utils.InternalServerError(c, "Failed to fetch appointments: "+err.Error())
		return
	}

	responses := make([]AppointmentResponse, 0, len(appointments))
	for _, appointment := range appointments {
		responses = append(responses, toAppointmentResponse(appointment))
	}

	utils.Success(c, "Appointments fetched successfully", responses)
}

// UpdateAppointmentRequest represents the request body for a partial
// appointment update.
type UpdateAppointmentRequest struct {
	AppointmentDate string `json:"appointmentDate"`
	AppointmentTime string `json:"appointmentTime"`
	DurationMinutes *int   `json:"durationMinutes"`
	Status          string `json:"status"`
	Notes           string `json:"notes"`
}

// UpdateAppointment handles partially updating an appointment.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var req UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.UnprocessableEntity(c, "Invalid request payload: "+err.Error())
		return
	}

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if req.AppointmentDate != "" {
		appointment.AppointmentDate = req.AppointmentDate
	}
	if req.AppointmentTime != "" {
		appointment.AppointmentTime = req.AppointmentTime
	}
	if req.DurationMinutes != nil {
		appointment.DurationMinutes = *req.DurationMinutes
	}
	if req.Status != "" {
		appointment.Status = req.Status
	}
	if req.Notes != "" {
		appointment.Notes = req.Notes
	}

	if err := h.DB.Save(&appointment).Error; err != nil {
		utils.InternalServerError(c, "Failed to update appointment: "+err.Error())
		return
	}

	if err := h.DB.Preload("Patient").Preload("Doctor").First(&appointment, "id = ?", appointmentID).Error; err != nil {
		utils.InternalServerError(c, "Failed to reload appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment updated successfully", toAppointmentResponse(appointment))
}

// DeleteAppointment handles deleting an appointment (admin or receptionist,
// enforced by the route's role set).
func (h *AppointmentHandler) DeleteAppointment(c *gin.Context) {
	appointmentID := c.Param("id")

	var appointment models.Appointment
	if err := h.DB.First(&appointment, "id = ?", appointmentID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Appointment not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	if err := h.DB.Delete(&models.Appointment{}, "id = ?", appointmentID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete appointment: "+err.Error())
		return
	}

	utils.Success(c, "Appointment deleted successfully", nil)
}
