package handlers

import (
	"os"
	"path/filepath"
	"time"

	"clinic-app-server/internal/config"
	"clinic-app-server/internal/middleware"
	"clinic-app-server/internal/models"
	"clinic-app-server/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ImageHandler handles medical image requests. Files live on disk under the
// configured uploads directory; the database only holds metadata and the
// relative path.
type ImageHandler struct {
	DB  *gorm.DB
	Cfg *config.Config
}

// NewImageHandler creates a new ImageHandler.
func NewImageHandler(db *gorm.DB, cfg *config.Config) *ImageHandler {
	return &ImageHandler{DB: db, Cfg: cfg}
}

// ImageResponse is an image record with patient and uploader names joined
// in.
type ImageResponse struct {
	models.MedicalImage
	PatientName    string `json:"patientName"`
	UploadedByName string `json:"uploadedByName"`
}

func toImageResponse(image models.MedicalImage) ImageResponse {
	return ImageResponse{
		MedicalImage:   image,
		PatientName:    image.Patient.Name,
		UploadedByName: image.Uploader.FullName,
	}
}

// UploadImage handles a multipart image upload (doctor/admin). The file is
// written to durable storage before the database record referencing it is
// committed: a crash in between leaves an orphan file, never a dangling
// record.
func (h *ImageHandler) UploadImage(c *gin.Context) {
	user, exists := middleware.GetCurrentUser(c)
	if !exists {
		utils.Unauthorized(c, "Not authenticated")
		return
	}

	patientID := c.PostForm("patient_id")
	imageType := c.PostForm("image_type")
	description := c.PostForm("description")
	if patientID == "" || imageType == "" {
		utils.UnprocessableEntity(c, "patient_id and image_type are required")
		return
	}

	var patient models.Patient
	if err := h.DB.First(&patient, "id = ?", patientID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Patient not found")
		} else {
			utils.InternalServerError(c, "Database error verifying patient: "+err.Error())
		}
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.UnprocessableEntity(c, "Error retrieving file from form: "+err.Error())
		return
	}

	patientDir := filepath.Join(h.Cfg.UploadsDir, patientID)
	if err := os.MkdirAll(patientDir, 0o755); err != nil {
		utils.InternalServerError(c, "Failed to create upload directory: "+err.Error())
		return
	}

	fileName := time.Now().Format("20060102_150405") + filepath.Ext(fileHeader.Filename)
	relativePath := filepath.Join(patientID, fileName)

	if err := c.SaveUploadedFile(fileHeader, filepath.Join(h.Cfg.UploadsDir, relativePath)); err != nil {
		utils.InternalServerError(c, "Failed to save file: "+err.Error())
		return
	}

	image := models.MedicalImage{
		PatientID:   patientID,
		UploadedBy:  user.ID,
		ImagePath:   relativePath,
		ImageType:   imageType,
		Description: description,
		UploadDate:  time.Now(),
	}

	if err := h.DB.Create(&image).Error; err != nil {
		utils.InternalServerError(c, "Failed to create image record: "+err.Error())
		return
	}

	utils.Created(c, "Image uploaded successfully", gin.H{
		"id":        image.ID,
		"imagePath": image.ImagePath,
	})
}

// GetImage serves the binary file of an image record. A missing record and
// a record whose file is gone both answer 404.
func (h *ImageHandler) GetImage(c *gin.Context) {
	imageID := c.Param("id")

	var image models.MedicalImage
	if err := h.DB.First(&image, "id = ?", imageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Image not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	filePath := filepath.Join(h.Cfg.UploadsDir, image.ImagePath)
	if _, err := os.Stat(filePath); err != nil {
		utils.NotFound(c, "Image file not found")
		return
	}

	c.File(filePath)
}

// GetPatientImages lists a patient's image records with names joined in,
// newest first.
func (h *ImageHandler) GetPatientImages(c *gin.Context) {
	patientID := c.Param("patientId")

	var images []models.MedicalImage
	err := h.DB.Preload("Patient").Preload("Uploader").
		Where("patient_id = ?", patientID).
		Order("upload_date desc").
		Find(&images).Error
	if err != nil {
		utils.InternalServerError(c, "Failed to fetch images: "+err.Error())
		return
	}

	responses := make([]ImageResponse, 0, len(images))
	for _, image := range images {
		responses = append(responses, toImageResponse(image))
	}

	utils.Success(c, "Images fetched successfully", responses)
}

// DeleteImage removes the file, then the record (doctor/admin).
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	imageID := c.Param("id")

	var image models.MedicalImage
	if err := h.DB.First(&image, "id = ?", imageID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			utils.NotFound(c, "Image not found")
		} else {
			utils.InternalServerError(c, "Database error: "+err.Error())
		}
		return
	}

	filePath := filepath.Join(h.Cfg.UploadsDir, image.ImagePath)
	if _, err := os.Stat(filePath); err == nil {
		if err := os.Remove(filePath); err != nil {
			utils.InternalServerError(c, "Failed to delete image file: "+err.Error())
			return
		}
	}

	if err := h.DB.Delete(&models.MedicalImage{}, "id = ?", imageID).Error; err != nil {
		utils.InternalServerError(c, "Failed to delete image record: "+err.Error())
		return
	}

	utils.Success(c, "Image deleted successfully", nil)
}
