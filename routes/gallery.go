package routes

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bbbang105/flowershop-admin-sub001/config"
	"github.com/bbbang105/flowershop-admin-sub001/database"
	"github.com/bbbang105/flowershop-admin-sub001/models"
)

// validateImageFile validates extension and size (<= 10MB; client compresses
// before upload but a raw original may still slip through)
func validateImageFile(h *multipart.FileHeader) bool {
	if h == nil || h.Size <= 0 || h.Size > 10*1024*1024 {
		return false
	}
	ext := strings.ToLower(filepath.Ext(h.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
		return true
	default:
		return false
	}
}

func newCloudinary() (*cloudinary.Cloudinary, error) {
	cfg := config.AppConfig.Cloudinary
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary is not configured")
	}
	return cloudinary.NewFromURL(fmt.Sprintf("cloudinary://%s:%s@%s", cfg.APIKey, cfg.APISecret, cfg.CloudName))
}

// GetGalleryPhotos returns the gallery in display order
func GetGalleryPhotos(c *gin.Context) {
	var photos []models.GalleryPhoto
	if err := database.DB.Order("sort_order ASC, id ASC").Find(&photos).Error; err != nil {
		log.Printf("❌ Failed to fetch gallery photos: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch gallery"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    photos,
	})
}

// UploadGalleryPhotos uploads the "photos" multipart files to Cloudinary in
// the order the client sent them and appends them to the gallery. A failed
// upload mid-batch stops there; files already uploaded stay.
func UploadGalleryPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid form data"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No files provided"})
		return
	}
	for _, h := range files {
		if !validateImageFile(h) {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid image file: %s", h.Filename)})
			return
		}
	}

	cld, err := newCloudinary()
	if err != nil {
		log.Printf("❌ Cloudinary initialization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Photo storage not configured"})
		return
	}

	// Append after the current last photo so upload order is display order
	var maxOrder int
	database.DB.Model(&models.GalleryPhoto{}).Select("COALESCE(MAX(sort_order), 0)").Scan(&maxOrder)

	ctx := context.Background()
	uploaded := make([]models.GalleryPhoto, 0, len(files))
	for i, header := range files {
		file, err := header.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Cannot read file: %s", header.Filename)})
			return
		}

		unique := true
		up, err := cld.Upload.Upload(ctx, file, uploader.UploadParams{
			Folder:         config.AppConfig.Cloudinary.Folder,
			UniqueFilename: &unique,
			ResourceType:   "image",
		})
		file.Close()
		if err != nil {
			log.Printf("❌ Cloudinary upload failed for %s: %v", header.Filename, err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "Upload failed",
				"uploaded": uploaded,
			})
			return
		}

		photo := models.GalleryPhoto{
			PublicID:  up.PublicID,
			URL:       up.SecureURL,
			Caption:   c.PostForm("caption"),
			SortOrder: maxOrder + i + 1,
		}
		if err := database.DB.Create(&photo).Error; err != nil {
			log.Printf("❌ Failed to save gallery photo: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":    "Failed to save photo",
				"uploaded": uploaded,
			})
			return
		}
		uploaded = append(uploaded, photo)
	}

	log.Printf("✅ Uploaded %d gallery photos", len(uploaded))

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Photos uploaded successfully",
		"data":    uploaded,
	})
}

// ReorderGalleryPhotos rewrites sort_order to match the given id sequence
// (drag-reorder on the gallery page). Unknown ids are skipped.
func ReorderGalleryPhotos(c *gin.Context) {
	var req struct {
		IDs []uint `json:"ids" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || len(req.IDs) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ids array is required"})
		return
	}

	for i, id := range req.IDs {
		if err := database.DB.Model(&models.GalleryPhoto{}).
			Where("id = ?", id).
			Update("sort_order", i+1).Error; err != nil {
			log.Printf("❌ Failed to reorder gallery photo %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reorder photos"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Gallery reordered",
	})
}

// DeleteGalleryPhoto removes the Cloudinary asset first, then the row
func DeleteGalleryPhoto(c *gin.Context) {
	photoID := c.Param("id")

	var photo models.GalleryPhoto
	if err := database.DB.First(&photo, photoID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Photo not found"})
		} else {
			log.Printf("❌ Failed to load gallery photo %s: %v", photoID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		}
		return
	}

	cld, err := newCloudinary()
	if err != nil {
		log.Printf("❌ Cloudinary initialization failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Photo storage not configured"})
		return
	}

	if _, err := cld.Upload.Destroy(context.Background(), uploader.DestroyParams{PublicID: photo.PublicID}); err != nil {
		log.Printf("❌ Cloudinary destroy failed for %s: %v", photo.PublicID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo from storage"})
		return
	}

	if err := database.DB.Delete(&photo).Error; err != nil {
		log.Printf("❌ Failed to delete gallery photo %s: %v", photoID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete photo"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Photo deleted",
	})
}
