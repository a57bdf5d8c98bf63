package handlers

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/google/uuid"

	"alfredoptarigan/career-advisor/internal/models"
	"alfredoptarigan/career-advisor/internal/repositories"
	"alfredoptarigan/career-advisor/internal/services"
)

type UploadHandler struct {
	fileRepo       repositories.UploadedFileRepository
	storageService services.StorageService
	analyzer       services.CVAnalyzerService
	sessions       *session.Store
	maxFileSize    int64
}

func NewUploadHandler(
	fileRepo repositories.UploadedFileRepository,
	storageService services.StorageService,
	analyzer services.CVAnalyzerService,
	sessions *session.Store,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		fileRepo:       fileRepo,
		storageService: storageService,
		analyzer:       analyzer,
		sessions:       sessions,
		maxFileSize:    maxFileSize,
	}
}

// HandleUploadCV handles POST /upload_cv: save the upload, record it with the
// uploading user, then run the one-shot analysis pipeline. Extraction failures
// come back as 422 with the per-method reasons.
func (h *UploadHandler) HandleUploadCV(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "cv file is required",
		})
	}

	if fileHeader.Size > h.maxFileSize {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("CV file too large. Max size: %d bytes", h.maxFileSize),
		})
	}

	filename, filePath, err := h.storageService.SaveFile(fileHeader, "cv")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("failed to save CV file: %v", err),
		})
	}

	record := &models.UploadedFile{
		ID:               uuid.New(),
		Filename:         filename,
		OriginalFileName: fileHeader.Filename,
		FilePath:         filePath,
		UserID:           h.currentUserID(c),
	}
	if err := h.fileRepo.Create(record); err != nil {
		// Cleanup uploaded file if database insert fails
		if cleanupErr := h.storageService.DeleteFile(filename); cleanupErr != nil {
			log.Printf("⚠️ Failed to remove orphaned upload %s: %v\n", filename, cleanupErr)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "failed to save CV record",
		})
	}

	reply, err := h.analyzer.AnalyzeFile(c.Context(), filePath)
	if err != nil {
		var exErr *services.ExtractionError
		if errors.As(err, &exErr) {
			return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
				"error":   "could not read your CV",
				"reasons": exErr.Failures,
			})
		}

		return c.Status(fiber.StatusBadGateway).JSON(fiber.Map{
			"error": fmt.Sprintf("Error: %v", err),
		})
	}

	return c.JSON(models.UploadCVResponse{
		Reply:  reply,
		FileID: record.ID.String(),
	})
}

func (h *UploadHandler) currentUserID(c *fiber.Ctx) *uuid.UUID {
	sess, err := h.sessions.Get(c)
	if err != nil {
		return nil
	}

	raw, ok := sess.Get(sessionKeyUser).(string)
	if !ok || raw == "" {
		return nil
	}

	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}

	return &id
}
