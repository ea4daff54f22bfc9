package controller

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/haneulab/thumbsmith-api/controller/dto"
	"github.com/haneulab/thumbsmith-api/entity"
	"github.com/haneulab/thumbsmith-api/infra/produce"
	"github.com/haneulab/thumbsmith-api/provider"
	"github.com/haneulab/thumbsmith-api/utils"
	"gorm.io/datatypes"
)

const (
	presignExpiry  = time.Hour
	titleMaxLength = 80
)

// GenerateThumbnail runs the full prompt-to-asset pipeline: verify the
// caller, call Gemini once, store the produced image, record the metadata row
// and answer with a presigned URL. Every step is a single attempt; a failure
// short-circuits the rest and nothing already written is rolled back.
func (ctrl *Controller) GenerateThumbnail(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.GetString("access_token")
	if token == "" {
		utils.JSON401(c, "Missing auth token.")
		return
	}

	var req dto.GenerateThumbnailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSON400(c, "Prompt is required.")
		return
	}
	prompt := strings.TrimSpace(req.Prompt)
	if prompt == "" {
		utils.JSON400(c, "Prompt is required.")
		return
	}

	if ctrl.Provider.Gemini == nil {
		utils.JSON500(c, "Missing Gemini API key.")
		return
	}
	if ctrl.Infra.Minio == nil {
		utils.JSON500(c, "Storage is not configured.")
		return
	}

	identity, err := ctrl.verifyCaller(ctx, token)
	if err != nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Thumbnail] Token verification failed: %v", err)
		utils.JSON401(c, "Invalid auth token.")
		return
	}

	result, err := ctrl.Provider.Gemini.GenerateImage(ctx, prompt, req.AspectRatio, req.ImageSize)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thumbnail] Gemini call failed")
		utils.JSONError(c, http.StatusInternalServerError, "Gemini request failed.", gin.H{
			"detail": err.Error(),
		})
		return
	}

	if !result.OK {
		if provider.IsQuotaError(result.Status, result.ErrorText) {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Thumbnail] Gemini quota exhausted (status %d)", result.Status)
			utils.JSONError(c, http.StatusTooManyRequests, "Gemini quota exceeded.", gin.H{
				"detail":          "Gemini API quota or billing limit reached. Enable billing in Google AI Studio or rotate the API key, then retry.",
				"providerMessage": result.ErrorText,
				"model":           result.Model,
			})
			return
		}

		status := result.Status
		if status == 0 {
			status = http.StatusInternalServerError
		}
		ctrl.Infra.Logger.ErrorWithContextf(ctx, nil, "[Thumbnail] Gemini returned %d: %s", result.Status, result.ErrorText)
		utils.JSONError(c, status, "Gemini request failed.", gin.H{
			"detail": result.ErrorText,
			"model":  result.Model,
		})
		return
	}

	imagePart := provider.LastImagePart(result.Parts)
	if imagePart == nil {
		ctrl.Infra.Logger.WarningWithContextf(ctx, "[Thumbnail] No image part in Gemini response (%d parts)", len(result.Parts))
		utils.JSONError(c, http.StatusBadGateway, "No generated image found in response.", nil)
		return
	}

	inline := imagePart.Inline()
	mimeType := inline.Mime()
	if mimeType == "" {
		mimeType = "image/png"
	}

	imageData, err := base64.StdEncoding.DecodeString(inline.Data)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thumbnail] Failed to decode image payload")
		utils.JSONError(c, http.StatusBadGateway, "No generated image found in response.", gin.H{
			"detail": err.Error(),
		})
		return
	}

	fileExt := provider.ExtensionForMime(mimeType)
	storagePath := fmt.Sprintf("%s/%d-%s.%s", identity.UserID, time.Now().UnixMilli(), uuid.New(), fileExt)

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Thumbnail] Uploading %d bytes (%s) to '%s'", len(imageData), mimeType, storagePath)

	if err := ctrl.Infra.Minio.UploadObject(ctx, storagePath, imageData, mimeType); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thumbnail] Upload failed")
		utils.JSONError(c, http.StatusInternalServerError, "Failed to upload image to storage.", gin.H{
			"detail": err.Error(),
		})
		return
	}

	imageURL, err := ctrl.Infra.Minio.PresignObjectURL(ctx, storagePath, presignExpiry)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thumbnail] Presign failed")
		utils.JSONError(c, http.StatusInternalServerError, "Failed to create signed URL.", gin.H{
			"detail": err.Error(),
		})
		return
	}

	params, _ := json.Marshal(map[string]string{
		"aspect_ratio": req.AspectRatio,
		"image_size":   req.ImageSize,
		"model":        result.Model,
	})

	thumbnail := &entity.Thumbnail{
		OwnerID:          identity.UserID,
		Title:            truncateTitle(prompt),
		Prompt:           prompt,
		StorageBucket:    ctrl.Infra.Minio.Bucket,
		StoragePath:      storagePath,
		MimeType:         mimeType,
		SizeBytes:        int64(len(imageData)),
		GenerationParams: datatypes.JSON(params),
	}

	if err := ctrl.Repository.ThumbnailRepo.Create(thumbnail); err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thumbnail] Metadata insert failed")
		utils.JSONError(c, http.StatusInternalServerError, "Failed to save thumbnail metadata.", gin.H{
			"detail": err.Error(),
		})
		return
	}

	// Downstream consumers (cleanup, analytics) learn about new assets over
	// RabbitMQ. Publishing is best-effort and never fails the request.
	if ctrl.Produce != nil {
		publishErr := ctrl.Produce.ThumbnailService.PublishThumbnailGenerated(ctx, produce.ThumbnailGeneratedMessage{
			ThumbnailID: thumbnail.ID.String(),
			UserID:      identity.UserID.String(),
			Bucket:      thumbnail.StorageBucket,
			StoragePath: thumbnail.StoragePath,
			MimeType:    thumbnail.MimeType,
			SizeBytes:   thumbnail.SizeBytes,
			Model:       result.Model,
		})
		if publishErr != nil {
			ctrl.Infra.Logger.WarningWithContextf(ctx, "[Thumbnail] Failed to publish generated event: %v", publishErr)
		}
	}

	var text *string
	if joined := provider.JoinTextParts(result.Parts); joined != "" {
		text = &joined
	}

	ctrl.Infra.Logger.InfoWithContextf(ctx, "[Thumbnail] Created thumbnail %s for user %s", thumbnail.ID, identity.UserID)
	utils.JSON200(c, dto.GenerateThumbnailResponse{
		Thumbnail: dto.ThumbnailSummary{
			ID:            thumbnail.ID,
			StorageBucket: thumbnail.StorageBucket,
			StoragePath:   thumbnail.StoragePath,
			CreatedAt:     thumbnail.CreatedAt,
		},
		ImageURL: imageURL,
		Model:    result.Model,
		Text:     text,
	})
}

// ListThumbnails returns the caller's thumbnails, newest first, each with a
// fresh presigned URL.
func (ctrl *Controller) ListThumbnails(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.GetString("access_token")
	if token == "" {
		utils.JSON401(c, "Missing auth token.")
		return
	}

	identity, err := ctrl.verifyCaller(ctx, token)
	if err != nil {
		utils.JSON401(c, "Invalid auth token.")
		return
	}

	thumbnails, err := ctrl.Repository.ThumbnailRepo.FindByOwnerID(identity.UserID)
	if err != nil {
		ctrl.Infra.Logger.ErrorWithContextf(ctx, err, "[Thumbnail] Failed to list thumbnails for user %s", identity.UserID)
		utils.JSON500(c, "Failed to list thumbnails.")
		return
	}

	items := make([]dto.ThumbnailItem, 0, len(thumbnails))
	for _, t := range thumbnails {
		item := dto.ThumbnailItem{
			ID:            t.ID,
			Title:         t.Title,
			Prompt:        t.Prompt,
			StorageBucket: t.StorageBucket,
			StoragePath:   t.StoragePath,
			MimeType:      t.MimeType,
			SizeBytes:     t.SizeBytes,
			CreatedAt:     t.CreatedAt,
		}
		if ctrl.Infra.Minio != nil {
			if url, err := ctrl.Infra.Minio.PresignObjectURL(ctx, t.StoragePath, presignExpiry); err == nil {
				item.ImageURL = url
			}
		}
		items = append(items, item)
	}

	utils.JSON200(c, dto.ListThumbnailsResponse{Thumbnails: items})
}

// GetThumbnailByID returns one thumbnail owned by the caller.
func (ctrl *Controller) GetThumbnailByID(c *gin.Context) {
	ctx := c.Request.Context()

	token := c.GetString("access_token")
	if token == "" {
		utils.JSON401(c, "Missing auth token.")
		return
	}

	identity, err := ctrl.verifyCaller(ctx, token)
	if err != nil {
		utils.JSON401(c, "Invalid auth token.")
		return
	}

	thumbnailID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.JSON400(c, "Invalid thumbnail id.")
		return
	}

	thumbnail, err := ctrl.Repository.ThumbnailRepo.FindByID(thumbnailID)
	if err != nil {
		utils.JSON404(c, "Thumbnail not found.")
		return
	}
	if thumbnail.OwnerID != identity.UserID {
		utils.JSON404(c, "Thumbnail not found.")
		return
	}

	item := dto.ThumbnailItem{
		ID:            thumbnail.ID,
		Title:         thumbnail.Title,
		Prompt:        thumbnail.Prompt,
		StorageBucket: thumbnail.StorageBucket,
		StoragePath:   thumbnail.StoragePath,
		MimeType:      thumbnail.MimeType,
		SizeBytes:     thumbnail.SizeBytes,
		CreatedAt:     thumbnail.CreatedAt,
	}
	if ctrl.Infra.Minio != nil {
		if url, err := ctrl.Infra.Minio.PresignObjectURL(ctx, thumbnail.StoragePath, presignExpiry); err == nil {
			item.ImageURL = url
		}
	}

	utils.JSON200(c, item)
}

func truncateTitle(prompt string) string {
	runes := []rune(prompt)
	if len(runes) <= titleMaxLength {
		return prompt
	}
	return string(runes[:titleMaxLength])
}
