package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	apperrors "backoffice/internal/errors"
	"backoffice/internal/export"
	"backoffice/internal/logger"
	"backoffice/internal/middleware"
	"backoffice/internal/models"
	"backoffice/internal/pagination"
	"backoffice/internal/services"
	"backoffice/internal/uuid"
	"backoffice/internal/validator"
)

// ErrorResponse is the envelope of every error reply.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail describes an error.
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details []apperrors.FieldError `json:"details,omitempty"`
}

// getActor returns the authenticated token subject.
func getActor(c *gin.Context) (string, error) {
	subject := c.GetString(middleware.SubjectKey)
	if subject == "" {
		return "", apperrors.ErrUnauthorized
	}
	return subject, nil
}

// parsePathID reads a UUID path parameter.
// Returns a 422 naming the parameter when it is not a valid UUID.
func parsePathID(c *gin.Context, param string) (string, error) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		return "", apperrors.InvalidField(param, "must be a valid UUID")
	}
	return id, nil
}

// parseQueryID reads an optional UUID query filter.
func parseQueryID(c *gin.Context, key string) (*string, error) {
	v := c.Query(key)
	if v == "" {
		return nil, nil
	}
	id, err := uuid.Parse(v)
	if err != nil {
		return nil, apperrors.InvalidField(key, "must be a valid UUID")
	}
	return &id, nil
}

// parseStatus reads the optional status filter.
func parseStatus(c *gin.Context) (*models.Status, error) {
	v := c.Query("status")
	if v == "" {
		return nil, nil
	}
	s := models.Status(v)
	if !s.Valid() {
		return nil, apperrors.InvalidField("status", "must be one of Pending, Issued, Paid, Confirmed, Canceled")
	}
	return &s, nil
}

// parseDate converts a validated YYYY-MM-DD string into a date.
func parseDate(field, v string) (datatypes.Date, error) {
	d, err := models.ParseDate(v)
	if err != nil {
		return d, apperrors.InvalidField(field, "must be a date in YYYY-MM-DD format")
	}
	return d, nil
}

func bindJSON(c *gin.Context, req interface{}) error {
	if err := c.ShouldBindJSON(req); err != nil {
		return validator.ToAppError(err)
	}
	return nil
}

func bindPage(c *gin.Context) (pagination.PageRequest, error) {
	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		return page, validator.ToAppError(err)
	}
	return page, nil
}

// readUpload extracts the multipart "file" field.
func readUpload(c *gin.Context) (services.FileUpload, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return services.FileUpload{}, nil, apperrors.InvalidField("file", "is required")
	}
	if header.Size > services.MaxFileSize {
		return services.FileUpload{}, nil, apperrors.ErrFileTooLarge
	}
	f, err := header.Open()
	if err != nil {
		return services.FileUpload{}, nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	return services.FileUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Body:        f,
	}, func() { _ = f.Close() }, nil
}

// writeWorkbook renders rows and sends them as an XLSX attachment.
func writeWorkbook[T any](c *gin.Context, filename string, sheet export.Sheet[T], rows []T) {
	f, err := sheet.Build(rows)
	if err != nil {
		respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
		return
	}
	defer f.Close()

	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		logger.Get().Errorw("failed to write workbook", "file", filename, "error", err)
	}
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, message and details.
// Otherwise it logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{
			Code:    appErr.Code,
			Message: appErr.Message,
			Details: appErr.Details,
		}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
