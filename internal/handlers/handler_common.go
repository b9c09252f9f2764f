package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/Travelintrips/travelindashboard-sub001/internal/middleware"
)

// actionValidator re-runs the binding validations for payloads decoded out of
// an action envelope, where gin's ShouldBindJSON cannot be used directly.
var actionValidator = func() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	return v
}()

// bindActionData unmarshals and validates the data part of an action
// envelope. On failure it writes the 400 response and returns the error so
// callers can simply bail out.
func bindActionData(c *gin.Context, data json.RawMessage, dest any) error {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	if len(data) == 0 {
		logger.Warn("Action envelope missing data payload")
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing data payload"})
		return errMissingData
	}
	if err := json.Unmarshal(data, dest); err != nil {
		logger.Warn("Failed to decode action data", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data payload: " + err.Error()})
		return err
	}
	if err := actionValidator.Struct(dest); err != nil {
		logger.Warn("Action data failed validation", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid data payload: " + err.Error()})
		return err
	}
	return nil
}

// systemUserID resolves the acting user for audit fields. Authentication is
// handled upstream of this service; the forwarded identity header is used
// when present.
func systemUserID(c *gin.Context) string {
	if id := c.GetHeader("X-User-ID"); id != "" {
		return id
	}
	return "system"
}

var errMissingData = errors.New("missing data payload")

var timeNow = time.Now
