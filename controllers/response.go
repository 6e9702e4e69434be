package controllers

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"boutique-tailoring/apperrors"
	"boutique-tailoring/logger"

	"github.com/gin-gonic/gin"
)

var noErrors = []apperrors.FieldError{}

func statusFor(err error) int {
	if _, ok := apperrors.AsValidation(err); ok {
		return http.StatusBadRequest
	}
	switch {
	case errors.Is(err, apperrors.ErrBadRequest),
		errors.Is(err, apperrors.ErrInvalidReference),
		errors.Is(err, apperrors.ErrStoreCodeNotFound),
		errors.Is(err, apperrors.ErrFileType),
		errors.Is(err, apperrors.ErrFileTooLarge):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperrors.ErrUnavailable):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// respondError writes the common failure envelope. errors is always a list
// of {field, message}.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	body := gin.H{"success": false, "message": err.Error(), "errors": noErrors}
	if ve, ok := apperrors.AsValidation(err); ok {
		body["errors"] = ve.Errors
		if len(ve.Errors) == 1 {
			body["message"] = ve.Errors[0].Message
		} else {
			body["message"] = "Validation failed"
		}
	}

	log := logger.FromContext(c.Request.Context(), nil)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.Int("status", status), slog.String("error", err.Error()))
	} else {
		log.Debug("request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}
	c.AbortWithStatusJSON(status, body)
}

func badRequest(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", apperrors.ErrBadRequest, fmt.Sprintf(format, args...))
}

// decodeJSON reads the request body into dst, rejecting unknown fields.
func decodeJSON(c *gin.Context, dst interface{}) error {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return badRequest("read body: %v", err)
	}
	return decodeBytes(body, dst)
}

func decodeBytes(body []byte, dst interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return badRequest("invalid JSON body: %v", err)
	}
	return nil
}

func isMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/form-data")
}

// queryID parses an optional numeric id parameter. Missing gives zero.
func queryID(c *gin.Context, key string) (int64, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, apperrors.NewValidation(key, fmt.Sprintf("Invalid %s: %s", key, raw))
	}
	return id, nil
}

// queryInt parses a lenient integer; anything unparsable is zero.
func queryInt(c *gin.Context, key string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(c.Query(key)))
	return v
}

// queryList accepts "a,b", repeated keys and key[] forms.
func queryList(c *gin.Context, key string) []string {
	var out []string
	for _, raw := range append(c.QueryArray(key), c.QueryArray(key+"[]")...) {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func queryIDList(c *gin.Context, key string) ([]int64, error) {
	var ids []int64
	for _, raw := range queryList(c, key) {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, apperrors.NewValidation(key, fmt.Sprintf("Invalid %s: %s", key, raw))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
