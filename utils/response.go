package utils

import (
	"errors"
	"net/http"

	"bootcamper/apperrors"
	"bootcamper/logger"

	"github.com/gin-gonic/gin"
)

// Pagination is the window descriptor attached to list responses.
type Pagination struct {
	Next     *Page `json:"next,omitempty"`
	Previous *Page `json:"previous,omitempty"`
}

type Page struct {
	Page  int64 `json:"page"`
	Limit int64 `json:"limit"`
}

// Envelope is the uniform response body every endpoint returns.
type Envelope struct {
	Success    bool        `json:"success"`
	Data       interface{} `json:"data,omitempty"`
	Message    string      `json:"message,omitempty"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Length     *int        `json:"length,omitempty"`
	Count      *int        `json:"count,omitempty"`
	Token      string      `json:"token,omitempty"`
}

func RespondData(c *gin.Context, status int, data interface{}) {
	c.JSON(status, Envelope{Success: true, Data: data})
}

func RespondList(c *gin.Context, status int, data interface{}, length int, pagination *Pagination) {
	c.JSON(status, Envelope{Success: true, Data: data, Length: &length, Pagination: pagination})
}

func RespondCount(c *gin.Context, status int, data interface{}, count int) {
	c.JSON(status, Envelope{Success: true, Data: data, Count: &count})
}

func RespondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, Envelope{Success: true, Message: message})
}

func RespondToken(c *gin.Context, status int, data interface{}, token string) {
	c.JSON(status, Envelope{Success: true, Data: data, Token: token})
}

// RespondError maps any error onto the envelope. Unclassified errors report
// a bare 500 so internals never leak to the caller.
func RespondError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}
	if appErr.Status == http.StatusInternalServerError {
		logger.Errorw("request failed", "path", c.FullPath(), "error", appErr.Error())
	}
	c.AbortWithStatusJSON(appErr.Status, Envelope{Success: false, Message: appErr.Message})
}
