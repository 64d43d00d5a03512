package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rvega1204/job-manager/internal/apperr"
	"github.com/rvega1204/job-manager/internal/dto"
)

// renderError is the single place where domain failures become HTTP
// responses. Classified errors use the apperr status table; anything else
// is logged and returned as a 500 with the underlying message.
func renderError(c *gin.Context, err error) {
	var e *apperr.Error
	if errors.As(err, &e) {
		c.JSON(e.Status(), dto.ErrorResponse{Message: e.Message})
		return
	}
	log.Printf("internal error: %v", err)
	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: err.Error()})
}
