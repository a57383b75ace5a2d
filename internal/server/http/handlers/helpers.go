package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/jsersan/ecommerce-backend-pdf/internal/domain/errors"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/dto"
	"github.com/jsersan/ecommerce-backend-pdf/internal/server/http/middleware"
	"github.com/jsersan/ecommerce-backend-pdf/internal/usecase"
)

// CurrentUserID extracts authenticated user identifier from context.
func CurrentUserID(c *gin.Context) int64 {
	val, ok := c.Get(middleware.UserIDContextKey)
	if !ok {
		return 0
	}
	id, _ := val.(int64)
	return id
}

func pathID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainErrors.ErrInvalidID
	}
	return id, nil
}

func queryInt(c *gin.Context, name string) int {
	v, err := strconv.Atoi(c.Query(name))
	if err != nil {
		return 0
	}
	return v
}

func abortBadRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg})
}

// respondError maps domain errors to HTTP statuses. Unexpected errors are
// attached to the gin context for the request logger and answered with a
// generic body.
func respondError(c *gin.Context, err error) {
	var lineErr *domainErrors.LineError
	switch {
	case errors.As(err, &lineErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: lineErr.Error(), Line: lineErr.Line})
	case errors.Is(err, domainErrors.ErrIntegrity):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
			Error:  domainErrors.ErrIntegrity.Error(),
			Detail: integrityDetail(err),
		})
	case errors.Is(err, domainErrors.ErrInvalidTotal),
		errors.Is(err, domainErrors.ErrEmptyOrder),
		errors.Is(err, domainErrors.ErrInvalidID),
		errors.Is(err, domainErrors.ErrMissingEmail),
		errors.Is(err, usecase.ErrInvalidRegistration):
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrUnauthenticated),
		errors.Is(err, domainErrors.ErrInvalidCredentials):
		c.AbortWithStatusJSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrAlreadyExists):
		c.AbortWithStatusJSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
	case errors.Is(err, domainErrors.ErrDispatchFailed):
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusBadGateway, dto.ErrorResponse{Error: domainErrors.ErrDispatchFailed.Error()})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}

func integrityDetail(err error) string {
	msg := err.Error()
	prefix := domainErrors.ErrIntegrity.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		return msg[i+len(prefix):]
	}
	return ""
}
