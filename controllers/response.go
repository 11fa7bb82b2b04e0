package controllers

import (
	"errors"
	"net/http"

	"NeuroScanAI/services"
	"NeuroScanAI/util"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	log "github.com/sirupsen/logrus"
)

/*
* Map a service error to its status code
* Unknown errors are logged and answered with a generic message
 */
func FailedResponse(err error) (int, gin.H) {
	var (
		verr *services.ValidationError
		nerr *services.NotFoundError
		aerr *services.AuthError
		ferr *services.ForbiddenError
		cerr *services.ConflictError
		terr *services.TransitionError
		fe   validator.ValidationErrors
	)
	switch {
	case errors.As(err, &fe):
		return http.StatusBadRequest, gin.H{"error": services.InvalidInput(err, nil).Error()}
	case errors.As(err, &verr):
		return http.StatusBadRequest, gin.H{"error": verr.Message}
	case errors.As(err, &cerr):
		return http.StatusBadRequest, gin.H{"error": cerr.Message}
	case errors.As(err, &aerr):
		return http.StatusUnauthorized, gin.H{"error": aerr.Message}
	case errors.As(err, &ferr):
		return http.StatusForbidden, gin.H{"error": ferr.Message}
	case errors.As(err, &nerr):
		return http.StatusNotFound, gin.H{"error": nerr.Message}
	case errors.As(err, &terr):
		return http.StatusConflict, gin.H{"error": terr.Error()}
	}
	log.WithError(err).Error("Unhandled error")
	return http.StatusInternalServerError, gin.H{"error": util.INTERNAL_SERVER_ERROR}
}

func abort(c *gin.Context, err error) {
	c.AbortWithStatusJSON(FailedResponse(err))
}

