package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func Health(r *gin.Engine) {
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"message":   "NeuroScanAI API is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
}
