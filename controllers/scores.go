package controllers

import (
	"net/http"
	"peer-review-api/config"
	"peer-review-api/services"

	"github.com/gin-gonic/gin"
)

// GetScores returns the per-criterion averages the student received, gated on
// the results availability window.
func GetScores(c *gin.Context) {
	netID := c.GetString("netID")
	secCode := c.GetString("sectionCode")

	availability := services.NewAvailabilityService(config.DB, Sessions)

	status, err := availability.ResolveScores(netID, secCode)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if status == services.AvailabilityUnavailable {
		c.JSON(http.StatusOK, gin.H{"status": status, "redirect": "/scores/unavailable"})
		return
	}

	averages, err := services.NewAggregateService(config.DB).Averages(netID, secCode, status)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":      status,
		"review_type": status,
		"averages":    averages,
	})
}
