package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skills4mind/events-api/internal/helpers"
	"github.com/skills4mind/events-api/internal/services"
)

func DescriptionStats(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := ss.DescriptionStats(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, "event description statistics"))
	}
}

func MediaEventsByCreator(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		stats, err := ss.MediaEventsByCreator(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(stats, ""))
	}
}

func ListIncidents(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

		incidents, err := ss.ListIncidents(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.CountedResponse(incidents, len(incidents), ""))
	}
}

func ListServices(ss *services.StatsService) gin.HandlerFunc {
	return func(c *gin.Context) {
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "100"))

		docs, err := ss.ListServices(c.Request.Context(), limit)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.CountedResponse(docs, len(docs), ""))
	}
}
