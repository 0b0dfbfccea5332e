package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skills4mind/events-api/internal/helpers"
	"github.com/skills4mind/events-api/internal/models"
	"github.com/skills4mind/events-api/internal/services"
)

type searchResult = models.EventPage

func CreateEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var input services.CreateEventInput
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		event, err := es.CreateEvent(c.Request.Context(), input)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusCreated, helpers.SuccessResponse(event, "event created"))
	}
}

func ListEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		minLength, _ := strconv.Atoi(c.DefaultQuery("minLength", "0"))

		query := services.ListEventsQuery{
			Search:    c.Query("search"),
			Category:  c.Query("category"),
			Status:    c.Query("status"),
			MinLength: minLength,
			Page:      page,
			Limit:     limit,
			SortBy:    c.DefaultQuery("sortBy", "newest"),
		}

		events, window, total, err := es.ListEvents(c.Request.Context(), query)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.PaginatedResponse(events, window.CurrentPage(), window.Limit, total))
	}
}

func searchEvents(c *gin.Context, search func(name string, skip, limit int) (*searchResult, error)) {
	name := c.Param("name")
	skip, _ := strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	page, err := search(name, skip, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, helpers.SearchResponse{
		Success:  true,
		Total:    page.Total,
		Skip:     page.Skip,
		Limit:    page.Limit,
		HasMore:  page.HasMore(),
		NextSkip: page.NextSkip(),
		Data:     page.Items,
	})
}

func SearchEventsByParticipant(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		searchEvents(c, func(name string, skip, limit int) (*searchResult, error) {
			return es.SearchByParticipant(c.Request.Context(), name, skip, limit)
		})
	}
}

func SearchEventsByOrganizer(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		searchEvents(c, func(name string, skip, limit int) (*searchResult, error) {
			return es.SearchByOrganizer(c.Request.Context(), name, skip, limit)
		})
	}
}

func GetEventTitle(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.GetEvent(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"id":    event.ID.Hex(),
			"title": event.Title,
		}, ""))
	}
}

func UpdateEventTitle(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Title string `json:"title"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		event, err := es.UpdateTitle(c.Request.Context(), c.Param("id"), body.Title)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"id":    event.ID.Hex(),
			"title": event.Title,
		}, "title updated"))
	}
}

// ResetEventTitle blanks the title to its placeholder. The document is
// kept; a follow-up fetch by the same identifier succeeds.
func ResetEventTitle(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.ResetTitle(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"id":    event.ID.Hex(),
			"title": event.Title,
		}, "title reset"))
	}
}

func UpdateEventDescription(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body struct {
			Description string `json:"description"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, helpers.ErrorResponse(err.Error()))
			return
		}

		event, err := es.UpdateDescription(c.Request.Context(), c.Param("id"), body.Description)
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"id":          event.ID.Hex(),
			"title":       event.Title,
			"description": event.Description,
			"updatedAt":   event.UpdatedAt,
		}, "description updated"))
	}
}

func ResetEventDescription(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.ResetDescription(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"id":          event.ID.Hex(),
			"title":       event.Title,
			"description": event.Description,
		}, "description reset"))
	}
}

func DeleteEvent(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := es.DeleteEvent(c.Request.Context(), c.Param("id")); err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(nil, "event deleted"))
	}
}

func IncrementEventPopularity(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		event, err := es.IncrementPopularity(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(gin.H{
			"id":         event.ID.Hex(),
			"popularity": event.Popularity,
		}, "popularity updated"))
	}
}

func ListMediaEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		events, err := es.MediaEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.CountedResponse(events, len(events), ""))
	}
}

func ListSortedTitles(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		titles, err := es.SortedTitles(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.CountedResponse(titles, len(titles), "titles sorted alphabetically"))
	}
}

func TopEvents(es *services.EventService) gin.HandlerFunc {
	return func(c *gin.Context) {
		top, err := es.TopEvents(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}

		c.JSON(http.StatusOK, helpers.SuccessResponse(top, "top 5 most popular events"))
	}
}
