package services

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/skills4mind/events-api/internal/helpers"
	"github.com/skills4mind/events-api/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	descriptionMinLength = 10
	descriptionMaxLength = 2000
)

type EventService struct {
	events     models.EventRepo
	exportPath string
}

func NewEventService(events models.EventRepo, exportPath string) *EventService {
	return &EventService{
		events:     events,
		exportPath: exportPath,
	}
}

// parseID validates the canonical 24-hex identifier shape before any
// store call; malformed identifiers never reach the store.
func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(strings.TrimSpace(id))
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: invalid identifier format", models.ErrValidation)
	}
	return oid, nil
}

func parseEventDate(value string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: date must be RFC3339 or YYYY-MM-DD", models.ErrValidation)
}

type CreateEventInput struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	Date        string `json:"date"`
	EndDate     string `json:"endDate"`
	Location    string `json:"location"`
	Category    string `json:"category"`
	Status      string `json:"status"`
	CreatorID   string `json:"creatorId"`
}

func (es *EventService) CreateEvent(ctx context.Context, input CreateEventInput) (*models.Event, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", models.ErrValidation)
	}
	if strings.TrimSpace(input.Date) == "" {
		return nil, fmt.Errorf("%w: date is required", models.ErrValidation)
	}

	date, err := parseEventDate(input.Date)
	if err != nil {
		return nil, err
	}

	creatorID, err := parseID(input.CreatorID)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid creator identifier", models.ErrValidation)
	}

	event := &models.Event{
		Title:       title,
		Description: strings.TrimSpace(input.Description),
		URL:         strings.TrimSpace(input.URL),
		Date:        date,
		Location:    strings.TrimSpace(input.Location),
		Category:    strings.TrimSpace(input.Category),
		Status:      strings.TrimSpace(input.Status),
		Popularity:  0,
		CreatorID:   creatorID,
	}

	if input.EndDate != "" {
		endDate, err := parseEventDate(input.EndDate)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid end date", models.ErrValidation)
		}
		event.EndDate = &endDate
	}

	return es.events.CreateEvent(ctx, event)
}

func (es *EventService) GetEvent(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return es.events.GetEventByID(ctx, oid)
}

func (es *EventService) UpdateTitle(ctx context.Context, id, title string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, fmt.Errorf("%w: title must not be empty", models.ErrValidation)
	}

	return es.events.UpdateTitle(ctx, oid, title)
}

// ResetTitle overwrites the title with its placeholder; the document
// survives and stays fetchable by the same identifier.
func (es *EventService) ResetTitle(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return es.events.UpdateTitle(ctx, oid, models.TitlePlaceholder)
}

func (es *EventService) UpdateDescription(ctx context.Context, id, description string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}

	description = strings.TrimSpace(description)
	if description == "" {
		return nil, fmt.Errorf("%w: description must not be empty", models.ErrValidation)
	}
	if length := utf8.RuneCountInString(description); length < descriptionMinLength || length > descriptionMaxLength {
		return nil, fmt.Errorf("%w: description must be between %d and %d characters",
			models.ErrValidation, descriptionMinLength, descriptionMaxLength)
	}

	return es.events.UpdateDescription(ctx, oid, description)
}

func (es *EventService) ResetDescription(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return es.events.UpdateDescription(ctx, oid, models.DescriptionPlaceholder)
}

// DeleteEvent removes the document for real, unlike the field resets.
func (es *EventService) DeleteEvent(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	return es.events.DeleteEvent(ctx, oid)
}

func (es *EventService) IncrementPopularity(ctx context.Context, id string) (*models.Event, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	return es.events.IncrementPopularity(ctx, oid)
}

type ListEventsQuery struct {
	Search    string
	Category  string
	Status    string
	MinLength int
	Page      int
	Limit     int
	SortBy    string
}

func (es *EventService) ListEvents(ctx context.Context, query ListEventsQuery) ([]models.EventSummary, models.PageOptions, int64, error) {
	filter := models.EventFilter{
		Search:    query.Search,
		Category:  query.Category,
		Status:    query.Status,
		MinLength: query.MinLength,
	}
	page := models.PageFromQuery(query.Page, query.Limit)

	events, total, err := es.events.ListEvents(ctx, filter, page, models.SortOrder(query.SortBy))
	if err != nil {
		return nil, page, 0, err
	}

	for i := range events {
		events[i].DescriptionLength = utf8.RuneCountInString(events[i].Description)
	}

	return events, page, total, nil
}

func (es *EventService) SearchByParticipant(ctx context.Context, name string, skip, limit int) (*models.EventPage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: participant name is required", models.ErrValidation)
	}
	page := models.PageOptions{Skip: skip, Limit: limit}.Normalize()
	return es.events.SearchByParticipant(ctx, name, page)
}

func (es *EventService) SearchByOrganizer(ctx context.Context, name string, skip, limit int) (*models.EventPage, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: organizer name is required", models.ErrValidation)
	}
	page := models.PageOptions{Skip: skip, Limit: limit}.Normalize()
	return es.events.SearchByOrganizer(ctx, name, page)
}

func (es *EventService) MediaEvents(ctx context.Context) ([]*models.Event, error) {
	return es.events.MediaEvents(ctx)
}

func (es *EventService) SortedTitles(ctx context.Context) ([]string, error) {
	return es.events.SortedTitles(ctx)
}

// TopEvents returns the five most popular events and exports the result
// to the configured JSON file.
func (es *EventService) TopEvents(ctx context.Context) ([]models.TopEvent, error) {
	top, err := es.events.TopEvents(ctx, 5)
	if err != nil {
		return nil, err
	}

	if es.exportPath != "" {
		if err := helpers.SaveStatsToJSON(es.exportPath, top); err != nil {
			return nil, err
		}
	}

	return top, nil
}
