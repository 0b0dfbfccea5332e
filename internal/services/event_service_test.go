package services

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/skills4mind/events-api/internal/models"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakeEventRepo records the last call so tests can assert on what the
// service actually passed down.
type fakeEventRepo struct {
	events map[primitive.ObjectID]*models.Event

	lastTitle       string
	lastDescription string
	lastFilter      models.EventFilter
	lastPage        models.PageOptions
	lastSortOrder   int
	calls           int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[primitive.ObjectID]*models.Event{}}
}

func (f *fakeEventRepo) CreateEvent(_ context.Context, event *models.Event) (*models.Event, error) {
	f.calls++
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	f.events[event.ID] = event
	return event, nil
}

func (f *fakeEventRepo) GetEventByID(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.calls++
	event, ok := f.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return event, nil
}

func (f *fakeEventRepo) UpdateTitle(_ context.Context, id primitive.ObjectID, title string) (*models.Event, error) {
	f.calls++
	event, ok := f.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	event.Title = title
	f.lastTitle = title
	return event, nil
}

func (f *fakeEventRepo) UpdateDescription(_ context.Context, id primitive.ObjectID, description string) (*models.Event, error) {
	f.calls++
	event, ok := f.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	event.Description = description
	f.lastDescription = description
	return event, nil
}

func (f *fakeEventRepo) DeleteEvent(_ context.Context, id primitive.ObjectID) error {
	f.calls++
	if _, ok := f.events[id]; !ok {
		return models.ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func (f *fakeEventRepo) IncrementPopularity(_ context.Context, id primitive.ObjectID) (*models.Event, error) {
	f.calls++
	event, ok := f.events[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	event.Popularity++
	return event, nil
}

func (f *fakeEventRepo) ListEvents(_ context.Context, filter models.EventFilter, page models.PageOptions, sortOrder int) ([]models.EventSummary, int64, error) {
	f.calls++
	f.lastFilter = filter
	f.lastPage = page
	f.lastSortOrder = sortOrder

	summaries := make([]models.EventSummary, 0, len(f.events))
	for _, event := range f.events {
		summaries = append(summaries, models.EventSummary{
			ID:          event.ID,
			Title:       event.Title,
			Description: event.Description,
		})
	}
	return summaries, int64(len(summaries)), nil
}

func (f *fakeEventRepo) MediaEvents(context.Context) ([]*models.Event, error) {
	f.calls++
	var out []*models.Event
	for _, event := range f.events {
		if event.Description != "" {
			out = append(out, event)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) SortedTitles(context.Context) ([]string, error) {
	f.calls++
	return []string{"A", "B"}, nil
}

func (f *fakeEventRepo) TopEvents(_ context.Context, n int64) ([]models.TopEvent, error) {
	f.calls++
	top := make([]models.TopEvent, 0, n)
	for _, event := range f.events {
		top = append(top, models.TopEvent{Title: event.Title, Popularity: event.Popularity})
		if int64(len(top)) == n {
			break
		}
	}
	return top, nil
}

func (f *fakeEventRepo) SearchByParticipant(_ context.Context, _ string, page models.PageOptions) (*models.EventPage, error) {
	f.calls++
	f.lastPage = page
	return &models.EventPage{Total: 3, Skip: page.Skip, Limit: page.Limit}, nil
}

func (f *fakeEventRepo) SearchByOrganizer(_ context.Context, _ string, page models.PageOptions) (*models.EventPage, error) {
	f.calls++
	f.lastPage = page
	return &models.EventPage{Total: 3, Skip: page.Skip, Limit: page.Limit}, nil
}

func seedEvent(repo *fakeEventRepo) *models.Event {
	event := &models.Event{
		ID:        primitive.NewObjectID(),
		Title:     "Jazz night",
		CreatorID: primitive.NewObjectID(),
	}
	repo.events[event.ID] = event
	return event
}

func TestCreateEventRequiresTitleAndDate(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")

	_, err := svc.CreateEvent(context.Background(), CreateEventInput{Date: "2026-03-01", CreatorID: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.CreateEvent(context.Background(), CreateEventInput{Title: "Expo", CreatorID: primitive.NewObjectID().Hex()})
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.Zero(t, repo.calls)
}

func TestCreateEventAcceptsBothDateLayouts(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")
	creator := primitive.NewObjectID().Hex()

	for _, date := range []string{"2026-03-01", "2026-03-01T19:30:00Z"} {
		event, err := svc.CreateEvent(context.Background(), CreateEventInput{
			Title:     "Expo",
			Date:      date,
			CreatorID: creator,
		})
		assert.NoError(t, err)
		assert.Zero(t, event.Popularity)
	}
}

func TestMalformedIDNeverReachesRepo(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")

	_, err := svc.GetEvent(context.Background(), "not-an-id")
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.UpdateTitle(context.Background(), "12345", "New title")
	assert.ErrorIs(t, err, models.ErrValidation)

	err = svc.DeleteEvent(context.Background(), "")
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.Zero(t, repo.calls)
}

func TestUpdateDescriptionLengthBounds(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")
	event := seedEvent(repo)

	tests := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{"too short", strings.Repeat("x", 9), true},
		{"lower bound", strings.Repeat("x", 10), false},
		{"upper bound", strings.Repeat("x", 2000), false},
		{"too long", strings.Repeat("x", 2001), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateDescription(context.Background(), event.ID.Hex(), tc.description)
			if tc.wantErr {
				assert.ErrorIs(t, err, models.ErrValidation)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateDescriptionCountsRunesNotBytes(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")
	event := seedEvent(repo)

	// 10 runes, more than 10 bytes.
	_, err := svc.UpdateDescription(context.Background(), event.ID.Hex(), strings.Repeat("é", 10))
	assert.NoError(t, err)
}

func TestResetTitleWritesPlaceholder(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")
	event := seedEvent(repo)

	updated, err := svc.ResetTitle(context.Background(), event.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, models.TitlePlaceholder, updated.Title)

	// The document survives the reset.
	fetched, err := svc.GetEvent(context.Background(), event.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, models.TitlePlaceholder, fetched.Title)
}

func TestResetDescriptionWritesPlaceholder(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")
	event := seedEvent(repo)

	updated, err := svc.ResetDescription(context.Background(), event.ID.Hex())
	assert.NoError(t, err)
	assert.Equal(t, models.DescriptionPlaceholder, updated.Description)
}

func TestDeleteEventRemovesDocument(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")
	event := seedEvent(repo)

	assert.NoError(t, svc.DeleteEvent(context.Background(), event.ID.Hex()))

	_, err := svc.GetEvent(context.Background(), event.ID.Hex())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestListEventsComputesDescriptionLength(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")
	event := seedEvent(repo)
	event.Description = "héllo wörld"

	events, page, total, err := svc.ListEvents(context.Background(), ListEventsQuery{Page: 2, Limit: 5, SortBy: "oldest"})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, 11, events[0].DescriptionLength)
	assert.Equal(t, 5, page.Skip)
	assert.Equal(t, 1, repo.lastSortOrder)
}

func TestSearchRequiresName(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")

	_, err := svc.SearchByParticipant(context.Background(), "   ", 0, 10)
	assert.ErrorIs(t, err, models.ErrValidation)

	_, err = svc.SearchByOrganizer(context.Background(), "", 0, 10)
	assert.ErrorIs(t, err, models.ErrValidation)

	assert.Zero(t, repo.calls)
}

func TestSearchNormalizesWindow(t *testing.T) {
	repo := newFakeEventRepo()
	svc := NewEventService(repo, "")

	_, err := svc.SearchByParticipant(context.Background(), "alice", -4, 900)
	assert.NoError(t, err)
	assert.Equal(t, 0, repo.lastPage.Skip)
	assert.Equal(t, models.MaxPageSize, repo.lastPage.Limit)
}

func TestTopEventsExportsToFile(t *testing.T) {
	repo := newFakeEventRepo()
	event := seedEvent(repo)
	event.Popularity = 42

	exportPath := filepath.Join(t.TempDir(), "top.json")
	svc := NewEventService(repo, exportPath)

	top, err := svc.TopEvents(context.Background())
	assert.NoError(t, err)
	assert.Len(t, top, 1)
	assert.FileExists(t, exportPath)
}
