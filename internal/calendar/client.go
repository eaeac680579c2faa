package calendar

import (
	"context"
	"fmt"
	"time"

	calendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/quietdesk/deskmcp/internal/google"
)

// Client wraps the Google Calendar service with the read operations the
// server exposes.
type Client struct {
	svc *calendar.Service
	now func() time.Time
}

// NewClient creates a Calendar client sharing the provider's authenticated
// HTTP client.
func NewClient(ctx context.Context, provider *google.Provider) (*Client, error) {
	httpClient, err := provider.Client(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := calendar.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create Calendar service: %w", err)
	}

	return &Client{svc: svc, now: time.Now}, nil
}

// ListCalendars lists the calendars visible to the authenticated user.
func (c *Client) ListCalendars() ([]CalendarInfo, error) {
	res, err := c.svc.CalendarList.List().Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list calendars: %w", err)
	}

	calendars := make([]CalendarInfo, 0, len(res.Items))
	for _, entry := range res.Items {
		calendars = append(calendars, toCalendarInfo(entry))
	}
	return calendars, nil
}

// ListEvents lists events in a calendar, time-ordered ascending, with
// recurring events expanded into single instances. Zero time bounds default
// the window to [now, now+7d]; a zero bound on one side only is filled from
// the same defaults.
func (c *Client) ListEvents(calendarID string, timeMin, timeMax time.Time, maxResults int64) ([]EventSummary, error) {
	if timeMin.IsZero() {
		timeMin = c.now()
	}
	if timeMax.IsZero() {
		timeMax = timeMin.AddDate(0, 0, DefaultWindowDays)
	}

	res, err := c.svc.Events.List(calendarID).
		TimeMin(timeMin.Format(time.RFC3339)).
		TimeMax(timeMax.Format(time.RFC3339)).
		MaxResults(maxResults).
		SingleEvents(true).
		OrderBy("startTime").
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	events := make([]EventSummary, 0, len(res.Items))
	for _, event := range res.Items {
		events = append(events, toEventSummary(event))
	}
	return events, nil
}

// GetEvent retrieves a single event by id.
func (c *Client) GetEvent(calendarID, eventID string) (*EventSummary, error) {
	event, err := c.svc.Events.Get(calendarID, eventID).Do()
	if err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	summary := toEventSummary(event)
	return &summary, nil
}
