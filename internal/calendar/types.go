package calendar

import (
	calendar "google.golang.org/api/calendar/v3"
)

// DefaultWindowDays is the listing window applied when no time bounds are
// given: [now, now+7d].
const DefaultWindowDays = 7

// EventSummary is the flat projection of a calendar event.
type EventSummary struct {
	ID          string         `json:"id"`
	Summary     string         `json:"summary,omitempty"`
	Description string         `json:"description,omitempty"`
	Location    string         `json:"location,omitempty"`
	Start       string         `json:"start,omitempty"`
	End         string         `json:"end,omitempty"`
	Status      string         `json:"status,omitempty"`
	Organizer   string         `json:"organizer,omitempty"`
	Attendees   []AttendeeInfo `json:"attendees,omitempty"`
}

// AttendeeInfo is the projection of an event attendee.
type AttendeeInfo struct {
	Email          string `json:"email"`
	DisplayName    string `json:"displayName,omitempty"`
	ResponseStatus string `json:"responseStatus,omitempty"`
}

// CalendarInfo is the projection of a calendar list entry.
type CalendarInfo struct {
	ID          string `json:"id"`
	Summary     string `json:"summary,omitempty"`
	Description string `json:"description,omitempty"`
	TimeZone    string `json:"timeZone,omitempty"`
	Primary     bool   `json:"primary,omitempty"`
}

// toEventSummary projects a provider event. All-day events carry a date
// instead of a dateTime; whichever is present is used.
func toEventSummary(event *calendar.Event) EventSummary {
	if event == nil {
		return EventSummary{}
	}

	summary := EventSummary{
		ID:          event.Id,
		Summary:     event.Summary,
		Description: event.Description,
		Location:    event.Location,
		Status:      event.Status,
	}

	if event.Start != nil {
		summary.Start = eventTime(event.Start)
	}
	if event.End != nil {
		summary.End = eventTime(event.End)
	}
	if event.Organizer != nil {
		summary.Organizer = event.Organizer.Email
	}

	for _, a := range event.Attendees {
		summary.Attendees = append(summary.Attendees, AttendeeInfo{
			Email:          a.Email,
			DisplayName:    a.DisplayName,
			ResponseStatus: a.ResponseStatus,
		})
	}

	return summary
}

func eventTime(t *calendar.EventDateTime) string {
	if t.DateTime != "" {
		return t.DateTime
	}
	return t.Date
}

// toCalendarInfo projects a calendar list entry.
func toCalendarInfo(entry *calendar.CalendarListEntry) CalendarInfo {
	if entry == nil {
		return CalendarInfo{}
	}
	return CalendarInfo{
		ID:          entry.Id,
		Summary:     entry.Summary,
		Description: entry.Description,
		TimeZone:    entry.TimeZone,
		Primary:     entry.Primary,
	}
}
