package event

import "time"

const unnamedEvent = "Unnamed Event"

// Mirror is the public-facing copy of an event kept in the content system.
type Mirror struct {
	ID                  string     `json:"id,omitempty"`
	EventName           string     `json:"eventName"`
	EventIDGuestManager string     `json:"eventIdGuestManager"`
	DefaultScID         string     `json:"defaultScId,omitempty"`
	StartDateAndTime    *time.Time `json:"startDateAndTime,omitempty"`
	EndDateAndTime      *time.Time `json:"endDateAndTime,omitempty"`
}

type MirrorView struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	GuestManagerID string     `json:"guestManagerId"`
	DefaultScID    string     `json:"defaultScId"`
	EndsAt         *time.Time `json:"date"`
	Status         Status     `json:"status"`
}

func NewMirrorView(m Mirror, now time.Time) MirrorView {
	name := m.EventName
	if name == "" {
		name = unnamedEvent
	}

	// An undated mirror has not ended yet.
	status := StatusUpcoming
	if m.EndDateAndTime != nil {
		status = StatusAt(*m.EndDateAndTime, now)
	}

	return MirrorView{
		ID:             m.ID,
		Name:           name,
		GuestManagerID: m.EventIDGuestManager,
		DefaultScID:    m.DefaultScID,
		EndsAt:         m.EndDateAndTime,
		Status:         status,
	}
}
