package domain

// EventType tags a row-level change-feed notification.
type EventType string

const (
	EventInsert EventType = "INSERT"
	EventUpdate EventType = "UPDATE"
	EventDelete EventType = "DELETE"
)

// ProfileEvent is one row-level change on the profiles collection.
// For deletes the payload carries the last known row state.
type ProfileEvent struct {
	Type    EventType
	Profile Profile
}

// VacationEvent is one row-level change on the vacations collection.
type VacationEvent struct {
	Type     EventType
	Vacation Vacation
}
