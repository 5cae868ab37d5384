package events

type EventType string

const (
	EventTypeTaskCompleted     EventType = "TASK_COMPLETED"
	EventTypeTaskRecurred      EventType = "TASK_RECURRED"
	EventTypeScheduleGenerated EventType = "SCHEDULE_GENERATED"
	EventTypeNote              EventType = "NOTE"
)

func (t EventType) Valid() bool {
	switch t {
	case EventTypeTaskCompleted, EventTypeTaskRecurred, EventTypeScheduleGenerated, EventTypeNote:
		return true
	default:
		return false
	}
}

type ActorType string

const (
	ActorTypeOwnerUser ActorType = "OWNER_USER"
	ActorTypeSystem    ActorType = "SYSTEM"
)

type Source string

const (
	SourceManual    Source = "manual"
	SourceTasks     Source = "tasks"
	SourceScheduler Source = "scheduler"
)

type EventStatus string

const (
	EventStatusActive EventStatus = "active"
	EventStatusVoided EventStatus = "voided"
)
