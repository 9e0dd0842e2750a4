package employee

import (
	"context"

	"github.com/iota-uz/deptemp/pkg/composables"
)

// EventMeta is carried by every employee event.
type EventMeta struct {
	RequestID string
}

func metaFrom(ctx context.Context) EventMeta {
	id, _ := composables.UseRequestID(ctx)
	return EventMeta{RequestID: id}
}

type CreatedEvent struct {
	EventMeta
	Data   CreateDTO
	Result Employee
}

// UpdatedEvent carries the stored state before and after the update.
type UpdatedEvent struct {
	EventMeta
	Data     UpdateDTO
	Previous Employee
	Result   Employee
}

type DeletedEvent struct {
	EventMeta
	Empno int
}

func NewCreatedEvent(ctx context.Context, data CreateDTO, result Employee) *CreatedEvent {
	return &CreatedEvent{EventMeta: metaFrom(ctx), Data: data, Result: result}
}

func NewUpdatedEvent(ctx context.Context, data UpdateDTO, previous, result Employee) *UpdatedEvent {
	return &UpdatedEvent{EventMeta: metaFrom(ctx), Data: data, Previous: previous, Result: result}
}

func NewDeletedEvent(ctx context.Context, empno int) *DeletedEvent {
	return &DeletedEvent{EventMeta: metaFrom(ctx), Empno: empno}
}
