package department

import (
	"context"

	"github.com/iota-uz/deptemp/pkg/composables"
)

// EventMeta is carried by every department event.
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
	Result Department
}

// UpdatedEvent carries the stored state before and after the update.
type UpdatedEvent struct {
	EventMeta
	Data     UpdateDTO
	Previous Department
	Result   Department
}

type DeletedEvent struct {
	EventMeta
	Deptno int
}

func NewCreatedEvent(ctx context.Context, data CreateDTO, result Department) *CreatedEvent {
	return &CreatedEvent{EventMeta: metaFrom(ctx), Data: data, Result: result}
}

func NewUpdatedEvent(ctx context.Context, data UpdateDTO, previous, result Department) *UpdatedEvent {
	return &UpdatedEvent{EventMeta: metaFrom(ctx), Data: data, Previous: previous, Result: result}
}

func NewDeletedEvent(ctx context.Context, deptno int) *DeletedEvent {
	return &DeletedEvent{EventMeta: metaFrom(ctx), Deptno: deptno}
}
