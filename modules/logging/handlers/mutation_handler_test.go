package handlers

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/pkg/application"
	"github.com/iota-uz/deptemp/pkg/composables"
)

func TestMutationEventsAreAudited(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := application.New(&application.ApplicationOptions{Logger: logger})
	RegisterMutationEventHandlers(app)
	require.Equal(t, 6, app.EventPublisher().SubscribersCount())

	ctx := composables.WithRequestID(context.Background(), "req-42")
	sales := department.Hydrate(3, "SALES", "CHICAGO")
	app.EventPublisher().Publish(department.NewCreatedEvent(ctx, department.CreateDTO{Dname: "SALES"}, sales))
	app.EventPublisher().Publish(employee.NewDeletedEvent(context.Background(), 7))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)

	created := entries[0]
	require.Equal(t, logrus.InfoLevel, created.Level)
	require.Equal(t, auditMessage, created.Message)
	require.Equal(t, "department", created.Data["entity"])
	require.Equal(t, "create", created.Data["operation"])
	require.Equal(t, 3, created.Data["id"])
	require.Equal(t, "SALES", created.Data["dname"])
	require.Equal(t, "req-42", created.Data["request-id"])

	deleted := entries[1]
	require.Equal(t, "employee", deleted.Data["entity"])
	require.Equal(t, "delete", deleted.Data["operation"])
	require.Equal(t, 7, deleted.Data["id"])
	require.NotContains(t, deleted.Data, "request-id")
}

func TestUpdatesAreAuditedWithChanges(t *testing.T) {
	logger, hook := test.NewNullLogger()
	app := application.New(&application.ApplicationOptions{Logger: logger})
	RegisterMutationEventHandlers(app)

	before := department.Hydrate(1, "SALES", "NYC")
	after := department.Hydrate(1, "SALES", "CHICAGO")
	app.EventPublisher().Publish(department.NewUpdatedEvent(
		context.Background(), department.UpdateDTO{Dname: "SALES", Loc: "CHICAGO"}, before, after,
	))
	app.EventPublisher().Publish(department.NewUpdatedEvent(
		context.Background(), department.UpdateDTO{Dname: "SALES", Loc: "CHICAGO"}, after, after,
	))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	require.Equal(t, "update", entries[0].Data["operation"])
	require.JSONEq(t,
		`[{"op":"replace","path":"/loc","value":"CHICAGO"}]`,
		entries[0].Data["changes"].(string),
	)
	require.NotContains(t, entries[1].Data, "changes", "an unchanged record has no patch")
}
