package handlers

import (
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/wI2L/jsondiff"

	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/department"
	"github.com/iota-uz/deptemp/modules/hrm/domain/aggregates/employee"
	"github.com/iota-uz/deptemp/modules/hrm/presentation/mappers"
	"github.com/iota-uz/deptemp/pkg/application"
)

const auditMessage = "audit: mutation committed"

type MutationEventsHandler struct {
	logger *logrus.Entry
}

func RegisterMutationEventHandlers(app application.Application) {
	handler := &MutationEventsHandler{
		logger: app.Logger().WithField("component", "audit"),
	}
	bus := app.EventPublisher()
	bus.Subscribe(handler.onDepartmentCreated)
	bus.Subscribe(handler.onDepartmentUpdated)
	bus.Subscribe(handler.onDepartmentDeleted)
	bus.Subscribe(handler.onEmployeeCreated)
	bus.Subscribe(handler.onEmployeeUpdated)
	bus.Subscribe(handler.onEmployeeDeleted)
}

func (h *MutationEventsHandler) entry(entity, operation string, id int, requestID string) *logrus.Entry {
	entry := h.logger.WithFields(logrus.Fields{
		"entity":    entity,
		"operation": operation,
		"id":        id,
	})
	if requestID != "" {
		entry = entry.WithField("request-id", requestID)
	}
	return entry
}

// withChanges attaches the JSON patch turning the wire form of before into
// after. Identical states attach nothing.
func withChanges(entry *logrus.Entry, before, after any) *logrus.Entry {
	patch, err := jsondiff.Compare(before, after)
	if err != nil {
		return entry.WithField("changes-error", err.Error())
	}
	if len(patch) == 0 {
		return entry
	}
	raw, err := json.Marshal(patch)
	if err != nil {
		return entry.WithField("changes-error", err.Error())
	}
	return entry.WithField("changes", string(raw))
}

func (h *MutationEventsHandler) onDepartmentCreated(event *department.CreatedEvent) {
	h.entry("department", "create", event.Result.Deptno(), event.RequestID).
		WithField("dname", event.Result.Dname()).
		Info(auditMessage)
}

func (h *MutationEventsHandler) onDepartmentUpdated(event *department.UpdatedEvent) {
	entry := h.entry("department", "update", event.Result.Deptno(), event.RequestID).
		WithField("dname", event.Result.Dname())
	withChanges(entry,
		mappers.DepartmentToViewModel(event.Previous),
		mappers.DepartmentToViewModel(event.Result),
	).Info(auditMessage)
}

func (h *MutationEventsHandler) onDepartmentDeleted(event *department.DeletedEvent) {
	h.entry("department", "delete", event.Deptno, event.RequestID).Info(auditMessage)
}

func (h *MutationEventsHandler) onEmployeeCreated(event *employee.CreatedEvent) {
	h.entry("employee", "create", event.Result.Empno(), event.RequestID).
		WithFields(logrus.Fields{"ename": event.Result.Ename(), "deptno": event.Result.Deptno()}).
		Info(auditMessage)
}

func (h *MutationEventsHandler) onEmployeeUpdated(event *employee.UpdatedEvent) {
	entry := h.entry("employee", "update", event.Result.Empno(), event.RequestID).
		WithFields(logrus.Fields{"ename": event.Result.Ename(), "deptno": event.Result.Deptno()})
	withChanges(entry,
		mappers.EmployeeToViewModel(event.Previous),
		mappers.EmployeeToViewModel(event.Result),
	).Info(auditMessage)
}

func (h *MutationEventsHandler) onEmployeeDeleted(event *employee.DeletedEvent) {
	h.entry("employee", "delete", event.Empno, event.RequestID).Info(auditMessage)
}
