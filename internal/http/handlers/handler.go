package handlers

import (
	"context"

	"taskmanager/internal/domain"
	"taskmanager/internal/ws"
)

// TaskStore is what the handlers need from the task repository. Tests
// substitute a stub; production wires repository.TaskRepository.
type TaskStore interface {
	Create(ctx context.Context, t *domain.Task) error
	List(ctx context.Context) ([]*domain.Task, error)
	Delete(ctx context.Context, id int64) error
	Count(ctx context.Context) (int64, error)
}

type Handler struct {
	Tasks TaskStore
	Hub   *ws.Hub
}

func NewHandler(tasks TaskStore, hub *ws.Hub) *Handler {
	return &Handler{Tasks: tasks, Hub: hub}
}

func (h *Handler) notifyChanged() {
	if h.Hub != nil {
		h.Hub.NotifyChanged()
	}
}
