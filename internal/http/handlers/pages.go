package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"taskmanager/internal/domain"
	"taskmanager/internal/http/middleware"
	"taskmanager/internal/logger"

	"github.com/gin-gonic/gin"
)

// Index renders the whole page: add-task form, task list with delete
// buttons, and the sidebar with the proxy-asserted identity. Every
// interaction lands back here, so the list is re-read on each render.
func (h *Handler) Index(c *gin.Context) {
	tasks, err := h.Tasks.List(c.Request.Context())
	if err != nil {
		logger.Error("list tasks failed", "error", err)
		c.HTML(http.StatusInternalServerError, "index.html", gin.H{
			"Error":    "Something went wrong talking to the database.",
			"Identity": middleware.CurrentIdentity(c),
			"Now":      time.Now().Format("2006-01-02 15:04:05"),
		})
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"Tasks":    tasks,
		"Total":    len(tasks),
		"Identity": middleware.CurrentIdentity(c),
		"Warn":     c.Query("warn"),
		"Msg":      c.Query("msg"),
		"Now":      time.Now().Format("2006-01-02 15:04:05"),
	})
}

// CreateTaskForm handles the add-task form submit. Empty titles never
// reach the database; the check lives here, not in the schema.
func (h *Handler) CreateTaskForm(c *gin.Context) {
	title := strings.TrimSpace(c.PostForm("title"))
	description := strings.TrimSpace(c.PostForm("description"))

	if title == "" {
		redirectFlash(c, "warn", "Task title is required.")
		return
	}

	task := &domain.Task{Title: title, Description: description}
	if err := h.Tasks.Create(c.Request.Context(), task); err != nil {
		logger.Error("create task failed", "error", err)
		redirectFlash(c, "warn", "Could not add the task.")
		return
	}

	h.notifyChanged()
	redirectFlash(c, "msg", "Task '"+title+"' added.")
}

// DeleteTaskForm handles the per-row delete button. Deleting an id that
// is already gone still redirects with a success message; the row being
// absent is the requested end state.
func (h *Handler) DeleteTaskForm(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		redirectFlash(c, "warn", "Invalid task id.")
		return
	}

	if err := h.Tasks.Delete(c.Request.Context(), id); err != nil {
		logger.Error("delete task failed", "id", id, "error", err)
		redirectFlash(c, "warn", "Could not delete the task.")
		return
	}

	h.notifyChanged()
	redirectFlash(c, "msg", "Task "+strconv.FormatInt(id, 10)+" deleted.")
}

func redirectFlash(c *gin.Context, kind, text string) {
	c.Redirect(http.StatusSeeOther, "/?"+kind+"="+url.QueryEscape(text))
}
