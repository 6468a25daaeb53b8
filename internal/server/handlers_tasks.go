package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
)

type taskPayload struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	CategoryID  string `json:"category_id" form:"category_id"`
	Priority    string `json:"priority" form:"priority"`
	Status      string `json:"status" form:"status"`
	DueDate     string `json:"due_date" form:"due_date"`
}

// taskUpdatePayload uses pointers so absent fields stay untouched.
type taskUpdatePayload struct {
	Title       *string `json:"title" form:"title"`
	Description *string `json:"description" form:"description"`
	CategoryID  *string `json:"category_id" form:"category_id"`
	Priority    *string `json:"priority" form:"priority"`
	Status      *string `json:"status" form:"status"`
	DueDate     *string `json:"due_date" form:"due_date"`
}

// listTasks serves the dashboard payload: active tasks filtered and sorted
// per query params, the user's categories, and the upcoming-deadlines list.
func (s *Server) listTasks(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	categoryParam := c.DefaultQuery("category", service.CategoryAll)
	sortMode := c.Query("sort")
	search := c.Query("search")

	tasks, err := s.tasks.ListDashboard(ctx, user.ID, categoryParam, sortMode, search)
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := s.categories.List(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"user":       publicUser(user),
		"tasks":      service.NewTaskViews(tasks, categories, now),
		"categories": service.NewCategoryViews(categories),
		"upcoming":   service.Upcoming(tasks, categories, now),
	})
}

func (s *Server) listHistory(c *gin.Context) {
	user := currentUser(c)
	ctx := c.Request.Context()

	tasks, err := s.tasks.ListHistory(ctx, user.ID, c.DefaultQuery("category", service.CategoryAll), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}
	categories, err := s.categories.List(ctx, user.ID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tasks": service.NewTaskViews(tasks, categories, time.Now()),
	})
}

func (s *Server) createTask(c *gin.Context) {
	var payload taskPayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	task, err := s.tasks.Create(c.Request.Context(), currentUser(c).ID, service.TaskInput{
		Title:       payload.Title,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		Priority:    payload.Priority,
		Status:      payload.Status,
		DueDate:     payload.DueDate,
	})
	if err != nil {
		if !wantsJSON(c) {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		respondError(c, err)
		return
	}

	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"created": true, "task_id": strconv.FormatUint(uint64(task.ID), 10)})
}

func (s *Server) updateTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}
	var payload taskUpdatePayload
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	err := s.tasks.Update(c.Request.Context(), currentUser(c).ID, taskID, service.TaskUpdate{
		Title:       payload.Title,
		Description: payload.Description,
		CategoryID:  payload.CategoryID,
		Priority:    payload.Priority,
		Status:      payload.Status,
		DueDate:     payload.DueDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true, "task_id": c.Param("id")})
}

func (s *Server) completeTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.tasks.Complete(c.Request.Context(), currentUser(c).ID, taskID, time.Now()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"completed": true, "task_id": c.Param("id")})
}

func (s *Server) deleteTask(c *gin.Context) {
	taskID, ok := parseID(c)
	if !ok {
		return
	}
	if err := s.tasks.Delete(c.Request.Context(), currentUser(c).ID, taskID); err != nil {
		if !wantsJSON(c) {
			c.Redirect(http.StatusSeeOther, "/dashboard")
			return
		}
		respondError(c, err)
		return
	}
	if !wantsJSON(c) {
		c.Redirect(http.StatusSeeOther, "/dashboard")
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": true, "task_id": c.Param("id")})
}

// parseID reads the :id path param; a malformed id is a 400, matching the
// treatment of syntactically invalid ids rather than missing ones.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid task id"})
		return 0, false
	}
	return uint(id), true
}
