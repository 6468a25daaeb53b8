package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"taskboard/internal/service"
)

func (s *Server) listCategories(c *gin.Context) {
	categories, err := s.categories.List(c.Request.Context(), currentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": service.NewCategoryViews(categories)})
}

func (s *Server) createCategory(c *gin.Context) {
	var payload struct {
		Name string `json:"name" form:"name"`
	}
	if err := c.ShouldBind(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	category, err := s.categories.Create(c.Request.Context(), currentUser(c).ID, payload.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"ok": true, "category": gin.H{"id": category.ID, "name": category.Name}})
}
