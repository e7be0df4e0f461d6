package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"svctopo/internal/domain"
)

func (s *Server) CreateDiagram(c *gin.Context) {
	var d domain.Diagram
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}

	id, err := s.store.CreateDiagram(c.Request.Context(), &d)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("create_failed", err.Error()))
		return
	}
	d.ID = id
	c.JSON(http.StatusCreated, SuccessResponse("diagram created", d))
}

func (s *Server) GetDiagram(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid diagram id"))
		return
	}

	d, err := s.store.GetDiagram(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "diagram not found"))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("ok", d))
}

// ListDiagrams returns every diagram to an admin, and only public ones to
// a viewer, per §4.7.
func (s *Server) ListDiagrams(c *gin.Context) {
	all, err := s.store.ListDiagrams(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("list_failed", err.Error()))
		return
	}

	role, _ := c.Get("user_role")
	if role == domain.RoleAdmin {
		c.JSON(http.StatusOK, SuccessResponse("ok", all))
		return
	}

	public := make([]*domain.Diagram, 0, len(all))
	for _, d := range all {
		if d.Public {
			public = append(public, d)
		}
	}
	c.JSON(http.StatusOK, SuccessResponse("ok", public))
}

func (s *Server) UpdateDiagram(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid diagram id"))
		return
	}

	var d domain.Diagram
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}
	d.ID = id

	if err := s.store.UpdateDiagram(c.Request.Context(), &d); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("update_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("diagram updated", d))
}

func (s *Server) DeleteDiagram(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid diagram id"))
		return
	}

	if err := s.store.DeleteDiagram(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("delete_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("diagram deleted", nil))
}
