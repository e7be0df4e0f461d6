package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"svctopo/internal/domain"
)

func (s *Server) CreateConnection(c *gin.Context) {
	var conn domain.Connection
	if err := c.ShouldBindJSON(&conn); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}

	id, err := s.store.CreateConnection(c.Request.Context(), &conn)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("create_failed", err.Error()))
		return
	}
	conn.ID = id
	c.JSON(http.StatusCreated, SuccessResponse("connection created", conn))
}

func (s *Server) ListConnectionsByDiagram(c *gin.Context) {
	diagramID, err := strconv.Atoi(c.Param("diagramId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid diagram id"))
		return
	}

	conns, err := s.store.ListConnectionsByDiagram(c.Request.Context(), diagramID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("list_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("ok", conns))
}

func (s *Server) DeleteConnection(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid connection id"))
		return
	}

	if err := s.store.DeleteConnection(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("delete_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("connection deleted", nil))
}
