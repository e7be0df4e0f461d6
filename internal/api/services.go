package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"svctopo/internal/domain"
	"svctopo/pkg/validator"
)

// CreateService is the only place outside the engine that produces a
// ServiceSpec row; from here the Scheduler will pick it up on its next
// tick automatically (§4.1 reads a fresh snapshot every tick).
func (s *Server) CreateService(c *gin.Context) {
	var spec domain.ServiceSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}
	if err := validator.Validate(&spec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_spec", err.Error()))
		return
	}

	id, err := s.store.CreateService(c.Request.Context(), &spec)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("create_failed", err.Error()))
		return
	}
	spec.ServiceID = id
	c.JSON(http.StatusCreated, SuccessResponse("service created", spec))
}

func (s *Server) GetService(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid service id"))
		return
	}

	spec, err := s.store.GetService(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "service not found"))
		return
	}

	latest, err := s.store.GetLatest(c.Request.Context(), id)
	if err == nil {
		c.JSON(http.StatusOK, SuccessResponse("ok", gin.H{"service": spec, "latest": latest}))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("ok", gin.H{"service": spec}))
}

// ListServicesByDiagram is the read path the (out-of-scope) canvas polls;
// it joins in each service's cached latest status so the initial render
// doesn't have to wait for the first StatusUpdate over /ws.
func (s *Server) ListServicesByDiagram(c *gin.Context) {
	diagramID, err := strconv.Atoi(c.Param("diagramId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid diagram id"))
		return
	}

	specs, err := s.store.ListServicesByDiagram(c.Request.Context(), diagramID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("list_failed", err.Error()))
		return
	}

	type serviceWithLatest struct {
		*domain.ServiceSpec
		Latest domain.ServiceLatest `json:"latest"`
	}
	out := make([]serviceWithLatest, 0, len(specs))
	for _, spec := range specs {
		latest, _ := s.store.GetLatest(c.Request.Context(), spec.ServiceID)
		out = append(out, serviceWithLatest{ServiceSpec: spec, Latest: latest})
	}
	c.JSON(http.StatusOK, SuccessResponse("ok", out))
}

func (s *Server) UpdateService(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid service id"))
		return
	}

	var spec domain.ServiceSpec
	if err := c.ShouldBindJSON(&spec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}
	spec.ServiceID = id

	if err := validator.Validate(&spec); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_spec", err.Error()))
		return
	}

	if err := s.store.UpdateService(c.Request.Context(), &spec); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("update_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("service updated", spec))
}

// UpdateServicePosition is the drag/drop layout persistence endpoint; it
// never touches probe configuration, matching §1's scoping of the visual
// editor as an external collaborator with a narrow write contract.
func (s *Server) UpdateServicePosition(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid service id"))
		return
	}

	var body struct {
		X float64 `json:"position_x"`
		Y float64 `json:"position_y"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", err.Error()))
		return
	}

	if err := s.store.UpdateServicePosition(c.Request.Context(), id, body.X, body.Y); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("update_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("position updated", nil))
}

func (s *Server) DeleteService(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid service id"))
		return
	}

	if err := s.store.DeleteService(c.Request.Context(), id); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("delete_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("service deleted", nil))
}

// UploadIcon is stubbed per §1: icon image processing is an external
// collaborator's job. This endpoint only records the uploaded filename
// against the service row; it never decodes or resizes the image.
func (s *Server) UploadIcon(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_id", "invalid service id"))
		return
	}

	file, err := c.FormFile("icon")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse("invalid_request", "icon file required"))
		return
	}

	spec, err := s.store.GetService(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse("not_found", "service not found"))
		return
	}
	spec.Icon = file.Filename

	if err := s.store.UpdateService(c.Request.Context(), spec); err != nil {
		c.JSON(http.StatusInternalServerError, ErrorResponse("update_failed", err.Error()))
		return
	}
	c.JSON(http.StatusOK, SuccessResponse("icon recorded", gin.H{"icon": spec.Icon}))
}
