// Package api exposes the planner and the project store over HTTP.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/stratyx-planner/internal/export"
	"github.com/BerylCAtieno/stratyx-planner/internal/models"
	"github.com/BerylCAtieno/stratyx-planner/internal/planner"
	"github.com/BerylCAtieno/stratyx-planner/internal/store"
	"github.com/BerylCAtieno/stratyx-planner/internal/workspace"
)

type Handler struct {
	backend   store.Store
	generator planner.Generator
	log       *zap.SugaredLogger
}

func NewHandler(backend store.Store, generator planner.Generator, log *zap.SugaredLogger) *Handler {
	return &Handler{
		backend:   backend,
		generator: generator,
		log:       log,
	}
}

// Register mounts the /api routes on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")
	api.POST("/plans", h.GeneratePlan)
	api.POST("/palette", h.ExtractPalette)

	projects := api.Group("/namespaces/:email/projects")
	projects.GET("", h.ListProjects)
	projects.POST("", h.SaveProject)
	projects.GET("/:id", h.GetProject)
	projects.DELETE("/:id", h.DeleteProject)
	projects.POST("/:id/copy", h.CopyProject)
	projects.POST("/:id/posts/:postID/toggle", h.TogglePost)
	projects.POST("/:id/extend", h.ExtendCalendar)
	projects.POST("/:id/regenerate", h.Regenerate)
	projects.GET("/:id/export", h.ExportProject)
	projects.GET("/:id/print", h.PrintProject)
}

type saveRequest struct {
	Project models.Project `json:"project"`
	Name    string         `json:"name"`
}

type copyRequest struct {
	Name string `json:"name"`
}

type paletteRequest struct {
	Image string `json:"image" binding:"required"`
}

type paletteResponse struct {
	Colors []string `json:"colors"`
}

func (h *Handler) GeneratePlan(c *gin.Context) {
	var profile models.BusinessProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, err)
		return
	}
	plan, err := workspace.Generate(c.Request.Context(), h.generator, h.log, profile)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// ExtractPalette always answers 200; an empty list means no palette.
func (h *Handler) ExtractPalette(c *gin.Context) {
	var req paletteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	colors := workspace.ExtractPalette(c.Request.Context(), h.generator, h.log, req.Image)
	if colors == nil {
		colors = []string{}
	}
	c.JSON(http.StatusOK, paletteResponse{Colors: colors})
}

func (h *Handler) ListProjects(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	projects, err := ws.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	c.JSON(http.StatusOK, projects)
}

func (h *Handler) SaveProject(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	saved, err := ws.Save(c.Request.Context(), req.Project, req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	status := http.StatusOK
	if !req.Project.Saved() {
		status = http.StatusCreated
	}
	c.JSON(status, saved)
}

func (h *Handler) GetProject(c *gin.Context) {
	_, p, ok := h.project(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteProject answers 204 whether or not the project existed.
func (h *Handler) DeleteProject(c *gin.Context) {
	ws, ok := h.workspace(c)
	if !ok {
		return
	}
	if err := ws.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) CopyProject(c *gin.Context) {
	ws, p, ok := h.project(c)
	if !ok {
		return
	}
	var req copyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}
	copied, err := ws.SaveAs(c.Request.Context(), p, req.Name)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, copied)
}

func (h *Handler) TogglePost(c *gin.Context) {
	ws, p, ok := h.project(c)
	if !ok {
		return
	}
	toggled, err := ws.ToggleStatus(c.Request.Context(), p, c.Param("postID"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toggled)
}

func (h *Handler) ExtendCalendar(c *gin.Context) {
	ws, p, ok := h.project(c)
	if !ok {
		return
	}
	extended, err := ws.ExtendCalendar(c.Request.Context(), p)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, extended)
}

func (h *Handler) Regenerate(c *gin.Context) {
	ws, p, ok := h.project(c)
	if !ok {
		return
	}
	var profile models.BusinessProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		badRequest(c, err)
		return
	}
	next, err := ws.Regenerate(c.Request.Context(), p, profile)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, next)
}

func (h *Handler) ExportProject(c *gin.Context) {
	_, p, ok := h.project(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.Filename(p)))
	c.Header("Content-Type", "application/json")
	c.Status(http.StatusOK)
	if err := export.WriteJSON(c.Writer, p); err != nil {
		h.log.Errorw("project export failed", "project", p.ID, "error", err)
	}
}

func (h *Handler) PrintProject(c *gin.Context) {
	_, p, ok := h.project(c)
	if !ok {
		return
	}
	c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(export.PrintDocument(p)))
}

// workspace binds a workspace to the :email path parameter.
func (h *Handler) workspace(c *gin.Context) (*workspace.Workspace, bool) {
	ns, err := store.Open(h.backend, c.Param("email"))
	if err != nil {
		badRequest(c, err)
		return nil, false
	}
	return workspace.New(ns, h.generator, h.log), true
}

// project resolves :email and :id to a stored project.
func (h *Handler) project(c *gin.Context) (*workspace.Workspace, models.Project, bool) {
	ws, ok := h.workspace(c)
	if !ok {
		return nil, models.Project{}, false
	}
	p, err := ws.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return nil, models.Project{}, false
	}
	return ws, p, true
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// fail maps domain errors to status codes. Generator and store details stay
// in the log.
func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidProfile),
		errors.Is(err, store.ErrInvalidNamespace),
		errors.Is(err, store.ErrMissingID):
		badRequest(c, err)
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, workspace.ErrGenerationFailed):
		c.JSON(http.StatusBadGateway, gin.H{"error": workspace.GenerationFailedMessage})
	default:
		h.log.Errorw("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
