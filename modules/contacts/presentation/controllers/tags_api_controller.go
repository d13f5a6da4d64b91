package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/homewardhq/homeward/modules/contacts/domain/entities/tag"
	"github.com/homewardhq/homeward/modules/contacts/services"
	"github.com/homewardhq/homeward/pkg/application"
	"github.com/homewardhq/homeward/pkg/mapping"
	"github.com/homewardhq/homeward/pkg/middleware"
)

type TagsAPIController struct {
	app      application.Application
	tags     *services.TagService
	basePath string
}

func NewTagsAPIController(app application.Application) application.Controller {
	return &TagsAPIController{
		app:      app,
		tags:     app.Service(services.TagService{}).(*services.TagService),
		basePath: "/api/tags",
	}
}

func (c *TagsAPIController) Key() string {
	return c.basePath
}

func (c *TagsAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideTenant(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *TagsAPIController) List(w http.ResponseWriter, r *http.Request) {
	tags, err := c.tags.GetAll(r.Context())
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CONTACTS_INTERNAL", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"items": mapping.MapViewModels(tags, tagToViewModel),
	})
}

func (c *TagsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto tag.CreateDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	created, err := c.tags.Create(r.Context(), &dto)
	if err != nil {
		writeAPIError(w, r, http.StatusInternalServerError, "CONTACTS_INTERNAL", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, tagToViewModel(created))
}

func (c *TagsAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid tag id")
		return
	}

	if err := c.tags.Delete(r.Context(), id); err != nil {
		if errors.Is(err, tag.ErrNotFound) {
			writeAPIError(w, r, http.StatusNotFound, "CONTACTS_NOT_FOUND", "tag not found")
			return
		}
		writeAPIError(w, r, http.StatusInternalServerError, "CONTACTS_INTERNAL", "internal error")
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func tagToViewModel(entity tag.Tag) map[string]any {
	return map[string]any{
		"id":    entity.ID().String(),
		"name":  entity.Name(),
		"color": entity.Color(),
	}
}
