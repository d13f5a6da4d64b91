package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/modules/contacts/presentation/mappers"
	"github.com/homewardhq/homeward/modules/contacts/presentation/viewmodels"
	"github.com/homewardhq/homeward/modules/contacts/services"
	"github.com/homewardhq/homeward/pkg/application"
	"github.com/homewardhq/homeward/pkg/configuration"
	"github.com/homewardhq/homeward/pkg/mapping"
	"github.com/homewardhq/homeward/pkg/middleware"
	"github.com/homewardhq/homeward/pkg/repo"
)

type ContactGroupsAPIController struct {
	app      application.Application
	groups   *services.ContactGroupService
	basePath string
}

func NewContactGroupsAPIController(app application.Application) application.Controller {
	return &ContactGroupsAPIController{
		app:      app,
		groups:   app.Service(services.ContactGroupService{}).(*services.ContactGroupService),
		basePath: "/api/contact-groups",
	}
}

func (c *ContactGroupsAPIController) Key() string {
	return c.basePath
}

func (c *ContactGroupsAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideTenant(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/tenant-household", c.GetTenantHousehold).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)

	// The ensure endpoint owns its transactions: the unique-violation
	// retry must run after the failed insert's transaction is gone, so it
	// stays off the request-scoped transaction middleware.
	router.HandleFunc("/tenant-household:ensure", c.EnsureTenantHousehold).Methods(http.MethodPost)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Update).Methods(http.MethodPut)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
}

func (c *ContactGroupsAPIController) List(w http.ResponseWriter, r *http.Request) {
	conf := configuration.Use()

	limit := conf.PageSize
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= conf.MaxPageSize {
			limit = parsed
		}
	}
	offset := 0
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			offset = parsed
		}
	}

	params := &contact.GroupFindParams{
		Limit:  limit,
		Offset: offset,
		Search: strings.TrimSpace(r.URL.Query().Get("q")),
	}
	if v := strings.TrimSpace(r.URL.Query().Get("type")); v != "" {
		contactType := contact.Type(v)
		if !contactType.Valid() {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_TYPE", "unknown contact type")
			return
		}
		params.ContactType = contactType
	}
	if v := strings.TrimSpace(r.URL.Query().Get("isActive")); v != "" {
		isActive, err := strconv.ParseBool(v)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_FILTER", "isActive must be a boolean")
			return
		}
		params.IsActive = &isActive
	}
	if v := strings.TrimSpace(r.URL.Query().Get("tagIds")); v != "" {
		for _, raw := range strings.Split(v, ",") {
			tagID, err := uuid.Parse(strings.TrimSpace(raw))
			if err != nil {
				writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid tag id")
				return
			}
			params.TagIDs = append(params.TagIDs, tagID)
		}
	}
	if v := strings.TrimSpace(r.URL.Query().Get("sortBy")); v != "" {
		field, ok := groupSortFields[v]
		if !ok {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_SORT", "unknown sort field")
			return
		}
		desc := false
		if d := strings.TrimSpace(r.URL.Query().Get("sortDesc")); d != "" {
			parsed, err := strconv.ParseBool(d)
			if err != nil {
				writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_SORT", "sortDesc must be a boolean")
				return
			}
			desc = parsed
		}
		params.SortBy = contact.SortBy{
			Fields: []repo.SortByField[contact.Field]{{Field: field, Ascending: !desc}},
		}
	}

	summaries, total, err := c.groups.ListGroups(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewmodels.PaginatedResponse[viewmodels.GroupSummary]{
		Items: mapping.MapViewModels(summaries, mappers.GroupSummaryToViewModel),
		Total: total,
	})
}

var groupSortFields = map[string]contact.Field{
	"name":      contact.FieldCompanyName,
	"createdAt": contact.FieldCreatedAt,
	"updatedAt": contact.FieldUpdatedAt,
}

func (c *ContactGroupsAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid group id")
		return
	}

	entity, err := c.groups.GetGroupByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.ContactToViewModel(entity))
}

func (c *ContactGroupsAPIController) GetTenantHousehold(w http.ResponseWriter, r *http.Request) {
	entity, err := c.groups.GetTenantHousehold(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.ContactToViewModel(entity))
}

func (c *ContactGroupsAPIController) EnsureTenantHousehold(w http.ResponseWriter, r *http.Request) {
	var dto contact.EnsureTenantHouseholdDTO
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
			return
		}
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	name := dto.Name
	if name == "" {
		name = configuration.Use().DefaultHouseholdName
	}

	entity, err := c.groups.EnsureTenantHousehold(r.Context(), name)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.ContactToViewModel(entity))
}

func (c *ContactGroupsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto contact.CreateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	created, err := c.groups.CreateGroup(r.Context(), &dto)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mappers.ContactToViewModel(created))
}

func (c *ContactGroupsAPIController) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid group id")
		return
	}

	var dto contact.UpdateGroupDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	updated, err := c.groups.UpdateGroup(r.Context(), id, &dto)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.ContactToViewModel(updated))
}

func (c *ContactGroupsAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid group id")
		return
	}

	if err := c.groups.DeleteGroup(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, contact.ErrNotFound):
		writeAPIError(w, r, http.StatusNotFound, "CONTACTS_NOT_FOUND", "contact not found")
	case errors.Is(err, contact.ErrNotGroup):
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_NOT_GROUP", "Contact is not a group")
	case errors.Is(err, contact.ErrTenantHouseholdProtected):
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_HOUSEHOLD_PROTECTED", "Cannot delete the tenant household group")
	case errors.Is(err, contact.ErrGroupMove):
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_GROUP_MOVE", "Cannot move a group contact")
	case errors.Is(err, contact.ErrGroupDelete):
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_GROUP_DELETE", "Cannot delete a group contact through the contact endpoint")
	case errors.Is(err, contact.ErrHouseholdInvariant):
		// A household vanishing mid-cascade is corruption, not a lookup miss.
		writeAPIError(w, r, http.StatusInternalServerError, "CONTACTS_INTERNAL", "internal error")
	case errors.Is(err, contact.ErrNoTenantHousehold):
		writeAPIError(w, r, http.StatusNotFound, "CONTACTS_NO_HOUSEHOLD", "tenant household group does not exist")
	default:
		writeAPIError(w, r, http.StatusInternalServerError, "CONTACTS_INTERNAL", "internal error")
	}
}
