package controllers

import (
	"encoding/json"
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

type ContactsAPIController struct {
	app      application.Application
	contacts *services.ContactService
	basePath string
}

func NewContactsAPIController(app application.Application) application.Controller {
	return &ContactsAPIController{
		app:      app,
		contacts: app.Service(services.ContactService{}).(*services.ContactService),
		basePath: "/api/contacts",
	}
}

func (c *ContactsAPIController) Key() string {
	return c.basePath
}

func (c *ContactsAPIController) Register(r *mux.Router) {
	commonMiddleware := []mux.MiddlewareFunc{
		middleware.ProvideTenant(),
	}

	router := r.PathPrefix(c.basePath).Subrouter()
	router.Use(commonMiddleware...)
	router.HandleFunc("", c.List).Methods(http.MethodGet)
	router.HandleFunc("/{id}", c.GetByID).Methods(http.MethodGet)

	writeRouter := r.PathPrefix(c.basePath).Subrouter()
	writeRouter.Use(commonMiddleware...)
	writeRouter.Use(middleware.WithTransaction())
	writeRouter.HandleFunc("", c.Create).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}", c.Delete).Methods(http.MethodDelete)
	writeRouter.HandleFunc("/{id}/group", c.MoveToGroup).Methods(http.MethodPut)
	writeRouter.HandleFunc("/{id}/relationships", c.Link).Methods(http.MethodPost)
	writeRouter.HandleFunc("/{id}/relationships", c.Unlink).Methods(http.MethodDelete)
}

func (c *ContactsAPIController) List(w http.ResponseWriter, r *http.Request) {
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

	// Member search by default; isGroup=true flips the switch to group rows.
	isGroup := false
	if v := strings.TrimSpace(r.URL.Query().Get("isGroup")); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_FILTER", "isGroup must be a boolean")
			return
		}
		isGroup = parsed
	}

	params := &contact.FindParams{
		Limit:   limit,
		Offset:  offset,
		Search:  strings.TrimSpace(r.URL.Query().Get("q")),
		IsGroup: &isGroup,
	}

	if v := strings.TrimSpace(r.URL.Query().Get("relatedTo")); v != "" {
		relatedID, err := uuid.Parse(v)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid related contact id")
			return
		}
		params.RelatedToContactID = relatedID
		params.RelationshipType = strings.TrimSpace(r.URL.Query().Get("relationshipType"))
	}

	if v := strings.TrimSpace(r.URL.Query().Get("groupId")); v != "" {
		groupID, err := uuid.Parse(v)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid group id")
			return
		}
		params.Filters = append(params.Filters, contact.Filter{
			Column: contact.FieldParentContactID,
			Filter: repo.Eq(groupID),
		})
	}
	if v := strings.TrimSpace(r.URL.Query().Get("tagId")); v != "" {
		tagID, err := uuid.Parse(v)
		if err != nil {
			writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid tag id")
			return
		}
		params.Filters = append(params.Filters, contact.Filter{
			Column: contact.FieldTagID,
			Filter: repo.Eq(tagID),
		})
	}

	contacts, total, err := c.contacts.GetPaginatedWithTotal(r.Context(), params)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, viewmodels.PaginatedResponse[viewmodels.Contact]{
		Items: mapping.MapViewModels(contacts, mappers.ContactToViewModel),
		Total: total,
	})
}

func (c *ContactsAPIController) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid contact id")
		return
	}

	entity, err := c.contacts.GetByID(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	var address *contact.Address
	if resolved, ok, err := c.contacts.PrimaryAddress(r.Context(), id); err == nil && ok {
		address = &resolved
	}

	writeJSON(w, http.StatusOK, mappers.ContactToDetailViewModel(entity, address))
}

func (c *ContactsAPIController) Create(w http.ResponseWriter, r *http.Request) {
	var dto contact.CreateMemberDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	created, err := c.contacts.CreateMember(r.Context(), &dto)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, mappers.ContactToViewModel(created))
}

func (c *ContactsAPIController) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid contact id")
		return
	}

	if err := c.contacts.Delete(r.Context(), id); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (c *ContactsAPIController) Link(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid contact id")
		return
	}

	var dto contact.LinkContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	if err := c.contacts.LinkContacts(r.Context(), id, &dto); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (c *ContactsAPIController) Unlink(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid contact id")
		return
	}

	var dto contact.LinkContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	if err := c.contacts.UnlinkContacts(r.Context(), id, &dto); err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusNoContent, nil)
}

func (c *ContactsAPIController) MoveToGroup(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid contact id")
		return
	}

	var dto contact.MoveContactDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_JSON", "invalid json")
		return
	}

	if errs, ok := dto.Ok(); !ok {
		writeValidationError(w, r, errs)
		return
	}

	groupID, err := uuid.Parse(dto.GroupID)
	if err != nil {
		writeAPIError(w, r, http.StatusBadRequest, "CONTACTS_INVALID_ID", "invalid group id")
		return
	}

	moved, err := c.contacts.MoveContactToGroup(r.Context(), id, groupID)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, mappers.ContactToViewModel(moved))
}
