package persistence

import (
	"database/sql"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/homewardhq/homeward/modules/contacts/domain/aggregates/contact"
	"github.com/homewardhq/homeward/modules/contacts/domain/entities/tag"
	"github.com/homewardhq/homeward/modules/contacts/infrastructure/persistence/models"
	"github.com/homewardhq/homeward/pkg/mapping"
)

func ToDomainContact(dbRow *models.Contact, tagIDs []uuid.UUID) (contact.Contact, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "invalid contact id")
	}
	tenantID, err := uuid.Parse(dbRow.TenantID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "invalid tenant id")
	}

	parentID, err := parseNullUUID(dbRow.ParentContactID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "invalid parent contact id")
	}
	linkedUserID, err := parseNullUUID(dbRow.LinkedUserID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "invalid linked user id")
	}
	createdByID, err := parseNullUUID(dbRow.CreatedByUserID)
	if err != nil {
		return contact.Contact{}, errors.Wrap(err, "invalid created by user id")
	}

	return contact.Hydrate(
		id, tenantID,
		dbRow.FirstName.String,
		dbRow.MiddleName.String,
		dbRow.LastName.String,
		dbRow.PreferredName.String,
		dbRow.Title.String,
		contact.Gender(dbRow.Gender),
		nullTimePtr(dbRow.BirthDate), contact.DatePrecision(dbRow.BirthDatePrec),
		nullTimePtr(dbRow.DeathDate), contact.DatePrecision(dbRow.DeathDatePrec),
		dbRow.Notes.String,
		dbRow.CompanyName.String,
		contact.Type(dbRow.ContactType.String),
		dbRow.IsTenantHousehold,
		dbRow.UsesGroupAddress, dbRow.UsesTenantAddress,
		dbRow.Website.String, dbRow.BusinessCategory.String,
		parentID,
		contact.Visibility(dbRow.Visibility), dbRow.IsActive,
		linkedUserID, createdByID,
		dbRow.CreatedAt, dbRow.UpdatedAt,
		tagIDs,
	), nil
}

func ToDBContact(entity contact.Contact) *models.Contact {
	return &models.Contact{
		ID:                entity.ID().String(),
		TenantID:          entity.TenantID().String(),
		FirstName:         mapping.ValueToSQLNullString(entity.FirstName()),
		MiddleName:        mapping.ValueToSQLNullString(entity.MiddleName()),
		LastName:          mapping.ValueToSQLNullString(entity.LastName()),
		PreferredName:     mapping.ValueToSQLNullString(entity.PreferredName()),
		Title:             mapping.ValueToSQLNullString(entity.Title()),
		Gender:            string(entity.Gender()),
		BirthDate:         mapping.PointerToSQLNullTime(entity.BirthDate()),
		BirthDatePrec:     string(entity.BirthPrec()),
		DeathDate:         mapping.PointerToSQLNullTime(entity.DeathDate()),
		DeathDatePrec:     string(entity.DeathPrec()),
		Notes:             mapping.ValueToSQLNullString(entity.Notes()),
		CompanyName:       mapping.ValueToSQLNullString(entity.CompanyName()),
		ContactType:       mapping.ValueToSQLNullString(string(entity.ContactType())),
		IsTenantHousehold: entity.IsTenantHousehold(),
		UsesGroupAddress:  entity.UsesGroupAddress(),
		UsesTenantAddress: entity.UsesTenantAddress(),
		Website:           mapping.ValueToSQLNullString(entity.Website()),
		BusinessCategory:  mapping.ValueToSQLNullString(entity.BusinessCategory()),
		ParentContactID:   uuidToNullString(entity.ParentContactID()),
		Visibility:        string(entity.Visibility()),
		IsActive:          entity.IsActive(),
		LinkedUserID:      uuidToNullString(entity.LinkedUserID()),
		CreatedByUserID:   uuidToNullString(entity.CreatedByUserID()),
		CreatedAt:         entity.CreatedAt(),
		UpdatedAt:         entity.UpdatedAt(),
	}
}

func ToDomainTag(dbRow *models.Tag) (tag.Tag, error) {
	id, err := uuid.Parse(dbRow.ID)
	if err != nil {
		return tag.Tag{}, errors.Wrap(err, "invalid tag id")
	}
	tenantID, err := uuid.Parse(dbRow.TenantID)
	if err != nil {
		return tag.Tag{}, errors.Wrap(err, "invalid tenant id")
	}
	return tag.Hydrate(id, tenantID, dbRow.Name, dbRow.Color.String, dbRow.CreatedAt), nil
}

func ToDBTag(entity tag.Tag) *models.Tag {
	return &models.Tag{
		ID:        entity.ID().String(),
		TenantID:  entity.TenantID().String(),
		Name:      entity.Name(),
		Color:     mapping.ValueToSQLNullString(entity.Color()),
		CreatedAt: entity.CreatedAt(),
	}
}

func parseNullUUID(v sql.NullString) (uuid.UUID, error) {
	if !v.Valid || v.String == "" {
		return uuid.Nil, nil
	}
	return uuid.Parse(v.String)
}

func uuidToNullString(id uuid.UUID) sql.NullString {
	if id == uuid.Nil {
		return sql.NullString{}
	}
	return sql.NullString{String: id.String(), Valid: true}
}

func nullTimePtr(v sql.NullTime) *time.Time {
	if !v.Valid {
		return nil
	}
	t := v.Time
	return &t
}
