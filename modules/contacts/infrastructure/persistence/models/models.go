package models

import (
	"database/sql"
	"time"
)

type Contact struct {
	ID                string
	TenantID          string
	FirstName         sql.NullString
	MiddleName        sql.NullString
	LastName          sql.NullString
	PreferredName     sql.NullString
	Title             sql.NullString
	Gender            string
	BirthDate         sql.NullTime
	BirthDatePrec     string
	DeathDate         sql.NullTime
	DeathDatePrec     string
	Notes             sql.NullString
	CompanyName       sql.NullString
	ContactType       sql.NullString
	IsTenantHousehold bool
	UsesGroupAddress  bool
	UsesTenantAddress bool
	Website           sql.NullString
	BusinessCategory  sql.NullString
	ParentContactID   sql.NullString
	Visibility        string
	IsActive          bool
	LinkedUserID      sql.NullString
	CreatedByUserID   sql.NullString
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type Tag struct {
	ID        string
	TenantID  string
	Name      string
	Color     sql.NullString
	CreatedAt time.Time
}

type ContactTag struct {
	ContactID string
	TagID     string
}
