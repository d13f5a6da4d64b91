package contact

// Type marks a contact row as a group. Member rows carry no type.
type Type string

const (
	TypeHousehold Type = "Household"
	TypeBusiness  Type = "Business"
)

func (t Type) Valid() bool {
	return t == TypeHousehold || t == TypeBusiness
}

type Gender string

const (
	GenderUnknown Gender = "Unknown"
	GenderMale    Gender = "Male"
	GenderFemale  Gender = "Female"
	GenderOther   Gender = "Other"
)

// DatePrecision qualifies how much of a birth or death date is known.
type DatePrecision string

const (
	PrecisionUnknown   DatePrecision = "Unknown"
	PrecisionYear      DatePrecision = "Year"
	PrecisionYearMonth DatePrecision = "YearMonth"
	PrecisionFull      DatePrecision = "Full"
)

type Visibility string

const (
	VisibilityTenantShared Visibility = "TenantShared"
	VisibilityPrivate      Visibility = "Private"
)
