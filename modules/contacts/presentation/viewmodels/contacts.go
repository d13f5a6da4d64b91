package viewmodels

type Contact struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName,omitempty"`
	MiddleName        string `json:"middleName,omitempty"`
	LastName          string `json:"lastName,omitempty"`
	PreferredName     string `json:"preferredName,omitempty"`
	DisplayName       string `json:"displayName"`
	Notes             string `json:"notes,omitempty"`
	CompanyName       string `json:"companyName,omitempty"`
	ContactType       string `json:"contactType,omitempty"`
	IsGroup           bool   `json:"isGroup"`
	IsTenantHousehold bool   `json:"isTenantHousehold"`
	UsesGroupAddress  bool   `json:"usesGroupAddress"`
	Website           string `json:"website,omitempty"`
	BusinessCategory  string `json:"businessCategory,omitempty"`
	GroupID           string `json:"groupId,omitempty"`
	IsActive          bool   `json:"isActive"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
}

type Address struct {
	Line1      string `json:"line1,omitempty"`
	Line2      string `json:"line2,omitempty"`
	City       string `json:"city,omitempty"`
	Region     string `json:"region,omitempty"`
	PostalCode string `json:"postalCode,omitempty"`
	Country    string `json:"country,omitempty"`
}

type ContactDetail struct {
	Contact
	PrimaryAddress *Address `json:"primaryAddress,omitempty"`
}

type GroupSummary struct {
	Contact
	MemberCount int      `json:"memberCount"`
	TagNames    []string `json:"tagNames"`
	TagColors   []string `json:"tagColors"`
}

type PaginatedResponse[T any] struct {
	Items []T   `json:"items"`
	Total int64 `json:"total"`
}
