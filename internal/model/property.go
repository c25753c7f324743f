package model

// PropertyType and Availability enumerate the values offered by client
// forms. The API itself stores whatever string it is given; these are not
// enforced server-side.
type PropertyType string

const (
	PropertyTypeResidential PropertyType = "Residential"
	PropertyTypeCommercial  PropertyType = "Commercial"
	PropertyTypeLand        PropertyType = "Land"
)

type Availability string

const (
	AvailabilityAvailable     Availability = "Available"
	AvailabilitySold          Availability = "Sold"
	AvailabilityUnderContract Availability = "Under Contract"
)

// Property represents a real-estate listing. Size and budget are free-text
// columns, not numbers.
type Property struct {
	ID           uint   `json:"id" gorm:"primarykey"`
	Type         string `json:"type" gorm:"type:varchar(50);not null"`
	Size         string `json:"size" gorm:"type:varchar(100);not null"`
	Location     string `json:"location" gorm:"type:varchar(255);not null"`
	Budget       string `json:"budget" gorm:"type:varchar(100);not null"`
	Availability string `json:"availability" gorm:"type:varchar(50);not null"`
}
