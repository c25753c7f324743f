package model

// Lead represents a prospective client record
type Lead struct {
	ID          uint   `json:"id" gorm:"primarykey"`
	Name        string `json:"name" gorm:"type:varchar(255);not null"`
	PhoneNumber string `json:"phone_number" gorm:"type:varchar(50);not null"`
}
