package models

import (
	"time"
)

// Farmer holds the registered farmer profile. Address levels are stored as
// names (not foreign keys into the static reference dataset), matching the
// upstream records; prefill flows resolve them back by name matching.
type Farmer struct {
	CreatedAt   time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt   time.Time `gorm:"column:updated_at" json:"updatedAt"`
	NamePrefix  string    `gorm:"size:50;column:name_prefix" json:"namePrefix"`
	FirstName   string    `gorm:"size:255;not null;column:first_name" json:"firstName"`
	LastName    string    `gorm:"size:255;not null;column:last_name" json:"lastName"`
	Email       string    `gorm:"size:255;uniqueIndex;not null;column:email" json:"email"`
	CitizenID   string    `gorm:"size:13;uniqueIndex;not null;column:citizen_id" json:"identificationNumber"`
	HouseNo     string    `gorm:"size:50;column:house_no" json:"houseNo"`
	Road        *string   `gorm:"size:255;column:road" json:"road,omitempty"`
	Alley       *string   `gorm:"size:255;column:alley" json:"alley,omitempty"`
	Province    string    `gorm:"size:255;column:province" json:"province"`
	District    string    `gorm:"size:255;column:district" json:"district"`
	Subdistrict string    `gorm:"size:255;column:subdistrict" json:"subDistrict"`
	ZipCode     string    `gorm:"size:10;column:zip_code" json:"zipCode"`
	Mobile      string    `gorm:"size:10;not null;column:mobile" json:"mobilePhoneNumber"`
	Phone       *string   `gorm:"size:10;column:phone" json:"phoneNumber,omitempty"`
	Moo         int       `gorm:"column:moo" json:"moo"`
	UserID      uint      `gorm:"uniqueIndex;not null;column:user_id" json:"userId"`
	ID          uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (Farmer) TableName() string {
	return "farmers"
}
