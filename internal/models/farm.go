package models

import (
	"time"
)

// RubberFarm is a registered rubber plantation belonging to one farmer.
// Version is the optimistic lock token: incremented server-side on every
// update and required on edit payloads to detect concurrent modification.
type RubberFarm struct {
	CreatedAt       time.Time        `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time        `gorm:"column:updated_at" json:"updatedAt"`
	VillageName     string           `gorm:"size:255;column:village_name" json:"villageName"`
	Road            *string          `gorm:"size:255;column:road" json:"road,omitempty"`
	Alley           *string          `gorm:"size:255;column:alley" json:"alley,omitempty"`
	Province        string           `gorm:"size:255;column:province" json:"province"`
	District        string           `gorm:"size:255;column:district" json:"district"`
	Subdistrict     string           `gorm:"size:255;column:subdistrict" json:"subDistrict"`
	ZipCode         string           `gorm:"size:10;column:zip_code" json:"zipCode"`
	Location        Point            `gorm:"type:geometry(Point,4326);column:location" json:"location"`
	PlantingDetails []PlantingDetail `gorm:"-" json:"plantingDetails,omitempty"`
	Farmer          *Farmer          `gorm:"-" json:"farmer,omitempty"`
	Moo             int              `gorm:"column:moo" json:"moo"`
	FarmerID        uint             `gorm:"index;not null;column:farmer_id" json:"farmerId"`
	Version         int              `gorm:"not null;default:1;column:version" json:"version"`
	ID              uint             `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (RubberFarm) TableName() string {
	return "rubber_farms"
}

// PlantingDetail is one planted plot on a rubber farm: the species planted,
// the plot area in rai and the tree count. A farm submission needs at least
// one complete detail to be accepted.
type PlantingDetail struct {
	CreatedAt       time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updatedAt"`
	Specie          string    `gorm:"size:255;not null;column:specie" json:"specie"`
	AreaOfPlot      float64   `gorm:"not null;column:area_of_plot" json:"areaOfPlot"`
	NumberOfRubber  int       `gorm:"not null;column:number_of_rubber" json:"numberOfRubber"`
	AgeOfRubber     *int      `gorm:"column:age_of_rubber" json:"ageOfRubber,omitempty"`
	YearOfTapping   *string   `gorm:"size:10;column:year_of_tapping" json:"yearOfTapping,omitempty"`
	TotalProduction *float64  `gorm:"column:total_production" json:"totalProduction,omitempty"`
	RubberFarmID    uint      `gorm:"index;not null;column:rubber_farm_id" json:"rubberFarmId"`
	Version         int       `gorm:"not null;default:1;column:version" json:"version"`
	ID              uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (PlantingDetail) TableName() string {
	return "planting_details"
}

// IsComplete reports whether the detail satisfies the minimum the farm
// wizard requires: a species plus positive plot area and tree count.
func (d PlantingDetail) IsComplete() bool {
	return d.Specie != "" && d.AreaOfPlot > 0 && d.NumberOfRubber > 0
}
