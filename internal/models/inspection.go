package models

import (
	"time"
)

// Domain values for GAP requirement evaluation. The checklist is evaluated in
// Thai; "ใช่" is the only answer that counts as compliant.
const (
	AnswerCompliant = "ใช่"

	// Requirement levels relevant for scoring. Any other level (such as the
	// advisory tier) is informational only and excluded from scoring.
	LevelPrimary   = "ข้อกำหนดหลัก"
	LevelSecondary = "ข้อกำหนดรอง"
	LevelAdvisory  = "ข้อแนะนำ"
)

// Inspection lifecycle and result values.
const (
	InspectionStatusPending   = "pending"
	InspectionStatusEvaluated = "evaluated"

	InspectionResultPassed = "ผ่าน"
	InspectionResultFailed = "ไม่ผ่าน"
)

// InspectionType classifies an inspection (e.g. first certification,
// surveillance, renewal) and owns the master checklist copied into each
// scheduled inspection.
type InspectionType struct {
	CreatedAt time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at" json:"updatedAt"`
	TypeName  string    `gorm:"size:255;not null;column:type_name" json:"typeName"`
	ID        uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (InspectionType) TableName() string {
	return "inspection_types"
}

// ItemMaster is a checklist section template belonging to one inspection type.
type ItemMaster struct {
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`
	ItemName         string    `gorm:"size:500;not null;column:item_name" json:"itemName"`
	ItemNo           int       `gorm:"not null;column:item_no" json:"itemNo"`
	InspectionTypeID uint      `gorm:"index;not null;column:inspection_type_id" json:"inspectionTypeId"`
	ID               uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (ItemMaster) TableName() string {
	return "item_masters"
}

// RequirementMaster is a checklist requirement template. RequirementLevel is
// one of the Level* constants; only primary and secondary levels score.
type RequirementMaster struct {
	CreatedAt        time.Time `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time `gorm:"column:updated_at" json:"updatedAt"`
	RequirementName  string    `gorm:"type:text;not null;column:requirement_name" json:"requirementName"`
	RequirementLevel string    `gorm:"size:100;not null;column:requirement_level" json:"requirementLevel"`
	RequirementNo    int       `gorm:"not null;column:requirement_no" json:"requirementNo"`
	ItemMasterID     uint      `gorm:"index;not null;column:item_master_id" json:"itemMasterId"`
	ID               uint      `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (RequirementMaster) TableName() string {
	return "requirement_masters"
}

// Inspection is one scheduled GAP audit of a rubber farm. It is created
// pending by the scheduling workflow and becomes evaluated once the lead
// auditor submits the summary; InspectionResult is computed from the
// requirement records, never chosen manually.
type Inspection struct {
	CreatedAt        time.Time       `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt        time.Time       `gorm:"column:updated_at" json:"updatedAt"`
	AppointmentDate  time.Time       `gorm:"not null;column:appointment_date" json:"appointmentDate"`
	InspectionNo     string          `gorm:"size:50;uniqueIndex;not null;column:inspection_no" json:"inspectionNo"`
	InspectionStatus string          `gorm:"size:32;not null;column:inspection_status" json:"inspectionStatus"`
	InspectionResult string          `gorm:"size:32;column:inspection_result" json:"inspectionResult"`
	SummaryComments  string          `gorm:"type:text;column:summary_comments" json:"summaryComments"`
	InspectionType   *InspectionType `gorm:"-" json:"inspectionType,omitempty"`
	RubberFarm       *RubberFarm     `gorm:"-" json:"rubberFarm,omitempty"`
	AuditorIDs       []uint          `gorm:"-" json:"auditorIds,omitempty"`
	RubberFarmID     uint            `gorm:"index;not null;column:rubber_farm_id" json:"rubberFarmId"`
	InspectionTypeID uint            `gorm:"index;not null;column:inspection_type_id" json:"inspectionTypeId"`
	LeadAuditorID    uint            `gorm:"index;not null;column:lead_auditor_id" json:"leadAuditorId"`
	Version          int             `gorm:"not null;default:1;column:version" json:"version"`
	ID               uint            `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (Inspection) TableName() string {
	return "inspections"
}

// InspectionItem is a checklist section instantiated for one inspection.
type InspectionItem struct {
	CreatedAt    time.Time     `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt    time.Time     `gorm:"column:updated_at" json:"updatedAt"`
	ItemName     string        `gorm:"size:500;not null;column:item_name" json:"itemName"`
	Requirements []Requirement `gorm:"-" json:"requirements"`
	ItemNo       int           `gorm:"not null;column:item_no" json:"itemNo"`
	InspectionID uint          `gorm:"index;not null;column:inspection_id" json:"inspectionId"`
	ItemMasterID uint          `gorm:"not null;column:item_master_id" json:"itemMasterId"`
	ID           uint          `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (InspectionItem) TableName() string {
	return "inspection_items"
}

// Requirement is one evaluated checklist entry. EvaluationResult is free
// text written by the auditor; AnswerCompliant is the only value that counts
// as compliant, everything else (including empty) is non-compliant.
type Requirement struct {
	CreatedAt           time.Time          `gorm:"column:created_at" json:"createdAt"`
	UpdatedAt           time.Time          `gorm:"column:updated_at" json:"updatedAt"`
	EvaluationResult    string             `gorm:"size:255;column:evaluation_result" json:"evaluationResult"`
	EvaluationComment   *string            `gorm:"type:text;column:evaluation_comment" json:"evaluationComment,omitempty"`
	RequirementMaster   *RequirementMaster `gorm:"-" json:"requirementMaster,omitempty"`
	InspectionItemID    uint               `gorm:"index;not null;column:inspection_item_id" json:"inspectionItemId"`
	RequirementMasterID uint               `gorm:"not null;column:requirement_master_id" json:"requirementMasterId"`
	ID                  uint               `gorm:"primaryKey" json:"id"`
}

// TableName specifies the table name.
func (Requirement) TableName() string {
	return "requirements"
}
