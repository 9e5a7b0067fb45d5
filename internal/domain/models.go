// Package domain defines the persistence models for the real-estate back
// office: properties, leads, visit slots, the assistant configuration and
// admin users. These types are mapped with GORM and form the core data layer
// of the application.
package domain

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// PropertyStatus is the commercial state of a listing.
type PropertyStatus string

const (
	PropertyAvailable PropertyStatus = "AVAILABLE"
	PropertySold      PropertyStatus = "SOLD"
	PropertyRented    PropertyStatus = "RENTED"
	PropertyReserved  PropertyStatus = "RESERVED"
)

// InterestLevel classifies how close a lead is to buying.
type InterestLevel string

const (
	InterestCold      InterestLevel = "COLD"
	InterestWarm      InterestLevel = "WARM"
	InterestHot       InterestLevel = "HOT"
	InterestScheduled InterestLevel = "SCHEDULED"
)

// ParseInterestLevel maps free-form agent input onto the enum,
// case-insensitively. Unknown values return ok=false and are ignored by
// callers, never rejected: the agent is allowed to invent classifications.
func ParseInterestLevel(s string) (InterestLevel, bool) {
	switch InterestLevel(strings.ToUpper(strings.TrimSpace(s))) {
	case InterestCold:
		return InterestCold, true
	case InterestWarm:
		return InterestWarm, true
	case InterestHot:
		return InterestHot, true
	case InterestScheduled:
		return InterestScheduled, true
	}
	return "", false
}

// SlotStatus is the booking state of a visit slot.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "AVAILABLE"
	SlotBooked    SlotStatus = "BOOKED"
)

// Role is the access level of an admin user.
type Role string

// RoleAdmin is the only role the back office currently provisions.
const RoleAdmin Role = "ADMIN"

// StringList is a []string stored as a JSON text column. SQLite has no native
// array type, so image URLs and feature tags are serialized on write and
// parsed on read.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*l = nil
		return nil
	case string:
		if v == "" {
			*l = nil
			return nil
		}
		return json.Unmarshal([]byte(v), (*[]string)(l))
	case []byte:
		if len(v) == 0 {
			*l = nil
			return nil
		}
		return json.Unmarshal(v, (*[]string)(l))
	}
	return errors.New("StringList: unsupported column type")
}

// GormDataType tells GORM to create a text column for StringList.
func (StringList) GormDataType() string { return "text" }

// Property is a listing managed by the admin and served to the assistant.
//
// Description is the public text; AIContext is private persuasion material
// that never leaves the admin surface except concatenated into the agent's
// catalog projection. Properties are hard-deleted.
type Property struct {
	ID          string         `json:"id"          gorm:"type:char(36);primaryKey"`
	Title       string         `json:"title"       gorm:"type:varchar(255);not null"`
	Description string         `json:"description" gorm:"type:text;not null"`
	AIContext   string         `json:"aiContext"   gorm:"column:ai_context;type:text"`
	Location    string         `json:"location"    gorm:"type:varchar(255);not null"`
	Price       float64        `json:"price"       gorm:"not null;check:price >= 0"`
	Images      StringList     `json:"images"      gorm:"type:text"`
	Features    StringList     `json:"features"    gorm:"type:text"`
	Status      PropertyStatus `json:"status"      gorm:"type:varchar(16);not null;default:'AVAILABLE'"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// TableName returns the database table name for Property.
func (Property) TableName() string { return "properties" }

// Lead is a prospective customer, uniquely identified by phone number. All
// inbound contact (customer or agent) is upserted onto this row; LastContact
// is refreshed on every touch.
type Lead struct {
	ID          string        `json:"id"            gorm:"type:char(36);primaryKey"`
	Phone       string        `json:"phone"         gorm:"type:varchar(32);not null;uniqueIndex:ux_leads_phone"`
	Name        *string       `json:"name"          gorm:"type:varchar(255)"`
	Interest    InterestLevel `json:"interestLevel" gorm:"column:interest_level;type:varchar(16);not null;default:'COLD'"`
	Notes       string        `json:"notes"         gorm:"type:text"`
	LastContact time.Time     `json:"lastContact"   gorm:"not null"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

// TableName returns the database table name for Lead.
func (Lead) TableName() string { return "leads" }

// DisplayName returns the lead name or an empty string when unset.
func (l Lead) DisplayName() string {
	if l.Name == nil {
		return ""
	}
	return *l.Name
}

// VisitSlot is a bookable viewing time defined by the admin. Invariant:
// Status == AVAILABLE implies LeadID is nil; Status == BOOKED implies LeadID
// is set, and the AVAILABLE→BOOKED transition happens exactly once.
type VisitSlot struct {
	ID        string     `json:"id"     gorm:"type:char(36);primaryKey"`
	Date      time.Time  `json:"date"   gorm:"not null;index:idx_slots_date"`
	Status    SlotStatus `json:"status" gorm:"type:varchar(16);not null;default:'AVAILABLE'"`
	LeadID    *string    `json:"leadId" gorm:"type:char(36);index"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`

	// Lead is a lookup relation, not ownership: deleting a lead with booked
	// slots is blocked at the service layer, and RESTRICT backs that up.
	Lead *Lead `json:"lead,omitempty" gorm:"foreignKey:LeadID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
}

// TableName returns the database table name for VisitSlot.
func (VisitSlot) TableName() string { return "visit_slots" }

// LiaConfigID is the fixed primary key of the singleton assistant config row.
const LiaConfigID = "default"

// LiaConfig is the singleton configuration of the external chat assistant:
// the system prompt it runs with and a kill switch. It is created on first
// save and only ever updated afterwards.
type LiaConfig struct {
	ID           string    `json:"id"           gorm:"type:varchar(32);primaryKey"`
	SystemPrompt string    `json:"systemPrompt" gorm:"type:text;not null"`
	// No column default: a `default` tag would make GORM omit false from
	// inserts, silently re-enabling the assistant. Every write supplies the
	// value explicitly.
	IsActive bool `json:"isActive" gorm:"not null"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName returns the database table name for LiaConfig.
func (LiaConfig) TableName() string { return "lia_config" }

// User is an admin account. Rows are created by the seeding step and read
// during login; nothing else mutates them.
type User struct {
	ID        string    `json:"id"    gorm:"type:char(36);primaryKey"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null;uniqueIndex:ux_users_email"`
	Password  string    `json:"-"     gorm:"type:varchar(255);not null"`
	Name      string    `json:"name"  gorm:"type:varchar(255);not null"`
	Role      Role      `json:"role"  gorm:"type:varchar(16);not null;default:'ADMIN'"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// String implements fmt.Stringer without leaking the password hash.
func (u User) String() string {
	return fmt.Sprintf("User(%s %s %s)", u.ID, u.Email, u.Role)
}
