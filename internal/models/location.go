// Package models holds the gorm models persisted by the discovery pipeline.
package models

import (
	"time"

	"gorm.io/datatypes"
)

// TypeEvent is the discriminator distinguishing discovered events from the
// place records that share the locations table.
const TypeEvent = "event"

// Location is the generic location record the wider product stores places
// and events in. The discovery pipeline only ever reads and writes rows with
// Type == TypeEvent; every other column stays at its default.
type Location struct {
	ID             uint64         `gorm:"primaryKey;autoIncrement"`
	Name           string         `gorm:"type:text;not null"`
	Type           string         `gorm:"type:varchar(20);not null;default:'place';index"`
	EventStartDate *time.Time     `gorm:"type:timestamptz;index"`
	EventEndDate   *time.Time     `gorm:"type:timestamptz"`
	ImageURL       string         `gorm:"type:text"`
	TicketURL      string         `gorm:"type:text"`
	Address        string         `gorm:"type:text"`
	City           string         `gorm:"type:text;not null;index"`
	State          string         `gorm:"type:varchar(2);not null"`
	Lat            float64        `gorm:"not null"`
	Lng            float64        `gorm:"not null"`
	// SourceID is the provider-prefixed stable key; unique so concurrent
	// discovery runs cannot double-insert the same event.
	SourceID    *string        `gorm:"type:text;uniqueIndex"`
	Description string         `gorm:"type:text"`
	Metadata    datatypes.JSON `gorm:"type:jsonb"`
	IsActive    bool           `gorm:"not null;default:true;index"`
	CreatedAt   time.Time      `gorm:"type:timestamptz;not null"`
	UpdatedAt   time.Time      `gorm:"type:timestamptz;not null"`
}

func (Location) TableName() string {
	return "locations"
}
