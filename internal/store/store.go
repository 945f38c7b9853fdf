// Package store reconciles deduplicated candidate events against the
// locations table: update the existing row matching the candidate's source
// key, or insert a new one. Records are never deactivated here; a past event
// keeps is_active until something outside this pipeline decides otherwise.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/luvbee/event-spider/internal/event"
	"github.com/luvbee/event-spider/internal/geo"
	"github.com/luvbee/event-spider/internal/models"
)

// Action reports which reconciliation path a candidate took.
type Action string

const (
	ActionInserted Action = "inserted"
	ActionUpdated  Action = "updated"
)

// Store is the upsert-by-source-key contract the orchestrator depends on.
type Store interface {
	Upsert(ctx context.Context, c event.Candidate) (Action, error)
}

// Writer is the gorm-backed Store. The centroid table is injected so tests
// can substitute a minimal one.
type Writer struct {
	db        *gorm.DB
	centroids geo.Table
}

func NewWriter(db *gorm.DB, centroids geo.Table) *Writer {
	return &Writer{db: db, centroids: centroids}
}

var _ Store = (*Writer)(nil)

// Upsert looks up an existing record by source key and overwrites its mutable
// fields, or inserts a new record. The lookup-then-write pair is not wrapped
// in a transaction; the unique index on source_id is what stops overlapping
// runs from double-inserting.
func (w *Writer) Upsert(ctx context.Context, c event.Candidate) (Action, error) {
	var existing models.Location
	err := w.db.WithContext(ctx).
		Where("source_id = ? AND type = ?", c.SourceKey, models.TypeEvent).
		First(&existing).Error

	switch {
	case err == nil:
		w.apply(&existing, c)
		if err := w.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return "", fmt.Errorf("updating %s: %w", c.SourceKey, err)
		}
		return ActionUpdated, nil

	case errors.Is(err, gorm.ErrRecordNotFound):
		var loc models.Location
		sourceID := c.SourceKey
		loc.SourceID = &sourceID
		w.apply(&loc, c)
		if err := w.db.WithContext(ctx).Create(&loc).Error; err != nil {
			return "", fmt.Errorf("inserting %s: %w", c.SourceKey, err)
		}
		return ActionInserted, nil

	default:
		return "", fmt.Errorf("looking up %s: %w", c.SourceKey, err)
	}
}

// apply overwrites the mutable fields of a location row from a candidate,
// attaching city-centroid coordinates when the provider supplied none.
func (w *Writer) apply(loc *models.Location, c event.Candidate) {
	loc.Name = c.Name
	loc.Type = models.TypeEvent
	start := c.StartTime
	loc.EventStartDate = &start
	loc.EventEndDate = c.EndTime
	loc.ImageURL = c.ImageURL
	loc.TicketURL = c.TicketURL
	loc.City = c.City
	loc.State = c.State
	loc.Description = c.Description
	loc.IsActive = true

	loc.Address = c.Address
	if loc.Address == "" {
		loc.Address = c.City + ", " + c.State
	}

	if c.Lat != nil && c.Lng != nil {
		loc.Lat = *c.Lat
		loc.Lng = *c.Lng
	} else {
		center := w.centroids.Lookup(c.City)
		loc.Lat = center.Lat
		loc.Lng = center.Lng
	}

	if c.Metadata != nil {
		if raw, err := json.Marshal(c.Metadata); err == nil {
			loc.Metadata = datatypes.JSON(raw)
		}
	}
}
