package database

import (
	"time"

	"chirp/internal/observability"

	"gorm.io/gorm"
)

const queryStartKey = "chirp:query_start"

// registerer is the callback registration surface GORM exposes from
// Before/After on each operation processor.
type registerer interface {
	Register(name string, fn func(*gorm.DB)) error
}

// RegisterMetricsCallbacks attaches a latency observation to every GORM
// operation, labeled by operation and table.
func RegisterMetricsCallbacks(db *gorm.DB) error {
	start := func(db *gorm.DB) {
		db.InstanceSet(queryStartKey, time.Now())
	}
	observe := func(operation string) func(*gorm.DB) {
		return func(db *gorm.DB) {
			v, ok := db.InstanceGet(queryStartKey)
			if !ok {
				return
			}
			begin, ok := v.(time.Time)
			if !ok {
				return
			}
			observability.ObserveQuery(operation, db.Statement.Table, begin)
		}
	}

	for _, h := range []struct {
		op            string
		before, after registerer
	}{
		{"create", db.Callback().Create().Before("gorm:create"), db.Callback().Create().After("gorm:create")},
		{"query", db.Callback().Query().Before("gorm:query"), db.Callback().Query().After("gorm:query")},
		{"update", db.Callback().Update().Before("gorm:update"), db.Callback().Update().After("gorm:update")},
		{"delete", db.Callback().Delete().Before("gorm:delete"), db.Callback().Delete().After("gorm:delete")},
		{"row", db.Callback().Row().Before("gorm:row"), db.Callback().Row().After("gorm:row")},
		{"raw", db.Callback().Raw().Before("gorm:raw"), db.Callback().Raw().After("gorm:raw")},
	} {
		if err := h.before.Register("chirp:metrics_before_"+h.op, start); err != nil {
			return err
		}
		if err := h.after.Register("chirp:metrics_after_"+h.op, observe(h.op)); err != nil {
			return err
		}
	}
	return nil
}
