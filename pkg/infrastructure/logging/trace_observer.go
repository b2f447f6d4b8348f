package logging

import (
	"github.com/vsinha/bottleplan/pkg/domain/entities"
)

// TraceObserver writes a debug line for every record mutation, showing the
// values before and after the change.
type TraceObserver struct {
	log *Logger
}

func NewTraceObserver(log *Logger) *TraceObserver {
	return &TraceObserver{log: log.Named("record")}
}

// Verify interface compliance
var _ entities.RecordObserver = (*TraceObserver)(nil)

func (o *TraceObserver) RecordCreated(r *entities.MonthlyBottleRecord) {
	o.log.Debug().
		Str("bottle_type", string(r.BottleType())).
		Str("record_id", r.ID().String()).
		Int64("initial_stock", int64(r.InitialStock())).
		Msg("initialized bottle record")
}

func (o *TraceObserver) RequirementsSet(r *entities.MonthlyBottleRecord) {
	requiredEnding, _ := r.RequiredEndingStock()
	requiredCreation, _ := r.RequiredCreation()

	o.log.Debug().
		Str("bottle_type", string(r.BottleType())).
		Int64("required_ending_stock", int64(requiredEnding)).
		Int64("ending_stock", int64(r.EndingStock())).
		Int64("required_creation", int64(requiredCreation)).
		Msg("requirements set")
}

func (o *TraceObserver) BottlesCreated(r *entities.MonthlyBottleRecord, event entities.CreationEvent) {
	e := o.log.Debug().
		Str("bottle_type", string(r.BottleType())).
		Str("channel", event.Channel.String()).
		Int64("quantity", int64(event.Quantity))
	if event.Channel == entities.Produce {
		e = e.Int("days", event.Days)
	}
	e.Int64("creation_before", int64(r.CurrentCreation()-event.Quantity)).
		Int64("creation_after", int64(r.CurrentCreation())).
		Str("cost_before", r.TotalCost().Sub(event.Cost).String()).
		Str("cost_after", r.TotalCost().String()).
		Int64("ending_stock_before", int64(r.EndingStock()-event.Quantity)).
		Int64("ending_stock_after", int64(r.EndingStock())).
		Msg("bottles created")
}

func (o *TraceObserver) RequirementsChecked(r *entities.MonthlyBottleRecord, met bool) {
	requiredEnding, _ := r.RequiredEndingStock()
	requiredCreation, _ := r.RequiredCreation()

	o.log.Debug().
		Str("bottle_type", string(r.BottleType())).
		Bool("met", met).
		Int64("current_creation", int64(r.CurrentCreation())).
		Int64("required_creation", int64(requiredCreation)).
		Int64("ending_stock", int64(r.EndingStock())).
		Int64("required_ending_stock", int64(requiredEnding)).
		Msg("requirements checked")
}
