package entities

// ObserverSet fans notifications out to several observers in order
type ObserverSet []RecordObserver

// Verify interface compliance
var _ RecordObserver = ObserverSet(nil)

func (s ObserverSet) RecordCreated(r *MonthlyBottleRecord) {
	for _, o := range s {
		o.RecordCreated(r)
	}
}

func (s ObserverSet) RequirementsSet(r *MonthlyBottleRecord) {
	for _, o := range s {
		o.RequirementsSet(r)
	}
}

func (s ObserverSet) BottlesCreated(r *MonthlyBottleRecord, event CreationEvent) {
	for _, o := range s {
		o.BottlesCreated(r, event)
	}
}

func (s ObserverSet) RequirementsChecked(r *MonthlyBottleRecord, met bool) {
	for _, o := range s {
		o.RequirementsChecked(r, met)
	}
}
