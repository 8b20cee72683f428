package repository

// MetricsRepository records counters about what a run did.
type MetricsRepository interface {
	ObserveUpload(kind, outcome string)
	ObserveLifecycle(action string)
	ObserveRecord(validation string)
	Flush(path string) error
}
