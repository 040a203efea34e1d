package ports

type CareMetrics interface {
	RecordSuccess(action string)
	RecordRejected(action string)
	RecordFailure(action string)
}
