package robotstate

type computeOptions struct {
	publishTime int64
}

// ComputeOption configures a single Compute call.
type ComputeOption func(*computeOptions)

// WithPublishTime stamps every record with the given time in nanoseconds. Without it records
// carry a zero stamp.
func WithPublishTime(nanos int64) ComputeOption {
	return func(co *computeOptions) {
		co.publishTime = nanos
	}
}
