package context

type Key string

const (
	RequestID Key = "request_id"
)
