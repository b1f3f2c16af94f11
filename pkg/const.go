package pkg

const (
	HeaderTraceId       string = "X-Trace-Id"
	HeaderAuthorization string = "Authorization"
)

const (
	TraceId string = "trace_id"
)
