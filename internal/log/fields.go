package log

// Common field names for structured logging
const (
	FieldComponent  = "component"
	FieldRequestID  = "request_id"
	FieldClientIP   = "client_ip"
	FieldMethod     = "method"
	FieldPath       = "path"
	FieldQuery      = "query"
	FieldStatusCode = "status_code"
	FieldDuration   = "duration_ms"
	FieldUserAgent  = "user_agent"
	FieldSuccess    = "success"
	FieldError      = "error"
	FieldOperation  = "operation"

	FieldTransactionID = "transaction_id"
	FieldKind          = "type"
	FieldCategory      = "category"
	FieldAmount        = "amount"
	FieldDate          = "date"
	FieldDateFrom      = "date_from"
	FieldDateTo        = "date_to"
	FieldMonth         = "month"
)

const (
	ComponentApp     = "app"
	ComponentHTTP    = "http"
	ComponentReport  = "report"
	ComponentStorage = "storage"
	ComponentAMQP    = "amqp"
	ComponentWorker  = "worker"
	ComponentSheets  = "sheets"
)

const (
	OpCreate   = "create"
	OpUpdate   = "update"
	OpDelete   = "delete"
	OpReport   = "report"
	OpSync     = "sync"
	OpRender   = "render"
	OpShutdown = "shutdown"
)

// LogFields is a builder for structured log attributes.
type LogFields map[string]any

func NewFields() LogFields {
	return make(LogFields)
}

func (f LogFields) WithComponent(component string) LogFields {
	f[FieldComponent] = component
	return f
}

func (f LogFields) WithRequestID(requestID string) LogFields {
	if requestID != "" {
		f[FieldRequestID] = requestID
	}
	return f
}

func (f LogFields) WithClientIP(ip string) LogFields {
	f[FieldClientIP] = ip
	return f
}

func (f LogFields) WithError(err error) LogFields {
	if err != nil {
		f[FieldError] = err.Error()
	}
	return f
}

func (f LogFields) WithOperation(op string) LogFields {
	f[FieldOperation] = op
	return f
}

// WithTransaction adds the identifying fields of a transaction.
func (f LogFields) WithTransaction(id int64, kind, category, amount, date string) LogFields {
	if id > 0 {
		f[FieldTransactionID] = id
	}
	f[FieldKind] = kind
	f[FieldCategory] = category
	f[FieldAmount] = amount
	f[FieldDate] = date
	return f
}

// WithReportParams adds the dashboard query, skipping empty values.
func (f LogFields) WithReportParams(dateFrom, dateTo, category, month string) LogFields {
	for k, v := range map[string]string{
		FieldDateFrom: dateFrom,
		FieldDateTo:   dateTo,
		FieldCategory: category,
		FieldMonth:    month,
	} {
		if v != "" {
			f[k] = v
		}
	}
	return f
}

func (f LogFields) WithHTTPRequest(method, path, query, userAgent string) LogFields {
	f[FieldMethod] = method
	f[FieldPath] = path
	if query != "" {
		f[FieldQuery] = query
	}
	if userAgent != "" {
		f[FieldUserAgent] = userAgent
	}
	return f
}

func (f LogFields) WithHTTPResponse(statusCode int, durationMs int64) LogFields {
	f[FieldStatusCode] = statusCode
	f[FieldDuration] = durationMs
	f[FieldSuccess] = statusCode < 400
	return f
}

// ToSlice flattens the fields into slog key/value pairs.
func (f LogFields) ToSlice() []any {
	slice := make([]any, 0, len(f)*2)
	for k, v := range f {
		slice = append(slice, k, v)
	}
	return slice
}
