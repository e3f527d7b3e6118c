package transport

// Envelope wraps every response of the ops endpoint.
type Envelope struct {
	Status string      `json:"status"`
	Code   string      `json:"code,omitempty"`
	Data   interface{} `json:"data,omitempty"`
	Error  string      `json:"error,omitempty"`
}

// NewSuccess returns a success envelope around the payload.
func NewSuccess(data interface{}) Envelope {
	return Envelope{
		Status: "success",
		Data:   data,
	}
}

// NewError returns an error envelope. Data carries any diagnostic detail
// worth returning alongside the message, such as per-service health.
func NewError(code, message string, data interface{}) Envelope {
	return Envelope{
		Status: "error",
		Code:   code,
		Error:  message,
		Data:   data,
	}
}
