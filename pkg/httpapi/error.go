package httpapi

// APIError is the JSON error body returned by all API endpoints.
type APIError struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
	Meta    map[string]string `json:"meta,omitempty"`
}
