package errors

import "net/http"

// Code represents an error code with HTTP status and message
type Code struct {
	Code    int    // Business error code
	Status  int    // HTTP status code
	Message string // Error message
}

// Error codes. Forwarding failures reach clients as one generic 500; their
// codes only show up in logs.
const (
	// Common errors (1000-1999)
	ErrInternalServer  = 1000
	ErrInvalidParams   = 1001
	ErrTooManyRequests = 1006

	// Upload errors (2000-2999)
	ErrUploadMissingFile = 2000
	ErrUploadTooLarge    = 2001
	ErrUploadUnreadable  = 2002

	// Upstream errors (3000-3999)
	ErrUpstreamFailed      = 3000
	ErrUpstreamUnreachable = 3001
	ErrUpstreamTimeout     = 3002
	ErrUpstreamStatus      = 3003
	ErrUpstreamBadResponse = 3004
)

var codeMap = map[int]Code{
	ErrInternalServer:  {ErrInternalServer, http.StatusInternalServerError, "Internal server error"},
	ErrInvalidParams:   {ErrInvalidParams, http.StatusBadRequest, "Invalid parameters"},
	ErrTooManyRequests: {ErrTooManyRequests, http.StatusTooManyRequests, "rate limit exceeded"},

	ErrUploadMissingFile: {ErrUploadMissingFile, http.StatusBadRequest, "Missing file field"},
	ErrUploadTooLarge:    {ErrUploadTooLarge, http.StatusRequestEntityTooLarge, "Upload exceeds size limit"},
	ErrUploadUnreadable:  {ErrUploadUnreadable, http.StatusBadRequest, "Upload could not be read"},

	ErrUpstreamFailed:      {ErrUpstreamFailed, http.StatusBadGateway, "Upstream request failed"},
	ErrUpstreamUnreachable: {ErrUpstreamUnreachable, http.StatusBadGateway, "Upstream unreachable"},
	ErrUpstreamTimeout:     {ErrUpstreamTimeout, http.StatusGatewayTimeout, "Upstream timeout"},
	ErrUpstreamStatus:      {ErrUpstreamStatus, http.StatusBadGateway, "Upstream returned an error status"},
	ErrUpstreamBadResponse: {ErrUpstreamBadResponse, http.StatusBadGateway, "Upstream returned an invalid response"},
}

// GetCode returns the Code for a given error code
func GetCode(code int) Code {
	if c, ok := codeMap[code]; ok {
		return c
	}
	return codeMap[ErrInternalServer]
}

// GetHTTPStatus returns HTTP status for a given error code
func GetHTTPStatus(code int) int {
	return GetCode(code).Status
}

// GetMessage returns the message for a given error code
func GetMessage(code int) string {
	return GetCode(code).Message
}

// IsUpstream reports whether the code belongs to the upstream range
func IsUpstream(code int) bool {
	return code >= ErrUpstreamFailed && code < 4000
}
