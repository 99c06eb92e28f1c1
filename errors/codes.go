package errors

// ErrorCode identifies an application error in API responses
type ErrorCode int32

const (
	ErrorCode_UNSPECIFIED                   ErrorCode = 0
	ErrorCode_HTTP_OK                       ErrorCode = 200
	ErrorCode_INTERNAL                      ErrorCode = 1000
	ErrorCode_INVALID_PAYLOAD               ErrorCode = 1001
	ErrorCode_NOT_FOUND                     ErrorCode = 1002
	ErrorCode_RATE_LIMITED                  ErrorCode = 1003
	ErrorCode_UNAUTHORIZED                  ErrorCode = 1004
	ErrorCode_FORBIDDEN                     ErrorCode = 1005
	ErrorCode_UPSTREAM_COMMUNICATION_FAILED ErrorCode = 2000
	ErrorCode_UPSTREAM_INVALID_OUTPUT       ErrorCode = 2001
	ErrorCode_CACHE_FAILED                  ErrorCode = 3000
)

var errorCodeNames = map[ErrorCode]string{
	ErrorCode_UNSPECIFIED:                   "UNSPECIFIED",
	ErrorCode_HTTP_OK:                       "HTTP_OK",
	ErrorCode_INTERNAL:                      "INTERNAL",
	ErrorCode_INVALID_PAYLOAD:               "INVALID_PAYLOAD",
	ErrorCode_NOT_FOUND:                     "NOT_FOUND",
	ErrorCode_RATE_LIMITED:                  "RATE_LIMITED",
	ErrorCode_UNAUTHORIZED:                  "UNAUTHORIZED",
	ErrorCode_FORBIDDEN:                     "FORBIDDEN",
	ErrorCode_UPSTREAM_COMMUNICATION_FAILED: "UPSTREAM_COMMUNICATION_FAILED",
	ErrorCode_UPSTREAM_INVALID_OUTPUT:       "UPSTREAM_INVALID_OUTPUT",
	ErrorCode_CACHE_FAILED:                  "CACHE_FAILED",
}

func (c ErrorCode) String() string {
	if name, ok := errorCodeNames[c]; ok {
		return name
	}
	return "UNSPECIFIED"
}

// MarshalText renders the code by name in JSON bodies
func (c ErrorCode) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}
