package errors

import (
	"net/http"
	"strings"
)

// ErrorCode is a string representation of a specific error condition.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal           ErrorCode = "COMMON_001"
	ErrCodeBadRequest         ErrorCode = "COMMON_002"
	ErrCodeUnauthorized       ErrorCode = "COMMON_003"
	ErrCodeForbidden          ErrorCode = "COMMON_004"
	ErrCodeNotFound           ErrorCode = "COMMON_005"
	ErrCodeConflict           ErrorCode = "COMMON_006"
	ErrCodeTooManyRequests    ErrorCode = "COMMON_007"
	ErrCodeServiceUnavailable ErrorCode = "COMMON_008"
	ErrCodeTimeout            ErrorCode = "COMMON_009"
	ErrCodeValidation         ErrorCode = "COMMON_010"
	ErrCodeSerialization      ErrorCode = "COMMON_011"
	ErrCodeDatabaseError      ErrorCode = "COMMON_012"
	ErrCodeCacheError         ErrorCode = "COMMON_013"
	ErrCodeExternalService    ErrorCode = "COMMON_014"
)

// Laudo module error codes.
const (
	ErrCodeLaudoNotFound      ErrorCode = "LAUDO_001"
	ErrCodeTestNotFound       ErrorCode = "LAUDO_002"
	ErrCodeEmptyTestBatch     ErrorCode = "LAUDO_003"
	ErrCodeCodeAssignFailed   ErrorCode = "LAUDO_004"
	ErrCodeLaudoDeleteFailed  ErrorCode = "LAUDO_005"
	ErrCodeDocumentNotFound   ErrorCode = "LAUDO_006"
	ErrCodeDocumentTooLarge   ErrorCode = "LAUDO_007"
	ErrCodeDocumentStoreError ErrorCode = "LAUDO_008"
)

// Specification module error codes.
const (
	ErrCodeModelNotFound   ErrorCode = "SPEC_001"
	ErrCodeRuleSetNotFound ErrorCode = "SPEC_002"
	ErrCodeRuleInvalid     ErrorCode = "SPEC_003"
)

// Material module error codes.
const (
	ErrCodeMaterialNotFound ErrorCode = "MAT_001"
	ErrCodeMaterialConflict ErrorCode = "MAT_002"
)

// Short aliases used throughout the codebase.
const (
	CodeInternal      = ErrCodeInternal
	CodeInvalidParam  = ErrCodeBadRequest
	CodeUnauthorized  = ErrCodeUnauthorized
	CodeForbidden     = ErrCodeForbidden
	CodeNotFound      = ErrCodeNotFound
	CodeConflict      = ErrCodeConflict
	CodeValidation    = ErrCodeValidation
	CodeSerialization = ErrCodeSerialization
	CodeDatabaseError = ErrCodeDatabaseError
	CodeCacheError    = ErrCodeCacheError
	CodeStorageError  = ErrCodeExternalService
	CodeUnknown       = ErrorCode("UNKNOWN")
	CodeOK            = ErrorCode("OK")

	CodeLaudoNotFound    = ErrCodeLaudoNotFound
	CodeTestNotFound     = ErrCodeTestNotFound
	CodeEmptyTestBatch   = ErrCodeEmptyTestBatch
	CodeModelNotFound    = ErrCodeModelNotFound
	CodeMaterialNotFound = ErrCodeMaterialNotFound
)

// ErrorCodeHTTPStatus maps ErrorCodes to HTTP status codes.
var ErrorCodeHTTPStatus = map[ErrorCode]int{
	ErrCodeInternal:           http.StatusInternalServerError,
	ErrCodeBadRequest:         http.StatusBadRequest,
	ErrCodeUnauthorized:       http.StatusUnauthorized,
	ErrCodeForbidden:          http.StatusForbidden,
	ErrCodeNotFound:           http.StatusNotFound,
	ErrCodeConflict:           http.StatusConflict,
	ErrCodeTooManyRequests:    http.StatusTooManyRequests,
	ErrCodeServiceUnavailable: http.StatusServiceUnavailable,
	ErrCodeTimeout:            http.StatusGatewayTimeout,
	ErrCodeValidation:         http.StatusUnprocessableEntity,
	ErrCodeSerialization:      http.StatusInternalServerError,
	ErrCodeDatabaseError:      http.StatusInternalServerError,
	ErrCodeCacheError:         http.StatusInternalServerError,
	ErrCodeExternalService:    http.StatusInternalServerError,

	ErrCodeLaudoNotFound:      http.StatusNotFound,
	ErrCodeTestNotFound:       http.StatusNotFound,
	ErrCodeEmptyTestBatch:     http.StatusUnprocessableEntity,
	ErrCodeCodeAssignFailed:   http.StatusInternalServerError,
	ErrCodeLaudoDeleteFailed:  http.StatusInternalServerError,
	ErrCodeDocumentNotFound:   http.StatusNotFound,
	ErrCodeDocumentTooLarge:   http.StatusRequestEntityTooLarge,
	ErrCodeDocumentStoreError: http.StatusInternalServerError,

	ErrCodeModelNotFound:   http.StatusNotFound,
	ErrCodeRuleSetNotFound: http.StatusNotFound,
	ErrCodeRuleInvalid:     http.StatusBadRequest,

	ErrCodeMaterialNotFound: http.StatusNotFound,
	ErrCodeMaterialConflict: http.StatusConflict,
}

// ErrorCodeMessage maps ErrorCodes to default messages.
var ErrorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:           "internal server error",
	ErrCodeBadRequest:         "bad request",
	ErrCodeUnauthorized:       "unauthorized",
	ErrCodeForbidden:          "forbidden",
	ErrCodeNotFound:           "resource not found",
	ErrCodeConflict:           "resource conflict",
	ErrCodeTooManyRequests:    "too many requests",
	ErrCodeServiceUnavailable: "service unavailable",
	ErrCodeTimeout:            "request timeout",
	ErrCodeValidation:         "validation failed",
	ErrCodeSerialization:      "serialization failed",
	ErrCodeDatabaseError:      "database error",
	ErrCodeCacheError:         "cache error",
	ErrCodeExternalService:    "external service error",

	ErrCodeLaudoNotFound:      "laudo not found",
	ErrCodeTestNotFound:       "test record not found",
	ErrCodeEmptyTestBatch:     "laudo requires at least one test input",
	ErrCodeCodeAssignFailed:   "failed to assign laudo code",
	ErrCodeLaudoDeleteFailed:  "failed to delete laudo",
	ErrCodeDocumentNotFound:   "laudo document not found",
	ErrCodeDocumentTooLarge:   "laudo document exceeds size limit",
	ErrCodeDocumentStoreError: "document store error",

	ErrCodeModelNotFound:   "product model not found",
	ErrCodeRuleSetNotFound: "specification rule-set not found",
	ErrCodeRuleInvalid:     "invalid specification rule",

	ErrCodeMaterialNotFound: "material not found",
	ErrCodeMaterialConflict: "material reference conflict",
}

// HTTPStatusForCode returns the HTTP status code for an ErrorCode.
func HTTPStatusForCode(code ErrorCode) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := ErrorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// IsClientError returns true if the ErrorCode corresponds to a 4xx HTTP status.
func IsClientError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 400 && status < 500
}

// IsServerError returns true if the ErrorCode corresponds to a 5xx HTTP status.
func IsServerError(code ErrorCode) bool {
	status := HTTPStatusForCode(code)
	return status >= 500 && status < 600
}

// ModuleForCode returns the module prefix of an ErrorCode.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}
