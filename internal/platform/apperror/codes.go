package apperror

// ErrorCode is the system-level error category.
type ErrorCode string

const (
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeBadRequest       ErrorCode = "BAD_REQUEST"
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeConflict         ErrorCode = "CONFLICT"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// BusinessCode is the specific business reason behind an error.
type BusinessCode string

const (
	BusinessCodeGeneral        BusinessCode = "GENERAL"
	BusinessCodePostNotFound   BusinessCode = "POST_NOT_FOUND"
	BusinessCodeSlugNotFound   BusinessCode = "SLUG_NOT_FOUND"
	BusinessCodeSlugConflict   BusinessCode = "SLUG_CONFLICT"
	BusinessCodeInvalidFormat  BusinessCode = "INVALID_FORMAT"
	BusinessCodeStorageFailure BusinessCode = "STORAGE_FAILURE"

	// BusinessCodeDanglingSlug marks the internal-inconsistency case where a
	// slug resolves to a post id that has no post row. Distinct from ordinary
	// storage failures so it stands out in logs.
	BusinessCodeDanglingSlug BusinessCode = "DANGLING_SLUG"
)
