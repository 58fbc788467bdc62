package errs

import "github.com/m-mizutani/goerr/v2"

var (
	// Client errors (4xx)
	TagValidation     = goerr.NewTag("validation")      // 400
	TagInvalidRequest = goerr.NewTag("invalid_request") // 400
	TagForbidden      = goerr.NewTag("forbidden")       // 403
	TagNotFound       = goerr.NewTag("not_found")       // 404

	// Server errors (5xx)
	TagInternal      = goerr.NewTag("internal")      // 500
	TagMisconfigured = goerr.NewTag("misconfigured") // 500
	TagDatabase      = goerr.NewTag("database")      // 500
	TagExternal      = goerr.NewTag("external")      // 502
	TagTimeout       = goerr.NewTag("timeout")       // 504

	// External service errors
	TagLLMError = goerr.NewTag("llm_error")
)

var (
	RepositoryKey = goerr.NewTypedKey[string]("repository")
	SessionIDKey  = goerr.NewTypedKey[string]("session_id")
)
