package challenge

// Error codes produced locally, in addition to the ones returned by the
// verification service.
const (
	CodeMissingTokenOrSecret = "missing_token_or_secret"
	CodeVerificationError    = "verification_error"
	CodeHTTPStatus           = "verification_http_status"
)

// Result is the outcome of one human verification check.
type Result struct {
	Success    bool     `json:"success"`
	ErrorCodes []string `json:"error-codes,omitempty"`
	Hostname   string   `json:"hostname,omitempty"`
	Action     string   `json:"action,omitempty"`
}

func Failure(codes ...string) *Result {
	return &Result{Success: false, ErrorCodes: codes}
}
