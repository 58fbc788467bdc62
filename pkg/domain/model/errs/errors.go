package errs

import "errors"

// DetailsKey is the goerr value key carrying client visible error details,
// e.g. challenge verification error codes.
const DetailsKey = "details"

var ErrChallengeFailed = errors.New("challenge verification failed")
