package topic

// Error codes of the subscription server:
// https://developers.google.com/instance-id/reference/server#errors
const (
	ErrorCodeInvalidArgument = "INVALID_ARGUMENT"
	ErrorCodeNotFound        = "NOT_FOUND"
	ErrorCodeInternal        = "INTERNAL"
	ErrorCodeTooManyTopics   = "TOO_MANY_TOPICS"
)

// Stable per-token failure reasons
const (
	ReasonInvalidArgument = "invalid-argument"
	ReasonNotRegistered   = "registration-token-not-registered"
	ReasonInternal        = "internal-error"
	ReasonTooManyTopics   = "too-many-topics"
	ReasonUnknown         = "unknown-error"
)

var reasonByCode = map[string]string{
	ErrorCodeInvalidArgument: ReasonInvalidArgument,
	ErrorCodeNotFound:        ReasonNotRegistered,
	ErrorCodeInternal:        ReasonInternal,
	ErrorCodeTooManyTopics:   ReasonTooManyTopics,
}

// ReasonByCode maps a server error code to a stable reason
func ReasonByCode(code string) string {

	if reason, ok := reasonByCode[code]; ok {
		return reason
	}

	return ReasonUnknown
}

// result entry of the server: empty on success,
// otherwise carries an error code
type resultEntry struct {
	Error string `json:"error,omitempty"`
}

type serverResponse struct {
	Results []*resultEntry `json:"results"`
}

// ErrorInfo is a failure of a single registration token.
// Index points into the token list of the request
type ErrorInfo struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// Response is the outcome report of one batch operation
type Response struct {
	SuccessCount int          `json:"success_count"`
	Errors       []*ErrorInfo `json:"errors"`
}

func newResponse(entries []*resultEntry) *Response {

	retval := &Response{
		Errors: make([]*ErrorInfo, 0, len(entries)),
	}

	for i, entry := range entries {
		if entry == nil || entry.Error == "" {
			retval.SuccessCount++
			continue
		}

		retval.Errors = append(retval.Errors, &ErrorInfo{
			Index:  i,
			Reason: ReasonByCode(entry.Error),
		})
	}

	return retval
}

func (r *Response) FailureCount() int {
	return len(r.Errors)
}

// Ok returns true if all tokens of the batch succeeded
func (r *Response) Ok() bool {
	return r != nil && len(r.Errors) == 0
}
