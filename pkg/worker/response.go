package worker

import (
	"github.com/dialogs/dialog-topic-service/pkg/provider/topic"
)

// Response of one batch operation.
// Either Report or Error is set, never both
type Response struct {
	ProjectID string
	Operation Operation
	Report    *topic.Response
	Error     error
}
