package output

import (
	"fmt"

	"github.com/agentstation/labelsync/pkg/errors"
)

// FormatError renders err for the terminal. Failed GitHub calls are shown
// as the method and endpoint followed by the status and message.
func FormatError(err error) string {
	if err == nil {
		return ""
	}
	if apiErr, ok := errors.AsAPIError(err); ok && apiErr.StatusCode != 0 {
		return fmt.Sprintf("GitHub Error:\n%s %s\n%d: %s", apiErr.Method, apiErr.Endpoint, apiErr.StatusCode, apiErr.Message)
	}
	return err.Error()
}
