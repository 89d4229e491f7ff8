package resilience

import (
	"errors"
	"net"
	"strings"
	"syscall"

	"github.com/sells-group/nil-compliance/internal/model"
)

// IsRetryable reports whether an error is worth retrying: a stale-state
// conflict from a guarded write, a held SQLite write lock, or a transient
// network failure on the Postgres path.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}

	if model.IsKind(err, model.KindStaleState) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNRESET) || errors.Is(err, syscall.ECONNREFUSED) {
		return true
	}

	// Driver errors that only surface as strings.
	msg := strings.ToLower(err.Error())
	for _, p := range []string{
		"database is locked",
		"database table is locked",
		"conn busy",
		"connection reset by peer",
		"i/o timeout",
	} {
		if strings.Contains(msg, p) {
			return true
		}
	}

	return false
}
