package orbitcore

import (
	"os"

	kitlog "github.com/go-kit/log"
)

// NewLogger builds a logfmt logger tagged with component: a plain
// kitlog.NewLogfmtLogger wrapped in kitlog.With to attach a standing
// "component" field and a timestamp to every line it writes.
func NewLogger(component string) kitlog.Logger {
	logger := kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	return kitlog.With(logger, "ts", kitlog.DefaultTimestampUTC, "component", component)
}
