package observability

import (
	"testing"
	"time"

	"github.com/rs/zerolog/log"
)

func TestRegisterMetricsAndRecordersAreSafe(t *testing.T) {
	RegisterMetrics()
	RegisterMetrics()

	RecordCommand("query0", "whoami", "ok", 12*time.Millisecond)
	RecordCommand("query0", "login", "error", 3*time.Millisecond)
	RecordLineSent("query0", 7)
	RecordLineRead("query0", 18)
	RecordEvent("query0", "textmessage")

	log.Debug().Msg("observability/metrics: registration idempotent and recording paths executed")
}
