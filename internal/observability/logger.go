package observability

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/voxnet/queryctl/internal/logging"
)

// InitLogger configures the process-wide logger for a tool and returns a
// child scoped to it. Level, timestamps, and color honor the QUERYCTL_LOG_*
// environment overrides resolved by the logging package.
func InitLogger(tool string) zerolog.Logger {
	logging.ConfigureRuntime()
	logger := log.Logger.With().Str("tool", tool).Logger()
	log.Logger = logger
	return logger
}
