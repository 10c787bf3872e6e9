package logger

import (
	"os"

	"go.uber.org/zap"
)

var Log *zap.Logger

// Init builds the process-wide logger. APP_ENV=production switches to the
// sampled JSON config; anything else gets the development console output.
func Init() {
	var err error
	if os.Getenv("APP_ENV") == "production" {
		Log, err = zap.NewProduction()
	} else {
		Log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
}

// Sync flushes buffered log entries. Call on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}
