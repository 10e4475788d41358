// Package wavelog is the CLI's leveled logger: a stderr-only trim of
// kryptco-kr's SetupLogging helper, built on the same
// github.com/op/go-logging backend. The parsing core itself never logs
// (a decoder's hot path must not allocate for logging); only
// cmd/wavedump uses this package.
package wavelog

import (
	"os"

	"github.com/op/go-logging"
	uuid "github.com/satori/go.uuid"
)

var log = logging.MustGetLogger("")

var stderrFormat = logging.MustStringFormatter(
	`%{color}wavedump[`+RunID+` %{time:15:04:05.000}] %{level:.6s} ▶ %{message}%{color:reset}`,
)

// RunID tags every log line emitted by this process invocation, so
// parallel-chunk worker messages from two concurrent wavedump runs
// against the same terminal can be told apart.
var RunID = newRunID()

func newRunID() string {
	id, err := uuid.NewV4()
	if err != nil {
		return "unknown"
	}
	return id.String()[:8]
}

// Setup installs a stderr backend at the given default level, overridden
// by the WAVE_LOG_LEVEL environment variable when set, and returns the
// package logger. Unlike the kryptco-kr original this never tries
// syslog: a CLI tool's log output belongs on the user's terminal, not a
// system log daemon.
func Setup(prefix string, defaultLevel logging.Level) *logging.Logger {
	backend := logging.NewLogBackend(os.Stderr, prefix, 0)
	logging.SetFormatter(stderrFormat)

	leveled := logging.AddModuleLevel(backend)
	switch os.Getenv("WAVE_LOG_LEVEL") {
	case "CRITICAL":
		leveled.SetLevel(logging.CRITICAL, prefix)
	case "ERROR":
		leveled.SetLevel(logging.ERROR, prefix)
	case "WARNING":
		leveled.SetLevel(logging.WARNING, prefix)
	case "NOTICE":
		leveled.SetLevel(logging.NOTICE, prefix)
	case "INFO":
		leveled.SetLevel(logging.INFO, prefix)
	case "DEBUG":
		leveled.SetLevel(logging.DEBUG, prefix)
	default:
		leveled.SetLevel(defaultLevel, prefix)
	}

	logging.SetBackend(leveled)
	return log
}

// Logger returns the package-wide logger Setup configured.
func Logger() *logging.Logger { return log }
