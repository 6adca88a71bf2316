package log

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	logLevel         = flag.String("app.log_level", "info", "The desired log level. Logs with a level >= this level will be emitted. One of {'fatal', 'error', 'warn', 'info', 'debug'}.")
	structuredLogs   = flag.Bool("app.log_enable_structured", false, "If true, log messages will be json-formatted.")
	includeShortPath = flag.Bool("app.log_include_short_file_name", false, "If true, log messages will include shortened originating file name.")
)

var logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

// Configure sets up the global logger from flag values. It should be called
// once from main after flag.Parse.
func Configure() error {
	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		return err
	}
	zerolog.SetGlobalLevel(level)

	c := zerolog.New(os.Stderr).With().Timestamp()
	if *includeShortPath {
		c = c.CallerWithSkipFrameCount(3)
	}
	logger = c.Logger()
	if !*structuredLogs {
		output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
		logger = logger.Output(output)
	}
	return nil
}

func Debug(message string) {
	logger.Debug().Msg(message)
}

// Debugf formats according to a format specifier and logs at the debug level.
func Debugf(format string, args ...interface{}) {
	logger.Debug().Msgf(format, args...)
}

func Info(message string) {
	logger.Info().Msg(message)
}

// Infof formats according to a format specifier and logs at the info level.
func Infof(format string, args ...interface{}) {
	logger.Info().Msgf(format, args...)
}

func Warning(message string) {
	logger.Warn().Msg(message)
}

// Warningf formats according to a format specifier and logs at the warning
// level.
func Warningf(format string, args ...interface{}) {
	logger.Warn().Msgf(format, args...)
}

func Error(message string) {
	logger.Error().Msg(message)
}

// Errorf formats according to a format specifier and logs at the error level.
func Errorf(format string, args ...interface{}) {
	logger.Error().Msgf(format, args...)
}

func Fatal(message string) {
	logger.Fatal().Msg(message)
}

// Fatalf formats according to a format specifier, logs at the fatal level,
// then exits the process.
func Fatalf(format string, args ...interface{}) {
	logger.Fatal().Msgf(format, args...)
}

// Printf formats according to a format specifier and logs at the info level.
// It exists for compatibility with code expecting a stdlib-style logger.
func Printf(format string, args ...interface{}) {
	Infof(format, args...)
}

// Print logs its arguments at the info level, stdlib style.
func Print(args ...interface{}) {
	Info(fmt.Sprint(args...))
}
