package main

import (
	"context"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// loggingContext builds the context every subcommand passes down the driver.
// The logger travels in the context (zerolog.Ctx) so the driver stays free of
// logging configuration. Without --log-file or --verbose it is a no-op logger.
func loggingContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	flags := cmd.Root().PersistentFlags()
	logFile, _ := flags.GetString("log-file")
	verbose, _ := flags.GetBool("verbose")

	if logFile == "" && !verbose {
		nop := zerolog.Nop()
		return nop.WithContext(ctx)
	}

	var out io.Writer
	if logFile != "" {
		out = &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
			Compress:   true,
		}
	} else {
		out = zerolog.ConsoleWriter{Out: os.Stderr}
	}

	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}

	logger := zerolog.New(out).Level(level).With().
		Timestamp().
		Str("tool", "vitrine").
		Logger()
	return logger.WithContext(ctx)
}
