package logger

import (
	"errors"
	"io"
	"log/slog"

	constants "storefront/pkg/config"
	"storefront/pkg/lib/logger/handler/slogpretty"
)

var ErrUnknownEnv = errors.New("failed to init logger: wrong env variable")

func SetupLogger(env string, out io.Writer) (*slog.Logger, error) {
	var log *slog.Logger

	switch env {
	case constants.EnvLocal:
		log = setupPrettySlog(out)
	case constants.EnvDev:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case constants.EnvProd:
		log = slog.New(
			slog.NewJSONHandler(out, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		return nil, ErrUnknownEnv
	}

	return log, nil
}

func setupPrettySlog(out io.Writer) *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(out)

	return slog.New(handler)
}
