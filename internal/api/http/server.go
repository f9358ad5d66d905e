package http

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/department-enricher/internal/observability"
)

// ServerOptions configures the fiber application.
type ServerOptions struct {
	AppName        string
	RequestTimeout time.Duration
	BodyLimitBytes int
}

// NewApp builds a fiber application with the standard middleware stack.
func NewApp(opts ServerOptions, logger *zap.Logger, metrics *observability.Metrics) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               opts.AppName,
		BodyLimit:             opts.BodyLimitBytes,
		ErrorHandler:          ErrorHandler,
		JSONDecoder:           decodeJSON,
		DisableStartupMessage: true,
	})
	RegisterMiddlewares(app, logger, metrics, opts.RequestTimeout)
	return app
}

// decodeJSON keeps numbers as json.Number so document fields are echoed back
// exactly, including integers beyond float64 precision.
func decodeJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(v); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errors.New("unexpected data after JSON value")
	}
	return nil
}
