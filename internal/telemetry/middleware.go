package telemetry

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "embody-api"

// FiberMiddleware opens a server span per request and stores it in the user context,
// so repository spans (Mongo, Redis) nest under it.
func FiberMiddleware() fiber.Handler {
	tracer := otel.Tracer(tracerName)

	return func(c *fiber.Ctx) error {
		parent := otel.GetTextMapPropagator().Extract(c.Context(), propagation.HeaderCarrier(c.GetReqHeaders()))

		ctx, span := tracer.Start(parent, c.Method()+" "+c.Path(),
			trace.WithSpanKind(trace.SpanKindServer),
			trace.WithAttributes(requestAttributes(c)...),
		)
		defer span.End()

		c.SetUserContext(ctx)
		if sc := span.SpanContext(); sc.HasTraceID() {
			c.Set("X-Trace-ID", sc.TraceID().String())
		}

		err := c.Next()
		finishSpan(span, c, err)
		return err
	}
}

func requestAttributes(c *fiber.Ctx) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("http.method", c.Method()),
		attribute.String("http.url", c.OriginalURL()),
		attribute.String("http.host", c.Hostname()),
		attribute.String("http.user_agent", c.Get(fiber.HeaderUserAgent)),
		attribute.String("http.client_ip", c.IP()),
	}
}

func finishSpan(span trace.Span, c *fiber.Ctx, err error) {
	status := c.Response().StatusCode()
	span.SetAttributes(
		attribute.String("http.route", c.Route().Path),
		attribute.Int("http.status_code", status),
		attribute.Int("http.response_content_length", len(c.Response().Body())),
	)
	if userID, ok := c.Locals("userID").(string); ok && userID != "" {
		span.SetAttributes(attribute.String("enduser.id", userID))
	}

	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	case status >= 500:
		span.SetStatus(codes.Error, fmt.Sprintf("HTTP %d", status))
	default:
		span.SetStatus(codes.Ok, "")
	}
}
