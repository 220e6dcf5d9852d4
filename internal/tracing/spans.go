package tracing

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Span attribute keys for console actions.
const (
	AttrUnitName       = "unit.name"
	AttrUnitConnected  = "unit.connected"
	AttrPanelID        = "panel.id"
	AttrPanelVariant   = "panel.variant"
	AttrPanelCreated   = "panel.created"
	AttrControlEnabled = "control.enabled"
	AttrControlSource  = "control.source"
	AttrSessionFrom    = "session.from"
	AttrSessionTo      = "session.to"
	AttrSessionChanged = "session.changed"
	AttrErrorMessage   = "error.message"
)

// SpanPrefixConsole prefixes every orchestrator action span.
const SpanPrefixConsole = "console."

// RecordError marks span as failed with err.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
}
