package logging

import "log/slog"

// Common field names for consistent logging across the service.
const (
	FieldService   = "service"
	FieldEmail     = "email"
	FieldPhone     = "phone"
	FieldEventType = "event_type"
	FieldError     = "error"
	FieldStatus    = "status"
	FieldDuration  = "duration_ms"
)

// Service returns a slog attribute for the service name.
func Service(name string) slog.Attr {
	return slog.String(FieldService, name)
}

// Email returns a slog attribute for a contact identity key.
func Email(email string) slog.Attr {
	return slog.String(FieldEmail, email)
}

// Phone returns a slog attribute for a canonical phone number.
func Phone(phone string) slog.Attr {
	return slog.String(FieldPhone, phone)
}

// EventType returns a slog attribute for the inbound event type.
func EventType(t string) slog.Attr {
	return slog.String(FieldEventType, t)
}

// Error returns a slog attribute for an error.
func Error(err error) slog.Attr {
	return slog.String(FieldError, err.Error())
}

// Status returns a slog attribute for the HTTP status code.
func Status(code int) slog.Attr {
	return slog.Int(FieldStatus, code)
}

// Duration returns a slog attribute for duration in milliseconds.
func Duration(ms int64) slog.Attr {
	return slog.Int64(FieldDuration, ms)
}
