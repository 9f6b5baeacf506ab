package service

import (
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"panda-server/internal/models"
)

// Kind classifies the outcome of a service operation.
type Kind string

const (
	KindSuccess         Kind = "success"
	KindNotFound        Kind = "not_found"
	KindValidationError Kind = "validation_error"
	KindBusinessError   Kind = "business_error"
	KindDatabaseError   Kind = "database_error"
)

// Kinds lists every outcome kind.
var Kinds = []Kind{KindSuccess, KindNotFound, KindValidationError, KindBusinessError, KindDatabaseError}

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindSuccess, KindNotFound, KindValidationError, KindBusinessError, KindDatabaseError:
		return true
	}
	return false
}

// Result is the single envelope every service operation returns.
//
// Data holds the entity (or list of entities) on success. Errors holds
// structured errors for every other kind. Message is an optional structured
// success notice.
type Result struct {
	Kind    Kind
	Data    interface{}
	Errors  []models.Message
	Message *models.Message
}

// OK reports whether the operation succeeded.
func (r Result) OK() bool {
	return r.Kind == KindSuccess
}

// Success builds a successful result. msg may be nil.
func Success(data interface{}, msg *models.Message) Result {
	return Result{Kind: KindSuccess, Data: data, Message: msg}
}

// NotFound builds a not_found result.
func NotFound(key models.MessageKey, kv ...string) Result {
	return Result{Kind: KindNotFound, Errors: []models.Message{models.NewMessage(key, kv...)}}
}

// ValidationFailed builds a validation_error result from validator output.
func ValidationFailed(errs []models.Message) Result {
	return Result{Kind: KindValidationError, Errors: errs}
}

// BusinessError builds a business_error result.
func BusinessError(key models.MessageKey, kv ...string) Result {
	return Result{Kind: KindBusinessError, Errors: []models.Message{models.NewMessage(key, kv...)}}
}

// DatabaseError builds a database_error result.
func DatabaseError(key models.MessageKey, kv ...string) Result {
	return Result{Kind: KindDatabaseError, Errors: []models.Message{models.NewMessage(key, kv...)}}
}

func notice(key models.MessageKey, kv ...string) *models.Message {
	m := models.NewMessage(key, kv...)
	return &m
}

// finish records the outcome on span and hands the result back.
func finish(span trace.Span, res Result) Result {
	span.SetAttributes(attribute.String("result.kind", string(res.Kind)))
	if res.Kind == KindDatabaseError {
		span.SetStatus(codes.Error, string(res.Kind))
	}
	span.End()
	return res
}
