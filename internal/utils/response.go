package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panda-server/internal/localisation"
	"panda-server/internal/models"
	"panda-server/internal/service"
)

// LanguageKey is the gin context key holding the negotiated language.
const LanguageKey = "language"

// ErrorData is one structured error with its rendered text.
type ErrorData struct {
	Key     models.MessageKey `json:"key"`
	Params  map[string]string `json:"params"`
	Message string            `json:"message"`
}

// ResponseData represents the structure of a standard API response.
type ResponseData struct {
	Status  int         `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Errors  []ErrorData `json:"errors,omitempty"`
}

// Language returns the language negotiated for this request, or "" when the
// language middleware did not run.
func Language(c *gin.Context) string {
	return c.GetString(LanguageKey)
}

// StatusFor maps a result kind to its HTTP status. successStatus lets
// create endpoints answer 201.
func StatusFor(kind service.Kind, successStatus int) int {
	switch kind {
	case service.KindSuccess:
		return successStatus
	case service.KindNotFound:
		return http.StatusNotFound
	case service.KindValidationError, service.KindBusinessError:
		return http.StatusBadRequest
	case service.KindDatabaseError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// Localise renders every message in the request's language.
func Localise(c *gin.Context, tr *localisation.Translator, msgs []models.Message) []ErrorData {
	lang := Language(c)
	out := make([]ErrorData, 0, len(msgs))
	for _, m := range msgs {
		params := m.Params
		if params == nil {
			params = map[string]string{}
		}
		out = append(out, ErrorData{
			Key:     m.Key,
			Params:  params,
			Message: tr.Translate(string(m.Key), lang, params),
		})
	}
	return out
}

// Respond writes res as a ResponseData envelope. The top level message is the
// rendered notice on success and the first rendered error otherwise.
func Respond(c *gin.Context, tr *localisation.Translator, successStatus int, res service.Result) {
	status := StatusFor(res.Kind, successStatus)
	body := ResponseData{Status: status}

	if !res.Kind.Valid() {
		Error(c, tr, status, models.NewMessage(models.KeyRequestFailed))
		return
	}

	if res.OK() {
		body.Data = res.Data
		if res.Message != nil {
			body.Message = tr.Translate(string(res.Message.Key), Language(c), res.Message.Params)
		}
	} else {
		body.Errors = Localise(c, tr, res.Errors)
		if len(body.Errors) > 0 {
			body.Message = body.Errors[0].Message
		}
	}

	c.JSON(status, body)
}

// Error sends a standard error response carrying a single message.
func Error(c *gin.Context, tr *localisation.Translator, statusCode int, msg models.Message) {
	errs := Localise(c, tr, []models.Message{msg})
	c.JSON(statusCode, ResponseData{
		Status:  statusCode,
		Message: errs[0].Message,
		Errors:  errs,
	})
}

// BadRequest sends a 400 Bad Request error response.
func BadRequest(c *gin.Context, tr *localisation.Translator, msg models.Message) {
	Error(c, tr, http.StatusBadRequest, msg)
}

// Unauthorized sends a 401 Unauthorized error response.
func Unauthorized(c *gin.Context, tr *localisation.Translator, msg models.Message) {
	Error(c, tr, http.StatusUnauthorized, msg)
}
