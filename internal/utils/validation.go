package utils

import (
	"github.com/gin-gonic/gin"

	"panda-server/internal/localisation"
	"panda-server/internal/models"
	"panda-server/internal/validation"
)

// BindRecord binds the request body to a raw record. Field level checks are
// left to the services. If the body is not a JSON object, it sends a
// BadRequest response and returns false.
func BindRecord(c *gin.Context, tr *localisation.Translator) (validation.Record, bool) {
	var record validation.Record
	if err := c.ShouldBindJSON(&record); err != nil || record == nil {
		BadRequest(c, tr, models.NewMessage(models.KeyInvalidRequestBody))
		return nil, false
	}
	return record, true
}
