package handlers

import (
	"github.com/gin-gonic/gin"

	"panda-server/internal/localisation"
	"panda-server/internal/metrics"
	"panda-server/internal/service"
	"panda-server/internal/utils"
)

// responder writes service results and counts them per entity.
type responder struct {
	entity     string
	translator *localisation.Translator
	metrics    *metrics.Collector
}

func (r responder) write(c *gin.Context, operation string, successStatus int, res service.Result) {
	if r.metrics != nil {
		r.metrics.ObserveResult(r.entity, operation, string(res.Kind))
	}
	utils.Respond(c, r.translator, successStatus, res)
}
