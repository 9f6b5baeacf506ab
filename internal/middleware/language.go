package middleware

import (
	"github.com/gin-gonic/gin"

	"panda-server/internal/localisation"
	"panda-server/internal/utils"
)

// LanguageMiddleware negotiates the response language from Accept-Language
// and stores it on the context.
func LanguageMiddleware(tr *localisation.Translator) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := tr.DetectLanguage(c.GetHeader("Accept-Language"))
		c.Set(utils.LanguageKey, lang)
		c.Header("Content-Language", lang)
		c.Next()
	}
}
