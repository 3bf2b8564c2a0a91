package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	ut "github.com/go-playground/universal-translator"
)

// LangWithTranslator 创建带翻译器的语言中间件（支持依赖注入）
// The translator is chosen per request and stored under "trans"; process wide language settings are left alone.
func LangWithTranslator(uni *ut.UniversalTranslator) gin.HandlerFunc {

	return func(c *gin.Context) {

		var lang string

		if s, exist := c.GetQuery("lang"); exist {
			lang = s
		} else if s = c.GetHeader("lang"); len(s) != 0 {
			lang = s
		}

		lang = strings.ToLower(strings.ReplaceAll(lang, "-", "_"))
		// zh_cn, zh_tw -> zh
		if base, _, ok := strings.Cut(lang, "_"); ok && base == "zh" {
			lang = base
		}

		trans, found := uni.GetTranslator(lang)
		if !found || lang == "" {
			trans, _ = uni.GetTranslator("en")
		}
		c.Set("trans", trans)

		c.Next()
	}
}
