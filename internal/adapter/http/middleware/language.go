package middleware

import (
	"taskmanager/pkg/translator"

	"github.com/gin-gonic/gin"
	"golang.org/x/text/language"
)

const langContextKey = "lang"

var (
	supportedLanguages = []language.Tag{language.English, language.French}
	languageMatcher    = language.NewMatcher(supportedLanguages)
)

// LanguageMiddleware resolves Accept-Language against the translated catalogs, defaulting to en.
func LanguageMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(langContextKey, matchLanguage(c.GetHeader("Accept-Language")))
		c.Next()
	}
}

func matchLanguage(header string) string {
	if header == "" {
		return translator.LanguageEn
	}

	tags, _, err := language.ParseAcceptLanguage(header)
	if err != nil || len(tags) == 0 {
		return translator.LanguageEn
	}

	_, index, confidence := languageMatcher.Match(tags...)
	if confidence == language.No {
		return translator.LanguageEn
	}
	return supportedLanguages[index].String()
}

func GetLang(c *gin.Context) string {
	if lang, exists := c.Get(langContextKey); exists {
		if s, ok := lang.(string); ok {
			return s
		}
	}
	return translator.LanguageEn
}
