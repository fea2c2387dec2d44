package translator

import (
	"embed"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

//go:embed translation/*.toml
var embedded embed.FS

var Translator *i18n.Bundle

type Config struct {
	// TranslationFolder overrides the catalogs compiled into the binary when set.
	TranslationFolder  string
	SupportedLanguages []string
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if cfg.TranslationFolder != "" {
		if loadFolder(cfg.TranslationFolder) {
			return
		}
		zap.L().Warn("falling back to embedded translations", zap.String("folder", cfg.TranslationFolder))
	}

	loadFS(embedded, "translation")
}

// loadFolder reports whether the folder could be listed.
func loadFolder(folder string) bool {
	files, err := os.ReadDir(folder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", folder), zap.Error(err))
		return false
	}

	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if _, err := Translator.LoadMessageFile(filepath.Join(folder, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
	return true
}

func loadFS(fsys fs.FS, dir string) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		zap.L().Error("failed to list embedded translations", zap.Error(err))
		return
	}

	for _, f := range files {
		if _, err := Translator.LoadMessageFileFS(fsys, path.Join(dir, f.Name())); err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}
