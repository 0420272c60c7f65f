package i18n

import (
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v2"

	"github.com/iamwavecut/wordguard/resources"
)

const (
	DefaultLanguage = "en"
	resourcesPath   = "i18n"
)

var state = struct {
	sync.RWMutex
	translations map[string]map[string]string
	loaded       map[string]bool
}{
	translations: make(map[string]map[string]string),
	loaded:       make(map[string]bool),
}

func load(lang string) {
	state.Lock()
	defer state.Unlock()
	if state.loaded[lang] {
		return
	}
	state.loaded[lang] = true

	data, err := resources.FS.ReadFile(fmt.Sprintf("%s/%s.yml", resourcesPath, lang))
	if err != nil {
		log.WithError(err).WithField("lang", lang).Warn("cant load i18n")
		return
	}
	translations := make(map[string]string)
	if err := yaml.Unmarshal(data, &translations); err != nil {
		log.WithError(err).WithField("lang", lang).Error("cant unmarshal i18n")
		return
	}
	state.translations[lang] = translations
}

// Get returns the translation of key, which is itself the English text.
func Get(key, lang string) string {
	if lang == DefaultLanguage || lang == "" {
		return key
	}
	state.RLock()
	loaded := state.loaded[lang]
	state.RUnlock()
	if !loaded {
		load(lang)
	}

	state.RLock()
	defer state.RUnlock()
	if res, ok := state.translations[lang][key]; ok {
		return res
	}
	log.Tracef(`no translation for key "%s"`, key)
	return key
}

// Languages lists the embedded translation files plus the default language.
func Languages() []string {
	langs := []string{DefaultLanguage}
	entries, err := resources.FS.ReadDir(resourcesPath)
	if err != nil {
		return langs
	}
	for _, e := range entries {
		name := e.Name()
		if len(name) > 4 && name[len(name)-4:] == ".yml" {
			langs = append(langs, name[:len(name)-4])
		}
	}
	return langs
}
