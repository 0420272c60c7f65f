package i18n

import (
	"fmt"
	"strings"
	"testing"

	"gopkg.in/yaml.v2"

	"github.com/iamwavecut/wordguard/resources"
)

func TestGetFallsBackToKey(t *testing.T) {
	t.Parallel()

	if got := Get("❌ You have no permission.", "en"); got != "❌ You have no permission." {
		t.Fatalf("english must return the key, got %q", got)
	}
	if got := Get("untranslated", "ru"); got != "untranslated" {
		t.Fatalf("missing key must return the key, got %q", got)
	}
	if got := Get("❌ You have no permission.", "xx"); got != "❌ You have no permission." {
		t.Fatalf("unknown language must return the key, got %q", got)
	}
}

func TestGetRussian(t *testing.T) {
	t.Parallel()

	if got := Get("❌ You have no permission.", "ru"); got != "❌ У вас нет прав." {
		t.Fatalf("unexpected translation: %q", got)
	}
}

func TestLanguagesListsEmbeddedFiles(t *testing.T) {
	t.Parallel()

	langs := Languages()
	if len(langs) < 2 || langs[0] != DefaultLanguage {
		t.Fatalf("default language must come first, got %v", langs)
	}
	found := false
	for _, lang := range langs {
		if lang == "ru" {
			found = true
		}
	}
	if !found {
		t.Fatalf("ru must be available, got %v", langs)
	}
}

func TestTranslationsKeepFormatVerbs(t *testing.T) {
	t.Parallel()

	for _, lang := range Languages() {
		if lang == DefaultLanguage {
			continue
		}
		data, err := resources.FS.ReadFile(fmt.Sprintf("%s/%s.yml", resourcesPath, lang))
		if err != nil {
			t.Fatalf("read %s: %v", lang, err)
		}
		dict := map[string]string{}
		if err := yaml.Unmarshal(data, &dict); err != nil {
			t.Fatalf("unmarshal %s: %v", lang, err)
		}
		for key, value := range dict {
			if strings.Count(key, "%s") != strings.Count(value, "%s") {
				t.Fatalf("%s: format verbs differ for %q: %q", lang, key, value)
			}
		}
	}
}
