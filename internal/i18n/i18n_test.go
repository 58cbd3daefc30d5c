package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_MatchesLocale(t *testing.T) {
	assert.Equal(t, "en", New("en").Locale())
	assert.Equal(t, "en", New("").Locale())
	assert.Equal(t, "en", New("not a locale!").Locale())
	assert.Equal(t, "zh-Hans", New("zh").Locale())
	assert.Equal(t, "zh-Hans", New("zh-CN").Locale())
}

func TestLocalizer_T(t *testing.T) {
	en := New("en")
	assert.Equal(t, "Version must be in x.y.z format", en.T(KeyVersionFormat))
	assert.Equal(t, "Color primary must be a valid hex color code", en.T(KeyColorFormat, "primary"))

	zh := New("zh")
	assert.Equal(t, "版本号格式必须为 x.y.z", zh.T(KeyVersionFormat))
	assert.Contains(t, zh.T(KeyColorFormat, "cardBackground"), "cardBackground")
}

func TestCatalogs_HaveSameKeys(t *testing.T) {
	for key := range english {
		_, ok := chinese[key]
		assert.True(t, ok, "missing zh translation for %s", key)
	}
	assert.Len(t, chinese, len(english))
}

func TestLocalizer_Number(t *testing.T) {
	assert.Equal(t, "21,787", New("en").Number(21787))
}
