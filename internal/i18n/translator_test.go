package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTranslateKnownString(t *testing.T) {
	tr := New("fa")
	assert.Equal(t, "اطلاعات وارد شده نامعتبر است", tr.T("invalid credentials"))
}

func TestFallbackToSource(t *testing.T) {
	tr := New("fa")
	assert.Equal(t, "no such key", tr.T("no such key"))
}

func TestUnknownLocaleIsIdentity(t *testing.T) {
	tr := New("de")
	assert.Equal(t, "invalid credentials", tr.T("invalid credentials"))
}
