package chat

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOriginChecker(t *testing.T) {
	requestWithOrigin := func(origin string) *http.Request {
		r := httptest.NewRequest(http.MethodGet, "/ws/chat", nil)
		if origin != "" {
			r.Header.Set("Origin", origin)
		}
		return r
	}

	t.Run("empty list allows everything", func(t *testing.T) {
		check := OriginChecker(nil)
		assert.True(t, check(requestWithOrigin("https://evil.example.com")))
		assert.True(t, check(requestWithOrigin("")))
	})

	t.Run("exact match", func(t *testing.T) {
		check := OriginChecker([]string{"https://example.com"})
		assert.True(t, check(requestWithOrigin("https://example.com")))
		assert.False(t, check(requestWithOrigin("https://other.com")))
		assert.False(t, check(requestWithOrigin("https://example.com.evil.com")))
	})

	t.Run("wildcard match", func(t *testing.T) {
		check := OriginChecker([]string{"https://*.example.com"})
		assert.True(t, check(requestWithOrigin("https://app.example.com")))
		assert.True(t, check(requestWithOrigin("https://deep.sub.example.com")))
		assert.False(t, check(requestWithOrigin("https://example.org")))
	})

	t.Run("no origin header is allowed", func(t *testing.T) {
		check := OriginChecker([]string{"https://example.com"})
		assert.True(t, check(requestWithOrigin("")))
	})

	t.Run("mixed exact and wildcard", func(t *testing.T) {
		check := OriginChecker([]string{"http://localhost:3000", "https://*.example.com"})
		assert.True(t, check(requestWithOrigin("http://localhost:3000")))
		assert.True(t, check(requestWithOrigin("https://www.example.com")))
		assert.False(t, check(requestWithOrigin("http://localhost:4000")))
	})
}
