package cookie_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/querypad/querypad/core/cookie"
)

func TestBuilder_Session(t *testing.T) {
	t.Parallel()

	expires := time.Date(2026, time.March, 1, 12, 0, 0, 0, time.UTC)
	token := "0a1b2c.3d4e5f"

	t.Run("production attributes", func(t *testing.T) {
		t.Parallel()

		b := cookie.New(cookie.Config{Name: "session", Secure: true})
		header := b.SessionHeader(token, expires)

		assert.True(t, strings.HasPrefix(header, "session="), header)
		assert.Contains(t, header, "Path=/")
		assert.Contains(t, header, "HttpOnly")
		assert.Contains(t, header, "Secure")
		assert.Contains(t, header, "SameSite=Lax")
		assert.Contains(t, header, "Expires=Sun, 01 Mar 2026 12:00:00 GMT")
	})

	t.Run("development omits Secure only", func(t *testing.T) {
		t.Parallel()

		b := cookie.New(cookie.Config{Name: "session", Secure: false})
		header := b.SessionHeader(token, expires)

		assert.NotContains(t, header, "Secure")
		assert.Contains(t, header, "HttpOnly")
		assert.Contains(t, header, "SameSite=Lax")
	})

	t.Run("token value is URL-encoded", func(t *testing.T) {
		t.Parallel()

		b := cookie.New(cookie.Config{Name: "session", Secure: true})
		c := b.Session("id.secret", expires)
		// hex halves and the separator survive query escaping unchanged
		assert.Equal(t, "id.secret", c.Value)
	})
}

func TestBuilder_Expired(t *testing.T) {
	t.Parallel()

	b := cookie.New(cookie.Config{Name: "session", Secure: true})
	header := b.ExpiredHeader()

	assert.Contains(t, header, "session=;")
	assert.Contains(t, header, "Expires=Thu, 01 Jan 1970 00:00:00 GMT")
	assert.Contains(t, header, "Max-Age=0")
	assert.Contains(t, header, "HttpOnly")
}

func TestBuilder_RoundTrip(t *testing.T) {
	t.Parallel()

	b := cookie.New(cookie.Config{Name: "session", Secure: false})
	token := strings.Repeat("a", 64) + "." + strings.Repeat("b", 64)
	expires := time.Now().Add(time.Hour)

	w := httptest.NewRecorder()
	b.Set(w, token, expires)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range w.Result().Cookies() {
		r.AddCookie(c)
	}

	got, ok := b.Read(r)
	require.True(t, ok)
	assert.Equal(t, token, got)
}

func TestBuilder_Read(t *testing.T) {
	t.Parallel()

	b := cookie.New(cookie.Config{Name: "session", Secure: false})

	t.Run("absent cookie", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		_, ok := b.Read(r)
		assert.False(t, ok)
	})

	t.Run("empty value", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: ""})
		_, ok := b.Read(r)
		assert.False(t, ok)
	})

	t.Run("undecodable value", func(t *testing.T) {
		t.Parallel()

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.AddCookie(&http.Cookie{Name: "session", Value: "%zz"})
		_, ok := b.Read(r)
		assert.False(t, ok)
	})
}

func TestBuilder_DefaultName(t *testing.T) {
	t.Parallel()

	b := cookie.New(cookie.Config{})
	assert.Equal(t, "session", b.Name())
}
