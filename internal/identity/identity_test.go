package identity

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/auth"
)

func TestResolveMintsGuestIdentity(t *testing.T) {
	auth.Init()

	req := httptest.NewRequest("GET", "/auction/ws", nil)
	w := httptest.NewRecorder()

	id, err := Resolve(w, req)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	// The response must set a replayable cookie carrying the same identity.
	resp := w.Result()
	var cookie *http.Cookie
	for _, c := range resp.Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie, "guest resolution should set the identity cookie")

	sub, err := auth.VerifyToken(cookie.Value)
	require.NoError(t, err)
	assert.Equal(t, id, sub)
}

func TestResolveReplaysExistingToken(t *testing.T) {
	auth.Init()

	token, err := auth.CreateToken("participant-42")
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/auction/ws", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: token})
	w := httptest.NewRecorder()

	id, err := Resolve(w, req)
	require.NoError(t, err)
	assert.Equal(t, "participant-42", id)
	assert.Empty(t, w.Result().Cookies(), "no new cookie when token is valid")
}

func TestResolveRejectsForgedToken(t *testing.T) {
	auth.Init()

	req := httptest.NewRequest("GET", "/auction/ws", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "not-a-jwt"})
	w := httptest.NewRecorder()

	id, err := Resolve(w, req)
	require.NoError(t, err)
	assert.NotEqual(t, "not-a-jwt", id, "forged token should yield a fresh guest identity")
	assert.NotEmpty(t, id)
}

func TestOriginFingerprint(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "203.0.113.9:51234"
	assert.Equal(t, "203.0.113.9", OriginFingerprint(req))

	// First hop of the forwarded chain wins over the socket address.
	req.Header.Set("X-Forwarded-For", "198.51.100.7, 203.0.113.9")
	assert.Equal(t, "198.51.100.7", OriginFingerprint(req))
}
