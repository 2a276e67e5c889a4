package identity

import (
	"net"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tamilanbu12/IPL-Auction-Simulator/internal/auth"
)

// CookieName is the cookie carrying a participant's signed identity token.
const CookieName = "auction_token"

// Resolve maps an inbound connection to a stable participant identity.
// A valid replayed token wins; otherwise a fresh guest identity is minted,
// signed, and handed back via cookie so the client replays it next time.
func Resolve(w http.ResponseWriter, r *http.Request) (string, error) {
	if c, err := r.Cookie(CookieName); err == nil && c.Value != "" {
		if id, err := auth.VerifyToken(c.Value); err == nil && id != "" {
			return id, nil
		}
		// Invalid or expired token: fall through and issue a guest identity.
	}

	id := uuid.NewString()
	token, err := auth.CreateToken(id)
	if err != nil {
		return "", err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    token,
		HttpOnly: true,
		Path:     "/",
	})
	return id, nil
}

// OriginFingerprint extracts a best-effort network-origin fingerprint: the
// first hop of the forwarded-address chain, normalized. It is only a fallback
// signal for recovering admin authority after a dropped connection; NAT and
// shared networks make it unreliable, so it is never a security boundary.
func OriginFingerprint(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first := strings.TrimSpace(strings.Split(fwd, ",")[0])
		if first != "" {
			return normalizeAddr(first)
		}
	}
	return normalizeAddr(r.RemoteAddr)
}

func normalizeAddr(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		addr = host
	}
	return strings.ToLower(strings.TrimSpace(addr))
}
