package session

import "strings"

// tokenSeparator joins the public id and the bearer secret in the transport
// form "{id}.{secret}".
const tokenSeparator = "."

// composeToken builds the public token string from an id and a secret.
func composeToken(id, secret string) string {
	return id + tokenSeparator + secret
}

// ParseToken splits a token on the first separator. A token missing either
// half is rejected with ok=false and must be treated as invalid without any
// store I/O.
func ParseToken(token string) (id, secret string, ok bool) {
	id, secret, found := strings.Cut(token, tokenSeparator)
	if !found || id == "" || secret == "" {
		return "", "", false
	}
	return id, secret, true
}
