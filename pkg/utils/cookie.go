package utils

import (
	"net/http"
	"time"
)

// SetSessionCookie writes the HTTP-only session cookie. maxAgeMs is in milliseconds.
func SetSessionCookie(w http.ResponseWriter, name, token string, maxAgeMs int) {
	maxAge := time.Duration(maxAgeMs) * time.Millisecond

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		Expires:  time.Now().Add(maxAge),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func ClearSessionCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}
