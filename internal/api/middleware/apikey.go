package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/loopital/ledger-backend/internal/api/response"
)

// timeTokenWindow is the validity window of a time token. A token minted in
// the current or previous window is accepted, so clients have at least one
// full window to deliver it.
const timeTokenWindow = 30 * time.Second

// APIKeyMiddleware guards mutating system routes. Callers must present the
// shared key in X-API-Key plus a fresh HMAC time token in X-Time-Token,
// which keeps captured requests from being replayed later.
func APIKeyMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expectedKey := os.Getenv("INTERNAL_API_KEY")
		if expectedKey == "" {
			response.RespondError(w, http.StatusInternalServerError, "internal error", "Authentication not loaded")
			return
		}

		apiKey := r.Header.Get("X-API-Key")
		if apiKey == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing API key")
			return
		}
		if !hmac.Equal([]byte(apiKey), []byte(expectedKey)) {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Invalid API key")
			return
		}

		timeToken := r.Header.Get("X-Time-Token")
		if timeToken == "" {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Missing Time token")
			return
		}
		if !validTimeToken(expectedKey, timeToken) {
			response.RespondError(w, http.StatusUnauthorized, "unauthorized", "Time token is invalid or expired")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// GenerateTimeToken mints a token for the current validity window.
func GenerateTimeToken(apiKey string) string {
	return tokenForWindow(apiKey, time.Now().Unix()/int64(timeTokenWindow.Seconds()))
}

// validTimeToken accepts tokens from the current and previous window.
func validTimeToken(apiKey, token string) bool {
	window := time.Now().Unix() / int64(timeTokenWindow.Seconds())
	for _, w := range []int64{window, window - 1} {
		if hmac.Equal([]byte(tokenForWindow(apiKey, w)), []byte(token)) {
			return true
		}
	}
	return false
}

func tokenForWindow(apiKey string, window int64) string {
	mac := hmac.New(sha256.New, []byte(apiKey))
	mac.Write([]byte(strconv.FormatInt(window, 10)))
	return hex.EncodeToString(mac.Sum(nil))
}
