package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"DAILYDIET_BACK-END/internal/config"
	"DAILYDIET_BACK-END/internal/store"
	"DAILYDIET_BACK-END/internal/utils"
)

// SessionClaims represents the claims in the session cookie token
type SessionClaims struct {
	SessionID uuid.UUID `json:"session_id"`
	UserID    int64     `json:"user_id"`
	jwt.RegisteredClaims
}

// GenerateSessionToken signs a token binding the cookie to a session row
func GenerateSessionToken(sessionID uuid.UUID, userID int64, cfg *config.SessionConfig) (string, error) {
	claims := SessionClaims{
		SessionID: sessionID,
		UserID:    userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(cfg.TTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			NotBefore: jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(cfg.Secret))
}

// ValidateSessionToken verifies a session token and returns the claims
func ValidateSessionToken(tokenString string, cfg *config.SessionConfig) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(cfg.Secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*SessionClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrTokenMalformed
}

// SessionMiddleware authenticates requests via the session cookie. The token
// signature alone is not enough: the session row must still exist, so a
// logged-out token is rejected even before its expiry.
func SessionMiddleware(next http.HandlerFunc, sessions store.SessionStore, cfg *config.SessionConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cfg.CookieName)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
			return
		}

		claims, err := ValidateSessionToken(cookie.Value, cfg)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
			return
		}

		session, err := sessions.Get(r.Context(), claims.SessionID)
		if err != nil {
			utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
			return
		}

		// Add session info to request context
		ctx := utils.WithSession(r.Context(), session.UserID, session.ID)

		next.ServeHTTP(w, r.WithContext(ctx))
	}
}
