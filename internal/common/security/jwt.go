package security

import (
	"errors"
	"net/http"
	"strconv"
	"time"
	"twitter_app/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionCookieName matches the original application's session cookie.
const SessionCookieName = "_twitter_app_session"

var TokenAuth *jwtauth.JWTAuth

func InitJWT() {
	TokenAuth = jwtauth.New("HS256", config.AppConfig.JWTKey, nil)
}

// GenerateSessionToken mints the signed token behind a session cookie. The
// salt claim binds the token to the user's current salt, so rotating the
// salt (a password change) invalidates every outstanding session.
func GenerateSessionToken(userID int64, saltValue string, validity time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id": strconv.FormatInt(userID, 10),
		"salt":    saltValue,
		"jti":     uuid.NewString(),
		"exp":     time.Now().Add(validity).Unix(),
		"iat":     time.Now().Unix(),
	}
	_, tokenString, err := TokenAuth.Encode(claims)
	return tokenString, err
}

// TokenFromSessionCookie is the find function handed to jwtauth.Verify so
// the verifier reads the session cookie instead of the Authorization header.
func TokenFromSessionCookie(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil {
		return ""
	}
	return cookie.Value
}

func GetUserIDFromClaims(claims jwt.MapClaims) (int64, error) {
	raw, ok := claims["user_id"].(string)
	if !ok {
		return 0, errors.New("user_id claim is missing or not a string")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("user_id claim is not a valid id")
	}
	return id, nil
}

func GetSaltFromClaims(claims jwt.MapClaims) (string, error) {
	salt, ok := claims["salt"].(string)
	if !ok {
		return "", errors.New("salt claim is missing or not a string")
	}
	return salt, nil
}
