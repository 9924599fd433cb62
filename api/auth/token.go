package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the cookie that carries the session token for browsers.
const CookieName = "session"

var ErrInvalidToken = errors.New("invalid session token")

type Tokens struct {
	Secret []byte
	TTL    time.Duration
}

func NewTokens(secret string, ttl time.Duration) *Tokens {
	return &Tokens{Secret: []byte(secret), TTL: ttl}
}

func (t *Tokens) CreateToken(userID uint) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(userID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(t.TTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.Secret)
}

func (t *Tokens) parse(tokenString string) (uint, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return t.Secret, nil
	})
	if err != nil || !token.Valid {
		return 0, ErrInvalidToken
	}
	uid, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || uid == 0 {
		return 0, ErrInvalidToken
	}
	return uint(uid), nil
}

// ExtractToken looks at the session cookie first, then at a bearer header.
func ExtractToken(r *http.Request) string {
	if cookie, err := r.Cookie(CookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	bearer := r.Header.Get("Authorization")
	if parts := strings.Fields(bearer); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return parts[1]
	}
	return ""
}

func (t *Tokens) ExtractTokenID(r *http.Request) (uint, error) {
	tokenString := ExtractToken(r)
	if tokenString == "" {
		return 0, ErrInvalidToken
	}
	return t.parse(tokenString)
}

// SessionCookie builds the cookie handed out on login.
func (t *Tokens) SessionCookie(token string, secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(t.TTL.Seconds()),
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func ExpiredSessionCookie(secure bool) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
}
