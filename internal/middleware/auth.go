package middleware

import (
	"net/http"
	"os"
	"strings"

	"labquote/internal/model"
	"labquote/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const sessionKey = "session"

// Session is the single identity object handed to handlers and services.
// It is materialized once per request from the verified token; nothing else
// in the codebase inspects claims or compares emails.
type Session struct {
	UserID       string
	Role         string
	Capabilities model.CapabilitySet
}

// Can reports whether the session holds a capability.
func (s Session) Can(c model.Capability) bool {
	return s.Capabilities.Has(c)
}

func GetJWTSecret() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		if os.Getenv("GIN_MODE") == "release" {
			panic("FATAL: JWT_SECRET environment variable is required in production mode")
		}
		secret = "default_super_secret_key" // Development fallback only — DO NOT use in production
	}
	return []byte(secret)
}

// SetTokenCookie sets the access token as an HttpOnly cookie
func SetTokenCookie(c *gin.Context, accessToken string) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	// access_token: 24h, path=/, domain="", secure, HttpOnly
	c.SetCookie("access_token", accessToken, 3600*24, "/", "", secure, true)
}

// ClearTokenCookie removes the access token cookie
func ClearTokenCookie(c *gin.Context) {
	sameSite := http.SameSiteLaxMode
	secure := false
	if os.Getenv("GIN_MODE") == "release" {
		sameSite = http.SameSiteNoneMode
		secure = true
	}

	c.SetSameSite(sameSite)
	c.SetCookie("access_token", "", -1, "/", "", secure, true)
}

func extractToken(c *gin.Context) (string, bool) {
	// Try cookie first, fallback to Authorization header
	tokenString, cookieErr := c.Cookie("access_token")
	if cookieErr == nil && tokenString != "" {
		return tokenString, true
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

func parseSession(tokenString string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return GetJWTSecret(), nil
	})
	if err != nil {
		return Session{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, jwt.ErrTokenInvalidClaims
	}

	session := Session{Capabilities: model.CapabilitySet{}}
	session.UserID, _ = claims["sub"].(string)
	session.Role, _ = claims["role"].(string)
	if rawCaps, ok := claims["caps"].([]interface{}); ok {
		caps := make([]string, 0, len(rawCaps))
		for _, rc := range rawCaps {
			if s, ok := rc.(string); ok {
				caps = append(caps, s)
			}
		}
		session.Capabilities = model.ParseCapabilities(caps)
	}
	return session, nil
}

// RequireAuth validates the token and stores the resolved Session in the
// request context.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing or malformed"))
			return
		}

		session, err := parseSession(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// RequireCapability validates the token and checks that the session holds
// every listed capability.
func RequireCapability(required ...model.Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := extractToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Authorization is missing or malformed"))
			return
		}

		session, err := parseSession(tokenString)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Invalid token: "+err.Error()))
			return
		}

		for _, cap := range required {
			if !session.Can(cap) {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(http.StatusForbidden, "Access denied: missing capability '"+string(cap)+"'"))
				return
			}
		}

		c.Set(sessionKey, session)
		c.Next()
	}
}

// CurrentSession returns the session stored by the auth middleware. The
// zero Session (no identity, no capabilities) is returned on anonymous
// routes.
func CurrentSession(c *gin.Context) Session {
	if v, ok := c.Get(sessionKey); ok {
		if s, ok := v.(Session); ok {
			return s
		}
	}
	return Session{Capabilities: model.CapabilitySet{}}
}

// OptionalAuth resolves a session when a valid token is present but lets
// anonymous requests through. Used on read endpoints whose payload is
// richer for privileged viewers (trade prices).
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if tokenString, ok := extractToken(c); ok {
			if session, err := parseSession(tokenString); err == nil {
				c.Set(sessionKey, session)
			}
		}
		c.Next()
	}
}
