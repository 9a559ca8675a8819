package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"gaadi/models"
)

type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

const (
	identityKey     = "identity"
	identityNameKey = "identityName"
)

var errNoToken = errors.New("no session token")

// Identity returns the normalized email the session resolver put in
// the context, or "" when the request is unauthenticated.
func Identity(c *gin.Context) string {
	return c.GetString(identityKey)
}

func IdentityName(c *gin.Context) string {
	return c.GetString(identityNameKey)
}

// sessionToken finds the raw JWT: Authorization header first, then the
// session cookie (browser navigations carry no header), then the token
// query parameter.
func sessionToken(c *gin.Context, cookieName string) (string, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return "", errors.New("authorization header format should be: Bearer <token>")
		}
		return parts[1], nil
	}
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie, nil
	}
	if token := c.Query("token"); token != "" {
		return token, nil
	}
	return "", errNoToken
}

// ParseSession validates the request's session token and returns its
// claims with the email normalized.
func ParseSession(c *gin.Context, secret, cookieName string) (*Claims, error) {
	tokenString, err := sessionToken(c, cookieName)
	if err != nil {
		return nil, err
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Email == "" {
		return nil, errors.New("token is not valid")
	}

	claims.Email = models.NormalizeEmail(claims.Email)
	return claims, nil
}

// SessionAuth is the API-side session resolver: requests without a
// valid token get a 401 envelope, valid ones continue with the
// identity stored in the context.
func SessionAuth(secret, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		// CORS preflight carries no credentials.
		if c.Request.Method == http.MethodOptions {
			c.Next()
			return
		}

		claims, err := ParseSession(c, secret, cookieName)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "Authentication required",
			})
			c.Abort()
			return
		}

		c.Set(identityKey, claims.Email)
		c.Set(identityNameKey, claims.Name)
		c.Next()
	}
}
