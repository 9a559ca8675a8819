package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"gaadi/middleware"
	"gaadi/models"
	"gaadi/pkg/logger"
	"gaadi/storage"
)

type SignupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// issueSession signs a JWT for the identity and sets it as the session
// cookie so browser navigations pass the gate.
func (h *Handler) issueSession(c *gin.Context, email, name string) (string, error) {
	ttl := time.Duration(h.cfg.SessionTTLHrs) * time.Hour
	claims := &middleware.Claims{
		Email: models.NormalizeEmail(email),
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(h.cfg.JWTSecret))
	if err != nil {
		return "", err
	}

	c.SetCookie(h.cfg.SessionCookie, signed, int(ttl.Seconds()), "/", "", false, true)
	return signed, nil
}

func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	email := models.NormalizeEmail(req.Email)

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		h.log.Error("failed to hash password", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	hashed := string(hashedPassword)

	account := models.Account{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: &hashed,
		AuthProvider: "email",
		Name:         req.Name,
		CreatedAt:    time.Now().Unix(),
		LastSeen:     time.Now().Unix(),
	}

	if err := h.store.Accounts().Create(ctx, &account); err != nil {
		if errors.Is(err, storage.ErrDuplicate) {
			respondError(c, http.StatusConflict, "Email already in use")
			return
		}
		h.storeError(c, err, "signup")
		return
	}

	token, err := h.issueSession(c, account.Email, account.Name)
	if err != nil {
		h.log.Error("failed to sign session token", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondMessage(c, http.StatusCreated, "Account created successfully", gin.H{
		"token": token,
		"email": account.Email,
	})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	account, err := h.store.Accounts().GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			respondError(c, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		h.storeError(c, err, "login")
		return
	}

	if account.PasswordHash == nil ||
		bcrypt.CompareHashAndPassword([]byte(*account.PasswordHash), []byte(req.Password)) != nil {
		respondError(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := h.issueSession(c, account.Email, account.Name)
	if err != nil {
		h.log.Error("failed to sign session token", logger.Error(err))
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	_ = h.store.Accounts().TouchLastSeen(ctx, account.Email)

	respondMessage(c, http.StatusOK, "Login successful", gin.H{
		"token": token,
		"email": account.Email,
	})
}

func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(h.cfg.SessionCookie, "", -1, "/", "", false, true)
	respondMessage(c, http.StatusOK, "Logged out", nil)
}
