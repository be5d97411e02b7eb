package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"DAILYDIET_BACK-END/internal/config"
	"DAILYDIET_BACK-END/internal/dto"
	"DAILYDIET_BACK-END/internal/middleware"
	"DAILYDIET_BACK-END/internal/models"
	"DAILYDIET_BACK-END/internal/store"
	"DAILYDIET_BACK-END/internal/utils"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	users    store.UserStore
	sessions store.SessionStore
	cfg      *config.SessionConfig
}

// NewAuthHandler creates a new AuthHandler instance
func NewAuthHandler(users store.UserStore, sessions store.SessionStore, cfg *config.SessionConfig) *AuthHandler {
	return &AuthHandler{users: users, sessions: sessions, cfg: cfg}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new account with username and password
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "User registration data"
// @Success 201 {object} dto.RegisterResponse "User created"
// @Failure 400 {object} dto.ErrorResponse "Missing fields or username taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.RegisterRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Validate required fields
	if req.Username == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Username and password are required")
		return
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to hash password")
		return
	}

	user, err := h.users.Create(r.Context(), req.Username, string(hashedPassword))
	if err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			utils.WriteErrorResponse(w, http.StatusBadRequest, "User already exists")
			return
		}
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	utils.WriteJSONResponse(w, http.StatusCreated, dto.RegisterResponse{
		Message: "User created",
		User: dto.UserResponse{
			ID:       user.ID,
			Username: user.Username,
		},
	})
}

// Login handles user login
// @Summary Login
// @Description Authenticate with username and password, sets the session cookie
// @Tags authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.MessageResponse "Login successful"
// @Failure 400 {object} dto.ErrorResponse "Missing JSON body"
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.LoginRequest
	if err := utils.DecodeJSONRequest(w, r, &req); err != nil {
		return // Error already handled by DecodeJSONRequest
	}

	// Absent credentials are a validation error, not an auth failure
	if req.Username == "" || req.Password == "" {
		utils.WriteErrorResponse(w, http.StatusBadRequest, "Missing JSON body")
		return
	}

	// Same response for unknown user and wrong password
	user, err := h.users.GetByUsername(r.Context(), req.Username)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Verify password (bcrypt compares in constant time)
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	// Establish a session
	now := time.Now()
	session := &models.Session{
		ID:        uuid.New(),
		UserID:    user.ID,
		ExpiresAt: now.Add(h.cfg.TTL),
		CreatedAt: now,
	}
	if err := h.sessions.Create(r.Context(), session); err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	token, err := middleware.GenerateSessionToken(session.ID, user.ID, h.cfg)
	if err != nil {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Login successful"})
}

// Logout handles session termination
// @Summary Logout
// @Description Revoke the current session and clear the cookie
// @Tags authentication
// @Produce json
// @Success 200 {object} dto.MessageResponse "Logged out"
// @Failure 401 {object} dto.ErrorResponse "No active session"
// @Router /logout [get]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	sessionID, ok := utils.GetSessionIDFromContext(r.Context())
	if !ok {
		utils.WriteErrorResponse(w, http.StatusUnauthorized, "Unauthorized access")
		return
	}

	if err := h.sessions.Delete(r.Context(), sessionID); err != nil && !errors.Is(err, store.ErrNotFound) {
		utils.WriteErrorResponse(w, http.StatusInternalServerError, "Failed to end session")
		return
	}

	// Expire the cookie
	http.SetCookie(w, &http.Cookie{
		Name:     h.cfg.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cfg.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})

	utils.WriteJSONResponse(w, http.StatusOK, dto.MessageResponse{Message: "Logged out successfully"})
}
