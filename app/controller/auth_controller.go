package controller

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"outfit-studio/models"
	"outfit-studio/service"
)

// AuthController handles HTTP requests for authentication
type AuthController struct {
	authService service.AuthServiceInterface
}

// NewAuthController creates a new AuthController
func NewAuthController(authService service.AuthServiceInterface) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// Login handles POST /api/auth/login
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Login: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Login: Method not allowed: %s", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Login: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		log.Printf("❌ Login: email and password are required")
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	response, err := c.authService.Login(r.Context(), req)
	if err != nil {
		log.Printf("❌ Login: Error logging in email=%s: %v", req.Email, err)
		writeServiceError(w, err, "Failed to log in")
		return
	}

	log.Printf("✅ Login: Successfully logged in user=%s", response.User.ID)
	writeJSON(w, http.StatusOK, response)
}

// Signup handles POST /api/auth/signup
func (c *AuthController) Signup(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 Signup: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ Signup: Method not allowed: %s", r.Method)
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Signup: Failed to decode request body: %v", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		log.Printf("❌ Signup: email and password are required")
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	if !strings.Contains(req.Email, "@") {
		log.Printf("❌ Signup: Invalid email: %s", req.Email)
		writeError(w, http.StatusBadRequest, "email is not valid")
		return
	}

	response, err := c.authService.Signup(r.Context(), req)
	if err != nil {
		log.Printf("❌ Signup: Error signing up email=%s: %v", req.Email, err)
		writeServiceError(w, err, "Failed to sign up")
		return
	}

	log.Printf("✅ Signup: Successfully created user=%s", response.User.ID)
	writeJSON(w, http.StatusCreated, response)
}

// Me handles GET /api/auth/me
// Requires the auth middleware to have resolved the user
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	user := UserFromContext(r.Context())
	if user == nil {
		writeError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}
	writeJSON(w, http.StatusOK, user)
}
