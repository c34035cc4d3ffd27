// internal/api/auth.go registration, login and logout
package api

import (
	"net/http"
	"net/mail"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/roamly/roamly/internal/datastore"
	"github.com/roamly/roamly/internal/errors"
	"github.com/roamly/roamly/internal/security"
)

const (
	minUserNameLength = 3
	minPasswordLength = 8
)

// initAuthRoutes registers authentication routes
func (c *Controller) initAuthRoutes() {
	c.Group.POST("/register", c.Register)
	c.Group.POST("/login", c.Login)
	c.Group.POST("/logout", c.Logout)
}

// registerRequest is the body for POST /register.
type registerRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginRequest is the body for POST /login.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// authResponse is returned on successful register or login.
type authResponse struct {
	UserName string `json:"userName"`
}

// validateRegistration checks the register payload before touching the
// database.
func validateRegistration(req *registerRequest) error {
	req.UserName = strings.TrimSpace(req.UserName)
	req.Email = strings.TrimSpace(req.Email)

	if len(req.UserName) < minUserNameLength {
		return errors.Newf("user name must be at least %d characters", minUserNameLength).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return errors.Newf("invalid email address").
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	if len(req.Password) < minPasswordLength {
		return errors.Newf("password must be at least %d characters", minPasswordLength).
			Component("api").
			Category(errors.CategoryValidation).
			Build()
	}
	return nil
}

// Register handles POST /register
func (c *Controller) Register(ctx echo.Context) error {
	var req registerRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	if err := validateRegistration(&req); err != nil {
		return c.HandleError(ctx, err, err.Error(), http.StatusBadRequest)
	}

	if _, err := c.DS.GetUserByEmail(req.Email); err == nil {
		return c.HandleError(ctx, nil, "Email already registered", http.StatusConflict)
	} else if !errors.Is(err, datastore.ErrRecordNotFound) {
		return c.HandleError(ctx, err, "Failed to check existing user", http.StatusInternalServerError)
	}

	hash, err := security.HashPassword(req.Password)
	if err != nil {
		return c.HandleError(ctx, err, "Failed to register user", http.StatusInternalServerError)
	}

	user := &datastore.User{
		UserName:     req.UserName,
		Email:        req.Email,
		PasswordHash: hash,
	}
	if err := c.DS.SaveUser(user); err != nil {
		return c.HandleError(ctx, err, "Failed to register user", http.StatusInternalServerError)
	}

	if err := c.Sessions.SignIn(ctx.Response(), ctx.Request(), user.UserName); err != nil {
		// Account exists; the client can still log in explicitly.
		c.logger.Printf("Failed to start session after registration: %v", err)
	}

	return ctx.JSON(http.StatusCreated, authResponse{UserName: user.UserName})
}

// Login handles POST /login
func (c *Controller) Login(ctx echo.Context) error {
	var req loginRequest
	if err := ctx.Bind(&req); err != nil {
		return c.HandleError(ctx, err, "Invalid request body", http.StatusBadRequest)
	}
	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		return c.HandleError(ctx, nil, "Email and password are required", http.StatusBadRequest)
	}

	user, err := c.DS.GetUserByEmail(req.Email)
	if err != nil {
		if errors.Is(err, datastore.ErrRecordNotFound) {
			// Same response as a bad password so the endpoint does not
			// leak which emails are registered.
			return c.HandleError(ctx, nil, "Invalid credentials", http.StatusUnauthorized)
		}
		return c.HandleError(ctx, err, "Failed to log in", http.StatusInternalServerError)
	}

	if !security.VerifyPassword(user.PasswordHash, req.Password) {
		return c.HandleError(ctx, nil, "Invalid credentials", http.StatusUnauthorized)
	}

	if err := c.Sessions.SignIn(ctx.Response(), ctx.Request(), user.UserName); err != nil {
		return c.HandleError(ctx, err, "Failed to start session", http.StatusInternalServerError)
	}

	return ctx.JSON(http.StatusOK, authResponse{UserName: user.UserName})
}

// Logout handles POST /logout
func (c *Controller) Logout(ctx echo.Context) error {
	if err := c.Sessions.SignOut(ctx.Response(), ctx.Request()); err != nil {
		return c.HandleError(ctx, err, "Failed to log out", http.StatusInternalServerError)
	}
	return ctx.JSON(http.StatusOK, map[string]bool{"success": true})
}
