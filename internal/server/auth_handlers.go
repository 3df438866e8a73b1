package server

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"chirp/internal/models"
	"chirp/internal/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const (
	tokenIssuer   = "chirp-api"
	tokenAudience = "chirp-client"

	tokenTypeAccess  = "access"
	tokenTypeRefresh = "refresh"

	accessTokenTTL  = time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

type tokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Signup handles POST /api/auth/signup
// @Summary User signup
// @Description Register a new user account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login_id=string,username=string,email=string,password=string} true "Signup request"
// @Success 201 {object} object{access_token=string,refresh_token=string,user=models.UserView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 409 {object} models.ErrorResponse
// @Router /auth/signup [post]
func (s *Server) Signup(c *fiber.Ctx) error {
	var req struct {
		LoginID  string `json:"login_id"`
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.LoginID == "" || req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Login ID, username, email, and password are required"))
	}
	if err := validation.LoginID(req.LoginID); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	if err := validation.Username(req.Username); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	if err := validation.Email(req.Email); err != nil {
		return models.RespondWithServiceError(c, err)
	}
	if err := validation.Password(req.Password); err != nil {
		return models.RespondWithServiceError(c, err)
	}

	// Check if user already exists
	existing, err := s.userRepo.GetByLoginID(c.Context(), req.LoginID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	if existing == nil {
		existing, err = s.userRepo.GetByEmail(c.Context(), req.Email)
		if err != nil {
			return models.RespondWithServiceError(c, err)
		}
	}
	if existing != nil {
		return models.RespondWithError(c, fiber.StatusConflict,
			models.NewNotUniqueError("User already exists"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		LoginID:  req.LoginID,
		Username: req.Username,
		Email:    req.Email,
		Password: string(hashedPassword),
		Role:     models.RoleUser,
	}
	if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
		return models.RespondWithServiceError(c, createErr)
	}

	tokens, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	view := models.NewUserView(user, 0, 0)
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          view,
	})
}

// Login handles POST /api/auth/login
// @Summary User login
// @Description Authenticate user and return a token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{login_id=string,password=string} true "Login credentials"
// @Success 200 {object} object{access_token=string,refresh_token=string,user=models.UserView}
// @Failure 400 {object} models.ErrorResponse
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/login [post]
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		LoginID  string `json:"login_id"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userRepo.GetByLoginID(c.Context(), req.LoginID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}
	if user == nil || !user.IsExist() {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}
	if user.IsBlocked {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Account is blocked"))
	}

	if cmpErr := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); cmpErr != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid credentials"))
	}

	tokens, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	view := models.NewUserView(user, 0, 0)
	return c.JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          view,
	})
}

// OAuthLogin handles POST /api/auth/oauth/:provider
// The caller has already completed the provider's flow and presents the
// provider-scoped user ID plus profile basics. An account is created on
// first sight of a provider ID, otherwise the existing one logs in.
// @Summary OAuth login
// @Tags auth
// @Accept json
// @Produce json
// @Param provider path string true "Provider name (kakao or naver)"
// @Param request body object{provider_id=string,email=string,username=string} true "Provider profile"
// @Success 200 {object} object{access_token=string,refresh_token=string,user=models.UserView}
// @Failure 400 {object} models.ErrorResponse
// @Router /auth/oauth/{provider} [post]
func (s *Server) OAuthLogin(c *fiber.Ctx) error {
	provider := strings.ToLower(c.Params("provider"))
	if provider != "kakao" && provider != "naver" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Unsupported OAuth provider"))
	}

	var req struct {
		ProviderID string `json:"provider_id"`
		Email      string `json:"email"`
		Username   string `json:"username"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if req.ProviderID == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("provider_id is required"))
	}

	user, err := s.userRepo.GetByProviderID(c.Context(), provider, req.ProviderID)
	if err != nil {
		return models.RespondWithServiceError(c, err)
	}

	status := fiber.StatusOK
	if user == nil {
		if req.Email == "" {
			return models.RespondWithError(c, fiber.StatusBadRequest,
				models.NewValidationError("email is required for first login"))
		}
		user = s.newOAuthUser(provider, req.ProviderID, req.Email, req.Username)
		if createErr := s.userRepo.Create(c.Context(), user); createErr != nil {
			return models.RespondWithServiceError(c, createErr)
		}
		status = fiber.StatusCreated
	}
	if !user.IsExist() {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Account no longer active"))
	}
	if user.IsBlocked {
		return models.RespondWithError(c, fiber.StatusForbidden,
			models.NewForbiddenError("Account is blocked"))
	}

	tokens, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	view := models.NewUserView(user, 0, 0)
	return c.Status(status).JSON(fiber.Map{
		"access_token":  tokens.AccessToken,
		"refresh_token": tokens.RefreshToken,
		"user":          view,
	})
}

// newOAuthUser builds a fresh account from provider profile basics. The
// login ID is derived from the provider so it never collides with a
// locally chosen one, and the random password is unusable for login.
func (s *Server) newOAuthUser(provider, providerID, email, username string) *models.User {
	if username == "" {
		username = provider + "_user"
	}
	randomSecret, _ := bcrypt.GenerateFromPassword([]byte(uuid.New().String()), bcrypt.DefaultCost)
	user := &models.User{
		LoginID:  fmt.Sprintf("%s_%s", provider, providerID),
		Username: username,
		Email:    email,
		Password: string(randomSecret),
		Role:     models.RoleUser,
	}
	switch provider {
	case "kakao":
		user.KakaoID = &providerID
	case "naver":
		user.NaverID = &providerID
	}
	return user
}

// Refresh handles POST /api/auth/refresh
// @Summary Refresh token pair
// @Tags auth
// @Accept json
// @Produce json
// @Param request body object{refresh_token=string} true "Refresh token"
// @Success 200 {object} tokenPair
// @Failure 401 {object} models.ErrorResponse
// @Router /auth/refresh [post]
func (s *Server) Refresh(c *fiber.Ctx) error {
	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&req); err != nil || req.RefreshToken == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("refresh_token is required"))
	}

	claims, err := s.parseToken(req.RefreshToken)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError(err.Error()))
	}
	if typ, _ := claims["typ"].(string); typ != tokenTypeRefresh {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Refresh token required"))
	}

	userID, err := subjectUserID(claims)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Invalid user ID in token"))
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Account no longer active"))
	}
	// The presented token must be the one most recently issued.
	if !user.IsExist() || user.RefreshToken != req.RefreshToken {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewUnauthorizedError("Refresh token has been revoked"))
	}

	tokens, err := s.issueTokenPair(c, user)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}
	return c.JSON(tokens)
}

// Logout handles POST /api/auth/logout
// @Summary Logout
// @Description Revoke the current access token and stored refresh token
// @Tags auth
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /auth/logout [post]
func (s *Server) Logout(c *fiber.Ctx) error {
	userID := currentUserID(c)

	// Blacklist the current access token's JTI until it would expire.
	authHeader := c.Get("Authorization")
	if parts := strings.Split(authHeader, " "); len(parts) == 2 {
		if claims, err := s.parseToken(parts[1]); err == nil {
			if jti, ok := claims["jti"].(string); ok && jti != "" && s.redis != nil {
				s.redis.Set(c.Context(), "blacklist:"+jti, "1", accessTokenTTL)
			}
		}
	}

	user, err := s.userRepo.GetByID(c.Context(), userID)
	if err == nil {
		user.RefreshToken = ""
		user.AccessToken = ""
		if updateErr := s.userRepo.Update(c.Context(), user); updateErr != nil {
			return models.RespondWithServiceError(c, updateErr)
		}
	}

	return c.JSON(fiber.Map{"message": "Logged out"})
}

// issueTokenPair creates an access and refresh token and stores them on
// the user row so refresh tokens can be revoked server-side.
func (s *Server) issueTokenPair(c *fiber.Ctx, user *models.User) (*tokenPair, error) {
	access, err := s.generateToken(user, tokenTypeAccess, accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.generateToken(user, tokenTypeRefresh, refreshTokenTTL)
	if err != nil {
		return nil, err
	}

	user.AccessToken = access
	user.RefreshToken = refresh
	if err := s.userRepo.Update(c.Context(), user); err != nil {
		return nil, err
	}

	return &tokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// generateToken creates a signed JWT for the given user
func (s *Server) generateToken(user *models.User, tokenType string, ttl time.Duration) (string, error) {
	if s.config.JWTSecret == "" {
		return "", fmt.Errorf("JWT secret not configured")
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  strconv.FormatUint(uint64(user.ID), 10),
		"role": string(user.Role),
		"typ":  tokenType,
		"iss":  tokenIssuer,
		"aud":  tokenAudience,
		"exp":  now.Add(ttl).Unix(),
		"iat":  now.Unix(),
		"nbf":  now.Unix(),
		"jti":  s.generateJTI(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.JWTSecret))
}

// generateJTI creates a unique JWT ID to prevent replay attacks
func (s *Server) generateJTI() string {
	return fmt.Sprintf("%d-%s", time.Now().Unix(), uuid.New().String()[:8])
}
