package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"streetbite/internal/model"
	"streetbite/internal/store"
	"streetbite/pkg/jwtutil"
	"streetbite/pkg/logger"
	"streetbite/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandler serves registration and login
type AuthHandler struct {
	Store store.Store
}

// NewAuthHandler creates an AuthHandler backed by the given store
func NewAuthHandler(st store.Store) *AuthHandler {
	return &AuthHandler{Store: st}
}

// RegisterRequest defines the structure for registration requests
type RegisterRequest struct {
	UserType string `json:"user_type"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ShopName string `json:"shop_name"`
}

// Register creates a user; vendor registrations also provision the
// linked supplier record in the same transaction
func (h *AuthHandler) Register(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RegisterCounter.Inc()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse registration request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.UserType == "" || req.Email == "" || req.Password == "" {
		log.Warn("Incomplete registration data",
			zap.String("user_type", req.UserType),
			zap.String("email", req.Email),
			zap.Bool("password_provided", req.Password != ""))
		prometheus.RecordAuthError("incomplete_registration")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_type, email and password are required"})
	}

	if !model.ValidUserType(req.UserType) {
		log.Warn("Unknown user type", zap.String("user_type", req.UserType))
		prometheus.RecordAuthError("invalid_user_type")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_type must be vendor or owner"})
	}

	// Shop owners must name their shop
	if req.UserType == model.UserTypeOwner && req.ShopName == "" {
		log.Warn("Owner registration without shop name", zap.String("email", req.Email))
		prometheus.RecordAuthError("missing_shop_name")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "shop_name is required for owners"})
	}

	// Check if user already exists - track DB query
	defer prometheus.TrackDBOperation("query")(time.Now())
	if _, err := h.Store.UserByEmail(c.Request().Context(), req.Email); err == nil {
		log.Warn("User already exists", zap.String("email", req.Email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	} else if !errors.Is(err, store.ErrNotFound) {
		log.Error("Failed to check existing user", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Error("Failed to hash password", zap.Error(err))
		prometheus.RecordAuthError("password_hash_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
	}

	user := model.User{
		UserType: req.UserType,
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if req.UserType == model.UserTypeOwner {
		user.ShopName = req.ShopName
	}

	// Track DB insert operation
	defer prometheus.TrackDBOperation("insert")(time.Now())

	var supplierID interface{}
	if req.UserType == model.UserTypeVendor {
		// Storefront name defaults to the local part of the email
		supplier := model.Supplier{
			Name:  strings.SplitN(req.Email, "@", 2)[0],
			Email: req.Email,
		}
		if err := h.Store.CreateVendor(c.Request().Context(), &user, &supplier); err != nil {
			return h.registrationError(c, err, req.Email)
		}
		supplierID = supplier.ID
	} else {
		if err := h.Store.CreateUser(c.Request().Context(), &user); err != nil {
			return h.registrationError(c, err, req.Email)
		}
	}

	log.Info("User registered",
		zap.String("email", user.Email),
		zap.String("user_type", user.UserType))
	return c.JSON(http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user": echo.Map{
			"id":          user.ID,
			"user_type":   user.UserType,
			"email":       user.Email,
			"shop_name":   user.ShopName,
			"supplier_id": supplierID,
		},
	})
}

func (h *AuthHandler) registrationError(c echo.Context, err error, email string) error {
	log := logger.FromContext(c)
	if errors.Is(err, store.ErrDuplicateEmail) {
		log.Warn("User already exists", zap.String("email", email))
		prometheus.RecordAuthError("email_already_exists")
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already registered"})
	}
	log.Error("Failed to create user", zap.Error(err))
	prometheus.RecordAuthError("user_creation_failed")
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "registration failed"})
}

// LoginRequest defines the structure for login requests
type LoginRequest struct {
	UserType string `json:"user_type"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login authenticates a user and issues a signed, time-limited token
func (h *AuthHandler) Login(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.LoginCounter.Inc()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Failed to parse login request", zap.Error(err))
		prometheus.RecordAuthError("invalid_request")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request"})
	}

	if req.UserType == "" || req.Email == "" || req.Password == "" {
		log.Warn("Incomplete login data", zap.String("email", req.Email))
		prometheus.RecordAuthError("incomplete_login")
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "user_type, email and password are required"})
	}

	// The (email, user_type) pair must match; a vendor cannot log in as
	// an owner with the same address
	defer prometheus.TrackDBOperation("query")(time.Now())
	user, err := h.Store.UserByEmailAndType(c.Request().Context(), req.Email, req.UserType)
	if err != nil {
		log.Warn("User not found", zap.String("email", req.Email), zap.String("user_type", req.UserType))
		prometheus.RecordAuthError("user_not_found")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		log.Warn("Invalid password", zap.String("email", req.Email))
		prometheus.RecordAuthError("invalid_password")
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	// Resolve the vendor's supplier by email; a missing supplier is not
	// a login failure, the id simply stays empty
	var supplierID string
	if user.UserType == model.UserTypeVendor {
		if supplier, err := h.Store.SupplierByEmail(c.Request().Context(), user.Email); err == nil {
			supplierID = supplier.ID
		} else if !errors.Is(err, store.ErrNotFound) {
			log.Error("Failed to resolve supplier", zap.Error(err))
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
		}
	}

	token, err := jwtutil.GenerateToken(user.Email, user.ID, user.UserType, supplierID)
	if err != nil {
		log.Error("Failed to generate token", zap.Error(err))
		prometheus.RecordAuthError("token_generation_failed")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "token error"})
	}

	prometheus.IncreaseActiveTokens()

	log.Info("User logged in",
		zap.String("email", user.Email),
		zap.String("user_type", user.UserType))

	var supplierField interface{}
	if supplierID != "" {
		supplierField = supplierID
	}
	return c.JSON(http.StatusOK, echo.Map{
		"token": token,
		"user": echo.Map{
			"id":          user.ID,
			"user_type":   user.UserType,
			"email":       user.Email,
			"shop_name":   user.ShopName,
			"supplier_id": supplierField,
		},
	})
}
