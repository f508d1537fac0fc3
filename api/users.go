package api

import (
	"log/slog"
	"net/http"

	"github.com/Domenick1991/travelbooking/internal/service/users"
	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	service users.UserUseCase
	logger  *slog.Logger
}

type signupRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	Phone    string `json:"phone"`
}

type signupResponse struct {
	Token  string `json:"token"`
	UserID int64  `json:"user_id"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func NewUserHandler(service users.UserUseCase, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: service, logger: logger}
}

// Register mounts the public auth routes.
func (h *UserHandler) Register(router *gin.RouterGroup) {
	router.POST("/signup", h.signup)
	router.POST("/login", h.login)
}

// RegisterProtected mounts routes that expect RequireAuth upstream.
func (h *UserHandler) RegisterProtected(router *gin.RouterGroup) {
	router.GET("/users/profile", h.profile)
}

func (h *UserHandler) signup(c *gin.Context) {
	var req signupRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	result, err := h.service.Register(c.Request.Context(), users.RegisterInput{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, signupResponse{Token: result.Token, UserID: result.UserID})
}

func (h *UserHandler) login(c *gin.Context) {
	var req loginRequest
	if err := bindJSON(c, &req); err != nil {
		writeError(c, h.logger, err)
		return
	}

	result, err := h.service.Login(c.Request.Context(), users.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, loginResponse{Token: result.Token})
}

func (h *UserHandler) profile(c *gin.Context) {
	userID, _ := UserIDFrom(c)
	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		writeError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, profileResponse{
		UserID:    user.ID,
		FullName:  user.FullName,
		Email:     user.Email,
		Phone:     user.Phone,
		CreatedAt: user.CreatedAt.UTC(),
	})
}
