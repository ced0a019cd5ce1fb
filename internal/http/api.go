package http

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"messagely/internal/auth"
	"messagely/internal/domain"
	"messagely/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users    service.UserService
	messages service.MessageService
	guard    auth.Guard
	tokens   *auth.TokenCodec
	logger   *logrus.Logger
}

func NewHandler(users service.UserService, messages service.MessageService, tokens *auth.TokenCodec, logger *logrus.Logger) *Handler {
	return &Handler{
		users:    users,
		messages: messages,
		tokens:   tokens,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware())
	router.Use(accessLogMiddleware(h.logger))

	router.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})

	authRoutes := router.Group("/auth")
	{
		authRoutes.POST("/login", h.login)
		authRoutes.POST("/register", h.register)
	}

	users := router.Group("/users", authMiddleware(h.tokens))
	{
		users.GET("", h.listUsers)
		users.GET("/:username", h.getUser)
		users.GET("/:username/to", h.messagesTo)
		users.GET("/:username/from", h.messagesFrom)
	}

	messages := router.Group("/messages", authMiddleware(h.tokens))
	{
		messages.GET("/:id", h.getMessage)
		messages.POST("", h.postMessage)
		messages.POST("/:id/read", h.markRead)
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *Handler) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submit both username and password"})
		return
	}
	if req.Username == "" || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submit both username and password"})
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

type registerRequest struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

func (h *Handler) register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	token, err := h.users.Register(c.Request.Context(), service.RegisterInput{
		Username:  req.Username,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *Handler) listUsers(c *gin.Context) {
	users, err := h.users.ListUsers(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]UserResponse, len(users))
	for i := range users {
		resp[i] = profileToResponse(users[i])
	}
	c.JSON(http.StatusOK, gin.H{"users": resp})
}

func (h *Handler) getUser(c *gin.Context) {
	target := c.Param("username")
	if !h.guard.CanAccessProfile(currentUser(c), target) {
		h.writeError(c, domain.ErrUnauthorized)
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), target)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": userToResponse(*user)})
}

func (h *Handler) messagesTo(c *gin.Context) {
	target := c.Param("username")
	if !h.guard.CanAccessProfile(currentUser(c), target) {
		h.writeError(c, domain.ErrUnauthorized)
		return
	}

	messages, err := h.messages.ListTo(c.Request.Context(), target)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]MessageResponse, len(messages))
	for i := range messages {
		resp[i] = messageToResponse(messages[i], withFromUser)
	}
	c.JSON(http.StatusOK, gin.H{"messages": resp})
}

func (h *Handler) messagesFrom(c *gin.Context) {
	target := c.Param("username")
	if !h.guard.CanAccessProfile(currentUser(c), target) {
		h.writeError(c, domain.ErrUnauthorized)
		return
	}

	messages, err := h.messages.ListFrom(c.Request.Context(), target)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := make([]MessageResponse, len(messages))
	for i := range messages {
		resp[i] = messageToResponse(messages[i], withToUser)
	}
	c.JSON(http.StatusOK, gin.H{"messages": resp})
}

func (h *Handler) getMessage(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	msg, err := h.messages.Get(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": messageToResponse(*msg, withFromUser|withToUser)})
}

type postMessageRequest struct {
	ToUsername string `json:"to_username"`
	Body       string `json:"body"`
}

func (h *Handler) postMessage(c *gin.Context) {
	var req postMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "submit both to_username and body"})
		return
	}

	msg, err := h.messages.Send(c.Request.Context(), currentUser(c), req.ToUsername, req.Body)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": sentMessageToResponse(*msg)})
}

func (h *Handler) markRead(c *gin.Context) {
	id, ok := messageID(c)
	if !ok {
		return
	}

	msg, err := h.messages.MarkRead(c.Request.Context(), currentUser(c), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	resp := gin.H{"id": msg.ID}
	if msg.ReadAt != nil {
		resp["read_at"] = msg.ReadAt.Format(time.RFC3339)
	}
	c.JSON(http.StatusOK, gin.H{"message": resp})
}

func messageID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return 0, false
	}
	return id, true
}

// writeError is the single boundary translator from error kind to HTTP status.
// Authentication and authorization failures share a 401 so responses do not
// reveal whether a resource exists for somebody else.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case domain.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case isAny(err, domain.ErrInvalidCredentials, domain.ErrUserAlreadyExists):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case isAny(err, domain.ErrInvalidToken, domain.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case isAny(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	default:
		h.logger.WithError(err).Error("request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

type UserResponse struct {
	Username    string  `json:"username"`
	FirstName   string  `json:"first_name"`
	LastName    string  `json:"last_name"`
	Phone       string  `json:"phone"`
	JoinAt      *string `json:"join_at,omitempty"`
	LastLoginAt *string `json:"last_login_at,omitempty"`
}

type MessageResponse struct {
	ID       int64         `json:"id"`
	Body     string        `json:"body"`
	SentAt   string        `json:"sent_at"`
	ReadAt   *string       `json:"read_at"`
	FromUser *UserResponse `json:"from_user,omitempty"`
	ToUser   *UserResponse `json:"to_user,omitempty"`
}

type SentMessageResponse struct {
	ID           int64  `json:"id"`
	FromUsername string `json:"from_username"`
	ToUsername   string `json:"to_username"`
	Body         string `json:"body"`
	SentAt       string `json:"sent_at"`
}

func profileToResponse(p domain.PublicProfile) UserResponse {
	return UserResponse{
		Username:  p.Username,
		FirstName: p.FirstName,
		LastName:  p.LastName,
		Phone:     p.Phone,
	}
}

func userToResponse(u domain.User) UserResponse {
	resp := profileToResponse(u.Public())
	joinAt := u.JoinAt.Format(time.RFC3339)
	resp.JoinAt = &joinAt
	if u.LastLoginAt != nil {
		v := u.LastLoginAt.Format(time.RFC3339)
		resp.LastLoginAt = &v
	}
	return resp
}

type participantMask int

const (
	withFromUser participantMask = 1 << iota
	withToUser
)

func messageToResponse(msg domain.MessageDetail, include participantMask) MessageResponse {
	resp := MessageResponse{
		ID:     msg.ID,
		Body:   msg.Body,
		SentAt: msg.SentAt.Format(time.RFC3339),
	}
	if msg.ReadAt != nil {
		v := msg.ReadAt.Format(time.RFC3339)
		resp.ReadAt = &v
	}
	if include&withFromUser != 0 {
		from := profileToResponse(msg.FromUser)
		resp.FromUser = &from
	}
	if include&withToUser != 0 {
		to := profileToResponse(msg.ToUser)
		resp.ToUser = &to
	}
	return resp
}

func sentMessageToResponse(msg domain.Message) SentMessageResponse {
	return SentMessageResponse{
		ID:           msg.ID,
		FromUsername: msg.FromUsername,
		ToUsername:   msg.ToUsername,
		Body:         msg.Body,
		SentAt:       msg.SentAt.Format(time.RFC3339),
	}
}

func isAny(err error, targets ...error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
