// Package mockapi is an in-memory stand-in for the TapSoran platform API.
// It serves the exact REST contract the console consumes, for local
// development (-mock) and for tests.
package mockapi

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/time/rate"

	"github.com/tapsoran/admintui/domain"
)

type Server struct {
	mu sync.Mutex

	accounts      []*account
	tokens        map[string]string // token -> user id
	categories    []domain.Category
	requests      []domain.RequestRow
	conversations []domain.Conversation
	messages      map[string][]domain.Message
	complaints    []domain.Complaint
	notifications []domain.Notification
	legal         map[domain.LegalType]domain.LegalPage
}

func NewServer() *Server {
	s := &Server{
		tokens:   make(map[string]string),
		messages: make(map[string][]domain.Message),
		legal:    make(map[domain.LegalType]domain.LegalPage),
	}
	s.seed()
	return s
}

func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(NewRateLimiter(rate.Limit(50), 100).Middleware())

	r.POST("/auth/login", s.handleLogin)

	authed := r.Group("/", s.requireSuperAdmin())
	{
		authed.GET("/admin/stats", s.handleStats)

		authed.GET("/admin/categories", s.handleCategories)
		authed.POST("/admin/categories", s.handleCreateCategory)
		authed.PUT("/admin/categories/:id", s.handleUpdateCategory)
		authed.DELETE("/admin/categories/:id", s.handleDeleteCategory)

		authed.GET("/admin/users", s.handleUsers)
		authed.PATCH("/admin/users/:id/block", s.handleBlockUser)
		authed.PATCH("/admin/users/:id/unblock", s.handleUnblockUser)
		authed.DELETE("/admin/users/:id", s.handleDeleteUser)
		authed.PATCH("/admin/users/:id/freeze", s.handleFreezeUser)
		authed.PATCH("/admin/users/:id/unfreeze", s.handleUnfreezeUser)

		authed.GET("/admin/requests", s.handleRequests)
		authed.DELETE("/admin/requests/:id", s.handleDeleteRequest)
		authed.DELETE("/admin/requests", s.handleDeleteAllRequests)

		authed.GET("/admin/conversations", s.handleConversations)
		authed.GET("/admin/conversations/:id/messages", s.handleConversationMessages)

		authed.GET("/admin/complaints", s.handleComplaints)
		authed.PATCH("/admin/complaints/:id/status", s.handleComplaintStatus)
		authed.POST("/admin/complaints/:id/block", s.handleComplaintBlock)

		authed.GET("/admin/risk-users", s.handleRiskUsers)

		authed.GET("/admin/legal/:type", s.handleGetLegal)
		authed.PUT("/admin/legal/:type", s.handlePutLegal)

		authed.GET("/notifications", s.handleNotifications)
		authed.POST("/notifications/read-all", s.handleReadAll)
		authed.POST("/notifications/read-type", s.handleReadType)
	}

	return r
}

func (s *Server) Run(port int) error {
	return s.Router().Run(fmt.Sprintf(":%d", port))
}

func (s *Server) requireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		const prefix = "Bearer "
		header := c.GetHeader("Authorization")
		if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		s.mu.Lock()
		userId, ok := s.tokens[header[len(prefix):]]
		var acc *account
		if ok {
			acc = s.findAccount(userId)
		}
		s.mu.Unlock()

		if acc == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		if acc.user.Role != domain.RoleSuperAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "super admin only"})
			return
		}
		c.Set("userId", acc.user.Id)
		c.Next()
	}
}

func (s *Server) handleLogin(c *gin.Context) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	acc := s.findAccountByEmail(body.Email)
	if acc == nil || bcrypt.CompareHashAndPassword(acc.passwordHash, []byte(body.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}

	token := uuid.NewString()
	s.tokens[token] = acc.user.Id
	c.JSON(http.StatusOK, gin.H{"token": token, "user": acc.user})
}

func (s *Server) handleStats(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, domain.Stats{
		Users:      len(s.accounts),
		Categories: len(s.categories),
		Requests:   len(s.requests),
	})
}

func (s *Server) handleCategories(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.categories)
}

func (s *Server) handleCreateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	cat := domain.Category{Id: uuid.NewString(), Name: body.Name}

	s.mu.Lock()
	s.categories = append(s.categories, cat)
	s.mu.Unlock()

	c.JSON(http.StatusCreated, cat)
}

func (s *Server) handleUpdateCategory(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].Id == c.Param("id") {
			s.categories[i].Name = body.Name
			c.JSON(http.StatusOK, s.categories[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
}

func (s *Server) handleDeleteCategory(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.requests {
		if r.Category != nil && r.Category.Id == id {
			c.JSON(http.StatusConflict, gin.H{"error": "category has linked requests"})
			return
		}
	}
	for i := range s.categories {
		if s.categories[i].Id == id {
			s.categories = append(s.categories[:i], s.categories[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "category not found"})
}

func (s *Server) handleUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	users := make([]domain.User, 0, len(s.accounts))
	for _, a := range s.accounts {
		users = append(users, a.user)
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleBlockUser(c *gin.Context) {
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.findAccount(c.Param("id"))
	if acc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	now := time.Now()
	acc.user.Blocked = true
	acc.user.BlockedReason = body.Reason
	acc.user.BlockedAt = &now
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) handleUnblockUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.findAccount(c.Param("id"))
	if acc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	acc.user.Blocked = false
	acc.user.BlockedReason = ""
	acc.user.BlockedAt = nil
	acc.user.BlockedUntil = nil
	c.JSON(http.StatusOK, acc.user)
}

func (s *Server) handleDeleteUser(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()

	idx := -1
	for i, a := range s.accounts {
		if a.user.Id == id {
			idx = i
			break
		}
	}
	if idx == -1 {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	if s.accounts[idx].user.Role == domain.RoleSuperAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot delete a super admin"})
		return
	}
	s.accounts = append(s.accounts[:idx], s.accounts[idx+1:]...)

	// Cascade: the user's requests, conversations and complaints go too.
	var requests []domain.RequestRow
	for _, r := range s.requests {
		if r.Buyer == nil || r.Buyer.Id != id {
			requests = append(requests, r)
		}
	}
	s.requests = requests

	var convs []domain.Conversation
	for _, cv := range s.conversations {
		if cv.UserAId == id || cv.UserBId == id {
			delete(s.messages, cv.Id)
			continue
		}
		convs = append(convs, cv)
	}
	s.conversations = convs

	var complaints []domain.Complaint
	for _, cp := range s.complaints {
		if cp.Reporter.Id != id && cp.TargetUser.Id != id {
			complaints = append(complaints, cp)
		}
	}
	s.complaints = complaints

	c.Status(http.StatusNoContent)
}

func (s *Server) handleFreezeUser(c *gin.Context) {
	var body struct {
		Hours  int    `json:"hours"`
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Hours <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hours must be positive"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.findAccount(c.Param("id"))
	if acc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	until := time.Now().Add(time.Duration(body.Hours) * time.Hour)
	acc.chatFrozenUntil = &until
	c.JSON(http.StatusOK, gin.H{"chatFrozenUntil": until})
}

func (s *Server) handleUnfreezeUser(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc := s.findAccount(c.Param("id"))
	if acc == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
		return
	}
	acc.chatFrozenUntil = nil
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRequests(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.requests == nil {
		c.JSON(http.StatusOK, []domain.RequestRow{})
		return
	}
	c.JSON(http.StatusOK, s.requests)
}

func (s *Server) handleDeleteRequest(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.requests {
		if s.requests[i].Id == c.Param("id") {
			s.requests = append(s.requests[:i], s.requests[i+1:]...)
			c.Status(http.StatusNoContent)
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "request not found"})
}

func (s *Server) handleDeleteAllRequests(c *gin.Context) {
	s.mu.Lock()
	s.requests = nil
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleConversations(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.conversations)
}

func (s *Server) handleConversationMessages(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cv := range s.conversations {
		if cv.Id != id {
			continue
		}
		detail := domain.ConversationDetail{Id: cv.Id, Messages: s.messages[cv.Id]}
		if cv.UserA != nil {
			detail.UserA = *cv.UserA
		}
		if cv.UserB != nil {
			detail.UserB = *cv.UserB
		}
		c.JSON(http.StatusOK, detail)
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "conversation not found"})
}

func (s *Server) handleComplaints(c *gin.Context) {
	status := c.Query("status")

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Complaint, 0, len(s.complaints))
	for _, cp := range s.complaints {
		if status == "" || status == "ALL" || string(cp.Status) == status {
			out = append(out, cp)
		}
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleComplaintStatus(c *gin.Context) {
	var body struct {
		Status domain.ComplaintStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}
	switch body.Status {
	case domain.ComplaintOpen, domain.ComplaintResolved, domain.ComplaintDismissed:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown status"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.complaints {
		if s.complaints[i].Id == c.Param("id") {
			s.complaints[i].Status = body.Status
			c.JSON(http.StatusOK, s.complaints[i])
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
}

func (s *Server) handleComplaintBlock(c *gin.Context) {
	var body struct {
		Reason       string `json:"reason"`
		BlockedUntil string `json:"blockedUntil"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Reason == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "reason is required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.complaints {
		if s.complaints[i].Id != c.Param("id") {
			continue
		}
		acc := s.findAccount(s.complaints[i].TargetUser.Id)
		if acc != nil {
			now := time.Now()
			acc.user.Blocked = true
			acc.user.BlockedReason = body.Reason
			acc.user.BlockedAt = &now
			if until, err := time.Parse(time.RFC3339, body.BlockedUntil); err == nil {
				acc.user.BlockedUntil = &until
			}
		}
		s.complaints[i].Status = domain.ComplaintResolved
		s.complaints[i].TargetUser.Blocked = true
		c.JSON(http.StatusOK, s.complaints[i])
		return
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "complaint not found"})
}

func (s *Server) handleRiskUsers(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.RiskUser, 0)
	for _, a := range s.accounts {
		if a.reportCount == 0 && a.strikes == 0 && a.chatFrozenUntil == nil {
			continue
		}
		out = append(out, domain.RiskUser{
			Id:                a.user.Id,
			Role:              a.user.Role,
			FullName:          a.user.FullName,
			Email:             a.user.Email,
			Blocked:           a.user.Blocked,
			BlockedReason:     a.user.BlockedReason,
			BlockedAt:         a.user.BlockedAt,
			ReportCount:       a.reportCount,
			ModerationStrikes: a.strikes,
			ChatFrozenUntil:   a.chatFrozenUntil,
			CreatedAt:         a.createdAt,
		})
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleGetLegal(c *gin.Context) {
	t := domain.LegalType(c.Param("type"))
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown legal page type"})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.legal[t])
}

func (s *Server) handlePutLegal(c *gin.Context) {
	t := domain.LegalType(c.Param("type"))
	if !t.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown legal page type"})
		return
	}
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "malformed body"})
		return
	}

	now := time.Now()
	page := domain.LegalPage{Type: t, Title: body.Title, Content: body.Content, UpdatedAt: &now}

	s.mu.Lock()
	s.legal[t] = page
	s.mu.Unlock()

	c.JSON(http.StatusOK, page)
}

func (s *Server) handleNotifications(c *gin.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.JSON(http.StatusOK, s.notifications)
}

func (s *Server) handleReadAll(c *gin.Context) {
	now := time.Now()
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].ReadAt == nil {
			ts := now
			s.notifications[i].ReadAt = &ts
		}
	}
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

func (s *Server) handleReadType(c *gin.Context) {
	var body struct {
		Type domain.NotificationType `json:"type"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "type is required"})
		return
	}

	now := time.Now()
	s.mu.Lock()
	for i := range s.notifications {
		if s.notifications[i].Type == body.Type && s.notifications[i].ReadAt == nil {
			ts := now
			s.notifications[i].ReadAt = &ts
		}
	}
	s.mu.Unlock()
	c.Status(http.StatusNoContent)
}

// PushNotification appends a server-side notification. Used by tests to
// simulate new unread rows between polls.
func (s *Server) PushNotification(n domain.Notification) {
	s.mu.Lock()
	s.notifications = append(s.notifications, n)
	s.mu.Unlock()
}
