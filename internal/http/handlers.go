package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"blogr/internal/domain"
	"blogr/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users         service.UserService
	posts         service.PostService
	sessionSecret []byte
	sessionTTL    time.Duration
	logger        *logrus.Logger
}

func NewHandler(users service.UserService, posts service.PostService, sessionSecret string, sessionTTL time.Duration, logger *logrus.Logger) *Handler {
	return &Handler{
		users:         users,
		posts:         posts,
		sessionSecret: []byte(sessionSecret),
		sessionTTL:    sessionTTL,
		logger:        logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(requestLogger(h.logger))
	router.Use(h.loadCurrentUser())

	router.GET("/", h.index)

	auth := router.Group("/auth")
	{
		auth.GET("/register", h.showRegister)
		auth.POST("/register", h.register)
		auth.GET("/login", h.showLogin)
		auth.POST("/login", h.login)
		auth.GET("/logout", h.logout)
	}

	router.GET("/create", h.showCreate)
	router.POST("/create", h.createPost)
	router.GET("/:id/update", h.showUpdate)
	router.POST("/:id/update", h.updatePost)
	router.POST("/:id/delete", h.deletePost)

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": "ok"})
	})
}

// requireUser is the explicit first step of every protected handler. It
// redirects anonymous clients to the login page and reports whether the
// handler should proceed.
func (h *Handler) requireUser(c *gin.Context) (*domain.User, bool) {
	user := currentUser(c)
	if user == nil {
		c.Redirect(http.StatusSeeOther, "/auth/login")
		return nil, false
	}
	return user, true
}

func (h *Handler) index(c *gin.Context) {
	posts, err := h.posts.List(c.Request.Context())
	if err != nil {
		h.logger.WithError(err).Error("list posts")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.HTML(http.StatusOK, "index.html", gin.H{
		"User":  currentUser(c),
		"Posts": posts,
	})
}

func (h *Handler) showRegister(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"User": currentUser(c), "Error": "", "Username": ""})
}

func (h *Handler) register(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	_, err := h.users.Register(c.Request.Context(), username, password)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, service.ErrUsernameRequired):
			msg = "Username is required."
		case errors.Is(err, service.ErrPasswordRequired):
			msg = "Password is required."
		case errors.Is(err, service.ErrUsernameTaken):
			msg = fmt.Sprintf("User %s is already registered.", username)
		default:
			h.logger.WithError(err).Error("register user")
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.HTML(http.StatusOK, "register.html", gin.H{
			"User":     currentUser(c),
			"Error":    msg,
			"Username": username,
		})
		return
	}

	c.Redirect(http.StatusSeeOther, "/auth/login")
}

func (h *Handler) showLogin(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"User": currentUser(c), "Error": "", "Username": ""})
}

func (h *Handler) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := h.users.Authenticate(c.Request.Context(), username, password)
	if err != nil {
		var msg string
		switch {
		case errors.Is(err, service.ErrUnknownUsername):
			msg = "Incorrect username."
		case errors.Is(err, service.ErrWrongPassword):
			msg = "Incorrect password."
		default:
			h.logger.WithError(err).Error("authenticate user")
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.HTML(http.StatusOK, "login.html", gin.H{
			"User":     currentUser(c),
			"Error":    msg,
			"Username": username,
		})
		return
	}

	token, err := issueSessionToken(user.ID, h.sessionSecret, h.sessionTTL)
	if err != nil {
		h.logger.WithError(err).Error("issue session token")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}
	setSessionCookie(c, token, h.sessionTTL)

	c.Redirect(http.StatusSeeOther, "/")
}

// logout is unconditional: clearing an absent session is a no-op.
func (h *Handler) logout(c *gin.Context) {
	clearSessionCookie(c)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) showCreate(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	c.HTML(http.StatusOK, "create.html", gin.H{"User": user, "Error": "", "Title": "", "Body": ""})
}

func (h *Handler) createPost(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	body := c.PostForm("body")

	if _, err := h.posts.Create(c.Request.Context(), title, body, user.ID); err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			c.HTML(http.StatusOK, "create.html", gin.H{
				"User":  user,
				"Error": "Title is required.",
				"Title": title,
				"Body":  body,
			})
			return
		}
		h.logger.WithError(err).Error("create post")
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) showUpdate(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	post, err := h.posts.GetForAuthor(c.Request.Context(), id, user.ID)
	if err != nil {
		h.renderPostError(c, id, err)
		return
	}

	c.HTML(http.StatusOK, "update.html", gin.H{
		"User":  user,
		"Error": "",
		"Post":  post,
	})
}

func (h *Handler) updatePost(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	title := c.PostForm("title")
	body := c.PostForm("body")

	if err := h.posts.Update(c.Request.Context(), id, user.ID, title, body); err != nil {
		if errors.Is(err, service.ErrTitleRequired) {
			c.HTML(http.StatusOK, "update.html", gin.H{
				"User":  user,
				"Error": "Title is required.",
				"Post":  &domain.Post{ID: id, Title: title, Body: body},
			})
			return
		}
		h.renderPostError(c, id, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) deletePost(c *gin.Context) {
	user, ok := h.requireUser(c)
	if !ok {
		return
	}

	id, ok := postID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), id, user.ID); err != nil {
		h.renderPostError(c, id, err)
		return
	}

	c.Redirect(http.StatusSeeOther, "/")
}

func (h *Handler) renderPostError(c *gin.Context, id int64, err error) {
	switch {
	case errors.Is(err, service.ErrPostNotFound):
		c.String(http.StatusNotFound, "Post id %d doesn't exist.", id)
	case errors.Is(err, service.ErrNotPostAuthor):
		c.String(http.StatusForbidden, "You are not the author of this post.")
	default:
		h.logger.WithError(err).Error("post operation")
		c.String(http.StatusInternalServerError, "internal error")
	}
}

func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Post id %s doesn't exist.", c.Param("id"))
		return 0, false
	}
	return id, true
}
