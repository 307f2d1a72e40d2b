package controllers

import (
	"github.com/shashiranjanraj/plantnet/pkg/ctx"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

type AuthController struct {
	sessions *session.Manager
}

func NewAuthController(sessions *session.Manager) *AuthController {
	return &AuthController{sessions: sessions}
}

// IssueToken handles POST /jwt.
func (a *AuthController) IssueToken(c *ctx.Context) {
	var body struct {
		Email string `json:"email" validate:"required,email"`
	}
	if !c.BindJSON(&body) {
		return
	}

	if _, err := a.sessions.Issue(c.W, body.Email); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]bool{"success": true})
}

// Logout handles GET /logout. It succeeds with or without a session.
func (a *AuthController) Logout(c *ctx.Context) {
	a.sessions.Clear(c.W, c.R)
	c.Success(map[string]bool{"success": true})
}
