package controllers

import (
	"github.com/shashiranjanraj/plantnet/app/services"
	"github.com/shashiranjanraj/plantnet/pkg/ctx"
	"github.com/shashiranjanraj/plantnet/pkg/session"
)

type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// Save handles POST /users/{email}.
func (u *UserController) Save(c *ctx.Context) {
	var in services.UserInput
	if c.R.ContentLength != 0 && !c.BindJSON(&in) {
		return
	}

	user, err := u.users.Save(c.Context(), c.Param("email"), in)
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(user)
}

// Role handles GET /user/role/{email}.
func (u *UserController) Role(c *ctx.Context) {
	role, err := u.users.Role(c.Context(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"role": role})
}

// RequestSeller handles PATCH /user/{email}.
func (u *UserController) RequestSeller(c *ctx.Context, s session.Session) {
	if err := u.users.RequestSeller(c.Context(), s, c.Param("email")); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"status": "Requested"})
}

// Index handles GET /all-users/{email}.
func (u *UserController) Index(c *ctx.Context, _ session.Session) {
	users, err := u.users.AllExcept(c.Context(), c.Param("email"))
	if err != nil {
		fail(c, err)
		return
	}
	c.Success(users)
}

// UpdateRole handles PATCH /user-role/{email}.
func (u *UserController) UpdateRole(c *ctx.Context, _ session.Session) {
	var body struct {
		Role string `json:"role" validate:"required,in=customer,seller,admin"`
	}
	if !c.BindJSON(&body) {
		return
	}

	if err := u.users.SetRole(c.Context(), c.Param("email"), body.Role); err != nil {
		fail(c, err)
		return
	}
	c.Success(map[string]string{"role": body.Role, "status": "Verified"})
}
