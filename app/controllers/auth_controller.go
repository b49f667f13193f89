package controllers

import (
	"net/http"

	"github.com/bilemo/api/app/requests"
	"github.com/bilemo/api/app/resources"
	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/pkg/ctx"
)

type AuthController struct {
	service *services.AuthService
}

func NewAuthController(service *services.AuthService) *AuthController {
	return &AuthController{service: service}
}

// Login answers POST /api/login_check with {"token": "..."}.
func (c *AuthController) Login(cx *ctx.Context) {
	var in requests.Credentials
	if !cx.BindJSON(&in) {
		return
	}

	token, err := c.service.Login(cx.Context(), in.Username, in.Password)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.JSON(http.StatusOK, map[string]string{"token": token})
}

// Me describes the caller from their token.
func (c *AuthController) Me(cx *ctx.Context) {
	p := cx.Principal()
	if p == nil {
		cx.Unauthorized()
		return
	}
	cx.Success(resources.Me(*p))
}
