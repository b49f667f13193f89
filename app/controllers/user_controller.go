package controllers

import (
	"github.com/bilemo/api/app/requests"
	"github.com/bilemo/api/app/resources"
	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/pkg/ctx"
	"github.com/bilemo/api/pkg/resource"
)

type UserController struct {
	service *services.UserService
}

func NewUserController(service *services.UserService) *UserController {
	return &UserController{service: service}
}

func (c *UserController) Index(cx *ctx.Context) {
	page, perPage := cx.PageParams()
	users, pagination, err := c.service.List(cx.Context(), cx.Principal(), page, perPage)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Paginated(resource.Collection(users, resources.UserListItem), pagination)
}

func (c *UserController) Show(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	user, err := c.service.Find(cx.Context(), cx.Principal(), id)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(resource.Item(user, resources.UserItem))
}

func (c *UserController) Store(cx *ctx.Context) {
	var in requests.CreateUser
	if !cx.BindJSON(&in) {
		return
	}
	user, err := c.service.Create(cx.Context(), cx.Principal(), in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Created(resource.Item(user, resources.UserItem))
}

func (c *UserController) Update(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	var in requests.UpdateUser
	if !cx.BindJSON(&in) {
		return
	}
	user, err := c.service.Update(cx.Context(), cx.Principal(), id, in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(resource.Item(user, resources.UserItem))
}

func (c *UserController) Destroy(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	if err := c.service.Delete(cx.Context(), cx.Principal(), id); err != nil {
		fail(cx, err)
		return
	}
	cx.NoContent()
}
