package controllers

import (
	"github.com/bilemo/api/app/requests"
	"github.com/bilemo/api/app/resources"
	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/pkg/ctx"
	"github.com/bilemo/api/pkg/resource"
)

type ClientController struct {
	service *services.ClientService
}

func NewClientController(service *services.ClientService) *ClientController {
	return &ClientController{service: service}
}

func (c *ClientController) Index(cx *ctx.Context) {
	page, perPage := cx.PageParams()
	clients, pagination, err := c.service.List(cx.Context(), cx.Principal(), page, perPage)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Paginated(resource.Collection(clients, resources.ClientListItem), pagination)
}

func (c *ClientController) Show(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	client, err := c.service.Find(cx.Context(), cx.Principal(), id)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(resource.Item(client, resources.ClientItem))
}

func (c *ClientController) Store(cx *ctx.Context) {
	var in requests.CreateClient
	if !cx.BindJSON(&in) {
		return
	}
	client, err := c.service.Create(cx.Context(), in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Created(resource.Item(client, resources.ClientItem))
}

func (c *ClientController) Update(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	var in requests.UpdateClient
	if !cx.BindJSON(&in) {
		return
	}
	client, err := c.service.Update(cx.Context(), cx.Principal(), id, in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(resource.Item(client, resources.ClientItem))
}

func (c *ClientController) Destroy(cx *ctx.Context) {
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
