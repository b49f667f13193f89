package controllers

import (
	"errors"
	"net/http"

	"github.com/bilemo/api/app/requests"
	"github.com/bilemo/api/app/resources"
	"github.com/bilemo/api/app/services"
	"github.com/bilemo/api/pkg/ctx"
	"github.com/bilemo/api/pkg/resource"
)

// maxImageBytes caps an image upload request.
const maxImageBytes = 8 << 20

type ProductController struct {
	service *services.ProductService
}

func NewProductController(service *services.ProductService) *ProductController {
	return &ProductController{service: service}
}

func (c *ProductController) Index(cx *ctx.Context) {
	page, perPage := cx.PageParams()
	result, err := c.service.List(cx.Context(), page, perPage)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Paginated(resource.Collection(result.Items, resources.Product), result.Pagination)
}

func (c *ProductController) Show(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	p, err := c.service.Find(cx.Context(), id)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(resource.Item(p, resources.Product))
}

func (c *ProductController) Store(cx *ctx.Context) {
	var in requests.CreateProduct
	if !cx.BindJSON(&in) {
		return
	}
	p, err := c.service.Create(cx.Context(), in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Created(resource.Item(p, resources.Product))
}

func (c *ProductController) Update(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	var in requests.UpdateProduct
	if !cx.BindJSON(&in) {
		return
	}
	p, err := c.service.Update(cx.Context(), id, in)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(resource.Item(p, resources.Product))
}

func (c *ProductController) Destroy(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}
	if err := c.service.Delete(cx.Context(), id); err != nil {
		fail(cx, err)
		return
	}
	cx.NoContent()
}

// UploadImage accepts a multipart "image" file.
func (c *ProductController) UploadImage(cx *ctx.Context) {
	id, ok := pathID(cx)
	if !ok {
		return
	}

	cx.R.Body = http.MaxBytesReader(cx.W, cx.R.Body, maxImageBytes)
	file, header, err := cx.FormFile("image", maxImageBytes)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			cx.Error(http.StatusRequestEntityTooLarge, "Image too large.")
			return
		}
		cx.ValidationError(map[string]string{"image": "The image field is required."})
		return
	}
	defer file.Close()

	p, err := c.service.UploadImage(cx.Context(), id, header.Filename, file)
	if err != nil {
		fail(cx, err)
		return
	}
	cx.Success(resource.Item(p, resources.Product))
}
