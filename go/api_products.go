package backofficeserver

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	cataloghttpmapper "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/adapters/http/mapper"
	catalogports "github.com/Apurer/go-gin-backoffice/internal/domains/catalog/ports"
	"github.com/Apurer/go-gin-backoffice/internal/shared/response"
)

// ProductsAPI exposes catalog management.
type ProductsAPI struct {
	service catalogports.Service
}

func NewProductsAPI(service catalogports.Service) ProductsAPI {
	return ProductsAPI{service: service}
}

// Get /api/v1/products/get_products/
func (api *ProductsAPI) GetProducts(c *gin.Context) {
	products, err := api.service.ListProducts(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ProductsResponse{Products: cataloghttpmapper.FromDomainProducts(products)})
}

// Get /api/v1/products/get_product/
func (api *ProductsAPI) GetProduct(c *gin.Context) {
	id, ok := parseIDQuery(c, "product_id")
	if !ok {
		return
	}
	product, err := api.service.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ProductResponse{Product: cataloghttpmapper.FromDomainProduct(product)})
}

// Post /api/v1/products/create_product/
func (api *ProductsAPI) CreateProduct(c *gin.Context) {
	var payload cataloghttpmapper.ProductMutation
	if err := c.ShouldBind(&payload); err != nil {
		respondBindError(c, "", err)
		return
	}
	input := cataloghttpmapper.ToProductInput(payload)
	image, file, err := imageUpload(c)
	if err != nil {
		respondBindError(c, "Image", err)
		return
	}
	if file != nil {
		defer file.Close()
	}
	input.Image = image
	created, err := api.service.CreateProduct(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, CreateProductResponse{ProductID: created.ID})
}

// Put /api/v1/products/update_product/
// Applies the fields present in the body. Form bodies name the product with product_id.
func (api *ProductsAPI) UpdateProduct(c *gin.Context) {
	var payload UpdateProductRequest
	if err := c.ShouldBind(&payload); err != nil {
		respondBodyError(c, "id", err)
		return
	}
	id, ok := requireID(c, updateIDField(c, "product_id"), payload.ID)
	if !ok {
		return
	}
	input := cataloghttpmapper.ToProductInput(payload.ProductMutation)
	image, file, err := imageUpload(c)
	if err != nil {
		respondBindError(c, "Image", err)
		return
	}
	if file != nil {
		defer file.Close()
	}
	input.Image = image
	updated, err := api.service.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, ProductResponse{Product: cataloghttpmapper.FromDomainProduct(updated)})
}

// Delete /api/v1/products/delete_product/
// Order lines keep their snapshots and lose the product reference
func (api *ProductsAPI) DeleteProduct(c *gin.Context) {
	var payload DeleteProductRequest
	id, ok := deleteTarget(c, "product_id", &payload, func() *ID { return payload.ProductID })
	if !ok {
		return
	}
	if err := api.service.DeleteProduct(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, nil)
}

// imageUpload opens the optional Image part of a multipart body. The caller closes the returned file.
func imageUpload(c *gin.Context) (*catalogports.ImageUpload, io.Closer, error) {
	if c.ContentType() != binding.MIMEMultipartPOSTForm {
		return nil, nil, nil
	}
	header, err := c.FormFile("Image")
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, err
	}
	file, err := header.Open()
	if err != nil {
		return nil, nil, err
	}
	return &catalogports.ImageUpload{Filename: header.Filename, Content: file}, file, nil
}
