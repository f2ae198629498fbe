package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/electrohub/internal/domain/model"
	"github.com/polkiloo/electrohub/internal/server/http/dto"
)

// CatalogHandler serves product and category endpoints.
type CatalogHandler struct {
	facade CatalogFacade
}

// NewCatalogHandler constructs CatalogHandler.
func NewCatalogHandler(facade CatalogFacade) *CatalogHandler {
	return &CatalogHandler{facade: facade}
}

// AddProduct handles POST /addProduct.
func (h *CatalogHandler) AddProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.facade.AddProduct(c.Request.Context(), fromProductRequest("", req))
	if err != nil {
		respondError(c, err, "Error adding product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product added successfully", "data": toProductResponse(*product)})
}

// Product handles GET /getProductById/:id.
func (h *CatalogHandler) Product(c *gin.Context) {
	product, err := h.facade.Product(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err, "Error fetching product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product fetched successfully", "data": toProductResponse(*product)})
}

// UpdateProduct handles PUT /editProduct/:id.
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	var req dto.ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	product, err := h.facade.UpdateProduct(c.Request.Context(), fromProductRequest(c.Param("id"), req))
	if err != nil {
		respondError(c, err, "Error updating product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product updated successfully", "data": toProductResponse(*product)})
}

// DeleteProduct handles DELETE /deleteProduct/:id.
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	if err := h.facade.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err, "Error deleting product")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// AddCategory handles POST /addCategory.
func (h *CatalogHandler) AddCategory(c *gin.Context) {
	var req dto.CategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	category, err := h.facade.AddCategory(c.Request.Context(), req.Name)
	if err != nil {
		respondError(c, err, "Error adding category")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Category added successfully", "data": toCategoryResponse(*category)})
}

// Categories handles GET /getCategories.
func (h *CatalogHandler) Categories(c *gin.Context) {
	categories, err := h.facade.Categories(c.Request.Context())
	if err != nil {
		respondError(c, err, "Error fetching categories")
		return
	}
	response := make([]dto.CategoryResponse, 0, len(categories))
	for _, category := range categories {
		response = append(response, toCategoryResponse(category))
	}
	c.JSON(http.StatusOK, gin.H{"message": "Categories fetched successfully", "data": response})
}

func fromProductRequest(id string, req dto.ProductRequest) model.Product {
	p := model.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
		Brand:       req.Brand,
		Image:       req.Image,
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	return p
}

func toProductResponse(p model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Brand:       p.Brand,
		Image:       p.Image,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.CategoryDetails != nil {
		category := toCategoryResponse(*p.CategoryDetails)
		resp.CategoryDetails = &category
	}
	return resp
}

func toCategoryResponse(c model.Category) dto.CategoryResponse {
	return dto.CategoryResponse{ID: c.ID, Name: c.Name, CreatedAt: c.CreatedAt}
}
