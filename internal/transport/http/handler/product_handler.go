package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/internal/service"
	"gin-gorm-shop/internal/transport/http/ez"
)

type productCreateReq struct {
	Name        string  `json:"name"        binding:"required"`
	Description string  `json:"description" binding:"required"`
	Price       float64 `json:"price"       binding:"required,gt=0"`
	Quantity    *int    `json:"quantity"    binding:"required,gte=0"`
}

type productPatchReq struct {
	Name        *string  `json:"name"        binding:"omitempty,min=1"`
	Description *string  `json:"description" binding:"omitempty,min=1"`
	Price       *float64 `json:"price"       binding:"omitempty,gt=0"`
	Quantity    *int     `json:"quantity"    binding:"omitempty,gte=0"`
}

type productSearchQ struct {
	Name string `form:"name"`
}

type ProductHandler struct{ svc *service.ProductService }

func NewProductHandler(svc *service.ProductService) *ProductHandler {
	return &ProductHandler{svc: svc}
}

func (h *ProductHandler) Priority() int { return 10 }

func (h *ProductHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[productCreateReq, *domain.Product]{
		Method: http.MethodPost,
		Path:   "/product",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *productCreateReq) (*domain.Product, error) {
			return h.svc.Create(c.Request.Context(), service.ProductInput{
				Name:        in.Name,
				Description: in.Description,
				Price:       in.Price,
				Quantity:    *in.Quantity,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/product",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Product, error) {
			return h.svc.FindAll(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[productSearchQ, []domain.Product]{
		Method: http.MethodGet,
		Path:   "/product/search",
		Binder: ez.BindQuery,
		Handler: func(c *gin.Context, in *productSearchQ) ([]domain.Product, error) {
			return h.svc.Search(c.Request.Context(), in.Name)
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodGet,
		Path:   "/product/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			return h.svc.FindByID(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[productPatchReq, *domain.Product]{
		Method: http.MethodPatch,
		Path:   "/product/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *productPatchReq) (*domain.Product, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), service.ProductPatch{
				Name:        in.Name,
				Description: in.Description,
				Price:       in.Price,
				Quantity:    in.Quantity,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Product]{
		Method: http.MethodDelete,
		Path:   "/product/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Product, error) {
			return h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})
}
