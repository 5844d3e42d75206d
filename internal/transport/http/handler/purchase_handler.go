package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/internal/service"
	"gin-gorm-shop/internal/transport/http/ez"
	mdw "gin-gorm-shop/internal/transport/http/middleware"
)

type lineItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity"  binding:"required,gt=0"`
}

type purchaseCreateReq struct {
	UserID       string        `json:"userId"       binding:"required"`
	PurchaseDate isoDate       `json:"purchaseDate"`
	Products     []lineItemReq `json:"products"     binding:"required,min=1,dive"`
}

type PurchaseHandler struct {
	svc  *service.PurchaseService
	auth gin.HandlerFunc
}

// NewPurchaseHandler authMW 只加在创建接口上
func NewPurchaseHandler(svc *service.PurchaseService, authMW gin.HandlerFunc) *PurchaseHandler {
	return &PurchaseHandler{svc: svc, auth: authMW}
}

func (h *PurchaseHandler) Priority() int { return 30 }

func (h *PurchaseHandler) MountAPI(e ez.EZ) {
	authed := e.Group(h.auth)
	ez.RegisterAction(authed, ez.Action[purchaseCreateReq, *domain.Purchase]{
		Method: http.MethodPost,
		Path:   "/purchase",
		Binder: ez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *purchaseCreateReq) (*domain.Purchase, error) {
			// 只能替自己下单
			if in.UserID != c.GetString(mdw.KeyUserID) {
				return nil, ez.Unauthorized("userId does not match token")
			}
			items := make([]service.LineItemInput, 0, len(in.Products))
			for _, p := range in.Products {
				items = append(items, service.LineItemInput{ProductID: p.ProductID, Quantity: p.Quantity})
			}
			return h.svc.Create(c.Request.Context(), service.CreatePurchaseInput{
				UserID:       in.UserID,
				PurchaseDate: in.PurchaseDate.Time,
				Products:     items,
			})
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.Purchase]{
		Method: http.MethodGet,
		Path:   "/purchase",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Purchase, error) {
			return h.svc.FindAll(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Purchase]{
		Method: http.MethodGet,
		Path:   "/purchase/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Purchase, error) {
			return h.svc.FindByID(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.Purchase]{
		Method: http.MethodDelete,
		Path:   "/purchase/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.Purchase, error) {
			return h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})
}
