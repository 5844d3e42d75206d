package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/internal/service"
	"gin-gorm-shop/internal/transport/http/ez"
)

type addressReq struct {
	Street       string `json:"street"       binding:"required"`
	StreetNumber *int   `json:"streetNumber" binding:"required"`
	City         string `json:"city"         binding:"required"`
	State        string `json:"state"        binding:"required"`
	Country      string `json:"country"      binding:"required"`
	ZipCode      string `json:"zipCode"      binding:"required"`
}

type userCreateReq struct {
	Name      string       `json:"name"      binding:"required"`
	Email     string       `json:"email"     binding:"required,email"`
	Password  string       `json:"password"  binding:"required"`
	Phone     *string      `json:"phone"`
	Addresses []addressReq `json:"addresses" binding:"omitempty,dive"`
}

// addressPatchReq 带 id 为更新，不带为新增
type addressPatchReq struct {
	ID           string  `json:"id"`
	Street       *string `json:"street"`
	StreetNumber *int    `json:"streetNumber"`
	City         *string `json:"city"`
	State        *string `json:"state"`
	Country      *string `json:"country"`
	ZipCode      *string `json:"zipCode"`
}

type userPatchReq struct {
	Name      *string           `json:"name"     binding:"omitempty,min=1"`
	Email     *string           `json:"email"    binding:"omitempty,email"`
	Password  *string           `json:"password" binding:"omitempty,min=1"`
	Phone     *string           `json:"phone"`
	Addresses []addressPatchReq `json:"addresses"`
}

func (r userCreateReq) input() service.CreateUserInput {
	in := service.CreateUserInput{
		Name:      r.Name,
		Email:     r.Email,
		Password:  r.Password,
		Phone:     r.Phone,
		Addresses: make([]service.AddressInput, 0, len(r.Addresses)),
	}
	for _, a := range r.Addresses {
		in.Addresses = append(in.Addresses, service.AddressInput{
			Street:       a.Street,
			StreetNumber: *a.StreetNumber,
			City:         a.City,
			State:        a.State,
			Country:      a.Country,
			ZipCode:      a.ZipCode,
		})
	}
	return in
}

func (r userPatchReq) input() service.UpdateUserInput {
	in := service.UpdateUserInput{
		Name:     r.Name,
		Email:    r.Email,
		Password: r.Password,
		Phone:    r.Phone,
	}
	for _, a := range r.Addresses {
		in.Addresses = append(in.Addresses, service.AddressPatch{
			ID:           a.ID,
			Street:       a.Street,
			StreetNumber: a.StreetNumber,
			City:         a.City,
			State:        a.State,
			Country:      a.Country,
			ZipCode:      a.ZipCode,
		})
	}
	return in
}

type UserHandler struct{ svc *service.UserService }

func NewUserHandler(svc *service.UserService) *UserHandler { return &UserHandler{svc: svc} }

func (h *UserHandler) Priority() int { return 20 }

func (h *UserHandler) MountAPI(e ez.EZ) {
	ez.RegisterAction(e, ez.Action[userCreateReq, *domain.User]{
		Method: http.MethodPost,
		Path:   "/user",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userCreateReq) (*domain.User, error) {
			return h.svc.Create(c.Request.Context(), in.input())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, []domain.User]{
		Method: http.MethodGet,
		Path:   "/user",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.User, error) {
			return h.svc.FindAll(c.Request.Context())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/user/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.svc.FindByID(c.Request.Context(), c.Param("id"))
		},
	})

	ez.RegisterAction(e, ez.Action[userPatchReq, *domain.User]{
		Method: http.MethodPatch,
		Path:   "/user/:id",
		Binder: ez.BindJSON,
		Handler: func(c *gin.Context, in *userPatchReq) (*domain.User, error) {
			return h.svc.Update(c.Request.Context(), c.Param("id"), in.input())
		},
	})

	ez.RegisterAction(e, ez.Action[struct{}, *domain.User]{
		Method: http.MethodDelete,
		Path:   "/user/:id",
		Binder: ez.BindNone,
		Handler: func(c *gin.Context, _ *struct{}) (*domain.User, error) {
			return h.svc.Delete(c.Request.Context(), c.Param("id"))
		},
	})
}
