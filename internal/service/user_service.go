package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"gin-gorm-shop/internal/core/events"
	"gin-gorm-shop/internal/domain"
	"gin-gorm-shop/pkg/utils"
)

type AddressInput struct {
	Street       string
	StreetNumber int
	City         string
	State        string
	Country      string
	ZipCode      string
}

// AddressPatch 没有 ID 时按新地址插入，此时各字段必填
type AddressPatch struct {
	ID           string
	Street       *string
	StreetNumber *int
	City         *string
	State        *string
	Country      *string
	ZipCode      *string
}

type CreateUserInput struct {
	Name      string
	Email     string
	Password  string
	Phone     *string
	Addresses []AddressInput
}

type UpdateUserInput struct {
	Name      *string
	Email     *string
	Password  *string
	Phone     *string
	Addresses []AddressPatch
}

type UserService struct {
	store domain.Gateway
	pub   events.Publisher
	log   *zap.Logger
}

func NewUserService(store domain.Gateway, pub events.Publisher, l *zap.Logger) *UserService {
	if pub == nil {
		pub = events.Nop{}
	}
	if l == nil {
		l = zap.NewNop()
	}
	return &UserService{store: store, pub: pub, log: l}
}

var errEmailTaken = fmt.Errorf("%w: email is already registered", domain.ErrConflict)

func hashPassword(pw string) (string, error) {
	h, err := utils.HashPassword(pw)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", badRequest("password is too long")
	}
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return h, nil
}

// activeUser 不存在 → NotFound，已软删 → BadRequest
func activeUser(ctx context.Context, gw domain.Gateway, id string) (*domain.User, error) {
	u, err := gw.Users().FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, notFound("user with ID %s not found", id)
	}
	if u.Deleted() {
		return nil, badRequest("user with ID %s is already deleted", id)
	}
	return u, nil
}

func (a AddressInput) validate() error {
	switch {
	case strings.TrimSpace(a.Street) == "":
		return badRequest("address street is required")
	case strings.TrimSpace(a.City) == "":
		return badRequest("address city is required")
	case strings.TrimSpace(a.State) == "":
		return badRequest("address state is required")
	case strings.TrimSpace(a.Country) == "":
		return badRequest("address country is required")
	case strings.TrimSpace(a.ZipCode) == "":
		return badRequest("address zipCode is required")
	}
	return nil
}

func (a AddressInput) toModel(userID string) domain.Address {
	return domain.Address{
		ID:           utils.NewID(),
		Street:       a.Street,
		StreetNumber: a.StreetNumber,
		City:         a.City,
		State:        a.State,
		Country:      a.Country,
		ZipCode:      a.ZipCode,
		UserID:       userID,
	}
}

// asInput 新地址必须给全字段
func (p AddressPatch) asInput() (AddressInput, error) {
	if p.Street == nil || p.StreetNumber == nil || p.City == nil ||
		p.State == nil || p.Country == nil || p.ZipCode == nil {
		return AddressInput{}, badRequest("new address requires street, streetNumber, city, state, country and zipCode")
	}
	in := AddressInput{
		Street:       *p.Street,
		StreetNumber: *p.StreetNumber,
		City:         *p.City,
		State:        *p.State,
		Country:      *p.Country,
		ZipCode:      *p.ZipCode,
	}
	return in, in.validate()
}

func (p AddressPatch) fields() map[string]any {
	f := map[string]any{}
	if p.Street != nil {
		f["street"] = *p.Street
	}
	if p.StreetNumber != nil {
		f["street_number"] = *p.StreetNumber
	}
	if p.City != nil {
		f["city"] = *p.City
	}
	if p.State != nil {
		f["state"] = *p.State
	}
	if p.Country != nil {
		f["country"] = *p.Country
	}
	if p.ZipCode != nil {
		f["zip_code"] = *p.ZipCode
	}
	return f
}

func (s *UserService) Create(ctx context.Context, in CreateUserInput) (*domain.User, error) {
	in.Email = strings.TrimSpace(in.Email)
	if strings.TrimSpace(in.Name) == "" {
		return nil, badRequest("name is required")
	}
	if in.Email == "" {
		return nil, badRequest("email is required")
	}
	if in.Password == "" {
		return nil, badRequest("password is required")
	}
	for _, a := range in.Addresses {
		if err := a.validate(); err != nil {
			return nil, err
		}
	}
	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Phone:        in.Phone,
		Addresses:    make([]domain.Address, 0, len(in.Addresses)),
	}
	err = s.store.Transaction(ctx, func(tx domain.Gateway) error {
		taken, err := tx.Users().EmailExists(ctx, u.Email)
		if err != nil {
			return err
		}
		if taken {
			return errEmailTaken
		}
		if err := tx.Users().Create(ctx, u); err != nil {
			return err
		}
		// 逐条写入，任何一条失败整体回滚
		for _, a := range in.Addresses {
			addr := a.toModel(u.ID)
			if err := tx.Addresses().Create(ctx, &addr); err != nil {
				return fmt.Errorf("create address: %w", err)
			}
			u.Addresses = append(u.Addresses, addr)
		}
		return nil
	})
	if err != nil {
		return nil, dupAsConflict(err, errEmailTaken)
	}
	emit(s.pub, events.UserCreated, u.ID, u)
	return u, nil
}

func (s *UserService) FindAll(ctx context.Context) ([]domain.User, error) {
	return s.store.Users().ListActive(ctx)
}

func (s *UserService) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return activeUser(ctx, s.store, id)
}

// FindByEmail 不区分软删，找不到返回 nil
func (s *UserService) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.store.Users().FindByEmail(ctx, email)
}

func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*domain.User, error) {
	fields := map[string]any{}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, badRequest("name must not be empty")
		}
		fields["name"] = *in.Name
	}
	if in.Phone != nil {
		fields["phone"] = *in.Phone
	}
	if in.Password != nil {
		if *in.Password == "" {
			return nil, badRequest("password must not be empty")
		}
		hash, err := hashPassword(*in.Password)
		if err != nil {
			return nil, err
		}
		fields["password"] = hash
	}
	var email string
	if in.Email != nil {
		email = strings.TrimSpace(*in.Email)
		if email == "" {
			return nil, badRequest("email must not be empty")
		}
	}
	// 新地址先校验，避免进事务后才失败
	fresh := make(map[int]AddressInput)
	for i, p := range in.Addresses {
		if p.ID != "" {
			continue
		}
		a, err := p.asInput()
		if err != nil {
			return nil, err
		}
		fresh[i] = a
	}

	var out *domain.User
	err := s.store.Transaction(ctx, func(tx domain.Gateway) error {
		cur, err := activeUser(ctx, tx, id)
		if err != nil {
			return err
		}
		if email != "" && email != cur.Email {
			taken, err := tx.Users().EmailExists(ctx, email)
			if err != nil {
				return err
			}
			if taken {
				return errEmailTaken
			}
			fields["email"] = email
		}
		for i, p := range in.Addresses {
			if p.ID == "" {
				addr := fresh[i].toModel(id)
				if err := tx.Addresses().Create(ctx, &addr); err != nil {
					return fmt.Errorf("create address: %w", err)
				}
				continue
			}
			ok, err := tx.Addresses().UpdateForUser(ctx, p.ID, id, p.fields())
			if err != nil {
				return fmt.Errorf("update address: %w", err)
			}
			if !ok {
				return notFound("address with ID %s not found", p.ID)
			}
		}
		if err := tx.Users().Updates(ctx, id, fields); err != nil {
			return err
		}
		out, err = tx.Users().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, dupAsConflict(err, errEmailTaken)
	}
	emit(s.pub, events.UserUpdated, id, out)
	return out, nil
}

// Delete 先软删地址再软删用户，同一事务
func (s *UserService) Delete(ctx context.Context, id string) (*domain.User, error) {
	if _, err := activeUser(ctx, s.store, id); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	var out *domain.User
	err := s.store.Transaction(ctx, func(tx domain.Gateway) error {
		if err := tx.Addresses().SoftDeleteByUser(ctx, id, now); err != nil {
			return fmt.Errorf("delete addresses: %w", err)
		}
		if err := tx.Users().SoftDelete(ctx, id, now); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		var err error
		out, err = tx.Users().FindByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.log.Info("user deleted", zap.String("id", id))
	emit(s.pub, events.UserDeleted, id, out)
	return out, nil
}
