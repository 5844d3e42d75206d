package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	UserCreated     = "user.created"
	UserUpdated     = "user.updated"
	UserDeleted     = "user.deleted"
	ProductCreated  = "product.created"
	ProductUpdated  = "product.updated"
	ProductDeleted  = "product.deleted"
	PurchaseCreated = "purchase.created"
	PurchaseDeleted = "purchase.deleted"
)

type Event struct {
	ID       uuid.UUID `json:"event_id"`
	TS       time.Time `json:"time_stamp"`
	Type     string    `json:"type"`
	EntityID string    `json:"entity_id"`
	Payload  any       `json:"payload"`
}

func New(typ, entityID string, payload any) Event {
	return Event{ID: uuid.New(), TS: time.Now().UTC(), Type: typ, EntityID: entityID, Payload: payload}
}

// Publisher 只在事务提交之后调用，不能阻塞请求
type Publisher interface {
	Publish(e Event)
}

type Nop struct{}

func (Nop) Publish(Event) {}
