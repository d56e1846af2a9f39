package orderstore

import (
	"fmt"
	"time"

	"fooddelivery/internal/adapters/out/mongodb"
	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// orderDocument is the persisted shape of the order aggregate. Money is
// stored as decimal strings to avoid float drift; the delivery point is
// GeoJSON. The version field backs the conditional writes in UpdateIf.
type orderDocument struct {
	ID         string              `bson:"_id"`
	Number     string              `bson:"number"`
	CustomerID string              `bson:"customerId"`
	Items      []lineItemDocument  `bson:"items"`
	Pricing    pricingDocument     `bson:"pricing"`
	Address    addressDocument     `bson:"deliveryAddress"`
	Payment    string              `bson:"paymentMethod"`
	Status     string              `bson:"status"`
	History    []historyDocument   `bson:"statusHistory"`
	Assignment *assignmentDocument `bson:"courierAssignment,omitempty"`
	Cash       *cashDocument       `bson:"cashCollection,omitempty"`
	Version    int64               `bson:"version"`
}

type lineItemDocument struct {
	CatalogItemID  string   `bson:"catalogItemId"`
	Name           string   `bson:"name"`
	UnitPrice      string   `bson:"unitPrice"`
	Quantity       int      `bson:"quantity"`
	Customizations []string `bson:"customizations,omitempty"`
}

type pricingDocument struct {
	ItemsTotal  string `bson:"itemsTotal"`
	DeliveryFee string `bson:"deliveryFee"`
	Tax         string `bson:"tax"`
	Discount    string `bson:"discount"`
	FinalAmount string `bson:"finalAmount"`
}

type addressDocument struct {
	Street   string          `bson:"street"`
	Building string          `bson:"building,omitempty"`
	City     string          `bson:"city"`
	Note     string          `bson:"note,omitempty"`
	Location mongodb.GeoJSON `bson:"location"`
}

type historyDocument struct {
	Status    string    `bson:"status"`
	Timestamp time.Time `bson:"timestamp"`
	ActorRole string    `bson:"actorRole"`
	ActorID   string    `bson:"actorId"`
	Note      string    `bson:"note,omitempty"`
}

type assignmentDocument struct {
	CourierID   string     `bson:"courierId"`
	CourierName string     `bson:"courierName"`
	Phone       string     `bson:"phone,omitempty"`
	Vehicle     string     `bson:"vehicle,omitempty"`
	AssignedAt  time.Time  `bson:"assignedAt"`
	PickedUpAt  *time.Time `bson:"pickedUpAt,omitempty"`
	DeliveredAt *time.Time `bson:"deliveredAt,omitempty"`
}

type cashDocument struct {
	Expected  string `bson:"expected"`
	Collected string `bson:"collected"`
	Settled   bool   `bson:"settled"`
}

func toDocument(o *order.Order) orderDocument {
	items := make([]lineItemDocument, 0, len(o.Items()))
	for _, item := range o.Items() {
		items = append(items, lineItemDocument{
			CatalogItemID:  item.CatalogItemID().String(),
			Name:           item.Name(),
			UnitPrice:      item.UnitPrice().String(),
			Quantity:       item.Quantity(),
			Customizations: item.Customizations(),
		})
	}

	history := make([]historyDocument, 0, len(o.History()))
	for _, entry := range o.History() {
		history = append(history, historyDocument{
			Status:    entry.Status().String(),
			Timestamp: entry.Timestamp(),
			ActorRole: entry.Actor().Role().String(),
			ActorID:   entry.Actor().ID(),
			Note:      entry.Note(),
		})
	}

	var assignment *assignmentDocument
	if a := o.Assignment(); a != nil {
		assignment = &assignmentDocument{
			CourierID:   a.CourierID().String(),
			CourierName: a.CourierName(),
			Phone:       a.Phone(),
			Vehicle:     a.Vehicle(),
			AssignedAt:  a.AssignedAt(),
			PickedUpAt:  a.PickedUpAt(),
			DeliveredAt: a.DeliveredAt(),
		}
	}

	var cash *cashDocument
	if c := o.Cash(); c != nil {
		cash = &cashDocument{
			Expected:  c.Expected().String(),
			Collected: c.Collected().String(),
			Settled:   c.IsSettled(),
		}
	}

	pricing := o.Pricing()
	return orderDocument{
		ID:         o.ID().String(),
		Number:     o.Number(),
		CustomerID: o.CustomerID().String(),
		Items:      items,
		Pricing: pricingDocument{
			ItemsTotal:  pricing.ItemsTotal().String(),
			DeliveryFee: pricing.DeliveryFee().String(),
			Tax:         pricing.Tax().String(),
			Discount:    pricing.Discount().String(),
			FinalAmount: pricing.FinalAmount().String(),
		},
		Address: addressDocument{
			Street:   o.Address().Street(),
			Building: o.Address().Building(),
			City:     o.Address().City(),
			Note:     o.Address().Note(),
			Location: mongodb.NewGeoJSON(o.Address().Point()),
		},
		Payment:    o.Payment().String(),
		Status:     o.Status().String(),
		History:    history,
		Assignment: assignment,
		Cash:       cash,
		Version:    o.Version(),
	}
}

func toDomain(doc orderDocument) (*order.Order, error) {
	id, err := kernel.UUIDFromString(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", doc.ID, err)
	}
	customerID, err := kernel.UUIDFromString(doc.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", doc.ID, err)
	}

	items := make([]order.LineItem, 0, len(doc.Items))
	for _, item := range doc.Items {
		restored, err := item.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", doc.ID, err)
		}
		items = append(items, restored)
	}

	pricing, err := doc.Pricing.toDomain()
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", doc.ID, err)
	}

	point, err := doc.Address.Location.Point()
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", doc.ID, err)
	}
	address, err := order.NewDeliveryAddress(
		doc.Address.Street, doc.Address.Building, doc.Address.City, doc.Address.Note, point)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", doc.ID, err)
	}

	payment, err := order.PaymentMethodFromString(doc.Payment)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", doc.ID, err)
	}
	status, err := order.StatusFromString(doc.Status)
	if err != nil {
		return nil, fmt.Errorf("order %s: %w", doc.ID, err)
	}

	history := make([]order.HistoryEntry, 0, len(doc.History))
	for _, entry := range doc.History {
		restored, err := entry.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", doc.ID, err)
		}
		history = append(history, restored)
	}

	var assignment *order.CourierAssignment
	if doc.Assignment != nil {
		restored, err := doc.Assignment.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", doc.ID, err)
		}
		assignment = &restored
	}

	var cash *order.CashCollection
	if doc.Cash != nil {
		restored, err := doc.Cash.toDomain()
		if err != nil {
			return nil, fmt.Errorf("order %s: %w", doc.ID, err)
		}
		cash = &restored
	}

	return order.RestoreOrder(
		id, doc.Number, customerID, items, pricing, address,
		payment, status, history, assignment, cash, doc.Version)
}

func (d lineItemDocument) toDomain() (order.LineItem, error) {
	catalogItemID, err := kernel.UUIDFromString(d.CatalogItemID)
	if err != nil {
		return order.LineItem{}, err
	}
	unitPrice, err := decimal.NewFromString(d.UnitPrice)
	if err != nil {
		return order.LineItem{}, fmt.Errorf("line item unit price: %w", err)
	}
	return order.NewLineItem(catalogItemID, d.Name, unitPrice, d.Quantity, d.Customizations)
}

func (d pricingDocument) toDomain() (order.Pricing, error) {
	values := make([]decimal.Decimal, 0, 5)
	for _, field := range []string{d.ItemsTotal, d.DeliveryFee, d.Tax, d.Discount, d.FinalAmount} {
		value, err := decimal.NewFromString(field)
		if err != nil {
			return order.Pricing{}, fmt.Errorf("pricing: %w", err)
		}
		values = append(values, value)
	}
	return order.RestorePricing(values[0], values[1], values[2], values[3], values[4]), nil
}

func (d historyDocument) toDomain() (order.HistoryEntry, error) {
	status, err := order.StatusFromString(d.Status)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	role, err := order.RoleFromString(d.ActorRole)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	actor, err := order.NewActor(role, d.ActorID)
	if err != nil {
		return order.HistoryEntry{}, err
	}
	return order.NewHistoryEntry(status, d.Timestamp, actor, d.Note)
}

func (d assignmentDocument) toDomain() (order.CourierAssignment, error) {
	courierID, err := kernel.UUIDFromString(d.CourierID)
	if err != nil {
		return order.CourierAssignment{}, err
	}
	return order.RestoreCourierAssignment(
		courierID, d.CourierName, d.Phone, d.Vehicle,
		d.AssignedAt, d.PickedUpAt, d.DeliveredAt), nil
}

func (d cashDocument) toDomain() (order.CashCollection, error) {
	expected, err := decimal.NewFromString(d.Expected)
	if err != nil {
		return order.CashCollection{}, fmt.Errorf("cash collection: %w", err)
	}
	collected, err := decimal.NewFromString(d.Collected)
	if err != nil {
		return order.CashCollection{}, fmt.Errorf("cash collection: %w", err)
	}
	return order.RestoreCashCollection(expected, collected, d.Settled), nil
}
