// Package orderrepo provides data transfer objects and mapping functions for
// order persistence. It implements the order store port on PostgreSQL,
// handling the conversion between domain aggregates and database rows.
package orderrepo

import (
	"time"

	"orderdesk/internal/core/domain/model/kernel"
	"orderdesk/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Amount columns store integer cents. Version backs optimistic concurrency:
// every committed write increments it, and updates are conditioned on the
// version the aggregate was loaded with.
type OrderDTO struct {
	ID             uuid.UUID   `gorm:"type:uuid;primaryKey"`
	OrderNumber    string      `gorm:"uniqueIndex"`
	Customer       CustomerDTO `gorm:"embedded;embeddedPrefix:customer_"`
	Shipping       AddressDTO  `gorm:"embedded;embeddedPrefix:shipping_"`
	Items          []ItemDTO   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	Status         int         `gorm:"index"`
	SubtotalCents  int64
	ShippingCents  int64
	TaxCents       int64
	TotalCents     int64
	TrackingNumber string
	CustomerNotes  string
	CreatedAt      time.Time `gorm:"index"`
	Version        int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

// CustomerDTO represents the embedded purchaser columns within the order table.
type CustomerDTO struct {
	Name  string
	Email string
	Phone string
}

// AddressDTO represents the embedded shipping destination columns within the
// order table.
type AddressDTO struct {
	Name    string
	Street  string
	City    string
	State   string
	Zip     string
	Country string
	Phone   string
}

// ItemDTO represents one order line row, owned by its order.
type ItemDTO struct {
	ID             int64     `gorm:"primaryKey;autoIncrement"`
	OrderID        uuid.UUID `gorm:"type:uuid;index"`
	ProductRef     string
	Name           string
	ImageRef       string
	Quantity       int
	UnitPriceCents int64
}

// TableName specifies the database table name for order line entities.
func (ItemDTO) TableName() string {
	return "order_items"
}

// fromDomain converts an order domain aggregate to its database representation.
func fromDomain(aggregate *order.Order) OrderDTO {
	items := aggregate.Items()
	itemDTOs := make([]ItemDTO, len(items))
	for i, item := range items {
		itemDTOs[i] = ItemDTO{
			OrderID:        aggregate.ID().Bytes(),
			ProductRef:     item.ProductRef(),
			Name:           item.Name(),
			ImageRef:       item.ImageRef(),
			Quantity:       item.Quantity(),
			UnitPriceCents: item.UnitPrice().Cents(),
		}
	}

	return OrderDTO{
		ID:          aggregate.ID().Bytes(),
		OrderNumber: aggregate.OrderNumber(),
		Customer: CustomerDTO{
			Name:  aggregate.Customer().Name(),
			Email: aggregate.Customer().Email(),
			Phone: aggregate.Customer().Phone(),
		},
		Shipping: AddressDTO{
			Name:    aggregate.ShippingAddress().Name(),
			Street:  aggregate.ShippingAddress().Street(),
			City:    aggregate.ShippingAddress().City(),
			State:   aggregate.ShippingAddress().State(),
			Zip:     aggregate.ShippingAddress().Zip(),
			Country: aggregate.ShippingAddress().Country(),
			Phone:   aggregate.ShippingAddress().Phone(),
		},
		Items:          itemDTOs,
		Status:         int(aggregate.Status()),
		SubtotalCents:  aggregate.Subtotal().Cents(),
		ShippingCents:  aggregate.Shipping().Cents(),
		TaxCents:       aggregate.Tax().Cents(),
		TotalCents:     aggregate.Total().Cents(),
		TrackingNumber: aggregate.TrackingNumber(),
		CustomerNotes:  aggregate.CustomerNotes(),
		CreatedAt:      aggregate.CreatedAt(),
		Version:        aggregate.Version(),
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate through RestoreOrder, re-validating
// every invariant on the way out of the database.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	customer, err := order.NewCustomer(dto.Customer.Name, dto.Customer.Email, dto.Customer.Phone)
	if err != nil {
		return nil, err
	}

	address, err := order.NewAddress(
		dto.Shipping.Name, dto.Shipping.Street, dto.Shipping.City,
		dto.Shipping.State, dto.Shipping.Zip, dto.Shipping.Country, dto.Shipping.Phone,
	)
	if err != nil {
		return nil, err
	}

	items := make([]order.Item, 0, len(dto.Items))
	for _, itemDTO := range dto.Items {
		unitPrice, priceErr := kernel.NewMoney(itemDTO.UnitPriceCents)
		if priceErr != nil {
			return nil, priceErr
		}
		item, itemErr := order.NewItem(
			itemDTO.ProductRef, itemDTO.Name, itemDTO.ImageRef, itemDTO.Quantity, unitPrice)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	subtotal, err := kernel.NewMoney(dto.SubtotalCents)
	if err != nil {
		return nil, err
	}
	shipping, err := kernel.NewMoney(dto.ShippingCents)
	if err != nil {
		return nil, err
	}
	tax, err := kernel.NewMoney(dto.TaxCents)
	if err != nil {
		return nil, err
	}
	total, err := kernel.NewMoney(dto.TotalCents)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(
		id, dto.OrderNumber, customer, items, address,
		order.Status(dto.Status),
		subtotal, shipping, tax, total,
		dto.TrackingNumber, dto.CustomerNotes, dto.CreatedAt, dto.Version,
	)
}
