package repository

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/tastyflame/internal/domain/cart"
	"github.com/xenking/tastyflame/internal/domain/customer"
	"github.com/xenking/tastyflame/internal/domain/order"
	"github.com/xenking/tastyflame/internal/storage"
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository persists the order ledger under "orders".
type OrderRepository struct {
	kv storage.KV
}

// NewOrderRepository returns an OrderRepository over the given store.
func NewOrderRepository(kv storage.KV) *OrderRepository {
	return &OrderRepository{kv: kv}
}

type customerRecord struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type orderRecord struct {
	ID           string           `json:"id"`
	Items        []cartItemRecord `json:"items"`
	CustomerInfo customerRecord   `json:"customerInfo"`
	Date         time.Time        `json:"date"`
	Total        decimal.Decimal  `json:"total"`
	Status       string           `json:"status"`
	PaymentMode  string           `json:"paymentMode"`
}

// Orders returns the stored ledger; a store without one yields an empty
// ledger.
func (r *OrderRepository) Orders(ctx context.Context) ([]order.Order, error) {
	var records []orderRecord
	if _, err := getJSON(ctx, r.kv, storage.KeyOrders, &records); err != nil {
		return nil, errors.Wrap(err, "load orders")
	}
	return ordersFromRecords(records), nil
}

// SaveOrders stores the ledger, replacing the previous contents.
func (r *OrderRepository) SaveOrders(ctx context.Context, orders []order.Order) error {
	return errors.Wrap(
		setJSON(ctx, r.kv, storage.KeyOrders, recordsFromOrders(orders)),
		"save orders",
	)
}

// EncodeOrders serializes a ledger to the persisted JSON document format.
// Shared with the migration tool, which works on ledger dumps outside any
// live store.
func EncodeOrders(orders []order.Order) ([]byte, error) {
	data, err := json.MarshalIndent(recordsFromOrders(orders), "", "  ")
	return data, errors.Wrap(err, "encode orders")
}

// DecodeOrders parses a persisted ledger document.
func DecodeOrders(data []byte) ([]order.Order, error) {
	var records []orderRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, errors.Wrap(err, "decode orders")
	}
	return ordersFromRecords(records), nil
}

func recordsFromOrders(orders []order.Order) []orderRecord {
	records := make([]orderRecord, len(orders))
	for i, o := range orders {
		items := make([]cartItemRecord, len(o.Items))
		for j, item := range o.Items {
			items[j] = cartItemRecord{
				ID:       item.ID,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			}
		}
		records[i] = orderRecord{
			ID:    o.ID,
			Items: items,
			CustomerInfo: customerRecord{
				Name:    o.Customer.Name,
				Email:   o.Customer.Email,
				Phone:   o.Customer.Phone,
				Address: o.Customer.Address,
			},
			Date:        o.CreatedAt,
			Total:       o.Total,
			Status:      string(o.Status),
			PaymentMode: string(o.PaymentMode),
		}
	}
	return records
}

func ordersFromRecords(records []orderRecord) []order.Order {
	orders := make([]order.Order, len(records))
	for i, rec := range records {
		items := make([]cart.Item, len(rec.Items))
		for j, item := range rec.Items {
			items[j] = cart.Item{
				ID:       item.ID,
				Name:     item.Name,
				Price:    item.Price,
				Quantity: item.Quantity,
			}
		}
		orders[i] = order.Order{
			ID:    rec.ID,
			Items: items,
			Customer: customer.Info{
				Name:    rec.CustomerInfo.Name,
				Email:   rec.CustomerInfo.Email,
				Phone:   rec.CustomerInfo.Phone,
				Address: rec.CustomerInfo.Address,
			},
			CreatedAt:   rec.Date,
			Total:       rec.Total,
			Status:      order.Status(rec.Status),
			PaymentMode: order.PaymentMode(rec.PaymentMode),
		}
	}
	return orders
}
