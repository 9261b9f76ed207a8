package app

import (
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"
)

// metrics holds the storefront's instruments.
type metrics struct {
	ordersPlaced metric.Int64Counter
	orderTotal   metric.Float64Histogram
}

func newMetrics(provider metric.MeterProvider) (*metrics, error) {
	meter := provider.Meter("github.com/xenking/tastyflame")

	ordersPlaced, err := meter.Int64Counter("storefront.orders.placed",
		metric.WithDescription("Orders placed through the storefront"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders counter")
	}

	orderTotal, err := meter.Float64Histogram("storefront.order.total",
		metric.WithDescription("Final order totals after discount"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create order total histogram")
	}

	return &metrics{
		ordersPlaced: ordersPlaced,
		orderTotal:   orderTotal,
	}, nil
}
