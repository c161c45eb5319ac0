package choices

import (
	"fmt"
)

// OrderBy selects the order of the call form.
type OrderBy string

const (
	// OrderByDisplay sorts entries by display label. It is the default.
	OrderByDisplay OrderBy = "display"

	// OrderByID sorts entries by id.
	OrderByID OrderBy = "id"

	// OrderNone keeps entries in the order they were supplied.
	OrderNone OrderBy = "none"
)

// ParseOrderBy converts a configuration value into an OrderBy.
// "null" is accepted as a synonym of "none".
func ParseOrderBy(s string) (OrderBy, error) {
	switch s {
	case "display":
		return OrderByDisplay, nil
	case "id":
		return OrderByID, nil
	case "none", "null":
		return OrderNone, nil
	default:
		return "", fmt.Errorf("%w: unrecognized order_by %q", ErrConfiguration, s)
	}
}

func (o OrderBy) valid() bool {
	switch o {
	case OrderByDisplay, OrderByID, OrderNone:
		return true
	}
	return false
}

type config struct {
	orderBy  OrderBy
	orderSet bool
}

// Option configures table construction.
type Option func(*config)

// WithOrder sets the ordering policy.
func WithOrder(orderBy OrderBy) Option {
	return func(c *config) {
		c.orderBy = orderBy
		c.orderSet = true
	}
}

func newConfig(def OrderBy, opts []Option) (config, error) {
	c := config{orderBy: def}
	for _, opt := range opts {
		opt(&c)
	}
	if !c.orderBy.valid() {
		return c, fmt.Errorf("%w: unrecognized order_by %q", ErrConfiguration, c.orderBy)
	}
	return c, nil
}
