// Package checkout drives the order/payment flow as an explicit state
// machine. Transitions happen only on user actions; the implicit callback
// chain of the browser client (create order, then branch by payment method,
// then confirm) becomes named states with guarded transitions so retry and
// resume stay tractable.
//
// The cart is cleared only when the success screen is acknowledged, never at
// order-creation time: a failed payment step must leave the cart intact for
// retry.
package checkout

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/teletela/storefront/internal/errs"
	"github.com/teletela/storefront/internal/model"
)

// State names one step of the flow.
type State string

const (
	StateSelectingAddress State = "selecting-address"
	StateSelectingPayment State = "selecting-payment"
	StateOrderCreated     State = "order-created"
	StatePaymentInitiated State = "payment-initiated"
	StatePaymentConfirmed State = "payment-confirmed"
	StatePaymentFailed    State = "payment-failed"
)

// Method is a payment method branch.
type Method string

const (
	MethodPix    Method = "pix"
	MethodBoleto Method = "boleto"
	MethodCard   Method = "card"
)

// OrdersAPI is the slice of the REST client the flow drives.
type OrdersAPI interface {
	CreateOrder(ctx context.Context, req model.OrderRequest) (*model.Order, error)
	GeneratePix(ctx context.Context, orderID int64) (*model.PixCharge, error)
	GenerateBoleto(ctx context.Context, orderID int64) (*model.BoletoCharge, error)
	PayByCard(ctx context.Context, orderID int64, card model.CardRequest) error
	ConfirmPix(ctx context.Context, pixID int64) error
	ConfirmBoleto(ctx context.Context, boletoID int64) error
}

// Cart is the slice of the cart store the flow reads and finally clears.
type Cart interface {
	Items() []model.CartItem
	Total() float64
	Clear()
}

// Flow is one checkout attempt. Not shared between goroutines by design, but
// guarded anyway since subscribers may poke at accessors.
type Flow struct {
	mu     sync.Mutex
	orders OrdersAPI
	cart   Cart
	log    *zap.Logger
	rng    *rand.Rand

	state        State
	addressID    int64
	shippingFee  float64
	deliveryDays int
	method       Method
	card         *model.CardRequest

	order        *model.Order
	chargeID     int64
	pixKey       string
	boletoNumber string
}

// Option tweaks a Flow.
type Option func(*Flow)

// WithRand injects the shipping-quote RNG (tests pin it).
func WithRand(rng *rand.Rand) Option {
	return func(f *Flow) { f.rng = rng }
}

// New starts a flow in the address-selection state.
func New(orders OrdersAPI, cart Cart, log *zap.Logger, opts ...Option) *Flow {
	f := &Flow{orders: orders, cart: cart, log: log, state: StateSelectingAddress}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// State returns the current state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SelectAddress picks the delivery address and quotes shipping: a simulated
// fee between 15 and 30 and a fixed five-day estimate, as the store has
// always done. Allowed while no order exists yet, and after a failure to
// restart the attempt.
func (f *Flow) SelectAddress(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case StateSelectingAddress, StateSelectingPayment, StatePaymentFailed:
	default:
		return fmt.Errorf("select address in %s: %w", f.state, errs.ErrInvalidState)
	}
	if id <= 0 {
		return errs.ErrNoAddress
	}
	f.addressID = id
	f.shippingFee = float64(15 + f.intn(16))
	f.deliveryDays = 5
	f.order = nil
	f.chargeID = 0
	f.state = StateSelectingPayment
	return nil
}

func (f *Flow) intn(n int) int {
	if f.rng != nil {
		return f.rng.Intn(n)
	}
	return rand.Intn(n)
}

// SelectPayment chooses the payment branch. Card data is required and
// validated up front for the card branch, ignored otherwise.
func (f *Flow) SelectPayment(method Method, card *model.CardRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSelectingPayment && f.state != StatePaymentFailed {
		return fmt.Errorf("select payment in %s: %w", f.state, errs.ErrInvalidState)
	}
	switch method {
	case MethodPix, MethodBoleto:
		f.card = nil
	case MethodCard:
		if card == nil {
			return fmt.Errorf("card method: missing card data")
		}
		if err := model.Validate(*card); err != nil {
			return err
		}
		f.card = card
	default:
		return fmt.Errorf("unknown payment method %q", method)
	}
	f.method = method
	f.state = StateSelectingPayment
	return nil
}

// Submit validates address and cart, creates the order once, then issues
// exactly one payment-initiation call for the chosen method. PIX and boleto
// park in payment-initiated holding a code to display; card charges
// immediately and lands in payment-confirmed.
func (f *Flow) Submit(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StateSelectingPayment {
		return fmt.Errorf("submit in %s: %w", f.state, errs.ErrInvalidState)
	}
	if f.addressID <= 0 {
		return errs.ErrNoAddress
	}
	if f.method == "" {
		return fmt.Errorf("submit: no payment method selected")
	}
	items := f.cart.Items()
	if len(items) == 0 {
		return errs.ErrEmptyCart
	}

	req := model.OrderRequest{
		AddressID:   f.addressID,
		Items:       make([]model.OrderItemRequest, 0, len(items)),
		Total:       f.cart.Total() + f.shippingFee,
		ShippingFee: f.shippingFee,
	}
	for _, it := range items {
		req.Items = append(req.Items, model.OrderItemRequest{TelevisionID: it.ID, Quantity: it.Quantity})
	}

	order, err := f.orders.CreateOrder(ctx, req)
	if err != nil {
		return fmt.Errorf("create order: %w", err)
	}
	f.order = order
	f.state = StateOrderCreated
	f.log.Info("order created", zap.Int64("order_id", order.ID), zap.String("method", string(f.method)))

	switch f.method {
	case MethodPix:
		charge, err := f.orders.GeneratePix(ctx, order.ID)
		if err != nil {
			f.state = StatePaymentFailed
			return fmt.Errorf("generate pix: %w", err)
		}
		f.chargeID = charge.ID
		f.pixKey = charge.Key
		f.state = StatePaymentInitiated
	case MethodBoleto:
		charge, err := f.orders.GenerateBoleto(ctx, order.ID)
		if err != nil {
			f.state = StatePaymentFailed
			return fmt.Errorf("generate boleto: %w", err)
		}
		f.chargeID = charge.ID
		f.boletoNumber = charge.Number
		f.state = StatePaymentInitiated
	case MethodCard:
		if err := f.orders.PayByCard(ctx, order.ID, *f.card); err != nil {
			f.state = StatePaymentFailed
			return fmt.Errorf("pay by card: %w", err)
		}
		f.state = StatePaymentConfirmed
	}
	return nil
}

// ConfirmPayment stands in for the gateway callback and marks the open PIX or
// boleto charge as paid.
func (f *Flow) ConfirmPayment(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StatePaymentInitiated {
		return fmt.Errorf("confirm in %s: %w", f.state, errs.ErrInvalidState)
	}
	var err error
	switch f.method {
	case MethodPix:
		err = f.orders.ConfirmPix(ctx, f.chargeID)
	case MethodBoleto:
		err = f.orders.ConfirmBoleto(ctx, f.chargeID)
	default:
		return fmt.Errorf("confirm for %s: %w", f.method, errs.ErrInvalidState)
	}
	if err != nil {
		f.state = StatePaymentFailed
		return fmt.Errorf("confirm payment: %w", err)
	}
	f.state = StatePaymentConfirmed
	return nil
}

// AcknowledgeSuccess dismisses the success screen. Only here is the cart
// cleared; the flow then resets for a fresh purchase.
func (f *Flow) AcknowledgeSuccess() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != StatePaymentConfirmed {
		return fmt.Errorf("acknowledge in %s: %w", f.state, errs.ErrInvalidState)
	}
	f.cart.Clear()
	f.order = nil
	f.chargeID = 0
	f.pixKey = ""
	f.boletoNumber = ""
	f.card = nil
	f.method = ""
	f.addressID = 0
	f.state = StateSelectingAddress
	return nil
}

// Order returns the created order, if any.
func (f *Flow) Order() *model.Order {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.order
}

// PixKey returns the PIX key to display while payment is pending.
func (f *Flow) PixKey() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pixKey
}

// BoletoNumber returns the boleto line to display while payment is pending.
func (f *Flow) BoletoNumber() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.boletoNumber
}

// ShippingFee returns the quoted fee for the selected address.
func (f *Flow) ShippingFee() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.shippingFee
}

// DeliveryDays returns the quoted delivery estimate.
func (f *Flow) DeliveryDays() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.deliveryDays
}

// Total returns cart total plus shipping for display.
func (f *Flow) Total() float64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cart.Total() + f.shippingFee
}
