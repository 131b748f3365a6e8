package models

// OrderStatus is the lifecycle state of an order.
type OrderStatus string

const (
	// OrderStatusCreated is part of the vocabulary and accepted by status validation,
	// but order placement never assigns it: new orders start out confirmed.
	OrderStatusCreated        OrderStatus = "created"
	OrderStatusConfirmed      OrderStatus = "confirmed"
	OrderStatusPreparing      OrderStatus = "preparing"
	OrderStatusOutForDelivery OrderStatus = "out_for_delivery"
	OrderStatusDelivered      OrderStatus = "delivered"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Valid reports whether s belongs to the order status vocabulary.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusCreated, OrderStatusConfirmed, OrderStatusPreparing,
		OrderStatusOutForDelivery, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// PaymentMethod is how the customer paid (or will pay) for the order.
type PaymentMethod string

const (
	PaymentMethodRazorpay PaymentMethod = "razorpay"
	PaymentMethodWhatsApp PaymentMethod = "whatsapp"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodRazorpay || m == PaymentMethodWhatsApp
}

// DeliveryFeeMode decides who pays the delivery fee and when.
type DeliveryFeeMode string

const (
	DeliveryFeeModePrepaid           DeliveryFeeMode = "prepaid"
	DeliveryFeeModeCollectAtDrop     DeliveryFeeMode = "collect_at_drop"
	DeliveryFeeModeRestaurantSettled DeliveryFeeMode = "restaurant_settled"
)

func (m DeliveryFeeMode) Valid() bool {
	switch m {
	case DeliveryFeeModePrepaid, DeliveryFeeModeCollectAtDrop, DeliveryFeeModeRestaurantSettled:
		return true
	}
	return false
}

// SettlementStatus tracks the resolution of the delivery fee.
type SettlementStatus string

const (
	SettlementNotApplicable     SettlementStatus = "not_applicable"
	SettlementPendingCollection SettlementStatus = "pending_collection"
	SettlementCollected         SettlementStatus = "collected"
	SettlementRestaurantSettled SettlementStatus = "restaurant_settled"
)

func (s SettlementStatus) Valid() bool {
	switch s {
	case SettlementNotApplicable, SettlementPendingCollection, SettlementCollected, SettlementRestaurantSettled:
		return true
	}
	return false
}

// SettlementForMode is the initial settlement status implied by a fee mode.
func SettlementForMode(mode DeliveryFeeMode) SettlementStatus {
	switch mode {
	case DeliveryFeeModeCollectAtDrop:
		return SettlementPendingCollection
	case DeliveryFeeModeRestaurantSettled:
		return SettlementRestaurantSettled
	default:
		return SettlementNotApplicable
	}
}

// CollectionMethod is how a delivery fee was collected at the door.
type CollectionMethod string

const (
	CollectionMethodCash CollectionMethod = "cash"
	CollectionMethodUPI  CollectionMethod = "upi"
)

func (m CollectionMethod) Valid() bool {
	return m == CollectionMethodCash || m == CollectionMethodUPI
}

type Customer struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
}

type Address struct {
	Line1 string  `json:"line1"`
	City  string  `json:"city"`
	Notes *string `json:"notes,omitempty"`
}

type OrderItem struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Calories int     `json:"calories"`
	Quantity int     `json:"quantity"`
}

type Totals struct {
	Subtotal             float64  `json:"subtotal"`
	DeliveryFee          float64  `json:"deliveryFee"`
	Tax                  float64  `json:"tax"`
	GrandTotal           float64  `json:"grandTotal"`
	PayableNow           float64  `json:"payableNow"`
	DeliveryFeeDueAtDrop *float64 `json:"deliveryFeeDueAtDrop,omitempty"`
}

// DeliveryFeeCollection is recorded only when the fee was actually collected at drop.
type DeliveryFeeCollection struct {
	AmountCollected float64          `json:"amountCollected"`
	Method          CollectionMethod `json:"method"`
	CollectedAt     int64            `json:"collectedAt"`
	CollectedBy     string           `json:"collectedBy"`
	Notes           *string          `json:"notes,omitempty"`
}

type DeliveryConfirmation struct {
	ExpectedOTP string  `json:"expectedOtp,omitempty"`
	OTPVerified bool    `json:"otpVerified"`
	ReceivedOTP *string `json:"receivedOtp,omitempty"`
	ProofNote   *string `json:"proofNote,omitempty"`
	DeliveredAt *int64  `json:"deliveredAt,omitempty"`
	ConfirmedBy *string `json:"confirmedBy,omitempty"`
}

// Order is one customer purchase. Timestamps are epoch milliseconds.
type Order struct {
	OrderID                     string                 `json:"orderId"`
	TenantID                    string                 `json:"tenantId"`
	Status                      OrderStatus            `json:"status"`
	Customer                    Customer               `json:"customer"`
	Address                     Address                `json:"address"`
	Items                       []OrderItem            `json:"items"`
	Totals                      Totals                 `json:"totals"`
	PaymentMethod               PaymentMethod          `json:"paymentMethod"`
	PaymentReference            string                 `json:"paymentReference"`
	DeliveryFeeMode             DeliveryFeeMode        `json:"deliveryFeeMode"`
	DeliveryFeeSettlementStatus SettlementStatus       `json:"deliveryFeeSettlementStatus"`
	DeliveryFeeCollection       *DeliveryFeeCollection `json:"deliveryFeeCollection,omitempty"`
	DeliveryConfirmation        DeliveryConfirmation   `json:"deliveryConfirmation"`
	CreatedAt                   int64                  `json:"createdAt"`
	UpdatedAt                   int64                  `json:"updatedAt"`
}

// OrderFilters defines the available filters for listing orders.
type OrderFilters struct {
	TenantID    *string
	Status      *OrderStatus
	CreatedFrom *int64
	CreatedTo   *int64
	Offset      int
	Limit       int
}
