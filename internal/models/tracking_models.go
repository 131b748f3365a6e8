package models

// DeliveryStatus is the delivery-granular status of a tracking record.
type DeliveryStatus string

const (
	DeliveryStatusAssigned  DeliveryStatus = "assigned"
	DeliveryStatusPickedUp  DeliveryStatus = "picked_up"
	DeliveryStatusOnTheWay  DeliveryStatus = "on_the_way"
	DeliveryStatusNearby    DeliveryStatus = "nearby"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
)

var deliveryStatusLabels = map[DeliveryStatus]string{
	DeliveryStatusAssigned:  "Delivery partner assigned",
	DeliveryStatusPickedUp:  "Order picked up from the kitchen",
	DeliveryStatusOnTheWay:  "On the way",
	DeliveryStatusNearby:    "Delivery partner is nearby",
	DeliveryStatusDelivered: "Delivered",
}

// Valid reports whether s belongs to the delivery status vocabulary.
func (s DeliveryStatus) Valid() bool {
	_, ok := deliveryStatusLabels[s]
	return ok
}

// Label is the customer facing text recorded on tracking events.
func (s DeliveryStatus) Label() string {
	if l, ok := deliveryStatusLabels[s]; ok {
		return l
	}
	return string(s)
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type TrackingEvent struct {
	Status DeliveryStatus `json:"status"`
	Label  string         `json:"label"`
	Time   int64          `json:"time"`
}

// Tracking is the delivery record derived from an order, keyed by the same order id.
type Tracking struct {
	OrderID     string          `json:"orderId"`
	TenantID    string          `json:"tenantId"`
	Status      DeliveryStatus  `json:"status"`
	AgentName   string          `json:"agentName"`
	AgentPhone  string          `json:"agentPhone"`
	EtaMinutes  int             `json:"etaMinutes"`
	Current     Coordinates     `json:"current"`
	Destination Coordinates     `json:"destination"`
	Events      []TrackingEvent `json:"events"`
	UpdatedAt   int64           `json:"updatedAt"`
}

// AppendEvent records status on the event log unless it already is the latest
// entry. It reports whether an event was appended.
func (t *Tracking) AppendEvent(status DeliveryStatus, at int64) bool {
	if n := len(t.Events); n > 0 && t.Events[n-1].Status == status {
		return false
	}
	t.Events = append(t.Events, TrackingEvent{Status: status, Label: status.Label(), Time: at})
	return true
}
