package models

import "time"

// PaymentStatus is the lifecycle state of a payment attempt.
type PaymentStatus string

const (
	PaymentInitiated        PaymentStatus = "Initiated"
	PaymentAwaitingCallback PaymentStatus = "AwaitingCallback"
	PaymentConfirmed        PaymentStatus = "Confirmed"
	PaymentFailed           PaymentStatus = "Failed"
)

// PaymentAttempt tracks one STK push against a booking or a class booking.
// Exactly one of BookingID and ClassBookingID is set. At most one active
// (unresolved) attempt may exist per target, enforced by partial unique
// indexes on the two reference fields.
type PaymentAttempt struct {
	ID                string        `bson:"id" json:"id"`
	BookingID         string        `bson:"bookingId,omitempty" json:"bookingId,omitempty"`
	ClassBookingID    string        `bson:"classBookingId,omitempty" json:"classBookingId,omitempty"`
	Phone             string        `bson:"phone" json:"phone"`
	Amount            float64       `bson:"amount" json:"amount"`
	AccountReference  string        `bson:"accountReference" json:"accountReference"`
	Description       string        `bson:"description" json:"description"`
	MerchantRequestID string        `bson:"merchantRequestId,omitempty" json:"merchantRequestId,omitempty"`
	CheckoutRequestID string        `bson:"checkoutRequestId,omitempty" json:"checkoutRequestId,omitempty"`
	Status            PaymentStatus `bson:"status" json:"status"`
	ResultCode        int           `bson:"resultCode,omitempty" json:"resultCode,omitempty"`
	ResultDesc        string        `bson:"resultDesc,omitempty" json:"resultDesc,omitempty"`
	MpesaReceipt      string        `bson:"mpesaReceipt,omitempty" json:"mpesaReceipt,omitempty"`
	// Active is true until the attempt reaches Confirmed or Failed.
	Active     bool       `bson:"active" json:"-"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	ResolvedAt *time.Time `bson:"resolvedAt,omitempty" json:"resolvedAt,omitempty"`
}

// CheckoutRequest is the input for initiating an STK push. Exactly one of
// BookingID and ClassBookingID identifies what is being paid for.
type CheckoutRequest struct {
	BookingID      string  `json:"bookingId"`
	ClassBookingID string  `json:"classBookingId"`
	Phone          string  `json:"phoneNumber"`
	Amount         float64 `json:"amount"`
}

// STKPushResponse is the synchronous acknowledgment from the gateway.
type STKPushResponse struct {
	MerchantRequestID   string `json:"MerchantRequestID"`
	CheckoutRequestID   string `json:"CheckoutRequestID"`
	ResponseCode        string `json:"ResponseCode"`
	ResponseDescription string `json:"ResponseDescription"`
	CustomerMessage     string `json:"CustomerMessage"`
}

// STKCallbackEnvelope is the asynchronous result payload the gateway posts to
// our callback endpoint.
type STKCallbackEnvelope struct {
	Body struct {
		StkCallback STKCallback `json:"stkCallback"`
	} `json:"Body"`
}

// STKCallback carries the final result of a push, keyed by CheckoutRequestID.
type STKCallback struct {
	MerchantRequestID string `json:"MerchantRequestID"`
	CheckoutRequestID string `json:"CheckoutRequestID"`
	ResultCode        int    `json:"ResultCode"`
	ResultDesc        string `json:"ResultDesc"`
	CallbackMetadata  struct {
		Item []STKCallbackItem `json:"Item"`
	} `json:"CallbackMetadata"`
}

// STKCallbackItem is a single name/value pair from the callback metadata.
type STKCallbackItem struct {
	Name  string      `json:"Name"`
	Value interface{} `json:"Value,omitempty"`
}

// Receipt extracts the MpesaReceiptNumber metadata item, if present.
func (cb STKCallback) Receipt() string {
	for _, item := range cb.CallbackMetadata.Item {
		if item.Name == "MpesaReceiptNumber" {
			if s, ok := item.Value.(string); ok {
				return s
			}
		}
	}
	return ""
}
