package models

// ParseModeHTML is the Telegram formatting used for workflow replies.
const ParseModeHTML = "HTML"

// OutboundMessage is a message the bot sends to a chat.
type OutboundMessage struct {
	ChatID           int64  `json:"chat_id"`
	Text             string `json:"text"`
	ParseMode        string `json:"parse_mode,omitempty"`
	ReplyToMessageID int    `json:"reply_to_message_id,omitempty"`
}

// VendorOrderRequest is the order context forwarded to the vendor bot when
// asking for a payment account, a receipt check or a hurry-up.
type VendorOrderRequest struct {
	OrderNo          string        `json:"order_id"`
	CustomerGroupID  int64         `json:"group_id"`
	CustomerChatID   int64         `json:"customer_chat_id"`
	VendorChatID     int64         `json:"vendor_chat_id"`
	MessageID        int           `json:"message_id,omitempty"`
	Language         string        `json:"language"`
	Operation        OperationType `json:"operation"`
	PaymentCurrency  string        `json:"payment_currency"`
	PaymentAmount    float64       `json:"payment_amount"`
	ExchangeCurrency string        `json:"exchange_currency"`
	ExchangeAmount   float64       `json:"exchange_amount"`
	Rate             float64       `json:"rate"`
	PhotoFileID      string        `json:"photo_file_id,omitempty"`
}

// VendorBroadcastRequest asks the vendor bot to post a broadcast into one of
// its groups.
type VendorBroadcastRequest struct {
	ChatID    int64  `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode,omitempty"`
}

// PaymentAccountStatus is the vendor's report on a requested payment account.
type PaymentAccountStatus string

const (
	PaymentAccountReceived    PaymentAccountStatus = "received"
	PaymentAccountUnavailable PaymentAccountStatus = "unavailable"
)

// Valid reports whether s is a known status.
func (s PaymentAccountStatus) Valid() bool {
	return s == PaymentAccountReceived || s == PaymentAccountUnavailable
}
