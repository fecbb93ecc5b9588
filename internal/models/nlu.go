package models

// Action is the classified workflow branch returned by the NLU service.
type Action string

const (
	ActionExchangeRate             Action = "exchange_rate"
	ActionExchangeRateDefaultToken Action = "exchange_rate_default_token"
	ActionSwap                     Action = "swap"
	ActionSwapCrypto               Action = "swap_crypto"
	ActionSwapLegalCurrency        Action = "swap_legal_currency"
	ActionHumanCustomerService     Action = "human_customer_service"
	ActionGetAccount               Action = "get_account"
	ActionReceipt                  Action = "receipt"
	ActionPaymentCheck             Action = "payment_check"
	ActionCancelOrder              Action = "cancel_order"
	ActionHurry                    Action = "hurry"
	ActionFallback                 Action = "fallback"
)

// ChatMessage is an inbound chat message, independent of the transport.
type ChatMessage struct {
	ChatID      int64  `json:"chat_id"`
	MessageID   int    `json:"message_id"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
	Text        string `json:"text"`
	PhotoFileID string `json:"photo_file_id,omitempty"`
}

// NLURequest is the classification request sent to the NLU service.
type NLURequest struct {
	ChatID      int64  `json:"chat_id"`
	GroupID     int64  `json:"group_id"`
	MessageID   int    `json:"message_id"`
	UserID      int64  `json:"user_id"`
	Text        string `json:"text"`
	PhotoFileID string `json:"photo_file_id,omitempty"`
	Language    string `json:"language,omitempty"`
}

// NLUResponse carries the fields of the classification the workflow consumes.
type NLUResponse struct {
	Reply            string   `json:"reply"`
	Intention        string   `json:"intention,omitempty"`
	Action           Action   `json:"action,omitempty"`
	PaymentCurrency  string   `json:"payment_currency,omitempty"`
	ExchangeCurrency string   `json:"exchange_currency,omitempty"`
	AmountToExchange *float64 `json:"amount_to_exchange,omitempty"`
	Language         string   `json:"language"`
}
