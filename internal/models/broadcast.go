package models

import "time"

// BroadcastMessage is a payload fanned out to many chats.
type BroadcastMessage struct {
	ID        int64     `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	ParseMode string    `json:"parse_mode" db:"parse_mode"`
	CreatedBy string    `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// BroadcastHistory is the single delivery record for one recipient of a broadcast.
type BroadcastHistory struct {
	ID                int64          `json:"id" db:"id"`
	BroadcastID       int64          `json:"broadcast_id" db:"broadcast_id"`
	ChatID            int64          `json:"chat_id" db:"chat_id"`
	Status            DeliveryStatus `json:"status" db:"status"`
	TelegramMessageID *int           `json:"telegram_message_id,omitempty" db:"telegram_message_id"`
	ErrorCode         *int           `json:"error_code,omitempty" db:"error_code"`
	ErrorDescription  *string        `json:"error_description,omitempty" db:"error_description"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
}

// BroadcastJob is the queued unit of work for the broadcast consumer.
type BroadcastJob struct {
	BroadcastID int64   `json:"broadcast_id"`
	ChatIDs     []int64 `json:"chat_ids"`
}
