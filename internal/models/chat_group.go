package models

// GroupType tells customer chats apart from vendor (liquidity provider) chats.
type GroupType string

const (
	GroupTypeCustomer GroupType = "customer"
	GroupTypeVendor   GroupType = "vendor"
)

// ChatGroup is a Telegram chat known to the bot.
type ChatGroup struct {
	ID                  int64     `json:"id" db:"id"`
	ChatID              int64     `json:"chat_id" db:"chat_id"`
	Name                string    `json:"name" db:"name"`
	Type                GroupType `json:"type" db:"type"`
	Language            string    `json:"language" db:"language"`
	DefaultCurrencyID   *int64    `json:"default_currency_id,omitempty" db:"default_currency_id"`
	DefaultCurrency     *string   `json:"default_currency,omitempty" db:"default_currency"`
	HandlingFeeConfigID *int64    `json:"handling_fee_config_id,omitempty" db:"handling_fee_config_id"`
}

// MemberRole marks members the bot treats specially.
type MemberRole string

const (
	MemberRoleMember          MemberRole = "member"
	MemberRoleCustomerService MemberRole = "customer_service"
)

// ChatGroupMember is a Telegram user inside a chat group.
type ChatGroupMember struct {
	GroupID  int64      `json:"group_id" db:"group_id"`
	UserID   int64      `json:"user_id" db:"user_id"`
	Username string     `json:"username" db:"username"`
	FullName string     `json:"full_name" db:"full_name"`
	Role     MemberRole `json:"role" db:"role"`
}
