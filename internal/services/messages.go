package services

import (
	"fmt"
	"strings"
)

const (
	msgQuote                         = "quote"
	msgRateUnavailable               = "rate_unavailable"
	msgSetDefaultCurrency            = "set_default_currency"
	msgAmountRequired                = "amount_required"
	msgOrderInProgress               = "order_in_progress"
	msgOrderCreated                  = "order_created"
	msgOrderCreatedVendorUnreachable = "order_created_vendor_unreachable"
	msgVendorUnreachable             = "vendor_unreachable"
	msgOrderNotFound                 = "order_not_found"
	msgOrderCancelled                = "order_cancelled"
	msgOrderNotCancellable           = "order_not_cancellable"
	msgPaymentAccountUnavailable     = "payment_account_unavailable"
	msgOrderExpired                  = "order_expired"
	msgNoCustomerService             = "no_customer_service"
)

const defaultLanguage = "en"

var messages = map[string]map[string]string{
	"en": {
		msgQuote:                         "%s rate: <b>%s</b> (%s)",
		msgRateUnavailable:               "Sorry, we can't quote %s right now.",
		msgSetDefaultCurrency:            "Please set a default currency for this group first.",
		msgAmountRequired:                "How much %s would you like to exchange?",
		msgOrderInProgress:               "Order <code>%s</code> is still in progress. Please finish it before starting a new one.",
		msgOrderCreated:                  "Order <code>%s</code> created: %s %s → %s %s at %s. We are requesting a payment account.",
		msgOrderCreatedVendorUnreachable: "Order <code>%s</code> created: %s %s → %s %s at %s. We could not reach the exchange desk yet. Ask for the payment account again in a moment, or cancel the order.",
		msgVendorUnreachable:             "We could not reach the exchange desk about order <code>%s</code>. Please try again in a moment.",
		msgOrderNotFound:                 "We couldn't find an order in progress for this group.",
		msgOrderCancelled:                "Order <code>%s</code> has been cancelled.",
		msgOrderNotCancellable:           "Order <code>%s</code> can no longer be cancelled.",
		msgPaymentAccountUnavailable:     "No payment account is available for order <code>%s</code>, so it has been cancelled.",
		msgOrderExpired:                  "Order <code>%s</code> expired because no payment was received in time.",
		msgNoCustomerService:             "our support team",
	},
	"zh": {
		msgQuote:                         "%s 汇率：<b>%s</b>（%s）",
		msgRateUnavailable:               "抱歉，目前无法提供 %s 的报价。",
		msgSetDefaultCurrency:            "请先为本群设置默认币种。",
		msgAmountRequired:                "请问您要兑换多少 %s？",
		msgOrderInProgress:               "订单 <code>%s</code> 仍在进行中，请先完成后再发起新的兑换。",
		msgOrderCreated:                  "订单 <code>%s</code> 已创建：%s %s → %s %s，汇率 %s。正在为您申请收款账户。",
		msgOrderCreatedVendorUnreachable: "订单 <code>%s</code> 已创建：%s %s → %s %s，汇率 %s。暂时无法联系兑换柜台，请稍后再次索取收款账户，或取消订单。",
		msgVendorUnreachable:             "暂时无法就订单 <code>%s</code> 联系兑换柜台，请稍后再试。",
		msgOrderNotFound:                 "本群没有进行中的订单。",
		msgOrderCancelled:                "订单 <code>%s</code> 已取消。",
		msgOrderNotCancellable:           "订单 <code>%s</code> 已无法取消。",
		msgPaymentAccountUnavailable:     "订单 <code>%s</code> 暂无可用收款账户，订单已取消。",
		msgOrderExpired:                  "订单 <code>%s</code> 因未在规定时间内付款已过期。",
		msgNoCustomerService:             "客服",
	},
}

// message renders a localized template. Unknown languages use English.
func message(lang, key string, args ...any) string {
	table, ok := messages[normalizeLanguage(lang)]
	if !ok {
		table = messages[defaultLanguage]
	}
	tmpl, ok := table[key]
	if !ok {
		tmpl = messages[defaultLanguage][key]
	}
	if len(args) == 0 {
		return tmpl
	}
	return fmt.Sprintf(tmpl, args...)
}

// normalizeLanguage maps tags like "zh-CN" or "EN" to a table key.
func normalizeLanguage(lang string) string {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if i := strings.IndexAny(lang, "-_"); i > 0 {
		lang = lang[:i]
	}
	if _, ok := messages[lang]; ok {
		return lang
	}
	return defaultLanguage
}
