package constant

// WishChannel is a way of sending well-wishes to a person.
type WishChannel string

const (
	WishCall     WishChannel = "call"
	WishSMS      WishChannel = "sms"
	WishWhatsApp WishChannel = "whatsapp"
	WishTelegram WishChannel = "telegram"
)

// WishChannels lists channels in display order.
var WishChannels = []WishChannel{WishCall, WishSMS, WishWhatsApp, WishTelegram}

// DefaultWishMessage is the prefilled text for SMS and chat wishes.
const DefaultWishMessage = "Happy Birthday 😊😊😊"

// DefaultCountryCode is applied when a person is added without one.
const DefaultCountryCode = "+91"
