// Package config holds the behavior tuning of the bot that operators may
// adjust without code changes: which payload attribute wins when deriving
// the visitor identity, which keywords route the main menu, and how many
// digits a plausible phone number has.
package config

import "github.com/m-mizutani/goerr/v2"

// Bot is the resolved bot behavior configuration
type Bot struct {
	// IdentityPriority is the ordered list of payload attributes used to
	// derive the visitor identity. The first attribute with a value wins.
	IdentityPriority []string

	// QuoteKeywords route a main-menu message into the quote flow
	QuoteKeywords []string

	// AfterSalesKeywords route a main-menu message into the after-sales flow
	AfterSalesKeywords []string

	// PhoneMinDigits and PhoneMaxDigits bound the digit count of an
	// unlabeled line accepted as a phone number
	PhoneMinDigits int
	PhoneMaxDigits int
}

// Known identity attributes, in the default priority order.
var DefaultIdentityPriority = []string{
	"conversation_id",
	"phone",
	"visitor_id",
	"id",
	"email",
	"ip",
}

// Default returns the built-in bot behavior configuration
func Default() *Bot {
	return &Bot{
		IdentityPriority:   append([]string{}, DefaultIdentityPriority...),
		QuoteKeywords:      []string{"cotiz"},
		AfterSalesKeywords: []string{"postventa", "post venta"},
		PhoneMinDigits:     7,
		PhoneMaxDigits:     12,
	}
}

// Validate checks if the bot configuration is usable
func (b *Bot) Validate() error {
	if len(b.IdentityPriority) == 0 {
		return goerr.New("identity priority must not be empty")
	}
	known := make(map[string]bool, len(DefaultIdentityPriority))
	for _, attr := range DefaultIdentityPriority {
		known[attr] = true
	}
	for _, attr := range b.IdentityPriority {
		if !known[attr] {
			return goerr.New("unknown identity attribute", goerr.V("attribute", attr))
		}
	}

	if len(b.QuoteKeywords) == 0 {
		return goerr.New("quote keywords must not be empty")
	}
	if len(b.AfterSalesKeywords) == 0 {
		return goerr.New("after-sales keywords must not be empty")
	}

	if b.PhoneMinDigits < 1 {
		return goerr.New("phone min digits must be positive", goerr.V("min", b.PhoneMinDigits))
	}
	if b.PhoneMaxDigits < b.PhoneMinDigits {
		return goerr.New("phone max digits must not be less than min",
			goerr.V("min", b.PhoneMinDigits), goerr.V("max", b.PhoneMaxDigits))
	}

	return nil
}
