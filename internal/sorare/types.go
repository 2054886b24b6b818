package sorare

import (
	"net/http"
)

// NotAvailable is substituted for price and currency when a card has no
// active sale offer.
const NotAvailable = "N/A"

const cardURLBase = "https://sorare.com/cards/"

// Session holds the bearer token issued by a successful sign-in. It is
// never refreshed.
type Session struct {
	Token    string
	Audience string
}

func (s *Session) apply(h http.Header) {
	h.Set("Authorization", "Bearer "+s.Token)
	h.Set("JWT-AUD", s.Audience)
}

// Listing is a single listed card as announced by the bot.
type Listing struct {
	Slug          string `json:"slug"`
	PlayerName    string `json:"player"`
	PriceAmount   string `json:"price"`
	PriceCurrency string `json:"currency"`
}

// URL returns the public marketplace page for the card.
func (l Listing) URL() string {
	return cardURLBase + l.Slug
}

type saltResponse struct {
	Salt string `json:"salt"`
}

type signInData struct {
	SignIn struct {
		JWTToken *struct {
			Token string `json:"token"`
		} `json:"jwtToken"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	} `json:"signIn"`
}

type cardsData struct {
	Football struct {
		Cards struct {
			Nodes []cardNode `json:"nodes"`
		} `json:"cards"`
	} `json:"football"`
}

type cardNode struct {
	Slug   string `json:"slug"`
	Player *struct {
		DisplayName string `json:"displayName"`
	} `json:"player"`
	SaleOffers struct {
		Edges []struct {
			Node struct {
				Price *struct {
					Amount   amount `json:"amount"`
					Currency string `json:"currency"`
				} `json:"price"`
			} `json:"node"`
		} `json:"edges"`
	} `json:"saleOffers"`
}
