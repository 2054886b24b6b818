package sorare

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// amount accepts a price amount encoded either as a JSON string or as a
// bare number and keeps its textual form.
type amount string

func (a *amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = amount(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("price amount %s is neither string nor number", data)
	}
	*a = amount(n.String())
	return nil
}

// toListings converts card nodes into listings, keeping the API order.
func toListings(nodes []cardNode) ([]Listing, error) {
	listings := make([]Listing, 0, len(nodes))
	for i := range nodes {
		l, err := toListing(&nodes[i])
		if err != nil {
			return nil, err
		}
		listings = append(listings, l)
	}
	return listings, nil
}

func toListing(n *cardNode) (Listing, error) {
	if n.Player == nil {
		return Listing{}, fmt.Errorf("card %q has no player", n.Slug)
	}

	l := Listing{
		Slug:          n.Slug,
		PlayerName:    n.Player.DisplayName,
		PriceAmount:   NotAvailable,
		PriceCurrency: NotAvailable,
	}

	// Only the first (best) offer is requested.
	if len(n.SaleOffers.Edges) > 0 {
		if p := n.SaleOffers.Edges[0].Node.Price; p != nil {
			l.PriceAmount = string(p.Amount)
			l.PriceCurrency = p.Currency
		}
	}

	return l, nil
}
