package forecast

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/Dan9191/cashflow-service/internal/models"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// jsonLineItem accepts both camelCase and snake_case price keys; amounts may be
// JSON numbers or numeric strings
type jsonLineItem struct {
	Quantity       decimal.Decimal  `json:"quantity"`
	UnitPrice      *decimal.Decimal `json:"unitPrice"`
	UnitPriceSnake *decimal.Decimal `json:"unit_price"`
}

// ParseLineItems normalizes stored recurring billing items. The payload may be
// a JSON array, a JSON string holding an array, or UBL XML containing
// cac:InvoiceLine elements. Anything unparseable yields no items.
func ParseLineItems(raw []byte) []models.LineItem {
	data := bytes.TrimSpace(raw)
	if len(data) == 0 {
		return nil
	}

	switch data[0] {
	case '"':
		var inner string
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		return ParseLineItems([]byte(inner))
	case '[':
		return parseJSONItems(data)
	case '<':
		return parseUBLItems(data)
	}
	return nil
}

func parseJSONItems(data []byte) []models.LineItem {
	var raw []jsonLineItem
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	items := make([]models.LineItem, 0, len(raw))
	for _, r := range raw {
		item := models.LineItem{Quantity: r.Quantity}
		switch {
		case r.UnitPrice != nil:
			item.UnitPrice = *r.UnitPrice
		case r.UnitPriceSnake != nil:
			item.UnitPrice = *r.UnitPriceSnake
		}
		items = append(items, item)
	}
	return items
}

// parseUBLItems reads e-Factura style invoice lines. Namespace prefixes are
// ignored by the element paths.
func parseUBLItems(data []byte) []models.LineItem {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil
	}

	lines := doc.FindElements("//InvoiceLine")
	items := make([]models.LineItem, 0, len(lines))
	for _, line := range lines {
		qtyEl := line.FindElement("./InvoicedQuantity")
		priceEl := line.FindElement("./Price/PriceAmount")
		if qtyEl == nil || priceEl == nil {
			return nil
		}
		qty, err := decimal.NewFromString(strings.TrimSpace(qtyEl.Text()))
		if err != nil {
			return nil
		}
		price, err := decimal.NewFromString(strings.TrimSpace(priceEl.Text()))
		if err != nil {
			return nil
		}
		items = append(items, models.LineItem{Quantity: qty, UnitPrice: price})
	}
	return items
}

// BillingAmount is the tax-inclusive amount of one occurrence of a recurring
// billing: sum(quantity * unitPrice) * (1 + rate/100), never negative
func BillingAmount(b models.RecurringBilling) float64 {
	net := decimal.Zero
	for _, item := range ParseLineItems(b.Items) {
		net = net.Add(item.Total())
	}
	rate := decimal.NewFromFloat(b.TaxRatePercent).Div(hundred)
	gross := net.Mul(decimal.NewFromInt(1).Add(rate))
	if gross.IsNegative() {
		return 0
	}
	return gross.InexactFloat64()
}
