package order

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/nortia/backoffice/internal/model"
	"github.com/shopspring/decimal"
)

var csvHeader = []string{
	"order_id", "created_at", "status",
	"customer_name", "customer_email", "customer_phone",
	"address_line1", "address_city", "address_country",
	"product", "variant", "quantity", "unit_price", "line_total",
	"order_subtotal", "order_total", "currency", "note",
}

// WriteCSV renders orders as CSV, one row per order item. The output is
// prefixed with a UTF-8 BOM so spreadsheet applications detect the
// encoding.
func WriteCSV(orders []model.Order) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}

	for i := range orders {
		o := &orders[i]
		for _, item := range o.Items {
			variant := ""
			if item.VariantName != nil {
				variant = *item.VariantName
			}
			phone := ""
			if o.CustomerPhone != nil {
				phone = *o.CustomerPhone
			}
			note := ""
			if o.Note != nil {
				note = *o.Note
			}
			var line1, city, country string
			if o.Address != nil {
				line1 = o.Address.Line1
				city = o.Address.City
				country = o.Address.Country
			}
			line := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))

			record := []string{
				o.ID,
				o.CreatedAt.Format("2006-01-02 15:04:05"),
				string(o.Status),
				o.CustomerName,
				o.CustomerEmail,
				phone,
				line1,
				city,
				country,
				item.ProductName,
				variant,
				strconv.Itoa(item.Quantity),
				item.UnitPrice.StringFixed(2),
				line.StringFixed(2),
				o.Subtotal.StringFixed(2),
				o.Total.StringFixed(2),
				o.Currency,
				note,
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
