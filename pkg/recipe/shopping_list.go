package recipe

import (
	"Foodgram-Backend/domain"
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/phpdave11/gofpdf"
)

const (
	ShoppingListTextName = "shopping_cart.txt"
	ShoppingListPDFName  = "shopping_cart.pdf"

	ShoppingListTextContentType = "text/plain; charset=utf-8"
	ShoppingListPDFContentType  = "application/pdf"
)

type shoppingListKey struct {
	name string
	unit string
}

// AggregateShoppingList merges lines sharing a (name, unit) pair by summing
// their amounts. Items keep the order in which each pair was first seen.
func AggregateShoppingList(lines []domain.ShoppingListItem) []domain.ShoppingListItem {
	index := make(map[shoppingListKey]int, len(lines))
	items := make([]domain.ShoppingListItem, 0, len(lines))

	for _, line := range lines {
		key := shoppingListKey{name: line.Name, unit: line.MeasurementUnit}
		if i, ok := index[key]; ok {
			items[i].Amount += line.Amount
			continue
		}
		index[key] = len(items)
		items = append(items, line)
	}
	return items
}

// RenderShoppingListText writes one "\n{name} - {amount}, {unit}" entry per
// item. No items yields an empty body.
func RenderShoppingListText(items []domain.ShoppingListItem) []byte {
	var b strings.Builder
	for _, item := range items {
		fmt.Fprintf(&b, "\n%s - %d, %s", item.Name, item.Amount, item.MeasurementUnit)
	}
	return []byte(b.String())
}

func RenderShoppingListPDF(items []domain.ShoppingListItem) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 12, "Shopping list", "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(235, 235, 235)
	pdf.CellFormat(110, 8, "Ingredient", "1", 0, "L", true, 0, "")
	pdf.CellFormat(35, 8, "Amount", "1", 0, "R", true, 0, "")
	pdf.CellFormat(35, 8, "Unit", "1", 1, "L", true, 0, "")

	pdf.SetFont("Arial", "", 12)
	for _, item := range items {
		pdf.CellFormat(110, 8, tr(item.Name), "1", 0, "L", false, 0, "")
		pdf.CellFormat(35, 8, strconv.Itoa(item.Amount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(35, 8, tr(item.MeasurementUnit), "1", 1, "L", false, 0, "")
	}
	if len(items) == 0 {
		pdf.SetFont("Arial", "I", 12)
		pdf.CellFormat(0, 8, "Your shopping cart is empty.", "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderShoppingList picks the renderer for format. An empty format means text.
func RenderShoppingList(items []domain.ShoppingListItem, format domain.ShoppingListFormat) (domain.ShoppingListFile, error) {
	switch format {
	case "", domain.ShoppingListText:
		return domain.ShoppingListFile{
			FileName:    ShoppingListTextName,
			ContentType: ShoppingListTextContentType,
			Content:     RenderShoppingListText(items),
		}, nil
	case domain.ShoppingListPDF:
		content, err := RenderShoppingListPDF(items)
		if err != nil {
			return domain.ShoppingListFile{}, err
		}
		return domain.ShoppingListFile{
			FileName:    ShoppingListPDFName,
			ContentType: ShoppingListPDFContentType,
			Content:     content,
		}, nil
	default:
		return domain.ShoppingListFile{}, domain.NewValidationError("unsupported shopping list format %q", format)
	}
}
