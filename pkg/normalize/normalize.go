// Package normalize maps raw ERP extract rows onto typed transaction lines.
// The extract schema drifted over the years, so every logical field is
// resolved through an ordered list of historical column names; the first
// present, non-null value wins.
package normalize

import (
	"strings"
	"time"

	"github.com/Trujillofa/depotru-database-sub000/pkg/models/domain"
	"github.com/shopspring/decimal"
)

// DefaultExcludedDocumentCodes are the internal/administrative document
// types filtered out of every analysis.
var DefaultExcludedDocumentCodes = []string{"XY", "AS", "TS"}

var (
	revenueWithTaxKeys    = []string{"TotalMasIva", "PrecioTotal", "precio_total_iva"}
	revenueWithoutTaxKeys = []string{"TotalSinIva", "PrecioUnitario", "precio_total"}
	costKeys              = []string{"ValorCosto", "CostoUnitario", "cost", "costo"}
	quantityKeys          = []string{"Cantidad", "quantity", "cantidad"}
	dateKeys              = []string{"Fecha", "date", "fecha"}
	customerKeyKeys       = []string{"TercerosCodigo", "CodigoCliente", "customer_id", "cliente_id"}
	customerNameKeys      = []string{"TercerosNombres", "NombreCliente", "customer_name", "cliente"}
	productCodeKeys       = []string{"ArticulosCodigo", "sku", "codigo_articulo"}
	productNameKeys       = []string{"ArticulosNombre", "Descripcion", "product_name", "producto"}
	categoryKeys          = []string{"Categoria", "categoria", "category"}
	subcategoryKeys       = []string{"Subcategoria", "subcategoria", "subcategory"}
	documentTypeKeys      = []string{"DocumentosCodigo", "TipoDocumento", "document_type"}
	documentNumberKeys    = []string{"NumeroDocumento", "numero_documento", "document_number"}
)

// Normalizer converts raw records to normalized lines and drops excluded
// document types. It is pure: a malformed field degrades to a zero value
// and never aborts the run.
type Normalizer struct {
	excluded domain.ExclusionSet
}

func New(excluded domain.ExclusionSet) *Normalizer {
	if excluded == nil {
		excluded = domain.NewExclusionSet(DefaultExcludedDocumentCodes...)
	}
	return &Normalizer{excluded: excluded}
}

// Normalize extracts a typed line from a raw record. ok is false when the
// line belongs to an excluded document type and must not reach any
// analyzer.
func (n *Normalizer) Normalize(raw domain.RawRecord) (domain.NormalizedLine, bool) {
	docType := stringField(raw, documentTypeKeys, "")
	if n.excluded.Contains(docType) {
		return domain.NormalizedLine{}, false
	}

	key := stringField(raw, customerKeyKeys, "")
	name := stringField(raw, customerNameKeys, domain.UnknownKey)
	if key == "" {
		key = name
	}

	code := stringField(raw, productCodeKeys, "")
	productName := stringField(raw, productNameKeys, domain.UnknownKey)
	if code == "" {
		code = productName
	}

	return domain.NormalizedLine{
		Date:              dateField(raw, dateKeys),
		RevenueWithTax:    decimalField(raw, revenueWithTaxKeys),
		RevenueWithoutTax: decimalField(raw, revenueWithoutTaxKeys),
		Cost:              decimalField(raw, costKeys),
		Quantity:          decimalField(raw, quantityKeys),
		CustomerKey:       key,
		CustomerName:      name,
		ProductCode:       code,
		ProductName:       productName,
		Category:          stringField(raw, categoryKeys, domain.UnknownKey),
		Subcategory:       stringField(raw, subcategoryKeys, domain.UnknownKey),
		DocumentType:      docType,
		DocumentNumber:    stringField(raw, documentNumberKeys, ""),
	}, true
}

// NormalizeAll filters a whole extract. Exclusion happens here exactly
// once, so every analyzer sees an identical stream.
func (n *Normalizer) NormalizeAll(records []domain.RawRecord) []domain.NormalizedLine {
	lines := make([]domain.NormalizedLine, 0, len(records))
	for _, raw := range records {
		if line, ok := n.Normalize(raw); ok {
			lines = append(lines, line)
		}
	}
	return lines
}

func lookup(raw domain.RawRecord, keys []string) (any, bool) {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

func decimalField(raw domain.RawRecord, keys []string) decimal.Decimal {
	v, ok := lookup(raw, keys)
	if !ok {
		return decimal.Zero
	}
	return coerceDecimal(v)
}

// coerceDecimal accepts true numeric types and numeric-looking text.
// Anything else counts as absent and becomes zero.
func coerceDecimal(v any) decimal.Decimal {
	switch x := v.(type) {
	case decimal.Decimal:
		return x
	case float64:
		return decimal.NewFromFloat(x)
	case float32:
		return decimal.NewFromFloat32(x)
	case int:
		return decimal.NewFromInt(int64(x))
	case int32:
		return decimal.NewFromInt32(x)
	case int64:
		return decimal.NewFromInt(x)
	case []byte:
		return parseDecimalString(string(x))
	case string:
		return parseDecimalString(x)
	default:
		return decimal.Zero
	}
}

func parseDecimalString(s string) decimal.Decimal {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

func stringField(raw domain.RawRecord, keys []string, fallback string) string {
	v, ok := lookup(raw, keys)
	if !ok {
		return fallback
	}
	var s string
	switch x := v.(type) {
	case string:
		s = strings.TrimSpace(x)
	case []byte:
		s = strings.TrimSpace(string(x))
	default:
		return fallback
	}
	if s == "" {
		return fallback
	}
	return s
}

var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func dateField(raw domain.RawRecord, keys []string) time.Time {
	v, ok := lookup(raw, keys)
	if !ok {
		return time.Time{}
	}
	switch x := v.(type) {
	case time.Time:
		return x
	case string:
		for _, layout := range dateLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(x)); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
