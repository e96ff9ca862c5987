package model

import (
	"strings"

	"github.com/selec-labs/selecbot/pkg/domain/types"
)

// FieldSpec declares one collectable field of a flow. Validation output
// follows the declaration order of the Fields slice, not input order.
type FieldSpec struct {
	Key      types.FieldKey
	Label    string
	Kind     types.FieldKind
	Required bool
}

// LabelRule maps a normalized "label: value" label onto a field. Exact
// patterns must equal the whole label; Contains patterns match as a
// substring. The first matching rule wins.
type LabelRule struct {
	Key      types.FieldKey
	Exact    []string
	Contains []string
}

// Matches reports whether the rule claims the normalized label
func (r LabelRule) Matches(normLabel string) bool {
	for _, p := range r.Exact {
		if normLabel == p {
			return true
		}
	}
	for _, p := range r.Contains {
		if strings.Contains(normLabel, p) {
			return true
		}
	}
	return false
}

// KeywordRule claims an unlabeled line for a field when one of its
// keywords appears in the normalized line.
type KeywordRule struct {
	Key      types.FieldKey
	Keywords []string
}

// FlowSpec is the full declaration of a data-collection flow: its fields,
// its labeled-line synonym table, and the targets of each heuristic
// fallback. Heuristic precedence is fixed: email, tax id, phone, keyword
// rules in order, then the positional primary text, then the free-text
// remainder.
type FlowSpec struct {
	Kind   types.FlowKind
	State  types.ConversationState
	Fields []FieldSpec

	LabelRules   []LabelRule
	KeywordRules []KeywordRule

	// EmailKey, TaxIDKey and PhoneKey enable the pattern heuristics;
	// empty disables the heuristic for this flow.
	EmailKey types.FieldKey
	TaxIDKey types.FieldKey
	PhoneKey types.FieldKey

	// PrimaryTextKey receives the first unconsumed non-numeric line
	PrimaryTextKey types.FieldKey

	// FreeTextKey receives the joined remainder of unconsumed lines
	FreeTextKey types.FieldKey

	// QuantityKey receives the whole-message numeric fallback
	QuantityKey types.FieldKey
}

// Field returns the spec of the given key, or nil if the flow does not
// declare it.
func (f *FlowSpec) Field(key types.FieldKey) *FieldSpec {
	for i := range f.Fields {
		if f.Fields[i].Key == key {
			return &f.Fields[i]
		}
	}
	return nil
}

// RequiredLabels returns the display labels of the required fields in
// declaration order.
func (f *FlowSpec) RequiredLabels() []string {
	var labels []string
	for _, fs := range f.Fields {
		if fs.Required {
			labels = append(labels, fs.Label)
		}
	}
	return labels
}

// Summary renders the collected data as "Label: value" lines in
// declaration order, skipping empty fields.
func (f *FlowSpec) Summary(data map[types.FieldKey]string) string {
	var lines []string
	for _, fs := range f.Fields {
		if v := strings.TrimSpace(data[fs.Key]); v != "" {
			lines = append(lines, fs.Label+": "+v)
		}
	}
	return strings.Join(lines, "\n")
}

// QuoteFlow declares the sales quote request flow
func QuoteFlow() *FlowSpec {
	return &FlowSpec{
		Kind:  types.FlowQuote,
		State: types.StateQuoteEntry,
		Fields: []FieldSpec{
			{Key: types.FieldCompany, Label: "Empresa", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldTaxID, Label: "RUT", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldContactName, Label: "Nombre de contacto", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldEmail, Label: "Correo", Kind: types.FieldKindEmail, Required: true},
			{Key: types.FieldPhone, Label: "Teléfono", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldDetail, Label: "Número de parte o descripción", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldQuantity, Label: "Cantidad", Kind: types.FieldKindQuantity, Required: true},
			{Key: types.FieldLineOfBusiness, Label: "Rubro", Kind: types.FieldKindText, Required: false},
			{Key: types.FieldBrand, Label: "Marca", Kind: types.FieldKindText, Required: false},
			{Key: types.FieldDeliveryAddress, Label: "Dirección de despacho", Kind: types.FieldKindText, Required: false},
		},
		LabelRules: []LabelRule{
			{Key: types.FieldEmail, Contains: []string{"correo", "email", "e-mail", "mail"}},
			{Key: types.FieldTaxID, Exact: []string{"rut", "r.u.t", "r.u.t.", "r u t"}},
			{Key: types.FieldContactName, Contains: []string{"contacto"}},
			{Key: types.FieldCompany, Contains: []string{"empresa", "razon social"}},
			{Key: types.FieldPhone, Contains: []string{"telefono", "fono", "celular"}},
			{Key: types.FieldQuantity, Contains: []string{"cantidad"}},
			{Key: types.FieldDetail, Contains: []string{"parte", "descripcion", "detalle", "requerimiento", "producto"}},
			{Key: types.FieldLineOfBusiness, Contains: []string{"rubro", "giro"}},
			{Key: types.FieldBrand, Contains: []string{"marca"}},
			{Key: types.FieldDeliveryAddress, Contains: []string{"direccion", "despacho", "entrega"}},
		},
		KeywordRules: []KeywordRule{
			{Key: types.FieldCompany, Keywords: []string{"empresa"}},
			{Key: types.FieldLineOfBusiness, Keywords: []string{"rubro", "giro"}},
			{Key: types.FieldDeliveryAddress, Keywords: []string{"direccion", "despacho"}},
			{Key: types.FieldContactName, Keywords: []string{"contacto"}},
		},
		EmailKey:       types.FieldEmail,
		TaxIDKey:       types.FieldTaxID,
		PhoneKey:       types.FieldPhone,
		PrimaryTextKey: types.FieldCompany,
		FreeTextKey:    types.FieldDetail,
		QuantityKey:    types.FieldQuantity,
	}
}

// AfterSalesFlow declares the after-sales service request flow
func AfterSalesFlow() *FlowSpec {
	return &FlowSpec{
		Kind:  types.FlowAfterSales,
		State: types.StateAfterSalesEntry,
		Fields: []FieldSpec{
			{Key: types.FieldName, Label: "Nombre", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldTaxID, Label: "RUT", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldInvoiceNumber, Label: "Número de factura", Kind: types.FieldKindText, Required: true},
			{Key: types.FieldProblem, Label: "Descripción del problema", Kind: types.FieldKindText, Required: false},
		},
		LabelRules: []LabelRule{
			{Key: types.FieldTaxID, Exact: []string{"rut", "r.u.t", "r.u.t.", "r u t"}},
			{Key: types.FieldInvoiceNumber, Contains: []string{"factura"}},
			{Key: types.FieldName, Contains: []string{"nombre"}},
			{Key: types.FieldProblem, Contains: []string{"problema", "descripcion", "detalle"}},
		},
		KeywordRules: []KeywordRule{
			{Key: types.FieldName, Keywords: []string{"nombre"}},
		},
		TaxIDKey:       types.FieldTaxID,
		PrimaryTextKey: types.FieldName,
		FreeTextKey:    types.FieldProblem,
	}
}

// FlowForState returns the flow spec owning the given data-entry state,
// or nil for non-entry states.
func FlowForState(state types.ConversationState) *FlowSpec {
	switch state {
	case types.StateQuoteEntry:
		return QuoteFlow()
	case types.StateAfterSalesEntry:
		return AfterSalesFlow()
	default:
		return nil
	}
}
