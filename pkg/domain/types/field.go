package types

// FieldKey is the canonical name of a collected form field
type FieldKey string

const (
	FieldCompany         FieldKey = "company"
	FieldTaxID           FieldKey = "tax_id"
	FieldContactName     FieldKey = "contact_name"
	FieldEmail           FieldKey = "email"
	FieldPhone           FieldKey = "phone"
	FieldDetail          FieldKey = "detail"
	FieldQuantity        FieldKey = "quantity"
	FieldLineOfBusiness  FieldKey = "line_of_business"
	FieldBrand           FieldKey = "brand"
	FieldDeliveryAddress FieldKey = "delivery_address"
	FieldName            FieldKey = "name"
	FieldInvoiceNumber   FieldKey = "invoice_number"
	FieldProblem         FieldKey = "problem"
)

// String returns the string representation of the field key
func (k FieldKey) String() string {
	return string(k)
}

// FieldKind selects the validation rule applied to a field value
type FieldKind string

const (
	// FieldKindText is validated only for presence
	FieldKindText FieldKind = "text"
	// FieldKindEmail must look like local@domain.tld when present
	FieldKindEmail FieldKind = "email"
	// FieldKindQuantity must parse as a decimal number greater than zero
	FieldKindQuantity FieldKind = "quantity"
)
