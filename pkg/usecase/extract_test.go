package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
	"github.com/selec-labs/selecbot/pkg/usecase"
)

func extract(t *testing.T, flow *model.FlowSpec, existing map[types.FieldKey]string, message string) map[types.FieldKey]string {
	t.Helper()
	if existing == nil {
		existing = map[types.FieldKey]string{}
	}
	return usecase.NewExtractor(nil).Extract(flow, existing, message)
}

func TestExtract_LabeledLines(t *testing.T) {
	flow := model.QuoteFlow()

	t.Run("basic labels", func(t *testing.T) {
		data := extract(t, flow, nil, "Empresa: Acme SpA\nRUT: 76.123.456-7\nCorreo: ventas@acme.cl")
		gt.S(t, data[types.FieldCompany]).Equal("Acme SpA")
		gt.S(t, data[types.FieldTaxID]).Equal("76.123.456-7")
		gt.S(t, data[types.FieldEmail]).Equal("ventas@acme.cl")
	})

	t.Run("label synonyms and accents", func(t *testing.T) {
		data := extract(t, flow, nil, "Razón Social: Acme SpA\nE-mail: ventas@acme.cl\nTeléfono: +56 9 1234 5678")
		gt.S(t, data[types.FieldCompany]).Equal("Acme SpA")
		gt.S(t, data[types.FieldEmail]).Equal("ventas@acme.cl")
		gt.S(t, data[types.FieldPhone]).Equal("+56 9 1234 5678")
	})

	t.Run("exact rut label does not match prefixes", func(t *testing.T) {
		data := extract(t, flow, nil, "Rutero: algo")
		gt.S(t, data[types.FieldTaxID]).Equal("")
	})

	t.Run("order independence", func(t *testing.T) {
		a := extract(t, flow, nil, "Empresa: Acme\nCorreo: a@b.cl\nCantidad: 5")
		b := extract(t, flow, nil, "Cantidad: 5\nCorreo: a@b.cl\nEmpresa: Acme")
		gt.V(t, a).Equal(b)
	})

	t.Run("labeled value overwrites accumulated data", func(t *testing.T) {
		existing := map[types.FieldKey]string{types.FieldEmail: "typo@"}
		data := extract(t, flow, existing, "Correo: fixed@acme.cl")
		gt.S(t, data[types.FieldEmail]).Equal("fixed@acme.cl")
	})

	t.Run("empty labeled value assigns nothing", func(t *testing.T) {
		data := extract(t, flow, nil, "Correo: ")
		gt.S(t, data[types.FieldEmail]).Equal("")
	})
}

func TestExtract_UnlabeledHeuristics(t *testing.T) {
	flow := model.QuoteFlow()

	t.Run("email token among other lines", func(t *testing.T) {
		data := extract(t, flow, nil, "Acme SpA\nventas@acme.cl\nnecesito 5 valvulas")
		gt.S(t, data[types.FieldEmail]).Equal("ventas@acme.cl")
	})

	t.Run("tax id by pattern", func(t *testing.T) {
		data := extract(t, flow, nil, "76.123.456-K")
		gt.S(t, data[types.FieldTaxID]).Equal("76.123.456-K")
	})

	t.Run("tax id by rut word takes last token", func(t *testing.T) {
		data := extract(t, flow, nil, "mi rut es 761234567")
		gt.S(t, data[types.FieldTaxID]).Equal("761234567")
	})

	t.Run("phone by digit count", func(t *testing.T) {
		data := extract(t, flow, nil, "+56 9 1234 5678")
		gt.S(t, data[types.FieldPhone]).Equal("+56 9 1234 5678")
	})

	t.Run("too few digits is not a phone", func(t *testing.T) {
		data := extract(t, flow, nil, "123")
		gt.S(t, data[types.FieldPhone]).Equal("")
	})

	t.Run("line with at-sign is never a phone", func(t *testing.T) {
		existing := map[types.FieldKey]string{types.FieldEmail: "x@y.cl"}
		data := extract(t, flow, existing, "contacto789456123@acme.cl")
		gt.S(t, data[types.FieldPhone]).Equal("")
	})

	t.Run("keyword anchored company", func(t *testing.T) {
		data := extract(t, flow, nil, "trabajo en la empresa acme spa")
		gt.S(t, data[types.FieldCompany]).Equal("acme spa")
	})

	t.Run("keyword with empty tail falls back to whole line", func(t *testing.T) {
		data := extract(t, flow, nil, "nuestra empresa")
		gt.S(t, data[types.FieldCompany]).Equal("nuestra empresa")
	})

	t.Run("heuristics do not overwrite accumulated data", func(t *testing.T) {
		existing := map[types.FieldKey]string{types.FieldEmail: "keep@acme.cl"}
		data := extract(t, flow, existing, "otro@correo.cl")
		gt.S(t, data[types.FieldEmail]).Equal("keep@acme.cl")
	})
}

func TestExtract_PositionalFallback(t *testing.T) {
	flow := model.QuoteFlow()

	t.Run("first non-numeric line fills company", func(t *testing.T) {
		data := extract(t, flow, nil, "Acme SpA")
		gt.S(t, data[types.FieldCompany]).Equal("Acme SpA")
	})

	t.Run("mostly numeric line is skipped for company", func(t *testing.T) {
		data := extract(t, flow, map[types.FieldKey]string{types.FieldPhone: "987654321"}, "12345678-9\nAcme SpA")
		gt.S(t, data[types.FieldCompany]).Equal("Acme SpA")
	})

	t.Run("remaining lines join into detail", func(t *testing.T) {
		data := extract(t, flow, map[types.FieldKey]string{types.FieldCompany: "Acme"},
			"necesito valvulas de bola\nmodelo VB-200 en acero")
		gt.S(t, data[types.FieldDetail]).Equal("necesito valvulas de bola modelo VB-200 en acero")
	})
}

func TestExtract_QuantityFallback(t *testing.T) {
	flow := model.QuoteFlow()

	t.Run("last numeric token wins", func(t *testing.T) {
		data := extract(t, flow, map[types.FieldKey]string{types.FieldCompany: "Acme"}, "necesito 3 cajas con 12 unidades")
		gt.S(t, data[types.FieldQuantity]).Equal("12")
	})

	t.Run("comma decimal accepted", func(t *testing.T) {
		data := extract(t, flow, nil, "Cantidad requerida 2,5")
		gt.S(t, data[types.FieldQuantity]).Equal("2,5")
	})

	t.Run("no fallback when quantity already set", func(t *testing.T) {
		existing := map[types.FieldKey]string{types.FieldQuantity: "5"}
		data := extract(t, flow, existing, "referencia 99")
		gt.S(t, data[types.FieldQuantity]).Equal("5")
	})

	t.Run("no fallback for flows without quantity", func(t *testing.T) {
		data := extract(t, model.AfterSalesFlow(), nil, "factura numero 4512")
		gt.S(t, data[types.FieldQuantity]).Equal("")
	})
}

func TestExtract_Idempotence(t *testing.T) {
	flow := model.QuoteFlow()
	message := "Empresa: Acme SpA\nRUT: 76.123.456-7\nventas@acme.cl\n+56 9 1234 5678\nvalvulas VB-200\n5 unidades"

	once := extract(t, flow, map[types.FieldKey]string{}, message)
	twice := extract(t, flow, once, message)

	gt.V(t, twice).Equal(once)
}

func TestExtract_MergesOverExisting(t *testing.T) {
	flow := model.QuoteFlow()
	existing := map[types.FieldKey]string{
		types.FieldCompany: "Acme SpA",
		types.FieldTaxID:   "76.123.456-7",
	}

	data := extract(t, flow, existing, "Correo: ventas@acme.cl")

	gt.S(t, data[types.FieldCompany]).Equal("Acme SpA")
	gt.S(t, data[types.FieldTaxID]).Equal("76.123.456-7")
	gt.S(t, data[types.FieldEmail]).Equal("ventas@acme.cl")

	// The input map is not mutated
	gt.N(t, len(existing)).Equal(2)
}

func TestExtract_NeverFails(t *testing.T) {
	flow := model.QuoteFlow()
	for _, message := range []string{"", "\n\n\n", ":::", "   :   ", "@", "ñandú"} {
		data := extract(t, flow, nil, message)
		gt.V(t, data).NotNil()
	}
}

func TestMostlyNumeric(t *testing.T) {
	gt.B(t, usecase.MostlyNumeric("12345678-9")).True()
	gt.B(t, usecase.MostlyNumeric("5")).True()
	gt.B(t, usecase.MostlyNumeric("Acme SpA")).False()
	gt.B(t, usecase.MostlyNumeric("VB-200 acero inoxidable")).False()
	gt.B(t, usecase.MostlyNumeric("")).False()
}
