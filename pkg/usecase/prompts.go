package usecase

import (
	"strings"

	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/domain/types"
)

// Visitor-facing texts. The bot speaks Spanish; keys and code do not.
const (
	msgWelcome       = "¡Bienvenido! Gracias por contactar con Selec."
	msgChooseOption  = "Por favor, seleccione una de las siguientes opciones para atender su solicitud."
	msgAck           = "He recibido su mensaje."
	msgForwardNotice = "No he podido identificar su solicitud."
	msgForwardAction = "Lo comunicaré con un ejecutivo para atenderle."

	msgQuoteIntro      = "Perfecto, trabajaremos en su solicitud de cotización."
	msgAfterSalesIntro = "Perfecto, trabajaremos en su solicitud de postventa."
	msgSendFields      = "Por favor, envíe los siguientes datos en un solo mensaje:"

	msgMissingHeader = "Aún faltan o son inválidos los siguientes datos:"
	msgMissingFooter = "Por favor, reenvíe solo los datos corregidos."

	msgQuoteDone      = "Gracias. Hemos registrado su solicitud de cotización con el siguiente detalle:"
	msgAfterSalesDone = "Gracias. Hemos registrado su solicitud de postventa con el siguiente detalle:"
	msgExecutive      = "Un ejecutivo de Selec se pondrá en contacto con usted."
)

const (
	optionQuote      = "Solicitud Cotización"
	optionAfterSales = "Servicio PostVenta"
)

func menuReply() *model.Reply {
	return model.NewReply(msgWelcome, msgChooseOption).
		WithSelect(optionQuote, optionAfterSales)
}

func flowIntroReply(flow *model.FlowSpec) *model.Reply {
	intro := msgQuoteIntro
	if flow.Kind == types.FlowAfterSales {
		intro = msgAfterSalesIntro
	}
	return model.NewReply(
		intro,
		msgSendFields,
		strings.Join(flow.RequiredLabels(), ", ")+".",
	)
}

func correctionReply(missing []string) *model.Reply {
	return model.NewReply(
		msgMissingHeader,
		"- "+strings.Join(missing, "\n- "),
		msgMissingFooter,
	)
}

func confirmationReply(flow *model.FlowSpec, summary string) *model.Reply {
	done := msgQuoteDone
	if flow.Kind == types.FlowAfterSales {
		done = msgAfterSalesDone
	}
	return model.NewReply(done, summary, msgExecutive)
}

func forwardReply() *model.Reply {
	return model.NewForward(msgForwardNotice, msgForwardAction)
}

func ackReply() *model.Reply {
	return model.NewReply(msgAck)
}
