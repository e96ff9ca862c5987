package http

import (
	"io"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/selec-labs/selecbot/pkg/domain/model"
	"github.com/selec-labs/selecbot/pkg/utils/errutil"
)

// maxWebhookBody caps the inbound payload size. Chat events are small;
// anything larger is not a chat event.
const maxWebhookBody = 1 << 20

// handleWebhook processes one chat platform callback. The response is
// always HTTP 200 with a reply envelope: a non-2xx answer would make the
// platform show the visitor a raw error.
func (s *Server) handleWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil {
		errutil.Handle(r.Context(), goerr.Wrap(err, "failed to read webhook body"), "webhook read failed")
		writeJSON(w, http.StatusOK, fallbackReply())
		return
	}

	ev := model.ParseEvent(body)

	reply, err := s.uc.Conversation.HandleEvent(r.Context(), ev)
	if err != nil {
		errutil.Handle(r.Context(), err, "webhook handling failed")
		writeJSON(w, http.StatusOK, fallbackReply())
		return
	}

	writeJSON(w, http.StatusOK, reply)
}

// fallbackReply hands the visitor to a human when internal handling
// failed; the visitor never sees an error.
func fallbackReply() *model.Reply {
	return model.NewForward(
		"No he podido procesar su mensaje.",
		"Lo comunicaré con un ejecutivo para atenderle.",
	)
}
