package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"provolx/provolx/controllers"
	httputils "provolx/provolx/utils/http"
	"provolx/provolx/utils/logging"
	"provolx/provolx/utils/types"
)

func ChatRoutes(ctrl *controllers.ChatController) chi.Router {
	r := chi.NewRouter()
	// POST /chat : one question, optionally with sheet data and history
	r.Post("/", func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			detail := "Invalid request body: " + err.Error()
			logging.AppLogger.Warn("Rejected chat request",
				zap.String("trace_id", logging.TraceID(r.Context())), zap.String("detail", detail))
			writeError(w, http.StatusBadRequest, detail)
			return
		}
		result, err := ctrl.Chat(r.Context(), req)
		if err != nil {
			var verr *controllers.ValidationError
			if errors.As(err, &verr) {
				writeError(w, verr.Status, verr.Detail)
				return
			}
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		httputils.WriteJSON(w, http.StatusOK, result.Response())
	})
	return r
}

func writeError(w http.ResponseWriter, status int, detail string) {
	httputils.WriteJSON(w, status, types.ErrorResponse{Detail: detail})
}
