package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"roi-engine/internal/service/roi"
)

const (
	StatusOK      = "ok"
	StatusBlocked = "blocked"
	StatusError   = "error"

	BlockedMessage = "results unavailable: configuration incomplete"
)

type Response struct {
	Status   string   `json:"status"`
	Message  string   `json:"message,omitempty"`
	Blockers []string `json:"blockers,omitempty"`
}

// Blocked answers 422 so a blocked calculation is never shown as zero figures.
func Blocked(w http.ResponseWriter, r *http.Request, blockers []string) {
	render.Status(r, http.StatusUnprocessableEntity)
	render.JSON(w, r, Response{
		Status:   StatusBlocked,
		Message:  BlockedMessage,
		Blockers: blockers,
	})
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, Response{Status: StatusError, Message: msg})
}

// CalculationError maps a failed calculation to a status: input the engine
// cannot normalize is the client's 400, anything else a 500.
func CalculationError(w http.ResponseWriter, r *http.Request, log *slog.Logger, err error) {
	if errors.Is(err, roi.ErrInvalidInput) {
		log.Warn("invalid input", slog.String("error", err.Error()))
		Error(w, r, http.StatusBadRequest, err.Error())
		return
	}
	log.Error("calculation failed", slog.String("error", err.Error()))
	Error(w, r, http.StatusInternalServerError, "internal error")
}
