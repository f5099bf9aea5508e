package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Ksuraj2002/SplitMint/internal/group"
	"github.com/Ksuraj2002/SplitMint/pkg/middleware"
	"github.com/Ksuraj2002/SplitMint/pkg/response"
)

// Handler handles HTTP requests for balance views.
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for balance endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/group/{groupId}", h.GroupBalance)
	r.Get("/summary", h.Summary)

	return r
}

// GroupBalance handles GET /balance/group/{groupId}
// @Summary      Group balance view
// @Description  Net balance per participant plus suggested settlements for a group
// @Tags         balance
// @Produce      json
// @Param        groupId path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalanceResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /balance/group/{groupId} [get]
func (h *Handler) GroupBalance(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	view, err := h.service.GroupBalance(r.Context(), chi.URLParam(r, "groupId"), ownerID)
	if err != nil {
		if errors.Is(err, group.ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute balances")
		return
	}

	response.JSON(w, http.StatusOK, view)
}

// Summary handles GET /balance/summary
// @Summary      Balance summary
// @Description  Totals and net balances aggregated across all of the user's groups
// @Tags         balance
// @Produce      json
// @Success      200 {object} response.APIResponse{data=SummaryResponse}
// @Router       /balance/summary [get]
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	view, err := h.service.Summary(r.Context(), ownerID)
	if err != nil {
		response.InternalError(w, "Failed to compute summary")
		return
	}

	response.JSON(w, http.StatusOK, view)
}
