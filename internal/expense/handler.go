package expense

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/spendwise/spendwise/internal/platform/httpx"
	"github.com/spendwise/spendwise/internal/shared"
)

// dateLayout is the wire format for expense dates.
const dateLayout = "2006-01-02"

// Handler wires HTTP endpoints for expense operations. All routes are
// mounted behind the auth middleware, so a caller identity is expected
// in the request context.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	validator *validator.Validate
}

// NewHandler constructs a Handler instance.
func NewHandler(logger *slog.Logger, service *Service) *Handler {
	return &Handler{logger: logger, service: service, validator: validator.New()}
}

// MountRoutes registers expense routes on the provided router.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Post("/", h.createExpense)
	r.Get("/", h.listExpenses)
	r.Get("/filter", h.filterExpenses)
}

type createExpenseRequest struct {
	Amount      *float64 `json:"amount" validate:"required"`
	Category    string   `json:"category" validate:"required"`
	Description string   `json:"description"`
	Date        string   `json:"date" validate:"required"`
}

// expenseView is the JSON shape of an expense. Dates go out as
// YYYY-MM-DD, matching the request format.
type expenseView struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	Date        string    `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
}

func viewOf(e Expense) expenseView {
	return expenseView{
		ID:          e.ID,
		UserID:      e.UserID,
		Amount:      e.Amount,
		Category:    e.Category,
		Description: e.Description,
		Date:        e.Date.Format(dateLayout),
		CreatedAt:   e.CreatedAt,
	}
}

func viewsOf(expenses []Expense) []expenseView {
	views := make([]expenseView, 0, len(expenses))
	for _, e := range expenses {
		views = append(views, viewOf(e))
	}
	return views
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		httpx.Message(w, http.StatusUnauthorized, "no token")
		return
	}

	var req createExpenseRequest
	if err := httpx.DecodeJSON(r, &req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validator.Struct(req); err != nil {
		httpx.Message(w, http.StatusBadRequest, "amount, category and date are required")
		return
	}
	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		httpx.Message(w, http.StatusBadRequest, "date must be in YYYY-MM-DD format")
		return
	}

	created, err := h.service.Create(r.Context(), identity.ID, CreateInput{
		Amount:      *req.Amount,
		Category:    req.Category,
		Description: req.Description,
		Date:        date,
	})
	if err != nil {
		h.logger.Error("create expense", slog.Any("error", err))
		httpx.ServerError(w)
		return
	}

	httpx.JSON(w, http.StatusCreated, viewOf(*created))
}

func (h *Handler) listExpenses(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		httpx.Message(w, http.StatusUnauthorized, "no token")
		return
	}

	expenses, err := h.service.List(r.Context(), identity.ID)
	if err != nil {
		h.logger.Error("list expenses", slog.Any("error", err))
		httpx.ServerError(w)
		return
	}

	httpx.JSON(w, http.StatusOK, viewsOf(expenses))
}

func (h *Handler) filterExpenses(w http.ResponseWriter, r *http.Request) {
	identity := shared.IdentityFromContext(r.Context())
	if identity == nil {
		httpx.Message(w, http.StatusUnauthorized, "no token")
		return
	}

	filter := Filter{Category: r.URL.Query().Get("category")}
	var err error
	if filter.StartDate, err = parseDateParam(r, "startDate"); err != nil {
		httpx.Message(w, http.StatusBadRequest, "startDate must be in YYYY-MM-DD format")
		return
	}
	if filter.EndDate, err = parseDateParam(r, "endDate"); err != nil {
		httpx.Message(w, http.StatusBadRequest, "endDate must be in YYYY-MM-DD format")
		return
	}

	expenses, err := h.service.Filter(r.Context(), identity.ID, filter)
	if err != nil {
		h.logger.Error("filter expenses", slog.Any("error", err))
		httpx.ServerError(w)
		return
	}

	httpx.JSON(w, http.StatusOK, viewsOf(expenses))
}

func parseDateParam(r *http.Request, name string) (time.Time, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse(dateLayout, raw)
}
