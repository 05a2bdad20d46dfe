package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/sportsbet-api/internal/platform/logging"
	"github.com/riskibarqy/sportsbet-api/internal/platform/resilience"
	"github.com/riskibarqy/sportsbet-api/internal/usecase"
)

// BreakerReporter is an upstream client whose circuit breaker state is shown on /healthz.
type BreakerReporter interface {
	BreakerState() resilience.CircuitState
}

type Handler struct {
	footballService *usecase.FootballService
	oddsService     *usecase.OddsService
	cricketService  *usecase.CricketService
	retiredRoutes   []usecase.RetiredRoute
	logger          *logging.Logger
	validator       *validator.Validate
	breakers        map[string]BreakerReporter
}

func NewHandler(
	footballService *usecase.FootballService,
	oddsService *usecase.OddsService,
	cricketService *usecase.CricketService,
	retiredRoutes []usecase.RetiredRoute,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		footballService: footballService,
		oddsService:     oddsService,
		cricketService:  cricketService,
		retiredRoutes:   retiredRoutes,
		logger:          logger.Named("httpapi"),
		validator:       validator.New(),
	}
}

// WithBreakers attaches the provider breakers reported by Healthz, keyed by provider name.
func (h *Handler) WithBreakers(breakers map[string]BreakerReporter) *Handler {
	h.breakers = breakers
	return h
}

type healthResponse struct {
	Status    string            `json:"status"`
	Providers map[string]string `json:"providers,omitempty"`
}

// Healthz always answers 200 so the process is not restarted for an upstream outage. Status
// turns "degraded" while any provider breaker is open.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	resp := healthResponse{Status: "ok"}
	if len(h.breakers) > 0 {
		resp.Providers = make(map[string]string, len(h.breakers))
		for name, breaker := range h.breakers {
			state := breaker.BreakerState()
			resp.Providers[name] = string(state)
			if state == resilience.CircuitStateOpen {
				resp.Status = "degraded"
			}
		}
	}

	writeSuccess(ctx, w, http.StatusOK, resp)
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: %s", usecase.ErrInvalidInput, describeValidationError(err))
	}

	return nil
}

// fail logs server-side failures and writes the mapped error response.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, operation string, err error) {
	mapped := mapError(ctx, err)
	if mapped.HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, operation+" failed", "error", err, "status", mapped.HTTPStatus)
	} else {
		h.logger.WarnContext(ctx, operation+" rejected", "error", err, "status", mapped.HTTPStatus)
	}
	writeError(ctx, w, err)
}
