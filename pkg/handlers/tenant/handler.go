package tenant

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/de-tools/energy-labeler/pkg/adapters"
	"github.com/de-tools/energy-labeler/pkg/services/labeler"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

type Handler struct {
	tenantID string
	labeler  labeler.Service
}

func NewHandler(tenantID string, labeler labeler.Service) *Handler {
	return &Handler{
		tenantID: tenantID,
		labeler:  labeler,
	}
}

func (h *Handler) GetEnergyLabel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	label, err := h.labeler.TenantLabel(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to label tenant")
		http.Error(w, "failed to label tenant", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapTenantEnergyLabelDomainToApi(h.tenantID, label))
}

func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	subscriptions, err := h.labeler.LabeledSubscriptions(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to label subscriptions")
		http.Error(w, "failed to label subscriptions", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapLabeledSubscriptionsDomainToApi(subscriptions))
}

func (h *Handler) ListResourceGroups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)
	subscriptionID := chi.URLParam(r, "subscriptionID")

	groups, err := h.labeler.LabeledResourceGroups(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, labeler.ErrOutOfScope) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		logger.Error().
			Err(err).
			Str("subscription_id", subscriptionID).
			Msg("failed to label resource groups")
		http.Error(w, "failed to label resource groups", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapLabeledResourceGroupsDomainToApi(groups))
}

func (h *Handler) ListFindings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := zerolog.Ctx(ctx)

	findings, err := h.labeler.Findings(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("failed to collect findings")
		http.Error(w, "failed to collect findings", http.StatusInternalServerError)
		return
	}

	writeJSON(w, logger, adapters.MapFindingsDomainToApi(findings))
}

func writeJSON(w http.ResponseWriter, logger *zerolog.Logger, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}
