package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-exchange-bot/internal/models"
)

//go:generate mockgen -source=handling_fee.go -destination=handling_fee_mock_test.go -package=handlers

// HandlingFeeConfigService administers handling fee configs.
type HandlingFeeConfigService interface {
	List(ctx context.Context) ([]models.HandlingFeeConfig, error)
	Get(ctx context.Context, id int64) (*models.HandlingFeeConfig, error)
	Create(ctx context.Context, name string, isGlobal bool, items []models.HandlingFeeConfigItem, actor string) (*models.HandlingFeeConfig, error)
	Rename(ctx context.Context, id int64, name, actor string) (*models.HandlingFeeConfig, error)
	UpsertItems(ctx context.Context, id int64, items []models.HandlingFeeConfigItem) (*models.HandlingFeeConfig, error)
}

// CreateHandlingFeeConfigRequest creates a fee config
// swagger:model CreateHandlingFeeConfigRequest
type CreateHandlingFeeConfigRequest struct {
	// required: true
	Name string `json:"name"`
	// Only one global config may exist
	IsGlobal bool                           `json:"is_global"`
	Items    []models.HandlingFeeConfigItem `json:"items"`
}

// UpdateHandlingFeeConfigRequest renames a fee config
// swagger:model UpdateHandlingFeeConfigRequest
type UpdateHandlingFeeConfigRequest struct {
	// required: true
	Name string `json:"name"`
}

// UpsertHandlingFeeItemsRequest replaces per-currency rules
// swagger:model UpsertHandlingFeeItemsRequest
type UpsertHandlingFeeItemsRequest struct {
	// required: true
	Items []models.HandlingFeeConfigItem `json:"items"`
}

// NewListHandlingFeeConfigsHandler returns an HTTP handler listing fee configs.
// @Summary List handling fee configs
// @Tags handling_fee
// @Produce json
// @Success 200 {array} models.HandlingFeeConfig
// @Failure 401 {object} handlers.ErrorResponse "Unauthorized"
// @Router /handling_fee/config [get]
// @Security BearerAuth
func NewListHandlingFeeConfigsHandler(svc HandlingFeeConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configs, err := svc.List(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		if configs == nil {
			configs = []models.HandlingFeeConfig{}
		}
		writeJSON(w, http.StatusOK, configs)
	}
}

// NewGetHandlingFeeConfigHandler returns an HTTP handler for one fee config with its items.
// @Summary Get a handling fee config
// @Tags handling_fee
// @Produce json
// @Param id path int true "Config id"
// @Success 200 {object} models.HandlingFeeConfig
// @Failure 404 {object} handlers.ErrorResponse "Config not found"
// @Router /handling_fee/config/{id} [get]
// @Security BearerAuth
func NewGetHandlingFeeConfigHandler(svc HandlingFeeConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}
		cfg, err := svc.Get(r.Context(), id)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// NewCreateHandlingFeeConfigHandler returns an HTTP handler creating a fee config.
// @Summary Create a handling fee config
// @Tags handling_fee
// @Accept json
// @Produce json
// @Param request body handlers.CreateHandlingFeeConfigRequest true "Config"
// @Success 201 {object} models.HandlingFeeConfig
// @Failure 400 {object} handlers.ErrorResponse "Invalid config"
// @Failure 409 {object} handlers.ErrorResponse "A global config already exists"
// @Router /handling_fee/config [post]
// @Security BearerAuth
func NewCreateHandlingFeeConfigHandler(svc HandlingFeeConfigService, actorGetter ActorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r, actorGetter)
		if !ok {
			return
		}

		var req CreateHandlingFeeConfigRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		cfg, err := svc.Create(r.Context(), req.Name, req.IsGlobal, req.Items, actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, cfg)
	}
}

// NewUpdateHandlingFeeConfigHandler returns an HTTP handler renaming a fee config.
// @Summary Rename a handling fee config
// @Tags handling_fee
// @Accept json
// @Produce json
// @Param id path int true "Config id"
// @Param request body handlers.UpdateHandlingFeeConfigRequest true "New name"
// @Success 200 {object} models.HandlingFeeConfig
// @Failure 404 {object} handlers.ErrorResponse "Config not found"
// @Router /handling_fee/config/{id} [put]
// @Security BearerAuth
func NewUpdateHandlingFeeConfigHandler(svc HandlingFeeConfigService, actorGetter ActorGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		actor, ok := requireActor(w, r, actorGetter)
		if !ok {
			return
		}
		id, err := int64Param(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		var req UpdateHandlingFeeConfigRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		cfg, err := svc.Rename(r.Context(), id, req.Name, actor)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// NewUpsertHandlingFeeItemsHandler returns an HTTP handler for bulk item upserts.
// @Summary Upsert handling fee items
// @Tags handling_fee
// @Accept json
// @Produce json
// @Param id path int true "Config id"
// @Param request body handlers.UpsertHandlingFeeItemsRequest true "Items"
// @Success 200 {object} models.HandlingFeeConfig
// @Failure 400 {object} handlers.ErrorResponse "Invalid items"
// @Failure 404 {object} handlers.ErrorResponse "Config or currency not found"
// @Router /handling_fee/config/{id}/items [put]
// @Security BearerAuth
func NewUpsertHandlingFeeItemsHandler(svc HandlingFeeConfigService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := int64Param(r, "id")
		if err != nil {
			writeError(w, err)
			return
		}

		var req UpsertHandlingFeeItemsRequest
		if err := decodeBody(r, &req); err != nil {
			writeError(w, err)
			return
		}

		cfg, err := svc.UpsertItems(r.Context(), id, req.Items)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}
