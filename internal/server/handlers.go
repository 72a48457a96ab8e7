package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/bhaveshvasandani/PortfolioMgmt/internal/catalog"
	"github.com/bhaveshvasandani/PortfolioMgmt/internal/portfolio"
)

const serviceVersion = "1.0.0"

// ─── request payloads ─────────────────────────────────────────────────────────

// Payload fields are pointers so a missing key is distinguishable from a
// zero value; type mismatches fail in the decoder.

type createUserRequest struct {
	User *string `json:"user"`
}

type addAssetRequest struct {
	AssetID  *int   `json:"asset_id"`
	Quantity *int64 `json:"quantity"`
}

type updateAssetRequest struct {
	Quantity *int64 `json:"quantity"`
}

// ─── response shapes ──────────────────────────────────────────────────────────

type link struct {
	Rel  string `json:"rel"`
	Href string `json:"href"`
}

type portfolioView struct {
	User           string  `json:"user"`
	NumberOfAssets int     `json:"numberOfAssets"`
	NetAssetValue  float64 `json:"netAssetValue"`
	Links          []link  `json:"links"`
}

// urlRoot rebuilds the externally visible root URL of the request, used for
// HATEOAS links.
func urlRoot(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	return scheme + "://" + r.Host + "/"
}

// ─── meta endpoints ───────────────────────────────────────────────────────────

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"name":       "PortfolioMgmt",
		"version":    serviceVersion,
		"portfolios": urlRoot(r) + "api/v1/portfolios",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// ─── portfolio collection ─────────────────────────────────────────────────────

// GET /api/v1/portfolios
func (s *Server) handleListPortfolios(w http.ResponseWriter, r *http.Request) {
	root := urlRoot(r)
	summaries := s.dir.Summaries()
	views := make([]portfolioView, 0, len(summaries))
	for _, sum := range summaries {
		views = append(views, portfolioView{
			User:           sum.User,
			NumberOfAssets: sum.NumberOfAssets,
			NetAssetValue:  sum.NetAssetValue,
			Links: []link{
				{Rel: "self", Href: root + "api/v1/portfolios/" + sum.User},
			},
		})
	}
	respondJSON(w, http.StatusOK, map[string][]portfolioView{"portfolios": views})
}

// POST /api/v1/portfolios
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req createUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if req.User == nil || *req.User == "" {
		respondError(w, http.StatusBadRequest, "user is required")
		return
	}

	err := s.dir.Create(*req.User)
	countOp("create_user", err)
	if errors.Is(err, portfolio.ErrUserExists) {
		respondError(w, http.StatusConflict, fmt.Sprintf("User %s already exists", *req.User))
		return
	}
	s.persist(*req.User)
	respondEmpty(w, http.StatusCreated)
}

// ─── single portfolio ─────────────────────────────────────────────────────────

// GET /api/v1/portfolios/{user}
func (s *Server) handleListAssets(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	names, err := s.dir.AssetNames(user)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("User %s not found", user))
		return
	}
	respondJSON(w, http.StatusOK, map[string][]string{"assets": names})
}

// POST /api/v1/portfolios/{user}
func (s *Server) handleAddAsset(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]

	var req addAssetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if req.AssetID == nil || req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "asset_id and quantity are required")
		return
	}
	if *req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "quantity must be non-negative")
		return
	}
	// Unknown asset ids are rejected before the user lookup, like every
	// other validation failure.
	if _, err := catalog.Lookup(*req.AssetID); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Asset id %d does not exist in database", *req.AssetID))
		return
	}

	err := s.dir.Buy(user, *req.AssetID, *req.Quantity)
	countOp("buy", err)
	if errors.Is(err, portfolio.ErrUserNotFound) {
		respondError(w, http.StatusNotFound, fmt.Sprintf("User %s not found", user))
		return
	}
	s.persist(user)
	respondEmpty(w, http.StatusCreated)
}

// DELETE /api/v1/portfolios/{user}
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	s.dir.Delete(user)
	countOp("delete_user", nil)
	if err := s.store.DeleteSnapshot(user); err != nil {
		s.log.Warn().Err(err).Str("user", user).Msg("snapshot delete failed")
	}
	respondEmpty(w, http.StatusNoContent)
}

// GET /api/v1/portfolios/{user}/nav
func (s *Server) handleNAV(w http.ResponseWriter, r *http.Request) {
	user := mux.Vars(r)["user"]
	nav, err := s.dir.NAV(user)
	if err != nil {
		respondError(w, http.StatusNotFound, fmt.Sprintf("User %s not found", user))
		return
	}
	respondJSON(w, http.StatusOK, map[string]float64{"nav": nav})
}

// ─── single asset ─────────────────────────────────────────────────────────────

// GET /api/v1/portfolios/{user}/{assetID}
func (s *Server) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	user, id := assetVars(r)
	a, err := s.dir.Asset(user, id)
	switch {
	case errors.Is(err, portfolio.ErrUserNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("User %s not found", user))
		return
	case errors.Is(err, portfolio.ErrAssetNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("Asset with id %d does not exist in this portfolio", id))
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"quantity": a.Quantity,
		"value":    a.NetValue,
	})
}

// PUT /api/v1/portfolios/{user}/{assetID}
func (s *Server) handleUpdateAsset(w http.ResponseWriter, r *http.Request) {
	user, id := assetVars(r)

	var req updateAssetRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "request body is not valid JSON")
		return
	}
	if req.Quantity == nil {
		respondError(w, http.StatusBadRequest, "quantity is required")
		return
	}

	err := s.dir.Apply(user, id, *req.Quantity)
	countOp("update", err)
	switch {
	case errors.Is(err, portfolio.ErrUserNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("User %s not found", user))
		return
	case errors.Is(err, portfolio.ErrAssetNotFound):
		respondError(w, http.StatusNotFound, fmt.Sprintf("Asset with id %d was not found in the portfolio of %s", id, user))
		return
	case errors.Is(err, portfolio.ErrNegativeQuantity):
		respondError(w, http.StatusBadRequest, fmt.Sprintf(
			"Selling %d units of the asset with id %d in the portfolio of %s would result in a negative quantity. The operation was aborted.",
			-*req.Quantity, id, user))
		return
	case errors.Is(err, catalog.ErrUnknownAsset):
		respondError(w, http.StatusBadRequest, fmt.Sprintf("Asset id %d does not exist in database", id))
		return
	}
	s.persist(user)
	respondEmpty(w, http.StatusOK)
}

// DELETE /api/v1/portfolios/{user}/{assetID}
func (s *Server) handleDeleteAsset(w http.ResponseWriter, r *http.Request) {
	user, id := assetVars(r)
	s.dir.RemoveAsset(user, id)
	countOp("remove_asset", nil)
	s.persist(user)
	respondEmpty(w, http.StatusNoContent)
}

// assetVars extracts the path variables for asset routes. The route pattern
// constrains assetID to digits, so the parse cannot fail.
func assetVars(r *http.Request) (user string, id int) {
	vars := mux.Vars(r)
	id, _ = strconv.Atoi(vars["assetID"])
	return vars["user"], id
}
