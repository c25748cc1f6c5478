package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"telegram-smm-storefront/internal/domain"
	"telegram-smm-storefront/internal/domain/model"
	"telegram-smm-storefront/internal/domain/ports/adapter"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if !s.auth.CheckCredentials(req.Username, req.Password) {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}
	token, err := s.auth.Mint(w)
	if err != nil {
		http.Error(w, "Failed to mint token", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleLogout(w http.ResponseWriter, _ *http.Request) {
	s.auth.Clear(w)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := s.userUC.Count(ctx)
	if err != nil {
		http.Error(w, "Failed to count users", http.StatusInternalServerError)
		return
	}
	orders, err := s.orderUC.ListRecent(ctx, 100)
	if err != nil {
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}

	byStatus := map[string]int{}
	var revenue float64
	for _, o := range orders {
		byStatus[string(o.Status)]++
		if o.Status != model.OrderStatusRejected {
			revenue += o.Amount
		}
	}

	response := struct {
		TotalUsers     int            `json:"total_users"`
		RecentOrders   int            `json:"recent_orders"`
		OrdersByStatus map[string]int `json:"orders_by_status"`
		RecentRevenue  float64        `json:"recent_revenue"`
	}{
		TotalUsers:     users,
		RecentOrders:   len(orders),
		OrdersByStatus: byStatus,
		RecentRevenue:  revenue,
	}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleOrdersList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 50
	}

	orders, err := s.orderUC.ListRecent(ctx, limit)
	if err != nil {
		http.Error(w, "Failed to list orders", http.StatusInternalServerError)
		return
	}

	response := struct {
		Data  []*model.Order `json:"data"`
		Limit int            `json:"limit"`
	}{Data: orders, Limit: limit}
	writeJSON(w, http.StatusOK, response)
}

func (s *Server) handleOrderGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	order, err := s.orderUC.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrOrderNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to get order", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, order)
}

type orderPatchRequest struct {
	Status string `json:"status"`
}

var validStatuses = map[model.OrderStatus]struct{}{
	model.OrderStatusPending:    {},
	model.OrderStatusProcessing: {},
	model.OrderStatusCompleted:  {},
	model.OrderStatusRejected:   {},
}

func (s *Server) handleOrderPatch(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req orderPatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	status := model.OrderStatus(req.Status)
	if _, ok := validStatuses[status]; !ok {
		http.Error(w, "Unknown status", http.StatusBadRequest)
		return
	}

	if err := s.orderUC.UpdateStatus(r.Context(), id, status); err != nil {
		if errors.Is(err, domain.ErrOrderNotFound) || errors.Is(err, domain.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to update order", http.StatusInternalServerError)
		return
	}

	// Best-effort push to the chat. The status change already committed.
	if s.notify != nil && s.presenter != nil {
		if order, err := s.orderUC.Get(r.Context(), id); err == nil {
			params := adapter.SendMessageParams{
				ChatID: order.TelegramID,
				Text:   s.presenter.OrderStatusUpdate(order.ID, status),
			}
			if err := s.notify.SendMessage(r.Context(), params); err != nil {
				s.log.Warn().Err(err).Str("order_id", id).Msg("status notification failed")
			}
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handlePackagesList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		pkgs []*model.ServicePackage
		err  error
	)
	if platform := r.URL.Query().Get("platform"); platform != "" {
		pkgs, err = s.catalogUC.ListByPlatform(ctx, platform)
	} else {
		pkgs, err = s.catalogUC.ListActive(ctx)
	}
	if err != nil {
		http.Error(w, "Failed to list packages", http.StatusInternalServerError)
		return
	}

	response := struct {
		Data []*model.ServicePackage `json:"data"`
	}{Data: pkgs}
	writeJSON(w, http.StatusOK, response)
}

type packageCreateRequest struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ServiceID string `json:"service_id"`
	Platform  string `json:"platform"`
	Rate      string `json:"rate"`
}

func (s *Server) handlePackageCreate(w http.ResponseWriter, r *http.Request) {
	var req packageCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	id := req.ID
	if id == "" {
		id = uuid.NewString()
	}
	pkg, err := model.NewServicePackage(id, req.Name, req.ServiceID, req.Platform, req.Rate)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := s.catalogUC.Save(r.Context(), pkg); err != nil {
		http.Error(w, "Failed to save package", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusCreated, pkg)
}

func (s *Server) handlePackageDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.catalogUC.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrPackageNotFound) {
			http.NotFound(w, r)
			return
		}
		http.Error(w, "Failed to delete package", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
