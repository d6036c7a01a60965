// Copyright (c) 2025 Hanna Lind.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/hannalind/quizroom/auth"
	"github.com/hannalind/quizroom/cliparse"
	"github.com/hannalind/quizroom/middleware"
	"github.com/hannalind/quizroom/models"
)

type BillingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewBillingHandler(db *sql.DB, cfg cliparse.Config) *BillingHandler {
	return &BillingHandler{db: db, cfg: cfg}
}

// CreatePlan handles POST /plans
func (h *BillingHandler) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePlanRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.Price < 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "price must not be negative")
		return
	}

	var planID int64
	err := h.db.QueryRow(`
		INSERT INTO subscription_plan (name, price, description)
		VALUES ($1, $2, $3)
		RETURNING plan_id
	`, req.Name, req.Price, req.Description).Scan(&planID)

	if err != nil {
		slog.Error("failed to insert plan", "error", err, "name", req.Name)
		writeDBError(w, err, "Failed to create plan")
		return
	}

	slog.Info("plan created", "plan_id", planID, "name", req.Name)
	middleware.JSONResponse(w, http.StatusCreated, models.SubscriptionPlan{
		PlanID:      planID,
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
	})
}

// ListPlans handles GET /plans
func (h *BillingHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT plan_id, name, price, description FROM subscription_plan ORDER BY plan_id`)
	if err != nil {
		slog.Error("failed to query plans", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	plans := []models.SubscriptionPlan{}
	for rows.Next() {
		var p models.SubscriptionPlan
		if err := rows.Scan(&p.PlanID, &p.Name, &p.Price, &p.Description); err != nil {
			slog.Error("failed to scan plan", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		plans = append(plans, p)
	}

	middleware.JSONResponse(w, http.StatusOK, plans)
}

// CreateFeature handles POST /features
func (h *BillingHandler) CreateFeature(w http.ResponseWriter, r *http.Request) {
	var req models.CreateFeatureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}

	var featureID int64
	err := h.db.QueryRow(`
		INSERT INTO features (name, description)
		VALUES ($1, $2)
		RETURNING feature_id
	`, req.Name, req.Description).Scan(&featureID)

	if err != nil {
		slog.Error("failed to insert feature", "error", err, "name", req.Name)
		writeDBError(w, err, "Failed to create feature")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.Feature{
		FeatureID:   featureID,
		Name:        req.Name,
		Description: req.Description,
	})
}

// ListFeatures handles GET /features
func (h *BillingHandler) ListFeatures(w http.ResponseWriter, r *http.Request) {
	rows, err := h.db.Query(`SELECT feature_id, name, description FROM features ORDER BY feature_id`)
	if err != nil {
		slog.Error("failed to query features", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	features := []models.Feature{}
	for rows.Next() {
		var f models.Feature
		if err := rows.Scan(&f.FeatureID, &f.Name, &f.Description); err != nil {
			slog.Error("failed to scan feature", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		features = append(features, f)
	}

	middleware.JSONResponse(w, http.StatusOK, features)
}

// SetPlanFeature handles POST /plans/{id}/features. subscription_features is
// a sparse override table: only plans that customize a feature get a row.
func (h *BillingHandler) SetPlanFeature(w http.ResponseWriter, r *http.Request) {
	planID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.SetPlanFeatureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Value == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value is required")
		return
	}

	_, err := h.db.Exec(`
		INSERT INTO subscription_features (plan_id, feature_id, value)
		VALUES ($1, $2, $3)
		ON CONFLICT (plan_id, feature_id) DO UPDATE SET value = EXCLUDED.value
	`, planID, req.FeatureID, req.Value)

	if err != nil {
		slog.Error("failed to set plan feature", "error", err, "plan_id", planID, "feature_id", req.FeatureID)
		writeDBError(w, err, "Failed to set plan feature")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.PlanFeature{
		PlanID:    planID,
		FeatureID: req.FeatureID,
		Value:     req.Value,
	})
}

// CreateSubscription handles POST /subscriptions.
//
// users.current_subscription_id and subscription.user_id form a cycle, so
// construction is a two-phase write: insert the subscription referencing the
// existing user, then back-patch the user's current_subscription_id. Both
// phases run in one transaction so no inconsistent intermediate state is
// ever visible.
func (h *BillingHandler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSubscriptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	now := time.Now()
	var subscriptionID int64
	err = tx.QueryRow(`
		INSERT INTO subscription (user_id, plan_id, status, started_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING subscription_id
	`, req.UserID, req.PlanID, models.SubStatusActive, now, req.ExpiresAt).Scan(&subscriptionID)

	if err != nil {
		slog.Error("failed to insert subscription", "error", err, "user_id", req.UserID)
		writeDBError(w, err, "Failed to create subscription")
		return
	}

	res, err := tx.Exec(`
		UPDATE users SET current_subscription_id = $1 WHERE user_id = $2
	`, subscriptionID, req.UserID)
	if err != nil {
		slog.Error("failed to back-patch current subscription", "error", err, "user_id", req.UserID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create subscription")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create subscription")
		return
	}

	slog.Info("subscription created", "subscription_id", subscriptionID, "user_id", req.UserID, "plan_id", req.PlanID)

	middleware.JSONResponse(w, http.StatusCreated, models.Subscription{
		SubscriptionID: subscriptionID,
		UserID:         req.UserID,
		PlanID:         req.PlanID,
		Status:         models.SubStatusActive,
		StartedAt:      now,
		ExpiresAt:      req.ExpiresAt,
	})
}

// ListUserSubscriptions handles GET /users/{id}/subscriptions
func (h *BillingHandler) ListUserSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	rows, err := h.db.Query(`
		SELECT subscription_id, user_id, plan_id, status, started_at, expires_at
		FROM subscription
		WHERE user_id = $1
		ORDER BY subscription_id DESC
	`, userID)
	if err != nil {
		slog.Error("failed to query subscriptions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer rows.Close()

	subs := []models.Subscription{}
	for rows.Next() {
		var s models.Subscription
		if err := rows.Scan(&s.SubscriptionID, &s.UserID, &s.PlanID, &s.Status, &s.StartedAt, &s.ExpiresAt); err != nil {
			slog.Error("failed to scan subscription", "error", err)
			middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
			return
		}
		subs = append(subs, s)
	}

	middleware.JSONResponse(w, http.StatusOK, subs)
}

// PatchSubscription handles PATCH /subscriptions/{id}. Status transitions
// are external updates; the check constraint guards the value set.
func (h *BillingHandler) PatchSubscription(w http.ResponseWriter, r *http.Request) {
	subscriptionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.PatchSubscriptionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	switch req.Status {
	case models.SubStatusActive, models.SubStatusCancelled, models.SubStatusExpired:
	default:
		middleware.ErrorResponse(w, http.StatusBadRequest, "status must be active, cancelled or expired")
		return
	}

	res, err := h.db.Exec(`
		UPDATE subscription SET status = $1 WHERE subscription_id = $2
	`, req.Status, subscriptionID)
	if err != nil {
		slog.Error("failed to update subscription", "error", err, "subscription_id", subscriptionID)
		writeDBError(w, err, "Failed to update subscription")
		return
	}
	if n, _ := res.RowsAffected(); n == 0 {
		middleware.ErrorResponse(w, http.StatusNotFound, "Subscription not found")
		return
	}

	slog.Info("subscription status changed", "subscription_id", subscriptionID, "status", req.Status)
	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Subscription updated"})
}

// CreatePayment handles POST /subscriptions/{id}/payments
func (h *BillingHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	subscriptionID, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	var req models.CreatePaymentRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.Amount <= 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "amount must be positive")
		return
	}

	now := time.Now()
	transactionRef := auth.NewStorageKey()

	var paymentID int64
	err := h.db.QueryRow(`
		INSERT INTO payment (subscription_id, amount, transaction_ref, paid_at)
		VALUES ($1, $2, $3, $4)
		RETURNING payment_id
	`, subscriptionID, req.Amount, transactionRef, now).Scan(&paymentID)

	if err != nil {
		slog.Error("failed to insert payment", "error", err, "subscription_id", subscriptionID)
		writeDBError(w, err, "Failed to create payment")
		return
	}

	slog.Info("payment recorded", "payment_id", paymentID, "subscription_id", subscriptionID)

	middleware.JSONResponse(w, http.StatusCreated, models.Payment{
		PaymentID:      paymentID,
		SubscriptionID: subscriptionID,
		Amount:         req.Amount,
		TransactionRef: transactionRef,
		PaidAt:         now,
	})
}
