package server

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/mindmapdigital/projectflow/internal/db"
	"github.com/mindmapdigital/projectflow/internal/domain"
	"github.com/mindmapdigital/projectflow/internal/repository"
)

const webhookSignatureHeader = "X-Razorpay-Signature"

type webhookEvent struct {
	Event   string `json:"event"`
	Payload struct {
		Subscription struct {
			Entity subscriptionEntity `json:"entity"`
		} `json:"subscription"`
		Payment struct {
			Entity paymentEntity `json:"entity"`
		} `json:"payment"`
	} `json:"payload"`
}

// subscriptionEntity carries the fields we read from the provider's
// subscription object. Timestamps are unix seconds.
type subscriptionEntity struct {
	ID         string `json:"id"`
	StartAt    int64  `json:"start_at"`
	EndAt      int64  `json:"end_at"`
	CurrentEnd int64  `json:"current_end"`
}

type paymentEntity struct {
	ID string `json:"id"`
}

// verifyWebhookSignature checks the hex HMAC-SHA256 of the raw body.
func verifyWebhookSignature(body []byte, signature, secret string) bool {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}

func (s *Server) handleBillingWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Unreadable body")
		return
	}

	signature := r.Header.Get(webhookSignatureHeader)
	if signature == "" {
		writeError(w, http.StatusBadRequest, "No signature")
		return
	}
	if !verifyWebhookSignature(body, signature, s.cfg.WebhookSecret) {
		s.log.Warn("invalid webhook signature")
		writeError(w, http.StatusBadRequest, "Invalid signature")
		return
	}

	var event webhookEvent
	if err := json.Unmarshal(body, &event); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid payload")
		return
	}

	log := s.log.WithField("event", event.Event)
	sub := event.Payload.Subscription.Entity

	switch event.Event {
	case "subscription.activated":
		err = s.subscriptionActivated(r.Context(), sub)
	case "subscription.charged":
		err = s.subscriptionCharged(r.Context(), sub)
	case "subscription.cancelled":
		err = s.setSubscriptionStatus(r.Context(), sub.ID, domain.SubscriptionCancelled)
	case "subscription.paused":
		err = s.setSubscriptionStatus(r.Context(), sub.ID, domain.SubscriptionInactive)
	case "subscription.resumed":
		err = s.setSubscriptionStatus(r.Context(), sub.ID, domain.SubscriptionActive)
	default:
		log.Info("unhandled webhook event")
	}

	// Unknown subscriptions are logged, not failed: the provider retries
	// failed deliveries and an out-of-band subscription would retry forever.
	if errors.Is(err, repository.ErrNotFound) {
		log.WithField("subscription_id", sub.ID).Warn("webhook for unknown subscription")
		err = nil
	}
	if err != nil {
		log.WithError(err).Error("webhook processing failed")
		writeError(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"received": true})
}

// subscriptionActivated marks the subscription active with its billing
// window and zeroes the month's generation counter, atomically.
func (s *Server) subscriptionActivated(ctx context.Context, sub subscriptionEntity) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		usage := repository.NewSQLiteUsageRepo(tx)

		user, err := users.GetBySubscriptionID(ctx, sub.ID)
		if err != nil {
			return err
		}
		start := time.Unix(sub.StartAt, 0).UTC()
		end := time.Unix(sub.EndAt, 0).UTC()
		user.SubscriptionStatus = domain.SubscriptionActive
		user.SubscriptionStart = &start
		user.SubscriptionEnd = &end
		user.UpdatedAt = time.Now().UTC()
		if err := users.Update(ctx, user); err != nil {
			return err
		}
		return usage.SetCount(ctx, user.ID, domain.CurrentMonth(time.Now()), 0)
	})
}

// subscriptionCharged starts a new billing period: the usage counter
// resets and the subscription end date advances.
func (s *Server) subscriptionCharged(ctx context.Context, sub subscriptionEntity) error {
	return s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		usage := repository.NewSQLiteUsageRepo(tx)

		user, err := users.GetBySubscriptionID(ctx, sub.ID)
		if err != nil {
			return err
		}
		if err := usage.SetCount(ctx, user.ID, domain.CurrentMonth(time.Now()), 0); err != nil {
			return err
		}
		if sub.CurrentEnd > 0 {
			end := time.Unix(sub.CurrentEnd, 0).UTC()
			user.SubscriptionEnd = &end
		}
		user.UpdatedAt = time.Now().UTC()
		return users.Update(ctx, user)
	})
}

func (s *Server) setSubscriptionStatus(ctx context.Context, subscriptionID string, status domain.SubscriptionStatus) error {
	user, err := s.users.GetBySubscriptionID(ctx, subscriptionID)
	if err != nil {
		return err
	}
	user.SubscriptionStatus = status
	user.UpdatedAt = time.Now().UTC()
	return s.users.Update(ctx, user)
}
