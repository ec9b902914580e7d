// Package intelligence turns free-form project descriptions into structured
// chart data by prompting a chat-completion API and normalizing whatever
// JSON shape comes back. It also enforces per-plan monthly generation
// credits before any API call is made.
package intelligence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mindmapdigital/projectflow/internal/domain"
	"github.com/mindmapdigital/projectflow/internal/importer"
	"github.com/mindmapdigital/projectflow/internal/llm"
	"github.com/mindmapdigital/projectflow/internal/repository"
	"github.com/sirupsen/logrus"
)

// ErrSubscriptionRequired is returned when the user has no active or
// trialing subscription and is not whitelisted.
var ErrSubscriptionRequired = errors.New("active subscription required")

// whitelistRemaining is the remaining-credit figure reported for
// whitelisted accounts, which are never metered.
const whitelistRemaining = 999

// LimitReachedError is returned when the monthly generation credit for the
// user's plan is exhausted.
type LimitReachedError struct {
	Limit int
}

func (e *LimitReachedError) Error() string {
	return fmt.Sprintf("generation limit reached (%d/%d)", e.Limit, e.Limit)
}

// Limits configures per-plan monthly generation credits and the accounts
// exempt from metering.
type Limits struct {
	// PlanCredits maps a lowercase plan name to its monthly credit count.
	PlanCredits map[string]int
	// DefaultCredits applies when the plan is unknown or empty.
	DefaultCredits int
	// Whitelist holds external user ids and email addresses with
	// unmetered access.
	Whitelist []string
}

// DefaultLimits mirrors the hosted pricing tiers.
func DefaultLimits() Limits {
	return Limits{
		PlanCredits:    map[string]int{"basic": 5, "pro": 12},
		DefaultCredits: 5,
	}
}

// CreditsFor returns the monthly credit count for a plan name.
func (l Limits) CreditsFor(plan string) int {
	if credits, ok := l.PlanCredits[strings.ToLower(plan)]; ok {
		return credits
	}
	return l.DefaultCredits
}

// IsWhitelisted reports whether the external id or email is exempt.
func (l Limits) IsWhitelisted(externalID, email string) bool {
	for _, entry := range l.Whitelist {
		if entry == externalID || (email != "" && entry == email) {
			return true
		}
	}
	return false
}

// GenerateResult is the outcome of one metered generation: the normalized
// chart data plus how many credits the user has left this month.
type GenerateResult struct {
	Gantt     *importer.GanttResult
	RACI      *importer.RACIResult
	Raw       json.RawMessage
	Remaining int
}

// UsageReport summarizes a user's generation quota for the current month.
type UsageReport struct {
	Used            int  `json:"used"`
	Remaining       int  `json:"remaining"`
	Limit           int  `json:"limit"`
	IsWhitelisted   bool `json:"isWhitelisted"`
	HasSubscription bool `json:"hasSubscription"`
}

// GenerationService meters and executes text-to-chart generations.
type GenerationService struct {
	users      repository.UserRepo
	usage      repository.UsageRepo
	client     llm.Client
	normalizer *importer.Normalizer
	limits     Limits
	now        func() time.Time
	newID      func() string
	log        logrus.FieldLogger
}

// GenerationOption customizes a GenerationService.
type GenerationOption func(*GenerationService)

// WithClock overrides the time source. Tests use this to pin the month.
func WithClock(now func() time.Time) GenerationOption {
	return func(s *GenerationService) {
		s.now = now
	}
}

// WithLogger overrides the default logger.
func WithLogger(log logrus.FieldLogger) GenerationOption {
	return func(s *GenerationService) {
		s.log = log
	}
}

// NewGenerationService wires a metered generation pipeline.
func NewGenerationService(
	users repository.UserRepo,
	usage repository.UsageRepo,
	client llm.Client,
	normalizer *importer.Normalizer,
	limits Limits,
	opts ...GenerationOption,
) *GenerationService {
	s := &GenerationService{
		users:      users,
		usage:      usage,
		client:     client,
		normalizer: normalizer,
		limits:     limits,
		now:        time.Now,
		newID:      uuid.NewString,
		log:        logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate runs one text-to-chart generation for the identified user,
// checking and then consuming a monthly credit unless the user is
// whitelisted.
//
// The credit consumption is a read-then-write pair, not an atomic
// increment. Two overlapping requests from the same user can both pass the
// limit check and record the same count. That slack is accepted: the limit
// guards cost, not correctness.
func (s *GenerationService) Generate(ctx context.Context, externalID, email, textInput string, genType llm.GenerationType) (*GenerateResult, error) {
	user, err := s.findOrCreateUser(ctx, externalID, email)
	if err != nil {
		return nil, err
	}

	whitelisted := s.limits.IsWhitelisted(externalID, email)
	limit := s.limits.CreditsFor(user.SubscriptionPlan)
	month := domain.CurrentMonth(s.now())

	if !whitelisted {
		if !user.CanGenerate() {
			return nil, ErrSubscriptionRequired
		}
		used, err := s.usage.GetCount(ctx, user.ID, month)
		if err != nil {
			return nil, fmt.Errorf("checking usage: %w", err)
		}
		if used >= limit {
			return nil, &LimitReachedError{Limit: limit}
		}
	}

	result, err := s.generate(ctx, textInput, genType)
	if err != nil {
		return nil, err
	}

	if whitelisted {
		result.Remaining = whitelistRemaining
		return result, nil
	}

	used, err := s.usage.GetCount(ctx, user.ID, month)
	if err != nil {
		return nil, fmt.Errorf("re-reading usage: %w", err)
	}
	if err := s.usage.SetCount(ctx, user.ID, month, used+1); err != nil {
		return nil, fmt.Errorf("recording usage: %w", err)
	}
	result.Remaining = limit - used - 1
	return result, nil
}

// Usage reports the current month's quota state without consuming credit.
func (s *GenerationService) Usage(ctx context.Context, externalID, email string) (*UsageReport, error) {
	if s.limits.IsWhitelisted(externalID, email) {
		return &UsageReport{
			Remaining:       whitelistRemaining,
			Limit:           whitelistRemaining,
			IsWhitelisted:   true,
			HasSubscription: true,
		}, nil
	}

	user, err := s.users.GetByExternalID(ctx, externalID)
	if errors.Is(err, repository.ErrNotFound) {
		return &UsageReport{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	limit := s.limits.CreditsFor(user.SubscriptionPlan)
	used, err := s.usage.GetCount(ctx, user.ID, domain.CurrentMonth(s.now()))
	if err != nil {
		return nil, fmt.Errorf("checking usage: %w", err)
	}

	remaining := limit - used
	if remaining < 0 {
		remaining = 0
	}
	return &UsageReport{
		Used:            used,
		Remaining:       remaining,
		Limit:           limit,
		HasSubscription: user.CanGenerate(),
	}, nil
}

func (s *GenerationService) generate(ctx context.Context, textInput string, genType llm.GenerationType) (*GenerateResult, error) {
	systemPrompt := ganttSystemPrompt
	if genType == llm.TypeRACI {
		systemPrompt = raciSystemPrompt
	}

	resp, err := s.client.Generate(ctx, llm.GenerateRequest{
		Type:         genType,
		SystemPrompt: systemPrompt,
		UserPrompt:   textInput,
	})
	if err != nil {
		return nil, fmt.Errorf("chart generation failed: %w", err)
	}

	raw, err := llm.ExtractJSON(resp.Text)
	if err != nil {
		return nil, err
	}

	result := &GenerateResult{Raw: raw}
	switch genType {
	case llm.TypeRACI:
		result.RACI, err = s.normalizer.ImportRACI(raw)
	default:
		result.Gantt, err = s.normalizer.ImportGantt(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("normalizing generated chart: %w", err)
	}
	return result, nil
}

// findOrCreateUser mirrors the first-login path: a user record appears the
// first time an authenticated identity touches a metered endpoint.
func (s *GenerationService) findOrCreateUser(ctx context.Context, externalID, email string) (*domain.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("loading user: %w", err)
	}

	if email == "" {
		email = externalID + "@user.com"
	}
	now := s.now().UTC()
	user = &domain.User{
		ID:                 s.newID(),
		ExternalID:         externalID,
		Email:              email,
		SubscriptionStatus: domain.SubscriptionActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}
	s.log.WithField("external_id", externalID).Info("created user record on first generation")
	return user, nil
}
