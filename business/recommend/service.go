package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"pickwise/domain"
	"pickwise/pkg/logger"

	"github.com/google/uuid"
)

// ---- Repository interfaces ----

type ConversationRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (domain.Conversation, error)
	AppendMessages(ctx context.Context, id uuid.UUID, messages []domain.Message) error
}

type PreferenceRepository interface {
	FindByUserID(ctx context.Context, userID uint) (domain.UserPreference, error)
	AppendMemory(ctx context.Context, userID uint, entry domain.MemoryEntry) error
}

// ReasoningService is the external model that extracts intent, builds
// filters, and writes the final reply. Every method is best-effort: a
// malformed response comes back as an error and callers substitute safe
// defaults.
type ReasoningService interface {
	DeriveIntent(ctx context.Context, history, memory, query string) (domain.Intent, error)
	DeriveFilter(ctx context.Context, history, query string, intent domain.Intent) (domain.LaptopFilter, error)
	GenerateReply(ctx context.Context, history, memory, query string, intent domain.Intent, candidates []domain.RankedCandidate) (string, error)
}

// User-visible terminal messages. The fallback answer is the single
// message shown for any internal failure; callers can never tell failure
// causes apart from the response alone.
const (
	fallbackAnswer  = "Aiya boss, system jam lah. Try again in a bit, can?"
	noResultsAnswer = "Boss, really no stock for that lah. Widen the budget a bit, can?"
)

const persistTimeout = 5 * time.Second

// ---- Usecase / Service ----

type Service struct {
	convRepo ConversationRepository
	prefRepo PreferenceRepository
	reasoner ReasoningService
	merger   *Merger
	scorer   *ScoreEngine
	cfg      Config
}

func NewService(
	convRepo ConversationRepository,
	prefRepo PreferenceRepository,
	reasoner ReasoningService,
	merger *Merger,
	scorer *ScoreEngine,
	cfg Config,
) *Service {
	return &Service{
		convRepo: convRepo,
		prefRepo: prefRepo,
		reasoner: reasoner,
		merger:   merger,
		scorer:   scorer,
		cfg:      cfg,
	}
}

// Chat runs one recommendation exchange. It never surfaces internal
// errors: anything unrecoverable becomes the uniform fallback answer,
// with the detail in the logs.
func (s *Service) Chat(ctx context.Context, userID uint, conversationID uuid.UUID, query string) (reply domain.ChatReply) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("chat pipeline panic", "panic", fmt.Sprintf("%v", r), "user_id", userID)
			reply = domain.ChatReply{Answer: fallbackAnswer}
		}
	}()

	reply, err := s.chat(ctx, userID, conversationID, query)
	if err != nil {
		logger.Error("chat pipeline failed", "error", err, "user_id", userID)
		return domain.ChatReply{Answer: fallbackAnswer}
	}

	return reply
}

func (s *Service) chat(ctx context.Context, userID uint, conversationID uuid.UUID, query string) (domain.ChatReply, error) {
	if err := ctx.Err(); err != nil {
		return domain.ChatReply{}, fmt.Errorf("context error: %w", err)
	}

	// 1) short-term history and long-term preferences in parallel;
	// absence of either is non-fatal
	history, pref := s.loadContext(ctx, userID, conversationID)
	historyStr := formatHistory(history)
	memoryStr := formatMemory(pref.LongTermMemory, s.cfg.MemoryWindow)

	// 2) intent and filter derivation in parallel
	intent, filter := s.deriveIntent(ctx, historyStr, memoryStr, query)
	applyIntentFallbacks(query, &intent, s.cfg.IntentRules)

	// 3) clarification short-circuits the rest of the pipeline
	if intent.ClarificationRequired {
		answer, err := s.reasoner.GenerateReply(ctx, historyStr, memoryStr, query, intent, nil)
		if err != nil || strings.TrimSpace(answer) == "" {
			logger.Warn("clarification reply generation failed", "error", err)
			answer = intent.Clarification
		}
		if strings.TrimSpace(answer) == "" {
			answer = "Boss, what budget and what you using it for?"
		}
		return domain.ChatReply{Answer: answer}, nil
	}

	// 4) hybrid retrieval
	candidates, err := s.merger.Retrieve(ctx, query, filter, intent)
	if err != nil {
		return domain.ChatReply{}, err
	}
	if len(candidates) == 0 {
		// terminal user-visible outcome, not an error
		return domain.ChatReply{Answer: noResultsAnswer}, nil
	}

	// 5) score all candidates concurrently, rank, take top-N
	top, err := s.scoreAndRank(ctx, candidates, pref)
	if err != nil {
		return domain.ChatReply{}, err
	}

	// 6) final reply; a reasoning failure degrades to the plain summary
	answer, err := s.reasoner.GenerateReply(ctx, historyStr, memoryStr, query, intent, top)
	if err != nil || strings.TrimSpace(answer) == "" {
		logger.Warn("reply generation failed, using summary", "error", err)
		answer = formatSummary(top)
	} else if !strings.Contains(answer, "Pick Score") {
		answer = answer + "\n\n" + formatSummary(top)
	}

	// 7) fire-and-forget persistence, decoupled from the response path
	s.persistExchange(ctx, userID, conversationID, query, answer, intent)

	return domain.ChatReply{Answer: answer, Candidates: top}, nil
}

func (s *Service) loadContext(ctx context.Context, userID uint, conversationID uuid.UUID) ([]domain.Message, domain.UserPreference) {
	var (
		wg      sync.WaitGroup
		history []domain.Message
		pref    domain.UserPreference
	)

	if conversationID != uuid.Nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			conv, err := s.convRepo.FindByID(ctx, conversationID)
			if err != nil {
				logger.Warn("conversation history unavailable", "error", err, "conversation_id", conversationID)
				return
			}
			history = conv.Messages
		}()
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		p, err := s.prefRepo.FindByUserID(ctx, userID)
		if err != nil {
			logger.Warn("user preferences unavailable", "error", err, "user_id", userID)
			return
		}
		pref = p
	}()

	wg.Wait()
	return history, pref
}

func (s *Service) deriveIntent(ctx context.Context, historyStr, memoryStr, query string) (domain.Intent, domain.LaptopFilter) {
	var (
		wg     sync.WaitGroup
		intent domain.Intent
		filter domain.LaptopFilter
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		i, err := s.reasoner.DeriveIntent(ctx, historyStr, memoryStr, query)
		if err != nil {
			logger.Warn("intent derivation failed, using empty intent", "error", err)
			return
		}
		intent = i
	}()
	go func() {
		defer wg.Done()
		f, err := s.reasoner.DeriveFilter(ctx, historyStr, query, domain.Intent{})
		if err != nil {
			logger.Warn("filter derivation failed, using empty filter", "error", err)
			return
		}
		filter = f
	}()

	wg.Wait()
	return intent, filter
}

func (s *Service) scoreAndRank(ctx context.Context, candidates []domain.RankedCandidate, pref domain.UserPreference) ([]domain.RankedCandidate, error) {
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)

	scored := make([]domain.RankedCandidate, len(candidates))
	for i, c := range candidates {
		wg.Add(1)
		go func() {
			defer wg.Done()
			score, err := s.scorer.Score(ctx, c.Laptop, pref.PriorityFactors, pref.PreferredBrands)
			if err != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				mu.Unlock()
				return
			}
			c.PickScore = score
			scored[i] = c
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, fmt.Errorf("score candidates: %w", firstErr)
	}

	// stable sort keeps the original retrieval order for ties
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].PickScore > scored[j].PickScore
	})

	topN := s.cfg.TopN
	if topN <= 0 {
		topN = defaultTopN
	}
	if len(scored) > topN {
		scored = scored[:topN]
	}

	return scored, nil
}

// persistExchange writes the exchange to conversation history and a
// compact summary to long-term memory as detached background work.
// Failures are logged, never blocking the response.
func (s *Service) persistExchange(ctx context.Context, userID uint, conversationID uuid.UUID, query, answer string, intent domain.Intent) {
	bgCtx := context.WithoutCancel(ctx)

	if conversationID != uuid.Nil {
		go func() {
			pctx, cancel := context.WithTimeout(bgCtx, persistTimeout)
			defer cancel()

			now := time.Now()
			messages := []domain.Message{
				{Role: domain.RoleUser, Content: query, Timestamp: now},
				{Role: domain.RoleAssistant, Content: answer, Timestamp: now},
			}
			if err := s.convRepo.AppendMessages(pctx, conversationID, messages); err != nil {
				logger.Warn("failed to persist conversation messages", "error", err, "conversation_id", conversationID)
			}
		}()
	}

	go func() {
		pctx, cancel := context.WithTimeout(bgCtx, persistTimeout)
		defer cancel()

		entry := domain.MemoryEntry{
			Date:     time.Now(),
			Summary:  memorySummary(intent),
			RawQuery: query,
		}
		if err := s.prefRepo.AppendMemory(pctx, userID, entry); err != nil {
			logger.Warn("failed to persist long-term memory", "error", err, "user_id", userID)
		}
	}()
}

// ---- formatting helpers ----

func formatHistory(messages []domain.Message) string {
	if len(messages) == 0 {
		return ""
	}

	var b strings.Builder
	for _, m := range messages {
		role := "User"
		if m.Role == domain.RoleAssistant {
			role = "Assistant"
		}
		b.WriteString(role)
		b.WriteString(": ")
		b.WriteString(m.Content)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func formatMemory(entries []domain.MemoryEntry, window int) string {
	if len(entries) == 0 {
		return "No past visits"
	}
	if window > 0 && len(entries) > window {
		entries = entries[len(entries)-window:]
	}

	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s: %s", e.Date.Format("2006-01-02"), e.Summary))
	}
	return strings.Join(lines, "\n")
}

func formatSummary(candidates []domain.RankedCandidate) string {
	lines := make([]string, 0, len(candidates))
	for _, c := range candidates {
		l := c.Laptop
		lines = append(lines, fmt.Sprintf(
			"- %s %s - RM %.0f\n  %s | %s | %d GB | %.1f\" %s\n  Pick Score: %d/100",
			l.Brand, l.ProductName, l.PriceRM,
			l.ProcessorName, l.GPUModel, l.RAMGB, l.DisplaySizeInch, l.DisplayResolution,
			c.PickScore,
		))
	}
	return strings.Join(lines, "\n\n")
}

func memorySummary(intent domain.Intent) string {
	purpose := intent.Purpose
	if purpose == "" {
		purpose = "general"
	}

	budgetMin := "?"
	if intent.BudgetMin != nil {
		budgetMin = fmt.Sprintf("%.0f", *intent.BudgetMin)
	}
	budgetMax := "?"
	if intent.BudgetMax != nil {
		budgetMax = fmt.Sprintf("%.0f", *intent.BudgetMax)
	}

	return fmt.Sprintf("%s laptop, budget %s-%s RM", purpose, budgetMin, budgetMax)
}
