package wizard

import (
	"context"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"tg_escrow/internal/domain"
	"tg_escrow/internal/domain/entity"
	"tg_escrow/internal/metrics"
	"tg_escrow/pkg/errcodes"
)

type DealStore interface {
	Create(draft entity.DealDraft) (entity.Deal, error)
}

type AccessPolicy interface {
	CanCreate(userID int64) bool
	IsOperator(userID int64) bool
}

type StatsRegistry interface {
	AddCreated(userID int64) int
}

// Auditor получает события для админского лог-канала. Доставка
// best-effort, ошибки внутрь мастера не возвращаются.
type Auditor interface {
	Event(ctx context.Context, userID int64, username, action, extra string)
}

// Result — итог обработки одного пользовательского ввода.
type Result struct {
	// Step — шаг, на котором сессия оказалась после ввода.
	Step entity.WizardStep
	// Session — снимок сессии для отрисовки подсказки следующего шага.
	Session entity.WizardSession
	// Deal заполнен, когда мастер завершился созданием сделки.
	Deal *entity.Deal
}

// Wizard ведёт пользователя по четырём шагам создания сделки. Сессии
// лежат в собственном реестре мастера, по одной на пользователя;
// межпользовательской синхронизации не требуется, поэтому хватает
// одной грубой блокировки на реестр.
type Wizard struct {
	mu       sync.Mutex
	sessions map[int64]*entity.WizardSession

	store   DealStore
	policy  AccessPolicy
	stats   StatsRegistry
	auditor Auditor
}

func New(store DealStore, policy AccessPolicy, stats StatsRegistry, auditor Auditor) *Wizard {
	return &Wizard{
		sessions: make(map[int64]*entity.WizardSession),
		store:    store,
		policy:   policy,
		stats:    stats,
		auditor:  auditor,
	}
}

// Start открывает новую сессию. Уже идущая сессия того же пользователя
// заменяется. Не-оператору, выбравшему квоту, сессия не создаётся.
func (w *Wizard) Start(ctx context.Context, userID int64, username string) (entity.WizardSession, error) {
	if !w.policy.CanCreate(userID) {
		return entity.WizardSession{}, domain.NewError(errcodes.DealLimitReached, "deal creation limit reached")
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if _, exists := w.sessions[userID]; !exists {
		metrics.WizardSessions.Inc()
	}

	session := &entity.WizardSession{
		UserID:   userID,
		Username: username,
		Step:     entity.StepAwaitingItem,
	}
	w.sessions[userID] = session

	return *session, nil
}

// Active сообщает, есть ли у пользователя сессия, и на каком она шаге.
func (w *Wizard) Active(userID int64) (entity.WizardStep, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()

	session, ok := w.sessions[userID]
	if !ok {
		return "", false
	}

	return session.Step, true
}

// Cancel уничтожает сессию. Побочных эффектов, кроме самого удаления, нет.
func (w *Wizard) Cancel(userID int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, ok := w.sessions[userID]; !ok {
		return false
	}

	delete(w.sessions, userID)
	metrics.WizardSessions.Dec()

	return true
}

// Input обрабатывает текстовый ввод на текущем шаге. Невалидный ввод
// возвращает ValidationError, сессия при этом не сдвигается.
func (w *Wizard) Input(ctx context.Context, userID int64, text string) (Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	session, ok := w.sessions[userID]
	if !ok {
		return Result{}, domain.NewError(errcodes.NoActiveSession, "no active wizard session")
	}

	switch session.Step {
	case entity.StepAwaitingItem:
		return w.inputItem(session, text)
	case entity.StepAwaitingPrice:
		return w.inputPrice(session, text)
	case entity.StepAwaitingInstructions:
		return w.commit(ctx, userID, session, text)
	case entity.StepAwaitingCurrency:
		return Result{}, domain.NewError(errcodes.InvalidCurrency, "currency is chosen with buttons, not text")
	default:
		return Result{}, domain.NewError(errcodes.InternalServerError, "unknown wizard step")
	}
}

// Choose обрабатывает выбор валюты. Принимается только на своём шаге.
func (w *Wizard) Choose(ctx context.Context, userID int64, currency entity.Currency) (Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	session, ok := w.sessions[userID]
	if !ok {
		return Result{}, domain.NewError(errcodes.NoActiveSession, "no active wizard session")
	}

	if session.Step != entity.StepAwaitingCurrency {
		return Result{}, domain.NewError(errcodes.ValidationError, "not awaiting a currency choice")
	}

	if currency != entity.CurrencyRub && currency != entity.CurrencyStars {
		return Result{}, domain.NewError(errcodes.InvalidCurrency, "unknown currency")
	}

	session.Currency = currency
	session.Step = entity.StepAwaitingPrice

	return Result{Step: session.Step, Session: *session}, nil
}

func (w *Wizard) inputItem(session *entity.WizardSession, text string) (Result, error) {
	item := strings.TrimSpace(text)

	length := utf8.RuneCountInString(item)
	if length < entity.ItemMinLen || length > entity.ItemMaxLen {
		return Result{}, domain.NewError(errcodes.InvalidDealItem, "item must be 3-100 characters")
	}

	session.Item = item
	session.Step = entity.StepAwaitingCurrency

	return Result{Step: session.Step, Session: *session}, nil
}

func (w *Wizard) inputPrice(session *entity.WizardSession, text string) (Result, error) {
	raw := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)

	price, ok := parsePrice(raw)
	if !ok {
		return Result{}, domain.NewError(errcodes.InvalidDealPrice, "price must be an integer 1-100000")
	}

	session.Price = price
	session.Step = entity.StepAwaitingInstructions

	return Result{Step: session.Step, Session: *session}, nil
}

// parsePrice принимает только строку из десятичных цифр в пределах лимита.
func parsePrice(raw string) (int64, bool) {
	if raw == "" || len(raw) > 6 {
		return 0, false
	}

	var price int64
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, false
		}
		price = price*10 + int64(r-'0')
	}

	if price < entity.PriceMin || price > entity.PriceMax {
		return 0, false
	}

	return price, true
}

func (w *Wizard) commit(ctx context.Context, userID int64, session *entity.WizardSession, text string) (Result, error) {
	requisites := strings.TrimSpace(text)
	if requisites == "" {
		return Result{}, domain.NewError(errcodes.InvalidRequisites, "requisites must not be empty")
	}

	// Формат реквизитов дальше не проверяется: их смысл зависит от
	// валюты и целиком на доверии продавца.
	session.Requisites = requisites

	deal, err := w.store.Create(entity.DealDraft{
		SellerID:       session.UserID,
		SellerUsername: session.Username,
		Item:           session.Item,
		Currency:       session.Currency,
		Price:          session.Price,
		Requisites:     session.Requisites,
	})
	if err != nil {
		// AllocationExhausted фатален только для этой попытки: сессия
		// остаётся на последнем шаге, пользователь может повторить.
		return Result{}, err
	}

	delete(w.sessions, userID)
	metrics.WizardSessions.Dec()

	if !w.policy.IsOperator(userID) {
		w.stats.AddCreated(userID)
	}
	metrics.DealsCreated.Inc()

	w.auditor.Event(ctx, userID, session.Username, "deal created", deal.ID)

	return Result{Deal: &deal, Session: *session}, nil
}
