package entity

// WizardStep — шаг мастера создания сделки.
type WizardStep string

const (
	StepAwaitingItem         WizardStep = "AWAITING_ITEM"
	StepAwaitingCurrency     WizardStep = "AWAITING_CURRENCY"
	StepAwaitingPrice        WizardStep = "AWAITING_PRICE"
	StepAwaitingInstructions WizardStep = "AWAITING_INSTRUCTIONS"
)

func (s WizardStep) String() string {
	return string(s)
}

// WizardSession — незавершённый черновик сделки одного пользователя.
// На пользователя существует не больше одной сессии; повторный запуск
// мастера заменяет старую.
type WizardSession struct {
	UserID   int64
	Username string
	Step     WizardStep

	Item       string
	Currency   Currency
	Price      int64
	Requisites string
}
