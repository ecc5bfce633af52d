package ui

// Element ids of the part-1 page (levels 1 and 2). They are the contract
// with the markup layer and must not change.
const (
	MainTitle      ElementID = "main-title"
	LevelIndicator ElementID = "level-indicator"
	ResetButton    ElementID = "reset-btn"
	LangToggle     ElementID = "lang-toggle-btn"

	Level1Scene       ElementID = "level-1-scene"
	L1Title           ElementID = "l1-title"
	L1Desc            ElementID = "l1-desc"
	L1PrincipalLabel  ElementID = "l1-principal-label"
	L1Principal       ElementID = "l1-principal"
	L1InterestLabel   ElementID = "l1-interest-earned-label"
	L1Interest        ElementID = "l1-interest-earned"
	L1GoalLabel       ElementID = "l1-goal-label"
	L1Goal            ElementID = "l1-goal"
	L1RateOptions     ElementID = "l1-rates-options"
	L1AdvanceButton   ElementID = "l1-advance-btn"
	L1TipsTitle       ElementID = "l1_tips_title"
	L1TipPrincipal    ElementID = "l1_tip_principal"
	L1TipRate         ElementID = "l1_tip_rate"
	L1TipCompound     ElementID = "l1_tip_compound"
	L1FormulasTitle   ElementID = "l1_formulas_title"
	L1FormulaInterest ElementID = "l1_formula_interest"
	L1FormulaCompound ElementID = "l1_formula_compound"

	Level2Scene       ElementID = "level-2-scene"
	L2Title           ElementID = "l2-title"
	L2Desc            ElementID = "l2-desc"
	L2CashLabel       ElementID = "l2-cash-label"
	L2Cash            ElementID = "l2-cash"
	L2TotalValueLabel ElementID = "l2-total-value-label"
	L2TotalValue      ElementID = "l2-total-value"
	L2GoalLabel       ElementID = "l2-goal-label"
	L2Goal            ElementID = "l2-goal"
	L2StockInfo       ElementID = "l2-stock-info"
	L2PriceChart      ElementID = "l2-price-chart"
	L2Quantity        ElementID = "l2-quantity"
	L2BuyButton       ElementID = "l2-buy-btn"
	L2SellButton      ElementID = "l2-sell-btn"
	L2NextDayButton   ElementID = "l2-next-day-btn"
	L2AdvanceButton   ElementID = "l2-advance-btn"
)

// GamePage lists the elements of the part-1 page in display order.
var GamePage = []ElementID{
	MainTitle, LevelIndicator, ResetButton, LangToggle,

	Level1Scene, L1Title, L1Desc,
	L1PrincipalLabel, L1Principal,
	L1InterestLabel, L1Interest,
	L1GoalLabel, L1Goal,
	L1RateOptions, L1AdvanceButton,
	L1TipsTitle, L1TipPrincipal, L1TipRate, L1TipCompound,
	L1FormulasTitle, L1FormulaInterest, L1FormulaCompound,

	Level2Scene, L2Title, L2Desc,
	L2CashLabel, L2Cash,
	L2TotalValueLabel, L2TotalValue,
	L2GoalLabel, L2Goal,
	L2StockInfo, L2PriceChart, L2Quantity,
	L2BuyButton, L2SellButton, L2NextDayButton, L2AdvanceButton,
}

// NewGamePage returns the part-1 page with advance controls disabled, the
// state the markup ships in before the first render.
func NewGamePage() *Document {
	d := NewDocument(GamePage...)
	d.elements[L1AdvanceButton].Disabled = true
	d.elements[L2AdvanceButton].Disabled = true
	d.elements[LevelIndicator].Text = "1"
	return d
}
