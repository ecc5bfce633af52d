package ui

import (
	"fmt"
	"sort"
	"strings"
)

// Binding ties one page element to the part of the client that writes it.
type Binding struct {
	ID ElementID
	// Scene is the level whose scene owns the element, 0 for page-wide
	// elements. A binding with IsScene set is the scene container itself.
	Scene   int
	IsScene bool
	// Key is the catalog key of the element's label, "" for elements only
	// the renderer writes.
	Key string
	// Arg names an element whose text is passed to the label format.
	Arg ElementID
}

// Label is a translated element resolved from the binding table.
type Label struct {
	Key string
	El  *Element
	Arg *Element
}

// GameBindings is the binding table of the part-1 page.
var GameBindings = []Binding{
	{ID: MainTitle, Key: "page.title", Arg: LevelIndicator},
	{ID: LevelIndicator},
	{ID: ResetButton, Key: "page.reset"},
	{ID: LangToggle, Key: "page.lang_toggle"},

	{ID: Level1Scene, Scene: 1, IsScene: true},
	{ID: L1Title, Scene: 1, Key: "level1.title"},
	{ID: L1Desc, Scene: 1, Key: "level1.desc"},
	{ID: L1PrincipalLabel, Scene: 1, Key: "level1.principal"},
	{ID: L1InterestLabel, Scene: 1, Key: "level1.interest"},
	{ID: L1GoalLabel, Scene: 1, Key: "level1.goal"},
	{ID: L1AdvanceButton, Scene: 1, Key: "level1.advance"},
	{ID: L1TipsTitle, Scene: 1, Key: "level1.tips_title"},
	{ID: L1TipPrincipal, Scene: 1, Key: "level1.tip_principal"},
	{ID: L1TipRate, Scene: 1, Key: "level1.tip_rate"},
	{ID: L1TipCompound, Scene: 1, Key: "level1.tip_compound"},
	{ID: L1FormulasTitle, Scene: 1, Key: "level1.formulas_title"},
	{ID: L1FormulaInterest, Scene: 1, Key: "level1.formula_interest"},
	{ID: L1FormulaCompound, Scene: 1, Key: "level1.formula_compound"},
	{ID: L1Principal, Scene: 1},
	{ID: L1Interest, Scene: 1},
	{ID: L1Goal, Scene: 1},
	{ID: L1RateOptions, Scene: 1},

	{ID: Level2Scene, Scene: 2, IsScene: true},
	{ID: L2Title, Scene: 2, Key: "level2.title"},
	{ID: L2Desc, Scene: 2, Key: "level2.desc"},
	{ID: L2BuyButton, Scene: 2, Key: "level2.buy"},
	{ID: L2SellButton, Scene: 2, Key: "level2.sell"},
	{ID: L2NextDayButton, Scene: 2, Key: "level2.next_day"},
	{ID: L2AdvanceButton, Scene: 2, Key: "level2.advance"},
	{ID: L2CashLabel, Scene: 2, Key: "level2.cash"},
	{ID: L2TotalValueLabel, Scene: 2, Key: "level2.total_value"},
	{ID: L2GoalLabel, Scene: 2, Key: "level2.goal"},
	{ID: L2Cash, Scene: 2},
	{ID: L2TotalValue, Scene: 2},
	{ID: L2Goal, Scene: 2},
	{ID: L2StockInfo, Scene: 2},
	{ID: L2PriceChart, Scene: 2},
	{ID: L2Quantity, Scene: 2},
}

// Bindings is a binding table resolved against one document.
type Bindings struct {
	doc      *Document
	elements map[ElementID]*Element
	scenes   map[int]*Element
	labels   map[int][]Label
	levels   []int
}

// Bind resolves every entry of table against doc. It fails when the
// document lacks any bound element.
func Bind(doc *Document, table []Binding) (*Bindings, error) {
	b := &Bindings{
		doc:      doc,
		elements: make(map[ElementID]*Element, len(table)),
		scenes:   map[int]*Element{},
		labels:   map[int][]Label{},
	}

	var missing []string
	for _, entry := range table {
		el, ok := doc.Lookup(entry.ID)
		if !ok {
			missing = append(missing, string(entry.ID))
			continue
		}
		b.elements[entry.ID] = el
		if entry.IsScene {
			b.scenes[entry.Scene] = el
			b.levels = append(b.levels, entry.Scene)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("bind page: missing elements %s", strings.Join(missing, ", "))
	}

	for _, entry := range table {
		if entry.Key == "" {
			continue
		}
		label := Label{Key: entry.Key, El: b.elements[entry.ID]}
		if entry.Arg != "" {
			arg, ok := b.elements[entry.Arg]
			if !ok {
				return nil, fmt.Errorf("bind page: %s formats unbound element %s", entry.ID, entry.Arg)
			}
			label.Arg = arg
		}
		b.labels[entry.Scene] = append(b.labels[entry.Scene], label)
	}
	sort.Ints(b.levels)
	return b, nil
}

// Document returns the bound document.
func (b *Bindings) Document() *Document { return b.doc }

// Element returns a bound element. Asking for an element outside the table
// is a programming error.
func (b *Bindings) Element(id ElementID) *Element {
	el, ok := b.elements[id]
	if !ok {
		panic(fmt.Sprintf("ui: element %q is not bound", id))
	}
	return el
}

// Scene returns the scene container for a level.
func (b *Bindings) Scene(level int) (*Element, bool) {
	el, ok := b.scenes[level]
	return el, ok
}

// Levels returns the levels that have a scene on this page, ascending.
func (b *Bindings) Levels() []int {
	out := make([]int, len(b.levels))
	copy(out, b.levels)
	return out
}

// Labels returns the translated elements owned by a scene; scene 0 holds
// the page-wide labels.
func (b *Bindings) Labels(scene int) []Label {
	return b.labels[scene]
}

// ActiveLevel returns the level of the active scene, 0 when none is active.
// Callers must hold the document lock.
func (b *Bindings) ActiveLevel() int {
	for _, level := range b.levels {
		if b.scenes[level].Active {
			return level
		}
	}
	return 0
}
