package i18n

import (
	"sync"

	"go.uber.org/zap"
	"golang.org/x/text/message"

	"LegacyGuardians/internal/model"
	"LegacyGuardians/internal/ui"
)

// Localizer owns the active locale of one client and writes labels into
// the bound page.
type Localizer struct {
	cat  *Catalog
	bind *ui.Bindings
	log  *zap.Logger

	mu      sync.RWMutex
	locale  model.Locale
	printer *message.Printer
}

// NewLocalizer creates a localizer starting in locale.
func NewLocalizer(cat *Catalog, bind *ui.Bindings, locale model.Locale, log *zap.Logger) *Localizer {
	return &Localizer{
		cat:     cat,
		bind:    bind,
		log:     log,
		locale:  locale,
		printer: cat.Printer(locale),
	}
}

// Locale returns the active locale.
func (l *Localizer) Locale() model.Locale {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.locale
}

// T formats the message key in the active locale.
func (l *Localizer) T(key string, args ...any) string {
	l.mu.RLock()
	p := l.printer
	l.mu.RUnlock()
	return p.Sprintf(key, args...)
}

// Seed writes the labels of every scene in the active locale. It stands
// in for the static text the page markup ships with and runs once, before
// the first render.
func (l *Localizer) Seed() {
	l.mu.RLock()
	p := l.printer
	l.mu.RUnlock()

	l.bind.Document().Update(func() {
		apply(p, l.bind.Labels(0))
		for _, level := range l.bind.Levels() {
			apply(p, l.bind.Labels(level))
		}
	})
}

// Switch flips the locale when toggle is set, then relabels the page-wide
// elements and the active scene.
//
// Scenes that are not active keep whatever labels they had, so a scene
// activated later shows the previous language until the next Switch.
func (l *Localizer) Switch(toggle bool) {
	l.mu.Lock()
	if toggle {
		l.locale = l.locale.Toggle()
		l.printer = l.cat.Printer(l.locale)
	}
	p, locale := l.printer, l.locale
	l.mu.Unlock()

	var active int
	l.bind.Document().Update(func() {
		apply(p, l.bind.Labels(0))
		active = l.bind.ActiveLevel()
		if active != 0 {
			apply(p, l.bind.Labels(active))
		}
	})
	l.log.Debug("labels applied", zap.String("locale", string(locale)), zap.Int("scene", active))
}

func apply(p *message.Printer, labels []ui.Label) {
	for _, label := range labels {
		if label.Arg != nil {
			label.El.Text = p.Sprintf(label.Key, label.Arg.Text)
			continue
		}
		label.El.Text = p.Sprintf(label.Key)
	}
}
