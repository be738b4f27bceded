package calendar

import (
	"fmt"
	"sync"
	"time"

	"github.com/mitchellh/hashstructure/v2"
	"go.uber.org/zap"

	"github.com/username/daypicker/internal/locale"
	"github.com/username/daypicker/internal/modifier"
	"github.com/username/daypicker/pkg/dateutil"
)

// Options configures a Picker
type Options struct {
	InitialMonth      time.Time     // zero means the month of today
	NumberOfMonths    int           // at least 1
	Locale            string        // BCP 47 key
	WeekStartsOn      *time.Weekday // overrides the locale's first weekday
	EnableOutsideDays bool
	CanChangeMonth    bool
	Modifiers         *modifier.Set
	Policy            Policy           // nil means unbounded
	Locales           locale.Provider  // nil means locale.Default()
	Clock             func() time.Time // today sampler, nil means dateutil.Today
}

// DefaultOptions returns the picker defaults: one month, English, no outside days, month changes enabled
func DefaultOptions() Options {
	return Options{
		NumberOfMonths: 1,
		Locale:         locale.DefaultKey,
		CanChangeMonth: true,
	}
}

// Interaction is a day-level event forwarded by the rendering layer
type Interaction int

const (
	Click Interaction = iota
	MouseEnter
	MouseLeave
	TouchTap
)

func (i Interaction) String() string {
	switch i {
	case Click:
		return "click"
	case MouseEnter:
		return "mouse-enter"
	case MouseLeave:
		return "mouse-leave"
	case TouchTap:
		return "touch-tap"
	default:
		return fmt.Sprintf("interaction(%d)", int(i))
	}
}

// DayEvent is the payload handed to day handlers
type DayEvent struct {
	Date        time.Time
	Modifiers   []string
	Interaction Interaction
}

// DayHandler reacts to a day interaction
type DayHandler func(DayEvent)

// Key is a keyboard key the picker understands
type Key int

const (
	KeyOther Key = iota
	KeyLeft
	KeyRight
	KeyEnter
	KeySpace
)

// gridFingerprint lists every input a month grid depends on
type gridFingerprint struct {
	Anchor            string
	Months            int
	WeekStartsOn      int
	EnableOutsideDays bool
	Modifiers         []string
	Generation        uint64
	Today             string
}

// Picker wires the navigation state, grid builder and focus navigator behind the host contract
type Picker struct {
	mu     sync.Mutex
	opts   Options
	state  *State
	logger *zap.Logger

	generation  uint64 // bumped whenever the modifier set is replaced
	cacheKey    uint64
	cacheValid  bool
	grids       []MonthGrid
	lastGood    []MonthGrid
	dayHandlers map[Interaction]DayHandler

	onMonthChange  MonthChangeFunc
	onCaptionClick func(dateutil.Month)
}

// NewPicker creates a picker from opts
func NewPicker(opts Options, logger *zap.Logger) (*Picker, error) {
	opts = withDefaults(opts)

	initial := opts.InitialMonth
	if initial.IsZero() {
		initial = opts.Clock()
	}

	state, err := NewState(initial, opts.NumberOfMonths, opts.CanChangeMonth, opts.Policy)
	if err != nil {
		return nil, err
	}

	p := &Picker{
		opts:        opts,
		state:       state,
		logger:      logger,
		dayHandlers: make(map[Interaction]DayHandler),
	}

	logger.Info("Day picker created",
		zap.Stringer("anchor", state.Anchor()),
		zap.Int("months", opts.NumberOfMonths),
		zap.String("locale", locale.Canonical(opts.Locale)),
		zap.Stringer("week_starts_on", p.weekStartsOn()),
		zap.Strings("modifiers", opts.Modifiers.Names()))

	return p, nil
}

func withDefaults(opts Options) Options {
	if opts.Locale == "" {
		opts.Locale = locale.DefaultKey
	}
	if opts.Locales == nil {
		opts.Locales = locale.Default()
	}
	if opts.Clock == nil {
		opts.Clock = dateutil.Today
	}
	return opts
}

func (p *Picker) weekStartsOn() time.Weekday {
	if p.opts.WeekStartsOn != nil {
		return *p.opts.WeekStartsOn
	}
	return p.opts.Locales.FirstDayOfWeek(p.opts.Locale)
}

// SetOptions reconfigures the picker. The anchor only moves when the initial month changes.
func (p *Picker) SetOptions(opts Options) error {
	opts = withDefaults(opts)

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.state.SetNumberOfMonths(opts.NumberOfMonths); err != nil {
		return err
	}
	if !opts.InitialMonth.IsZero() && !dateutil.IsSameMonth(opts.InitialMonth, p.opts.InitialMonth) {
		p.state.Reset(opts.InitialMonth)
	}
	p.state.SetCanChangeMonth(opts.CanChangeMonth)
	p.state.SetPolicy(opts.Policy)

	if opts.Modifiers != p.opts.Modifiers {
		p.generation++
	}
	p.opts = opts
	return nil
}

// Locale returns the configured locale key
func (p *Picker) Locale() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.opts.Locale
}

// WeekStartsOn returns the effective first weekday
func (p *Picker) WeekStartsOn() time.Weekday {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.weekStartsOn()
}

// CurrentMonth returns the first day of the anchor month
func (p *Picker) CurrentMonth() time.Time {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.CurrentMonth()
}

// CanChangeMonth reports whether next/previous navigation is enabled
func (p *Picker) CanChangeMonth() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.CanChangeMonth()
}

// Window returns the rendered months
func (p *Picker) Window() Window {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state.Window()
}

// Months returns the grids for the current state. If a modifier fails, the
// last successfully built grids are returned together with the error.
func (p *Picker) Months() ([]MonthGrid, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	today := p.opts.Clock()
	fp := gridFingerprint{
		Anchor:            p.state.Anchor().String(),
		Months:            p.state.NumberOfMonths(),
		WeekStartsOn:      int(p.weekStartsOn()),
		EnableOutsideDays: p.opts.EnableOutsideDays,
		Modifiers:         p.opts.Modifiers.Names(),
		Generation:        p.generation,
		Today:             today.Format("2006-01-02"),
	}

	key, err := hashstructure.Hash(fp, hashstructure.FormatV2, nil)
	if err != nil {
		return p.lastGood, fmt.Errorf("failed to fingerprint grid inputs: %w", err)
	}
	if p.cacheValid && key == p.cacheKey {
		return p.grids, nil
	}

	grids, err := BuildMonths(p.state.Anchor(), p.state.NumberOfMonths(), GridOptions{
		WeekStartsOn:      p.weekStartsOn(),
		Modifiers:         p.opts.Modifiers,
		EnableOutsideDays: p.opts.EnableOutsideDays,
		Today:             today,
	})
	if err != nil {
		p.logger.Warn("Failed to build month grids, keeping previous grids",
			zap.Stringer("anchor", p.state.Anchor()),
			zap.Error(err))
		return p.lastGood, err
	}

	p.grids = grids
	p.lastGood = grids
	p.cacheKey = key
	p.cacheValid = true

	p.logger.Debug("Month grids built",
		zap.Stringer("anchor", p.state.Anchor()),
		zap.Int("months", len(grids)))

	return grids, nil
}

// OnMonthChange registers the listener notified once per committed transition
func (p *Picker) OnMonthChange(fn MonthChangeFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onMonthChange = fn
}

// OnCaptionClick registers the caption handler
func (p *Picker) OnCaptionClick(fn func(dateutil.Month)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.onCaptionClick = fn
}

// OnDay registers the handler for one kind of day interaction
func (p *Picker) OnDay(kind Interaction, fn DayHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if fn == nil {
		delete(p.dayHandlers, kind)
		return
	}
	p.dayHandlers[kind] = fn
}

// InteractionEnabled reports whether days react to activation (a click or tap handler is set)
func (p *Picker) InteractionEnabled() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.dayHandlers[Click] != nil || p.dayHandlers[TouchTap] != nil
}

// ShowMonth anchors the picker at the month of target
func (p *Picker) ShowMonth(target time.Time) {
	p.mu.Lock()
	p.state.ShowMonth(target)
	anchor, notify := p.state.Anchor(), p.onMonthChange
	p.mu.Unlock()

	p.committed(anchor, notify, nil)
}

// ShowNextMonth moves forward by the number of rendered months.
// callback runs once, after the month-change notification, if the move is committed.
func (p *Picker) ShowNextMonth(callback func()) bool {
	return p.step(Next, callback)
}

// ShowPreviousMonth moves backward by the number of rendered months
func (p *Picker) ShowPreviousMonth(callback func()) bool {
	return p.step(Previous, callback)
}

func (p *Picker) step(dir Direction, callback func()) bool {
	p.mu.Lock()
	var ok bool
	if dir == Next {
		ok = p.state.ShowNextMonth(nil)
	} else {
		ok = p.state.ShowPreviousMonth(nil)
	}
	anchor, notify := p.state.Anchor(), p.onMonthChange
	p.mu.Unlock()

	if !ok {
		p.logger.Debug("Month navigation rejected",
			zap.Stringer("direction", dir),
			zap.Stringer("anchor", anchor))
		return false
	}

	p.committed(anchor, notify, callback)
	return true
}

func (p *Picker) committed(anchor dateutil.Month, notify MonthChangeFunc, callback func()) {
	p.logger.Debug("Month changed", zap.Stringer("anchor", anchor))
	if notify != nil {
		notify(anchor)
	}
	if callback != nil {
		callback()
	}
}

// FocusPreviousDay returns the date focus should move to from the given date.
// When the move leaves the rendered months the picker shows the previous months
// first; if that transition is rejected focus stays on from.
func (p *Picker) FocusPreviousDay(from time.Time) (time.Time, error) {
	return p.moveFocus(Previous, from)
}

// FocusNextDay is the mirror of FocusPreviousDay
func (p *Picker) FocusNextDay(from time.Time) (time.Time, error) {
	return p.moveFocus(Next, from)
}

func (p *Picker) moveFocus(dir Direction, from time.Time) (time.Time, error) {
	grids, err := p.Months()
	if err != nil {
		return from, err
	}

	move, err := MoveFocus(dir, from, grids)
	if err != nil {
		return from, err
	}
	if !move.RequiresMonthTransition {
		return move.Target, nil
	}

	if !p.step(dir, nil) {
		return from, nil
	}

	grids, err = p.Months()
	if err != nil {
		return from, err
	}
	if !Focusable(move.Target, grids) {
		resErr := &FocusResolutionError{Target: move.Target, Anchor: grids[0].Month}
		p.logger.Error("Focus target not rendered after month transition",
			zap.Time("target", move.Target),
			zap.Stringer("direction", dir),
			zap.Error(resErr))
		return from, resErr
	}

	return move.Target, nil
}

// HandleDay forwards a day interaction. Inert cells never fire. Activating a dated
// outside cell first navigates towards its month. It reports whether a handler ran.
func (p *Picker) HandleDay(cell DayCell, kind Interaction) bool {
	if !cell.Interactive() {
		return false
	}

	if cell.IsOutside && (kind == Click || kind == TouchTap) {
		window := p.Window()
		month := dateutil.MonthOf(cell.Date)
		switch {
		case month.Before(window.Anchor):
			p.ShowPreviousMonth(nil)
		case month.After(window.Last()):
			p.ShowNextMonth(nil)
		}
	}

	p.mu.Lock()
	handler := p.dayHandlers[kind]
	p.mu.Unlock()

	if handler == nil {
		return false
	}
	handler(DayEvent{Date: cell.Date, Modifiers: cell.Modifiers, Interaction: kind})
	return true
}

// HandleDayKey applies a key pressed on the focused day and returns the new focus.
// Left/right move focus, enter/space activate the day.
func (p *Picker) HandleDayKey(focused time.Time, key Key) (time.Time, error) {
	switch key {
	case KeyLeft:
		return p.FocusPreviousDay(focused)
	case KeyRight:
		return p.FocusNextDay(focused)
	case KeyEnter, KeySpace:
		cell, err := p.Cell(focused)
		if err != nil {
			return focused, err
		}
		p.HandleDay(cell, Click)
		p.HandleDay(cell, TouchTap)
		return focused, nil
	default:
		return focused, nil
	}
}

// HandleRootKey applies a key pressed on the picker itself: left/right change month.
// Keys are ignored when month changes are disabled.
func (p *Picker) HandleRootKey(key Key) bool {
	if !p.CanChangeMonth() {
		return false
	}
	switch key {
	case KeyLeft:
		return p.ShowPreviousMonth(nil)
	case KeyRight:
		return p.ShowNextMonth(nil)
	default:
		return false
	}
}

// CaptionClick forwards a click on a month caption
func (p *Picker) CaptionClick(month dateutil.Month) {
	p.mu.Lock()
	fn := p.onCaptionClick
	p.mu.Unlock()

	if fn != nil {
		fn(month)
	}
}

// Cell returns the focusable cell for date in the current grids
func (p *Picker) Cell(date time.Time) (DayCell, error) {
	grids, err := p.Months()
	if err != nil {
		return DayCell{}, err
	}
	for _, g := range grids {
		if w, d, ok := g.Find(date); ok {
			return g.Weeks[w][d], nil
		}
	}
	return DayCell{}, fmt.Errorf("%w: %s", ErrFocusNotFound, date.Format("2006-01-02"))
}
