package input

import (
	"sync/atomic"

	"github.com/dshills/keychord/internal/input/digraph"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/mode"
	"github.com/dshills/keychord/internal/input/trie"
	"github.com/dshills/keychord/internal/input/vim"
	"github.com/dshills/keychord/internal/logging"
)

// Outcome is the result of handling one key event.
type Outcome uint8

const (
	// Continue means more input is needed.
	Continue Outcome = iota

	// Executed means a command was executed or a literal was inserted.
	Executed

	// Aborted means the pending command was abandoned.
	Aborted
)

// String returns the outcome name.
func (o Outcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Executed:
		return "executed"
	case Aborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// maxRedispatch bounds the synthetic re-dispatches a single key event may
// cause.
const maxRedispatch = 1

// DefaultCancelKeys are Escape, Ctrl-C and Ctrl-[.
var DefaultCancelKeys = []key.Event{
	key.NewSpecialEvent(key.KeyEscape, key.ModNone),
	key.NewRuneEvent('c', key.ModCtrl),
	key.NewRuneEvent('[', key.ModCtrl),
}

// DefaultEraseKey is Backspace.
var DefaultEraseKey = key.NewSpecialEvent(key.KeyBackspace, key.ModNone)

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithActions sets the action registry. Without one every action resolves.
// A registry that also implements Executor is used as the executor unless
// WithExecutor is given.
func WithActions(r ActionRegistry) Option {
	return func(d *Dispatcher) { d.actions = r }
}

// WithExecutor sets the executor for resolved commands.
func WithExecutor(e Executor) Option {
	return func(d *Dispatcher) { d.exec = e }
}

// WithLiteralHandler sets the Insert/Replace mode literal handler.
func WithLiteralHandler(h LiteralHandler) Option {
	return func(d *Dispatcher) { d.literal = h }
}

// WithCommandLineEditor sets the command-line editor.
func WithCommandLineEditor(e CommandLineEditor) Option {
	return func(d *Dispatcher) { d.editor = e }
}

// WithRecorder sets the macro recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) { d.recorder = r }
}

// WithOptions sets the options provider.
func WithOptions(o Options) Option {
	return func(d *Dispatcher) { d.options = o }
}

// WithHost sets the host receiving cancel and error side effects.
func WithHost(h Host) Option {
	return func(d *Dispatcher) { d.host = h }
}

// WithDigraphs sets the digraph table.
func WithDigraphs(t *digraph.Table) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.digraphs = t
		}
	}
}

// WithEraseKey sets the key that erases count digits and, in Insert mode,
// arms erase-then-character digraphs.
func WithEraseKey(ev key.Event) Option {
	return func(d *Dispatcher) { d.eraseKey = ev.Normalize() }
}

// WithCancelKeys replaces the cancel keys.
func WithCancelKeys(evs ...key.Event) Option {
	return func(d *Dispatcher) {
		d.cancelKeys = make([]key.Event, len(evs))
		for i, ev := range evs {
			d.cancelKeys[i] = ev.Normalize()
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *logging.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.log = l
		}
	}
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *Metrics) Option {
	return func(d *Dispatcher) {
		if m != nil {
			d.metrics = m
		}
	}
}

// Dispatcher turns key events into resolved commands. It holds the shared
// command trie and collaborators; per-view state lives in Target.
//
// A Dispatcher may serve many targets from different goroutines as long as
// each target is driven by one goroutine at a time. SetTrie may be called
// concurrently with HandleKeyEvent.
type Dispatcher struct {
	trie       atomic.Pointer[trie.Trie]
	generation atomic.Uint64

	actions  ActionRegistry
	exec     Executor
	literal  LiteralHandler
	editor   CommandLineEditor
	recorder Recorder
	options  Options
	host     Host

	digraphs   *digraph.Table
	eraseKey   key.Event
	cancelKeys []key.Event

	log     *logging.Logger
	metrics *Metrics
}

// New creates a dispatcher for the given trie.
func New(t *trie.Trie, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		editor:     NewLineEditor(),
		digraphs:   digraph.Default(),
		eraseKey:   DefaultEraseKey,
		cancelKeys: DefaultCancelKeys,
		log:        logging.Discard(),
		metrics:    NewMetrics(),
	}
	for _, opt := range opts {
		opt(d)
	}

	if d.exec == nil {
		if e, ok := d.actions.(Executor); ok {
			d.exec = e
		} else {
			d.exec = nopExecutor{}
		}
	}
	if d.literal == nil {
		d.literal = nopLiteral{}
	}
	if d.options == nil {
		d.options = OptionSet{}
	}
	if d.host == nil {
		d.host = nopHost{}
	}
	d.log = d.log.WithComponent("dispatcher")

	d.trie.Store(t)
	d.generation.Store(1)
	return d
}

// SetTrie replaces the command trie. Every target abandons its pending
// command before its next key event.
func (d *Dispatcher) SetTrie(t *trie.Trie) {
	d.trie.Store(t)
	gen := d.generation.Add(1)
	d.log.Info("command trie replaced (generation %d, %d nodes)", gen, t.Size())
}

// Trie returns the current command trie.
func (d *Dispatcher) Trie() *trie.Trie {
	return d.trie.Load()
}

// Metrics returns the dispatcher's metrics.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Reset abandons t's pending command, popping the mode frames it pushed.
func (d *Dispatcher) Reset(t *Target) {
	d.abandon(t)
}

// queued is a key event waiting to be processed.
type queued struct {
	ev key.Event

	// replayed events were already recorded once.
	replayed bool
}

// HandleKeyEvent processes one key event for t.
//
// A key may cause one synthetic re-dispatch: the key after an unfinished
// digraph, the key that starts an argument of a command flagged
// replay_key, or an Insert-mode key after a partial mapping was flushed.
// Further re-dispatches are dropped.
func (d *Dispatcher) HandleKeyEvent(t *Target, ev key.Event) Outcome {
	timer := d.metrics.StartKeyEventTimer()
	defer timer.Stop()

	d.sync(t)

	queue := []queued{{ev: ev.Normalize()}}
	redispatched := 0
	outcome := Continue
	for len(queue) > 0 {
		item := queue[0]
		queue = queue[1:]

		out, follow := d.step(t, item)
		if out > outcome {
			outcome = out
		}
		if follow == nil {
			continue
		}
		if redispatched == maxRedispatch {
			d.metrics.RecordDroppedReplay()
			d.logger(t).Warn("dropping re-dispatch of %s", follow.ev.VimString())
			continue
		}
		redispatched++
		d.metrics.RecordReplay()
		queue = append(queue, *follow)
	}

	d.metrics.RecordOutcome(outcome)
	return outcome
}

// sync resets t after the trie was replaced.
func (d *Dispatcher) sync(t *Target) {
	gen := d.generation.Load()
	if t.generation == gen {
		return
	}
	if !t.acc.empty() {
		d.logger(t).Debug("abandoning %q after keymap reload", t.PendingKeys())
		d.abandon(t)
	}
	t.setDigraphs(d.digraphs)
	t.generation = gen
}

// step runs the transition table for one key.
func (d *Dispatcher) step(t *Target, item queued) (Outcome, *queued) {
	a := &t.acc
	ev := item.ev

	wasErase := a.lastWasErase
	a.lastWasErase = false

	if d.isCancel(ev) {
		if out, ok := d.cancel(t); ok {
			return out, nil
		}
	}

	if a.digraph.Active() {
		return d.feedDigraph(t, item)
	}

	if digit, ok := ev.Digit(); ok && d.countAllowed(t) && a.count.Fold(digit) {
		a.consume(ev, item.replayed)
		return Continue, nil
	}

	if ev == d.eraseKey && a.count.Active && !a.expect.IsLiteral() {
		a.count.Erase()
		a.consume(ev, item.replayed)
		return Continue, nil
	}

	// A digraph may stand in for a character argument, as in "r<C-k>a:".
	if a.expect == vim.ArgCharacter && digraph.IsStart(ev) {
		a.consume(ev, item.replayed)
		a.digraph.Arm()
		return Continue, nil
	}

	if a.expect.IsLiteral() {
		a.consume(ev, item.replayed)
		ch, ok := ev.Literal()
		if !ok {
			return d.malformed(t, "argument", ErrNotCharacter), nil
		}
		return d.completeCharacter(t, ch), nil
	}

	tr := d.trie.Load()
	cursor := a.cursor
	if cursor == nil {
		cursor = tr.Root(t.Mode().Mapping)
	}
	node, ok := tr.Lookup(cursor, ev)
	if !ok {
		return d.miss(t, item, wasErase)
	}

	a.consume(ev, item.replayed)
	switch n := node.(type) {
	case *trie.Branch:
		if a.cursor == nil {
			a.branchAt = len(a.keys) - 1
		}
		a.cursor = n
		if _, ok := n.SoleArgument(); ok {
			d.beginCapture(t)
		}
		return Continue, nil
	case *trie.Command:
		return d.command(t, n), nil
	case *trie.Argument:
		return d.argument(t, n, item)
	}
	return d.malformed(t, "lookup", ErrMalformedSequence), nil
}

func (d *Dispatcher) isCancel(ev key.Event) bool {
	for _, c := range d.cancelKeys {
		if ev == c {
			return true
		}
	}
	return false
}

// cancel handles a cancel key. It reports false when the key should be
// looked up like any other, which happens outside Normal and Visual mode
// with nothing pending.
func (d *Dispatcher) cancel(t *Target) (Outcome, bool) {
	a := &t.acc
	if t.Mode().Mapping == mode.MapInsert && a.cursor != nil &&
		len(a.pending) == 0 && !a.digraph.Active() {
		// An unfinished mapping types its keys before the cancel key runs.
		d.flushBranch(t)
	}
	if !a.empty() {
		d.logger(t).Debug("cancelled %q", t.PendingKeys())
		d.abandon(t)
		d.metrics.RecordCancel()
		return Aborted, true
	}
	switch t.Mode().Mapping {
	case mode.MapNormal, mode.MapVisual:
		d.host.CancelEdit(t)
		return Executed, true
	}
	return Continue, false
}

func (d *Dispatcher) countAllowed(t *Target) bool {
	a := &t.acc
	if a.expect.IsLiteral() || a.expect == vim.ArgCommandLine {
		return false
	}
	if !t.Mode().Mapping.AcceptsCount() {
		return false
	}
	return a.cursor == nil || a.cursor.AllowCount
}

// feedDigraph hands a key to the armed digraph machine.
func (d *Dispatcher) feedDigraph(t *Target, item queued) (Outcome, *queued) {
	a := &t.acc
	res := a.digraph.Feed(item.ev)

	switch res.Status {
	case digraph.NeedMore:
		a.consume(item.ev, item.replayed)
		return Continue, nil

	case digraph.Rejected:
		a.consume(item.ev, item.replayed)
		if a.expect.IsLiteral() {
			return d.malformed(t, "digraph", ErrNotCharacter), nil
		}
		d.logger(t).Debug("digraph %q rejected", t.PendingKeys())
		d.abandon(t)
		return Aborted, nil
	}

	var follow *queued
	if res.Replay != nil {
		if !item.replayed {
			a.record = append(a.record, item.ev)
		}
		follow = &queued{ev: *res.Replay, replayed: true}
	} else {
		a.consume(item.ev, item.replayed)
	}

	if a.expect.IsLiteral() {
		a.expect = vim.ArgCharacter
		return d.completeCharacter(t, res.Char), follow
	}
	return d.insertLiteral(t, res.Char), follow
}

// completeCharacter attaches ch to the pending command.
func (d *Dispatcher) completeCharacter(t *Target, ch rune) Outcome {
	a := &t.acc
	top := a.top()
	top.Argument = vim.CharacterArgument{Char: ch}
	a.expect = vim.ArgNone

	if top.Kind == vim.KindRegister && len(a.pending) == 1 {
		return d.selectRegister(t, ch)
	}
	return d.ready(t)
}

// selectRegister turns a completed `"x` prefix into the register of the
// next command. A count typed before the prefix multiplies the count of
// that command, so `2"a3x` deletes six characters.
func (d *Dispatcher) selectRegister(t *Target, reg rune) Outcome {
	a := &t.acc
	if !vim.IsValidRegister(reg) {
		return d.malformed(t, "register", ErrInvalidRegister)
	}
	prefix := a.pop()
	a.register = reg
	a.mark -= len(prefix.Keys)
	a.preCount = prefix.Count
	return Continue
}

// command handles a matched Command node.
func (d *Dispatcher) command(t *Target, n *trie.Command) Outcome {
	a := &t.acc
	desc := trie.Descriptor(n)

	switch a.expect {
	case vim.ArgMotion:
		switch {
		case n.Kind == vim.KindMotion:
		case n.Kind == vim.KindLinewise && n.Action == a.top().LinewiseAction:
			return d.linewise(t, desc)
		default:
			return d.malformed(t, "motion", ErrInvalidMotion)
		}

	case vim.ArgCommandLine:
		if !n.Flags.CompletesCommandLine {
			return d.malformed(t, "cmdline", ErrMalformedSequence)
		}
		a.top().Argument = vim.CommandLineArgument{Text: d.endCapture(t)}
		a.expect = vim.ArgNone
		d.popFrame(t)
		return d.ready(t)
	}

	if err := d.checkAction(t, desc.Action); err != nil {
		return d.malformed(t, "lookup", err)
	}
	a.push(desc)
	a.expect = vim.ArgNone
	return d.ready(t)
}

// linewise replaces the pending operator with its linewise form. Counts
// typed before and after the operator multiply: "2d3d" deletes 6 lines.
func (d *Dispatcher) linewise(t *Target, desc *vim.Descriptor) Outcome {
	a := &t.acc
	if err := d.checkAction(t, desc.Action); err != nil {
		return d.malformed(t, "lookup", err)
	}

	op := a.pop()
	if op.HasCount() || a.count.Active {
		desc.Count = vim.CombineCounts(op.Count, a.count.Raw())
	}
	desc.Register = op.Register
	desc.Flags.Writes = desc.Flags.Writes || op.Flags.Writes
	desc.Keys = append(op.Keys, a.keys[a.mark:]...)

	a.pending = append(a.pending[:0], desc)
	a.mark = len(a.keys)
	a.count.Reset()
	a.cursor = nil
	a.expect = vim.ArgNone
	return d.ready(t)
}

// argument handles a matched Argument node.
func (d *Dispatcher) argument(t *Target, n *trie.Argument, item queued) (Outcome, *queued) {
	a := &t.acc

	switch {
	case a.expect == vim.ArgMotion && n.Kind != vim.KindMotion:
		return d.malformed(t, "motion", ErrInvalidMotion), nil
	case a.expect == vim.ArgCommandLine, len(a.pending) >= maxPending:
		return d.malformed(t, "lookup", ErrMalformedSequence), nil
	}
	if err := d.checkAction(t, n.Action); err != nil {
		return d.malformed(t, "lookup", err), nil
	}

	a.push(trie.Descriptor(n))
	a.expect = n.Expect

	switch n.Expect {
	case vim.ArgNone:
		return d.ready(t), nil
	case vim.ArgMotion:
		if n.Flags.OperatorPendingRequired {
			d.pushFrame(t, mode.OperatorPending(t.Mode()))
		}
	case vim.ArgDigraph:
		a.digraph.Arm()
	case vim.ArgCommandLine:
		d.pushFrame(t, mode.NewFrame(mode.CommandLineEntry))
		d.beginCapture(t)
	}

	if n.Flags.ReplayKey {
		return Continue, &queued{ev: item.ev, replayed: true}
	}
	return Continue, nil
}

// miss handles a key with no trie edge from the cursor.
func (d *Dispatcher) miss(t *Target, item queued, wasErase bool) (Outcome, *queued) {
	a := &t.acc
	ev := item.ev
	frame := t.Mode()

	if frame.Mapping == mode.MapCommandLine && a.expect == vim.ArgCommandLine {
		if a.cursor != nil {
			d.flushBranch(t)
		}
		a.consume(ev, item.replayed)
		d.editor.Input(ev, t)
		return Continue, nil
	}

	if frame.Mapping == mode.MapInsert && len(a.pending) == 0 {
		if a.cursor != nil {
			// An unfinished mapping such as "jk" types its keys.
			return d.flushBranch(t), &queued{ev: ev, replayed: item.replayed}
		}
		if digraph.IsStart(ev) {
			a.consume(ev, item.replayed)
			a.digraph.Arm()
			return Continue, nil
		}
		return d.fallback(t, item, wasErase), nil
	}

	a.consume(ev, item.replayed)
	if a.expect == vim.ArgMotion {
		return d.malformed(t, "motion", ErrInvalidMotion), nil
	}
	return d.malformed(t, "lookup", ErrMalformedSequence), nil
}

// flushBranch hands the keys of an abandoned partial mapping to the
// fallback collaborator of the current mode.
func (d *Dispatcher) flushBranch(t *Target) Outcome {
	a := &t.acc
	keys := a.keys[a.branchAt:]
	a.cursor = nil

	if t.Mode().Mapping == mode.MapCommandLine {
		for _, k := range keys {
			d.editor.Input(k, t)
		}
		return Continue
	}

	out := Continue
	for _, k := range keys {
		ch, ok := k.Literal()
		if !ok || t.readOnly || !d.literal.InsertOrReplace(ch, t) {
			continue
		}
		a.lastInserted = ch
		out = Executed
	}
	d.flushRecord(t)
	d.finish(t)
	return out
}

// fallback inserts an unmapped key in Insert or Replace mode.
func (d *Dispatcher) fallback(t *Target, item queued, wasErase bool) Outcome {
	a := &t.acc
	ev := item.ev
	a.consume(ev, item.replayed)

	ch, ok := ev.Literal()
	if !ok {
		return d.malformed(t, "fallback", ErrNotCharacter)
	}

	isErase := ev == d.eraseKey
	if wasErase && !isErase && a.lastErased != 0 && d.options.Bool(OptionDigraph) {
		if r, found := d.digraphs.Lookup(a.lastErased, ch); found {
			ch = r
		}
	}

	prev := a.lastInserted
	out := d.insertLiteral(t, ch)
	if out == Executed && isErase {
		a.lastWasErase = true
		a.lastErased = prev
		a.lastInserted = 0
	}
	return out
}

// insertLiteral hands ch to the literal handler and completes the key.
func (d *Dispatcher) insertLiteral(t *Target, ch rune) Outcome {
	a := &t.acc
	if t.readOnly {
		return d.malformed(t, "fallback", ErrReadOnly)
	}
	if !d.literal.InsertOrReplace(ch, t) {
		return d.malformed(t, "fallback", ErrLiteralRejected)
	}
	a.lastInserted = ch
	d.flushRecord(t)
	d.finish(t)
	d.metrics.RecordFallback()
	return Executed
}

// ready resolves the pending stack and executes the result.
func (d *Dispatcher) ready(t *Target) Outcome {
	a := &t.acc
	skipRecording := a.noRecording()
	desc := a.resolve()

	if t.readOnly && desc.Writes() {
		return d.malformed(t, "execute", ErrReadOnly)
	}

	if !skipRecording {
		d.flushRecord(t)
	}
	d.finish(t)

	d.logger(t).Debug("resolved %s", desc)
	if err := d.exec.Execute(desc, t); err != nil {
		d.metrics.RecordExecError()
		d.logger(t).Warn("executing %s: %v", desc.Action, err)
		d.host.IndicateError(t, &DispatchError{Op: "execute", Keys: key.VimString(desc.Keys), Err: err})
	}
	return Executed
}

// malformed abandons the pending command and reports err.
func (d *Dispatcher) malformed(t *Target, op string, err error) Outcome {
	a := &t.acc
	derr := &DispatchError{Op: op, Keys: key.VimString(a.keys), Err: err}

	if !a.noRecording() {
		d.flushRecord(t)
	}
	d.abandon(t)

	if IsConfigError(err) {
		d.logger(t).Error("%v", derr)
	} else {
		d.logger(t).Debug("%v", derr)
	}
	d.metrics.RecordError(err)
	d.host.IndicateError(t, derr)
	return Aborted
}

// checkAction verifies that action is registered.
func (d *Dispatcher) checkAction(t *Target, action string) error {
	if d.actions == nil {
		return nil
	}
	if _, ok := d.actions.Resolve(action); ok {
		return nil
	}
	return &ConfigError{Action: action, Keys: key.VimString(t.acc.keys)}
}

// flushRecord hands the typed keys of the finished input to the recorder.
func (d *Dispatcher) flushRecord(t *Target) {
	a := &t.acc
	if d.recorder != nil && len(a.record) > 0 && d.recorder.IsRecording() {
		for _, ev := range a.record {
			d.recorder.Record(ev)
		}
	}
	a.record = nil
}

func (d *Dispatcher) pushFrame(t *Target, f mode.Frame) {
	t.modes.Push(f)
	t.acc.pushed++
}

func (d *Dispatcher) popFrame(t *Target) {
	if t.acc.pushed == 0 {
		return
	}
	if _, ok := t.modes.Pop(); ok {
		t.acc.pushed--
	}
}

func (d *Dispatcher) beginCapture(t *Target) {
	if !t.acc.capturing {
		d.editor.BeginCapture(t)
		t.acc.capturing = true
	}
}

func (d *Dispatcher) endCapture(t *Target) string {
	if !t.acc.capturing {
		return ""
	}
	t.acc.capturing = false
	return d.editor.EndCapture(t)
}

// finish pops the frames pushed for the pending command, ends any
// command-line capture and empties the accumulator.
func (d *Dispatcher) finish(t *Target) {
	for t.acc.pushed > 0 {
		before := t.acc.pushed
		d.popFrame(t)
		if t.acc.pushed == before {
			break
		}
	}
	d.endCapture(t)
	t.acc.reset()
}

// abandon drops the pending command without recording it.
func (d *Dispatcher) abandon(t *Target) {
	t.acc.record = nil
	d.finish(t)
}

func (d *Dispatcher) logger(t *Target) *logging.Logger {
	return d.log.WithField("target", t.id.String())
}
