package input

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/dshills/keychord/internal/input/digraph"
	"github.com/dshills/keychord/internal/input/key"
	"github.com/dshills/keychord/internal/input/vim"
)

// alphabet covers operators, motions, counts, arguments, mode switches
// and the cancel and erase keys.
var alphabet = []string{
	"d", "c", "y", "g", "u", "~", ">", "w", "j", "k", "0", "1", "2", "9",
	"f", "t", "r", "m", "x", "p", "i", "a", "R", "v", "V", "q", "@", "\"",
	":", "/", "z", "e", "'", "<Esc>", "<C-c>", "<BS>", "<CR>", "<C-k>",
	"<Up>", "<Tab>", "<C-w>", "<F5>",
}

func drawKeys(t *rapid.T, label string) []key.Event {
	names := rapid.SliceOfN(rapid.SampledFrom(alphabet), 1, 40).Draw(t, label)
	evs := make([]key.Event, 0, len(names))
	for _, n := range names {
		evs = append(evs, key.Events(n)...)
	}
	return evs
}

func TestCountFoldingProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 9999999).Draw(t, "count")
		h := newHarness(t)

		require.Equal(t, Executed, h.feedLast(fmt.Sprintf("0%dj", n)))
		require.Equal(t, []string{"cursor.lineStart", "cursor.down"}, h.exec.actions())
		require.Equal(t, n, h.exec.last().Count)
	})
}

func TestCountSaturatesProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		digits := rapid.StringMatching(`[1-9][0-9]{10,20}`).Draw(t, "digits")
		h := newHarness(t)

		h.feed(digits + "j")
		require.Equal(t, vim.MaxCount, h.exec.last().Count)
	})
}

func TestCountEraseProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 999999).Draw(t, "count")
		erase := rapid.IntRange(1, 3).Draw(t, "erase")
		h := newHarness(t)

		h.feed(fmt.Sprintf("%d%sj", n, strings.Repeat("<BS>", erase)))
		want := n
		for i := 0; i < erase; i++ {
			want /= 10
		}
		d := h.exec.last()
		require.Equal(t, "cursor.down", d.Action)
		require.Equal(t, want, d.Count)
	})
}

func TestDeterminismProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		evs := drawKeys(t, "keys")
		first, second := newHarness(t), newHarness(t)

		for i, ev := range evs {
			a := first.d.HandleKeyEvent(first.tg, ev)
			b := second.d.HandleKeyEvent(second.tg, ev)
			require.Equal(t, a, b, "outcome of key %d (%s)", i, ev.VimString())
		}

		require.Equal(t, len(first.exec.got), len(second.exec.got))
		for i := range first.exec.got {
			require.Equal(t, first.exec.got[i].String(), second.exec.got[i].String())
		}
		require.Equal(t, string(first.buf.text), string(second.buf.text))
		require.Equal(t, first.tg.Mode(), second.tg.Mode())
	})
}

func TestModeStackBalanceProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness(t)
		for _, ev := range drawKeys(t, "keys") {
			out := h.d.HandleKeyEvent(h.tg, ev)

			depth := h.tg.Modes().Depth()
			require.LessOrEqual(t, depth, maxPending)
			if h.tg.Idle() {
				require.Zero(t, depth, "idle after %s", ev.VimString())
			}
			if out == Aborted {
				require.True(t, h.tg.Idle(), "aborted %s left input pending", ev.VimString())
				require.Zero(t, depth)
			}
		}

		h.d.Reset(h.tg)
		require.True(t, h.tg.Idle())
		require.Zero(t, h.tg.Modes().Depth())
	})
}

func TestResolvedKeysProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness(t)
		for _, ev := range drawKeys(t, "keys") {
			before := len(h.exec.got)
			h.d.HandleKeyEvent(h.tg, ev)
			for _, d := range h.exec.got[before:] {
				require.NotEmpty(t, d.Keys, "%s resolved without keys", d.Action)
				if m := d.Motion(); m != nil {
					require.Zero(t, d.Count, "count stays on the motion")
					require.NotEmpty(t, m.Keys)
				}
			}
		}
	})
}

func TestDigraphRoundTripProperty(t *testing.T) {
	printable := make([]rune, 0, 94)
	for r := rune('!'); r <= '~'; r++ {
		printable = append(printable, r)
	}

	rapid.Check(t, func(t *rapid.T) {
		a := rapid.SampledFrom(printable).Draw(t, "first")
		b := rapid.SampledFrom(printable).Draw(t, "second")
		want := rune(rapid.Int32Range(0xC0, 0x24F).Draw(t, "char"))

		table := digraph.NewTable()
		table.Add(a, b, want)
		h := newHarness(t, WithDigraphs(table))

		evs := append(key.Events("f<C-k>"), key.NewRuneEvent(a, key.ModNone), key.NewRuneEvent(b, key.ModNone))
		var out Outcome
		for _, ev := range evs {
			out = h.d.HandleKeyEvent(h.tg, ev)
		}

		require.Equal(t, Executed, out)
		d := h.exec.last()
		require.Equal(t, "cursor.findChar", d.Action)
		ch, ok := d.Character()
		require.True(t, ok)
		require.Equal(t, want, ch)
		require.Len(t, d.Keys, 4)
	})
}
