package vim

// Operator is a Vim operator: a command that acts on the range described
// by a motion or text object.
type Operator struct {
	// Keys is the key notation that triggers the operator ("d", "gu").
	Keys string

	// Action is the action dispatched with a motion argument.
	Action string

	// LinewiseAction is dispatched when the operator is repeated on
	// itself ("dd"). For two-key operators the repeat is the last key
	// ("guu") as well as the full sequence ("gugu").
	LinewiseAction string

	// Writes indicates the operator modifies the buffer.
	Writes bool
}

// Standard Vim operators.
var Operators = []Operator{
	{Keys: "d", Action: "editor.delete", LinewiseAction: "editor.deleteLine", Writes: true},
	{Keys: "c", Action: "editor.change", LinewiseAction: "editor.changeLine", Writes: true},
	{Keys: "y", Action: "editor.yank", LinewiseAction: "editor.yankLine"},
	{Keys: ">", Action: "editor.indentRight", LinewiseAction: "editor.indentLineRight", Writes: true},
	{Keys: "<lt>", Action: "editor.indentLeft", LinewiseAction: "editor.indentLineLeft", Writes: true},
	{Keys: "=", Action: "editor.format", LinewiseAction: "editor.formatLine", Writes: true},
	{Keys: "g~", Action: "editor.toggleCase", LinewiseAction: "editor.lineToggleCase", Writes: true},
	{Keys: "gu", Action: "editor.toLower", LinewiseAction: "editor.lineToLower", Writes: true},
	{Keys: "gU", Action: "editor.toUpper", LinewiseAction: "editor.lineToUpper", Writes: true},
}

// Motion is a Vim cursor motion.
type Motion struct {
	// Keys is the key notation that triggers the motion.
	Keys string

	// Action is the action name to dispatch.
	Action string

	// Argument is non-zero for motions that read a character ("f") or
	// a search pattern ("/").
	Argument ArgumentKind
}

// Standard Vim motions.
var Motions = []Motion{
	{Keys: "h", Action: "cursor.left"},
	{Keys: "l", Action: "cursor.right"},
	{Keys: "k", Action: "cursor.up"},
	{Keys: "j", Action: "cursor.down"},
	{Keys: "<Left>", Action: "cursor.left"},
	{Keys: "<Right>", Action: "cursor.right"},
	{Keys: "<Up>", Action: "cursor.up"},
	{Keys: "<Down>", Action: "cursor.down"},
	{Keys: "w", Action: "cursor.wordForward"},
	{Keys: "b", Action: "cursor.wordBackward"},
	{Keys: "e", Action: "cursor.wordEnd"},
	{Keys: "W", Action: "cursor.WORDForward"},
	{Keys: "B", Action: "cursor.WORDBackward"},
	{Keys: "E", Action: "cursor.WORDEnd"},
	{Keys: "0", Action: "cursor.lineStart"},
	{Keys: "^", Action: "cursor.firstNonBlank"},
	{Keys: "$", Action: "cursor.lineEnd"},
	{Keys: "g0", Action: "cursor.screenLineStart"},
	{Keys: "g$", Action: "cursor.screenLineEnd"},
	{Keys: "gg", Action: "cursor.documentStart"},
	{Keys: "G", Action: "cursor.documentEnd"},
	{Keys: "}", Action: "cursor.paragraphForward"},
	{Keys: "{", Action: "cursor.paragraphBackward"},
	{Keys: ")", Action: "cursor.sentenceForward"},
	{Keys: "(", Action: "cursor.sentenceBackward"},
	{Keys: "%", Action: "cursor.matchPair"},
	{Keys: "n", Action: "search.next"},
	{Keys: "N", Action: "search.previous"},
	{Keys: "f", Action: "cursor.findChar", Argument: ArgCharacter},
	{Keys: "F", Action: "cursor.findCharBack", Argument: ArgCharacter},
	{Keys: "t", Action: "cursor.tillChar", Argument: ArgCharacter},
	{Keys: "T", Action: "cursor.tillCharBack", Argument: ArgCharacter},
	{Keys: "`", Action: "mark.jump", Argument: ArgCharacter},
	{Keys: "'", Action: "mark.jumpLine", Argument: ArgCharacter},
	{Keys: "/", Action: "search.forward", Argument: ArgCommandLine},
	{Keys: "?", Action: "search.backward", Argument: ArgCommandLine},
}

// TextObject is a Vim text object, selectable with the "i" or "a" prefix
// in visual and operator-pending modes.
type TextObject struct {
	// Key identifies the object after its prefix.
	Key string

	// InnerAction is dispatched for "i" + Key.
	InnerAction string

	// AroundAction is dispatched for "a" + Key.
	AroundAction string
}

// Standard Vim text objects.
var TextObjects = []TextObject{
	{Key: "w", InnerAction: "select.innerWord", AroundAction: "select.aroundWord"},
	{Key: "W", InnerAction: "select.innerWORD", AroundAction: "select.aroundWORD"},
	{Key: "s", InnerAction: "select.innerSentence", AroundAction: "select.aroundSentence"},
	{Key: "p", InnerAction: "select.innerParagraph", AroundAction: "select.aroundParagraph"},
	{Key: "b", InnerAction: "select.innerParen", AroundAction: "select.aroundParen"},
	{Key: "(", InnerAction: "select.innerParen", AroundAction: "select.aroundParen"},
	{Key: ")", InnerAction: "select.innerParen", AroundAction: "select.aroundParen"},
	{Key: "B", InnerAction: "select.innerBrace", AroundAction: "select.aroundBrace"},
	{Key: "{", InnerAction: "select.innerBrace", AroundAction: "select.aroundBrace"},
	{Key: "}", InnerAction: "select.innerBrace", AroundAction: "select.aroundBrace"},
	{Key: "[", InnerAction: "select.innerBracket", AroundAction: "select.aroundBracket"},
	{Key: "]", InnerAction: "select.innerBracket", AroundAction: "select.aroundBracket"},
	{Key: "<lt>", InnerAction: "select.innerAngle", AroundAction: "select.aroundAngle"},
	{Key: ">", InnerAction: "select.innerAngle", AroundAction: "select.aroundAngle"},
	{Key: "t", InnerAction: "select.innerTag", AroundAction: "select.aroundTag"},
	{Key: "\"", InnerAction: "select.innerDoubleQuote", AroundAction: "select.aroundDoubleQuote"},
	{Key: "'", InnerAction: "select.innerSingleQuote", AroundAction: "select.aroundSingleQuote"},
	{Key: "`", InnerAction: "select.innerBacktick", AroundAction: "select.aroundBacktick"},
}

// LookupOperator returns the operator bound to keys.
func LookupOperator(keys string) (Operator, bool) {
	for _, op := range Operators {
		if op.Keys == keys {
			return op, true
		}
	}
	return Operator{}, false
}

// LookupMotion returns the motion bound to keys.
func LookupMotion(keys string) (Motion, bool) {
	for _, m := range Motions {
		if m.Keys == keys {
			return m, true
		}
	}
	return Motion{}, false
}
