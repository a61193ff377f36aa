package vim

// RegisterType categorizes registers by their behavior.
type RegisterType uint8

const (
	// RegisterNamed is a named register (a-z, A-Z).
	RegisterNamed RegisterType = iota

	// RegisterNumbered is a numbered register (1-9).
	RegisterNumbered

	// RegisterUnnamed is the default register (").
	RegisterUnnamed

	// RegisterSmallDelete is the small delete register (-).
	RegisterSmallDelete

	// RegisterBlackHole is the black hole register (_).
	RegisterBlackHole

	// RegisterReadOnly covers ". % # :" which can be read but not written.
	RegisterReadOnly

	// RegisterSearch is the last search pattern register (/).
	RegisterSearch

	// RegisterExpression is the expression register (=).
	RegisterExpression

	// RegisterClipboard is the system clipboard register (+ or *).
	RegisterClipboard

	// RegisterLastYank is the yank register (0).
	RegisterLastYank

	// RegisterInvalid is returned for characters that name no register.
	RegisterInvalid
)

// GetRegisterType returns the type of register for a given name.
func GetRegisterType(name rune) RegisterType {
	switch {
	case name == '"':
		return RegisterUnnamed
	case name >= 'a' && name <= 'z', name >= 'A' && name <= 'Z':
		return RegisterNamed
	case name == '0':
		return RegisterLastYank
	case name >= '1' && name <= '9':
		return RegisterNumbered
	case name == '-':
		return RegisterSmallDelete
	case name == '_':
		return RegisterBlackHole
	case name == '.', name == '%', name == '#', name == ':':
		return RegisterReadOnly
	case name == '/':
		return RegisterSearch
	case name == '=':
		return RegisterExpression
	case name == '+', name == '*':
		return RegisterClipboard
	default:
		return RegisterInvalid
	}
}

// IsValidRegister returns true if the register name is valid.
func IsValidRegister(name rune) bool {
	return GetRegisterType(name) != RegisterInvalid
}

// IsRecordable reports whether a macro can be recorded into the register.
// Only named and numbered registers plus the unnamed register qualify.
func IsRecordable(name rune) bool {
	switch GetRegisterType(name) {
	case RegisterNamed, RegisterNumbered, RegisterLastYank, RegisterUnnamed:
		return true
	}
	return false
}
