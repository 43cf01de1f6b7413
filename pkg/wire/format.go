package wire

// Type tags a wire value. The set is closed.
type Type string

const (
	TypeText    Type = "text"
	TypeDisplay Type = "display"
	TypeInt     Type = "int"
	TypeDouble  Type = "double"
	TypeList    Type = "list"
	TypeSubmit  Type = "submit"
	TypePush    Type = "push"
)

// Known reports whether t is one of the wire types.
func (t Type) Known() bool {
	switch t {
	case TypeText, TypeDisplay, TypeInt, TypeDouble, TypeList, TypeSubmit, TypePush:
		return true
	default:
		return false
	}
}

// Form is the interchange document.
type Form struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// Section is one group of wire values.
type Section struct {
	Title  string  `json:"title,omitempty" yaml:"title,omitempty"`
	Footer string  `json:"footer,omitempty" yaml:"footer,omitempty"`
	Values []Field `json:"values" yaml:"values"`
}

// Field is a tagged property bag. The keys Data may carry depend on Type:
//
//	text     key, title, value, placeholder, style, required, maxLength, multiline
//	display  key, title, value
//	int      key, title, value, min, max, required
//	double   key, title, value, min, max, decimals, required
//	list     key, title, options, value, multiple, placeholder, required
//	submit   key, title, url, method, style, tracksValidity, enabled
//	push     key, title, detail, destination
//
// options is a list of strings or of {title, value} maps. A multiple list
// takes its value as a list of option values.
type Field struct {
	Type Type           `json:"type" yaml:"type"`
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}
