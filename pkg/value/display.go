package value

import "strings"

// ActionStyle hints how an Action button is drawn.
type ActionStyle string

const (
	ActionStyleDefault     ActionStyle = ""
	ActionStyleDestructive ActionStyle = "destructive"
	ActionStyleCancel      ActionStyle = "cancel"
)

// Endpoint is the remote target an Action submits to.
type Endpoint struct {
	URL    string
	Method string
}

// IsZero reports whether the endpoint has no URL.
func (e Endpoint) IsZero() bool {
	return strings.TrimSpace(e.URL) == ""
}

// Action is a button row. It never encodes a value. When TracksValidity is
// set, the owning data source keeps Enabled in sync with form validity.
type Action struct {
	Name           string
	Label          string
	Style          ActionStyle
	Enabled        bool
	TracksValidity bool
	Endpoint       Endpoint
}

func (Action) sealed()              {}
func (Action) Kind() Kind           { return KindAction }
func (a Action) Key() string        { return keyOf(a.Name) }
func (a Action) Title() string      { return a.Label }
func (a Action) Display() string    { return a.Label }
func (Action) Encode() (Pair, bool) { return Pair{}, false }
func (Action) Validate() []string   { return nil }

// ReadOnly displays a title and value without accepting input.
type ReadOnly struct {
	Name  string
	Label string
	Value string
}

func (ReadOnly) sealed()              {}
func (ReadOnly) Kind() Kind           { return KindReadOnly }
func (r ReadOnly) Key() string        { return keyOf(r.Name) }
func (r ReadOnly) Title() string      { return r.Label }
func (r ReadOnly) Display() string    { return r.Value }
func (ReadOnly) Encode() (Pair, bool) { return Pair{}, false }
func (ReadOnly) Validate() []string   { return nil }

// Link pushes another screen identified by Destination.
type Link struct {
	Name        string
	Label       string
	Detail      string
	Destination string
}

func (Link) sealed()              {}
func (Link) Kind() Kind           { return KindLink }
func (l Link) Key() string        { return keyOf(l.Name) }
func (l Link) Title() string      { return l.Label }
func (l Link) Display() string    { return l.Detail }
func (Link) Encode() (Pair, bool) { return Pair{}, false }
func (Link) Validate() []string   { return nil }

// Spacer is an empty row of a fixed height.
type Spacer struct {
	Height float64
}

func (Spacer) sealed()              {}
func (Spacer) Kind() Kind           { return KindSpacer }
func (Spacer) Key() string          { return "" }
func (Spacer) Title() string        { return "" }
func (Spacer) Display() string      { return "" }
func (Spacer) Encode() (Pair, bool) { return Pair{}, false }
func (Spacer) Validate() []string   { return nil }
