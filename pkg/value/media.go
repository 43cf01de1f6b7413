package value

import (
	"fmt"
	"maps"
	"regexp"
	"strings"
)

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Custom carries a caller-defined widget identified by Identifier. Value is
// what gets submitted; Properties feed the widget.
type Custom struct {
	Name       string
	Label      string
	Identifier string
	Value      string
	Properties map[string]string
	State      State
}

func (Custom) sealed()           {}
func (Custom) Kind() Kind        { return KindCustom }
func (c Custom) Key() string     { return keyOf(c.Name) }
func (c Custom) Title() string   { return c.Label }
func (c Custom) Display() string { return c.Value }

func (c Custom) Encode() (Pair, bool) {
	return encodeKey(c.Name, c.Value)
}

func (c Custom) Validate() []string {
	return c.State.messages(c.Label, strings.TrimSpace(c.Value) == "")
}

func (c Custom) equal(v Value) bool {
	o, ok := v.(Custom)
	return ok &&
		c.Name == o.Name &&
		c.Label == o.Label &&
		c.Identifier == o.Identifier &&
		c.Value == o.Value &&
		maps.Equal(c.Properties, o.Properties) &&
		c.State.equal(o.State)
}

// Color holds a hex color such as "#336699".
type Color struct {
	Name  string
	Label string
	Value string
	State State
}

func (Color) sealed()           {}
func (Color) Kind() Kind        { return KindColor }
func (c Color) Key() string     { return keyOf(c.Name) }
func (c Color) Title() string   { return c.Label }
func (c Color) Display() string { return strings.ToLower(c.Value) }

func (c Color) Encode() (Pair, bool) {
	return encodeKey(c.Name, strings.ToLower(c.Value))
}

func (c Color) Validate() []string {
	var failure string
	if c.Value != "" && !hexColorPattern.MatchString(c.Value) {
		failure = describe(c.Label) + " must be a hex color"
	}
	return c.State.messages(c.Label, c.Value == "", failure)
}

func (c Color) equal(v Value) bool {
	o, ok := v.(Color)
	return ok && c.Name == o.Name && c.Label == o.Label && c.Value == o.Value && c.State.equal(o.State)
}

// Location is a latitude/longitude pair, encoded as "lat,lng".
type Location struct {
	Name      string
	Label     string
	Latitude  float64
	Longitude float64
	HasValue  bool
	State     State
}

func (Location) sealed()         {}
func (Location) Kind() Kind      { return KindLocation }
func (l Location) Key() string   { return keyOf(l.Name) }
func (l Location) Title() string { return l.Label }

func (l Location) Display() string {
	if !l.HasValue {
		return ""
	}
	return formatFloat(l.Latitude) + "," + formatFloat(l.Longitude)
}

func (l Location) Encode() (Pair, bool) {
	return encodeKey(l.Name, l.Display())
}

func (l Location) Validate() []string {
	var failure string
	if l.HasValue && (l.Latitude < -90 || l.Latitude > 90 || l.Longitude < -180 || l.Longitude > 180) {
		failure = fmt.Sprintf("%s is outside valid coordinates", describe(l.Label))
	}
	return l.State.messages(l.Label, !l.HasValue, failure)
}

func (l Location) equal(v Value) bool {
	o, ok := v.(Location)
	return ok &&
		l.Name == o.Name &&
		l.Label == o.Label &&
		sameFloat(l.Latitude, o.Latitude) &&
		sameFloat(l.Longitude, o.Longitude) &&
		l.HasValue == o.HasValue &&
		l.State.equal(o.State)
}

// Attachment references a document chosen through an external picker.
type Attachment struct {
	Name     string
	Label    string
	Filename string
	MIMEType string
	Size     int64
	State    State
}

func (Attachment) sealed()           {}
func (Attachment) Kind() Kind        { return KindAttachment }
func (a Attachment) Key() string     { return keyOf(a.Name) }
func (a Attachment) Title() string   { return a.Label }
func (a Attachment) Display() string { return a.Filename }

func (a Attachment) Encode() (Pair, bool) {
	return encodeKey(a.Name, a.Filename)
}

func (a Attachment) Validate() []string {
	return a.State.messages(a.Label, strings.TrimSpace(a.Filename) == "")
}

func (a Attachment) equal(v Value) bool {
	o, ok := v.(Attachment)
	return ok &&
		a.Name == o.Name &&
		a.Label == o.Label &&
		a.Filename == o.Filename &&
		a.MIMEType == o.MIMEType &&
		a.Size == o.Size &&
		a.State.equal(o.State)
}

// Image references a picked image by Ref (asset id, path or URL).
type Image struct {
	Name  string
	Label string
	Ref   string
	State State
}

func (Image) sealed()           {}
func (Image) Kind() Kind        { return KindImage }
func (i Image) Key() string     { return keyOf(i.Name) }
func (i Image) Title() string   { return i.Label }
func (i Image) Display() string { return i.Ref }

func (i Image) Encode() (Pair, bool) {
	return encodeKey(i.Name, i.Ref)
}

func (i Image) Validate() []string {
	return i.State.messages(i.Label, strings.TrimSpace(i.Ref) == "")
}

func (i Image) equal(v Value) bool {
	o, ok := v.(Image)
	return ok && i.Name == o.Name && i.Label == o.Label && i.Ref == o.Ref && i.State.equal(o.State)
}
