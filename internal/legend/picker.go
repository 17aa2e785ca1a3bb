package legend

import "sort"

// TypePicker chooses the marker type for the next add or update: either an
// existing type from the list or a new one typed as free text. Non-empty
// free text disables the list, so exactly one of them is the source.
type TypePicker struct {
	options  []string
	selected int
	text     string
	disabled bool
}

// NewTypePicker returns a picker over the given existing types.
func NewTypePicker(types []string) *TypePicker {
	p := &TypePicker{}
	p.SetOptions(types)
	return p
}

// SetOptions replaces the option list, keeping the current selection when
// it is still present.
func (p *TypePicker) SetOptions(types []string) {
	prev := p.Selected()
	p.options = append([]string(nil), types...)
	sort.Strings(p.options)
	p.selected = 0
	for i, o := range p.options {
		if o == prev {
			p.selected = i
		}
	}
}

// Options returns the existing types offered by the list.
func (p *TypePicker) Options() []string { return append([]string(nil), p.options...) }

// Selected returns the list's current option, or "" when there are none.
func (p *TypePicker) Selected() string {
	if p.selected < 0 || p.selected >= len(p.options) {
		return ""
	}
	return p.options[p.selected]
}

// Choose selects an existing option and mirrors it into the free text.
// It is ignored while the list is disabled or when t is not an option.
func (p *TypePicker) Choose(t string) bool {
	if p.ListDisabled() {
		return false
	}
	for i, o := range p.options {
		if o == t {
			p.selected = i
			p.text = t
			return true
		}
	}
	return false
}

// Cycle moves the list selection by delta (wrapping) and mirrors it.
func (p *TypePicker) Cycle(delta int) bool {
	if len(p.options) == 0 {
		return false
	}
	n := len(p.options)
	next := ((p.selected+delta)%n + n) % n
	return p.Choose(p.options[next])
}

// Input sets the free text as typed by the user. The list is disabled while
// the typed text is non-empty and re-enabled when it is cleared.
func (p *TypePicker) Input(text string) {
	p.text = text
	p.disabled = text != ""
}

// Text returns the free text.
func (p *TypePicker) Text() string { return p.text }

// ListDisabled reports whether typed free text currently overrides the list.
// Text mirrored from the list by Choose does not disable it.
func (p *TypePicker) ListDisabled() bool { return p.disabled }

// Reset clears the free text and re-enables the list.
func (p *TypePicker) Reset() {
	p.text = ""
	p.disabled = false
}

// Value is the type the next edit or add should use.
func (p *TypePicker) Value() string {
	if p.text != "" {
		return p.text
	}
	return p.Selected()
}

// IsNew reports whether Value names a type not in the list.
func (p *TypePicker) IsNew() bool {
	v := p.Value()
	if v == "" {
		return false
	}
	for _, o := range p.options {
		if o == v {
			return false
		}
	}
	return true
}
