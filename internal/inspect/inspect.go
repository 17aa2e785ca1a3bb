// Package inspect maps a selected scene node back to its marker and fills
// the edit form from it.
package inspect

import (
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"surveymap/internal/marker"
	"surveymap/internal/scene"
)

// Submit labels for the form's two modes.
const (
	SubmitAddText  = "Add Marker"
	SubmitEditText = "Update Marker"
)

// Form is the edit form surface. This package only writes it; reading and
// submitting it belong to the host.
type Form struct {
	Name        string
	Distance    string
	Depth       string
	Heading     string
	MarkerType  string
	MarkerID    string
	SubmitLabel string
}

// Editing reports whether the form was populated from an existing marker.
func (f Form) Editing() bool { return f.SubmitLabel == SubmitEditText }

// Finder resolves markers for the inspector.
type Finder interface {
	FindByName(name string) (marker.Marker, error)
	FindByID(id string) (marker.Marker, error)
}

// Inspector handles selection events.
type Inspector struct {
	markers Finder
	form    *Form
	logger  *log.Logger
}

// New returns an inspector writing into form. The form starts in add mode.
func New(markers Finder, form *Form, logger *log.Logger) *Inspector {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	i := &Inspector{markers: markers, form: form, logger: logger}
	i.NewMarker()
	return i
}

// Form returns the form being written.
func (i *Inspector) Form() *Form { return i.form }

// OnMarkerSelected populates the form from the node's marker. Nodes carrying
// a marker id resolve by id; otherwise the label is looked up by name. An
// unresolvable node leaves the form untouched and returns false.
func (i *Inspector) OnMarkerSelected(n scene.Node) bool {
	m, err := i.resolve(n)
	if err != nil {
		i.logger.Debug("selection not resolved", "label", n.Label, "id", n.MarkerID, "err", err)
		return false
	}
	*i.form = Form{
		Name:        m.Name,
		Distance:    marker.FormatOptional(m.Distance),
		Depth:       strconv.FormatFloat(m.Depth, 'f', -1, 64),
		Heading:     marker.FormatOptional(m.Bearing),
		MarkerType:  m.Type,
		MarkerID:    m.ID,
		SubmitLabel: SubmitEditText,
	}
	i.logger.Debug("marker selected", "name", m.Name, "id", m.ID)
	return true
}

func (i *Inspector) resolve(n scene.Node) (marker.Marker, error) {
	if n.MarkerID != "" {
		if m, err := i.markers.FindByID(n.MarkerID); err == nil {
			return m, nil
		}
	}
	return i.markers.FindByName(n.Label)
}

// NewMarker resets the form to a blank add form.
func (i *Inspector) NewMarker() {
	*i.form = Form{SubmitLabel: SubmitAddText}
}

// SetType writes the type chosen in the type picker into the form.
func (i *Inspector) SetType(t string) { i.form.MarkerType = t }
