package server

import (
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/labstack/echo/v4"

	"surveymap/internal/config"
	"surveymap/internal/marker"
	"surveymap/internal/scene"
	"surveymap/internal/session"
)

// Handler serves one loaded marker set. Each request builds its own
// session, so handlers never share mutable state.
type Handler struct {
	markers []marker.Marker
	types   []string
	cfg     config.Config
	logger  *log.Logger
}

// NewHandler returns a handler over a copy of markers.
func NewHandler(markers []marker.Marker, cfg config.Config, logger *log.Logger) *Handler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	store := marker.NewStore(markers)
	return &Handler{markers: store.Markers(), types: store.Types(), cfg: cfg, logger: logger}
}

type healthResponse struct {
	Status  string `json:"status"`
	Markers int    `json:"markers"`
	Summary string `json:"summary"`
}

// HandleHealth reports liveness and the loaded marker count.
func (h *Handler) HandleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, healthResponse{
		Status:  "ok",
		Markers: len(h.markers),
		Summary: humanize.Comma(int64(len(h.markers))) + " markers in " + strconv.Itoa(len(h.types)) + " types",
	})
}

// HandleMarkers returns every loaded marker.
func (h *Handler) HandleMarkers(c echo.Context) error {
	return c.JSON(http.StatusOK, h.markers)
}

type typesResponse struct {
	Types []string `json:"types"`
}

// HandleTypes returns the sorted marker types.
func (h *Handler) HandleTypes(c echo.Context) error {
	return c.JSON(http.StatusOK, typesResponse{Types: h.types})
}

// HandleMapSVG renders the filtered markers as an SVG document.
//
// Query: min and max set the depth range (either may be omitted to keep the
// configured bound); each type parameter restricts the shown types.
func (h *Handler) HandleMapSVG(c echo.Context) error {
	sess, err := session.New(h.markers, h.cfg, h.logger)
	if err != nil {
		return NewInternalError("failed to build session", err)
	}

	lo, hi := sess.Depth.Value()
	if lo, err = floatParam(c, "min", lo); err != nil {
		return err
	}
	if hi, err = floatParam(c, "max", hi); err != nil {
		return err
	}
	if err := sess.SetDepth(lo, hi); err != nil {
		return depthError(err)
	}
	if types := c.QueryParams()["type"]; len(types) > 0 {
		sess.ShowOnly(types...)
	}

	svg := scene.RenderSVG(sess.Scene, sess.Mapper,
		scene.WithTicks(10),
		scene.WithoutHidden(),
		scene.WithCaption("depth "+sess.RangeLabel()),
	)
	return c.Blob(http.StatusOK, "image/svg+xml", svg)
}

func floatParam(c echo.Context, name string, def float64) (float64, error) {
	s := c.QueryParam(name)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, NewValidationError(name, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, NewValidationError(name, fmt.Errorf("%q is not a finite number", s))
	}
	return v, nil
}
