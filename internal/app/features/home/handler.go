package home

import (
	"errors"
	"net/http"

	"github.com/dalemusser/accidentdash/internal/analytics/aggregate"
	"github.com/dalemusser/accidentdash/internal/analytics/chart"
	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
	uierrors "github.com/dalemusser/accidentdash/internal/app/features/errors"
	"github.com/dalemusser/accidentdash/internal/app/system/timeouts"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"github.com/dalemusser/accidentdash/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Files names the datasets the landing page summarises.
type Files struct {
	Accidents string // Accident_Location and Road_Type per accident
	Districts string // DISTRICTNAME and TotalAccidents per district
}

// Handler holds dependencies needed to serve the home page.
type Handler struct {
	Loader *dataset.Loader
	Files  Files
	ErrLog *uierrors.ErrorLogger
	Log    *zap.Logger
	Render viewdata.RenderFunc
}

func NewHandler(loader *dataset.Loader, files Files, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Loader: loader,
		Files:  files,
		ErrLog: errLog,
		Log:    logger,
		Render: viewdata.Render,
	}
}

type homeData struct {
	viewdata.BaseVM
	Charts []viewdata.ChartVM
}

/*─────────────────────────────────────────────────────────────────────────────*
| GET / – accident charts                                                     |
*─────────────────────────────────────────────────────────────────────────────*/

func (h *Handler) ServeRoot(w http.ResponseWriter, r *http.Request) {
	accidents, err := h.Loader.Load(h.Files.Accidents)
	if err != nil {
		h.fail(w, r, "load accidents dataset", err)
		return
	}
	districts, err := h.Loader.Load(h.Files.Districts)
	if err != nil {
		h.fail(w, r, "load districts dataset", err)
		return
	}

	locations, err := aggregate.CountByCategory(accidents, models.ColAccidentLocation)
	if err != nil {
		h.fail(w, r, "count accident locations", err)
		return
	}
	roads, err := aggregate.CountByCategory(accidents, models.ColRoadType)
	if err != nil {
		h.fail(w, r, "count road types", err)
		return
	}
	totals, err := aggregate.TotalsByDistrict(districts)
	if err != nil {
		h.fail(w, r, "total accidents by district", err)
		return
	}

	charts := []viewdata.ChartVM{
		{Title: "Accident Location Distribution", Alt: "Donut chart of accidents by location"},
		{Title: "Total Accidents per District", Alt: "Line chart of total accidents per district"},
		{Title: "Accidents by Road Type", Alt: "Bar chart of accidents by road type"},
	}
	renders := []func() ([]byte, error){
		func() ([]byte, error) { return chart.Pie(charts[0].Title, locations) },
		func() ([]byte, error) {
			return chart.Line(chart.Labels{Title: charts[1].Title, X: "District", Y: "Total Accidents"}, totals)
		},
		func() ([]byte, error) {
			return chart.Bar(chart.Labels{Title: charts[2].Title, X: "Road Type", Y: "Number of Accidents"}, roads)
		},
	}

	// Each chart draws on its own canvas, so they can render side by side.
	var g errgroup.Group
	for i, render := range renders {
		g.Go(func() error {
			png, err := render()
			if err != nil {
				return err
			}
			charts[i].Src = chart.DataURI(png)
			return nil
		})
	}
	ctx, cancel := timeouts.WithTimeout(r.Context(), timeouts.Render(), h.Log, "render charts")
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- g.Wait() }()
	select {
	case err := <-done:
		if err != nil {
			h.fail(w, r, "render charts", err)
			return
		}
	case <-ctx.Done():
		h.fail(w, r, "render charts", ctx.Err())
		return
	}

	h.Render(w, r, "home", homeData{
		BaseVM: viewdata.NewBaseVM(r, "Accident Overview", "/"),
		Charts: charts,
	})
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, step string, err error) {
	h.ErrLog.LogServerError(w, r, step, err, userMessage(err), "/")
}

// userMessage maps analytics failures to something a user can act on.
func userMessage(err error) string {
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		return "The accident dataset is not available."
	case errors.Is(err, dataset.ErrParse), errors.Is(err, dataset.ErrMissingColumn):
		return "The accident dataset could not be read."
	case errors.Is(err, chart.ErrNoData):
		return "There is no data to chart."
	default:
		return "The charts could not be drawn."
	}
}
