package plot

import (
	"errors"
	"net/http"

	"github.com/dalemusser/accidentdash/internal/analytics/chart"
	"github.com/dalemusser/accidentdash/internal/analytics/cluster"
	"github.com/dalemusser/accidentdash/internal/analytics/dataset"
	uierrors "github.com/dalemusser/accidentdash/internal/app/features/errors"
	"github.com/dalemusser/accidentdash/internal/app/system/viewdata"
	"github.com/dalemusser/accidentdash/internal/domain/models"
	"go.uber.org/zap"
)

// Handler serves the cluster analysis page.
type Handler struct {
	Loader  *dataset.Loader
	File    string
	Options cluster.Options
	ErrLog  *uierrors.ErrorLogger
	Log     *zap.Logger
	Render  viewdata.RenderFunc
}

func NewHandler(loader *dataset.Loader, file string, opts cluster.Options, errLog *uierrors.ErrorLogger, logger *zap.Logger) *Handler {
	return &Handler{
		Loader:  loader,
		File:    file,
		Options: opts,
		ErrLog:  errLog,
		Log:     logger,
		Render:  viewdata.Render,
	}
}

type clusterSize struct {
	ID   int
	Size int
}

type plotData struct {
	viewdata.BaseVM
	Chart    viewdata.ChartVM
	K        int
	Rows     int
	Clusters []clusterSize
}

// ServePlot handles GET /plot: label-encode the black-spot dataset,
// cluster it, and chart the cluster sizes.
func (h *Handler) ServePlot(w http.ResponseWriter, r *http.Request) {
	t, err := h.Loader.Load(h.File)
	if err != nil {
		h.fail(w, r, "load cluster dataset", err)
		return
	}
	points, err := cluster.EncodeTable(t, models.ClusterColumns)
	if err != nil {
		h.fail(w, r, "encode cluster dataset", err)
		return
	}
	assign, err := cluster.Assign(points, h.Options)
	if err != nil {
		h.fail(w, r, "cluster", err)
		return
	}
	sizes := cluster.Histogram(assign, h.Options.K)

	const title = "Distribution of Clusters"
	png, err := chart.Histogram(chart.Labels{Title: title, X: "Cluster", Y: "Number of Data Points"}, sizes)
	if err != nil {
		h.fail(w, r, "render cluster chart", err)
		return
	}

	data := plotData{
		BaseVM: viewdata.NewBaseVM(r, "Cluster Analysis", "/"),
		Chart: viewdata.ChartVM{
			Title: title,
			Alt:   "Bar chart of records per cluster",
			Src:   chart.DataURI(png),
		},
		K:    h.Options.K,
		Rows: t.Len(),
	}
	for id, n := range sizes {
		data.Clusters = append(data.Clusters, clusterSize{ID: id, Size: n})
	}

	h.Log.Debug("clustered dataset",
		zap.Int("rows", t.Len()),
		zap.Int("k", h.Options.K),
		zap.Ints("sizes", sizes))
	h.Render(w, r, "plot", data)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, step string, err error) {
	msg := "The cluster chart could not be drawn."
	switch {
	case errors.Is(err, dataset.ErrNotFound):
		msg = "The cluster dataset is not available."
	case errors.Is(err, dataset.ErrParse), errors.Is(err, dataset.ErrMissingColumn):
		msg = "The cluster dataset could not be read."
	case errors.Is(err, cluster.ErrInvalidK), errors.Is(err, cluster.ErrShape):
		msg = "The dataset has too few records for the configured number of clusters."
	}
	h.ErrLog.LogServerError(w, r, step, err, msg, "/")
}
