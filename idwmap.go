/*package idwmap rasterizes scattered point samples onto regular grids
with inverse distance weighted interpolation. A Manager wraps one
dataset and renders one surface per attribute field, splitting the
cells of each surface across a pool of workers.
*/
package idwmap

import (
	"fmt"
	"log"
	"runtime"
	"strings"

	"github.com/ctessum/sparse"

	"github.com/phil-mansfield/idwmap/grid"
	"github.com/phil-mansfield/idwmap/kernel"
	"github.com/phil-mansfield/idwmap/points"
)

type Manager struct {
	ds *points.Dataset
	g  *grid.Grid

	fields []string

	// weighting parameters
	power, radius float64
	noData        float64

	// io related things
	log bool
	ms  runtime.MemStats

	workers int
}

// NewManager builds a Manager around one dataset. The grid is bounded
// immediately, so the fatal configuration problems surface here rather
// than mid run.
func NewManager(ds *points.Dataset, cfg Config, logFlag bool) (*Manager, error) {
	man := new(Manager)
	man.log = logFlag

	if ds.Len() == 0 {
		return nil, fmt.Errorf("The dataset holds no samples.")
	}

	g, err := grid.Bound(ds.X, ds.Y, cfg.CellSize)
	if err != nil {
		return nil, err
	}

	man.ds = ds
	man.g = g
	man.power, man.radius = cfg.Power, cfg.Radius
	man.noData = cfg.NoData

	for _, field := range ds.Fields() {
		if !excluded(field, cfg.Exclude) {
			man.fields = append(man.fields, field)
		}
	}

	man.workers = cfg.Workers
	if man.workers <= 0 {
		man.workers = runtime.NumCPU()
	}
	runtime.GOMAXPROCS(man.workers)

	if man.log {
		log.Printf(
			"Grid size: %d x %d. Number of workers: %d",
			g.Nx, g.Ny, man.workers,
		)
		runtime.ReadMemStats(&man.ms)
		log.Printf(
			"Alloc: %5d MB, Sys: %5d MB",
			man.ms.Alloc>>20, man.ms.Sys>>20,
		)
	}

	return man, nil
}

// Log turns progress logging on or off.
func (man *Manager) Log(flag bool) { man.log = flag }

// Grid returns the grid that surfaces are laid out on.
func (man *Manager) Grid() *grid.Grid { return man.g }

// Fields returns the attribute fields the Manager will try to
// interpolate, in dataset order.
func (man *Manager) Fields() []string { return man.fields }

// Interpolate renders a surface for every field. A field whose values
// cannot be coerced to numbers is logged and skipped, so one bad column
// does not cost the others their surfaces.
func (man *Manager) Interpolate() *Result {
	res := &Result{
		Grid:     man.g,
		SR:       man.ds.SR,
		Surfaces: map[string]*Surface{},
	}

	for _, field := range man.fields {
		vals, err := man.ds.FieldValues(field)
		if err != nil {
			log.Printf("Skipping field: %s", err.Error())
			continue
		}

		res.Surfaces[field] = man.interpolateField(field, vals)
		res.Fields = append(res.Fields, field)
	}

	if man.log {
		log.Printf(
			"Interpolated %d/%d fields.", len(res.Fields), len(man.fields),
		)
		runtime.ReadMemStats(&man.ms)
		log.Printf(
			"Alloc: %5d MB, Sys: %5d MB",
			man.ms.Alloc>>20, man.ms.Sys>>20,
		)
	}

	return res
}

func (man *Manager) interpolateField(field string, vals []float64) *Surface {
	if man.log {
		log.Printf("Interpolating field %s", field)
	}

	data := sparse.ZerosDense(man.g.Ny, man.g.Nx)
	if man.noData != 0 {
		for i := range data.Elements {
			data.Elements[i] = man.noData
		}
	}

	intr := kernel.NewInverseDistance(
		man.ds.X, man.ds.Y, vals, man.power, man.radius,
	)

	// Workers share the surface buffer and write disjoint cell strides,
	// so there is no merge step.
	out := make(chan int, man.workers)
	for id := 0; id < man.workers-1; id++ {
		go man.chanInterpolate(id, intr, data.Elements, out)
	}
	id := man.workers - 1
	man.chanInterpolate(id, intr, data.Elements, out)

	for i := 0; i < man.workers; i++ {
		<-out
	}

	return &Surface{Field: field, Data: data}
}

func (man *Manager) chanInterpolate(
	id int, intr kernel.Interpolator, buf []float64, out chan<- int,
) {
	intr.Interpolate(buf, man.g, id, man.g.Len(), man.workers)
	out <- id
}

func excluded(name string, exclude []string) bool {
	for _, ex := range exclude {
		if strings.EqualFold(name, ex) {
			return true
		}
	}
	return false
}
