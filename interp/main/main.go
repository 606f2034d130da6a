package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strings"

	"gopkg.in/gcfg.v1"

	plt "github.com/phil-mansfield/pyplot"

	"github.com/phil-mansfield/idwmap"
	"github.com/phil-mansfield/idwmap/interp"
	"github.com/phil-mansfield/idwmap/points"
)

// FileGroup contains utility files for logging and writing profiles to.
type FileGroup struct {
	log, prof *os.File
}

// Close closes the files inside FileGroup.
func (fg *FileGroup) Close() {
	if fg.log != nil {
		err := fg.log.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	if fg.prof != nil {
		pprof.StopCPUProfile()
		err := fg.prof.Close()
		if err != nil {
			log.Fatal(err.Error())
		}
	}
}

var threads int

func main() {
	// The main function manages input sanitization and calls the
	// secondary main functions for each mode. The code tries to fail
	// gracefully if the user provides incorrect input.

	var (
		interpolate, fields, bounds, transect string
		exampleConfig                         string
	)
	vars := map[string]*string{
		"Interpolate":   &interpolate,
		"Fields":        &fields,
		"Bounds":        &bounds,
		"Transect":      &transect,
		"ExampleConfig": &exampleConfig,
	}

	flag.IntVar(
		&threads, "Threads", runtime.NumCPU(),
		"Number of threads used. Default is the number of logical cores.",
	)
	flag.StringVar(
		&interpolate, "Interpolate", "",
		"Configuration file for [Interpolate] mode. One raster is written "+
			"per attribute field of the input dataset.",
	)
	flag.StringVar(
		&fields, "Fields", "",
		"Configuration file for [Interpolate] mode. Prints the attribute "+
			"fields that would be interpolated without interpolating them.",
	)
	flag.StringVar(
		&bounds, "Bounds", "",
		"Configuration file for [Interpolate] mode. Prints the extent and "+
			"dimensions of the output grid without interpolating anything.",
	)
	flag.StringVar(
		&transect, "Transect", "",
		"Configuration file for [Interpolate] mode, along with at least "+
			"one Transect file giving the lines to sample.",
	)
	flag.StringVar(
		&exampleConfig, "ExampleConfig", "",
		"Prints an example configuration file of the specified type to "+
			"stdout. Accepted arguments are 'Interpolate' and 'Transect'.",
	)

	flag.Parse()

	// Figure out the mode and fail with a descriptive error if the user
	// gave incorrect flags.
	modeName, err := getModeName(vars)
	if err != nil {
		log.Fatal(err.Error())
	}

	switch modeName {
	case "Interpolate", "Fields", "Bounds", "Transect":
		wrap := interp.DefaultInterpolateWrapper()
		err := gcfg.ReadFileInto(wrap, *vars[modeName])
		if err != nil {
			log.Fatal(err.Error())
		}
		con := &wrap.Interpolate

		if !con.ValidInput() {
			log.Fatal("Invalid/non-existent 'Input' value.")
		} else if modeName == "Interpolate" && !con.ValidOutput() {
			log.Fatal("Invalid/non-existent 'Output' value.")
		} else if !con.ValidPower() {
			log.Fatal("Invalid 'Power' value.")
		} else if !con.ValidCellSize() {
			log.Fatal("Invalid 'CellSize' value.")
		} else if !con.ValidOutputFormat() {
			log.Fatal("Invalid 'OutputFormat' value.")
		} else if !con.ValidNoDataValue() {
			log.Fatal("Invalid 'NoDataValue' value.")
		} else if !wrap.Input.ValidFormat() {
			log.Fatal("Invalid 'Format' value.")
		}

		switch modeName {
		case "Interpolate":
			interpolateMain(con, &wrap.Input)
		case "Fields":
			fieldsMain(con, &wrap.Input)
		case "Bounds":
			boundsMain(con, &wrap.Input)
		case "Transect":
			transectFiles := flag.Args()
			if len(transectFiles) < 1 {
				log.Fatal("Must supply at least one transect file.")
			}
			transectMain(con, &wrap.Input, transectFiles)
		}

	case "ExampleConfig":
		switch exampleConfig {
		case "Interpolate":
			fmt.Println(interp.ExampleInterpolateFile)
		case "Transect":
			fmt.Println(interp.ExampleTransectFile)
		default:
			log.Fatal(
				"Unrecognized 'ExampleConfig' argument. Only recognized " +
					"arguments are 'Interpolate' and 'Transect'.",
			)
		}
	default:
		panic("Impossible")
	}
}

// getModeName returns the name of the mode and fails with a descriptive
// error if the user provided less or more than one mode flag.
func getModeName(vars map[string]*string) (string, error) {
	setNames := []string{}

	for name, varPtr := range vars {
		if *varPtr != "" {
			setNames = append(setNames, name)
		}
	}

	if len(setNames) == 0 {
		return "", fmt.Errorf("No flags have been set.")
	}

	if len(setNames) > 1 {
		return "", fmt.Errorf(
			"The following flags were set: %s, but idwmap_cmd only "+
				"accepts one flag at a time.",
			strings.Join(setNames, ", "),
		)
	}

	return setNames[0], nil
}

// setupIO opens the log and profile files a config asks for and returns
// the FileGroup which closes them.
func setupIO(con *interp.InterpolateConfig) *FileGroup {
	var err error
	fg := new(FileGroup)

	if con.ValidLogFile() {
		fg.log, err = os.Create(con.LogFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		log.SetOutput(fg.log)
	}

	if con.ValidProfileFile() {
		fg.prof, err = os.Create(con.ProfileFile)
		if err != nil {
			log.Fatal(err.Error())
		}
		err = pprof.StartCPUProfile(fg.prof)
		if err != nil {
			log.Fatal(err.Error())
		}
	}

	return fg
}

func readDataset(
	con *interp.InterpolateConfig, in *interp.InputConfig,
) *points.Dataset {
	src, err := interp.NewSource(con, in)
	if err != nil {
		log.Fatal(err.Error())
	}

	ds, err := src.Read()
	if err != nil {
		log.Fatal(err.Error())
	}
	return ds
}

// interpolateMain renders a surface for every attribute field of the
// dataset and writes each one out as a raster.
func interpolateMain(con *interp.InterpolateConfig, in *interp.InputConfig) {
	fg := setupIO(con)
	defer fg.Close()

	ds := readDataset(con, in)

	cfg := con.Config()
	cfg.Workers = threads

	man, err := idwmap.NewManager(ds, cfg, true)
	if err != nil {
		log.Fatal(err.Error())
	}

	res := man.Interpolate()
	if err := interp.WriteRasters(res, con); err != nil {
		log.Fatal(err.Error())
	}
}

// fieldsMain prints the attribute fields the dataset would interpolate,
// marking the ones that cannot be coerced to numbers.
func fieldsMain(con *interp.InterpolateConfig, in *interp.InputConfig) {
	fg := setupIO(con)
	defer fg.Close()

	ds := readDataset(con, in)

	man, err := idwmap.NewManager(ds, con.Config(), false)
	if err != nil {
		log.Fatal(err.Error())
	}

	for _, field := range man.Fields() {
		if _, err := ds.FieldValues(field); err != nil {
			fmt.Printf("%s (not numeric)\n", field)
		} else {
			fmt.Println(field)
		}
	}
}

// boundsMain prints the extent and dimensions of the grid a run would
// interpolate onto.
func boundsMain(con *interp.InterpolateConfig, in *interp.InputConfig) {
	fg := setupIO(con)
	defer fg.Close()

	ds := readDataset(con, in)

	man, err := idwmap.NewManager(ds, con.Config(), false)
	if err != nil {
		log.Fatal(err.Error())
	}

	g := man.Grid()
	fmt.Printf("Samples: %d\n", ds.Len())
	fmt.Printf("Extent: [%g, %g] x [%g, %g]\n", g.XMin, g.XMax, g.YMin, g.YMax)
	fmt.Printf("Grid: %d x %d cells of size %g\n", g.Nx, g.Ny, g.CellSize)
	if ds.SR != "" {
		fmt.Printf("Spatial reference: %s\n", ds.SR)
	}
}

// transectMain plots the interpolated profile along every transect of
// the given transect files.
func transectMain(
	con *interp.InterpolateConfig, in *interp.InputConfig, files []string,
) {
	fg := setupIO(con)
	defer fg.Close()

	ds := readDataset(con, in)
	cfg := con.Config()

	for _, file := range files {
		transects, err := interp.ReadTransectConfig(file)
		if err != nil {
			log.Fatal(err.Error())
		}

		for i := range transects {
			tc := &transects[i]
			dist, vals, err := interp.Transect(ds, cfg, tc)
			if err != nil {
				log.Fatal(err.Error())
			}
			plotTransect(tc, dist, vals)
		}
	}

	plt.Execute()
}

func plotTransect(tc *interp.TransectConfig, dist, vals []float64) {
	plt.Figure(plt.FigSize(8, 8))
	plt.Plot(dist, vals, "k", plt.LW(2))
	plt.Title(fmt.Sprintf(
		"%s from (%g, %g) to (%g, %g)",
		tc.Field, tc.X0, tc.Y0, tc.X1, tc.Y1,
	))
	plt.XLabel("Distance", plt.FontSize(16))
	plt.YLabel(tc.Field, plt.FontSize(16))
	plt.Grid(plt.Axis("y"))
	plt.SaveFig(tc.PlotFile)
}
