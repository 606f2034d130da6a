package interp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"
)

const (
	ExampleInterpolateFile = `[Interpolate]

#######################
# Required Parameters #
#######################

# The point dataset to interpolate. One raster is written per attribute
# field of the dataset. For Postgres input this is the table name instead
# of a file path.
Input = path/to/points.shp

#######################
# Optional Parameters #
#######################

# Directory which output rasters will be written to. Default is the
# current directory.
# Output = path/to/output/dir

# The exponent of the inverse distance weights. Larger values give the
# nearest samples more influence. Default is 2.
# Power = 2

# Distance past which samples stop contributing to a cell. Cells outside
# every sample's radius are written as NoDataValue. Set it to 0 to let
# every sample contribute everywhere. Default is 1.
# Radius = 1

# Spacing of the output grid in coordinate units. Default is 0.01.
# CellSize = 0.01

# The format rasters are written in. It must be one of
# [ GeoTIFF | ASCII | PNG ]. Default is GeoTIFF.
# OutputFormat = GeoTIFF

# Value written to cells that no sample supports. When it is set the
# rasters record it, so GIS tools will mask those cells. When it is not
# set, unsupported cells are written as 0.
# NoDataValue = -9999

# Deflates GeoTIFF pixel data.
# Compress = true

# Excludes an attribute field from interpolation. May be given any
# number of times.
# Exclude = Station
# Exclude = Id

# Output rasters are named after their field. For example, the field
# "Rain" is written to field_Rain.TIF. You can add leading and ending
# text to these file names using the following two variables (e.g.
# pre_field_Rain_app.TIF).
# PrependName = pre_
# AppendName  = _app

# Output files which are useful for profiling and debugging. Generally,
# there isn't a reason to use these unless something goes wrong.
# ProfileFile = prof.out
# LogFile = log.out

[Input]

#######################
# Optional Parameters #
#######################

# The format of the input. Normally it is inferred from the file
# extension. It must be one of [ Shapefile | CSV | Table | Postgres ].
# Format = Shapefile

# Names of the coordinate columns. When they are not set, conventional
# names like Long, Lat, and X, Y are searched for, and shapefile
# coordinates come from the geometry itself.
# XColumn = easting
# YColumn = northing

# Postgres input reads every column of a table. Input in the
# [Interpolate] section names the table, and ConnInfo is the usual
# connection string.
# ConnInfo = host=localhost dbname=gis sslmode=disable

# Plain text tables carry no column names, so the coordinate columns and
# every wanted attribute column are picked by 0-based index, with Columns
# naming them in order.
# XColumnIndex = 0
# YColumnIndex = 1
# ColumnIndexes = 2
# ColumnIndexes = 3
# Columns = Rain
# Columns = Temp`
	ExampleTransectFile = `[Transect "my_profile"]
# A transect samples interpolated values along the line between two
# points and plots the resulting profile. Any number of transects can be
# given in one file, each in its own section. A transect config file is
# paired with an Interpolate config file naming the dataset.

# Endpoints of the line:
X0 = 12.5
Y0 = 42.1
X1 = 13.5
Y1 = 42.9

# The attribute field being sampled.
Field = Rain

#######################
# Optional Parameters #
#######################

# The number of evenly spaced points sampled along the line. Default
# is 100.
# Points = 100

# The file the plot is written to. Default is the section name with a
# .png extension.
# PlotFile = path/to/my_profile.png`
)

type SharedConfig struct {
	// Required
	Input string
	// Optional
	Output               string
	LogFile, ProfileFile string
}

func (con *SharedConfig) ValidInput() bool {
	return con.Input != ""
}
func (con *SharedConfig) ValidOutput() bool {
	return con.Output != ""
}
func (con *SharedConfig) ValidLogFile() bool {
	return con.LogFile != ""
}
func (con *SharedConfig) ValidProfileFile() bool {
	return con.ProfileFile != ""
}

type InterpolateConfig struct {
	SharedConfig

	// Optional
	Power, Radius, CellSize float64
	OutputFormat            string
	NoDataValue             string
	Exclude                 []string
	Compress                bool
	PrependName, AppendName string
}

type InputConfig struct {
	// Optional
	Format           string
	XColumn, YColumn string

	// Postgres input
	ConnInfo string

	// Plain table input
	XColumnIndex, YColumnIndex int
	Columns                    []string
	ColumnIndexes              []int
}

type InterpolateWrapper struct {
	Interpolate InterpolateConfig
	Input       InputConfig
}

func DefaultInterpolateWrapper() *InterpolateWrapper {
	con := InterpolateConfig{}
	con.Output = "."
	con.Power = 2
	con.Radius = 1
	con.CellSize = 0.01
	con.OutputFormat = "GeoTIFF"
	return &InterpolateWrapper{Interpolate: con}
}

var (
	outputFormats = []string{"GeoTIFF", "ASCII", "PNG"}
	inputFormats  = []string{"Shapefile", "CSV", "Table", "Postgres"}
)

func (con *InterpolateConfig) ValidPower() bool {
	return con.Power > 0
}
func (con *InterpolateConfig) ValidCellSize() bool {
	return con.CellSize > 0
}
func (con *InterpolateConfig) ValidOutputFormat() bool {
	for _, format := range outputFormats {
		if strings.EqualFold(format, con.OutputFormat) {
			return true
		}
	}
	return false
}
func (con *InterpolateConfig) ValidNoDataValue() bool {
	if con.NoDataValue == "" {
		return true
	}
	_, err := strconv.ParseFloat(con.NoDataValue, 64)
	return err == nil
}

// NoData returns the configured nodata value, or nil when none is set.
func (con *InterpolateConfig) NoData() *float64 {
	if con.NoDataValue == "" {
		return nil
	}
	v, err := strconv.ParseFloat(con.NoDataValue, 64)
	if err != nil {
		return nil
	}
	return &v
}

func (con *InputConfig) ValidFormat() bool {
	if con.Format == "" {
		return true
	}
	for _, format := range inputFormats {
		if strings.EqualFold(format, con.Format) {
			return true
		}
	}
	return false
}

type TransectConfig struct {
	// Required
	X0, Y0, X1, Y1 float64
	Field          string

	// Optional
	Points   int
	PlotFile string

	// Optional, "undocumented"
	Name string
}

func (con *TransectConfig) CheckInit(name string) error {
	if con.Field == "" {
		return fmt.Errorf("Need to specify a Field for Transect '%s'.", name)
	}
	if con.X0 == con.X1 && con.Y0 == con.Y1 {
		return fmt.Errorf(
			"The endpoints of Transect '%s' are the same point.", name,
		)
	}

	if con.Points == 0 {
		con.Points = 100
	}
	if con.Points < 2 {
		return fmt.Errorf(
			"Transect '%s' needs at least 2 points, but has %d.",
			name, con.Points,
		)
	}

	con.Name = name
	if con.PlotFile == "" {
		con.PlotFile = name + ".png"
	}

	return nil
}

type TransectWrapper struct {
	Transect map[string]*TransectConfig
}

// ReadTransectConfig reads every transect section of a config file, in
// section name order.
func ReadTransectConfig(fname string) ([]TransectConfig, error) {
	tw := TransectWrapper{}
	if err := gcfg.ReadFileInto(&tw, fname); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(tw.Transect))
	for name := range tw.Transect {
		names = append(names, name)
	}
	sort.Strings(names)

	transects := make([]TransectConfig, 0, len(names))
	for _, name := range names {
		tc := tw.Transect[name]
		if err := tc.CheckInit(name); err != nil {
			return nil, err
		}
		transects = append(transects, *tc)
	}

	return transects, nil
}
