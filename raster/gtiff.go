package raster

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io/ioutil"
	"math"
	"strconv"
	"strings"

	"github.com/phil-mansfield/idwmap/grid"
)

// TIFF field types.
const (
	typeASCII  = 2
	typeShort  = 3
	typeLong   = 4
	typeDouble = 12
)

// GeoTIFF writes surfaces as single band 32 bit float GeoTIFF files with
// the grid's georeferencing in the standard ModelPixelScale and
// ModelTiepoint tags.
type GeoTIFF struct {
	// SR is the spatial reference of the grid as WKT, or "" when the
	// dataset did not carry one.
	SR string
	// NoData is the value marking cells no sample could reach. nil
	// leaves the marker out of the file.
	NoData *float64
	// Compress deflates the pixel data.
	Compress bool
}

func (w *GeoTIFF) Write(fname string, g *grid.Grid, vals []float64) error {
	if err := checkDims(g, vals); err != nil {
		return err
	}

	data, err := w.pixelData(g, vals)
	if err != nil {
		return err
	}

	scale := []float64{g.CellSize, g.CellSize, 0}
	x0, y0 := g.Origin()
	tie := []float64{0, 0, 0, x0, y0, 0}
	keys := geoKeys(w.SR)

	nodataCount := uint32(0)
	var nodata []byte
	if w.NoData != nil {
		s := strconv.FormatFloat(*w.NoData, 'g', -1, 64)
		nodataCount = uint32(len(s) + 1)
		nodata = append([]byte(s), 0)
		if len(nodata)%2 == 1 {
			nodata = append(nodata, 0)
		}
	}

	n := 13
	if w.NoData != nil {
		n++
	}

	// Values too large for an entry's four value bytes follow the IFD,
	// and the pixel data goes after them. Every block has even length,
	// so everything stays word aligned.
	scaleAt := uint32(8 + 2 + 12*n + 4)
	tieAt := scaleAt + 24
	keysAt := tieAt + 48
	nodataAt := keysAt + uint32(2*len(keys))
	dataAt := nodataAt + uint32(len(nodata))

	compression := uint32(1)
	if w.Compress {
		compression = 8
	}

	buf := &bytes.Buffer{}
	buf.WriteString("II")
	write16(buf, 42)
	write32(buf, 8)

	write16(buf, uint16(n))
	entry(buf, 256, typeLong, 1, uint32(g.Nx))
	entry(buf, 257, typeLong, 1, uint32(g.Ny))
	entry(buf, 258, typeShort, 1, 32)
	entry(buf, 259, typeShort, 1, compression)
	entry(buf, 262, typeShort, 1, 1)
	entry(buf, 273, typeLong, 1, dataAt)
	entry(buf, 277, typeShort, 1, 1)
	entry(buf, 278, typeLong, 1, uint32(g.Ny))
	entry(buf, 279, typeLong, 1, uint32(len(data)))
	entry(buf, 339, typeShort, 1, 3)
	entry(buf, 33550, typeDouble, 3, scaleAt)
	entry(buf, 33922, typeDouble, 6, tieAt)
	entry(buf, 34735, typeShort, uint32(len(keys)), keysAt)
	if w.NoData != nil {
		entry(buf, 42113, typeASCII, nodataCount, nodataAt)
	}
	write32(buf, 0)

	for _, v := range scale {
		write64(buf, math.Float64bits(v))
	}
	for _, v := range tie {
		write64(buf, math.Float64bits(v))
	}
	for _, k := range keys {
		write16(buf, k)
	}
	buf.Write(nodata)
	buf.Write(data)

	return ioutil.WriteFile(fname, buf.Bytes(), 0644)
}

// pixelData renders the grid as rows of little endian float32s, top row
// first, deflated when the writer asks for compression.
func (w *GeoTIFF) pixelData(g *grid.Grid, vals []float64) ([]byte, error) {
	raw := make([]byte, 0, 4*len(vals))
	cell := make([]byte, 4)
	err := topDown(g, vals, func(row []float64) error {
		for _, v := range row {
			binary.LittleEndian.PutUint32(cell, math.Float32bits(float32(v)))
			raw = append(raw, cell...)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !w.Compress {
		return raw, nil
	}

	buf := &bytes.Buffer{}
	z := zlib.NewWriter(buf)
	if _, err := z.Write(raw); err != nil {
		return nil, err
	}
	if err := z.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// geoKeys builds the GeoKeyDirectory for a spatial reference: the model
// type, the raster type, and the EPSG code when the WKT names one.
func geoKeys(sr string) []uint16 {
	model := uint16(2)
	epsgKey := uint16(2048)
	if strings.HasPrefix(sr, "PROJCS") {
		model, epsgKey = 1, 3072
	}

	keys := [][4]uint16{
		{1024, 0, 1, model},
		{1025, 0, 1, 1},
	}
	if code, ok := epsgCode(sr); ok {
		keys = append(keys, [4]uint16{epsgKey, 0, 1, code})
	}

	dir := []uint16{1, 1, 0, uint16(len(keys))}
	for _, k := range keys {
		dir = append(dir, k[0], k[1], k[2], k[3])
	}
	return dir
}

// epsgCode digs the EPSG code out of WKT text. The last AUTHORITY node
// is the one naming the coordinate system as a whole.
func epsgCode(sr string) (uint16, bool) {
	marker := `AUTHORITY["EPSG","`
	i := strings.LastIndex(sr, marker)
	if i == -1 {
		return 0, false
	}

	rest := sr[i+len(marker):]
	j := strings.Index(rest, `"`)
	if j == -1 {
		return 0, false
	}

	code, err := strconv.Atoi(rest[:j])
	if err != nil || code <= 0 || code > math.MaxUint16 {
		return 0, false
	}
	return uint16(code), true
}

func write16(buf *bytes.Buffer, v uint16) {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	buf.Write(b[:])
}

func write32(buf *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	buf.Write(b[:])
}

func write64(buf *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	buf.Write(b[:])
}

func entry(buf *bytes.Buffer, tag, typ uint16, count, value uint32) {
	write16(buf, tag)
	write16(buf, typ)
	write32(buf, count)
	write32(buf, value)
}

// Typechecking
var (
	_ Writer = &GeoTIFF{ }
)
