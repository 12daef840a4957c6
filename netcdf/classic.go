package netcdf

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/ctessum/cdf"

	"github.com/robert-malhotra/go-netcdf/internal/layout"
	"github.com/robert-malhotra/go-netcdf/internal/nc"
)

// classicTypes are the element types the classic format can hold.
var classicTypes = []Type{TypeByte, TypeChar, TypeShort, TypeInt, TypeFloat, TypeDouble}

// classicDim is a dimension of an exported group with its current length.
type classicDim struct {
	Dimension
	length uint64
}

// ExportClassic writes the dimensions and variables of g to a NetCDF
// classic file at path, replacing any file there only once the export has
// succeeded. Dimensions of ancestors used by g's variables are
// exported too; subgroups are not. The group must have at most one
// unlimited dimension, used only as the outermost dimension, and only
// classic element types; otherwise ErrNotClassic is returned.
func ExportClassic(g *Group, path string) error {
	if err := g.h.check(); err != nil {
		return err
	}
	dims, err := g.classicDims()
	if err != nil {
		return err
	}

	names := make([]string, len(dims))
	lengths := make([]int, len(dims))
	for i, d := range dims {
		names[i] = d.Name
		if !d.Unlimited {
			lengths[i] = int(d.length)
		}
	}
	hdr := cdf.NewHeader(names, lengths)
	for _, name := range g.varNames {
		v := g.vars[name]
		vdims := make([]string, len(v.dims))
		for i, d := range v.dims {
			vdims[i] = d.Name
		}
		hdr.AddVariable(name, vdims, classicZero(v.typ))
	}
	hdr.Define()
	if errs := hdr.Check(); len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrNotClassic, errors.Join(errs...))
	}

	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	tmp, err := os.CreateTemp(dir, base+".tmp-*")
	if err != nil {
		return fmt.Errorf("netcdf: export %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() {
		if tmpName != "" {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()
	_ = tmp.Chmod(0o644)

	if err := g.writeClassic(tmp, hdr); err != nil {
		return fmt.Errorf("netcdf: export %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("netcdf: export %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("netcdf: export %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("netcdf: export %s: %w", path, err)
	}
	tmpName = ""
	g.logger().WithField("out", path).Debug("exported classic file")
	return nil
}

// writeClassic writes the header and every variable of g to file.
func (g *Group) writeClassic(file *os.File, hdr *cdf.Header) error {
	out, err := cdf.Create(file, hdr)
	if err != nil {
		return err
	}
	for _, name := range g.varNames {
		values, n, err := classicValues(g.vars[name])
		if err != nil {
			return err
		}
		if n == 0 {
			continue
		}
		// Filling a fixed-size variable to its last element reports io.EOF.
		written, err := out.Writer(name, nil, nil).Write(values)
		if err != nil && (!errors.Is(err, io.EOF) || written != n) {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}
	// The last record is only complete once padded to four bytes.
	info, err := file.Stat()
	if err != nil {
		return err
	}
	if rem := info.Size() % 4; rem != 0 {
		if err := file.Truncate(info.Size() + 4 - rem); err != nil {
			return err
		}
	}
	return cdf.UpdateNumRecs(file)
}

// classicDims collects g's dimensions and the ancestor dimensions its
// variables use, checking that the set fits the classic format.
func (g *Group) classicDims() ([]classicDim, error) {
	var dims []classicDim
	seen := make(map[int]bool)
	add := func(d Dimension) error {
		if seen[d.ID] {
			return nil
		}
		for _, other := range dims {
			if other.Name == d.Name {
				return fmt.Errorf("%w: two dimensions named %q", ErrNotClassic, d.Name)
			}
		}
		length := d.Size
		if d.Unlimited {
			_, size, err := nc.InqDim(g.id, d.ID)
			if err != nil {
				return g.h.fail("inquire dimension", err)
			}
			length = size
		}
		if length > math.MaxInt32 {
			return fmt.Errorf("%w: dimension %q has length %d", ErrNotClassic, d.Name, length)
		}
		seen[d.ID] = true
		dims = append(dims, classicDim{Dimension: d, length: length})
		return nil
	}

	for _, name := range g.dimNames {
		if err := add(g.dims[name]); err != nil {
			return nil, err
		}
	}
	for _, name := range g.varNames {
		v := g.vars[name]
		if !slices.Contains(classicTypes, v.typ) {
			return nil, fmt.Errorf("%w: variable %q has type %s", ErrNotClassic, name, v.typ)
		}
		for i, d := range v.dims {
			if d.Unlimited && i != 0 {
				return nil, fmt.Errorf("%w: variable %q uses unlimited dimension %q at position %d",
					ErrNotClassic, name, d.Name, i)
			}
			if err := add(d); err != nil {
				return nil, err
			}
		}
	}

	unlimited := 0
	for _, d := range dims {
		if d.Unlimited {
			unlimited++
		}
	}
	if unlimited > 1 {
		return nil, fmt.Errorf("%w: %d unlimited dimensions", ErrNotClassic, unlimited)
	}
	return dims, nil
}

func classicZero(t Type) any {
	switch t {
	case TypeByte:
		return []uint8{}
	case TypeChar:
		return ""
	case TypeShort:
		return []int16{}
	case TypeInt:
		return []int32{}
	case TypeFloat:
		return []float32{}
	case TypeDouble:
		return []float64{}
	}
	return nil
}

func readAll[T Element](v *Variable) ([]T, error) {
	size, err := v.Size()
	if err != nil {
		return nil, err
	}
	if size > uint64(math.MaxInt/v.typ.Size()) {
		return nil, fmt.Errorf("%w: %s has %d elements", ErrTooLarge, v.path, size)
	}
	data := make([]T, size)
	return data, Read(v, data)
}

// classicValues reads all of v in the representation cdf writes, and
// returns the element count.
func classicValues(v *Variable) (any, int, error) {
	switch v.typ {
	case TypeByte:
		data, err := readAll[int8](v)
		out := make([]uint8, len(data))
		for i, x := range data {
			out[i] = uint8(x)
		}
		return out, len(out), err
	case TypeChar:
		data, err := readAll[Char](v)
		out := make([]byte, len(data))
		for i, c := range data {
			out[i] = byte(c)
		}
		return string(out), len(out), err
	case TypeShort:
		data, err := readAll[int16](v)
		return data, len(data), err
	case TypeInt:
		data, err := readAll[int32](v)
		return data, len(data), err
	case TypeFloat:
		data, err := readAll[float32](v)
		return data, len(data), err
	case TypeDouble:
		data, err := readAll[float64](v)
		return data, len(data), err
	}
	return nil, 0, fmt.Errorf("%w: variable %q has type %s", ErrNotClassic, v.name, v.typ)
}

// ImportClassic copies the dimensions, variables and data of the NetCDF
// classic file at path into g. Names already used in g fail with the
// engine's name-in-use error.
func ImportClassic(g *Group, path string) error {
	if err := g.h.check(); err != nil {
		return err
	}
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("netcdf: import %s: %w", path, err)
	}
	defer file.Close()
	in, err := cdf.Open(file)
	if err != nil {
		return fmt.Errorf("netcdf: import %s: %w", path, err)
	}
	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("netcdf: import %s: %w", path, err)
	}
	hdr := in.Header
	nrec := hdr.NumRecs(info.Size())

	lengths := hdr.Lengths("")
	for i, name := range hdr.Dimensions("") {
		if lengths[i] == 0 {
			_, err = g.AddUnlimitedDimension(name)
		} else {
			_, err = g.AddDimension(name, uint64(lengths[i]))
		}
		if err != nil {
			return err
		}
	}

	for _, name := range hdr.Variables() {
		typ, err := classicType(hdr.ZeroValue(name, 0))
		if err != nil {
			return fmt.Errorf("netcdf: import %s: variable %q: %w", path, name, err)
		}
		v, err := g.AddVariable(name, hdr.Dimensions(name), typ)
		if err != nil {
			return err
		}

		counts := make([]uint64, v.Rank())
		var begin, end []int
		for i, l := range hdr.Lengths(name) {
			counts[i] = uint64(l)
		}
		if hdr.IsRecordVariable(name) {
			counts[0] = uint64(nrec)
			begin = make([]int, len(counts))
			end = make([]int, len(counts))
			for i, c := range counts {
				end[i] = int(c) - 1
			}
		}
		n, err := layout.NumElements(counts)
		if err != nil || n > math.MaxInt {
			return fmt.Errorf("netcdf: import %s: variable %q: %w", path, name, ErrTooLarge)
		}
		if n == 0 {
			continue
		}
		if err := importValues(v, in.Reader(name, begin, end), counts, int(n)); err != nil {
			return fmt.Errorf("netcdf: import %s: variable %q: %w", path, name, err)
		}
	}
	g.logger().WithField("in", path).Debug("imported classic file")
	return nil
}

func classicType(zero any) (Type, error) {
	switch zero.(type) {
	case []uint8:
		return TypeByte, nil
	case string:
		return TypeChar, nil
	case []int16:
		return TypeShort, nil
	case []int32:
		return TypeInt, nil
	case []float32:
		return TypeFloat, nil
	case []float64:
		return TypeDouble, nil
	}
	return NotAType, fmt.Errorf("unsupported classic type %T", zero)
}

func importValues(v *Variable, r cdf.Reader, counts []uint64, n int) error {
	starts := make([]uint64, len(counts))
	switch v.typ {
	case TypeByte, TypeChar:
		raw := make([]uint8, n)
		if _, err := r.Read(raw); err != nil {
			return err
		}
		if v.typ == TypeChar {
			data := make([]Char, n)
			for i, b := range raw {
				data[i] = Char(b)
			}
			return WriteSlab(v, starts, counts, data)
		}
		data := make([]int8, n)
		for i, b := range raw {
			data[i] = int8(b)
		}
		return WriteSlab(v, starts, counts, data)
	case TypeShort:
		return readInto[int16](v, r, starts, counts, n)
	case TypeInt:
		return readInto[int32](v, r, starts, counts, n)
	case TypeFloat:
		return readInto[float32](v, r, starts, counts, n)
	case TypeDouble:
		return readInto[float64](v, r, starts, counts, n)
	}
	return fmt.Errorf("%w: type %s", ErrNotClassic, v.typ)
}

func readInto[T int16 | int32 | float32 | float64](v *Variable, r cdf.Reader, starts, counts []uint64, n int) error {
	data := make([]T, n)
	if _, err := r.Read(data); err != nil {
		return err
	}
	return WriteSlab(v, starts, counts, data)
}
