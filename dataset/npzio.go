// SPDX-License-Identifier: MIT
// Package dataset: tolerant .npz member access.
// The benchmark archives mix dtypes freely: masks arrive as bool or
// uint8, labels as int64, features as float32 or float64 depending on
// who exported them. npz.Reader.Read is strict about the destination
// element type, so this file resolves the member name, dispatches on the
// stored dtype and hands every array back as row-major float64.

package dataset

import (
	"fmt"

	"github.com/sbinet/npyio/npz"
)

// npzMember resolves key inside the archive, accepting both the bare
// name and the "<key>.npy" member form numpy's savez writes.
func npzMember(r *npz.Reader, key string) (string, error) {
	want := key + ".npy"
	for _, k := range r.Keys() {
		if k == key || k == want {
			return k, nil
		}
	}
	return "", fmt.Errorf("member %q missing: %w", key, ErrFormat)
}

// npzArray reads one array member and returns its values as float64 in
// row-major order, together with the stored shape. Boolean members map
// to 0/1. Fortran-ordered members and dtypes outside the numeric/bool
// families are rejected with ErrFormat.
func npzArray(r *npz.Reader, key string) ([]float64, []int, error) {
	name, err := npzMember(r, key)
	if err != nil {
		return nil, nil, err
	}
	hdr := r.Header(name)
	if hdr.Descr.Fortran {
		return nil, nil, fmt.Errorf("member %q: column-major storage: %w", name, ErrFormat)
	}
	shape := hdr.Descr.Shape
	size := 1
	for _, d := range shape {
		size *= d
	}

	out := make([]float64, 0, size)
	switch dt := normalizeDtype(hdr.Descr.Type); dt {
	case "f8":
		var v []float64
		if err = r.Read(name, &v); err == nil {
			out = v
		}
	case "f4":
		var v []float32
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "i8":
		var v []int64
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "i4":
		var v []int32
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "i2":
		var v []int16
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "i1":
		var v []int8
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "u8":
		var v []uint64
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "u4":
		var v []uint32
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "u2":
		var v []uint16
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "u1":
		var v []uint8
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				out = append(out, float64(x))
			}
		}
	case "b1":
		var v []bool
		if err = r.Read(name, &v); err == nil {
			for _, x := range v {
				if x {
					out = append(out, 1)
				} else {
					out = append(out, 0)
				}
			}
		}
	default:
		return nil, nil, fmt.Errorf("member %q: unsupported dtype %q: %w", name, hdr.Descr.Type, ErrFormat)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("member %q: %w", name, err)
	}
	if len(out) != size {
		return nil, nil, fmt.Errorf("member %q: %d values for shape %v: %w", name, len(out), shape, ErrFormat)
	}
	return out, shape, nil
}

// normalizeDtype drops the little-endian / no-order prefix from a numpy
// descr string ("<f8" -> "f8", "|b1" -> "b1"). Big-endian markers are
// kept so the dispatch above rejects them.
func normalizeDtype(descr string) string {
	if len(descr) > 0 && (descr[0] == '<' || descr[0] == '|' || descr[0] == '=') {
		return descr[1:]
	}
	return descr
}

// npzInts reads an integral member (labels, edge endpoints, mask rows)
// and converts it to int. Values with a fractional part are rejected.
func npzInts(r *npz.Reader, key string) ([]int, []int, error) {
	vals, shape, err := npzArray(r, key)
	if err != nil {
		return nil, nil, err
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		n := int(v)
		if float64(n) != v {
			return nil, nil, fmt.Errorf("member %q: non-integral value %v: %w", key, v, ErrFormat)
		}
		out[i] = n
	}
	return out, shape, nil
}
