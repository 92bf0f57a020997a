// Package formats provides parsers for mesh asset file formats.
package formats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// OBJ format errors.
var (
	ErrOBJBadVertex  = errors.New("malformed OBJ vertex")
	ErrOBJBadFace    = errors.New("malformed OBJ face")
	ErrOBJIndexRange = errors.New("OBJ face index out of range")
	ErrOBJNoGeometry = errors.New("OBJ file contains no faces")
)

// OBJVertex is one flattened vertex: a unique position/texcoord/normal
// combination referenced by at least one face.
type OBJVertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// OBJ holds a parsed Wavefront OBJ model, flattened to an indexed
// triangle list. Faces with more than three corners are triangulated as
// fans; position/texcoord/normal triples are deduplicated.
type OBJ struct {
	Vertices []OBJVertex
	Indices  []uint32
}

// LoadOBJ reads and parses an OBJ file from disk.
func LoadOBJ(path string) (*OBJ, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	obj, err := ParseOBJ(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return obj, nil
}

// ParseOBJ parses Wavefront OBJ data. Supported statements: v, vt, vn,
// f (with v, v/vt, v//vn, and v/vt/vn references, positive or negative
// indices). Everything else (o, g, s, usemtl, comments) is skipped.
func ParseOBJ(data []byte) (*OBJ, error) {
	var (
		positions [][3]float32
		texcoords [][2]float32
		normals   [][3]float32
	)

	obj := &OBJ{}
	lookup := make(map[[3]int]uint32)
	lineNo := 0

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			p, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrOBJBadVertex, lineNo, line)
			}
			positions = append(positions, p)

		case "vt":
			if len(fields) < 3 {
				return nil, fmt.Errorf("%w: line %d: %s", ErrOBJBadVertex, lineNo, line)
			}
			u, err1 := parseFloat(fields[1])
			v, err2 := parseFloat(fields[2])
			if err1 != nil || err2 != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrOBJBadVertex, lineNo, line)
			}
			texcoords = append(texcoords, [2]float32{u, v})

		case "vn":
			n, err := parseFloats3(fields[1:])
			if err != nil {
				return nil, fmt.Errorf("%w: line %d: %s", ErrOBJBadVertex, lineNo, line)
			}
			normals = append(normals, n)

		case "f":
			if len(fields) < 4 {
				return nil, fmt.Errorf("%w: line %d: %s", ErrOBJBadFace, lineNo, line)
			}
			corners := make([]uint32, 0, len(fields)-1)
			for _, ref := range fields[1:] {
				idx, err := resolveRef(ref, len(positions), len(texcoords), len(normals))
				if err != nil {
					return nil, fmt.Errorf("%w: line %d: %s", err, lineNo, line)
				}
				corners = append(corners, obj.vertexFor(idx, positions, texcoords, normals, lookup))
			}
			// Triangulate as a fan around the first corner
			for i := 1; i+1 < len(corners); i++ {
				obj.Indices = append(obj.Indices, corners[0], corners[i], corners[i+1])
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	if len(obj.Indices) == 0 {
		return nil, ErrOBJNoGeometry
	}
	return obj, nil
}

// vertexFor returns the flattened-vertex index for a v/vt/vn triple,
// allocating a new vertex on first sight.
func (o *OBJ) vertexFor(ref [3]int, positions [][3]float32, texcoords [][2]float32, normals [][3]float32, lookup map[[3]int]uint32) uint32 {
	if idx, ok := lookup[ref]; ok {
		return idx
	}

	var v OBJVertex
	v.Position = positions[ref[0]]
	if ref[1] >= 0 {
		v.TexCoord = texcoords[ref[1]]
	}
	if ref[2] >= 0 {
		v.Normal = normals[ref[2]]
	}

	idx := uint32(len(o.Vertices))
	o.Vertices = append(o.Vertices, v)
	lookup[ref] = idx
	return idx
}

// resolveRef parses one face corner reference ("7", "7/2", "7//3",
// "7/2/3", or negative forms) into zero-based indices. Missing texcoord
// or normal slots come back as -1.
func resolveRef(ref string, nPos, nTex, nNorm int) ([3]int, error) {
	out := [3]int{-1, -1, -1}
	parts := strings.Split(ref, "/")
	if len(parts) == 0 || len(parts) > 3 {
		return out, ErrOBJBadFace
	}

	counts := [3]int{nPos, nTex, nNorm}
	for i, part := range parts {
		if part == "" {
			if i == 0 {
				return out, ErrOBJBadFace
			}
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n == 0 {
			return out, ErrOBJBadFace
		}
		if n < 0 {
			n += counts[i] // relative reference counts back from the end
		} else {
			n--
		}
		if n < 0 || n >= counts[i] {
			return out, ErrOBJIndexRange
		}
		out[i] = n
	}
	return out, nil
}

func parseFloat(s string) (float32, error) {
	v, err := strconv.ParseFloat(s, 32)
	return float32(v), err
}

func parseFloats3(fields []string) ([3]float32, error) {
	var out [3]float32
	if len(fields) < 3 {
		return out, ErrOBJBadVertex
	}
	for i := 0; i < 3; i++ {
		v, err := parseFloat(fields[i])
		if err != nil {
			return out, err
		}
		out[i] = v
	}
	return out, nil
}
