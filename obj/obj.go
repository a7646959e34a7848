package obj

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/yassineboubaker/blazert/types"
)

// A triangle mesh loaded from a wavefront obj file. Only vertex and face
// statements are consumed; texture coordinates, normals, materials, groups
// and object includes are skipped. Polygon faces are fan-triangulated.
type Mesh struct {
	Vertices []types.Vec3[float32]
	Faces    []types.Vec3i
}

// Read parses a wavefront obj stream into a triangle mesh.
func Read(r io.Reader) (*Mesh, error) {
	mesh := &Mesh{}

	var lineNum int
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lineNum++
		lineTokens := strings.Fields(scanner.Text())
		if len(lineTokens) == 0 || strings.HasPrefix(lineTokens[0], "#") {
			continue
		}

		switch lineTokens[0] {
		case "v":
			if len(lineTokens) < 4 {
				return nil, emitError(lineNum, `unsupported syntax for "v"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
			}

			var v types.Vec3[float32]
			for i := 0; i < 3; i++ {
				coord, err := strconv.ParseFloat(lineTokens[i+1], 32)
				if err != nil {
					return nil, emitError(lineNum, "could not parse vertex coordinate: %v", err)
				}
				v[i] = float32(coord)
			}
			mesh.Vertices = append(mesh.Vertices, v)
		case "f":
			if len(lineTokens) < 4 {
				return nil, emitError(lineNum, `unsupported syntax for "f"; expected at least 3 arguments; got %d`, len(lineTokens)-1)
			}

			indices := make([]int32, len(lineTokens)-1)
			for i, token := range lineTokens[1:] {
				// Faces may carry uv/normal references as v/vt/vn; only
				// the vertex index is used.
				vTokens := strings.Split(token, "/")
				index, err := strconv.ParseInt(vTokens[0], 10, 32)
				if err != nil {
					return nil, emitError(lineNum, "could not parse face index: %v", err)
				}

				// Positive indices are 1-based; negative indices are
				// relative to the end of the current vertex list.
				switch {
				case index > 0 && int(index) <= len(mesh.Vertices):
					indices[i] = int32(index - 1)
				case index < 0 && int(-index) <= len(mesh.Vertices):
					indices[i] = int32(len(mesh.Vertices)) + int32(index)
				default:
					return nil, emitError(lineNum, "face index %d out of range", index)
				}
			}

			for i := 1; i < len(indices)-1; i++ {
				mesh.Faces = append(mesh.Faces, types.Vec3i{indices[0], indices[i], indices[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return mesh, nil
}

// ReadFile parses a wavefront obj file into a triangle mesh.
func ReadFile(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return Read(f)
}

func emitError(lineNum int, format string, v ...interface{}) error {
	return fmt.Errorf("obj: line %d: %s", lineNum, fmt.Sprintf(format, v...))
}
