package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/gekko3d/surf/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
)

// LoadOBJ reads a Wavefront OBJ file and triangulates every face (fan
// triangulation for n-gons), producing the flat triangle list a BLAS is
// built over. Only "v" and "f" directives are interpreted; normals,
// texture coordinates, and material directives are skipped, since shading
// is out of scope for the acceleration core.
func LoadOBJ(path string) ([]geom.Triangle, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("mesh: cannot open %q: %w", path, err)
	}
	defer file.Close()

	var vertices []mgl32.Vec3
	var tris []geom.Triangle

	scanner := bufio.NewScanner(file)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "v":
			if len(parts) < 4 {
				return nil, fmt.Errorf("mesh: line %d: invalid vertex definition", lineNum)
			}
			x, err1 := strconv.ParseFloat(parts[1], 32)
			y, err2 := strconv.ParseFloat(parts[2], 32)
			z, err3 := strconv.ParseFloat(parts[3], 32)
			if err1 != nil || err2 != nil || err3 != nil {
				return nil, fmt.Errorf("mesh: line %d: invalid vertex coordinates", lineNum)
			}
			vertices = append(vertices, mgl32.Vec3{float32(x), float32(y), float32(z)})

		case "f":
			if len(parts) < 4 {
				return nil, fmt.Errorf("mesh: line %d: face must have at least 3 vertices", lineNum)
			}

			faceVerts := make([]mgl32.Vec3, 0, len(parts)-1)
			for i := 1; i < len(parts); i++ {
				idx, err := parseFaceVertexIndex(parts[i])
				if err != nil {
					return nil, fmt.Errorf("mesh: line %d: %w", lineNum, err)
				}
				if idx < 0 || idx >= len(vertices) {
					return nil, fmt.Errorf("mesh: line %d: vertex index out of range", lineNum)
				}
				faceVerts = append(faceVerts, vertices[idx])
			}

			for i := 1; i < len(faceVerts)-1; i++ {
				tris = append(tris, geom.NewTriangle(faceVerts[0], faceVerts[i], faceVerts[i+1]))
			}

		default:
			continue
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("mesh: error reading %q: %w", path, err)
	}
	if len(vertices) == 0 {
		return nil, fmt.Errorf("mesh: no vertices found in %q", path)
	}

	return tris, nil
}

// parseFaceVertexIndex extracts the vertex index from an OBJ face token,
// which may be "v", "v/vt", "v/vt/vn", or "v//vn". Returns a 0-based index.
func parseFaceVertexIndex(token string) (int, error) {
	v := token
	if slash := strings.IndexByte(token, '/'); slash >= 0 {
		v = token[:slash]
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid face index %q", token)
	}
	return n - 1, nil
}
