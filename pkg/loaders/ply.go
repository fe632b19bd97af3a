package loaders

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

var (
	// ErrInvalidPLY is returned for malformed headers and bodies
	ErrInvalidPLY = errors.New("invalid PLY data")
)

const (
	// maxPrealloc bounds slice capacity taken from header counts; larger meshes grow by append
	maxPrealloc = 1 << 16
	// maxListLength is the largest list (e.g. polygon vertex count) accepted in a body
	maxListLength = 1 << 12
)

// PLYHeader represents the parsed header of a PLY file
type PLYHeader struct {
	Format   string // "ascii", "binary_little_endian" or "binary_big_endian"
	Version  string
	Elements []PLYElement
}

// PLYElement is one element block, e.g. vertex or face
type PLYElement struct {
	Name       string
	Count      int
	Properties []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, empty for lists
	IsList   bool
	ListType string // Type of the list length
	DataType string // Type of the list entries
}

// PLYData contains the mesh data read from a PLY file
type PLYData struct {
	Vertices  []core.Vec3 // Vertex positions
	Faces     []int       // Triangle indices, three per triangle
	Normals   []core.Vec3 // Per-vertex normals, empty if not present
	TexCoords []core.Vec2 // Per-vertex texture coordinates, empty if not present
}

// TriangleCount returns the number of triangles
func (d *PLYData) TriangleCount() int {
	return len(d.Faces) / 3
}

// LoadPLY loads a PLY file from disk
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	data, err := DecodePLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", filename, err)
	}
	return data, nil
}

// DecodePLY reads an ASCII or binary PLY stream. Polygon faces are split into triangle fans.
func DecodePLY(r io.Reader) (*PLYData, error) {
	br := bufio.NewReader(r)

	header, err := parsePLYHeader(br)
	if err != nil {
		return nil, err
	}

	var values valueReader
	switch header.Format {
	case "ascii":
		values = newASCIIReader(br)
	case "binary_little_endian":
		values = &binaryReader{r: br, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryReader{r: br, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrInvalidPLY, header.Format)
	}

	data := &PLYData{}
	for _, element := range header.Elements {
		var err error
		switch element.Name {
		case "vertex":
			err = readVertices(values, element, data)
		case "face":
			err = readFaces(values, element, data)
		default:
			err = skipElement(values, element)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s element: %v", ErrInvalidPLY, element.Name, err)
		}
	}

	return data, nil
}

// parsePLYHeader reads up to and including the end_header line
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	line, err := readHeaderLine(r)
	if err != nil || line != "ply" {
		return nil, fmt.Errorf("%w: missing ply magic", ErrInvalidPLY)
	}

	for {
		line, err := readHeaderLine(r)
		if err != nil {
			return nil, fmt.Errorf("%w: header ended before end_header", ErrInvalidPLY)
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("%w: missing format line", ErrInvalidPLY)
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid format line %q", ErrInvalidPLY, line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("%w: invalid element line %q", ErrInvalidPLY, line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("%w: invalid element count %q", ErrInvalidPLY, parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("%w: property before any element", ErrInvalidPLY)
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			element := &header.Elements[len(header.Elements)-1]
			element.Properties = append(element.Properties, prop)
		case "comment", "obj_info":
		default:
			return nil, fmt.Errorf("%w: unknown header keyword %q", ErrInvalidPLY, parts[0])
		}
	}
}

func readHeaderLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// parsePLYProperty parses the words after "property"
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) >= 1 && parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("%w: invalid list property %v", ErrInvalidPLY, parts)
		}
		if getTypeSize(parts[1]) == 0 || getTypeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("%w: unknown list type in %v", ErrInvalidPLY, parts)
		}
		return PLYProperty{Name: parts[3], IsList: true, ListType: parts[1], DataType: parts[2]}, nil
	}

	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("%w: invalid property %v", ErrInvalidPLY, parts)
	}
	if getTypeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("%w: unknown property type %q", ErrInvalidPLY, parts[0])
	}
	return PLYProperty{Name: parts[1], Type: parts[0]}, nil
}

// getTypeSize returns the byte size of a PLY scalar type, 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// readVertices reads positions plus optional normals and texture coordinates
func readVertices(values valueReader, element PLYElement, data *PLYData) error {
	index := make(map[string]int, len(element.Properties))
	for i, prop := range element.Properties {
		index[prop.Name] = i
	}
	for _, name := range []string{"x", "y", "z"} {
		if _, ok := index[name]; !ok {
			return fmt.Errorf("missing %s property", name)
		}
	}
	_, hasNX := index["nx"]
	_, hasNY := index["ny"]
	_, hasNZ := index["nz"]
	hasNormals := hasNX && hasNY && hasNZ
	uName, vName := texCoordNames(index)

	data.Vertices = make([]core.Vec3, 0, min(element.Count, maxPrealloc))
	row := make([]float64, len(element.Properties))
	for i := 0; i < element.Count; i++ {
		for p, prop := range element.Properties {
			if prop.IsList {
				if err := skipList(values, prop); err != nil {
					return err
				}
				continue
			}
			v, err := values.read(prop.Type)
			if err != nil {
				return fmt.Errorf("vertex %d: %w", i, err)
			}
			row[p] = v
		}

		data.Vertices = append(data.Vertices, core.NewVec3(row[index["x"]], row[index["y"]], row[index["z"]]))
		if hasNormals {
			data.Normals = append(data.Normals, core.NewVec3(row[index["nx"]], row[index["ny"]], row[index["nz"]]))
		}
		if uName != "" {
			data.TexCoords = append(data.TexCoords, core.NewVec2(row[index[uName]], row[index[vName]]))
		}
	}
	return nil
}

// texCoordNames picks the first texture coordinate naming present
func texCoordNames(index map[string]int) (string, string) {
	for _, names := range [][2]string{{"u", "v"}, {"s", "t"}, {"texture_u", "texture_v"}} {
		_, hasU := index[names[0]]
		_, hasV := index[names[1]]
		if hasU && hasV {
			return names[0], names[1]
		}
	}
	return "", ""
}

// readFaces reads the vertex index list of each face and splits it into a triangle fan
func readFaces(values valueReader, element PLYElement, data *PLYData) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if !prop.IsList || (prop.Name != "vertex_indices" && prop.Name != "vertex_index") {
				if err := skipProperty(values, prop); err != nil {
					return err
				}
				continue
			}

			n, err := readListLength(values, prop)
			if err != nil {
				return fmt.Errorf("face %d: %w", i, err)
			}
			indices := make([]int, n)
			for k := range indices {
				v, err := values.read(prop.DataType)
				if err != nil {
					return fmt.Errorf("face %d: %w", i, err)
				}
				indices[k] = int(v)
			}
			for k := 1; k+1 < len(indices); k++ {
				data.Faces = append(data.Faces, indices[0], indices[k], indices[k+1])
			}
		}
	}
	return nil
}

func skipElement(values valueReader, element PLYElement) error {
	for i := 0; i < element.Count; i++ {
		for _, prop := range element.Properties {
			if err := skipProperty(values, prop); err != nil {
				return err
			}
		}
	}
	return nil
}

func skipProperty(values valueReader, prop PLYProperty) error {
	if prop.IsList {
		return skipList(values, prop)
	}
	_, err := values.read(prop.Type)
	return err
}

func skipList(values valueReader, prop PLYProperty) error {
	n, err := readListLength(values, prop)
	if err != nil {
		return err
	}
	for k := 0; k < n; k++ {
		if _, err := values.read(prop.DataType); err != nil {
			return err
		}
	}
	return nil
}

// readListLength reads a list's length and rejects values that are not a
// whole number in [0, maxListLength]
func readListLength(values valueReader, prop PLYProperty) (int, error) {
	n, err := values.read(prop.ListType)
	if err != nil {
		return 0, err
	}
	if n != math.Trunc(n) || n < 0 || n > maxListLength {
		return 0, fmt.Errorf("invalid list length %v", n)
	}
	return int(n), nil
}

// valueReader reads one scalar of the given PLY type from the body
type valueReader interface {
	read(dataType string) (float64, error)
}

// asciiReader reads whitespace separated values
type asciiReader struct {
	scanner *bufio.Scanner
}

func newASCIIReader(r io.Reader) *asciiReader {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &asciiReader{scanner: scanner}
}

func (a *asciiReader) read(dataType string) (float64, error) {
	if !a.scanner.Scan() {
		if err := a.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(a.scanner.Text(), 64)
}

// binaryReader reads fixed size values in the file's byte order
type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	if size == 0 {
		return 0, fmt.Errorf("unknown type %q", dataType)
	}
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	default:
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
}
