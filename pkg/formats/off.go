package formats

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
)

// OFFHeader is the literal tag every OFF source starts with.
const OFFHeader = "OFF"

// OFF format errors.
var (
	ErrInvalidOFFHeader    = errors.New("invalid OFF header: expected 'OFF'")
	ErrInvalidOFFCounts    = errors.New("invalid OFF element counts")
	ErrTruncatedOFFData    = errors.New("truncated OFF data")
	ErrInvalidOFFNumber    = errors.New("invalid OFF number")
	ErrInvalidFaceSize     = errors.New("face has fewer than 3 vertices")
	ErrFaceIndexOutOfRange = errors.New("face vertex index out of range")
)

// FormatError reports where an OFF source stopped making sense.
// Err is always one of the OFF sentinel errors above.
type FormatError struct {
	Section string // "header", "counts", "vertex" or "face"
	Index   int    // element index within Section, -1 when not applicable
	Err     error
}

func (e *FormatError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("off %s: %v", e.Section, e.Err)
	}
	return fmt.Sprintf("off %s %d: %v", e.Section, e.Index, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}

// OFF is a parsed face-vertex mesh description.
type OFF struct {
	Vertices [][3]float32
	Faces    [][]int
	NumEdges int // read from the header, never used
}

// LoadOFF reads and parses an OFF file from disk.
func LoadOFF(path string) (*OFF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", path)
	}
	defer f.Close()

	off, err := ParseOFF(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing %s", path)
	}
	return off, nil
}

// maxPrealloc caps the capacity reserved up front from a declared count.
const maxPrealloc = 1 << 16

// ParseOFF parses an OFF description: the OFF tag, vertex/face/edge counts,
// one xyz triple per vertex, then per face a vertex count k (k >= 3)
// followed by k zero-based vertex indices.
// Nothing is returned unless the whole source is valid.
func ParseOFF(r io.Reader) (*OFF, error) {
	s := bufio.NewScanner(r)
	s.Split(bufio.ScanWords)
	tok := &tokens{s: s}

	header, ok := tok.next()
	if !ok || header != OFFHeader {
		return nil, &FormatError{Section: "header", Index: -1, Err: ErrInvalidOFFHeader}
	}

	var counts [3]int
	for i := range counts {
		n, err := tok.int()
		if err != nil || n < 0 {
			return nil, &FormatError{Section: "counts", Index: -1, Err: ErrInvalidOFFCounts}
		}
		counts[i] = n
	}
	numVertices, numFaces := counts[0], counts[1]

	// Declared counts are untrusted; storage grows with the data actually read.
	off := &OFF{
		Vertices: make([][3]float32, 0, min(numVertices, maxPrealloc)),
		Faces:    make([][]int, 0, min(numFaces, maxPrealloc)),
		NumEdges: counts[2],
	}

	for i := 0; i < numVertices; i++ {
		var vertex [3]float32
		for c := range vertex {
			v, err := tok.float()
			if err != nil {
				return nil, &FormatError{Section: "vertex", Index: i, Err: err}
			}
			vertex[c] = v
		}
		off.Vertices = append(off.Vertices, vertex)
	}

	for i := 0; i < numFaces; i++ {
		k, err := tok.int()
		if err != nil {
			return nil, &FormatError{Section: "face", Index: i, Err: err}
		}
		if k < 3 {
			return nil, &FormatError{Section: "face", Index: i, Err: ErrInvalidFaceSize}
		}

		face := make([]int, 0, min(k, maxPrealloc))
		for j := 0; j < k; j++ {
			idx, err := tok.int()
			if err != nil {
				return nil, &FormatError{Section: "face", Index: i, Err: err}
			}
			if idx < 0 || idx >= numVertices {
				return nil, &FormatError{Section: "face", Index: i, Err: ErrFaceIndexOutOfRange}
			}
			face = append(face, idx)
		}
		off.Faces = append(off.Faces, face)
	}

	if err := s.Err(); err != nil {
		return nil, errors.Wrap(err, "reading OFF source")
	}

	return off, nil
}

// tokens pulls whitespace-separated fields out of the source.
type tokens struct {
	s *bufio.Scanner
}

func (t *tokens) next() (string, bool) {
	if !t.s.Scan() {
		return "", false
	}
	return t.s.Text(), true
}

func (t *tokens) int() (int, error) {
	field, ok := t.next()
	if !ok {
		return 0, ErrTruncatedOFFData
	}
	n, err := strconv.Atoi(field)
	if err != nil {
		return 0, ErrInvalidOFFNumber
	}
	return n, nil
}

func (t *tokens) float() (float32, error) {
	field, ok := t.next()
	if !ok {
		return 0, ErrTruncatedOFFData
	}
	f, err := strconv.ParseFloat(field, 32)
	if err != nil {
		return 0, ErrInvalidOFFNumber
	}
	return float32(f), nil
}
