package gridio

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/banshee-data/depth.steer/internal/depth/l2grid"
	"github.com/banshee-data/depth.steer/internal/testutil"
)

func TestReadCSV(t *testing.T) {
	in := `# two rows, four columns
0, 1.5, 2, 0

3,0,0,0.25
`
	g, err := ReadCSV(strings.NewReader(in), 0, 0)
	testutil.AssertNoError(t, err)

	if g.Rows() != 2 || g.Cols() != 4 {
		t.Fatalf("shape = %dx%d, want 2x4", g.Rows(), g.Cols())
	}
	if g.At(0, 1) != 1.5 || g.At(1, 3) != 0.25 {
		t.Errorf("unexpected values: %v %v", g.At(0, 1), g.At(1, 3))
	}
}

func TestReadCSV_DeclaredShape(t *testing.T) {
	in := "1,2,3\n4,5,6\n"

	_, err := ReadCSV(strings.NewReader(in), 3, 2)
	testutil.AssertNoError(t, err)

	_, err = ReadCSV(strings.NewReader(in), 4, 2)
	if !errors.Is(err, l2grid.ErrDimensionMismatch) {
		t.Errorf("declared width 4: error = %v, want ErrDimensionMismatch", err)
	}
	_, err = ReadCSV(strings.NewReader(in), 3, 3)
	if !errors.Is(err, l2grid.ErrDimensionMismatch) {
		t.Errorf("declared height 3: error = %v, want ErrDimensionMismatch", err)
	}
}

func TestReadCSV_Rejects(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want error
	}{
		{"ragged", "1,2,3\n4,5\n", l2grid.ErrDimensionMismatch},
		{"negative", "1,-2,3\n", l2grid.ErrNegativeDepth},
		{"empty", "", l2grid.ErrEmptyGrid},
		{"comments only", "# nothing\n", l2grid.ErrEmptyGrid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(tt.in), 0, 0)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadCSV() error = %v, want %v", err, tt.want)
			}
		})
	}

	_, err := ReadCSV(strings.NewReader("1,abc\n"), 0, 0)
	testutil.AssertError(t, err)
}

func TestReadJSON(t *testing.T) {
	in := `{"width": 3, "height": 2, "depth": [[0, 1, 2], [3, 4, 5]]}`
	g, err := ReadJSON(strings.NewReader(in))
	testutil.AssertNoError(t, err)

	if g.At(1, 2) != 5 {
		t.Errorf("At(1,2) = %v, want 5", g.At(1, 2))
	}
}

func TestReadJSON_Rejects(t *testing.T) {
	_, err := ReadJSON(strings.NewReader(`{"width": 2, "height": 2, "depth": [[0, 1, 2], [3, 4, 5]]}`))
	if !errors.Is(err, l2grid.ErrDimensionMismatch) {
		t.Errorf("mismatched declaration: error = %v, want ErrDimensionMismatch", err)
	}

	_, err = ReadJSON(strings.NewReader(`{"width": 1, "height": 1, "depth": [[1]], "extra": true}`))
	testutil.AssertError(t, err)

	_, err = ReadJSON(strings.NewReader(`not json`))
	testutil.AssertError(t, err)
}

func TestRoundTripFiles(t *testing.T) {
	g := l2grid.MustFromRows([][]float64{
		{0, 0.125, 3},
		{1e-3, 0, 12.5},
	})
	dir := t.TempDir()

	for _, name := range []string{"frame.csv", "frame.json"} {
		path := filepath.Join(dir, name)
		testutil.AssertNoError(t, WriteFile(path, g))

		back, err := ReadFile(path)
		testutil.AssertNoError(t, err)
		for r := 0; r < g.Rows(); r++ {
			for c := 0; c < g.Cols(); c++ {
				if back.At(r, c) != g.At(r, c) {
					t.Errorf("%s: (%d,%d) = %v, want %v", name, r, c, back.At(r, c), g.At(r, c))
				}
			}
		}
	}
}

func TestUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frame.bin")
	testutil.AssertNoError(t, os.WriteFile(path, []byte("x"), 0644))

	if _, err := ReadFile(path); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("ReadFile error = %v, want ErrUnknownFormat", err)
	}
	if err := WriteFile(path, l2grid.New(1, 1)); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("WriteFile error = %v, want ErrUnknownFormat", err)
	}
}

func TestWriteCSV_Format(t *testing.T) {
	var buf bytes.Buffer
	testutil.AssertNoError(t, WriteCSV(&buf, l2grid.MustFromRows([][]float64{{0, 1.5}, {2, 0}})))
	if got, want := buf.String(), "0,1.5\n2,0\n"; got != want {
		t.Errorf("WriteCSV = %q, want %q", got, want)
	}
}
