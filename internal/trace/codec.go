package trace

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{"step", "kind", "i", "j", "value"}

func WriteJSON(w io.Writer, t *Trace) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(t)
}

func ReadJSON(r io.Reader) (*Trace, error) {
	var t Trace
	if err := json.NewDecoder(r).Decode(&t); err != nil {
		return nil, fmt.Errorf("decode trace: %w", err)
	}
	return &t, nil
}

// WriteCSV writes one row per operation.
func WriteCSV(w io.Writer, steps []Step) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i, s := range steps {
		row := []string{
			strconv.Itoa(i + 1),
			s.Kind,
			strconv.Itoa(s.I),
			strconv.Itoa(s.J),
			strconv.FormatFloat(s.Value, 'g', -1, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]Step, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 || strings.Join(rows[0], ",") != strings.Join(csvHeader, ",") {
		return nil, fmt.Errorf("missing header %q", strings.Join(csvHeader, ","))
	}

	steps := make([]Step, 0, len(rows)-1)
	for n, row := range rows[1:] {
		i, err1 := strconv.Atoi(row[2])
		j, err2 := strconv.Atoi(row[3])
		v, err3 := strconv.ParseFloat(row[4], 64)
		if err1 != nil || err2 != nil || err3 != nil {
			return nil, fmt.Errorf("row %d: malformed operation %v", n+2, row)
		}
		steps = append(steps, Step{Kind: row[1], I: i, J: j, Value: v})
	}
	return steps, nil
}

// metadata is the JSON sidecar of a directory trace.
type metadata struct {
	ID         string         `json:"id"`
	Algorithm  string         `json:"algorithm"`
	Input      []float64      `json:"input"`
	Created    time.Time      `json:"created"`
	Operations int            `json:"operations"`
	Counts     map[string]int `json:"counts"`
}

var createFile = func(path string) (io.WriteCloser, error) {
	return os.Create(path)
}

// writeFile creates path and runs write against it. A failed Close is
// reported: it can mean buffered data never reached the disk.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := createFile(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}

// Save writes a .json path as a single document; any other path becomes a
// directory holding metadata.json and operations.csv.
func Save(path string, t *Trace) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return writeFile(path, func(w io.Writer) error {
			return WriteJSON(w, t)
		})
	}

	if err := os.MkdirAll(path, 0755); err != nil {
		return err
	}

	meta := metadata{
		ID:         t.ID,
		Algorithm:  t.Algorithm,
		Input:      t.Input,
		Created:    t.Created,
		Operations: len(t.Operations),
		Counts:     t.Counts(),
	}
	err := writeFile(filepath.Join(path, "metadata.json"), func(w io.Writer) error {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(meta)
	})
	if err != nil {
		return err
	}

	return writeFile(filepath.Join(path, "operations.csv"), func(w io.Writer) error {
		return WriteCSV(w, t.Operations)
	})
}

func Load(path string) (*Trace, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return ReadJSON(f)
	}

	metaFile, err := os.Open(filepath.Join(path, "metadata.json"))
	if err != nil {
		return nil, err
	}
	defer metaFile.Close()

	var meta metadata
	if err := json.NewDecoder(metaFile).Decode(&meta); err != nil {
		return nil, fmt.Errorf("decode metadata: %w", err)
	}

	csvFile, err := os.Open(filepath.Join(path, "operations.csv"))
	if err != nil {
		return nil, err
	}
	defer csvFile.Close()

	steps, err := ReadCSV(csvFile)
	if err != nil {
		return nil, fmt.Errorf("read operations: %w", err)
	}
	if len(steps) != meta.Operations {
		return nil, fmt.Errorf("metadata lists %d operations, csv has %d", meta.Operations, len(steps))
	}

	return &Trace{
		ID:         meta.ID,
		Algorithm:  meta.Algorithm,
		Input:      meta.Input,
		Created:    meta.Created,
		Operations: steps,
	}, nil
}
