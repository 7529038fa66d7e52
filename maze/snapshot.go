package maze

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v2"
)

// Snapshot is the YAML form of a maze. Each passage row is a string of 0 (wall) and
// 1 (open) characters.
type Snapshot struct {
	Rows        int          `yaml:"rows"`
	Columns     int          `yaml:"columns"`
	Seed        *int64       `yaml:"seed,omitempty"`
	Start       CellPosition `yaml:"start,flow"`
	Horizontals []string     `yaml:"horizontals"`
	Verticals   []string     `yaml:"verticals"`
}

// MarshalSnapshot serializes the maze to YAML. seed is recorded when not nil so the maze
// can be regenerated.
func (m *Maze) MarshalSnapshot(seed *int64) ([]byte, error) {
	snapshot := Snapshot{
		Rows:        m.Rows,
		Columns:     m.Columns,
		Seed:        seed,
		Start:       m.Start,
		Horizontals: encodeRows(m.Horizontals),
		Verticals:   encodeRows(m.Verticals),
	}
	return yaml.Marshal(&snapshot)
}

// LoadSnapshot parses a YAML snapshot and validates the resulting maze.
func LoadSnapshot(in []byte) (*Maze, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal(in, &snapshot); err != nil {
		return nil, fmt.Errorf("decoding snapshot: %w", err)
	}

	horizontals, err := decodeRows(snapshot.Horizontals)
	if err != nil {
		return nil, err
	}
	verticals, err := decodeRows(snapshot.Verticals)
	if err != nil {
		return nil, err
	}

	// A single column serializes its vertical rows as empty strings, which YAML may drop.
	if len(verticals) == 0 && snapshot.Columns == 1 {
		verticals = newMatrix(snapshot.Rows, 0)
	}

	m := &Maze{
		Rows:        snapshot.Rows,
		Columns:     snapshot.Columns,
		Horizontals: horizontals,
		Verticals:   verticals,
		Start:       snapshot.Start,
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func encodeRows(matrix [][]bool) []string {
	rows := make([]string, len(matrix))
	for i, row := range matrix {
		var b strings.Builder
		for _, open := range row {
			if open {
				b.WriteByte('1')
			} else {
				b.WriteByte('0')
			}
		}
		rows[i] = b.String()
	}
	return rows
}

func decodeRows(rows []string) ([][]bool, error) {
	matrix := make([][]bool, len(rows))
	for i, row := range rows {
		matrix[i] = make([]bool, len(row))
		for j, c := range row {
			switch c {
			case '1':
				matrix[i][j] = true
			case '0':
			default:
				return nil, fmt.Errorf("%w: unexpected %q in row %d", ErrMalformed, c, i)
			}
		}
	}
	return matrix, nil
}
