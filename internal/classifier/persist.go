package classifier

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/klauspost/compress/zstd"

	"github.com/pable/go-mlb-hits/internal/dataset"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// KindLogistic identifies a *Logistic model in a saved artifact.
const KindLogistic = "logistic"

// ErrNoModel is returned by Load when no model file exists at the path.
var ErrNoModel = errors.New("classifier: no trained model")

type artifact struct {
	Columns   []string            `json:"columns"`
	Kind      string              `json:"kind"`
	TrainedAt time.Time           `json:"trained_at"`
	Rows      int                 `json:"rows"`
	Params    jsoniter.RawMessage `json:"params"`
}

func kindOf(m Model) string {
	switch m.(type) {
	case *Logistic:
		return KindLogistic
	default:
		return fmt.Sprintf("%T", m)
	}
}

// Save writes f to path, replacing the previous model. Paths ending in .zst
// are zstd-compressed.
func Save(path string, f *Fitted) error {
	params, err := json.Marshal(f.Model)
	if err != nil {
		return fmt.Errorf("encode model: %w", err)
	}
	data, err := json.MarshalIndent(artifact{
		Columns:   f.Columns,
		Kind:      kindOf(f.Model),
		TrainedAt: f.TrainedAt,
		Rows:      f.Rows,
		Params:    params,
	}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode artifact: %w", err)
	}

	return dataset.ReplaceFile(path, func(w io.Writer) error {
		if !strings.HasSuffix(path, ".zst") {
			_, err := w.Write(data)
			return err
		}
		enc, err := zstd.NewWriter(w)
		if err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
		if _, err := enc.Write(data); err != nil {
			enc.Close()
			return err
		}
		return enc.Close()
	})
}

// Load reads a model written by Save.
func Load(path string) (*Fitted, error) {
	fh, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoModel, path)
	}
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var src io.Reader = fh
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(fh)
		if err != nil {
			return nil, fmt.Errorf("zstd: %w", err)
		}
		defer dec.Close()
		src = dec
	}

	var a artifact
	if err := json.NewDecoder(src).Decode(&a); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if len(a.Columns) == 0 {
		return nil, fmt.Errorf("%s: model has no feature columns", path)
	}

	f := &Fitted{Columns: a.Columns, Kind: a.Kind, TrainedAt: a.TrainedAt, Rows: a.Rows}
	switch a.Kind {
	case KindLogistic:
		var m Logistic
		if err := json.Unmarshal(a.Params, &m); err != nil {
			return nil, fmt.Errorf("decode logistic params: %w", err)
		}
		if len(m.Weights) != len(a.Columns) || len(m.Means) != len(a.Columns) || len(m.Scales) != len(a.Columns) {
			return nil, fmt.Errorf("%w: logistic params do not match %d columns", ErrSchemaMismatch, len(a.Columns))
		}
		f.Model = &m
	default:
		return nil, fmt.Errorf("%s: unknown model kind %q", path, a.Kind)
	}
	return f, nil
}
