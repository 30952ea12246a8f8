package pipeline

import (
	"context"
	"encoding/json"
	"os"

	"github.com/matzehuels/chartkit/pkg/dataset"
)

// Load reads the dataset described by opts without caching.
func Load(ctx context.Context, opts Options) (*dataset.Dataset, error) {
	schema, err := opts.Chart.Schema()
	if err != nil {
		return nil, err
	}
	loader := opts.Loader
	if loader == nil {
		fl := dataset.NewFileLoader(schema, opts.Logger)
		fl.Sheet = opts.Chart.Sheet
		loader = fl
	}
	return loader.Load(ctx, opts.Chart.Source)
}

// modTime returns the source's modification time in nanoseconds, or 0 when
// it cannot be determined, so edited files miss the dataset cache.
func modTime(source string) int64 {
	info, err := os.Stat(source)
	if err != nil {
		return 0
	}
	return info.ModTime().UnixNano()
}

func marshalDataset(ds *dataset.Dataset) ([]byte, error) {
	return json.Marshal(ds)
}

func unmarshalDataset(data []byte) (*dataset.Dataset, error) {
	var ds dataset.Dataset
	if err := json.Unmarshal(data, &ds); err != nil {
		return nil, err
	}
	return &ds, nil
}
