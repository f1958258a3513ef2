package dataset

import (
	"encoding/json"
	"os"

	"datasetforge/pkg/errutil"
)

// writeJSONL writes one JSON object per line, UTF-8, no trailing
// structure.
func writeJSONL(path string, pairs []QAPair) error {
	f, err := os.Create(path)
	if err != nil {
		return errutil.Internal("error writing dataset file", errutil.WithErr(err))
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, pair := range pairs {
		if err := enc.Encode(pair); err != nil {
			return errutil.Internal("error writing dataset file", errutil.WithErr(err))
		}
	}

	return f.Close()
}
