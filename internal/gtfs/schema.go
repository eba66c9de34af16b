package gtfs

import (
	"encoding/csv"
	"os"

	"github.com/fkmjec/prahadlo/internal/txerr"
)

// openRequired opens path, failing with IoFailure if it cannot be read and
// SchemaMismatch if its header is missing any of required. It returns the
// open file positioned at the start (rewound after the header check) so
// the caller can hand it to gocsv.Unmarshal.
func openRequired(path string, required []string) (*os.File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, txerr.Wrapf(txerr.IoFailure, err, "opening %s", path)
	}

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true
	header, err := r.Read()
	if err != nil {
		f.Close()
		return nil, txerr.Wrapf(txerr.IoFailure, err, "reading header of %s", path)
	}

	have := make(map[string]bool, len(header))
	for _, col := range header {
		have[col] = true
	}
	for _, col := range required {
		if !have[col] {
			f.Close()
			return nil, txerr.Newf(txerr.SchemaMismatch, "%s missing required column %q", path, col)
		}
	}

	if _, err := f.Seek(0, 0); err != nil {
		f.Close()
		return nil, txerr.Wrapf(txerr.IoFailure, err, "rewinding %s", path)
	}
	return f, nil
}
