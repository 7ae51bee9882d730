// Package upload reads the dashboard's input form: an optional "file" and
// the "use_sample" toggle.
package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/MrJamesThe3rd/revdash/internal/report"
)

const (
	FieldFile      = "file"
	FieldUseSample = "use_sample"
)

// Source reads the request form into a report source. Requests without a
// file fall back to the sample. The body is capped at maxBytes.
func Source(w http.ResponseWriter, r *http.Request, maxBytes int64) (report.Source, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)

	if err := r.ParseMultipartForm(maxBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return report.Source{}, fmt.Errorf("parse form: %w", err)
	}

	useSample, _ := strconv.ParseBool(r.FormValue(FieldUseSample))

	src := report.Source{UseSample: useSample}

	file, header, err := r.FormFile(FieldFile)

	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
		return src, nil
	case err != nil:
		return report.Source{}, fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return report.Source{}, fmt.Errorf("read file: %w", err)
	}

	src.Filename = header.Filename
	src.Body = bytes.NewReader(data)

	return src, nil
}
