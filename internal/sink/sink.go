package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/metrics"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

type ISink interface {
	// Exists reports whether the fragment was already written.
	Exists(d schema.Datatype, label string) bool
	Write(ctx context.Context, d schema.Datatype, label string, frame *dataframe.Frame) (string, error)
}

// Sink writes fragments as parquet files under a directory and optionally
// copies every written file to S3.
type Sink struct {
	dir       string
	overwrite bool
	uploader  *S3Uploader
}

var _ ISink = (*Sink)(nil)

func New(dir string, overwrite bool, uploader *S3Uploader) (*Sink, error) {
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create output directory %s: %w", dir, err)
	}
	return &Sink{dir: dir, overwrite: overwrite, uploader: uploader}, nil
}

// FileName is the name of a fragment file, e.g. "blocks__00000000_to_00000999.parquet".
func FileName(d schema.Datatype, label string) string {
	return fmt.Sprintf("%s__%s.parquet", d, label)
}

func (s *Sink) Path(d schema.Datatype, label string) string {
	return filepath.Join(s.dir, FileName(d, label))
}

// Exists is always false when overwriting. A file that is not a readable
// parquet file, e.g. left behind by an interrupted copy, does not count.
func (s *Sink) Exists(d schema.Datatype, label string) bool {
	if s.overwrite {
		return false
	}
	path := s.Path(d, label)
	file, err := os.Open(path)
	if err != nil {
		return false
	}
	defer file.Close()
	info, err := file.Stat()
	if err != nil {
		return false
	}
	if _, err := parquet.OpenFile(file, info.Size()); err != nil {
		log.Warn().Err(err).Str("path", path).Msg("Existing file is not valid parquet, collecting it again")
		return false
	}
	return true
}

// Write stores the frame atomically: it is written to a temporary file in the
// same directory and renamed into place.
func (s *Sink) Write(ctx context.Context, d schema.Datatype, label string, frame *dataframe.Frame) (string, error) {
	path := s.Path(d, label)
	tmp, err := os.CreateTemp(s.dir, "."+FileName(d, label)+".*")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := dataframe.WriteParquet(tmp, frame); err != nil {
		tmp.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move %s into place: %w", path, err)
	}
	metrics.FilesWritten.WithLabelValues(d.String()).Inc()
	log.Debug().Str("path", path).Int("rows", frame.Height()).Msg("Wrote parquet file")

	if s.uploader != nil {
		if err := s.uploader.Upload(ctx, path, d, label); err != nil {
			return path, err
		}
	}
	return path, nil
}
