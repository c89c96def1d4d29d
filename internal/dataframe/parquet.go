package dataframe

import (
	"fmt"
	"io"

	"github.com/apache/arrow-go/v18/parquet"
	"github.com/apache/arrow-go/v18/parquet/compress"
	"github.com/apache/arrow-go/v18/parquet/pqarrow"
)

func writerProperties() *parquet.WriterProperties {
	return parquet.NewWriterProperties(
		parquet.WithCompression(compress.Codecs.Zstd),
		parquet.WithStats(true),
		parquet.WithAllocator(Allocator),
	)
}

// WriteParquet encodes the frame as a single zstd-compressed parquet file with
// one optional column per frame column, in frame order.
func WriteParquet(w io.Writer, f *Frame) error {
	if f.Width() == 0 {
		return fmt.Errorf("cannot write a frame without columns")
	}
	// the parquet writer closes sinks that implement io.Closer
	writer, err := pqarrow.NewFileWriter(f.record.Schema(), struct{ io.Writer }{w}, writerProperties(), pqarrow.DefaultWriterProps())
	if err != nil {
		return fmt.Errorf("failed to create parquet writer: %w", err)
	}
	if err := writer.Write(f.record); err != nil {
		writer.Close()
		return fmt.Errorf("failed to write parquet rows: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to close parquet writer: %w", err)
	}
	return nil
}
