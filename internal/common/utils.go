package common

// SliceToChunks splits values into consecutive chunks of at most chunkSize.
// An empty input yields no chunks.
func SliceToChunks[T any](values []T, chunkSize int) [][]T {
	if len(values) == 0 {
		return nil
	}
	if chunkSize >= len(values) || chunkSize <= 0 {
		return [][]T{values}
	}
	var chunks [][]T
	for i := 0; i < len(values); i += chunkSize {
		end := i + chunkSize
		if end > len(values) {
			end = len(values)
		}
		chunks = append(chunks, values[i:end])
	}
	return chunks
}
