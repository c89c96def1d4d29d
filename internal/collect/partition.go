package collect

import (
	"fmt"

	gethCommon "github.com/ethereum/go-ethereum/common"
)

// ChunkDim is one axis a partition can be split along.
type ChunkDim int

const (
	DimBlockNumber ChunkDim = iota
	DimTransactionHash
	DimAddress
)

func (d ChunkDim) String() string {
	switch d {
	case DimBlockNumber:
		return "block_number"
	case DimTransactionHash:
		return "transaction_hash"
	case DimAddress:
		return "address"
	}
	return fmt.Sprintf("ChunkDim(%d)", int(d))
}

// Partition is the unit of work of one chunk: the values of every dimension
// the chunk covers. Topics are attached to every request unchanged.
type Partition struct {
	BlockNumbers      []uint64
	TransactionHashes []gethCommon.Hash
	Addresses         []gethCommon.Address
	Topics            [][]gethCommon.Hash
	Label             string
}

func (p Partition) size(dim ChunkDim) int {
	switch dim {
	case DimBlockNumber:
		return len(p.BlockNumbers)
	case DimTransactionHash:
		return len(p.TransactionHashes)
	case DimAddress:
		return len(p.Addresses)
	}
	return 0
}

func (p Partition) option(dim ChunkDim, i int) RequestOption {
	switch dim {
	case DimBlockNumber:
		return WithBlockNumber(p.BlockNumbers[i])
	case DimTransactionHash:
		return WithTransactionHash(p.TransactionHashes[i])
	case DimAddress:
		return WithAddress(p.Addresses[i])
	}
	return func(*Request) {}
}

// Requests expands the partition into the cartesian product of its required
// dimensions and of the optional dimensions it carries values for. Requests
// are ordered with the first dimension varying slowest.
func (p Partition) Requests(required []ChunkDim, optional []ChunkDim) ([]Request, error) {
	var dims []ChunkDim
	for _, dim := range required {
		if p.size(dim) == 0 {
			return nil, fmt.Errorf("partition has no %s values: %w", dim, errMissingDimension)
		}
		dims = append(dims, dim)
	}
	for _, dim := range optional {
		if p.size(dim) > 0 {
			dims = append(dims, dim)
		}
	}

	combos := [][]RequestOption{nil}
	for _, dim := range dims {
		next := make([][]RequestOption, 0, len(combos)*p.size(dim))
		for _, combo := range combos {
			for i := 0; i < p.size(dim); i++ {
				opts := append(append([]RequestOption(nil), combo...), p.option(dim, i))
				next = append(next, opts)
			}
		}
		combos = next
	}

	requests := make([]Request, len(combos))
	for i, opts := range combos {
		if len(p.Topics) > 0 {
			opts = append(opts, WithTopics(p.Topics))
		}
		requests[i] = NewRequest(opts...)
	}
	return requests, nil
}

// String labels the partition for logs and file names.
func (p Partition) String() string {
	if p.Label != "" {
		return p.Label
	}
	switch {
	case len(p.BlockNumbers) > 0:
		return fmt.Sprintf("%08d_to_%08d", p.BlockNumbers[0], p.BlockNumbers[len(p.BlockNumbers)-1])
	case len(p.TransactionHashes) > 0:
		return fmt.Sprintf("%s_%d_txs", p.TransactionHashes[0].Hex()[:10], len(p.TransactionHashes))
	}
	return "empty"
}
