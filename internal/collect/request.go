package collect

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum"
	gethCommon "github.com/ethereum/go-ethereum/common"
)

// Request addresses a single unit of extraction. It is immutable once built.
type Request struct {
	blockNumber     *uint64
	transactionHash *gethCommon.Hash
	address         *gethCommon.Address
	topics          [][]gethCommon.Hash
}

type RequestOption func(*Request)

func WithBlockNumber(blockNumber uint64) RequestOption {
	return func(r *Request) {
		r.blockNumber = &blockNumber
	}
}

func WithTransactionHash(txHash gethCommon.Hash) RequestOption {
	return func(r *Request) {
		r.transactionHash = &txHash
	}
}

func WithAddress(address gethCommon.Address) RequestOption {
	return func(r *Request) {
		r.address = &address
	}
}

// WithTopics sets positional log topics. An empty position matches any topic.
func WithTopics(topics [][]gethCommon.Hash) RequestOption {
	return func(r *Request) {
		r.topics = copyTopics(topics)
	}
}

func NewRequest(opts ...RequestOption) Request {
	var r Request
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func (r Request) BlockNumber() (uint64, error) {
	if r.blockNumber == nil {
		return 0, fmt.Errorf("block number: %w", errMissingDimension)
	}
	return *r.blockNumber, nil
}

func (r Request) TransactionHash() (gethCommon.Hash, error) {
	if r.transactionHash == nil {
		return gethCommon.Hash{}, fmt.Errorf("transaction hash: %w", errMissingDimension)
	}
	return *r.transactionHash, nil
}

func (r Request) Address() (gethCommon.Address, error) {
	if r.address == nil {
		return gethCommon.Address{}, fmt.Errorf("address: %w", errMissingDimension)
	}
	return *r.address, nil
}

func (r Request) Topics() [][]gethCommon.Hash {
	return copyTopics(r.topics)
}

// LogFilter derives a single-block log filter, narrowed to the request's
// address and topics when they are set.
func (r Request) LogFilter() (ethereum.FilterQuery, error) {
	blockNumber, err := r.BlockNumber()
	if err != nil {
		return ethereum.FilterQuery{}, err
	}
	block := new(big.Int).SetUint64(blockNumber)
	filter := ethereum.FilterQuery{
		FromBlock: block,
		ToBlock:   new(big.Int).Set(block),
		Topics:    copyTopics(r.topics),
	}
	if r.address != nil {
		filter.Addresses = []gethCommon.Address{*r.address}
	}
	return filter, nil
}

func (r Request) String() string {
	s := "request{"
	if r.blockNumber != nil {
		s += fmt.Sprintf(" block=%d", *r.blockNumber)
	}
	if r.transactionHash != nil {
		s += " tx=" + r.transactionHash.Hex()
	}
	if r.address != nil {
		s += " address=" + r.address.Hex()
	}
	return s + " }"
}

func copyTopics(topics [][]gethCommon.Hash) [][]gethCommon.Hash {
	if topics == nil {
		return nil
	}
	out := make([][]gethCommon.Hash, len(topics))
	for i, position := range topics {
		out[i] = append([]gethCommon.Hash(nil), position...)
	}
	return out
}
