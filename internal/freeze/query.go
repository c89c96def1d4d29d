package freeze

import (
	"fmt"
	"strconv"
	"strings"

	gethCommon "github.com/ethereum/go-ethereum/common"
	config "github.com/thirdweb-dev/freeze/configs"
	"github.com/thirdweb-dev/freeze/internal/collect"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

const DefaultChunkSize = 1000

// MaxRangeBlocks bounds the number of blocks a single range entry may expand to.
const MaxRangeBlocks = 100_000_000

// Query is every (datatype, partition) pair a run collects.
type Query struct {
	Datatypes  []schema.Datatype
	Partitions []collect.Partition
}

// ParseBlocks expands block entries into a sorted, de-duplicated list. An entry is
// a single number or an inclusive "start:end" range.
func ParseBlocks(entries []string) ([]uint64, error) {
	blocks := common.NewSet[uint64]()
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		start, end, isRange := strings.Cut(entry, ":")
		from, err := parseBlockNumber(start)
		if err != nil {
			return nil, err
		}
		if !isRange {
			blocks.Add(from)
			continue
		}
		to, err := parseBlockNumber(end)
		if err != nil {
			return nil, err
		}
		if to < from {
			return nil, fmt.Errorf("invalid block range %q: end before start", entry)
		}
		if to-from >= MaxRangeBlocks {
			return nil, fmt.Errorf("invalid block range %q: more than %d blocks", entry, MaxRangeBlocks)
		}
		for n := from; ; n++ {
			blocks.Add(n)
			if n == to {
				break
			}
		}
	}
	return common.Sorted(blocks), nil
}

func parseBlockNumber(s string) (uint64, error) {
	s = strings.ReplaceAll(strings.TrimSpace(s), "_", "")
	n, err := strconv.ParseUint(s, 0, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid block number %q: %w", s, err)
	}
	return n, nil
}

func parseHashes(values []string) ([]gethCommon.Hash, error) {
	hashes := make([]gethCommon.Hash, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if len(v) != 66 || !strings.HasPrefix(v, "0x") {
			return nil, fmt.Errorf("invalid transaction hash %q", v)
		}
		hashes = append(hashes, gethCommon.HexToHash(v))
	}
	return hashes, nil
}

func parseAddresses(values []string) ([]gethCommon.Address, error) {
	seen := common.NewSet[gethCommon.Address]()
	addresses := make([]gethCommon.Address, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if !gethCommon.IsHexAddress(v) {
			return nil, fmt.Errorf("invalid address %q", v)
		}
		if address := gethCommon.HexToAddress(v); seen.Add(address) {
			addresses = append(addresses, address)
		}
	}
	return addresses, nil
}

// parseTopics reads one entry per topic position. An entry holds
// comma separated alternatives and may be empty to match anything.
func parseTopics(values []string) ([][]gethCommon.Hash, error) {
	if len(values) > 4 {
		return nil, fmt.Errorf("at most 4 topic positions are supported, got %d", len(values))
	}
	topics := make([][]gethCommon.Hash, len(values))
	for i, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		hashes, err := parseHashes(strings.Split(v, ","))
		if err != nil {
			return nil, fmt.Errorf("topic %d: %w", i, err)
		}
		topics[i] = hashes
	}
	return topics, nil
}

// QueryFromConfig builds the query of the freeze section. Blocks and
// transactions are split into partitions of chunkSize entries; addresses and
// topics are attached to every partition.
func QueryFromConfig(cfg config.FreezeConfig) (Query, error) {
	var q Query
	for _, name := range cfg.Datatypes {
		d, err := schema.ParseDatatype(name)
		if err != nil {
			return Query{}, err
		}
		q.Datatypes = append(q.Datatypes, d)
	}
	if len(q.Datatypes) == 0 {
		return Query{}, fmt.Errorf("no datatypes requested")
	}

	blocks, err := ParseBlocks(cfg.Blocks)
	if err != nil {
		return Query{}, err
	}
	txHashes, err := parseHashes(cfg.Transactions)
	if err != nil {
		return Query{}, err
	}
	addresses, err := parseAddresses(cfg.Addresses)
	if err != nil {
		return Query{}, err
	}
	topics, err := parseTopics(cfg.Topics)
	if err != nil {
		return Query{}, err
	}
	if len(blocks) == 0 && len(txHashes) == 0 {
		return Query{}, fmt.Errorf("no blocks or transactions requested")
	}

	chunkSize := cfg.ChunkSize
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	for _, chunk := range common.SliceToChunks(blocks, chunkSize) {
		q.Partitions = append(q.Partitions, collect.Partition{
			BlockNumbers: chunk,
			Addresses:    addresses,
			Topics:       topics,
		})
	}
	for _, chunk := range common.SliceToChunks(txHashes, chunkSize) {
		q.Partitions = append(q.Partitions, collect.Partition{
			TransactionHashes: chunk,
			Addresses:         addresses,
			Topics:            topics,
		})
	}
	return q, nil
}
