package collect

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/ethereum/go-ethereum/accounts/abi"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/holiman/uint256"
	"github.com/rs/zerolog/log"
	"github.com/thirdweb-dev/freeze/internal/common"
	"github.com/thirdweb-dev/freeze/internal/dataframe"
	"github.com/thirdweb-dev/freeze/internal/rpc"
	"github.com/thirdweb-dev/freeze/internal/schema"
)

var erc20MetadataKind = &kind[erc20Metadata, Erc20MetadataColumns, *Erc20MetadataColumns]{
	datatype: schema.Erc20Metadata,
	byBlock: &Stage[erc20Metadata, Erc20MetadataColumns]{
		Dims:      []ChunkDim{DimBlockNumber, DimAddress},
		Extract:   extractErc20Metadata,
		Transform: transformErc20Metadata,
	},
}

var (
	nameSelector     = functionSelector("name()")
	symbolSelector   = functionSelector("symbol()")
	decimalsSelector = functionSelector("decimals()")

	stringArguments = abi.Arguments{{Type: mustNewType("string")}}
)

func functionSelector(signature string) []byte {
	method, err := common.ConstructFunctionABI(signature)
	if err != nil {
		panic(fmt.Sprintf("invalid function signature %s: %v", signature, err))
	}
	return method.ID
}

func mustNewType(t string) abi.Type {
	typ, err := abi.NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// erc20Metadata is the decoded metadata of one token at one block. A field is
// nil when the call reverted or returned something undecodable.
type erc20Metadata struct {
	blockNumber uint64
	address     gethCommon.Address
	name        *string
	symbol      *string
	decimals    *uint32
}

func extractErc20Metadata(ctx context.Context, req Request, fetcher rpc.IFetcher, _ *schema.Registry) (erc20Metadata, error) {
	blockNumber, err := req.BlockNumber()
	if err != nil {
		return erc20Metadata{}, err
	}
	address, err := req.Address()
	if err != nil {
		return erc20Metadata{}, err
	}
	metadata := erc20Metadata{blockNumber: blockNumber, address: address}

	name, err := callOptional(ctx, fetcher, address, nameSelector, blockNumber)
	if err != nil {
		return erc20Metadata{}, err
	}
	metadata.name = decodeStringOutput(name)

	symbol, err := callOptional(ctx, fetcher, address, symbolSelector, blockNumber)
	if err != nil {
		return erc20Metadata{}, err
	}
	metadata.symbol = decodeStringOutput(symbol)

	decimals, err := callOptional(ctx, fetcher, address, decimalsSelector, blockNumber)
	if err != nil {
		return erc20Metadata{}, err
	}
	metadata.decimals = decodeDecimalsOutput(decimals)
	return metadata, nil
}

// callOptional returns nil output when the call itself failed on chain.
// Transport failures are returned so the chunk can be retried.
func callOptional(ctx context.Context, fetcher rpc.IFetcher, to gethCommon.Address, data []byte, blockNumber uint64) ([]byte, error) {
	output, err := fetcher.Call(ctx, to, data, blockNumber)
	if err != nil {
		if rpc.IsExecutionError(err) {
			log.Debug().Err(err).Str("address", to.Hex()).Uint64("block", blockNumber).Msg("Token call reverted")
			return nil, nil
		}
		return nil, err
	}
	return output, nil
}

// decodeStringOutput decodes an ABI string, falling back to a NUL padded
// bytes32. Only non-empty valid UTF-8 is kept.
func decodeStringOutput(output []byte) *string {
	if len(output) == 0 {
		return nil
	}
	// a zero word also unpacks as the empty ABI string
	if values, err := stringArguments.Unpack(output); err == nil && len(values) == 1 {
		if s, ok := values[0].(string); ok && s != "" && utf8.ValidString(s) {
			return &s
		}
	}
	if len(output) == 32 {
		trimmed := bytes.TrimRight(output, "\x00")
		if len(trimmed) > 0 && utf8.Valid(trimmed) {
			s := string(trimmed)
			return &s
		}
	}
	return nil
}

func decodeDecimalsOutput(output []byte) *uint32 {
	if len(output) != 32 {
		return nil
	}
	value := new(uint256.Int).SetBytes32(output)
	if !value.IsUint64() || value.Uint64() > math.MaxUint32 {
		return nil
	}
	return ptr(uint32(value.Uint64()))
}

func transformErc20Metadata(metadata erc20Metadata, columns *Erc20MetadataColumns, schemas *schema.Registry) error {
	t, err := tableFor(schemas, schema.Erc20Metadata)
	if err != nil {
		return err
	}
	columns.nRows++
	store(t, "block_number", &columns.blockNumber, uint32(metadata.blockNumber))
	store(t, "erc20", &columns.erc20, metadata.address.Bytes())
	store(t, "name", &columns.name, metadata.name)
	store(t, "symbol", &columns.symbol, metadata.symbol)
	store(t, "decimals", &columns.decimals, metadata.decimals)
	return nil
}

type Erc20MetadataColumns struct {
	nRows       int
	blockNumber []uint32
	erc20       [][]byte
	name        []*string
	symbol      []*string
	decimals    []*uint32
}

func (c *Erc20MetadataColumns) toFrame(t *schema.Table, chainID uint64) (*dataframe.Frame, error) {
	b := newFrameBuilder(t, c.nRows)
	b.uint32s("block_number", c.blockNumber)
	b.binary("erc20", c.erc20)
	b.optStrings("name", c.name)
	b.optStrings("symbol", c.symbol)
	b.optUint32s("decimals", c.decimals)
	b.chainID(chainID)
	return b.build()
}
