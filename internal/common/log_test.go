package common

import (
	"encoding/json"
	"strings"
	"testing"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const orderFilledSignature = "LogCanonicalOrderFilled(bytes32 indexed orderHash,address indexed orderMaker,uint256 fillAmount,uint256 triggerPrice,bytes32 orderFlags,(uint256 price,uint128 fee,bool isNegativeFee) fill)"

func TestConstructEventABI(t *testing.T) {
	event, err := ConstructEventABI("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)

	assert.Equal(t, "Transfer", event.Name)
	assert.Equal(t, "Transfer(address,address,uint256)", event.Sig)
	assert.Equal(t, gethCommon.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"), event.ID)
	require.Len(t, event.Inputs, 3)
	assert.True(t, event.Inputs[0].Indexed)
	assert.True(t, event.Inputs[1].Indexed)
	assert.False(t, event.Inputs[2].Indexed)
	assert.Equal(t, "value", event.Inputs[2].Name)
}

func TestConstructEventABIInvalid(t *testing.T) {
	_, err := ConstructEventABI("not a signature")
	assert.Error(t, err)

	_, err = ConstructEventABI("Broken(uint257 value)")
	assert.Error(t, err)
}

func TestConstructEventABITuples(t *testing.T) {
	event, err := ConstructEventABI("Batch(address indexed, (uint256 id,(bool ok,bytes data) inner)[] items, uint8)")
	require.NoError(t, err)

	require.Len(t, event.Inputs, 3)
	assert.Equal(t, "0", event.Inputs[0].Name)
	assert.True(t, event.Inputs[0].Indexed)
	assert.Equal(t, "items", event.Inputs[1].Name)
	assert.Equal(t, "(uint256,(bool,bytes))[]", event.Inputs[1].Type.String())
	assert.Equal(t, "2", event.Inputs[2].Name)
	assert.Equal(t, "Batch(address,(uint256,(bool,bytes))[],uint8)", event.Sig)

	_, err = ConstructEventABI("Broken((uint256 a, bool b items)")
	assert.Error(t, err)
}

func TestConstructFunctionABISelectors(t *testing.T) {
	name, err := ConstructFunctionABI("name()")
	require.NoError(t, err)
	assert.Equal(t, "0x06fdde03", hexutil.Encode(name.ID))

	decimals, err := ConstructFunctionABI("decimals()")
	require.NoError(t, err)
	assert.Equal(t, "0x313ce567", hexutil.Encode(decimals.ID))
}

func TestLogDecoderParseLogs(t *testing.T) {
	decoder, err := NewLogDecoder(orderFilledSignature)
	require.NoError(t, err)

	assert.Equal(t, []string{"orderHash", "orderMaker", "fillAmount", "triggerPrice", "orderFlags", "fill"}, decoder.ArgNames())

	matching := Log{
		Data: hexutil.MustDecode("0x000000000000000000000000000000000000000000000000b2da0f6658944b0600000000000000000000000000000000000000000000000000000000000000003492dc030870ae719a0babc07807601edd3fc7e150a6b4878d1c5571bd9995c00000000000000000000000000000000000000000000000e076c8d70085af000000000000000000000000000000000000000000000000000000469c6478f693140000000000000000000000000000000000000000000000000000000000000000"),
		Topics: []gethCommon.Hash{
			decoder.Topic0(),
			gethCommon.HexToHash("0xc148159472ef0bbd3a304d3d3637b8deeda456572700669fda4f8d0fad814402"),
			gethCommon.HexToHash("0x000000000000000000000000ff0cb0351a356ad16987e5809a8daaaf34f5adbe"),
		},
	}
	unrelated := Log{
		Topics: []gethCommon.Hash{gethCommon.HexToHash("0x01")},
	}

	columns := decoder.ParseLogs([]Log{matching, unrelated})
	for _, name := range decoder.ArgNames() {
		require.Len(t, columns[name], 2, name)
		assert.Nil(t, columns[name][1], name)
	}

	assert.Equal(t, gethCommon.HexToHash("0xc148159472ef0bbd3a304d3d3637b8deeda456572700669fda4f8d0fad814402").Bytes(), columns["orderHash"][0])
	assert.Equal(t, gethCommon.HexToAddress("0xff0cb0351a356ad16987e5809a8daaaf34f5adbe").Bytes(), columns["orderMaker"][0])
	assert.Equal(t, "12887630215921289990", columns["fillAmount"][0])
	assert.Equal(t, "0", columns["triggerPrice"][0])
	assert.Equal(t, hexutil.MustDecode("0x3492dc030870ae719a0babc07807601edd3fc7e150a6b4878d1c5571bd9995c0"), columns["orderFlags"][0])

	fill, ok := columns["fill"][0].(string)
	require.True(t, ok)
	values := decodeJSONNumbers(t, fill)
	assert.Equal(t, false, values["isNegativeFee"])
	assert.Equal(t, json.Number("4140630000000000000000"), values["price"])
	assert.Equal(t, json.Number("19875203709834004"), values["fee"])
}

func decodeJSONNumbers(t *testing.T, raw string) map[string]interface{} {
	t.Helper()
	decoder := json.NewDecoder(strings.NewReader(raw))
	decoder.UseNumber()
	var values map[string]interface{}
	require.NoError(t, decoder.Decode(&values))
	return values
}

func TestLogDecoderWrongTopicCount(t *testing.T) {
	decoder, err := NewLogDecoder("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)

	columns := decoder.ParseLogs([]Log{{
		Topics: []gethCommon.Hash{decoder.Topic0(), gethCommon.HexToHash("0x01")},
		Data:   make([]byte, 32),
	}})
	assert.Equal(t, []interface{}{nil}, columns["from"])
	assert.Equal(t, []interface{}{nil}, columns["value"])
}

func TestLogIsMined(t *testing.T) {
	n := hexutil.Uint64(1)
	hash := gethCommon.HexToHash("0x02")
	l := Log{BlockNumber: &n, TransactionHash: &hash, TransactionIndex: &n}
	assert.False(t, l.IsMined())
	l.LogIndex = &n
	assert.True(t, l.IsMined())

	assert.Nil(t, l.Topic(0))
}

func TestSliceToChunks(t *testing.T) {
	assert.Equal(t, [][]int{{1, 2}, {3, 4}, {5}}, SliceToChunks([]int{1, 2, 3, 4, 5}, 2))
	assert.Equal(t, [][]int{{1, 2}}, SliceToChunks([]int{1, 2}, 0))
	assert.Empty(t, SliceToChunks([]int{}, 2))
}
