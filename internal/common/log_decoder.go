package common

import (
	"encoding/json"
	"fmt"
	"math/big"
	"reflect"

	"github.com/ethereum/go-ethereum/accounts/abi"
	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/rs/zerolog/log"
)

// LogDecoder turns logs of a single event into named argument columns.
type LogDecoder struct {
	Signature string
	Event     *abi.Event
}

func NewLogDecoder(signature string) (*LogDecoder, error) {
	event, err := ConstructEventABI(signature)
	if err != nil {
		return nil, fmt.Errorf("failed to construct event abi for %q: %w", signature, err)
	}
	return &LogDecoder{Signature: signature, Event: event}, nil
}

// Topic0 is the keccak hash of the event's canonical signature.
func (d *LogDecoder) Topic0() gethCommon.Hash {
	return d.Event.ID
}

// ArgNames returns the event argument names in declaration order.
func (d *LogDecoder) ArgNames() []string {
	names := make([]string, len(d.Event.Inputs))
	for i, input := range d.Event.Inputs {
		names[i] = input.Name
	}
	return names
}

// ParseLogs decodes every log into one value per event argument. Logs that do
// not match the event or fail to decode contribute nil so that each returned
// column has exactly len(logs) values.
func (d *LogDecoder) ParseLogs(logs []Log) map[string][]interface{} {
	names := d.ArgNames()
	columns := make(map[string][]interface{}, len(names))
	for _, name := range names {
		columns[name] = make([]interface{}, 0, len(logs))
	}

	for i := range logs {
		decoded, err := d.decode(&logs[i])
		if err != nil {
			log.Debug().Err(err).Str("event", d.Event.Name).Msg("failed to decode log")
		}
		for _, name := range names {
			var value interface{}
			if decoded != nil {
				value = normalizeAbiValue(decoded[name])
			}
			columns[name] = append(columns[name], value)
		}
	}
	return columns
}

func (d *LogDecoder) decode(l *Log) (map[string]interface{}, error) {
	if len(l.Topics) == 0 || l.Topics[0] != d.Event.ID {
		return nil, fmt.Errorf("log does not match event topic")
	}

	var indexed abi.Arguments
	for _, input := range d.Event.Inputs {
		if input.Indexed {
			indexed = append(indexed, input)
		}
	}
	if len(l.Topics)-1 != len(indexed) {
		return nil, fmt.Errorf("expected %d indexed topics, got %d", len(indexed), len(l.Topics)-1)
	}

	decoded := make(map[string]interface{}, len(d.Event.Inputs))
	if err := abi.ParseTopicsIntoMap(decoded, indexed, l.Topics[1:]); err != nil {
		return nil, fmt.Errorf("failed to parse indexed params: %w", err)
	}
	if err := d.Event.Inputs.NonIndexed().UnpackIntoMap(decoded, l.Data); err != nil {
		return nil, fmt.Errorf("failed to unpack non-indexed params: %w", err)
	}
	return decoded, nil
}

// normalizeAbiValue maps go-ethereum abi values onto the column value kinds:
// addresses and fixed bytes become []byte, big integers decimal strings,
// sized integers uint64/int64 and anything composite a JSON string.
func normalizeAbiValue(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case gethCommon.Address:
		return v.Bytes()
	case gethCommon.Hash:
		return v.Bytes()
	case *big.Int:
		return v.String()
	case bool, string:
		return v
	case []byte:
		return v
	case uint8:
		return uint64(v)
	case uint16:
		return uint64(v)
	case uint32:
		return uint64(v)
	case uint64:
		return v
	case int8:
		return int64(v)
	case int16:
		return int64(v)
	case int32:
		return int64(v)
	case int64:
		return v
	}

	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Array && rv.Type().Elem().Kind() == reflect.Uint8 {
		out := make([]byte, rv.Len())
		reflect.Copy(reflect.ValueOf(out), rv)
		return out
	}
	encoded, err := json.Marshal(value)
	if err != nil {
		return fmt.Sprintf("%v", value)
	}
	return string(encoded)
}
