package common

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type DiffKind uint8

const (
	DiffSame DiffKind = iota
	DiffBorn
	DiffDied
	DiffChanged
)

func (k DiffKind) String() string {
	switch k {
	case DiffSame:
		return "same"
	case DiffBorn:
		return "born"
	case DiffDied:
		return "died"
	case DiffChanged:
		return "changed"
	}
	return fmt.Sprintf("DiffKind(%d)", uint8(k))
}

// Diff is one entry of a stateDiff trace. Born sets To, Died sets From,
// Changed sets both and Same sets neither.
//
// On the wire: "=" | {"+": v} | {"-": v} | {"*": {"from": a, "to": b}}
type Diff[T any] struct {
	Kind DiffKind
	From T
	To   T
}

type changedDiff[T any] struct {
	From T `json:"from"`
	To   T `json:"to"`
}

func (d *Diff[T]) UnmarshalJSON(data []byte) error {
	var marker string
	if err := json.Unmarshal(data, &marker); err == nil {
		if marker != "=" {
			return fmt.Errorf("invalid diff marker %q", marker)
		}
		*d = Diff[T]{Kind: DiffSame}
		return nil
	}

	var entries map[string]json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("invalid diff: %w", err)
	}
	if raw, ok := entries["+"]; ok {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*d = Diff[T]{Kind: DiffBorn, To: v}
		return nil
	}
	if raw, ok := entries["-"]; ok {
		var v T
		if err := json.Unmarshal(raw, &v); err != nil {
			return err
		}
		*d = Diff[T]{Kind: DiffDied, From: v}
		return nil
	}
	if raw, ok := entries["*"]; ok {
		var c changedDiff[T]
		if err := json.Unmarshal(raw, &c); err != nil {
			return err
		}
		*d = Diff[T]{Kind: DiffChanged, From: c.From, To: c.To}
		return nil
	}
	return fmt.Errorf("invalid diff: %s", string(data))
}

func (d Diff[T]) MarshalJSON() ([]byte, error) {
	switch d.Kind {
	case DiffSame:
		return json.Marshal("=")
	case DiffBorn:
		return json.Marshal(map[string]T{"+": d.To})
	case DiffDied:
		return json.Marshal(map[string]T{"-": d.From})
	case DiffChanged:
		return json.Marshal(map[string]changedDiff[T]{"*": {From: d.From, To: d.To}})
	}
	return nil, fmt.Errorf("unknown diff kind %d", d.Kind)
}

type AccountDiff struct {
	Balance Diff[hexutil.Big]                         `json:"balance"`
	Nonce   Diff[hexutil.Uint64]                      `json:"nonce"`
	Code    Diff[hexutil.Bytes]                       `json:"code"`
	Storage map[gethCommon.Hash]Diff[gethCommon.Hash] `json:"storage"`
}

type StateDiff map[gethCommon.Address]AccountDiff

// SortedAddresses returns the diff's addresses in ascending byte order.
func (s StateDiff) SortedAddresses() []gethCommon.Address {
	addresses := make([]gethCommon.Address, 0, len(s))
	for addr := range s {
		addresses = append(addresses, addr)
	}
	sort.Slice(addresses, func(i, j int) bool {
		return bytes.Compare(addresses[i][:], addresses[j][:]) < 0
	})
	return addresses
}

// BlockTrace is one element of trace_replayBlockTransactions / trace_replayTransaction
// called with the "stateDiff" trace type. StateDiff is nil when the node omitted it.
type BlockTrace struct {
	Output          hexutil.Bytes    `json:"output"`
	StateDiff       StateDiff        `json:"stateDiff"`
	TransactionHash *gethCommon.Hash `json:"transactionHash,omitempty"`
}

// StateDiffs is the state-diff response for a block (BlockNumber set) or a
// single transaction (TransactionHash set).
type StateDiffs struct {
	BlockNumber     *uint64          `json:"blockNumber,omitempty"`
	TransactionHash *gethCommon.Hash `json:"transactionHash,omitempty"`
	Traces          []BlockTrace     `json:"traces"`
}
