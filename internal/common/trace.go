package common

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	gethCommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
)

type ActionType string

const (
	ActionCall    ActionType = "call"
	ActionCreate  ActionType = "create"
	ActionSuicide ActionType = "suicide"
	ActionReward  ActionType = "reward"
)

type CallAction struct {
	From     gethCommon.Address `json:"from"`
	To       gethCommon.Address `json:"to"`
	Value    hexutil.Big        `json:"value"`
	Gas      hexutil.Uint64     `json:"gas"`
	Input    hexutil.Bytes      `json:"input"`
	CallType string             `json:"callType"`
}

type CreateAction struct {
	From  gethCommon.Address `json:"from"`
	Value hexutil.Big        `json:"value"`
	Gas   hexutil.Uint64     `json:"gas"`
	Init  hexutil.Bytes      `json:"init"`
}

type SuicideAction struct {
	Address       gethCommon.Address `json:"address"`
	RefundAddress gethCommon.Address `json:"refundAddress"`
	Balance       hexutil.Big        `json:"balance"`
}

type RewardAction struct {
	Author     gethCommon.Address `json:"author"`
	Value      hexutil.Big        `json:"value"`
	RewardType string             `json:"rewardType"`
}

// Action holds exactly one of the four action variants, selected by Type.
type Action struct {
	Type    ActionType
	Call    *CallAction
	Create  *CreateAction
	Suicide *SuicideAction
	Reward  *RewardAction
}

type CallResult struct {
	GasUsed hexutil.Uint64 `json:"gasUsed"`
	Output  hexutil.Bytes  `json:"output"`
}

type CreateResult struct {
	GasUsed hexutil.Uint64     `json:"gasUsed"`
	Code    hexutil.Bytes      `json:"code"`
	Address gethCommon.Address `json:"address"`
}

// TraceResult holds the Call or Create result of a trace. Only one is set.
type TraceResult struct {
	Call   *CallResult
	Create *CreateResult
}

// Trace is one parity-style trace as returned by trace_block and trace_transaction.
type Trace struct {
	Action              Action
	Result              *TraceResult
	Error               string
	Subtraces           uint64
	TraceAddress        []uint64
	TransactionHash     *gethCommon.Hash
	TransactionPosition *uint64
	BlockNumber         uint64
	BlockHash           gethCommon.Hash
}

type rawTrace struct {
	Type                string           `json:"type"`
	Action              json.RawMessage  `json:"action"`
	Result              json.RawMessage  `json:"result,omitempty"`
	Error               string           `json:"error,omitempty"`
	Subtraces           uint64           `json:"subtraces"`
	TraceAddress        []uint64         `json:"traceAddress"`
	TransactionHash     *gethCommon.Hash `json:"transactionHash"`
	TransactionPosition *uint64          `json:"transactionPosition"`
	BlockNumber         uint64           `json:"blockNumber"`
	BlockHash           gethCommon.Hash  `json:"blockHash"`
}

func (t *Trace) UnmarshalJSON(data []byte) error {
	var raw rawTrace
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	action := Action{Type: ActionType(raw.Type)}
	var target interface{}
	switch action.Type {
	case ActionCall:
		action.Call = &CallAction{}
		target = action.Call
	case ActionCreate:
		action.Create = &CreateAction{}
		target = action.Create
	case ActionSuicide:
		action.Suicide = &SuicideAction{}
		target = action.Suicide
	case ActionReward:
		action.Reward = &RewardAction{}
		target = action.Reward
	default:
		return fmt.Errorf("unknown trace type %q", raw.Type)
	}
	if err := json.Unmarshal(raw.Action, target); err != nil {
		return fmt.Errorf("failed to decode %s action: %w", raw.Type, err)
	}

	var result *TraceResult
	if !isNull(raw.Result) {
		switch action.Type {
		case ActionCall:
			result = &TraceResult{Call: &CallResult{}}
			if err := json.Unmarshal(raw.Result, result.Call); err != nil {
				return fmt.Errorf("failed to decode call result: %w", err)
			}
		case ActionCreate:
			result = &TraceResult{Create: &CreateResult{}}
			if err := json.Unmarshal(raw.Result, result.Create); err != nil {
				return fmt.Errorf("failed to decode create result: %w", err)
			}
		}
	}

	*t = Trace{
		Action:              action,
		Result:              result,
		Error:               raw.Error,
		Subtraces:           raw.Subtraces,
		TraceAddress:        raw.TraceAddress,
		TransactionHash:     raw.TransactionHash,
		TransactionPosition: raw.TransactionPosition,
		BlockNumber:         raw.BlockNumber,
		BlockHash:           raw.BlockHash,
	}
	return nil
}

func (t Trace) MarshalJSON() ([]byte, error) {
	var action interface{}
	switch t.Action.Type {
	case ActionCall:
		action = t.Action.Call
	case ActionCreate:
		action = t.Action.Create
	case ActionSuicide:
		action = t.Action.Suicide
	case ActionReward:
		action = t.Action.Reward
	default:
		return nil, fmt.Errorf("unknown trace type %q", t.Action.Type)
	}
	actionJSON, err := json.Marshal(action)
	if err != nil {
		return nil, err
	}

	raw := rawTrace{
		Type:                string(t.Action.Type),
		Action:              actionJSON,
		Error:               t.Error,
		Subtraces:           t.Subtraces,
		TraceAddress:        t.TraceAddress,
		TransactionHash:     t.TransactionHash,
		TransactionPosition: t.TransactionPosition,
		BlockNumber:         t.BlockNumber,
		BlockHash:           t.BlockHash,
	}
	if raw.TraceAddress == nil {
		raw.TraceAddress = []uint64{}
	}
	if t.Result != nil {
		var result interface{}
		if t.Result.Create != nil {
			result = t.Result.Create
		} else {
			result = t.Result.Call
		}
		if raw.Result, err = json.Marshal(result); err != nil {
			return nil, err
		}
	}
	return json.Marshal(raw)
}

// IsRoot reports whether the trace is the top-level call of its transaction.
func (t *Trace) IsRoot() bool {
	return len(t.TraceAddress) == 0
}

// TraceAddressString joins the trace address path with underscores, e.g. "0_2_1".
func (t *Trace) TraceAddressString() string {
	parts := make([]string, len(t.TraceAddress))
	for i, idx := range t.TraceAddress {
		parts[i] = strconv.FormatUint(idx, 10)
	}
	return strings.Join(parts, "_")
}

func isNull(raw json.RawMessage) bool {
	return len(raw) == 0 || string(raw) == "null"
}
