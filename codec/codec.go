// Package codec is the JSON wire format for blocks submitted to a node.
//
// A block looks like:
//
//	{
//	  "header": {"block_number": 1},
//	  "extrinsics": [
//	    {
//	      "caller": "alice",
//	      "call": {"pallet": "balances", "method": "transfer", "args": {"to": "bob", "amount": 66}}
//	    }
//	  ]
//	}
package codec

import (
	"bytes"
	"encoding/json"
	"maps"
	"math"
	"slices"
	"strings"

	"github.com/pkg/errors"
	"github.com/tidwall/gjson"

	"gopallet/runtime"
	"gopallet/support"
)

var (
	ErrInvalidJSON    = errors.New("invalid json")
	ErrMissingField   = errors.New("missing field")
	ErrUnknownCall    = errors.New("unknown call")
	ErrInvalidArgs    = errors.New("invalid call arguments")
	ErrNumberOverflow = errors.New("number out of range")
)

// CallEnvelope is the wire shape of a call.
type CallEnvelope struct {
	Pallet string          `json:"pallet"`
	Method string          `json:"method"`
	Args   json.RawMessage `json:"args"`
}

type wireExtrinsic struct {
	Caller runtime.AccountID `json:"caller"`
	Call   CallEnvelope      `json:"call"`
}

type wireBlock struct {
	Header     runtime.Header  `json:"header"`
	Extrinsics []wireExtrinsic `json:"extrinsics"`
}

type callDecoder func(args []byte) (runtime.RuntimeCall, error)

// Keyed by call name, which is "<pallet>.<method>".
var decoders = map[string]callDecoder{
	runtime.Remark{}.Name(): func(args []byte) (runtime.RuntimeCall, error) {
		var c runtime.Remark
		if err := decodeArgs(args, &c); err != nil {
			return nil, err
		}
		return runtime.SystemCall{Call: c}, nil
	},
	runtime.Transfer{}.Name(): func(args []byte) (runtime.RuntimeCall, error) {
		var c runtime.Transfer
		if err := decodeArgs(args, &c); err != nil {
			return nil, err
		}
		return runtime.BalancesCall{Call: c}, nil
	},
	runtime.CreateClaim{}.Name(): func(args []byte) (runtime.RuntimeCall, error) {
		var c runtime.CreateClaim
		if err := decodeArgs(args, &c); err != nil {
			return nil, err
		}
		return runtime.ProofOfExistenceCall{Call: c}, nil
	},
	runtime.RevokeClaim{}.Name(): func(args []byte) (runtime.RuntimeCall, error) {
		var c runtime.RevokeClaim
		if err := decodeArgs(args, &c); err != nil {
			return nil, err
		}
		return runtime.ProofOfExistenceCall{Call: c}, nil
	},
}

// Calls lists the call names the codec understands, sorted.
func Calls() []string {
	return slices.Sorted(maps.Keys(decoders))
}

func decodeArgs(args []byte, v any) error {
	if len(bytes.TrimSpace(args)) == 0 {
		args = []byte("{}")
	}
	dec := json.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(ErrInvalidArgs, err.Error())
	}
	return nil
}

// DecodeCall decodes a single call object.
func DecodeCall(data []byte) (runtime.RuntimeCall, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return decodeCall(gjson.ParseBytes(data))
}

func decodeCall(call gjson.Result) (runtime.RuntimeCall, error) {
	if !call.IsObject() {
		return nil, errors.Wrap(ErrMissingField, "call")
	}
	pallet := call.Get("pallet")
	method := call.Get("method")
	if pallet.Type != gjson.String || method.Type != gjson.String {
		return nil, errors.Wrap(ErrMissingField, "call.pallet and call.method")
	}

	name := pallet.String() + "." + method.String()
	decode, ok := decoders[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknownCall, "%q", name)
	}

	var args []byte
	if raw := call.Get("args"); raw.Exists() {
		if !raw.IsObject() {
			return nil, errors.Wrapf(ErrInvalidArgs, "%s: args must be an object", name)
		}
		args = []byte(raw.Raw)
	}

	rc, err := decode(args)
	if err != nil {
		return nil, errors.Wrap(err, name)
	}
	return rc, nil
}

// DecodeBlock parses a block. Every call must name a known pallet and
// method; an unknown call fails the whole block.
func DecodeBlock(data []byte) (runtime.Block, error) {
	var block runtime.Block

	if !gjson.ValidBytes(data) {
		return block, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)

	number := root.Get("header.block_number")
	if number.Type != gjson.Number {
		return block, errors.Wrap(ErrMissingField, "header.block_number")
	}
	if number.Num < 0 || number.Num > math.MaxUint32 || number.Num != math.Trunc(number.Num) {
		return block, errors.Wrapf(ErrNumberOverflow, "header.block_number %s", number.Raw)
	}
	block.Header.BlockNumber = runtime.BlockNumber(number.Uint())

	extrinsics := root.Get("extrinsics")
	if !extrinsics.IsArray() {
		if extrinsics.Exists() && extrinsics.Type != gjson.Null {
			return block, errors.Wrap(ErrMissingField, "extrinsics must be an array")
		}
		return block, nil
	}

	var decodeErr error
	extrinsics.ForEach(func(key, ext gjson.Result) bool {
		i := len(block.Extrinsics)

		caller := ext.Get("caller")
		if caller.Type != gjson.String {
			decodeErr = errors.Wrapf(ErrMissingField, "extrinsics[%d].caller", i)
			return false
		}

		call, err := decodeCall(ext.Get("call"))
		if err != nil {
			decodeErr = errors.Wrapf(err, "extrinsics[%d]", i)
			return false
		}

		block.Extrinsics = append(block.Extrinsics, runtime.Extrinsic{
			Caller: caller.String(),
			Call:   call,
		})
		return true
	})
	if decodeErr != nil {
		return runtime.Block{}, decodeErr
	}

	return block, nil
}

// EncodeCall builds the wire envelope for a call.
func EncodeCall(call runtime.RuntimeCall) (CallEnvelope, error) {
	var inner any
	switch c := call.(type) {
	case runtime.SystemCall:
		inner = c.Call
	case runtime.BalancesCall:
		inner = c.Call
	case runtime.ProofOfExistenceCall:
		inner = c.Call
	}
	if support.IsNilCall(inner) {
		return CallEnvelope{}, errors.Wrap(ErrUnknownCall, "cannot encode nil call")
	}

	pallet, method, ok := strings.Cut(call.Name(), ".")
	if !ok {
		return CallEnvelope{}, errors.Wrapf(ErrUnknownCall, "%q", call.Name())
	}

	args, err := json.Marshal(inner)
	if err != nil {
		return CallEnvelope{}, errors.Wrap(err, "failed to encode call arguments")
	}

	return CallEnvelope{Pallet: pallet, Method: method, Args: args}, nil
}

// EncodeBlock renders a block in the wire format accepted by DecodeBlock.
func EncodeBlock(block runtime.Block) ([]byte, error) {
	wb := wireBlock{
		Header:     block.Header,
		Extrinsics: make([]wireExtrinsic, 0, len(block.Extrinsics)),
	}
	for i, ext := range block.Extrinsics {
		env, err := EncodeCall(ext.Call)
		if err != nil {
			return nil, errors.Wrapf(err, "extrinsics[%d]", i)
		}
		wb.Extrinsics = append(wb.Extrinsics, wireExtrinsic{Caller: ext.Caller, Call: env})
	}
	return json.Marshal(wb)
}

// DecodeBlocks parses a JSON array of blocks.
func DecodeBlocks(data []byte) ([]runtime.Block, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	root := gjson.ParseBytes(data)
	if !root.IsArray() {
		return nil, errors.Wrap(ErrInvalidJSON, "expected an array of blocks")
	}

	var blocks []runtime.Block
	for i, raw := range root.Array() {
		block, err := DecodeBlock([]byte(raw.Raw))
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
		blocks = append(blocks, block)
	}
	return blocks, nil
}

// EncodeBlocks renders blocks as a JSON array.
func EncodeBlocks(blocks []runtime.Block) ([]byte, error) {
	raws := make([]json.RawMessage, 0, len(blocks))
	for i, block := range blocks {
		data, err := EncodeBlock(block)
		if err != nil {
			return nil, errors.Wrapf(err, "block %d", i)
		}
		raws = append(raws, data)
	}
	return json.Marshal(raws)
}
