// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package name - RPC services for reading and building name operations
package name

import (
	"bytes"
	"crypto/rand"
	"encoding/hex"
	"io"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/wire"
	"golang.org/x/time/rate"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/fee"
	"github.com/bitmark-inc/nameregd/mynames"
	"github.com/bitmark-inc/nameregd/nameop"
	"github.com/bitmark-inc/nameregd/names"
	"github.com/bitmark-inc/nameregd/rpc/ratelimit"
)

const (
	rateLimitName = 200
	rateBurstName = 1000

	// DefaultScanCount - rows returned when no count is given
	DefaultScanCount = 500

	// MaximumScanCount - largest count accepted
	MaximumScanCount = 1000
)

//go:generate mockgen -source=name.go -destination=mocks/name.go -package=mocks

// Query - registry reads
type Query interface {
	CurrentValue(name []byte) (*names.Value, error)
	Scan(start []byte, limit int) ([]names.Entry, error)
	MinimumFee(height uint64) int64
	NextBlockFee() int64
}

// Checker - memory pool acceptance against the current tip
type Checker interface {
	Check(tx *wire.MsgTx) error
}

// Wallet - names owned or reserved by this node
type Wallet interface {
	Reserve(name []byte, salt []byte, txID string)
	Get(name []byte) (mynames.Item, bool)
	List(start []byte, count int) []mynames.Item
}

// Name - type for RPC calls
type Name struct {
	Log            *logger.L
	Limiter        *rate.Limiter
	query          Query
	checker        Checker
	wallet         Wallet
	addressVersion byte
	random         io.Reader
}

// New - create the name RPC service
func New(log *logger.L, query Query, checker Checker, wallet Wallet, addressVersion byte) *Name {
	return &Name{
		Log:            log,
		Limiter:        rate.NewLimiter(rateLimitName, rateBurstName),
		query:          query,
		checker:        checker,
		wallet:         wallet,
		addressVersion: addressVersion,
		random:         rand.Reader,
	}
}

// ---

// ShowArguments - name to look up
//
// names are opaque bytes; NameHex takes precedence over Name
type ShowArguments struct {
	Name    string `json:"name"`
	NameHex string `json:"name_hex"`
}

// ShowReply - current state of a name
type ShowReply struct {
	Name      string `json:"name"`
	NameHex   string `json:"name_hex"`
	Value     string `json:"value,omitempty"`
	ValueHex  string `json:"value_hex,omitempty"`
	Height    uint64 `json:"height"`
	ExpiresIn int64  `json:"expires_in"`
	Expired   bool   `json:"expired"`
}

// Show - current value of a name
func (n *Name) Show(arguments *ShowArguments, reply *ShowReply) error {

	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}
	name, err := bytesArgument(arguments.Name, arguments.NameHex)
	if nil != err {
		return err
	}
	if 0 == len(name) {
		return fault.ErrMissingParameters
	}

	v, err := n.query.CurrentValue(name)
	if nil != err {
		return err
	}

	reply.Name = string(v.Name)
	reply.NameHex = hex.EncodeToString(v.Name)
	reply.Value = string(v.Value)
	reply.ValueHex = hex.EncodeToString(v.Value)
	reply.Height = v.Height
	reply.ExpiresIn = v.ExpiresIn
	reply.Expired = v.Expired

	return nil
}

// ---

// ScanArguments - where to start and how many
type ScanArguments struct {
	Start    string `json:"start"`
	StartHex string `json:"start_hex"`
	Count    int    `json:"count"`
}

// ScanEntry - one row of a scan
type ScanEntry struct {
	Name      string `json:"name"`
	NameHex   string `json:"name_hex"`
	Value     string `json:"value,omitempty"`
	ValueHex  string `json:"value_hex,omitempty"`
	ExpiresIn int64  `json:"expires_in"`
	Expired   bool   `json:"expired,omitempty"`
}

// ScanReply - rows in name order
type ScanReply struct {
	Names []ScanEntry `json:"names"`
}

// Scan - list registered names from a starting name
func (n *Name) Scan(arguments *ScanArguments, reply *ScanReply) error {

	start, count, err := scanRange(arguments)
	if nil != err {
		return err
	}

	if err := ratelimit.LimitN(n.Limiter, count, MaximumScanCount); nil != err {
		return err
	}

	entries, err := n.query.Scan(start, count)
	if nil != err {
		return err
	}

	reply.Names = make([]ScanEntry, len(entries))
	for i, e := range entries {
		reply.Names[i] = ScanEntry{
			Name:      string(e.Name),
			NameHex:   hex.EncodeToString(e.Name),
			Value:     string(e.Value),
			ValueHex:  hex.EncodeToString(e.Value),
			ExpiresIn: e.ExpiresIn,
			Expired:   e.Expired,
		}
	}
	return nil
}

// start name and row count with defaults applied
func scanRange(arguments *ScanArguments) ([]byte, int, error) {
	if nil == arguments {
		return []byte{}, DefaultScanCount, nil
	}
	start, err := bytesArgument(arguments.Start, arguments.StartHex)
	if nil != err {
		return nil, 0, err
	}
	count := arguments.Count
	if 0 == count {
		count = DefaultScanCount
	}
	return start, count, nil
}

// ---

// ListEntry - one name held by this node
type ListEntry struct {
	Name      string `json:"name"`
	NameHex   string `json:"name_hex"`
	TxID      string `json:"txid,omitempty"`
	Reserved  bool   `json:"reserved,omitempty"`
	Value     string `json:"value,omitempty"`
	ValueHex  string `json:"value_hex,omitempty"`
	ExpiresIn int64  `json:"expires_in,omitempty"`
	Expired   bool   `json:"expired,omitempty"`
}

// ListReply - names held by this node in name order
type ListReply struct {
	Names []ListEntry `json:"names"`
}

// List - names owned or reserved by this node
func (n *Name) List(arguments *ScanArguments, reply *ListReply) error {

	start, count, err := scanRange(arguments)
	if nil != err {
		return err
	}

	if err := ratelimit.LimitN(n.Limiter, count, MaximumScanCount); nil != err {
		return err
	}

	items := n.wallet.List(start, count)
	reply.Names = make([]ListEntry, 0, len(items))
	for _, item := range items {
		entry := ListEntry{
			Name:     item.Name,
			NameHex:  hex.EncodeToString([]byte(item.Name)),
			TxID:     item.TxID,
			Reserved: item.Reserved,
		}

		if !item.Reserved {
			v, err := n.query.CurrentValue([]byte(item.Name))
			switch {
			case nil == err:
				entry.Value = string(v.Value)
				entry.ValueHex = hex.EncodeToString(v.Value)
				entry.ExpiresIn = v.ExpiresIn
				entry.Expired = v.Expired
			case fault.ErrNameNotFound == err:
				entry.Expired = true
			default:
				return err
			}
		}
		reply.Names = append(reply.Names, entry)
	}
	return nil
}

// ---

// NewArguments - name to reserve and optional owner address
type NewArguments struct {
	Name    string `json:"name"`
	NameHex string `json:"name_hex"`
	Address string `json:"address"`
}

// NewReply - the output script to fund and the salt to keep
type NewReply struct {
	Name       string `json:"name"`
	NameHex    string `json:"name_hex"`
	Salt       string `json:"salt"`
	Commitment string `json:"commitment"`
	Script     string `json:"script"`
	Amount     int64  `json:"amount"`
}

// New - build a name_new output script
//
// without an address the script is only the name prefix
func (n *Name) New(arguments *NewArguments, reply *NewReply) error {

	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}
	name, err := bytesArgument(arguments.Name, arguments.NameHex)
	if nil != err {
		return err
	}
	if 0 == len(name) {
		return fault.ErrMissingParameters
	}

	spending, err := n.spendingScript(arguments.Address)
	if nil != err {
		return err
	}

	op, salt, err := nameop.NewOperation(name, n.random)
	if nil != err {
		return err
	}

	n.wallet.Reserve(name, salt, "")

	reply.Name = string(name)
	reply.NameHex = hex.EncodeToString(name)
	reply.Salt = hex.EncodeToString(salt)
	reply.Commitment = hex.EncodeToString(op.Commitment())
	reply.Script = hex.EncodeToString(op.Script(spending))
	reply.Amount = fee.MinimumAmount

	return nil
}

// ---

// FirstUpdateArguments - reveal a reservation
//
// the salt may be omitted if the reservation was built by this node
type FirstUpdateArguments struct {
	Name     string `json:"name"`
	NameHex  string `json:"name_hex"`
	Salt     string `json:"salt"`
	Value    string `json:"value"`
	ValueHex string `json:"value_hex"`
	Address  string `json:"address"`
}

// UpdateReply - output script and the amounts to pay
type UpdateReply struct {
	Script     string `json:"script"`
	Amount     int64  `json:"amount"`
	NetworkFee int64  `json:"network_fee,omitempty"`
}

// FirstUpdate - build a name_firstupdate output script
func (n *Name) FirstUpdate(arguments *FirstUpdateArguments, reply *UpdateReply) error {

	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}
	name, value, err := nameAndValue(arguments.Name, arguments.NameHex, arguments.Value, arguments.ValueHex)
	if nil != err {
		return err
	}

	var salt []byte
	if "" == arguments.Salt {
		item, ok := n.wallet.Get(name)
		if !ok || nil == item.Salt {
			return fault.ErrSaltNotFound
		}
		salt = item.Salt
	} else {
		salt, err = hex.DecodeString(arguments.Salt)
		if nil != err {
			return fault.ErrInvalidHex
		}
	}

	spending, err := n.spendingScript(arguments.Address)
	if nil != err {
		return err
	}

	op, err := nameop.FirstUpdateOperation(name, salt, value)
	if nil != err {
		return err
	}

	reply.Script = hex.EncodeToString(op.Script(spending))
	reply.Amount = fee.MinimumAmount
	reply.NetworkFee = fee.RoundUp(n.query.NextBlockFee())

	return nil
}

// ---

// UpdateArguments - new value for a registered name
type UpdateArguments struct {
	Name     string `json:"name"`
	NameHex  string `json:"name_hex"`
	Value    string `json:"value"`
	ValueHex string `json:"value_hex"`
	Address  string `json:"address"`
}

// Update - build a name_update output script
func (n *Name) Update(arguments *UpdateArguments, reply *UpdateReply) error {

	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}

	if nil == arguments {
		return fault.ErrMissingParameters
	}
	name, value, err := nameAndValue(arguments.Name, arguments.NameHex, arguments.Value, arguments.ValueHex)
	if nil != err {
		return err
	}

	spending, err := n.spendingScript(arguments.Address)
	if nil != err {
		return err
	}

	op, err := nameop.UpdateOperation(name, value)
	if nil != err {
		return err
	}

	reply.Script = hex.EncodeToString(op.Script(spending))
	reply.Amount = fee.MinimumAmount

	return nil
}

// ---

// FeeArguments - zero height means the next block
type FeeArguments struct {
	Height uint64 `json:"height"`
}

// FeeReply - minimum network fee for a name_firstupdate
type FeeReply struct {
	Height  uint64  `json:"height,omitempty"`
	Fee     int64   `json:"fee"`
	Rounded int64   `json:"rounded"`
	Coins   float64 `json:"coins"`
}

// Fee - the network fee schedule
func (n *Name) Fee(arguments *FeeArguments, reply *FeeReply) error {

	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}

	if nil == arguments || 0 == arguments.Height {
		reply.Fee = n.query.NextBlockFee()
	} else {
		reply.Height = arguments.Height
		reply.Fee = n.query.MinimumFee(arguments.Height)
	}
	reply.Rounded = fee.RoundUp(reply.Fee)
	reply.Coins = fee.Amount(reply.Rounded)

	return nil
}

// ---

// CheckArguments - a hex encoded signed transaction
type CheckArguments struct {
	Transaction string `json:"transaction"`
}

// CheckReply - summary of an acceptable transaction
type CheckReply struct {
	TxID      string   `json:"txid"`
	Operation string   `json:"operation,omitempty"`
	Name      string   `json:"name,omitempty"`
	NameHex   string   `json:"name_hex,omitempty"`
	Outputs   []string `json:"outputs"`
}

// Check - would the transaction be accepted to the memory pool
func (n *Name) Check(arguments *CheckArguments, reply *CheckReply) error {

	if err := ratelimit.Limit(n.Limiter); nil != err {
		return err
	}

	if nil == arguments || "" == arguments.Transaction {
		return fault.ErrMissingParameters
	}

	packed, err := hex.DecodeString(arguments.Transaction)
	if nil != err {
		return fault.ErrInvalidHex
	}

	tx := &wire.MsgTx{}
	if err := tx.Deserialize(bytes.NewReader(packed)); nil != err {
		n.Log.Debugf("check: deserialise error: %s", err)
		return fault.ErrInvalidTransaction
	}

	if err := n.checker.Check(tx); nil != err {
		return err
	}

	reply.TxID = tx.TxHash().String()
	if nameop.IsNameTransaction(tx) {
		if op, _, err := nameop.Extract(tx); nil == err {
			reply.Operation = op.Kind.String()
			if nameop.New != op.Kind {
				reply.Name = string(op.Name())
				reply.NameHex = hex.EncodeToString(op.Name())
			}
		}
	}

	reply.Outputs = make([]string, len(tx.TxOut))
	for i, out := range tx.TxOut {
		if label, ok := nameop.Describe(out.PkScript, n.addressVersion); ok {
			reply.Outputs[i] = label
		} else {
			reply.Outputs[i] = hex.EncodeToString(out.PkScript)
		}
	}

	return nil
}

// pay-to-pubkey-hash for the address, empty for no address
func (n *Name) spendingScript(address string) ([]byte, error) {
	if "" == address {
		return nil, nil
	}
	hash, err := nameop.DecodeAddress(n.addressVersion, address)
	if nil != err {
		return nil, err
	}
	return nameop.PayToPubKeyHash(hash), nil
}

// text or hex form of an opaque byte argument, hex takes precedence
func bytesArgument(text string, hexText string) ([]byte, error) {
	if "" == hexText {
		return []byte(text), nil
	}
	b, err := hex.DecodeString(hexText)
	if nil != err {
		return nil, fault.ErrInvalidHex
	}
	return b, nil
}

// a name is required, a value may be empty
func nameAndValue(nameText string, nameHex string, valueText string, valueHex string) ([]byte, []byte, error) {
	name, err := bytesArgument(nameText, nameHex)
	if nil != err {
		return nil, nil, err
	}
	if 0 == len(name) {
		return nil, nil, fault.ErrMissingParameters
	}
	value, err := bytesArgument(valueText, valueHex)
	if nil != err {
		return nil, nil, err
	}
	return name, value, nil
}
