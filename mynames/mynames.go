// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package mynames - local index of names held by this node's addresses
//
// advisory only: nothing here is read by validation
package mynames

import (
	"encoding/hex"
	"os"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/wire"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/utils"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/nameop"
)

const snapshotVersion = 1

// Item - one owned or reserved name
type Item struct {
	Name     string `msgpack:"name"`
	TxID     string `msgpack:"txid"`
	Salt     []byte `msgpack:"salt,omitempty"`
	Reserved bool   `msgpack:"reserved"`
}

type snapshot struct {
	Version int    `msgpack:"version"`
	Items   []Item `msgpack:"items"`
}

// MyNames - ordered name index
type MyNames struct {
	sync.RWMutex
	log   *logger.L
	file  string
	owned map[string]struct{}
	names *treemap.Map
}

// New - create the index, loading the snapshot file if it exists
//
// owned holds the public key hashes of this node's addresses
func New(log *logger.L, file string, owned [][]byte) (*MyNames, error) {
	m := &MyNames{
		log:   log,
		file:  file,
		owned: make(map[string]struct{}),
		names: treemap.NewWith(utils.StringComparator),
	}
	for _, hash := range owned {
		m.owned[hex.EncodeToString(hash)] = struct{}{}
	}

	if "" == file {
		return m, nil
	}
	if _, err := os.Stat(file); nil != err {
		if os.IsNotExist(err) {
			return m, nil
		}
		return nil, err
	}
	if err := m.load(); nil != err {
		return nil, err
	}
	return m, nil
}

// Owns - true if a public key hash belongs to this node
func (m *MyNames) Owns(hash []byte) bool {
	_, ok := m.owned[hex.EncodeToString(hash)]
	return ok
}

// Reserve - remember a name_new built by this node and its salt
//
// a name already owned keeps its registration and only takes the new salt
func (m *MyNames) Reserve(name []byte, salt []byte, txID string) {
	m.Lock()
	defer m.Unlock()

	if v, found := m.names.Get(string(name)); found && !v.(Item).Reserved {
		item := v.(Item)
		item.Salt = salt
		m.names.Put(string(name), item)
		m.log.Infof("reserve: %q  already owned  tx: %s", name, item.TxID)
		return
	}

	m.names.Put(string(name), Item{
		Name:     string(name),
		TxID:     txID,
		Salt:     salt,
		Reserved: true,
	})
	m.log.Infof("reserve: %q  tx: %s", name, txID)
}

// Observe - update the index from a confirmed transaction
//
// returns true if the index changed
func (m *MyNames) Observe(tx *wire.MsgTx) bool {
	if !nameop.IsNameTransaction(tx) {
		return false
	}
	op, index, err := nameop.Extract(tx)
	if nil != err || nameop.New == op.Kind {
		return false
	}

	name := string(op.Name())
	spending := nameop.SpendingScript(tx.TxOut[index].PkScript)

	m.Lock()
	defer m.Unlock()

	if hash, ok := nameop.PubKeyHash(spending); ok && m.Owns(hash) {
		txID := tx.TxHash().String()
		item := Item{
			Name: name,
			TxID: txID,
		}
		// salt survives the reveal for Unobserve
		if v, found := m.names.Get(name); found && nameop.FirstUpdate == op.Kind {
			item.Salt = v.(Item).Salt
		}
		m.names.Put(name, item)
		m.log.Infof("%s: %q  tx: %s", op.Kind, name, txID)
		return true
	}

	if _, found := m.names.Get(name); found {
		m.names.Remove(name)
		m.log.Infof("%s: %q  transferred away", op.Kind, name)
		return true
	}
	return false
}

// Unobserve - undo Observe for a transaction in a disconnected block
//
// only an entry last written by tx changes; a revealed name with a
// known salt returns to its reservation, anything else is dropped
// until Restore puts back the output tx had spent
func (m *MyNames) Unobserve(tx *wire.MsgTx) bool {
	if !nameop.IsNameTransaction(tx) {
		return false
	}
	op, _, err := nameop.Extract(tx)
	if nil != err || nameop.New == op.Kind {
		return false
	}

	name := string(op.Name())
	txID := tx.TxHash().String()

	m.Lock()
	defer m.Unlock()

	v, found := m.names.Get(name)
	if !found || txID != v.(Item).TxID {
		return false
	}
	item := v.(Item)

	if nameop.FirstUpdate == op.Kind && nil != item.Salt {
		m.names.Put(name, Item{
			Name:     name,
			Salt:     item.Salt,
			Reserved: true,
		})
		m.log.Infof("disconnect: %q  reserved again", name)
		return true
	}

	m.names.Remove(name)
	m.log.Infof("disconnect: %q  tx: %s", name, txID)
	return true
}

// Restore - a name output made unspent again by a disconnect
func (m *MyNames) Restore(txID chainhash.Hash, pkScript []byte) bool {
	op, _, ok := nameop.Decode(pkScript)
	if !ok || nameop.New == op.Kind {
		return false
	}

	hash, ok := nameop.PubKeyHash(nameop.SpendingScript(pkScript))
	if !ok || !m.Owns(hash) {
		return false
	}

	name := string(op.Name())

	m.Lock()
	defer m.Unlock()

	item := Item{
		Name: name,
		TxID: txID.String(),
	}
	if v, found := m.names.Get(name); found {
		item.Salt = v.(Item).Salt
	}
	m.names.Put(name, item)
	m.log.Infof("restore: %q  tx: %s", name, txID)
	return true
}

// Get - a single entry
func (m *MyNames) Get(name []byte) (Item, bool) {
	m.RLock()
	defer m.RUnlock()

	v, found := m.names.Get(string(name))
	if !found {
		return Item{}, false
	}
	return v.(Item), true
}

// List - entries in name order from start, at most count
func (m *MyNames) List(start []byte, count int) []Item {
	m.RLock()
	defer m.RUnlock()

	items := make([]Item, 0, count)
	it := m.names.Iterator()
	for it.Next() && len(items) < count {
		if it.Key().(string) < string(start) {
			continue
		}
		items = append(items, it.Value().(Item))
	}
	return items
}

// Count - number of entries
func (m *MyNames) Count() int {
	m.RLock()
	defer m.RUnlock()
	return m.names.Size()
}

// Save - write a snapshot, replacing the file atomically
func (m *MyNames) Save() error {
	if "" == m.file {
		return nil
	}

	m.RLock()
	s := snapshot{
		Version: snapshotVersion,
		Items:   make([]Item, 0, m.names.Size()),
	}
	for _, v := range m.names.Values() {
		s.Items = append(s.Items, v.(Item))
	}
	m.RUnlock()

	data, err := msgpack.Marshal(&s)
	if nil != err {
		return err
	}

	temporary := m.file + ".new"
	if err := os.WriteFile(temporary, data, 0600); nil != err {
		return err
	}
	if err := os.Rename(temporary, m.file); nil != err {
		return err
	}
	m.log.Debugf("saved: %d names to: %q", len(s.Items), m.file)
	return nil
}

func (m *MyNames) load() error {
	data, err := os.ReadFile(m.file)
	if nil != err {
		return err
	}

	var s snapshot
	if err := msgpack.Unmarshal(data, &s); nil != err {
		m.log.Errorf("load: %q  error: %s", m.file, err)
		return fault.ErrInvalidSnapshot
	}
	if snapshotVersion != s.Version {
		m.log.Errorf("load: %q  version: %d", m.file, s.Version)
		return fault.ErrInvalidSnapshot
	}

	m.Lock()
	defer m.Unlock()
	for _, item := range s.Items {
		m.names.Put(item.Name, item)
	}
	m.log.Infof("loaded: %d names from: %q", len(s.Items), m.file)
	return nil
}
