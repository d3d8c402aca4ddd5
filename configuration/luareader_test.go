// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package configuration_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/nameregd/configuration"
	"github.com/bitmark-inc/nameregd/fault"
	"github.com/bitmark-inc/nameregd/fixtures"
)

type ledgerSection struct {
	URL          string `gluamapper:"url"`
	PollInterval int    `gluamapper:"poll_interval"`
}

type sample struct {
	Chain   string            `gluamapper:"chain"`
	Listen  []string          `gluamapper:"listen"`
	Ledger  ledgerSection     `gluamapper:"ledger"`
	Levels  map[string]string `gluamapper:"levels"`
	Missing string            `gluamapper:"missing"`
}

const sampleConfiguration = `
local M = {}
M.chain = chain or "namecoin"
M.listen = { "127.0.0.1:2130", "[::1]:2130" }
M.ledger = {
    url = "http://127.0.0.1:8336",
    poll_interval = 5,
}
M.levels = { DEFAULT = "info", ledger = "debug" }
return M
`

func writeFile(t *testing.T, name string, text string) string {
	fileName := fixtures.Path(name)
	err := os.WriteFile(fileName, []byte(text), 0600)
	assert.Nil(t, err, "wrong write")
	return fileName
}

func TestParseConfigurationFile(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	fileName := writeFile(t, "sample.conf", sampleConfiguration)

	s := sample{Missing: "default"}
	err := configuration.ParseConfigurationFile(fileName, &s, nil)
	assert.Nil(t, err, "wrong parse")
	assert.Equal(t, "namecoin", s.Chain, "wrong chain")
	assert.Equal(t, []string{"127.0.0.1:2130", "[::1]:2130"}, s.Listen, "wrong listen")
	assert.Equal(t, "http://127.0.0.1:8336", s.Ledger.URL, "wrong url")
	assert.Equal(t, 5, s.Ledger.PollInterval, "wrong poll interval")
	assert.Equal(t, "debug", s.Levels["ledger"], "wrong level")
	assert.Equal(t, "default", s.Missing, "default overwritten")
}

func TestParseConfigurationVariables(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	fileName := writeFile(t, "sample.conf", sampleConfiguration)

	s := sample{}
	err := configuration.ParseConfigurationFile(fileName, &s, map[string]string{"chain": "testing"})
	assert.Nil(t, err, "wrong parse")
	assert.Equal(t, "testing", s.Chain, "variable not applied")
}

func TestParseConfigurationErrors(t *testing.T) {
	fixtures.SetupTestLogger()
	defer fixtures.TeardownTestLogger()

	fileName := writeFile(t, "sample.conf", sampleConfiguration)

	s := sample{}
	err := configuration.ParseConfigurationFile(fileName, s, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "accepted non-pointer")

	n := 0
	err = configuration.ParseConfigurationFile(fileName, &n, nil)
	assert.Equal(t, fault.ErrInvalidStructPointer, err, "accepted non-struct")

	notTable := writeFile(t, "number.conf", "return 42\n")
	err = configuration.ParseConfigurationFile(notTable, &s, nil)
	assert.Equal(t, fault.ErrConfigurationNotTable, err, "accepted non-table")

	broken := writeFile(t, "broken.conf", "return {\n")
	err = configuration.ParseConfigurationFile(broken, &s, nil)
	assert.NotNil(t, err, "accepted syntax error")

	err = configuration.ParseConfigurationFile(fixtures.Path("absent.conf"), &s, nil)
	assert.NotNil(t, err, "accepted missing file")
}
