// Copyright (c) 2013-2017 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txscript

import (
	"bytes"
	"testing"

	"github.com/davecgh/go-spew/spew"
)

// TestScriptClass ensures all the scripts in the tests below are considered
// to be of the expected class.
func TestScriptClass(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script []byte
		class  ScriptClass
	}{
		{
			name: "pubkey",
			script: hexToBytes("2102192d74d0cb94344c9569c2e7790157" +
				"3d8d7903c3ebec3a957724895dca52c6b4ac"),
			class: PubKeyTy,
		},
		{
			name: "pubkeyhash",
			script: hexToBytes("76a914ad06dd6ddee55cbca9a9e3713bd7" +
				"587509a3056488ac"),
			class: PubKeyHashTy,
		},
		{
			name: "scripthash",
			script: hexToBytes("a914da1745e9b549bd0bfa1a569971c77e" +
				"ba30cd5a4b87"),
			class: ScriptHashTy,
		},
		{
			name: "multisig 1 of 2",
			script: hexToBytes("512103aa53b35f243a6e8e12e5eb193274" +
				"73ad6e873aee952ca399a9ed812b5fa3fd9e21029" +
				"6d8b32e4c1d1f8a587b689e2b9e46574571e3b86e" +
				"3d42e087a3279261bbb1c352ae"),
			class: MultiSigTy,
		},
		{
			name:   "nulldata no push",
			script: []byte{OP_RETURN},
			class:  NullDataTy,
		},
		{
			name:   "nulldata with push",
			script: append([]byte{OP_RETURN, OP_DATA_3}, []byte{1, 2, 3}...),
			class:  NullDataTy,
		},
		{
			name:   "nonstandard extra op",
			script: []byte{OP_1, OP_DUP},
			class:  NonStandardTy,
		},
		{
			name:   "nonstandard does not parse",
			script: []byte{OP_PUSHDATA1},
			class:  NonStandardTy,
		},
	}

	for _, test := range tests {
		class := GetScriptClass(test.script)
		if class != test.class {
			t.Errorf("%s: expected %v got %v", test.name,
				test.class, class)
			continue
		}
	}
}

// TestPayToPubKeyHashScript ensures the generated pay-to-pubkey-hash script
// has the canonical form and round-trips through the classifier.
func TestPayToPubKeyHashScript(t *testing.T) {
	t.Parallel()

	pkHash := hexToBytes("ad06dd6ddee55cbca9a9e3713bd758750" +
		"9a30564")
	script, err := PayToPubKeyHashScript(pkHash)
	if err != nil {
		t.Fatalf("PayToPubKeyHashScript: %v", err)
	}

	want := hexToBytes("76a914ad06dd6ddee55cbca9a9e3713bd7587509a3056488ac")
	if !bytes.Equal(script, want) {
		t.Fatalf("PayToPubKeyHashScript: got %x, want %x", script, want)
	}
	if class := GetScriptClass(script); class != PubKeyHashTy {
		t.Fatalf("PayToPubKeyHashScript: classified as %v", class)
	}

	// Wrong hash length must be rejected.
	if _, err := PayToPubKeyHashScript(pkHash[:19]); !IsErrorCode(err, ErrUnsupportedAddress) {
		t.Fatalf("PayToPubKeyHashScript: expected "+
			"ErrUnsupportedAddress, got %v", err)
	}
}

// TestPayToScriptHashScript ensures the generated pay-to-script-hash script
// has the canonical form.
func TestPayToScriptHashScript(t *testing.T) {
	t.Parallel()

	scriptHash := hexToBytes("da1745e9b549bd0bfa1a569971c77eba30cd5a4b")
	script, err := PayToScriptHashScript(scriptHash)
	if err != nil {
		t.Fatalf("PayToScriptHashScript: %v", err)
	}

	want := hexToBytes("a914da1745e9b549bd0bfa1a569971c77eba30cd5a4b87")
	if !bytes.Equal(script, want) {
		t.Fatalf("PayToScriptHashScript: got %x, want %x", script, want)
	}
	if !IsPayToScriptHash(script) {
		t.Fatal("IsPayToScriptHash: canonical script not recognized")
	}
}

// TestMultiSigScript ensures the MultiSigScript function returns the expected
// scripts and errors.
func TestMultiSigScript(t *testing.T) {
	t.Parallel()

	pubKey1 := hexToBytes("02192d74d0cb94344c9569c2e77901573d8d7903c3" +
		"ebec3a957724895dca52c6b4")
	pubKey2 := hexToBytes("03b0bd634234abbb1ba1e986e884185c61cf43e001" +
		"f9137f23c2c409273eb16e65")

	tests := []struct {
		keys      [][]byte
		nrequired int
		expected  []byte
		err       error
	}{
		{
			[][]byte{pubKey1, pubKey2},
			1,
			hexToBytes("512102192d74d0cb94344c9569c2e77901573d" +
				"8d7903c3ebec3a957724895dca52c6b42103b0bd6342" +
				"34abbb1ba1e986e884185c61cf43e001f9137f23c2c4" +
				"09273eb16e6552ae"),
			nil,
		},
		{
			[][]byte{pubKey1, pubKey2},
			2,
			hexToBytes("522102192d74d0cb94344c9569c2e77901573d" +
				"8d7903c3ebec3a957724895dca52c6b42103b0bd6342" +
				"34abbb1ba1e986e884185c61cf43e001f9137f23c2c4" +
				"09273eb16e6552ae"),
			nil,
		},
		{
			[][]byte{pubKey1, pubKey2},
			3,
			nil,
			scriptError(ErrTooManyRequiredSigs, ""),
		},
		{
			[][]byte{pubKey1},
			0,
			nil,
			scriptError(ErrTooManyRequiredSigs, ""),
		},
	}

	for i, test := range tests {
		script, err := MultiSigScript(test.keys, test.nrequired)
		if e := tstCheckScriptError(err, test.err); e != nil {
			t.Errorf("MultiSigScript #%d: %v", i, e)
			continue
		}

		if !bytes.Equal(script, test.expected) {
			t.Errorf("MultiSigScript #%d got: %x\nwant: %x",
				i, script, test.expected)
			continue
		}
	}
}

// TestCalcMultiSigStats ensures the CalcMutliSigStats function returns the
// expected errors.
func TestCalcMultiSigStats(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		script   []byte
		nPubKeys int
		nSigs    int
		err      error
	}{
		{
			name:   "short script",
			script: []byte{OP_1, OP_CHECKMULTISIG},
			err:    scriptError(ErrNotMultisigScript, ""),
		},
		{
			name: "multisig script",
			script: hexToBytes("512103aa53b35f243a6e8e12e5eb19327" +
				"473ad6e873aee952ca399a9ed812b5fa3fd9e2102" +
				"96d8b32e4c1d1f8a587b689e2b9e46574571e3b86" +
				"e3d42e087a3279261bbb1c352ae"),
			nPubKeys: 2,
			nSigs:    1,
			err:      nil,
		},
	}

	for i, test := range tests {
		nPubKeys, nSigs, err := CalcMultiSigStats(test.script)
		if e := tstCheckScriptError(err, test.err); e != nil {
			t.Errorf("%s #%d: %v", test.name, i, e)
			continue
		}
		if err != nil {
			continue
		}
		if nPubKeys != test.nPubKeys || nSigs != test.nSigs {
			t.Errorf("%s #%d: got %d pubkeys %d sigs, want %d "+
				"pubkeys %d sigs", test.name, i, nPubKeys,
				nSigs, test.nPubKeys, test.nSigs)
		}
	}
}

// TestPushedData ensures the PushedData function extracts pushed data from
// scripts as expected.
func TestPushedData(t *testing.T) {
	t.Parallel()

	var tests = []struct {
		script []byte
		out    [][]byte
		valid  bool
	}{
		{
			[]byte{OP_0, OP_IF, OP_0, OP_ELSE, OP_2, OP_ENDIF},
			[][]byte{nil, nil},
			true,
		},
		{
			mustScript(NewScriptBuilder().AddInt64(16).
				AddData([]byte("test")).Script()),
			[][]byte{{0x10}, []byte("test")},
			true,
		},
		{
			[]byte{OP_PUSHDATA1},
			nil,
			false,
		},
	}

	for i, test := range tests {
		data, err := PushedData(test.script)
		if test.valid && err != nil {
			t.Errorf("TestPushedData failed test #%d: %v\n", i, err)
			continue
		} else if !test.valid && err == nil {
			t.Errorf("TestPushedData failed test #%d: test should "+
				"be invalid\n", i)
			continue
		}
		if len(data) != len(test.out) {
			t.Errorf("TestPushedData failed test #%d: want: %s "+
				"got: %s\n", i, spew.Sdump(test.out),
				spew.Sdump(data))
			continue
		}
		for j := range data {
			if !bytes.Equal(data[j], test.out[j]) {
				t.Errorf("TestPushedData failed test #%d: "+
					"want: %s got: %s\n", i,
					spew.Sdump(test.out), spew.Sdump(data))
				break
			}
		}
	}
}

// mustScript returns the passed script or panics when err is non-nil. It is
// only for use with hard-coded test scripts.
func mustScript(script []byte, err error) []byte {
	if err != nil {
		panic(err)
	}
	return script
}
