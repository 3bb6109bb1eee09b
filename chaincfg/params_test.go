// Copyright (c) 2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chaincfg

import (
	"testing"

	"github.com/pkg/errors"
)

// TestParamsForNet ensures network magic lookups resolve to the expected
// parameter sets and that unknown magics are rejected.
func TestParamsForNet(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		net  uint32
		want *Params
		err  error
	}{
		{"mainnet", MainNetParams.Net, &MainNetParams, nil},
		{"regtest", RegressionNetParams.Net, &RegressionNetParams, nil},
		{"unknown", 0xdeadbeef, nil, ErrUnknownNet},
	}

	for _, test := range tests {
		params, err := ParamsForNet(test.net)
		if !errors.Is(err, test.err) {
			t.Errorf("%s: unexpected error - got %v, want %v",
				test.name, err, test.err)
			continue
		}
		if params != test.want {
			t.Errorf("%s: unexpected params - got %v, want %v",
				test.name, params, test.want)
		}
	}
}

// TestFederationParams ensures the per-network federation parameters are
// internally consistent.
func TestFederationParams(t *testing.T) {
	t.Parallel()

	for _, params := range []*Params{&MainNetParams, &RegressionNetParams} {
		if len(params.FederationPubKeys) == 0 {
			t.Errorf("%s: no federation member keys", params.Name)
			continue
		}
		if params.SignerThreshold < 1 ||
			params.SignerThreshold > len(params.FederationPubKeys) {

			t.Errorf("%s: threshold %d is not in [1, %d]",
				params.Name, params.SignerThreshold,
				len(params.FederationPubKeys))
		}
		seen := make(map[string]struct{})
		for _, pubKey := range params.FederationPubKeys {
			serialized := string(pubKey.SerializeCompressed())
			if _, ok := seen[serialized]; ok {
				t.Errorf("%s: duplicate federation member key %x",
					params.Name, serialized)
			}
			seen[serialized] = struct{}{}
		}
	}
}
