package weave_test

import (
	"encoding/hex"
	"encoding/json"
	"testing"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	cond := weave.NewCondition("sigs", "ed25519", []byte("pubkey"))
	addr := cond.Address()
	addrHex := hex.EncodeToString(addr)
	addrBech, err := addr.Bech32("escrow")
	require.NoError(t, err)

	cases := map[string]struct {
		raw     string
		want    weave.Address
		wantErr *errors.Error
	}{
		"plain hex":              {raw: addrHex, want: addr},
		"hex prefix":             {raw: "hex:" + addrHex, want: addr},
		"bech32":                 {raw: "bech32:" + addrBech, want: addr},
		"condition":              {raw: "cond:" + cond.String(), want: addr},
		"empty":                  {raw: "", want: nil},
		"empty hex":              {raw: "hex:", want: nil},
		"empty condition":        {raw: "cond:", want: nil},
		"hex too short":          {raw: "hex:6865782d61646472", wantErr: errors.ErrInvalidInput},
		"not hex":                {raw: "zzzz", wantErr: errors.ErrInvalidInput},
		"bad bech32":             {raw: "bech32:escrow1xyz", wantErr: errors.ErrInvalidInput},
		"condition missing part": {raw: "cond:foo/636f6e64", wantErr: errors.ErrInvalidInput},
		"condition bad data":     {raw: "cond:foo/bar/zzzzz", wantErr: errors.ErrInvalidInput},
		"unknown format":         {raw: "foobar:xxx", wantErr: errors.ErrInvalidType},
	}
	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			got, err := weave.ParseAddress(tc.raw)
			require.True(t, tc.wantErr.Is(err), "got error %+v", err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestAddressJSON(t *testing.T) {
	addr := weave.NewCondition("escrow", "inst", []byte("seed")).Address()

	raw, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(raw))

	var got weave.Address
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, addr, got)

	err = json.Unmarshal([]byte(`"cond:escrow/inst/73656564"`), &got)
	require.NoError(t, err)
	assert.Equal(t, addr, got)

	assert.Error(t, json.Unmarshal([]byte(`12`), &got))
}

func TestAddressString(t *testing.T) {
	assert.Equal(t, "(nil)", weave.Address(nil).String())
	assert.Equal(t, "00FF", weave.Address{0, 255}.String())
	assert.Nil(t, weave.NewAddress(nil))
	assert.Len(t, weave.NewAddress([]byte{}), weave.AddressLength)
}
