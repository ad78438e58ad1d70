package escrowd

import (
	"encoding/json"
	"fmt"

	"github.com/iov-one/escrowd"
	"github.com/iov-one/escrowd/coin"
	"github.com/iov-one/escrowd/crypto"
	"github.com/iov-one/escrowd/errors"
	"github.com/iov-one/escrowd/x/cash"
	"github.com/iov-one/escrowd/x/escrow"
	"github.com/iov-one/escrowd/x/factory"
)

const genesisBalance = coin.Amount(123456789)

// AppState is the app_state section of the genesis file.
type AppState struct {
	Cash    []cash.GenesisAccount    `json:"cash"`
	Escrow  []escrow.GenesisEscrow   `json:"escrow"`
	Factory []factory.GenesisFactory `json:"factory"`
	Conf    map[string]interface{}   `json:"conf"`
}

// GenInitOptions returns a development app state. A single account holds
// all coins, owns an escrow factory and the factory configuration.
//
// The account address can be given as the first argument. Otherwise a new
// key is generated and printed to stdout.
func GenInitOptions(args []string) (json.RawMessage, error) {
	var owner weave.Address
	if len(args) > 0 {
		addr, err := weave.ParseAddress(args[0])
		if err != nil {
			return nil, err
		}
		owner = addr
	} else {
		addr, keys, err := GenerateCoinKey()
		if err != nil {
			return nil, err
		}
		fmt.Println(keys)
		owner = addr
	}

	state := AppState{
		Cash:    []cash.GenesisAccount{{Address: owner, Balance: genesisBalance}},
		Escrow:  []escrow.GenesisEscrow{},
		Factory: []factory.GenesisFactory{{Owner: owner, TemplateID: escrow.TemplateID}},
		Conf: map[string]interface{}{
			"factory": factory.Configuration{
				Metadata:  &weave.Metadata{Schema: 1},
				Owner:     owner,
				Templates: Templates(CashControl()).Hashes(),
			},
		},
	}
	raw, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, errors.Wrap(errors.ErrHuman, err.Error())
	}
	return raw, nil
}

// GenerateCoinKey creates a new key pair. It returns its address and both
// keys serialized to JSON, ready to be imported by a client.
func GenerateCoinKey() (weave.Address, string, error) {
	secret := crypto.GenPrivKeyEd25519()
	keys := struct {
		Pubkey *crypto.PublicKey  `json:"pub_key"`
		Secret *crypto.PrivateKey `json:"secret"`
	}{
		Pubkey: secret.PublicKey(),
		Secret: secret,
	}
	raw, err := json.MarshalIndent(keys, "", "  ")
	if err != nil {
		return nil, "", errors.Wrap(errors.ErrHuman, err.Error())
	}
	return keys.Pubkey.Address(), string(raw), nil
}
