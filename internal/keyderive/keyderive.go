// Package keyderive binds the recovered entropy to the BIP84 account
// extended public key (zpub) the operator already knows. It wraps
// github.com/decred/dcrd/hdkeychain/v3 with a custom NetworkParams
// supplying the version bytes, and chains the derivation path one
// level at a time with ChildBIP32Std.
package keyderive

import (
	"github.com/decred/dcrd/hdkeychain/v3"
	"github.com/tyler-smith/go-bip39"

	recoveryerr "github.com/MuddySheep/Shamirs-Leak/pkg/errors"
)

// zpubVersionBytes and zprvVersionBytes are the BIP84 (native segwit,
// mainnet) extended-key version bytes — this tool only ever recovers
// a BIP84 account key.
var (
	zprvVersionBytes = [4]byte{0x04, 0xb2, 0x43, 0x0c}
	zpubVersionBytes = [4]byte{0x04, 0xb2, 0x47, 0x46}
)

// netParams implements hdkeychain.NetworkParams with BIP84 version bytes.
type netParams struct{}

func (netParams) HDPrivKeyVersion() [4]byte { return zprvVersionBytes }
func (netParams) HDPubKeyVersion() [4]byte  { return zpubVersionBytes }

// Deriver is the narrow interface the search driver and pipeline
// consume; keyderive.Default satisfies it.
type Deriver interface {
	// Zpub derives the BIP84 account zpub at m/84'/0'/0'/0/0 from a
	// 12-word mnemonic (passphrase fixed to "" — this tool's scope is
	// passphrase-less recovery).
	Zpub(mnemonicPhrase string) (string, error)
}

// Default is the concrete hdkeychain-backed Deriver.
type Default struct{}

var _ Deriver = Default{}

// Zpub implements Deriver.
func (Default) Zpub(mnemonicPhrase string) (string, error) {
	seed := bip39.NewSeed(mnemonicPhrase, "")

	master, err := hdkeychain.NewMaster(seed, netParams{})
	if err != nil {
		return "", recoveryerr.Wrap(err, "deriving master key")
	}

	// m/84'/0'/0'/0/0
	purpose, err := master.ChildBIP32Std(hdkeychain.HardenedKeyStart + 84)
	if err != nil {
		return "", recoveryerr.Wrap(err, "deriving purpose key")
	}
	coinType, err := purpose.ChildBIP32Std(hdkeychain.HardenedKeyStart + 0)
	if err != nil {
		return "", recoveryerr.Wrap(err, "deriving coin type key")
	}
	account, err := coinType.ChildBIP32Std(hdkeychain.HardenedKeyStart + 0)
	if err != nil {
		return "", recoveryerr.Wrap(err, "deriving account key")
	}
	external, err := account.ChildBIP32Std(0)
	if err != nil {
		return "", recoveryerr.Wrap(err, "deriving external chain key")
	}
	index, err := external.ChildBIP32Std(0)
	if err != nil {
		return "", recoveryerr.Wrap(err, "deriving address index key")
	}

	return index.Neuter().String(), nil
}
