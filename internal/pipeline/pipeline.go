// Package pipeline composes the mnemonic codec and key-derivation
// collaborator behind the two narrow interfaces the search driver
// actually consumes, so the driver itself never imports a concrete
// BIP39/BIP32 library type. Construction is the CLI's job; this package
// only wires.
package pipeline

import (
	"github.com/MuddySheep/Shamirs-Leak/internal/keyderive"
	"github.com/MuddySheep/Shamirs-Leak/internal/mnemonic"
)

// MnemonicEncoder is the subset of the mnemonic codec the driver needs:
// turning recovered entropy into the standard BIP39 phrase it reports.
type MnemonicEncoder interface {
	Encode(entropy []byte) (string, error)
}

// ZpubDeriver is the subset of the key-derivation collaborator the
// driver needs: mnemonic phrase in, BIP84 zpub string out.
type ZpubDeriver interface {
	Zpub(mnemonicPhrase string) (string, error)
}

// standardEncoder adapts the package-level mnemonic.Encode function to
// the MnemonicEncoder interface.
type standardEncoder struct{}

func (standardEncoder) Encode(entropy []byte) (string, error) {
	return mnemonic.Encode(entropy)
}

// Pipeline bundles the two collaborators the driver calls in sequence:
// entropy -> mnemonic -> zpub.
type Pipeline struct {
	Encoder MnemonicEncoder
	Deriver ZpubDeriver
}

// New builds the default production pipeline: the standard BIP39
// encoder and the hdkeychain-backed BIP84 deriver.
func New() *Pipeline {
	return &Pipeline{
		Encoder: standardEncoder{},
		Deriver: keyderive.Default{},
	}
}

// EntropyToZpub runs the full entropy -> mnemonic -> zpub chain.
func (p *Pipeline) EntropyToZpub(entropy []byte) (phrase, zpub string, err error) {
	phrase, err = p.Encoder.Encode(entropy)
	if err != nil {
		return "", "", err
	}

	zpub, err = p.Deriver.Zpub(phrase)
	if err != nil {
		return "", "", err
	}

	return phrase, zpub, nil
}
