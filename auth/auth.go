// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package auth identifies the principal of a request by a secp256k1 signature over the request.
package auth

import (
	"context"
	"crypto/ecdsa"
	"encoding/binary"
	"os"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/types"
)

const (
	HeaderSignature = "X-Stakepoints-Signature"
	HeaderTimestamp = "X-Stakepoints-Timestamp"
)

var (
	ErrMissingSignature = errors.New("missing request signature")
	ErrBadSignature     = errors.New("invalid request signature")
	ErrStaleRequest     = errors.New("request timestamp outside of the accepted window")
	ErrReplayedRequest  = errors.New("request already seen")
)

// SigningHash returns the hash a principal signs for a request.
func SigningHash(method, uri string, body []byte, timestamp uint64) types.Bytes32 {
	var ts [8]byte
	binary.BigEndian.PutUint64(ts[:], timestamp)
	return types.Blake2b([]byte(method), []byte{0}, []byte(uri), []byte{0}, body, ts[:])
}

// SignHash signs the request hash with key, returning the hex encoded signature.
func SignHash(hash types.Bytes32, key *ecdsa.PrivateKey) (string, error) {
	sig, err := crypto.Sign(hash.Bytes(), key)
	if err != nil {
		return "", err
	}
	return hexutil.Encode(sig), nil
}

// Recover returns the principal which produced sig over hash.
func Recover(hash types.Bytes32, sig string) (types.Address, error) {
	raw, err := hexutil.Decode(sig)
	if err != nil || len(raw) != crypto.SignatureLength {
		return types.Address{}, ErrBadSignature
	}
	pub, err := crypto.SigToPub(hash.Bytes(), raw)
	if err != nil {
		return types.Address{}, ErrBadSignature
	}
	return types.Address(crypto.PubkeyToAddress(*pub)), nil
}

// KeyAddress returns the principal of key.
func KeyAddress(key *ecdsa.PrivateKey) types.Address {
	return types.Address(crypto.PubkeyToAddress(key.PublicKey))
}

// LoadOrGenerateKey loads the hex encoded key at path, creating one if the file does not exist.
func LoadOrGenerateKey(path string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.LoadECDSA(path)
	if err == nil {
		return key, nil
	}
	if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "load key")
	}

	if key, err = crypto.GenerateKey(); err != nil {
		return nil, errors.Wrap(err, "generate key")
	}
	if err := crypto.SaveECDSA(path, key); err != nil {
		return nil, errors.Wrap(err, "save key")
	}
	return key, nil
}

type principalKey struct{}

// WithPrincipal returns a copy of ctx carrying the request principal.
func WithPrincipal(ctx context.Context, principal types.Address) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

// Principal returns the principal of an authenticated request.
func Principal(ctx context.Context) (types.Address, bool) {
	p, ok := ctx.Value(principalKey{}).(types.Address)
	return p, ok
}
