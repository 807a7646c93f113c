// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package types

import "io"

// seeds of derived addresses.
const (
	SeedStakeAccount   = "client"
	SeedStakeVault     = "stake-vault"
	SeedEscrowVault    = "vault"
	SeedTreasury       = "treasury"
	SeedTreasuryConfig = "treasury-config"
)

// DeriveAddress computes a deterministic program-owned address from a seed and optional parts.
// Nobody holds a private key for a derived address, only the runtime moves value out of it.
func DeriveAddress(seed string, parts ...[]byte) Address {
	h := Blake2bFn(func(w io.Writer) {
		w.Write([]byte("derived:"))
		w.Write([]byte(seed))
		for _, p := range parts {
			// length prefix keeps ("ab","c") and ("a","bc") apart
			w.Write([]byte{byte(len(p))})
			w.Write(p)
		}
	})
	return BytesToAddress(h[12:])
}

// StakeAccountAddress returns the address of the stake account owned by owner.
func StakeAccountAddress(owner Address) Address {
	return DeriveAddress(SeedStakeAccount, owner.Bytes())
}

// StakeVaultAddress returns the custody address holding the stake of owner.
func StakeVaultAddress(owner Address) Address {
	return DeriveAddress(SeedStakeVault, owner.Bytes())
}

// EscrowVaultAddress returns the vault authority of the given escrow.
func EscrowVaultAddress(escrowID Address) Address {
	return DeriveAddress(SeedEscrowVault, escrowID.Bytes())
}

// TreasuryAddress returns the custody address of the treasury.
func TreasuryAddress() Address {
	return DeriveAddress(SeedTreasury)
}
