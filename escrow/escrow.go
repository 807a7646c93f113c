// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package escrow

import "github.com/vechain/stakepoints/types"

// Escrow locks Amount of Mint in a vault until Receiver claims it.
type Escrow struct {
	Initializer types.Address
	Receiver    types.Address
	Mint        types.Address
	Amount      uint64
}

// Settled is kept for an escrow identity once it has been claimed, so it can never be reused.
type Settled struct {
	Escrow    Escrow
	ClaimedAt uint64
}

// Vault returns the custody holder of the escrowed value of id.
func Vault(id types.Address) types.Address {
	return types.EscrowVaultAddress(id)
}
