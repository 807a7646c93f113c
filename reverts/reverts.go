// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a domain error: the operation was rejected and nothing was written.
type ErrRevert struct {
	message string
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// Error kinds returned by the engine, the escrow and the treasury.
var (
	ErrUnauthorized         = New("unauthorized access")
	ErrAlreadyExists        = New("already exists")
	ErrInvalidAmount        = New("amount must be greater than 0")
	ErrInsufficientStake    = New("insufficient staked amount")
	ErrClockSkew            = New("clock skew: time moved backwards")
	ErrNothingToClaim       = New("no points available to claim")
	ErrAlreadyClaimed       = New("already claimed")
	ErrNotFound             = New("not found")
	ErrTransferFailed       = New("transfer failed")
	ErrOverflow             = New("arithmetic overflow")
	ErrConversionsPaused    = New("point conversions are paused")
	ErrInsufficientPoints   = New("insufficient points")
	ErrPayoutTooSmall       = New("insufficient points for minimum payout")
	ErrInsufficientTreasury = New("treasury has insufficient funds")
)
