// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"fmt"
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func Test_Reverts(t *testing.T) {
	revert := New("test")
	assert.Equal(t, "test", revert.message)
	assert.Equal(t, revert.Error(), revert.message)

	assert.True(t, IsRevertErr(revert))
	assert.False(t, IsRevertErr(nil))
	assert.False(t, IsRevertErr(fmt.Errorf("test")))
	assert.False(t, IsRevertErr(big.NewInt(0)))
}

func Test_WrappedKinds(t *testing.T) {
	err := errors.WithMessage(ErrInsufficientStake, "unstake 0xabc")

	assert.True(t, IsRevertErr(err))
	assert.ErrorIs(t, err, ErrInsufficientStake)
	assert.NotErrorIs(t, err, ErrInvalidAmount)
	assert.Equal(t, "unstake 0xabc: insufficient staked amount", err.Error())
}
