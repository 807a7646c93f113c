// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accounts

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/api/utils"
	"github.com/vechain/stakepoints/runtime"
)

type Accounts struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Accounts {
	return &Accounts{rt}
}

func parseAmount(req *http.Request) (uint64, error) {
	var body AmountBody
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return 0, utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return 0, utils.BadRequest(errors.New("body: amount required"))
	}
	return uint64(*body.Amount), nil
}

func (a *Accounts) handleGetAccount(w http.ResponseWriter, req *http.Request) error {
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	state, err := a.rt.Account(owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &AccountState{
		Account:       convertAccount(&state.Account),
		PendingPoints: state.PendingPoints,
		VaultBalance:  state.VaultBalance,
		Now:           state.Now,
	})
}

func (a *Accounts) handleCreateAccount(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	acc, err := a.rt.CreateAccount(caller)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(acc))
}

func (a *Accounts) handleStake(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	amount, err := parseAmount(req)
	if err != nil {
		return err
	}
	acc, err := a.rt.Stake(caller, owner, amount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(acc))
}

func (a *Accounts) handleUnstake(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	amount, err := parseAmount(req)
	if err != nil {
		return err
	}
	acc, err := a.rt.Unstake(caller, owner, amount)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(acc))
}

func (a *Accounts) handleGetPoints(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	acc, err := a.rt.GetPoints(caller, owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertAccount(acc))
}

func (a *Accounts) handleClaimPoints(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	acc, claimed, err := a.rt.ClaimPoints(caller, owner)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &ClaimResult{Account: convertAccount(acc), Claimed: claimed})
}

func (a *Accounts) handleConvertPoints(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	owner, err := utils.AddressVar(req, "owner")
	if err != nil {
		return err
	}
	points, err := parseAmount(req)
	if err != nil {
		return err
	}
	acc, payout, err := a.rt.ConvertPoints(caller, owner, points)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &ConvertResult{Account: convertAccount(acc), Points: points, Payout: payout})
}

func (a *Accounts) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).
		Name("accounts_create_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleCreateAccount))
	sub.Path("/{owner}").Methods(http.MethodGet).
		Name("accounts_get_account").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetAccount))
	sub.Path("/{owner}/stake").Methods(http.MethodPost).
		Name("accounts_stake").
		HandlerFunc(utils.WrapHandlerFunc(a.handleStake))
	sub.Path("/{owner}/unstake").Methods(http.MethodPost).
		Name("accounts_unstake").
		HandlerFunc(utils.WrapHandlerFunc(a.handleUnstake))
	sub.Path("/{owner}/points").Methods(http.MethodPost).
		Name("accounts_get_points").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetPoints))
	sub.Path("/{owner}/claim").Methods(http.MethodPost).
		Name("accounts_claim_points").
		HandlerFunc(utils.WrapHandlerFunc(a.handleClaimPoints))
	sub.Path("/{owner}/convert").Methods(http.MethodPost).
		Name("accounts_convert_points").
		HandlerFunc(utils.WrapHandlerFunc(a.handleConvertPoints))
}
