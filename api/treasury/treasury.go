// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package treasury

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/api/utils"
	"github.com/vechain/stakepoints/runtime"
	"github.com/vechain/stakepoints/types"
)

// Treasury for marshal treasury info
type Treasury struct {
	Address      types.Address `json:"address"`
	Admin        types.Address `json:"admin"`
	Balance      uint64        `json:"balance"`
	TotalFunded  uint64        `json:"totalFunded"`
	TotalPaidOut uint64        `json:"totalPaidOut"`
	Paused       bool          `json:"paused"`
}

type FundBody struct {
	Amount *math.HexOrDecimal64 `json:"amount"`
}

type API struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *API {
	return &API{rt}
}

func (a *API) writeInfo(w http.ResponseWriter) error {
	info, err := a.rt.Treasury()
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Treasury{
		Address:      info.Address,
		Admin:        info.Admin,
		Balance:      info.Balance,
		TotalFunded:  info.TotalFunded,
		TotalPaidOut: info.TotalPaidOut,
		Paused:       info.Paused,
	})
}

func (a *API) handleGetTreasury(w http.ResponseWriter, _ *http.Request) error {
	return a.writeInfo(w)
}

func (a *API) handleInitialize(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	if err := a.rt.InitializeTreasury(caller); err != nil {
		return err
	}
	return a.writeInfo(w)
}

func (a *API) handleFund(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body FundBody
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Amount == nil {
		return utils.BadRequest(errors.New("body: amount required"))
	}
	if err := a.rt.FundTreasury(caller, uint64(*body.Amount)); err != nil {
		return err
	}
	return a.writeInfo(w)
}

func (a *API) handlePause(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	if err := a.rt.PauseConversions(caller); err != nil {
		return err
	}
	return a.writeInfo(w)
}

func (a *API) handleResume(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	if err := a.rt.ResumeConversions(caller); err != nil {
		return err
	}
	return a.writeInfo(w)
}

func (a *API) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodGet).
		Name("treasury_get_treasury").
		HandlerFunc(utils.WrapHandlerFunc(a.handleGetTreasury))
	sub.Path("").Methods(http.MethodPost).
		Name("treasury_initialize").
		HandlerFunc(utils.WrapHandlerFunc(a.handleInitialize))
	sub.Path("/fund").Methods(http.MethodPost).
		Name("treasury_fund").
		HandlerFunc(utils.WrapHandlerFunc(a.handleFund))
	sub.Path("/pause").Methods(http.MethodPost).
		Name("treasury_pause").
		HandlerFunc(utils.WrapHandlerFunc(a.handlePause))
	sub.Path("/resume").Methods(http.MethodPost).
		Name("treasury_resume").
		HandlerFunc(utils.WrapHandlerFunc(a.handleResume))
}
