// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/api/utils"
	"github.com/vechain/stakepoints/runtime"
	"github.com/vechain/stakepoints/types"
)

type Balance struct {
	Holder  types.Address `json:"holder"`
	Asset   types.Address `json:"asset"`
	Balance uint64        `json:"balance"`
}

type FaucetBody struct {
	Holder *types.Address       `json:"holder"`
	Asset  *types.Address       `json:"asset"`
	Amount *math.HexOrDecimal64 `json:"amount"`
}

type Custody struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Custody {
	return &Custody{rt}
}

func (c *Custody) writeBalance(w http.ResponseWriter, holder, asset types.Address) error {
	bal, err := c.rt.Balance(holder, asset)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, &Balance{Holder: holder, Asset: asset, Balance: bal})
}

func (c *Custody) handleGetBalance(w http.ResponseWriter, req *http.Request) error {
	holder, err := utils.AddressVar(req, "holder")
	if err != nil {
		return err
	}
	asset, err := utils.AddressVar(req, "asset")
	if err != nil {
		return err
	}
	return c.writeBalance(w, holder, asset)
}

func (c *Custody) handleFaucet(w http.ResponseWriter, req *http.Request) error {
	var body FaucetBody
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.Holder == nil || body.Amount == nil {
		return utils.BadRequest(errors.New("body: holder and amount required"))
	}
	asset := types.NativeAsset
	if body.Asset != nil {
		asset = *body.Asset
	}
	if err := c.rt.Faucet(*body.Holder, asset, uint64(*body.Amount)); err != nil {
		if errors.Is(err, runtime.ErrFaucetDisabled) {
			return utils.Forbidden(err)
		}
		return err
	}
	return c.writeBalance(w, *body.Holder, asset)
}

// Mount mounts the balance routes, and the faucet when the runtime is in dev mode.
func (c *Custody) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{holder}/{asset}").Methods(http.MethodGet).
		Name("custody_get_balance").
		HandlerFunc(utils.WrapHandlerFunc(c.handleGetBalance))
	if c.rt.Dev() {
		sub.Path("/faucet").Methods(http.MethodPost).
			Name("custody_faucet").
			HandlerFunc(utils.WrapHandlerFunc(c.handleFaucet))
	}
}
