// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package escrows

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/api/utils"
	"github.com/vechain/stakepoints/escrow"
	"github.com/vechain/stakepoints/reverts"
	"github.com/vechain/stakepoints/runtime"
	"github.com/vechain/stakepoints/types"
)

// Escrow for marshal escrow, open or claimed.
type Escrow struct {
	ID          types.Address `json:"id"`
	Vault       types.Address `json:"vault"`
	Initializer types.Address `json:"initializer"`
	Receiver    types.Address `json:"receiver"`
	Mint        types.Address `json:"mint"`
	Amount      uint64        `json:"amount"`
	Claimed     bool          `json:"claimed"`
	ClaimedAt   *uint64       `json:"claimedAt,omitempty"`
}

func convertEscrow(id types.Address, e *escrow.Escrow) *Escrow {
	return &Escrow{
		ID:          id,
		Vault:       escrow.Vault(id),
		Initializer: e.Initializer,
		Receiver:    e.Receiver,
		Mint:        e.Mint,
		Amount:      e.Amount,
	}
}

func convertSettled(id types.Address, s *escrow.Settled) *Escrow {
	e := convertEscrow(id, &s.Escrow)
	e.Claimed = true
	claimedAt := s.ClaimedAt
	e.ClaimedAt = &claimedAt
	return e
}

// InitializeBody is the body of an escrow creation.
type InitializeBody struct {
	ID       *types.Address       `json:"id"`
	Receiver *types.Address       `json:"receiver"`
	Mint     *types.Address       `json:"mint"`
	Amount   *math.HexOrDecimal64 `json:"amount"`
}

type Escrows struct {
	rt *runtime.Runtime
}

func New(rt *runtime.Runtime) *Escrows {
	return &Escrows{rt}
}

func (e *Escrows) handleGetEscrow(w http.ResponseWriter, req *http.Request) error {
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	esc, settled, err := e.rt.Escrow(id)
	switch {
	case err == nil:
		return utils.WriteJSON(w, convertEscrow(id, esc))
	case errors.Is(err, reverts.ErrAlreadyClaimed):
		return utils.WriteJSON(w, convertSettled(id, settled))
	default:
		return err
	}
}

func (e *Escrows) handleInitialize(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	var body InitializeBody
	if err := utils.ParseJSON(req.Body, &body); err != nil {
		return utils.BadRequest(errors.WithMessage(err, "body"))
	}
	if body.ID == nil || body.Receiver == nil || body.Amount == nil {
		return utils.BadRequest(errors.New("body: id, receiver and amount required"))
	}
	mint := types.NativeAsset
	if body.Mint != nil {
		mint = *body.Mint
	}
	esc, err := e.rt.InitializeEscrow(caller, *body.ID, *body.Receiver, mint, uint64(*body.Amount))
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertEscrow(*body.ID, esc))
}

func (e *Escrows) handleClaim(w http.ResponseWriter, req *http.Request) error {
	caller, err := utils.Caller(req)
	if err != nil {
		return err
	}
	id, err := utils.AddressVar(req, "id")
	if err != nil {
		return err
	}
	settled, err := e.rt.ClaimEscrow(caller, id)
	if err != nil {
		return err
	}
	return utils.WriteJSON(w, convertSettled(id, settled))
}

func (e *Escrows) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("").Methods(http.MethodPost).
		Name("escrows_initialize").
		HandlerFunc(utils.WrapHandlerFunc(e.handleInitialize))
	sub.Path("/{id}").Methods(http.MethodGet).
		Name("escrows_get_escrow").
		HandlerFunc(utils.WrapHandlerFunc(e.handleGetEscrow))
	sub.Path("/{id}/claim").Methods(http.MethodPost).
		Name("escrows_claim").
		HandlerFunc(utils.WrapHandlerFunc(e.handleClaim))
}
