// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package utils

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/stakepoints/auth"
	"github.com/vechain/stakepoints/types"
)

// Caller returns the verified signer of req, 401 when the request is unsigned.
func Caller(req *http.Request) (types.Address, error) {
	addr, ok := auth.Principal(req.Context())
	if !ok {
		return types.Address{}, HTTPError(auth.ErrMissingSignature, http.StatusUnauthorized)
	}
	return addr, nil
}

// AddressVar parses the route variable name as an address.
func AddressVar(req *http.Request, name string) (types.Address, error) {
	addr, err := types.ParseAddress(mux.Vars(req)[name])
	if err != nil {
		return types.Address{}, BadRequest(errors.WithMessage(err, name))
	}
	return addr, nil
}
