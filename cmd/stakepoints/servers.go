// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/vechain/stakepoints/metrics"
)

type serverURLs struct {
	api     string
	metrics string
	admin   string
}

type server struct {
	name     string
	listener net.Listener
	srv      *http.Server
}

// serverGroup runs http servers until the context is done or one of them fails.
type serverGroup struct {
	servers []*server
}

func (g *serverGroup) listen(name, addr string, handler http.Handler, path string) (string, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		g.close()
		return "", errors.Wrapf(err, "listen %v addr [%v]", name, addr)
	}
	g.servers = append(g.servers, &server{
		name:     name,
		listener: listener,
		srv:      &http.Server{Handler: handler, ReadHeaderTimeout: time.Second},
	})
	return "http://" + listener.Addr().String() + path, nil
}

// close releases the listeners of servers not yet serving.
func (g *serverGroup) close() {
	for _, s := range g.servers {
		s.listener.Close()
	}
}

func (g *serverGroup) run(ctx context.Context) error {
	eg, ctx := errgroup.WithContext(ctx)
	for _, s := range g.servers {
		eg.Go(func() error {
			if err := s.srv.Serve(s.listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return errors.Wrapf(err, "%v server", s.name)
			}
			return nil
		})
	}
	eg.Go(func() error {
		<-ctx.Done()
		for _, s := range g.servers {
			logger.Info("stopping server...", "name", s.name)
			s.srv.Close()
		}
		return nil
	})
	return eg.Wait()
}

func metricsHandler() http.Handler {
	router := mux.NewRouter()
	router.PathPrefix("/metrics").Handler(metrics.HTTPHandler())
	return handlers.CompressHandler(router)
}
