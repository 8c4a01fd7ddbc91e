// This file is part of Statecodec.
//
// Statecodec is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Statecodec is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Statecodec.  If not, see <https://www.gnu.org/licenses/>.

package statsview

import (
	"fmt"
	"io"

	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/jetsetilly/statecodec/logger"
)

// Address of the statistics server.
const Address = "localhost:12600"

const url = "/debug/statsview"

// URL returns the full address of the statistics page.
func URL() string {
	return fmt.Sprintf("http://%s%s", Address, url)
}

// Server is a running statistics server.
type Server struct {
	mgr *statsview.ViewManager
}

// Launch a new goroutine running the statistics server. The address of the
// statistics page is written to output.
func Launch(output io.Writer) *Server {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	srv := &Server{mgr: statsview.New()}

	go func() {
		srv.mgr.Start()
	}()

	logger.Logf(logger.Allow, "statsview", "listening on %s", Address)
	if output != nil {
		fmt.Fprintf(output, "stats server available at %s\n", URL())
	}

	return srv
}

// Stop the statistics server.
func (srv *Server) Stop() {
	srv.mgr.Stop()
	logger.Log(logger.Allow, "statsview", "stopped")
}
