// Copyright 2025 the usbread Authors.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package usbread

import (
	"fmt"
	"io"
	"time"
)

const (
	// queuedTransfers is the number of transfers kept in flight while
	// reading from an endpoint.
	queuedTransfers = 8
	// transferSize is the buffer size of a single transfer.
	transferSize = 64
	// readTimeout bounds a single transfer, not the read as a whole. A
	// transfer that times out is reported and resubmitted like any other
	// completion.
	readTimeout = 1 * time.Second
)

// ReadDevice looks for a readable interrupt endpoint on the device and, if
// one exists, reads from it indefinitely, reporting every completed
// transfer to w. A device without a readable interrupt endpoint is searched
// for a bulk endpoint instead. The interrupt and bulk searches are
// independent full traversals of the descriptor tree.
//
// ReadDevice returns nil only when the device has no readable endpoint of
// either type; otherwise it blocks in the read loop until a submission or
// wait failure ends it.
func ReadDevice(d *Device, w io.Writer) error {
	if ep, ok := d.FindReadableEndpoint(TransferTypeInterrupt); ok {
		return readEndpoint(d, ep, TransferTypeInterrupt, w)
	}
	fmt.Fprintln(w, "No readable interrupt endpoint")

	if ep, ok := d.FindReadableEndpoint(TransferTypeBulk); ok {
		return readEndpoint(d, ep, TransferTypeBulk, w)
	}
	fmt.Fprintln(w, "No readable bulk endpoint")
	return nil
}

// readEndpoint configures the endpoint and keeps queuedTransfers reads in
// flight on it: one transfer per buffer is submitted up front, then the
// loop forever collects whichever transfer the driver finishes next,
// reports its status and byte count, and immediately resubmits it. The
// in-flight count is constant after the initial burst.
func readEndpoint(d *Device, ep Endpoint, tt TransferType, w io.Writer) error {
	fmt.Fprintf(w, "Reading from endpoint: %s\n", ep)

	if err := d.PrepareEndpoint(ep); err != nil {
		return err
	}

	g := d.NewReadGroup(queuedTransfers)
	defer g.Close()

	for i := 0; i < queuedTransfers; i++ {
		t, err := g.NewReadTransfer(tt, ep.Address, transferSize, readTimeout)
		if err != nil {
			return err
		}
		if err := g.Submit(t); err != nil {
			return err
		}
	}

	for {
		t, err := g.WaitAny()
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Read: %s %d\n", t.Status(), t.Actual())
		if err := g.Submit(t); err != nil {
			return err
		}
	}
}
