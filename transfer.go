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
	"errors"
	"fmt"
	"time"
)

// Transfer is a single asynchronous USB read bound to a fixed buffer for
// its entire lifetime. After Submit() the transfer is in flight and owned
// by libusb; it is not safe to access its contents until WaitAny returns
// it. Once returned, the same transfer can be submitted again.
type Transfer struct {
	g    *Group
	xfer *libusbTransfer

	// submitted is true while the transfer is in flight.
	submitted bool
	// status and actual are set by WaitAny from the completed transfer.
	status TransferStatus
	actual int
}

// Status returns the completion status of the last finished transfer.
// It is only valid between WaitAny returning this transfer and the next
// Submit.
func (t *Transfer) Status() TransferStatus {
	return t.status
}

// Actual returns the number of bytes the last finished transfer read.
// Like Status, it is only valid while the transfer is not in flight.
func (t *Transfer) Actual() int {
	return t.actual
}

// Data returns the transfer buffer. Only the first Actual() bytes hold
// read data, and only while the transfer is not in flight.
func (t *Transfer) Data() []byte {
	return t.g.ctx.libusb.buffer(t.xfer)
}

// Group is a fixed-size pool of asynchronous read transfers on one device.
// Transfers are created up to the group's capacity, submitted individually
// and collected with WaitAny as the driver completes them, in whatever
// order it chooses. The intended steady state keeps every transfer of the
// group in flight: collect one, report it, submit it again.
type Group struct {
	ctx *Context
	dev *Device

	// completions receives finished transfers from the driver's event
	// loop. It is buffered to the group capacity so that the completion
	// callback never blocks.
	completions chan *libusbTransfer
	byXfer      map[*libusbTransfer]*Transfer
	capacity    int
	pending     int
}

// NewReadGroup prepares a transfer group of the given capacity. The group
// must be Close()d after use unless the process is exiting anyway.
func (d *Device) NewReadGroup(capacity int) *Group {
	return &Group{
		ctx:         d.ctx,
		dev:         d,
		completions: make(chan *libusbTransfer, capacity),
		byXfer:      make(map[*libusbTransfer]*Transfer, capacity),
		capacity:    capacity,
	}
}

// NewReadTransfer allocates a transfer with a fresh buffer of the given
// size, reading from the endpoint address with the given per-transfer
// timeout. A transfer that hits the timeout completes with a
// TransferTimedOut status, it does not fail.
//
// Only TransferTypeInterrupt and TransferTypeBulk endpoints can be read;
// other transfer types are a configuration error.
func (g *Group) NewReadTransfer(tt TransferType, addr EndpointAddress, size int, timeout time.Duration) (*Transfer, error) {
	if tt != TransferTypeInterrupt && tt != TransferTypeBulk {
		return nil, fmt.Errorf("cannot read from %s endpoint %s: only %s and %s endpoints are supported", tt, addr, TransferTypeInterrupt, TransferTypeBulk)
	}
	if len(g.byXfer) == g.capacity {
		return nil, fmt.Errorf("the group already holds %d transfers", g.capacity)
	}
	if g.dev.handle == nil {
		return nil, fmt.Errorf("NewReadTransfer called on %s after Close", g.dev)
	}
	xfer, err := g.ctx.libusb.alloc(g.dev.handle, addr, tt, timeout, size, g.completions)
	if err != nil {
		return nil, err
	}
	t := &Transfer{g: g, xfer: xfer}
	g.byXfer[xfer] = t
	return t, nil
}

// Submit hands the transfer's buffer to the driver and adds the transfer to
// the in-flight set.
func (g *Group) Submit(t *Transfer) error {
	if t.g != g {
		return errors.New("transfer submitted to a group that does not own it")
	}
	if t.submitted {
		return errors.New("transfer was already submitted and is not finished yet")
	}
	if err := g.ctx.libusb.submit(t.xfer); err != nil {
		return err
	}
	t.submitted = true
	g.pending++
	return nil
}

// WaitAny blocks until any one of the group's in-flight transfers
// completes, and returns it. Which transfer completes first, and in what
// order the rest follow, is up to the driver. The returned transfer's
// Status, Actual and Data describe the finished read; the transfer is no
// longer in flight and can be submitted again.
//
// There is no timeout on the wait itself; transfer timeouts surface as
// completions with TransferTimedOut status.
func (g *Group) WaitAny() (*Transfer, error) {
	if g.pending == 0 {
		return nil, errors.New("WaitAny called with no transfers in flight")
	}
	xfer := <-g.completions
	t := g.byXfer[xfer]
	t.submitted = false
	g.pending--
	t.actual, t.status = g.ctx.libusb.data(xfer)
	return t, nil
}

// Close cancels all in-flight transfers, waits for them to finish and
// frees the group's transfers. The group cannot be used afterwards.
func (g *Group) Close() error {
	for xfer, t := range g.byXfer {
		if t.submitted {
			g.ctx.libusb.cancel(xfer)
		}
	}
	for g.pending > 0 {
		xfer := <-g.completions
		g.byXfer[xfer].submitted = false
		g.pending--
	}
	for xfer := range g.byXfer {
		g.ctx.libusb.free(xfer)
		delete(g.byXfer, xfer)
	}
	return nil
}
