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

// Package usbread reads from USB devices using overlapping asynchronous
// transfers, through a wrapper around libusb-1.0.
package usbread

import (
	"fmt"
	"sync"
)

// Context manages all resources related to USB device handling.
type Context struct {
	ctx    *libusbContext
	done   chan struct{}
	libusb libusbIntf

	mu      sync.Mutex
	devices map[*Device]bool
}

// NewContext returns a new Context instance.
func NewContext() *Context {
	return newContextWithImpl(libusbImpl{})
}

// newContextWithImpl is used to init a context with a specific libusbIntf
// implementation, for tests.
func newContextWithImpl(impl libusbIntf) *Context {
	c, err := impl.init()
	if err != nil {
		panic(err)
	}
	ctx := &Context{
		ctx:     c,
		libusb:  impl,
		done:    make(chan struct{}),
		devices: make(map[*Device]bool),
	}
	go impl.handleEvents(ctx.ctx, ctx.done)
	return ctx
}

// Debug changes the debug level of the libusb library. Level 0 means no
// debug, higher levels are more verbose.
func (c *Context) Debug(level int) {
	c.libusb.setDebug(c.ctx, level)
}

// OpenDevices calls the filter function with each enumerated device's
// descriptor. If the filter returns true, the device is opened and included
// in the result. Every opened Device must be Close()d.
//
// A device whose descriptor cannot be read, or that fails to open, is
// skipped and the scan continues; the last such error is returned alongside
// the successfully opened devices.
func (c *Context) OpenDevices(filter func(desc *DeviceDesc) bool) ([]*Device, error) {
	list, err := c.libusb.getDevices(c.ctx)
	if err != nil {
		return nil, err
	}

	var reterr error
	var ret []*Device
	for _, dev := range list {
		desc, err := c.libusb.getDeviceDesc(dev)
		if err != nil {
			c.libusb.dereference(dev)
			reterr = err
			continue
		}

		if !filter(desc) {
			c.libusb.dereference(dev)
			continue
		}

		handle, err := c.libusb.open(dev)
		if err != nil {
			c.libusb.dereference(dev)
			reterr = err
			continue
		}

		d := &Device{
			ctx:    c,
			dev:    dev,
			handle: handle,
			Desc:   desc,
		}
		c.mu.Lock()
		c.devices[d] = true
		c.mu.Unlock()
		ret = append(ret, d)
	}
	return ret, reterr
}

// OpenDeviceWithVIDPID opens the first device that matches the given vendor
// and product IDs and returns it. If no matching device is found, it returns
// (nil, nil). The returned error is currently always nil: enumeration
// failures, unreadable descriptors and failed opens are indistinguishable
// from a missing device.
//
// A matching device that fails to open does not end the scan - a later
// device with the same ID pair may still be returned. Whether that masks a
// genuine open failure on the only matching device is an open product
// question; the behavior is preserved as is.
func (c *Context) OpenDeviceWithVIDPID(vid, pid ID) (*Device, error) {
	devs, _ := c.OpenDevices(func(desc *DeviceDesc) bool {
		return desc.Vendor == vid && desc.Product == pid
	})
	if len(devs) == 0 {
		return nil, nil
	}
	for _, d := range devs[1:] {
		d.Close()
	}
	return devs[0], nil
}

// Close releases the Context and all associated resources. Close fails
// while Devices opened through the Context remain open.
func (c *Context) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.devices) > 0 {
		return fmt.Errorf("Context.Close called while %d Devices are still open", len(c.devices))
	}
	if c.ctx == nil {
		return nil
	}
	close(c.done)
	err := c.libusb.exit(c.ctx)
	c.ctx = nil
	return err
}

// closeDev removes the device from the open set and releases its handle and
// enumeration reference.
func (c *Context) closeDev(d *Device) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.devices, d)
	c.libusb.close(d.handle)
	c.libusb.dereference(d.dev)
}
