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

import "fmt"

// Device represents an opened USB device. A Device must be Close()d after
// use.
type Device struct {
	ctx    *Context
	dev    *libusbDevice
	handle *libusbDevHandle

	// Desc holds the device descriptor.
	Desc *DeviceDesc
}

// String represents a human readable representation of the device.
func (d *Device) String() string {
	return fmt.Sprintf("vid=%s,pid=%s,bus=%d,addr=%d", d.Desc.Vendor, d.Desc.Product, d.Desc.Bus, d.Desc.Address)
}

// ConfigDesc reads the configuration descriptor with the given index.
// Valid indexes range from 0 to Desc.NumConfigurations-1. The index is not
// the configuration number; the number is available as Number on the
// returned descriptor.
func (d *Device) ConfigDesc(index int) (*ConfigDesc, error) {
	if d.handle == nil {
		return nil, fmt.Errorf("ConfigDesc(%d) called on %s after Close", index, d)
	}
	return d.ctx.libusb.getConfigDesc(d.dev, index)
}

// SetAutoDetach enables/disables automatic kernel driver detachment.
// When autodetach is enabled, the kernel driver is detached from the
// interface on claim and reattached when the interface is released.
func (d *Device) SetAutoDetach(autodetach bool) error {
	if d.handle == nil {
		return fmt.Errorf("SetAutoDetach(%v) called on %s after Close", autodetach, d)
	}
	var autodetachInt int
	if autodetach {
		autodetachInt = 1
	}
	return d.ctx.libusb.setAutoDetach(d.handle, autodetachInt)
}

// PrepareEndpoint makes a previously selected endpoint ready for transfers:
// it enables automatic kernel driver detachment on the handle, claims the
// endpoint's interface and selects its alternate setting. Each step's
// failure is returned to the caller; if selecting the alternate setting
// fails, the claimed interface is released again.
//
// The active configuration is not changed. The device is assumed to already
// use the configuration the endpoint was found in.
func (d *Device) PrepareEndpoint(ep Endpoint) error {
	if d.handle == nil {
		return fmt.Errorf("PrepareEndpoint(%s) called on %s after Close", ep, d)
	}
	if err := d.SetAutoDetach(true); err != nil {
		return fmt.Errorf("failed to enable automatic kernel driver detachment on %s: %v", d, err)
	}
	if err := d.ctx.libusb.claim(d.handle, uint8(ep.Interface)); err != nil {
		return fmt.Errorf("failed to claim interface %d on %s: %v", ep.Interface, d, err)
	}
	if err := d.ctx.libusb.setAlt(d.handle, uint8(ep.Interface), uint8(ep.Setting)); err != nil {
		d.ctx.libusb.release(d.handle, uint8(ep.Interface))
		return fmt.Errorf("failed to select alternate setting %d of interface %d on %s: %v", ep.Setting, ep.Interface, d, err)
	}
	return nil
}

// GetStringDescriptor returns a device string descriptor with the given
// index number, converted to ASCII.
func (d *Device) GetStringDescriptor(descIndex int) (string, error) {
	if d.handle == nil {
		return "", fmt.Errorf("GetStringDescriptor(%d) called on %s after Close", descIndex, d)
	}
	return d.ctx.libusb.getStringDesc(d.handle, descIndex)
}

// Manufacturer returns the device's manufacturer name.
func (d *Device) Manufacturer() (string, error) {
	return d.GetStringDescriptor(d.Desc.iManufacturer)
}

// Product returns the device's product name.
func (d *Device) Product() (string, error) {
	return d.GetStringDescriptor(d.Desc.iProduct)
}

// SerialNumber returns the device's serial number.
func (d *Device) SerialNumber() (string, error) {
	return d.GetStringDescriptor(d.Desc.iSerialNumber)
}

// Close closes the device. Closing the handle releases any claimed
// interfaces and reattaches detached kernel drivers.
func (d *Device) Close() error {
	if d.handle == nil {
		return nil
	}
	d.ctx.closeDev(d)
	d.handle = nil
	return nil
}
