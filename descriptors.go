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

// DeviceDesc is a representation of a USB device descriptor.
type DeviceDesc struct {
	// Bus information
	Bus     int   // The bus on which the device was detected
	Address int   // The address of the device on the bus
	Speed   Speed // The negotiated operating speed for the device

	// Version information
	Spec   BCD // USB Specification Release Number
	Device BCD // The device version

	// Product information
	Vendor  ID // The Vendor identifer
	Product ID // The Product identifier

	// Protocol information
	Class                Class    // The class of this device
	SubClass             Class    // The sub-class (within the class) of this device
	Protocol             Protocol // The protocol (within the sub-class) of this device
	MaxControlPacketSize int      // Maximum size of the control transfer

	// NumConfigurations is the number of configurations the device declares.
	// Configuration descriptors are read lazily through Device.ConfigDesc,
	// one index at a time, so that a single unreadable configuration
	// doesn't hide the others.
	NumConfigurations int

	// String descriptor indexes.
	iManufacturer int
	iProduct      int
	iSerialNumber int
}

// String returns a human-readable version of the device descriptor.
func (d *DeviceDesc) String() string {
	return fmt.Sprintf("%d.%d: %s:%s (%d configurations)", d.Bus, d.Address, d.Vendor, d.Product, d.NumConfigurations)
}

// ConfigDesc contains the information about a USB device configuration,
// extracted from the configuration descriptor.
type ConfigDesc struct {
	// Number is the configuration number (bConfigurationValue). It is the
	// value used to select this configuration, not the descriptor index.
	Number int
	// SelfPowered is true if the device is powered externally, i.e. not
	// drawing power from the USB bus.
	SelfPowered bool
	// RemoteWakeup is true if the device supports remote wakeup.
	RemoteWakeup bool
	// MaxPower is the maximum current the device draws from the USB bus
	// in this configuration.
	MaxPower Milliamperes
	// Interfaces has a list of USB interfaces available in this configuration.
	Interfaces []InterfaceDesc
}

// String returns the human-readable description of the configuration descriptor.
func (c ConfigDesc) String() string {
	return fmt.Sprintf("Configuration %d", c.Number)
}

// InterfaceDesc contains information about a USB interface, extracted from
// the descriptor.
type InterfaceDesc struct {
	// Number is the number of this interface.
	Number int
	// AltSettings is a list of alternate settings supported by the interface.
	AltSettings []InterfaceSetting
}

// String returns a human-readable description of the interface descriptor.
func (i InterfaceDesc) String() string {
	return fmt.Sprintf("Interface %d (%d alternate settings)", i.Number, len(i.AltSettings))
}

// InterfaceSetting contains information about a USB interface with a
// particular alternate setting, extracted from the descriptor.
type InterfaceSetting struct {
	// Number is the number of this interface.
	Number int
	// Alternate is the number of this alternate setting.
	Alternate int
	// Class is the USB-IF class code, as defined by the USB spec.
	Class Class
	// SubClass is the USB-IF subclass code, as defined by the USB spec.
	SubClass Class
	// Protocol is USB protocol code, as defined by the USB spec.
	Protocol Protocol
	// Endpoints enumerates the endpoints available on this interface with
	// this alternate setting, in descriptor order. The order matters:
	// endpoint selection returns the first match.
	Endpoints []EndpointDesc
}

// String returns a human-readable description of the interface setting.
func (a InterfaceSetting) String() string {
	return fmt.Sprintf("Interface %d alternate setting %d", a.Number, a.Alternate)
}

// EndpointAddress is a unique identifier for the endpoint, combining the
// endpoint number and direction.
type EndpointAddress uint8

// String implements the Stringer interface.
func (a EndpointAddress) String() string {
	return fmt.Sprintf("0x%02x", uint8(a))
}

// EndpointDesc contains the information about an interface endpoint,
// extracted from the descriptor.
type EndpointDesc struct {
	// Address is the endpoint address.
	Address EndpointAddress
	// Number represents the endpoint number. Note that the endpoint number
	// is different from the address field in the descriptor - address 0x82
	// means endpoint number 2, with endpoint direction IN.
	// The device can have up to two endpoints with the same number but with
	// different directions.
	Number int
	// Direction defines whether the data is flowing IN or OUT from the host
	// perspective.
	Direction EndpointDirection
	// MaxPacketSize is the maximum USB packet size for a single frame/microframe.
	MaxPacketSize int
	// TransferType defines the endpoint type - bulk, interrupt, isochronous.
	TransferType TransferType
}

// String returns the human-readable description of the endpoint.
func (e EndpointDesc) String() string {
	return fmt.Sprintf("ep #%d %s (address %s) %s [%d bytes]", e.Number, e.Direction, e.Address, e.TransferType, e.MaxPacketSize)
}
