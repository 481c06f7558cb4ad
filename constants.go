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

import "strconv"

// Class represents a USB-IF (Implementers Forum) class or subclass code.
type Class uint8

// Standard classes defined by the USB spec.
const (
	ClassPerInterface Class = 0x00
	ClassAudio        Class = 0x01
	ClassComm         Class = 0x02
	ClassHID          Class = 0x03
	ClassPTP          Class = 0x06
	ClassPrinter      Class = 0x07
	ClassMassStorage  Class = 0x08
	ClassHub          Class = 0x09
	ClassData         Class = 0x0a
	ClassWireless     Class = 0xe0
	ClassApplication  Class = 0xfe
	ClassVendorSpec   Class = 0xff
)

var classDescription = map[Class]string{
	ClassPerInterface: "per-interface",
	ClassAudio:        "audio",
	ClassComm:         "communications",
	ClassHID:          "human interface device",
	ClassPTP:          "picture transfer protocol",
	ClassPrinter:      "printer",
	ClassMassStorage:  "mass storage",
	ClassHub:          "hub",
	ClassData:         "data",
	ClassWireless:     "wireless",
	ClassApplication:  "application",
	ClassVendorSpec:   "vendor-specific",
}

func (c Class) String() string {
	if d, ok := classDescription[c]; ok {
		return d
	}
	return strconv.Itoa(int(c))
}

// Protocol is the interface class protocol, qualified by the values
// of interface class and subclass.
type Protocol uint8

func (p Protocol) String() string {
	return strconv.Itoa(int(p))
}

// Speed identifies the negotiated operating speed of a device.
type Speed int

// Device speeds as defined in the libusb spec.
const (
	SpeedUnknown Speed = 0
	SpeedLow     Speed = 1
	SpeedFull    Speed = 2
	SpeedHigh    Speed = 3
	SpeedSuper   Speed = 4
)

var deviceSpeedDescription = map[Speed]string{
	SpeedUnknown: "unknown",
	SpeedLow:     "low",
	SpeedFull:    "full",
	SpeedHigh:    "high",
	SpeedSuper:   "super",
}

func (s Speed) String() string {
	if d, ok := deviceSpeedDescription[s]; ok {
		return d
	}
	return strconv.Itoa(int(s))
}

// EndpointDirection defines the direction of data flow - IN (device to host)
// or OUT (host to device).
type EndpointDirection uint8

const (
	endpointNumMask       = 0x0f
	endpointDirectionMask = 0x80
	// EndpointDirectionIn marks data flowing from device to host.
	EndpointDirectionIn EndpointDirection = 0x80
	// EndpointDirectionOut marks data flowing from host to device.
	EndpointDirectionOut EndpointDirection = 0x00
)

var endpointDirectionDescription = map[EndpointDirection]string{
	EndpointDirectionIn:  "IN",
	EndpointDirectionOut: "OUT",
}

func (ed EndpointDirection) String() string {
	return endpointDirectionDescription[ed]
}

// TransferType defines the endpoint transfer type. It is a closed
// enumeration; only interrupt and bulk transfers can be read by this
// package, control and isochronous endpoints are rejected with an error.
type TransferType uint8

// Transfer types defined by the USB spec.
const (
	TransferTypeControl     TransferType = 0
	TransferTypeIsochronous TransferType = 1
	TransferTypeBulk        TransferType = 2
	TransferTypeInterrupt   TransferType = 3
	transferTypeMask                     = 0x03
)

var transferTypeDescription = map[TransferType]string{
	TransferTypeControl:     "control",
	TransferTypeIsochronous: "isochronous",
	TransferTypeBulk:        "bulk",
	TransferTypeInterrupt:   "interrupt",
}

func (tt TransferType) String() string {
	return transferTypeDescription[tt]
}

// TransferStatus contains the status of a completed transfer.
type TransferStatus uint8

// Transfer statuses defined by libusb. A transfer that timed out or was
// cancelled completes with the corresponding status, it is not an error.
const (
	TransferCompleted TransferStatus = 0
	TransferError     TransferStatus = 1
	TransferTimedOut  TransferStatus = 2
	TransferCancelled TransferStatus = 3
	TransferStall     TransferStatus = 4
	TransferNoDevice  TransferStatus = 5
	TransferOverflow  TransferStatus = 6
)

var transferStatusDescription = map[TransferStatus]string{
	TransferCompleted: "completed",
	TransferError:     "transfer error",
	TransferTimedOut:  "timed out",
	TransferCancelled: "cancelled",
	TransferStall:     "stall",
	TransferNoDevice:  "no device",
	TransferOverflow:  "overflow",
}

func (ts TransferStatus) String() string {
	if d, ok := transferStatusDescription[ts]; ok {
		return d
	}
	return strconv.Itoa(int(ts))
}
