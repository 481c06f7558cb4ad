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

// Endpoint identifies one endpoint of a device, together with the
// configuration, interface and alternate setting it was found in.
// It is a plain value; construct one through Device.FindReadableEndpoint
// and hand it to Device.PrepareEndpoint.
type Endpoint struct {
	// Config is the configuration number (not the descriptor index).
	Config int
	// Interface is the interface number.
	Interface int
	// Setting is the alternate setting number on that interface.
	Setting int
	// Address is the endpoint address.
	Address EndpointAddress
}

// String returns a human-readable description of the endpoint.
func (e Endpoint) String() string {
	return fmt.Sprintf("config %d, interface %d, alternate setting %d, endpoint address %s", e.Config, e.Interface, e.Setting, e.Address)
}

// FindReadableEndpoint returns the first IN endpoint of the requested
// transfer type, walking the descriptor tree in configuration index ->
// interface -> alternate setting -> endpoint order. There is no preference
// among multiple matches beyond that traversal order. A configuration whose
// descriptor cannot be read is skipped. The second return value is false if
// the device has no matching endpoint at any depth.
func (d *Device) FindReadableEndpoint(tt TransferType) (Endpoint, bool) {
	for i := 0; i < d.Desc.NumConfigurations; i++ {
		cfg, err := d.ConfigDesc(i)
		if err != nil {
			continue
		}
		for _, intf := range cfg.Interfaces {
			for _, alt := range intf.AltSettings {
				for _, ep := range alt.Endpoints {
					if ep.Direction == EndpointDirectionIn && ep.TransferType == tt {
						return Endpoint{
							Config:    cfg.Number,
							Interface: intf.Number,
							Setting:   alt.Alternate,
							Address:   ep.Address,
						}, true
					}
				}
			}
		}
	}
	return Endpoint{}, false
}
