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

// fakeDevice is a descriptor-level model of a connected device that the
// fakeLibusb stack serves to the code under test.
type fakeDevice struct {
	devDesc *DeviceDesc
	// configs holds the configuration descriptors, indexed by descriptor
	// index (not configuration number). A nil entry is a configuration
	// whose descriptor cannot be read.
	configs []*ConfigDesc
	strDesc map[int]string
	alt     uint8

	// descErr makes getDeviceDesc fail, openErr makes open fail. Both
	// exercise the skip-and-continue paths of the device scan.
	descErr error
	openErr error
}

// fakeDevices is the list of devices fakeLibusb enumerates, in enumeration
// order. Some tests depend on the order: duplicate ID pairs check that a
// scan continues past a broken device, and the endpoint lookup tests check
// that the first descriptor-order match wins.
var fakeDevices = []fakeDevice{
	// Bus 001 Device 002: ID 9999:0001
	// A simple device with one config and a bulk IN/OUT endpoint pair.
	{
		devDesc: &DeviceDesc{
			Bus:                  1,
			Address:              2,
			Speed:                SpeedHigh,
			Spec:                 Version(2, 0),
			Device:               Version(1, 3),
			Vendor:               ID(0x9999),
			Product:              ID(0x0001),
			Protocol:             255,
			MaxControlPacketSize: 64,
			NumConfigurations:    1,
			iManufacturer:        1,
			iProduct:             2,
			iSerialNumber:        3,
		},
		configs: []*ConfigDesc{{
			Number:   1,
			MaxPower: Milliamperes(100),
			Interfaces: []InterfaceDesc{{
				Number: 0,
				AltSettings: []InterfaceSetting{{
					Number: 0,
					Class:  ClassVendorSpec,
					Endpoints: []EndpointDesc{
						{
							Address:       0x01,
							Number:        1,
							Direction:     EndpointDirectionOut,
							MaxPacketSize: 512,
							TransferType:  TransferTypeBulk,
						},
						{
							Address:       0x82,
							Number:        2,
							Direction:     EndpointDirectionIn,
							MaxPacketSize: 512,
							TransferType:  TransferTypeBulk,
						},
					},
				}},
			}},
		}},
		strDesc: map[int]string{
			1: "ACME Industries",
			2: "Fidgety Gadget",
			3: "01234567",
		},
	},
	// Bus 001 Device 003: ID 8888:0002
	// A device with two configurations and endpoints spread over several
	// interfaces and alternate settings. The first readable interrupt
	// endpoint hides in the second alternate setting of the second
	// interface; the first readable bulk endpoint is on the third
	// interface. The second configuration has an interrupt endpoint that
	// a correct traversal never reaches.
	{
		devDesc: &DeviceDesc{
			Bus:                  1,
			Address:              3,
			Speed:                SpeedFull,
			Spec:                 Version(2, 0),
			Device:               Version(0, 1),
			Vendor:               ID(0x8888),
			Product:              ID(0x0002),
			Protocol:             255,
			MaxControlPacketSize: 16,
			NumConfigurations:    2,
		},
		configs: []*ConfigDesc{
			{
				Number:   1,
				MaxPower: Milliamperes(100),
				Interfaces: []InterfaceDesc{
					{
						Number: 0,
						AltSettings: []InterfaceSetting{{
							Number: 0,
							Class:  ClassVendorSpec,
							Endpoints: []EndpointDesc{{
								Address:       0x02,
								Number:        2,
								Direction:     EndpointDirectionOut,
								MaxPacketSize: 512,
								TransferType:  TransferTypeBulk,
							}},
						}},
					},
					{
						Number: 1,
						AltSettings: []InterfaceSetting{
							{
								Number: 1,
								Class:  ClassVendorSpec,
								Endpoints: []EndpointDesc{{
									Address:       0x85,
									Number:        5,
									Direction:     EndpointDirectionIn,
									MaxPacketSize: 1024,
									TransferType:  TransferTypeIsochronous,
								}},
							},
							{
								Number:    1,
								Alternate: 1,
								Class:     ClassVendorSpec,
								Endpoints: []EndpointDesc{
									{
										Address:       0x86,
										Number:        6,
										Direction:     EndpointDirectionIn,
										MaxPacketSize: 64,
										TransferType:  TransferTypeInterrupt,
									},
									{
										Address:       0x87,
										Number:        7,
										Direction:     EndpointDirectionIn,
										MaxPacketSize: 64,
										TransferType:  TransferTypeInterrupt,
									},
								},
							},
						},
					},
					{
						Number: 2,
						AltSettings: []InterfaceSetting{{
							Number: 2,
							Class:  ClassVendorSpec,
							Endpoints: []EndpointDesc{{
								Address:       0x83,
								Number:        3,
								Direction:     EndpointDirectionIn,
								MaxPacketSize: 512,
								TransferType:  TransferTypeBulk,
							}},
						}},
					},
				},
			},
			{
				Number:   2,
				MaxPower: Milliamperes(100),
				Interfaces: []InterfaceDesc{{
					Number: 0,
					AltSettings: []InterfaceSetting{{
						Number: 0,
						Class:  ClassVendorSpec,
						Endpoints: []EndpointDesc{{
							Address:       0x81,
							Number:        1,
							Direction:     EndpointDirectionIn,
							MaxPacketSize: 16,
							TransferType:  TransferTypeInterrupt,
						}},
					}},
				}},
			},
		},
	},
	// Bus 001 Device 004: ID 9999:0002
	// The first configuration descriptor is unreadable; the endpoint
	// search must skip it and still find the bulk endpoint in the second
	// configuration.
	{
		devDesc: &DeviceDesc{
			Bus:                  1,
			Address:              4,
			Speed:                SpeedHigh,
			Spec:                 Version(2, 0),
			Device:               Version(1, 0),
			Vendor:               ID(0x9999),
			Product:              ID(0x0002),
			Protocol:             255,
			MaxControlPacketSize: 64,
			NumConfigurations:    2,
		},
		configs: []*ConfigDesc{
			nil,
			{
				Number:   2,
				MaxPower: Milliamperes(100),
				Interfaces: []InterfaceDesc{{
					Number: 0,
					AltSettings: []InterfaceSetting{{
						Number: 0,
						Class:  ClassVendorSpec,
						Endpoints: []EndpointDesc{{
							Address:       0x81,
							Number:        1,
							Direction:     EndpointDirectionIn,
							MaxPacketSize: 512,
							TransferType:  TransferTypeBulk,
						}},
					}},
				}},
			},
		},
	},
	// Bus 002 Device 004: ID 7777:0001
	// Cannot be opened. The scan must move past it to the twin below.
	{
		devDesc: &DeviceDesc{
			Bus:                  2,
			Address:              4,
			Speed:                SpeedHigh,
			Spec:                 Version(2, 0),
			Device:               Version(1, 0),
			Vendor:               ID(0x7777),
			Product:              ID(0x0001),
			MaxControlPacketSize: 64,
			NumConfigurations:    1,
		},
		configs: []*ConfigDesc{{Number: 1}},
		openErr: ErrorBusy,
	},
	// Bus 002 Device 005: ID 7777:0001
	// A healthy twin of the device above.
	{
		devDesc: &DeviceDesc{
			Bus:                  2,
			Address:              5,
			Speed:                SpeedHigh,
			Spec:                 Version(2, 0),
			Device:               Version(1, 0),
			Vendor:               ID(0x7777),
			Product:              ID(0x0001),
			MaxControlPacketSize: 64,
			NumConfigurations:    1,
		},
		configs: []*ConfigDesc{{
			Number:   1,
			MaxPower: Milliamperes(100),
			Interfaces: []InterfaceDesc{{
				Number: 0,
				AltSettings: []InterfaceSetting{{
					Number: 0,
					Class:  ClassVendorSpec,
					Endpoints: []EndpointDesc{{
						Address:       0x81,
						Number:        1,
						Direction:     EndpointDirectionIn,
						MaxPacketSize: 512,
						TransferType:  TransferTypeBulk,
					}},
				}},
			}},
		}},
	},
	// Bus 002 Device 006: ID 6666:0001
	// The device descriptor itself is unreadable.
	{
		devDesc: &DeviceDesc{
			Bus:     2,
			Address: 6,
			Vendor:  ID(0x6666),
			Product: ID(0x0001),
		},
		descErr: ErrorIO,
	},
	// Bus 002 Device 007: ID 6666:0001
	// A healthy twin of the device above, with an interrupt-only endpoint.
	{
		devDesc: &DeviceDesc{
			Bus:                  2,
			Address:              7,
			Speed:                SpeedLow,
			Spec:                 Version(1, 1),
			Device:               Version(1, 0),
			Vendor:               ID(0x6666),
			Product:              ID(0x0001),
			Class:                ClassPerInterface,
			MaxControlPacketSize: 8,
			NumConfigurations:    1,
		},
		configs: []*ConfigDesc{{
			Number:   1,
			MaxPower: Milliamperes(100),
			Interfaces: []InterfaceDesc{{
				Number: 0,
				AltSettings: []InterfaceSetting{{
					Number: 0,
					Class:  ClassHID,
					Endpoints: []EndpointDesc{{
						Address:       0x81,
						Number:        1,
						Direction:     EndpointDirectionIn,
						MaxPacketSize: 8,
						TransferType:  TransferTypeInterrupt,
					}},
				}},
			}},
		}},
	},
	// Bus 003 Device 002: ID 1234:5678
	// A bulk-only device used by the read loop tests.
	{
		devDesc: &DeviceDesc{
			Bus:                  3,
			Address:              2,
			Speed:                SpeedHigh,
			Spec:                 Version(2, 0),
			Device:               Version(1, 0),
			Vendor:               ID(0x1234),
			Product:              ID(0x5678),
			Protocol:             255,
			MaxControlPacketSize: 64,
			NumConfigurations:    1,
			iManufacturer:        1,
			iProduct:             2,
		},
		configs: []*ConfigDesc{{
			Number:   1,
			MaxPower: Milliamperes(100),
			Interfaces: []InterfaceDesc{{
				Number: 0,
				AltSettings: []InterfaceSetting{{
					Number: 0,
					Class:  ClassVendorSpec,
					Endpoints: []EndpointDesc{{
						Address:       0x81,
						Number:        1,
						Direction:     EndpointDirectionIn,
						MaxPacketSize: 64,
						TransferType:  TransferTypeBulk,
					}},
				}},
			}},
		}},
		strDesc: map[int]string{
			1: "Vendor Of Things",
			2: "Thing One",
		},
	},
	// Bus 003 Device 003: ID 5555:0001
	// Only OUT endpoints; nothing on this device is readable.
	{
		devDesc: &DeviceDesc{
			Bus:                  3,
			Address:              3,
			Speed:                SpeedFull,
			Spec:                 Version(2, 0),
			Device:               Version(1, 0),
			Vendor:               ID(0x5555),
			Product:              ID(0x0001),
			Protocol:             255,
			MaxControlPacketSize: 64,
			NumConfigurations:    1,
		},
		configs: []*ConfigDesc{{
			Number:   1,
			MaxPower: Milliamperes(100),
			Interfaces: []InterfaceDesc{{
				Number: 0,
				AltSettings: []InterfaceSetting{{
					Number: 0,
					Class:  ClassVendorSpec,
					Endpoints: []EndpointDesc{
						{
							Address:       0x01,
							Number:        1,
							Direction:     EndpointDirectionOut,
							MaxPacketSize: 512,
							TransferType:  TransferTypeBulk,
						},
						{
							Address:       0x02,
							Number:        2,
							Direction:     EndpointDirectionOut,
							MaxPacketSize: 64,
							TransferType:  TransferTypeInterrupt,
						},
					},
				}},
			}},
		}},
	},
}
