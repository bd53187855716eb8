// Copyright (c) 2025, Hostfacts Authors.  All rights reserved.
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

package reading

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

// Common section keys exported for consistency across assembly and tests.
const (
	// General keys
	KeyHostname           = "hostname"
	KeyUsername           = "username"
	KeyDistribution       = "distribution"
	KeyDesktopEnvironment = "desktop-environment"
	KeyWindowManager      = "window-manager"
	KeyShell              = "shell"
	KeyTerminal           = "terminal"
	KeyUptimeSeconds      = "uptime-seconds"
	KeyCPUModel           = "cpu-model"
	KeyCPUCores           = "cpu-cores"
	KeyCPUThreads         = "cpu-threads"

	// Memory keys (all bytes)
	KeyMemTotal     = "total"
	KeyMemFree      = "free"
	KeyMemAvailable = "available"
	KeyMemUsed      = "used"
	KeySwapTotal    = "swap-total"
	KeySwapFree     = "swap-free"

	// Battery keys
	KeyBatteryPercentage = "percentage"
	KeyBatteryState      = "state"

	// Kernel keys
	KeyKernelRelease = "release"
	KeyKernelType    = "type"

	// Product keys
	KeyProductVendor  = "vendor"
	KeyProductFamily  = "family"
	KeyProductName    = "name"
	KeyProductVersion = "version"
	KeyMachineID      = "machine-id"
	KeyProductUUID    = "product-uuid"

	// Network keys
	KeyNetInterface = "interface"
	KeyLocalIP      = "local-ip"

	// Init keys
	KeyInitName       = "name"
	KeyInitVersion    = "init-version"
	KeyVirtualization = "virtualization"

	// Package keys
	KeyPackagesTotal = "total"
)

// Group identifies the readout group a section's values came from.
type Group string

// String returns the string representation of the Group.
func (g Group) String() string {
	return string(g)
}

const (
	GroupGeneral  Group = "General"
	GroupMemory   Group = "Memory"
	GroupBattery  Group = "Battery"
	GroupKernel   Group = "Kernel"
	GroupProduct  Group = "Product"
	GroupNetwork  Group = "Network"
	GroupInit     Group = "Init"
	GroupPackages Group = "Packages"
)

// Groups is the list of all supported readout groups, in report order.
var Groups = []Group{
	GroupGeneral,
	GroupMemory,
	GroupBattery,
	GroupKernel,
	GroupProduct,
	GroupNetwork,
	GroupInit,
	GroupPackages,
}

// ParseGroup parses a string into a Group.
// Returns the Group and true if parsing succeeds, or empty Group and false otherwise.
func ParseGroup(s string) (Group, bool) {
	for _, g := range Groups {
		if string(g) == s {
			return g, true
		}
	}
	return "", false
}

// Section holds one group's resolved values within a report. Data contains
// the resolved key-value pairs; Omitted lists fields that could not be
// resolved on this host, with a short reason each.
type Section struct {
	Group   Group              `json:"group" yaml:"group"`
	Data    map[string]Reading `json:"data" yaml:"data"`
	Omitted map[string]string  `json:"omitted,omitempty" yaml:"omitted,omitempty"`
}

// UnmarshalJSON custom unmarshaler for Section to handle the Reading interface.
func (s *Section) UnmarshalJSON(data []byte) error {
	var tmp struct {
		Group   Group             `json:"group"`
		Data    map[string]any    `json:"data"`
		Omitted map[string]string `json:"omitted"`
	}

	if err := json.Unmarshal(data, &tmp); err != nil {
		return err
	}

	s.Group = tmp.Group
	s.Omitted = tmp.Omitted
	s.Data = make(map[string]Reading)

	for k, v := range tmp.Data {
		s.Data[k] = ToReading(v)
	}

	return nil
}

// UnmarshalYAML custom unmarshaler for Section to handle the Reading interface.
func (s *Section) UnmarshalYAML(node *yaml.Node) error {
	var tmp struct {
		Group   Group             `yaml:"group"`
		Data    map[string]any    `yaml:"data"`
		Omitted map[string]string `yaml:"omitted"`
	}

	if err := node.Decode(&tmp); err != nil {
		return err
	}

	s.Group = tmp.Group
	s.Omitted = tmp.Omitted
	s.Data = make(map[string]Reading)

	for k, v := range tmp.Data {
		s.Data[k] = ToReading(v)
	}

	return nil
}

// Validate checks if the section is properly formed. A section with no
// resolved data is valid only when every field is accounted for in Omitted.
func (s *Section) Validate() error {
	if s.Group == "" {
		return errors.New("section group cannot be empty")
	}
	if _, ok := ParseGroup(string(s.Group)); !ok {
		return fmt.Errorf("unknown section group: %s", s.Group)
	}
	if len(s.Data) == 0 && len(s.Omitted) == 0 {
		return errors.New("section must have data or omissions")
	}
	return nil
}

// Has checks if a key exists in the section data.
func (s *Section) Has(key string) bool {
	_, ok := s.Data[key]
	return ok
}

// Get retrieves a reading by key, returning nil if not found.
func (s *Section) Get(key string) Reading {
	return s.Data[key]
}

// Keys returns all data keys in sorted order.
func (s *Section) Keys() []string {
	keys := make([]string, 0, len(s.Data))
	for k := range s.Data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// GetString retrieves a string value by key.
func (s *Section) GetString(key string) (string, error) {
	r, ok := s.Data[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	v, ok := r.Any().(string)
	if !ok {
		return "", fmt.Errorf("key %s is not a string: %T", key, r.Any())
	}
	return v, nil
}

// GetInt64 retrieves an int64 value by key.
func (s *Section) GetInt64(key string) (int64, error) {
	r, ok := s.Data[key]
	if !ok {
		return 0, fmt.Errorf("key not found: %s", key)
	}
	switch v := r.Any().(type) {
	case int64:
		return v, nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("key %s is not an int64: %T", key, r.Any())
	}
}

// GetUint64 retrieves a uint64 value by key.
func (s *Section) GetUint64(key string) (uint64, error) {
	r, ok := s.Data[key]
	if !ok {
		return 0, fmt.Errorf("key not found: %s", key)
	}
	switch v := r.Any().(type) {
	case uint64:
		return v, nil
	case uint:
		return uint64(v), nil
	default:
		return 0, fmt.Errorf("key %s is not a uint64: %T", key, r.Any())
	}
}

// GetFloat64 retrieves a float64 value by key.
func (s *Section) GetFloat64(key string) (float64, error) {
	r, ok := s.Data[key]
	if !ok {
		return 0, fmt.Errorf("key not found: %s", key)
	}
	v, ok := r.Any().(float64)
	if !ok {
		return 0, fmt.Errorf("key %s is not a float64: %T", key, r.Any())
	}
	return v, nil
}
