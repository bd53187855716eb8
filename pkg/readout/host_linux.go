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

package readout

func newHost(rc *Context) *Host {
	return &Host{
		General: newLinuxGeneral(rc),
		Memory:  newLinuxMemory(rc),
		Battery: newLinuxBattery(rc),
		Kernel:  newLinuxKernel(rc),
		Product: newLinuxProduct(rc),
		Network: newLinuxNetwork(rc),
		Init:    newLinuxInit(rc),
	}
}
