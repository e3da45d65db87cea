// This file is part of Gopher1013.
//
// Gopher1013 is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Gopher1013 is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Gopher1013.  If not, see <https://www.gnu.org/licenses/>.

// Package gui defines the contract between the emulation and a windowing
// implementation. The only implementation at the moment is in the sdlplay
// sub-package.
package gui

// GUI is the interface a windowing implementation exposes to the
// emulation.
type GUI interface {
	// SetEventChannel attaches the channel user input events are
	// forwarded down. Unset by default, meaning events are dropped.
	SetEventChannel(chan Event)

	// Service the user input queue. Blocks until it is time for a new
	// frame. MUST be called from the main thread at a regular rate.
	Service()

	// ShowWindow makes the window visible or invisible.
	ShowWindow(bool)

	// Destroy releases all resources held by the window.
	Destroy()
}
